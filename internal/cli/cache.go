package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/crest-tools/crest/pkg/cache"
)

// newCache builds the configured cache backend. noCache forces the null
// backend regardless of configuration.
func newCache(ctx context.Context, cfg Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case "", "file":
		dir := cfg.Cache.Dir
		if dir == "" {
			base, err := os.UserCacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			dir = filepath.Join(base, appName)
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.Cache.Addr})
	case "mongo":
		return cache.NewMongoCache(ctx, cache.MongoConfig{URI: cfg.Cache.URI})
	case "null":
		return cache.NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the result cache",
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file")

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			store, err := newCache(cmd.Context(), cfg, false)
			if err != nil {
				return err
			}
			defer store.Close()

			fc, ok := store.(*cache.FileCache)
			if !ok {
				return fmt.Errorf("cache clear supports the file backend only, not %q", cfg.Cache.Backend)
			}
			if err := fc.Clear(); err != nil {
				return err
			}
			c.Logger.Info("cache cleared")
			return nil
		},
	}
	cmd.AddCommand(clear)

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show cache entry count and size",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			store, err := newCache(cmd.Context(), cfg, false)
			if err != nil {
				return err
			}
			defer store.Close()

			fc, ok := store.(*cache.FileCache)
			if !ok {
				return fmt.Errorf("cache stats supports the file backend only, not %q", cfg.Cache.Backend)
			}
			entries, bytes, err := fc.Stats()
			if err != nil {
				return err
			}
			c.Logger.Info("cache stats", "entries", entries, "bytes", bytes)
			return nil
		},
	}
	cmd.AddCommand(stats)

	return cmd
}
