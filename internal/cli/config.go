package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the crest configuration file, located at
// ~/.config/crest/config.toml by default and overridable with --config.
type Config struct {
	// Threshold is the default simplification threshold applied by build
	// when --threshold is not given.
	Threshold float64 `toml:"threshold"`

	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects and configures the result cache backend.
type CacheConfig struct {
	// Backend is one of "file", "redis", "mongo", "null". Empty means file.
	Backend string `toml:"backend"`

	// Dir is the file backend's directory. Empty means the user cache dir.
	Dir string `toml:"dir"`

	// Addr is the redis backend's address.
	Addr string `toml:"addr"`

	// URI is the mongo backend's connection string.
	URI string `toml:"uri"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// defaultConfig returns the configuration used when no file exists.
func defaultConfig() Config {
	return Config{
		Threshold: 0,
		Cache:     CacheConfig{Backend: "file"},
		Server:    ServerConfig{Addr: ":8080"},
	}
}

// defaultConfigPath returns ~/.config/crest/config.toml (or the platform
// equivalent).
func defaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// loadConfig reads the configuration file at path, or the default location
// when path is empty. A missing file yields the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := defaultConfigPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "file"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	return cfg, nil
}
