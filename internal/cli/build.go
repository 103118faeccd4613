package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/crest-tools/crest/pkg/cache"
	"github.com/crest-tools/crest/pkg/digraph"
	"github.com/crest-tools/crest/pkg/mesh"
	"github.com/crest-tools/crest/pkg/observability"
	"github.com/crest-tools/crest/pkg/reeb"
)

// buildCommand creates the build command.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		fieldName  string
		fieldIndex int
		threshold  float64
		output     string
		configPath string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "build [mesh.json]",
		Short: "Compute the Reeb graph of a scalar field on a mesh",
		Long: `Compute the Reeb graph of a scalar field on a mesh.

The input is a mesh JSON file (kind "surface" or "volume") with named scalar
fields. The field is selected with --field or --field-index. The resulting
graph is simplified at --threshold (a fraction of the scalar span, 0 disables
simplification) and written as graph JSON.

Results are cached by mesh content, field and threshold; use --no-cache to
force recomputation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("threshold") {
				threshold = cfg.Threshold
			}
			return c.runBuild(cmd.Context(), cfg, buildOptions{
				input:      args[0],
				output:     output,
				fieldName:  fieldName,
				fieldIndex: fieldIndex,
				threshold:  threshold,
				noCache:    noCache,
			})
		},
	}

	cmd.Flags().StringVarP(&fieldName, "field", "f", "", "scalar field name (default: first field)")
	cmd.Flags().IntVar(&fieldIndex, "field-index", 0, "scalar field index, used when --field is empty")
	cmd.Flags().Float64VarP(&threshold, "threshold", "t", 0, "simplification threshold in [0, 1]")
	cmd.Flags().StringVarP(&output, "output", "o", "graph.json", "output graph file")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: ~/.config/crest/config.toml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

type buildOptions struct {
	input      string
	output     string
	fieldName  string
	fieldIndex int
	threshold  float64
	noCache    bool
}

// runBuild computes (or retrieves) the graph and writes it to the output
// file.
func (c *CLI) runBuild(ctx context.Context, cfg Config, opts buildOptions) error {
	p := newProgress(c.Logger)
	raw, err := os.ReadFile(opts.input)
	if err != nil {
		return fmt.Errorf("read mesh %s: %w", opts.input, err)
	}
	data, err := computeGraph(ctx, c.Logger, cfg, raw, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.output, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	p.done(fmt.Sprintf("Wrote %s", opts.output))
	return nil
}

// computeGraph is the shared pipeline behind the build command and the HTTP
// API: consult the cache, construct, simplify, serialize.
func computeGraph(ctx context.Context, logger *log.Logger, cfg Config, rawMesh []byte, opts buildOptions) ([]byte, error) {
	field := opts.fieldName
	if field == "" {
		field = fmt.Sprintf("#%d", opts.fieldIndex)
	}
	key := cache.GraphKey(cache.Hash(rawMesh), field, opts.threshold)

	store, err := newCache(ctx, cfg, opts.noCache)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if data, hit, err := store.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "graph")
		logger.Debug("cache hit", "key", key)
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "graph")

	m, err := mesh.Read(bytes.NewReader(rawMesh))
	if err != nil {
		return nil, err
	}

	g, err := buildGraph(ctx, m, opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Simplify().OnSimplifyStart(ctx, opts.threshold)
	removed := g.Simplify(opts.threshold, nil)
	observability.Simplify().OnSimplifyComplete(ctx, opts.threshold, removed, time.Since(start))
	logger.Debug("simplified", "threshold", opts.threshold, "arcs_removed", removed)

	data, err := digraph.Marshal(g.Committed())
	if err != nil {
		return nil, err
	}
	if err := store.Set(ctx, key, data, 0); err != nil {
		logger.Debug("cache write failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "graph", len(data))
	}
	return data, nil
}

// buildGraph dispatches on the mesh kind and reports construction events.
func buildGraph(ctx context.Context, m mesh.Mesh, opts buildOptions) (*reeb.Graph, error) {
	g := reeb.New()
	start := time.Now()

	var kind string
	var err error
	switch mm := m.(type) {
	case *mesh.Surface:
		kind = mesh.KindSurface
		observability.Build().OnBuildStart(ctx, kind, mm.NumberOfCells())
		if opts.fieldName != "" {
			err = g.BuildByName(mm, opts.fieldName)
		} else {
			err = g.BuildByIndex(mm, opts.fieldIndex)
		}
	case *mesh.Volume:
		kind = mesh.KindVolume
		observability.Build().OnBuildStart(ctx, kind, mm.NumberOfCells())
		if opts.fieldName != "" {
			err = g.BuildVolumeByName(mm, opts.fieldName)
		} else {
			err = g.BuildVolumeByIndex(mm, opts.fieldIndex)
		}
	default:
		return nil, fmt.Errorf("unsupported mesh type %T", m)
	}

	observability.Build().OnBuildComplete(ctx, kind,
		g.NumberOfNodes(), g.NumberOfArcs(), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("build reeb graph: %w", err)
	}
	return g, nil
}
