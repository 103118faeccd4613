package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/spf13/cobra"

	"github.com/crest-tools/crest/pkg/digraph"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render a computed graph as DOT, SVG, or PNG",
		Long: `Render a computed graph as DOT, SVG, or PNG.

The input is a graph JSON file produced by 'crest build'. The DOT output
needs no external tooling; SVG and PNG are rasterized with Graphviz.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if output == "" {
				output = strings.TrimSuffix(args[0], ".json") + "." + format
			}
			return c.runRender(cmd.Context(), args[0], output, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: dot, svg, png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input with format extension)")

	return cmd
}

// runRender loads the graph and writes the rendering.
func (c *CLI) runRender(ctx context.Context, input, output, format string) error {
	g, err := digraph.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}
	dot := digraph.ToDOT(g)

	var data []byte
	switch format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = renderGraphviz(ctx, dot, graphviz.SVG)
	case "png":
		data, err = renderGraphviz(ctx, dot, graphviz.PNG)
	default:
		return fmt.Errorf("unknown format %q (want dot, svg, or png)", format)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	c.Logger.Info("rendered graph", "path", output, "format", format)
	return nil
}

// renderGraphviz rasterizes a DOT document with Graphviz.
func renderGraphviz(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
