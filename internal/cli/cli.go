// Package cli implements the crest command-line interface.
//
// This package provides commands for building Reeb graphs from mesh files,
// simplifying them, rendering them with Graphviz, exploring them in a
// terminal UI, and serving the construction as an HTTP API. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
//   - build: compute the Reeb graph of a scalar field on a mesh
//   - render: generate DOT, SVG, or PNG visualizations of a graph
//   - explore: browse a computed graph interactively
//   - serve: expose graph computation over HTTP
//   - cache: manage the result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Commands log
// through the CLI's shared Logger, which the build pipeline receives as a
// parameter; progress timing uses the progress helper.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/crest-tools/crest/pkg/buildinfo"
)

// appName is the application name used for directories and display.
const appName = "crest"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Crest computes Reeb graphs of scalar fields on meshes",
		Long:         `Crest is a CLI tool for computing, simplifying and visualizing Reeb graphs of piecewise-linear scalar fields on triangle and tetrahedral meshes.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())

	return root
}
