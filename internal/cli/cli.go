// Package cli implements the layoutkit command-line interface.
//
// # Commands
//
//   - generate: Print the constraints a scene document generates
//   - apply: Build a scene's hierarchy and apply its batch
//   - reverse: Swap the subjects of a single constraint
//   - render: Draw an applied scene as DOT or SVG
//   - browse: Walk an applied hierarchy interactively
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which includes
// one line per activated constraint. The logger travels to commands through
// the command context.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/layoutkit/pkg/buildinfo"
	errs "github.com/matzehuels/layoutkit/pkg/errors"
	"github.com/matzehuels/layoutkit/pkg/scene"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "layoutkit"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance whose logger writes to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Layoutkit builds and applies layout constraints",
		Long:         `Layoutkit generates linear layout constraints (alignment, distribution, sizing) from scene documents, applies them to a layout hierarchy in a dependency-safe order, and renders the result.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.applyCommand())
	root.AddCommand(c.reverseCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Scene Helpers
// =============================================================================

// loadScene loads and builds the scene at path, logging its size.
func loadScene(logger *log.Logger, path string) (*scene.Built, error) {
	s, err := scene.Load(path)
	if err != nil {
		return nil, err
	}
	b, err := scene.Build(s)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded scene",
		"path", path,
		"items", len(s.Items),
		"ops", len(s.Ops),
		"constraints", len(b.Constraints))
	return b, nil
}

// reportError prints err with its code and returns it for cobra.
func reportError(w io.Writer, err error) error {
	printError(w, string(errs.GetCode(err)), errs.UserMessage(err))
	return err
}
