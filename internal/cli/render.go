package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/layoutkit/pkg/batch"
	errs "github.com/matzehuels/layoutkit/pkg/errors"
	"github.com/matzehuels/layoutkit/pkg/render/dot"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output          string // output file; stdout when empty
	format          string // "dot" or "svg"; inferred from output when empty
	detailed        bool   // include effects, recognizers and depth in node labels
	hideConstraints bool   // draw containment only
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <scene>",
		Short: "Render an applied scene as DOT or SVG",
		Long: `Build and apply a scene, then draw its hierarchy. Containment is drawn as
solid edges, two-item constraints as dashed edges between their items.

Without --output the DOT source is written to stdout.`,
		Example: `  layoutkit render examples/scenes/card.toml -o card.svg
  layoutkit render examples/scenes/toolbar.yaml --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (.dot or .svg)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show effects, recognizers and depth")
	cmd.Flags().BoolVar(&opts.hideConstraints, "hide-constraints", false, "omit constraint edges")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts renderOpts) error {
	w := cmd.OutOrStdout()
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	format, err := renderFormat(opts)
	if err != nil {
		return reportError(w, err)
	}

	b, err := loadScene(logger, path)
	if err != nil {
		return reportError(w, err)
	}
	if _, err := applyScene(batch.New(b.Tree, logger), b); err != nil {
		return reportError(w, err)
	}

	prog := newProgress(logger)
	data, err := dot.Render(ctx, b.Tree, format, dot.Options{
		Detailed:        opts.detailed,
		HideConstraints: opts.hideConstraints,
	})
	if err != nil {
		return reportError(w, err)
	}

	if opts.output == "" {
		_, err := fmt.Fprintln(w, string(data))
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return reportError(w, errs.Wrap(errs.ErrCodeInternal, err, "write %s", opts.output))
	}
	prog.done(fmt.Sprintf("Rendered %s", opts.output))
	printSuccess(w, "rendered %d nodes", b.Tree.NodeCount())
	printFile(w, opts.output)
	return nil
}

// renderFormat resolves the output format from the flag or the output
// extension, defaulting to DOT.
func renderFormat(opts renderOpts) (string, error) {
	format := strings.ToLower(opts.format)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(opts.output)), ".")
	}
	switch format {
	case "", "gv", dot.FormatDOT:
		return dot.FormatDOT, nil
	case dot.FormatSVG:
		return dot.FormatSVG, nil
	}
	return "", errs.New(errs.ErrCodeUnsupported, "unsupported render format %q (want dot or svg)", format)
}
