package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/layoutkit/pkg/batch"
	"github.com/matzehuels/layoutkit/pkg/hierarchy"
	"github.com/matzehuels/layoutkit/pkg/scene"
)

// applyOpts holds the command-line flags for the apply command.
type applyOpts struct {
	twice  bool // re-apply the constraints to show DOUBLE_APPLICATION
	remove bool // remove every target again after applying
}

func (c *CLI) applyCommand() *cobra.Command {
	var opts applyOpts

	cmd := &cobra.Command{
		Use:   "apply <scene>",
		Short: "Apply a scene's batch to its hierarchy",
		Long: `Build the scene's hierarchy, then add its root children, constraints,
effects and recognizers in grouped order. Each constraint is activated on the
nearest common ancestor of its items. The active constraints of every
container are printed afterwards.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runApply(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.twice, "twice", false, "apply the constraints a second time (fails with DOUBLE_APPLICATION)")
	cmd.Flags().BoolVar(&opts.remove, "remove", false, "remove all targets again after applying")

	return cmd
}

func (c *CLI) runApply(cmd *cobra.Command, path string, opts applyOpts) error {
	w := cmd.OutOrStdout()
	logger := loggerFromContext(cmd.Context())

	b, err := loadScene(logger, path)
	if err != nil {
		return reportError(w, err)
	}

	m := batch.New(b.Tree, logger)
	prog := newProgress(logger)
	if _, err := applyScene(m, b); err != nil {
		return reportError(w, err)
	}
	prog.done(fmt.Sprintf("Applied %d targets", len(b.Targets)))

	printSuccess(w, "applied %s to %s", StyleNumber.Render(strconv.Itoa(len(b.Targets))+" targets"), StyleTitle.Render(b.Root.LayoutID()))
	printActive(w, b.Tree)

	if opts.twice {
		report, err := m.ApplyAll(b.Root, batch.Constraints(b.Constraints))
		if err == nil {
			printWarning(w, "second application unexpectedly succeeded")
		} else {
			printInfo(w, "second application stopped after %d of %d targets", report.Completed, len(report.Targets))
			_ = reportError(w, err)
		}
	}

	if opts.remove {
		removed, err := removeScene(m, b)
		if err != nil {
			printInfo(w, "removal stopped after %d of %d targets", removed, len(b.Targets))
			return reportError(w, err)
		}
		printSuccess(w, "removed %d targets, %d constraints still active", removed, b.Tree.ActiveCount())
	}
	return nil
}

// removeScene undoes applyScene. RemoveAll takes children first, which would
// deactivate their constraints before those are removed, so the children go
// in a second batch.
func removeScene(m *batch.Mutator, b *scene.Built) (int, error) {
	var children, rest []batch.Target
	for _, t := range b.Targets {
		if t.Kind() == batch.KindChild {
			children = append(children, t)
		} else {
			rest = append(rest, t)
		}
	}
	removed := 0
	for _, set := range [][]batch.Target{rest, children} {
		report, err := m.RemoveAll(b.Root, set)
		removed += report.Completed
		if err != nil {
			return removed, err
		}
	}
	return removed, nil
}

// applyScene runs the scene's batch against its root.
func applyScene(m *batch.Mutator, b *scene.Built) (batch.Report, error) {
	return m.ApplyAll(b.Root, b.Targets)
}

// printActive lists the active constraints of every container in
// registration order.
func printActive(w io.Writer, t *hierarchy.Tree) {
	var rows [][]string
	for _, n := range t.Nodes() {
		for _, c := range t.Constraints(n) {
			rows = append(rows, []string{strconv.Itoa(len(rows) + 1), n.LayoutID(), c.String()})
		}
	}
	if len(rows) == 0 {
		printDetail(w, "no active constraints")
		return
	}
	printTable(w, []string{"#", "Container", "Constraint"}, rows)
	printKeyValue(w, "active", strconv.Itoa(t.ActiveCount()))
}
