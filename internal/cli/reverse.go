package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/layoutkit/pkg/constraint"
	errs "github.com/matzehuels/layoutkit/pkg/errors"
	"github.com/matzehuels/layoutkit/pkg/hierarchy"
)

// reverseOpts holds the command-line flags for the reverse command.
type reverseOpts struct {
	multiplier float64
	constant   float64
	priority   int
	positive   bool // normalize to a non-negative constant instead of always reversing
}

func (c *CLI) reverseCommand() *cobra.Command {
	opts := reverseOpts{multiplier: 1, priority: int(constraint.PriorityRequired)}

	cmd := &cobra.Command{
		Use:   "reverse <item.attr> <relation> <item.attr>",
		Short: "Swap the subjects of a constraint",
		Long: `Rewrite "first R m * second + b" with second as the subject.

The relation is one of ==, >=, <= (or eq, ge, le). With --positive the
constraint is only reversed when its constant is negative.`,
		Example: `  layoutkit reverse a.width ">=" b.height --multiplier 2 --constant 14
  layoutkit reverse b.left == a.right --constant -8 --positive`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			in, err := parseConstraint(args[0], args[1], args[2], opts)
			if err != nil {
				return reportError(w, err)
			}

			printKeyValue(w, "input", in.String())
			if opts.positive {
				printKeyValue(w, "positive", constraint.PositiveConstant(in).String())
				return nil
			}
			r, err := constraint.ReverseErr(in)
			if err != nil {
				return reportError(w, err)
			}
			printKeyValue(w, "reversed", r.String())
			return nil
		},
	}

	cmd.Flags().Float64VarP(&opts.multiplier, "multiplier", "m", opts.multiplier, "multiplier of the second term")
	cmd.Flags().Float64VarP(&opts.constant, "constant", "b", 0, "constant added to the second term")
	cmd.Flags().IntVarP(&opts.priority, "priority", "p", opts.priority, "priority in [1, 1000]")
	cmd.Flags().BoolVar(&opts.positive, "positive", false, "reverse only if the constant is negative")

	return cmd
}

// parseConstraint builds a constraint from CLI terms. Items are created on
// the fly; the same ID on both sides names the same item.
func parseConstraint(first, rel, second string, opts reverseOpts) (constraint.Constraint, error) {
	items := map[string]*hierarchy.Node{}
	ft, err := parseTerm(first, items)
	if err != nil {
		return constraint.Constraint{}, err
	}
	st, err := parseTerm(second, items)
	if err != nil {
		return constraint.Constraint{}, err
	}
	r, err := constraint.ParseRelation(rel)
	if err != nil {
		return constraint.Constraint{}, err
	}

	c := constraint.New(ft, r, st, opts.multiplier, opts.constant).WithPriority(constraint.Priority(opts.priority))
	if err := c.Validate(); err != nil {
		return constraint.Constraint{}, err
	}
	return c, nil
}

func parseTerm(ref string, items map[string]*hierarchy.Node) (constraint.Term, error) {
	id, attrName, err := errs.SplitTerm(ref)
	if err != nil {
		return constraint.Term{}, err
	}
	attr, err := constraint.ParseAttribute(attrName)
	if err != nil {
		return constraint.Term{}, err
	}
	if attr == constraint.NotAnAttribute {
		return constraint.Term{}, errs.New(errs.ErrCodeInvalidAttribute, "%s does not name an attribute", ref)
	}
	n, ok := items[id]
	if !ok {
		n = hierarchy.NewNode(id)
		items[id] = n
	}
	return n.Attr(attr), nil
}
