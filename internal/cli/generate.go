package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/layoutkit/pkg/constraint"
)

func (c *CLI) generateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "generate <scene>",
		Short: "Print the constraints a scene generates",
		Long: `Load a scene document (.toml, .yaml or .yml), run every op in document
order, and print the resulting constraints without applying them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			b, err := loadScene(loggerFromContext(cmd.Context()), args[0])
			if err != nil {
				return reportError(w, err)
			}

			printTable(w, []string{"#", "Constraint", "Items", "Priority"}, constraintRows(b.Constraints))
			printDetail(w, "%d constraints from %d ops", len(b.Constraints), len(b.Scene.Ops))
			return nil
		},
	}
}

func constraintRows(cs []*constraint.Constraint) [][]string {
	rows := make([][]string, len(cs))
	for i, c := range cs {
		ids := make([]string, 0, 2)
		for _, item := range c.Items() {
			ids = append(ids, item.LayoutID())
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			c.String(),
			strings.Join(ids, ", "),
			strconv.Itoa(int(c.Priority)),
		}
	}
	return rows
}
