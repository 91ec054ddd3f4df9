package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/layoutkit/pkg/batch"
	"github.com/matzehuels/layoutkit/pkg/hierarchy"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <scene>",
		Short: "Explore an applied scene interactively",
		Long: `Apply a scene, then walk its hierarchy in the terminal. Select an item to
list the constraints it holds as a container.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			logger := loggerFromContext(cmd.Context())

			b, err := loadScene(logger, args[0])
			if err != nil {
				return reportError(w, err)
			}
			if _, err := applyScene(batch.New(b.Tree, logger), b); err != nil {
				return reportError(w, err)
			}

			p := tea.NewProgram(NewHierarchyModel(b.Tree),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(w))
			_, err = p.Run()
			return err
		},
	}
}

// =============================================================================
// HierarchyModel - Interactive hierarchy browser
// =============================================================================

// HierarchyModel is the bubbletea model for browsing a hierarchy. Items are
// listed depth-first; the selected item's constraints can be expanded.
type HierarchyModel struct {
	Tree     *hierarchy.Tree
	Items    []*hierarchy.Node
	Cursor   int
	Offset   int
	Height   int
	Expanded bool
}

// NewHierarchyModel lists the items of t depth-first from its roots.
func NewHierarchyModel(t *hierarchy.Tree) HierarchyModel {
	var items []*hierarchy.Node
	var walk func(n *hierarchy.Node)
	walk = func(n *hierarchy.Node) {
		items = append(items, n)
		for _, ch := range t.Children(n) {
			walk(ch)
		}
	}
	for _, r := range t.Roots() {
		walk(r)
	}
	return HierarchyModel{Tree: t, Items: items, Height: 15}
}

// Selected returns the item under the cursor, or nil for an empty tree.
func (m HierarchyModel) Selected() *hierarchy.Node {
	if m.Cursor < 0 || m.Cursor >= len(m.Items) {
		return nil
	}
	return m.Items[m.Cursor]
}

func (m HierarchyModel) Init() tea.Cmd {
	return nil
}

func (m HierarchyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			m.Expanded = !m.Expanded
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 12
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m HierarchyModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Hierarchy"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ constraints  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Items))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := m.Items[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		name := strings.Repeat("  ", m.Tree.Depth(n)) + n.LayoutID()
		rows = append(rows, []string{
			cursor,
			name,
			strconv.Itoa(len(m.Tree.Children(n))),
			strconv.Itoa(len(m.Tree.Constraints(n))),
			strconv.Itoa(len(m.Tree.Effects(n)) + len(m.Tree.Recognizers(n))),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Item", "Children", "Constraints", "Attached").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			idx := m.Offset + row
			if idx == m.Cursor {
				return listSelectedStyle
			}
			if idx < len(m.Items) && len(m.Tree.Constraints(m.Items[idx])) == 0 {
				return listDimStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Items))))
	b.WriteString("\n")

	if m.Expanded {
		b.WriteString("\n")
		b.WriteString(m.detail())
	}
	return b.String()
}

// detail lists what the selected item holds as a container.
func (m HierarchyModel) detail() string {
	n := m.Selected()
	if n == nil {
		return ""
	}
	var b strings.Builder
	cs := m.Tree.Constraints(n)
	b.WriteString(StyleTitle.Render(n.LayoutID()))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d constraints", len(cs))))
	b.WriteString("\n")
	for _, c := range cs {
		b.WriteString("  " + StyleValue.Render(c.String()) + "\n")
	}
	for _, e := range m.Tree.Effects(n) {
		b.WriteString("  " + listDimStyle.Render("effect "+e.EffectName()) + "\n")
	}
	for _, r := range m.Tree.Recognizers(n) {
		b.WriteString("  " + listDimStyle.Render("recognizer "+r.RecognizerName()) + "\n")
	}
	return b.String()
}
