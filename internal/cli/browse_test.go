package cli

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/layoutkit/pkg/batch"
)

func appliedCard(t *testing.T) HierarchyModel {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	b, err := loadScene(logger, cardScene)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := applyScene(batch.New(b.Tree, logger), b); err != nil {
		t.Fatal(err)
	}
	return NewHierarchyModel(b.Tree)
}

func press(m HierarchyModel, keys ...tea.KeyMsg) (HierarchyModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(HierarchyModel)
	}
	return m, cmd
}

func TestHierarchyModelOrder(t *testing.T) {
	m := appliedCard(t)

	var got []string
	for _, n := range m.Items {
		got = append(got, n.LayoutID())
	}
	want := "card header avatar title body footer"
	if strings.Join(got, " ") != want {
		t.Errorf("Items = %v, want %s", got, want)
	}
}

func TestHierarchyModelNavigation(t *testing.T) {
	m := appliedCard(t)
	up := tea.KeyMsg{Type: tea.KeyUp}
	down := tea.KeyMsg{Type: tea.KeyDown}

	m, _ = press(m, up)
	if m.Cursor != 0 {
		t.Errorf("Cursor after up at top = %d, want 0", m.Cursor)
	}
	m, _ = press(m, down, down, down, down, down, down, down)
	if m.Cursor != len(m.Items)-1 {
		t.Errorf("Cursor after overshooting = %d, want %d", m.Cursor, len(m.Items)-1)
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	if got := m.Selected().LayoutID(); got != "body" {
		t.Errorf("Selected() = %s, want body", got)
	}
}

func TestHierarchyModelScrolls(t *testing.T) {
	m := appliedCard(t)
	m.Height = 2
	down := tea.KeyMsg{Type: tea.KeyDown}

	m, _ = press(m, down, down, down)
	if m.Offset != 2 {
		t.Errorf("Offset = %d, want 2", m.Offset)
	}
}

func TestHierarchyModelExpand(t *testing.T) {
	m := appliedCard(t)
	if strings.Contains(m.View(), "body.top == header.bottom + 12") {
		t.Fatal("constraints should be hidden until expanded")
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	view := m.View()
	for _, want := range []string{"4 constraints", "body.top == header.bottom + 12", "effect shadow", "recognizer tap"} {
		if !strings.Contains(view, want) {
			t.Errorf("expanded view missing %q:\n%s", want, view)
		}
	}
}

func TestHierarchyModelQuit(t *testing.T) {
	m := appliedCard(t)
	_, cmd := press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
