package dot

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/layoutkit/pkg/constraint"
	errs "github.com/matzehuels/layoutkit/pkg/errors"
	"github.com/matzehuels/layoutkit/pkg/hierarchy"
)

func sampleTree(t *testing.T) *hierarchy.Tree {
	t.Helper()
	tree := hierarchy.NewTree()
	root, _ := tree.NewNode("root")
	a, _ := tree.NewNode("a")
	b, _ := tree.NewNode("b")
	a.Meta["label"] = "Avatar"
	for _, n := range []*hierarchy.Node{a, b} {
		if err := tree.AddChild(root, n); err != nil {
			t.Fatal(err)
		}
	}

	gap := constraint.Eq(b.Left(), a.Right()).Plus(8)
	half := constraint.Eq(b.Width(), a.Width()).Times(0.5).Plus(-2).WithPriority(constraint.PriorityDefaultHigh)
	fixed := constraint.EqConst(a.Width(), 40)
	for _, c := range []*constraint.Constraint{&gap, &half, &fixed} {
		container := root
		if c.IsUnary() {
			container = a
		}
		if err := tree.AddConstraint(container, c); err != nil {
			t.Fatal(err)
		}
	}
	if err := tree.AddEffect(root, hierarchy.NamedEffect("shadow")); err != nil {
		t.Fatal(err)
	}
	return tree
}

func TestToDOT(t *testing.T) {
	tree := sampleTree(t)

	tests := []struct {
		name    string
		opts    Options
		want    []string
		notWant []string
	}{
		{
			name: "default",
			want: []string{
				"digraph G {",
				`"root" -> "a";`,
				`"root" -> "b";`,
				`label="left == right + 8"`,
				`label="width == 0.5*width - 2 @750"`,
				`"a" [label="a\nwidth == 40"];`,
				`"root" [label="root", penwidth=2];`,
			},
			notWant: []string{"effect: shadow", "Avatar"},
		},
		{
			name:    "detailed",
			opts:    Options{Detailed: true},
			want:    []string{"effect: shadow", "label: Avatar"},
			notWant: nil,
		},
		{
			name:    "hide constraints",
			opts:    Options{HideConstraints: true},
			want:    []string{`"a" [label="a"];`},
			notWant: []string{"style=dashed", "width == 40"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDOT(tree, tt.opts)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("ToDOT() missing %q\n%s", w, got)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("ToDOT() should not contain %q", w)
				}
			}
		})
	}
}

func TestRenderDOTAndUnsupported(t *testing.T) {
	tree := sampleTree(t)
	ctx := context.Background()

	out, err := Render(ctx, tree, FormatDOT, Options{})
	if err != nil {
		t.Fatalf("Render(dot) error: %v", err)
	}
	if !strings.HasPrefix(string(out), "digraph G {") {
		t.Errorf("Render(dot) = %q", out)
	}

	if _, err := Render(ctx, tree, "gif", Options{}); !errs.Is(err, errs.ErrCodeUnsupported) {
		t.Errorf("Render(gif) error = %v, want UNSUPPORTED", err)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte("<svg><g/></svg>")
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("normalizeViewBox() without viewBox changed input: %s", got)
	}
}
