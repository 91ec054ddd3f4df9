package batch

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/layoutkit/pkg/constraint"
	errs "github.com/matzehuels/layoutkit/pkg/errors"
	"github.com/matzehuels/layoutkit/pkg/generate"
	"github.com/matzehuels/layoutkit/pkg/hierarchy"
	"github.com/matzehuels/layoutkit/pkg/observability"
)

func quiet() *log.Logger { return log.NewWithOptions(io.Discard, log.Options{}) }

func kinds(ts []Target) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.String()
	}
	return out
}

func TestGroup(t *testing.T) {
	a, b := hierarchy.NewNode("childA"), hierarchy.NewNode("childB")
	x := constraint.EqConst(a.Width(), 10).WithIdentifier("constraintX")
	y := hierarchy.NamedRecognizer("recognizerY")
	fade := hierarchy.NamedEffect("fade")

	tests := []struct {
		name  string
		input []Target
		want  []string
	}{
		{
			name:  "children before constraints before recognizers",
			input: []Target{Child(a), Constraint(&x), Child(b), Recognizer(y)},
			want:  []string{"child childA", "child childB", "constraint [constraintX] childA.width == 10", "recognizer recognizerY"},
		},
		{
			name:  "effects between constraints and recognizers",
			input: []Target{Recognizer(y), Effect(fade), Constraint(&x), Child(a)},
			want:  []string{"child childA", "constraint [constraintX] childA.width == 10", "effect fade", "recognizer recognizerY"},
		},
		{
			name:  "stable within kind",
			input: []Target{Child(b), Recognizer(y), Child(a)},
			want:  []string{"child childB", "child childA", "recognizer recognizerY"},
		},
		{
			name:  "pointer targets are dereferenced and nil pointers dropped",
			input: []Target{&RecognizerTarget{Recognizer: y}, (*ChildTarget)(nil), &ChildTarget{Item: a}, (*ConstraintTarget)(nil)},
			want:  []string{"child childA", "recognizer recognizerY"},
		},
		{
			name:  "empty",
			input: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Group(tt.input)
			if diff := cmp.Diff(tt.want, kinds(got)); diff != "" {
				t.Errorf("Group() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGroupDoesNotModifyInput(t *testing.T) {
	a := hierarchy.NewNode("a")
	r := hierarchy.NamedRecognizer("tap")
	in := []Target{Recognizer(r), Child(a)}
	_ = Group(in)
	if in[0].Kind() != KindRecognizer {
		t.Error("Group() reordered its input")
	}
}

// scene returns a tree with root -> {v1, v2, v3}.
func scene(t *testing.T) (*hierarchy.Tree, *hierarchy.Node, []*hierarchy.Node) {
	t.Helper()
	tree := hierarchy.NewTree()
	root, _ := tree.NewNode("root")
	var views []*hierarchy.Node
	for _, id := range []string{"v1", "v2", "v3"} {
		v, err := tree.NewNode(id)
		if err != nil {
			t.Fatal(err)
		}
		if err := tree.AddChild(root, v); err != nil {
			t.Fatal(err)
		}
		views = append(views, v)
	}
	return tree, root, views
}

func TestApplyAllAlignmentEndToEnd(t *testing.T) {
	tree, root, v := scene(t)
	m := New(tree, quiet())

	cs, err := generate.AlignTop(v[0], v[1], v[2])
	if err != nil {
		t.Fatal(err)
	}

	report, err := m.ApplyAll(root, Constraints(cs))
	if err != nil {
		t.Fatalf("ApplyAll() error: %v", err)
	}
	if report.Completed != 2 {
		t.Errorf("Completed = %d, want 2", report.Completed)
	}
	for _, c := range cs {
		owner, ok := tree.Owner(c)
		if !ok || owner != root {
			t.Errorf("%s owner = %v, %v; want root", c, owner, ok)
		}
	}

	report, err = m.ApplyAll(root, Constraints(cs))
	if !errs.Is(err, errs.ErrCodeDoubleApplication) {
		t.Fatalf("second ApplyAll() error = %v, want DOUBLE_APPLICATION", err)
	}
	if report.Completed != 0 || len(report.Pending()) != 2 {
		t.Errorf("report = %d done, %d pending; want 0, 2", report.Completed, len(report.Pending()))
	}
	if tree.ActiveCount() != 2 {
		t.Errorf("ActiveCount() = %d, want 2", tree.ActiveCount())
	}
}

func TestApplyAllStagesChildrenFirst(t *testing.T) {
	tree := hierarchy.NewTree()
	header, _ := tree.NewNode("header")
	title, _ := tree.NewNode("title")
	subtitle, _ := tree.NewNode("subtitle")
	m := New(tree, quiet())

	cs, _ := generate.DistributeTopToBottom(4, title, subtitle)
	targets := append(Constraints(cs), Effect(hierarchy.NamedEffect("blur")))
	targets = append(targets, Children(title, subtitle)...)

	report, err := m.ApplyAll(header, targets)
	if err != nil {
		t.Fatalf("ApplyAll() error: %v", err)
	}
	want := []string{"child title", "child subtitle", "constraint subtitle.top == title.bottom + 4", "effect blur"}
	if diff := cmp.Diff(want, kinds(report.Done())); diff != "" {
		t.Errorf("Done() mismatch (-want +got):\n%s", diff)
	}
	if owner, _ := tree.Owner(cs[0]); owner != header {
		t.Errorf("owner = %v, want header", owner)
	}
	if got := tree.Effects(header); len(got) != 1 {
		t.Errorf("Effects(header) = %v", got)
	}
}

func TestApplyAllStopsWithoutRollback(t *testing.T) {
	tree, root, v := scene(t)
	stray, _ := tree.NewNode("stray")
	m := New(tree, quiet())

	ok := constraint.Eq(v[0].Left(), v[1].Left())
	bad := constraint.Eq(v[0].Left(), stray.Left())
	tap := hierarchy.NamedRecognizer("tap")

	report, err := m.ApplyAll(root, []Target{Recognizer(tap), Constraint(&bad), Constraint(&ok)})
	if !errs.Is(err, errs.ErrCodeNoCommonAncestor) {
		t.Fatalf("ApplyAll() error = %v, want NO_COMMON_ANCESTOR", err)
	}
	if report.Completed != 0 {
		t.Errorf("Completed = %d, want 0", report.Completed)
	}

	report, err = m.ApplyAll(root, []Target{Constraint(&ok), Constraint(&bad), Recognizer(tap)})
	if err == nil {
		t.Fatal("ApplyAll() succeeded, want failure")
	}
	if report.Completed != 1 {
		t.Errorf("Completed = %d, want 1", report.Completed)
	}
	if _, active := tree.Owner(&ok); !active {
		t.Error("constraint applied before the failure should stay active")
	}
	if got := tree.Recognizers(root); len(got) != 0 {
		t.Errorf("Recognizers() = %v, want none after failure", got)
	}
}

func TestRemoveAll(t *testing.T) {
	tree, root, v := scene(t)
	m := New(tree, quiet())
	fade := hierarchy.NamedEffect("fade")

	cs, _ := generate.AlignLeading(v[1], v[2])
	if _, err := m.ApplyAll(root, append(Constraints(cs), Effect(fade))); err != nil {
		t.Fatalf("ApplyAll() error: %v", err)
	}

	report, err := m.RemoveAll(root, append([]Target{Effect(fade)}, Constraints(cs)...))
	if err != nil {
		t.Fatalf("RemoveAll() error: %v", err)
	}
	if report.Completed != 2 {
		t.Errorf("Completed = %d, want 2", report.Completed)
	}
	if tree.ActiveCount() != 0 || len(tree.Effects(root)) != 0 {
		t.Error("RemoveAll() left constraints or effects behind")
	}

	_, err = m.RemoveAll(root, Children(hierarchy.NewNode("ghost")))
	if !errs.Is(err, errs.ErrCodeInvalidItem) {
		t.Errorf("RemoveAll(unknown child) error = %v, want INVALID_ITEM", err)
	}
}

// Removing a child before a constraint on it deactivates the constraint
// through the hierarchy, so the constraint step finds nothing to remove.
func TestRemoveAllKeepsForwardOrder(t *testing.T) {
	tree, root, v := scene(t)
	m := New(tree, quiet())

	c := constraint.Eq(v[0].Top(), v[1].Top())
	if _, err := m.ApplyAll(root, []Target{Constraint(&c)}); err != nil {
		t.Fatal(err)
	}

	report, err := m.RemoveAll(root, []Target{Constraint(&c), Child(v[1])})
	if !errs.Is(err, errs.ErrCodeNotActive) {
		t.Fatalf("RemoveAll() error = %v, want NOT_ACTIVE", err)
	}
	if report.Completed != 1 || report.Done()[0].Kind() != KindChild {
		t.Errorf("Done() = %v, want the child only", kinds(report.Done()))
	}
}

func TestUndoAppliedBatchInTwoSteps(t *testing.T) {
	tree := hierarchy.NewTree()
	root, _ := tree.NewNode("root")
	a, _ := tree.NewNode("a")
	b, _ := tree.NewNode("b")
	m := New(tree, quiet())

	cs, err := generate.DistributeLeftToRight(8, a, b)
	if err != nil {
		t.Fatal(err)
	}
	applied := append(Children(a, b), Constraints(cs)...)
	if _, err := m.ApplyAll(root, applied); err != nil {
		t.Fatal(err)
	}

	// The same targets cannot be removed in one call.
	if _, err := m.RemoveAll(root, applied); !errs.Is(err, errs.ErrCodeNotActive) {
		t.Fatalf("RemoveAll(applied) error = %v, want NOT_ACTIVE", err)
	}

	if _, err := m.ApplyAll(root, applied); err != nil {
		t.Fatalf("re-apply: %v", err)
	}
	if _, err := m.RemoveAll(root, Constraints(cs)); err != nil {
		t.Fatalf("RemoveAll(constraints) error: %v", err)
	}
	if _, err := m.RemoveAll(root, Children(a, b)); err != nil {
		t.Fatalf("RemoveAll(children) error: %v", err)
	}
	if tree.ActiveCount() != 0 || len(tree.Children(root)) != 0 {
		t.Errorf("after undo: %d active, %d children", tree.ActiveCount(), len(tree.Children(root)))
	}
}

func TestInvalidBatch(t *testing.T) {
	tree, root, _ := scene(t)
	m := New(tree, quiet())

	if _, err := m.ApplyAll(root, []Target{nil}); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("nil target error = %v, want INVALID_INPUT", err)
	}
	for _, typedNil := range []Target{(*ChildTarget)(nil), (*ConstraintTarget)(nil), (*EffectTarget)(nil), (*RecognizerTarget)(nil)} {
		if _, err := m.RemoveAll(root, []Target{typedNil}); !errs.Is(err, errs.ErrCodeInvalidInput) {
			t.Errorf("%T target error = %v, want INVALID_INPUT", typedNil, err)
		}
	}

	extra, err := tree.NewNode("extra")
	if err != nil {
		t.Fatal(err)
	}
	report, err := m.ApplyAll(root, []Target{&ChildTarget{Item: extra}})
	if err != nil || report.Completed != 1 {
		t.Errorf("pointer child target = %+v, %v", report, err)
	}
	if _, err := m.ApplyAll(nil, nil); !errs.Is(err, errs.ErrCodeInvalidItem) {
		t.Errorf("nil container error = %v, want INVALID_ITEM", err)
	}
	if report, err := m.ApplyAll(root, nil); err != nil || report.Completed != 0 {
		t.Errorf("empty batch = %+v, %v", report, err)
	}
}

type recordingBatchHooks struct {
	observability.NoopBatchHooks
	started   []string
	completed []int
	errs      []error
}

func (h *recordingBatchHooks) OnBatchStart(op, container string, targets int) {
	h.started = append(h.started, op+":"+container)
}

func (h *recordingBatchHooks) OnBatchComplete(op, container string, completed int, _ time.Duration, err error) {
	h.completed = append(h.completed, completed)
	h.errs = append(h.errs, err)
}

func TestBatchHooks(t *testing.T) {
	hooks := &recordingBatchHooks{}
	observability.SetBatchHooks(hooks)
	defer observability.Reset()

	tree, root, v := scene(t)
	m := New(tree, quiet())
	cs, _ := generate.AlignCenters(v[0], v[1])

	_, _ = m.ApplyAll(root, Constraints(cs))
	_, _ = m.ApplyAll(root, Constraints(cs))

	if diff := cmp.Diff([]string{"apply:root", "apply:root"}, hooks.started); diff != "" {
		t.Errorf("started mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 0}, hooks.completed); diff != "" {
		t.Errorf("completed mismatch (-want +got):\n%s", diff)
	}
	if hooks.errs[0] != nil || hooks.errs[1] == nil {
		t.Errorf("errs = %v, want [nil, DOUBLE_APPLICATION]", hooks.errs)
	}
}
