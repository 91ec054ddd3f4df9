package scene

import (
	"github.com/matzehuels/layoutkit/pkg/batch"
	"github.com/matzehuels/layoutkit/pkg/constraint"
	errs "github.com/matzehuels/layoutkit/pkg/errors"
	"github.com/matzehuels/layoutkit/pkg/generate"
	"github.com/matzehuels/layoutkit/pkg/hierarchy"
)

// Built is a scene realized as a hierarchy plus the batch that completes it.
//
// Items nested below other items are attached while building. Direct children
// of the root are not: they are staged as child targets, so the batch shows
// children and constraints arriving together.
type Built struct {
	Scene       *Scene
	Tree        *hierarchy.Tree
	Root        *hierarchy.Node
	Constraints []*constraint.Constraint
	Targets     []batch.Target
}

// Build creates the tree, generates every op's constraints in document order,
// and assembles the batch targets: root children, constraints, effects and
// recognizers, in that order.
func Build(s *Scene) (*Built, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	tree := hierarchy.NewTree()
	root, err := tree.NewNode(s.Root)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidScene, err, "root")
	}
	root.Meta["scene"] = s.Name

	nodes := make([]*hierarchy.Node, len(s.Items))
	for i, it := range s.Items {
		n, err := tree.NewNode(it.ID)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidScene, err, "item %d", i)
		}
		if it.Label != "" {
			n.Meta["label"] = it.Label
		}
		nodes[i] = n
	}

	b := &Built{Scene: s, Tree: tree, Root: root}
	for i, it := range s.Items {
		if it.Parent == "" || it.Parent == s.Root {
			b.Targets = append(b.Targets, batch.Child(nodes[i]))
			continue
		}
		parent, _ := tree.Node(it.Parent)
		if err := tree.AddChild(parent, nodes[i]); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidScene, err, "attach %s", nodes[i].LayoutID())
		}
	}

	for i, op := range s.Ops {
		cs, err := b.generate(op)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidScene, err, "op %d (%s)", i, op.Kind)
		}
		b.Constraints = append(b.Constraints, cs...)
	}
	b.Targets = append(b.Targets, batch.Constraints(b.Constraints)...)

	for _, e := range s.Effects {
		b.Targets = append(b.Targets, batch.Effect(hierarchy.NamedEffect(e.Name)))
	}
	for _, r := range s.Recognizers {
		b.Targets = append(b.Targets, batch.Recognizer(hierarchy.NamedRecognizer(r.Name)))
	}
	return b, nil
}

func (b *Built) items(ids []string) []constraint.Item {
	out := make([]constraint.Item, len(ids))
	for i, id := range ids {
		n, _ := b.Tree.Node(id)
		out[i] = n
	}
	return out
}

func (b *Built) generate(op Op) ([]*constraint.Constraint, error) {
	items := b.items(op.Items)

	var cs []*constraint.Constraint
	switch op.Kind {
	case OpAlign:
		attrs, err := op.alignAttributes()
		if err != nil {
			return nil, err
		}
		for _, a := range attrs {
			set, err := generate.Align(generate.Of(items...), a)
			if err != nil {
				return nil, err
			}
			cs = append(cs, set...)
		}
	case OpDistribute:
		d, err := generate.ParseDirection(op.Direction)
		if err != nil {
			return nil, err
		}
		if cs, err = generate.DistributeAlong(d, op.Spacing, items...); err != nil {
			return nil, err
		}
	default:
		for _, item := range items {
			set, err := dimension(op, item)
			if err != nil {
				return nil, err
			}
			cs = append(cs, set...)
		}
	}

	for _, c := range cs {
		if op.Priority != 0 {
			*c = c.WithPriority(constraint.Priority(op.Priority))
		}
		if op.Identifier != "" {
			*c = c.WithIdentifier(op.Identifier)
		}
	}
	return cs, nil
}

func dimension(op Op, item constraint.Item) ([]*constraint.Constraint, error) {
	switch op.Kind {
	case OpWidth:
		return generate.ConstrainWidth(item, op.Value)
	case OpHeight:
		return generate.ConstrainHeight(item, op.Value)
	case OpWidthRange:
		return generate.ConstrainWidthRange(item, op.Min, op.Max)
	case OpHeightRange:
		return generate.ConstrainHeightRange(item, op.Min, op.Max)
	case OpAspect:
		return generate.ConstrainHeightToWidth(item, op.Ratio, op.Offset)
	}
	return nil, errs.New(errs.ErrCodeInvalidInput, "unknown op kind %q", op.Kind)
}
