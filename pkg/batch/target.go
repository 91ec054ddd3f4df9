package batch

import (
	"github.com/matzehuels/layoutkit/pkg/constraint"
	"github.com/matzehuels/layoutkit/pkg/hierarchy"
)

// Kind tags the four cases of Target. The numeric order is the order in
// which Group stages them.
type Kind int

const (
	KindChild Kind = iota
	KindConstraint
	KindEffect
	KindRecognizer
)

func (k Kind) String() string {
	switch k {
	case KindChild:
		return "child"
	case KindConstraint:
		return "constraint"
	case KindEffect:
		return "effect"
	case KindRecognizer:
		return "recognizer"
	default:
		return "unknown"
	}
}

// Target is one mutation of a container. Its only implementations are
// [ChildTarget], [ConstraintTarget], [EffectTarget] and [RecognizerTarget].
type Target interface {
	Kind() Kind
	String() string
	target() // marker method restricting implementations to this package
}

// ChildTarget adds or removes an item as a child of the container.
type ChildTarget struct{ Item constraint.Item }

// ConstraintTarget activates or deactivates a constraint through the applier.
type ConstraintTarget struct{ Constraint *constraint.Constraint }

// EffectTarget attaches or detaches a visual effect on the container.
type EffectTarget struct{ Effect hierarchy.Effect }

// RecognizerTarget attaches or detaches a gesture recognizer on the container.
type RecognizerTarget struct{ Recognizer hierarchy.Recognizer }

func (ChildTarget) Kind() Kind      { return KindChild }
func (ConstraintTarget) Kind() Kind { return KindConstraint }
func (EffectTarget) Kind() Kind     { return KindEffect }
func (RecognizerTarget) Kind() Kind { return KindRecognizer }

func (ChildTarget) target()      {}
func (ConstraintTarget) target() {}
func (EffectTarget) target()     {}
func (RecognizerTarget) target() {}

func (t ChildTarget) String() string {
	if t.Item == nil {
		return "child <nil>"
	}
	return "child " + t.Item.LayoutID()
}

func (t ConstraintTarget) String() string {
	if t.Constraint == nil {
		return "constraint <nil>"
	}
	return "constraint " + t.Constraint.String()
}

func (t EffectTarget) String() string {
	if t.Effect == nil {
		return "effect <nil>"
	}
	return "effect " + t.Effect.EffectName()
}

func (t RecognizerTarget) String() string {
	if t.Recognizer == nil {
		return "recognizer <nil>"
	}
	return "recognizer " + t.Recognizer.RecognizerName()
}

func Child(item constraint.Item) Target { return ChildTarget{Item: item} }

func Constraint(c *constraint.Constraint) Target { return ConstraintTarget{Constraint: c} }

func Effect(e hierarchy.Effect) Target { return EffectTarget{Effect: e} }

func Recognizer(r hierarchy.Recognizer) Target { return RecognizerTarget{Recognizer: r} }

// Children wraps each item as a child target.
func Children[T constraint.Item](items ...T) []Target {
	out := make([]Target, len(items))
	for i, item := range items {
		out[i] = Child(item)
	}
	return out
}

// Constraints wraps each handle as a constraint target, typically the
// output of a generator.
func Constraints(cs []*constraint.Constraint) []Target {
	out := make([]Target, len(cs))
	for i, c := range cs {
		out[i] = Constraint(c)
	}
	return out
}

// Group returns targets stably partitioned by kind: children, then
// constraints, then effects, then recognizers. Targets of the same kind keep
// their relative order. Pointer targets are replaced by their values, nil
// targets (including typed nil pointers) are dropped, and the input slice is
// not modified.
func Group(targets []Target) []Target {
	var buckets [KindRecognizer + 1][]Target
	for _, t := range targets {
		if t = value(t); t == nil {
			continue
		}
		buckets[t.Kind()] = append(buckets[t.Kind()], t)
	}
	out := make([]Target, 0, len(targets))
	for _, b := range buckets {
		out = append(out, b...)
	}
	return out
}

// value returns the value form of t, or nil when t is nil or a nil pointer.
// The target methods have value receivers, so *ChildTarget and friends also
// satisfy Target.
func value(t Target) Target {
	switch p := t.(type) {
	case *ChildTarget:
		if p == nil {
			return nil
		}
		return *p
	case *ConstraintTarget:
		if p == nil {
			return nil
		}
		return *p
	case *EffectTarget:
		if p == nil {
			return nil
		}
		return *p
	case *RecognizerTarget:
		if p == nil {
			return nil
		}
		return *p
	}
	return t
}
