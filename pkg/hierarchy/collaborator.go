package hierarchy

import "github.com/matzehuels/layoutkit/pkg/constraint"

// Query answers structural questions about a layout hierarchy.
type Query interface {
	// CommonAncestor returns the nearest item that is an ancestor of, or
	// equal to, both a and b. Passing the same item twice yields the item
	// itself when it belongs to the hierarchy.
	CommonAncestor(a, b constraint.Item) (constraint.Item, bool)

	// IsDescendant reports whether item is container or lies beneath it.
	IsDescendant(container, item constraint.Item) bool

	// Owner returns the container on which c is currently active.
	Owner(c *constraint.Constraint) (constraint.Item, bool)
}

// Mutator changes a layout hierarchy. Each call performs exactly one
// mutation and either completes or returns an error without side effects.
type Mutator interface {
	AddChild(container, child constraint.Item) error
	RemoveChild(container, child constraint.Item) error

	AddConstraint(container constraint.Item, c *constraint.Constraint) error
	RemoveConstraint(container constraint.Item, c *constraint.Constraint) error

	AddEffect(container constraint.Item, e Effect) error
	RemoveEffect(container constraint.Item, e Effect) error

	AddRecognizer(container constraint.Item, r Recognizer) error
	RemoveRecognizer(container constraint.Item, r Recognizer) error
}

// Hierarchy is the full collaborator consumed by the batch mutator.
type Hierarchy interface {
	Query
	Mutator
}

// Effect is a visual effect (motion, parallax, blur) attached to a container.
// Implementations must be comparable.
type Effect interface {
	EffectName() string
}

// Recognizer is an input gesture recognizer attached to a container.
// Implementations must be comparable.
type Recognizer interface {
	RecognizerName() string
}

// NamedEffect is an Effect identified only by its name.
type NamedEffect string

func (e NamedEffect) EffectName() string { return string(e) }

// NamedRecognizer is a Recognizer identified only by its name.
type NamedRecognizer string

func (r NamedRecognizer) RecognizerName() string { return string(r) }
