package generate

import (
	"github.com/matzehuels/layoutkit/pkg/constraint"
	errs "github.com/matzehuels/layoutkit/pkg/errors"
)

// Operand is an item taking part in an alignment, optionally with its own
// attribute instead of the shared one.
type Operand struct {
	Item     constraint.Item
	Override constraint.Optional[constraint.Attribute]
}

// Of wraps items as operands without overrides.
func Of(items ...constraint.Item) []Operand {
	ops := make([]Operand, len(items))
	for i, item := range items {
		ops[i] = Operand{Item: item}
	}
	return ops
}

// WithAttribute returns an operand that aligns attr of item instead of the
// shared attribute.
func WithAttribute(item constraint.Item, attr constraint.Attribute) Operand {
	return Operand{Item: item, Override: constraint.Some(attr)}
}

func (o Operand) term(shared constraint.Attribute) constraint.Term {
	return constraint.At(o.Item, o.Override.OrElse(shared))
}

// Align returns the N-1 equalities anchoring every operand on the first:
//
//	ops[0].attr == ops[i].attr    for i = 1..N-1
//
// in operand order, each with multiplier 1 and constant 0. It fails with
// INSUFFICIENT_ITEMS when fewer than two operands are given.
func Align(ops []Operand, attr constraint.Attribute) ([]*constraint.Constraint, error) {
	if len(ops) < 2 {
		return nil, errs.New(errs.ErrCodeInsufficientItems, "alignment needs at least 2 items, got %d", len(ops))
	}
	if err := checkOperands(ops, attr); err != nil {
		return nil, err
	}

	anchor := ops[0].term(attr)
	out := make([]*constraint.Constraint, 0, len(ops)-1)
	for _, op := range ops[1:] {
		c := constraint.Eq(anchor, op.term(attr))
		out = append(out, &c)
	}
	return out, nil
}

func checkOperands(ops []Operand, shared constraint.Attribute) error {
	for i, op := range ops {
		if op.Item == nil {
			return errs.New(errs.ErrCodeInvalidItem, "item %d is nil", i)
		}
		if op.Override.OrElse(shared) == constraint.NotAnAttribute {
			return errs.New(errs.ErrCodeInvalidAttribute, "no attribute to align for %s", op.Item.LayoutID())
		}
	}
	return nil
}

func AlignLeft(items ...constraint.Item) ([]*constraint.Constraint, error) {
	return Align(Of(items...), constraint.Left)
}

func AlignRight(items ...constraint.Item) ([]*constraint.Constraint, error) {
	return Align(Of(items...), constraint.Right)
}

func AlignLeading(items ...constraint.Item) ([]*constraint.Constraint, error) {
	return Align(Of(items...), constraint.Leading)
}

func AlignTrailing(items ...constraint.Item) ([]*constraint.Constraint, error) {
	return Align(Of(items...), constraint.Trailing)
}

func AlignTop(items ...constraint.Item) ([]*constraint.Constraint, error) {
	return Align(Of(items...), constraint.Top)
}

func AlignBottom(items ...constraint.Item) ([]*constraint.Constraint, error) {
	return Align(Of(items...), constraint.Bottom)
}

// AlignHorizontally aligns the horizontal centers (centerX) of items.
func AlignHorizontally(items ...constraint.Item) ([]*constraint.Constraint, error) {
	return Align(Of(items...), constraint.CenterX)
}

// AlignVertically aligns the vertical centers (centerY) of items.
func AlignVertically(items ...constraint.Item) ([]*constraint.Constraint, error) {
	return Align(Of(items...), constraint.CenterY)
}

func AlignBaselines(items ...constraint.Item) ([]*constraint.Constraint, error) {
	return Align(Of(items...), constraint.Baseline)
}

// AlignCenters returns the centerX alignment followed by the centerY
// alignment, 2*(N-1) constraints in all.
func AlignCenters(items ...constraint.Item) ([]*constraint.Constraint, error) {
	return alignAll(Of(items...), constraint.CenterX, constraint.CenterY)
}

// AlignEdges aligns all four edges of items: left, right, top and bottom,
// in that order.
func AlignEdges(items ...constraint.Item) ([]*constraint.Constraint, error) {
	return alignAll(Of(items...), constraint.Left, constraint.Right, constraint.Top, constraint.Bottom)
}

func alignAll(ops []Operand, attrs ...constraint.Attribute) ([]*constraint.Constraint, error) {
	var out []*constraint.Constraint
	for _, attr := range attrs {
		cs, err := Align(ops, attr)
		if err != nil {
			return nil, err
		}
		out = append(out, cs...)
	}
	return out, nil
}
