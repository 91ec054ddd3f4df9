package generate

import (
	"github.com/matzehuels/layoutkit/pkg/constraint"
	errs "github.com/matzehuels/layoutkit/pkg/errors"
)

// Direction names a distribution axis together with the pair of edges the
// chain links: the leading edge of each item follows the trailing edge of
// the item before it.
type Direction struct {
	Name     string
	Leading  constraint.Attribute
	Trailing constraint.Attribute
}

var (
	LeftToRight       = Direction{"left-to-right", constraint.Left, constraint.Right}
	LeadingToTrailing = Direction{"leading-to-trailing", constraint.Leading, constraint.Trailing}
	TopToBottom       = Direction{"top-to-bottom", constraint.Top, constraint.Bottom}
)

// Directions lists the built-in directions.
var Directions = []Direction{LeftToRight, LeadingToTrailing, TopToBottom}

// ParseDirection looks up a built-in direction by name.
func ParseDirection(name string) (Direction, error) {
	for _, d := range Directions {
		if d.Name == name {
			return d, nil
		}
	}
	return Direction{}, errs.New(errs.ErrCodeInvalidInput, "unknown direction %q", name)
}

// Distribute chains items in the given order, which is never changed:
//
//	items[i+1].leading == items[i].trailing + spacing    for i = 0..N-2
//
// Zero spacing makes the items abut. It fails with INSUFFICIENT_ITEMS when
// fewer than two items are given and INVALID_SPACING when spacing is negative
// or not finite.
func Distribute(items []constraint.Item, spacing float64, leading, trailing constraint.Attribute) ([]*constraint.Constraint, error) {
	if len(items) < 2 {
		return nil, errs.New(errs.ErrCodeInsufficientItems, "distribution needs at least 2 items, got %d", len(items))
	}
	if err := errs.ValidateSpacing(spacing); err != nil {
		return nil, err
	}
	if leading == constraint.NotAnAttribute || trailing == constraint.NotAnAttribute {
		return nil, errs.New(errs.ErrCodeInvalidAttribute, "distribution needs a leading and a trailing attribute")
	}
	for i, item := range items {
		if item == nil {
			return nil, errs.New(errs.ErrCodeInvalidItem, "item %d is nil", i)
		}
	}

	out := make([]*constraint.Constraint, 0, len(items)-1)
	for i := 0; i < len(items)-1; i++ {
		c := constraint.Eq(constraint.At(items[i+1], leading), constraint.At(items[i], trailing)).Plus(spacing)
		out = append(out, &c)
	}
	return out, nil
}

// DistributeAlong is Distribute with the edges of d.
func DistributeAlong(d Direction, spacing float64, items ...constraint.Item) ([]*constraint.Constraint, error) {
	return Distribute(items, spacing, d.Leading, d.Trailing)
}

func DistributeLeftToRight(spacing float64, items ...constraint.Item) ([]*constraint.Constraint, error) {
	return DistributeAlong(LeftToRight, spacing, items...)
}

func DistributeLeadingToTrailing(spacing float64, items ...constraint.Item) ([]*constraint.Constraint, error) {
	return DistributeAlong(LeadingToTrailing, spacing, items...)
}

func DistributeTopToBottom(spacing float64, items ...constraint.Item) ([]*constraint.Constraint, error) {
	return DistributeAlong(TopToBottom, spacing, items...)
}
