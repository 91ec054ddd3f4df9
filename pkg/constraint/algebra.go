package constraint

import (
	"math"

	errs "github.com/matzehuels/layoutkit/pkg/errors"
)

// Reverse swaps the subjects of c, rewriting
//
//	y R m*x + b    as    x R' (1/m)*y - b/m
//
// The relation is kept when m < 0 and flipped when m >= 0. Equal is never
// changed by the flip.
//
// The result keeps c's priority and drops its identifier; it is a new
// constraint, not an alias of c.
//
// The second return value is false, and the Constraint is the zero value,
// when c is unary, its second attribute is NotAnAttribute, or m == 0. It is
// also false when 1/m or -b/m overflows, as for subnormal multipliers.
func Reverse(c Constraint) (Constraint, bool) {
	second, ok := c.Second.Get()
	if !ok || second.Attribute == NotAnAttribute || c.Multiplier == 0 {
		return Constraint{}, false
	}
	m, b := 1/c.Multiplier, -c.Constant/c.Multiplier
	if !finite(m) || !finite(b) {
		return Constraint{}, false
	}

	rel := c.Relation
	if c.Multiplier >= 0 {
		rel = rel.Flipped()
	}

	return Constraint{
		First:      second,
		Second:     Some(c.First),
		Relation:   rel,
		Multiplier: m,
		Constant:   b,
		Priority:   c.Priority,
	}, true
}

// ReverseErr is Reverse for callers that want an error instead of a flag.
// It returns an IRREVERSIBLE_CONSTRAINT error when c cannot be reversed.
func ReverseErr(c Constraint) (Constraint, error) {
	r, ok := Reverse(c)
	if !ok {
		return Constraint{}, errs.New(errs.ErrCodeIrreversibleConstraint, "cannot swap subjects of %s", c)
	}
	return r, nil
}

// PositiveConstant puts c into a form with a non-negative constant where
// possible. It returns c unchanged when its constant is already >= 0 and
// Reverse(c) when the constant is negative and c is reversible. An
// irreversible constraint with a negative constant is returned unchanged.
func PositiveConstant(c Constraint) Constraint {
	if c.Constant >= 0 {
		return c
	}
	if r, ok := Reverse(c); ok {
		return r
	}
	return c
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
