// Package constraint models linear layout constraints and the algebra over them.
//
// # Overview
//
// A [Constraint] is the relation
//
//	first.attr  R  m * second.attr + b
//
// where R is one of [Equal], [GreaterOrEqual] or [LessOrEqual]. The second
// term is an [Optional]: a constraint without one is unary ("width == 100").
// Constraints are plain comparable values; nothing in this package activates
// them. Activation is done by the apply package against a hierarchy.
//
// # Building Constraints
//
// Terms are built with [At] or with the term accessors of a concrete item type.
// The builders return required-priority constraints that can be refined with
// [Constraint.Times], [Constraint.Plus], [Constraint.WithPriority] and
// [Constraint.WithIdentifier]:
//
//	gap := constraint.Eq(constraint.At(b, constraint.Left), constraint.At(a, constraint.Right)).
//	    Plus(8).
//	    WithPriority(constraint.PriorityDefaultHigh)
//
// # Algebra
//
// [Reverse] swaps the two subjects of a constraint, solving for the second
// term. The multiplier becomes 1/m, the constant -b/m, and an inequality
// changes direction only when m is non-negative. [PositiveConstant] uses
// Reverse on a best-effort basis to move a negative constant to the other
// side; it never fails.
//
// For every reversible c, Reverse(Reverse(c)) equals c up to floating-point
// rounding (see [ApproxEqual]), except that the identifier is dropped.
package constraint
