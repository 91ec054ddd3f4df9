// Package generate synthesizes common constraint patterns from ordered item
// sequences.
//
// # Alignment
//
// [Align] anchors every item on the first one, producing N-1 equalities for
// N items. Composite alignments such as [AlignCenters] concatenate the
// single-attribute sets, horizontal first.
//
// # Distribution
//
// [Distribute] chains items in order along one axis, each item's leading
// edge following the previous item's trailing edge by a fixed spacing:
//
//	cs, err := generate.DistributeLeftToRight(8, a, b, c)
//	// b.left == a.right + 8
//	// c.left == b.right + 8
//
// # Dimensions
//
// [ConstrainWidth], [ConstrainHeightRange] and the aspect helpers build unary
// or same-item constraints on an item's size.
//
// Generators are pure: they return fresh constraint handles and never touch a
// hierarchy. Fewer than two items is a precondition violation reported as
// INSUFFICIENT_ITEMS, never an empty result.
package generate
