// Package batch mutates a layout container with a heterogeneous set of
// targets in a fixed, dependency-safe order.
//
// A [Target] is one of four kinds: a child item, a constraint, a visual
// effect, or a gesture recognizer. [Group] stages them as
//
//	children < constraints < effects < recognizers
//
// keeping the caller's order within each kind, so a constraint that
// references a sibling is never activated before that sibling has joined the
// hierarchy:
//
//	cs, _ := generate.AlignTop(title, subtitle)
//	targets := append(batch.Constraints(cs), batch.Children(title, subtitle)...)
//	report, err := batch.New(tree, logger).ApplyAll(header, targets)
//
// # Contract
//
// Every call is synchronous and issues exactly one hierarchy mutation per
// target. Callers must confine all mutations of a hierarchy to one goroutine;
// the Mutator does not lock. A batch that fails part-way is not rolled back:
// the returned [Report] lists the targets already applied.
package batch
