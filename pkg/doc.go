// Package pkg provides the libraries behind layoutkit.
//
// # Overview
//
// Layoutkit describes a user interface as a hierarchy of items whose
// geometry is related by linear constraints of the form
//
//	first.attr R m * second.attr + b
//
// where R is ==, >= or <=. The libraries generate such constraints from
// high-level operations (align, distribute, size), activate them on the
// right container of the hierarchy, and apply whole batches of structural
// changes in an order that keeps every activation valid.
//
// The typical data flow:
//
//	scene document (TOML / YAML)
//	         ↓
//	    [scene] package (items + ops)
//	         ↓
//	    [generate] package (constraints)
//	         ↓
//	    [batch] + [apply] packages (grouped activation on a [hierarchy])
//	         ↓
//	    [render/dot] package (DOT / SVG)
//
// # Quick Start
//
//	tree := hierarchy.NewTree()
//	row, _ := tree.NewNode("row")
//	a, _ := tree.NewNode("a")
//	b, _ := tree.NewNode("b")
//
//	cs, _ := generate.DistributeLeftToRight(8, a, b)
//	targets := append(batch.Children(a, b), batch.Constraints(cs)...)
//
//	_, err := batch.New(tree, nil).ApplyAll(row, targets)
//
// # Main Packages
//
// [constraint] - Terms, relations, priorities and the Constraint value, with
// subject reversal ([constraint.Reverse]) and constant normalization.
//
// [generate] - Constraint generators: alignment, distribution along a
// direction, fixed and ranged sizes, aspect ratios.
//
// [hierarchy] - The item tree and the contract the engine needs from it:
// common ancestors, constraint ownership, effects and recognizers.
//
// [apply] - Activates a single constraint on the nearest common ancestor of
// its items.
//
// [batch] - Applies or removes mixed batches of children, constraints,
// effects and recognizers, children first.
//
// [scene] - Declarative scene documents and their translation into a tree
// plus batch targets.
//
// [render/dot] - Graphviz rendering of a hierarchy and its active
// constraints.
//
// [errors] - Coded errors shared by every package.
//
// [observability] - Hook interfaces for activation, batch and render events.
//
// # Testing
//
//	go test ./...              # All tests
//	go test ./pkg/generate/... # Specific package
//	go test -run Example ./... # Examples only
//
// [constraint]: https://pkg.go.dev/github.com/matzehuels/layoutkit/pkg/constraint
// [generate]: https://pkg.go.dev/github.com/matzehuels/layoutkit/pkg/generate
// [hierarchy]: https://pkg.go.dev/github.com/matzehuels/layoutkit/pkg/hierarchy
// [apply]: https://pkg.go.dev/github.com/matzehuels/layoutkit/pkg/apply
// [batch]: https://pkg.go.dev/github.com/matzehuels/layoutkit/pkg/batch
// [scene]: https://pkg.go.dev/github.com/matzehuels/layoutkit/pkg/scene
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/layoutkit/pkg/render/dot
// [errors]: https://pkg.go.dev/github.com/matzehuels/layoutkit/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/layoutkit/pkg/observability
package pkg
