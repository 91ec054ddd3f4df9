// Package hierarchy defines the layout hierarchy collaborator consumed by the
// constraint engine, and provides an in-memory implementation.
//
// # Contracts
//
// [Query] answers the structural questions the applier needs (nearest common
// ancestor, descendant checks, which container a constraint is active on).
// [Mutator] performs one mutation per call: attaching children, constraints,
// effects and recognizers to containers and detaching them again.
// A real rendering runtime would implement both against its own view tree.
//
// # In-memory Tree
//
// [Tree] implements [Hierarchy] over [Node] values:
//
//	t := hierarchy.NewTree()
//	root, _ := t.NewNode("window")
//	title, _ := t.NewNode("title")
//	_ = t.AddChild(root, title)
//
// Removing a child detaches its whole subtree and deactivates every
// constraint that linked the subtree to the rest of the hierarchy.
// Constraints entirely inside the subtree stay active on their containers.
//
// # Concurrency
//
// The hierarchy is single-writer: Tree performs no locking, and callers must
// confine all mutations of one tree to a single goroutine.
package hierarchy
