package hierarchy

import (
	"fmt"
	"slices"

	"github.com/matzehuels/layoutkit/pkg/constraint"
)

// CommonAncestor returns the nearest node that is an ancestor of, or equal
// to, both a and b. It returns false when either item is not a node of this
// tree or the two live under different roots.
func (t *Tree) CommonAncestor(a, b constraint.Item) (constraint.Item, bool) {
	an, ok := t.resolve(a)
	if !ok {
		return nil, false
	}
	bn, ok := t.resolve(b)
	if !ok {
		return nil, false
	}

	seen := make(map[string]bool)
	for id, ok := an.id, true; ok; id, ok = t.parent[id] {
		seen[id] = true
	}
	for id, ok := bn.id, true; ok; id, ok = t.parent[id] {
		if seen[id] {
			return t.nodes[id], true
		}
	}
	return nil, false
}

// IsDescendant reports whether item is container or lies beneath it.
func (t *Tree) IsDescendant(container, item constraint.Item) bool {
	cn, ok := t.resolve(container)
	if !ok {
		return false
	}
	n, ok := t.resolve(item)
	if !ok {
		return false
	}
	for id, ok := n.id, true; ok; id, ok = t.parent[id] {
		if id == cn.id {
			return true
		}
	}
	return false
}

// Owner returns the container on which c is active.
func (t *Tree) Owner(c *constraint.Constraint) (constraint.Item, bool) {
	id, ok := t.owner[c]
	if !ok {
		return nil, false
	}
	return t.nodes[id], true
}

// Node returns the node registered under id.
func (t *Tree) Node(id string) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Nodes returns all registered nodes in registration order.
func (t *Tree) Nodes() []*Node {
	nodes := make([]*Node, len(t.order))
	for i, id := range t.order {
		nodes[i] = t.nodes[id]
	}
	return nodes
}

// NodeCount returns the number of registered nodes.
func (t *Tree) NodeCount() int { return len(t.nodes) }

// Parent returns the parent of item, or false for roots and unknown items.
func (t *Tree) Parent(item constraint.Item) (*Node, bool) {
	n, ok := t.resolve(item)
	if !ok {
		return nil, false
	}
	p, ok := t.parent[n.id]
	if !ok {
		return nil, false
	}
	return t.nodes[p], true
}

// Children returns the direct children of item in insertion order.
func (t *Tree) Children(item constraint.Item) []*Node {
	n, ok := t.resolve(item)
	if !ok {
		return nil
	}
	ids := t.children[n.id]
	nodes := make([]*Node, len(ids))
	for i, id := range ids {
		nodes[i] = t.nodes[id]
	}
	return nodes
}

// Roots returns the nodes without a parent, in registration order.
func (t *Tree) Roots() []*Node {
	var roots []*Node
	for _, id := range t.order {
		if _, ok := t.parent[id]; !ok {
			roots = append(roots, t.nodes[id])
		}
	}
	return roots
}

// Depth returns the number of ancestors of item; roots have depth 0.
// Unknown items report -1.
func (t *Tree) Depth(item constraint.Item) int {
	n, ok := t.resolve(item)
	if !ok {
		return -1
	}
	depth := 0
	for id, ok := t.parent[n.id]; ok; id, ok = t.parent[id] {
		depth++
	}
	return depth
}

// Constraints returns the constraints active on container in activation order.
func (t *Tree) Constraints(container constraint.Item) []*constraint.Constraint {
	n, ok := t.resolve(container)
	if !ok {
		return nil
	}
	return slices.Clone(t.active[n.id])
}

// ActiveCount returns the number of active constraints in the whole tree.
func (t *Tree) ActiveCount() int { return len(t.owner) }

// Effects returns the effects attached to container.
func (t *Tree) Effects(container constraint.Item) []Effect {
	n, ok := t.resolve(container)
	if !ok {
		return nil
	}
	return slices.Clone(t.effects[n.id])
}

// Recognizers returns the recognizers attached to container.
func (t *Tree) Recognizers(container constraint.Item) []Recognizer {
	n, ok := t.resolve(container)
	if !ok {
		return nil
	}
	return slices.Clone(t.recognizers[n.id])
}

// Validate checks the internal indices and returns nil if they agree:
//
//  1. Every parent link names registered nodes and is mirrored in the child list
//  2. No node is its own ancestor
//  3. Every active constraint is owned by a container that holds both its items
//
// Mutations keep these invariants; Validate exists for tests and debugging.
func (t *Tree) Validate() error {
	for child, p := range t.parent {
		if _, ok := t.nodes[child]; !ok {
			return fmt.Errorf("%w: parent link from unknown node %s", ErrInconsistent, child)
		}
		if !slices.Contains(t.children[p], child) {
			return fmt.Errorf("%w: %s missing from children of %s", ErrInconsistent, child, p)
		}
	}
	for p, kids := range t.children {
		for _, k := range kids {
			if t.parent[k] != p {
				return fmt.Errorf("%w: %s listed under %s but parent is %q", ErrInconsistent, k, p, t.parent[k])
			}
		}
	}
	if err := t.detectCycles(); err != nil {
		return err
	}
	for c, owner := range t.owner {
		if !slices.Contains(t.active[owner], c) {
			return fmt.Errorf("%w: %s missing from active set of %s", ErrInconsistent, c, owner)
		}
		for _, item := range c.Items() {
			if !t.IsDescendant(t.nodes[owner], item) {
				return fmt.Errorf("%w: %s owned by %s", ErrOutsideContainer, c, owner)
			}
		}
	}
	return nil
}

func (t *Tree) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(t.nodes))
	for _, start := range t.order {
		var path []string
		id, ok := start, true
		for ok && color[id] == white {
			color[id] = gray
			path = append(path, id)
			id, ok = t.parent[id]
		}
		if ok && color[id] == gray {
			return fmt.Errorf("%w: %s", ErrCycle, id)
		}
		for _, p := range path {
			color[p] = black
		}
	}
	return nil
}
