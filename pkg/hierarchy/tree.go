package hierarchy

import (
	"errors"
	"fmt"
	"slices"

	"github.com/matzehuels/layoutkit/pkg/constraint"
	errs "github.com/matzehuels/layoutkit/pkg/errors"
)

var (
	// ErrInvalidNodeID is returned by [Tree.AddNode] when the node is nil or
	// its ID fails item ID validation.
	ErrInvalidNodeID = errors.New("invalid node ID")

	// ErrDuplicateNodeID is returned by [Tree.AddNode] when a node with the
	// same ID is already registered.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownNode is returned when an item is not a node registered with
	// this tree.
	ErrUnknownNode = errors.New("unknown node")

	// ErrCycle is returned by [Tree.AddChild] when the child is the container
	// itself or one of its ancestors.
	ErrCycle = errors.New("child would become its own ancestor")

	// ErrNotChild is returned by [Tree.RemoveChild] when the child is not a
	// direct child of the container.
	ErrNotChild = errors.New("not a child of container")

	// ErrNilTarget is returned when a nil constraint, effect or recognizer is
	// passed to a mutation.
	ErrNilTarget = errors.New("nil mutation target")

	// ErrAlreadyActive is returned by [Tree.AddConstraint] when the constraint
	// handle is already active on some container.
	ErrAlreadyActive = errors.New("constraint already active")

	// ErrNotActive is returned by [Tree.RemoveConstraint] when the constraint
	// is not active on the given container.
	ErrNotActive = errors.New("constraint not active on container")

	// ErrOutsideContainer is returned by [Tree.AddConstraint] when an item of
	// the constraint does not lie within the container.
	ErrOutsideContainer = errors.New("constraint references an item outside the container")

	ErrDuplicateEffect     = errors.New("effect already attached")
	ErrUnknownEffect       = errors.New("effect not attached")
	ErrDuplicateRecognizer = errors.New("recognizer already attached")
	ErrUnknownRecognizer   = errors.New("recognizer not attached")

	// ErrInconsistent is returned by [Tree.Validate] when the internal indices
	// disagree with each other.
	ErrInconsistent = errors.New("hierarchy index is inconsistent")
)

// Tree is an in-memory layout hierarchy. It owns the child lists, the active
// constraint sets, and the effects and recognizers of every node.
//
// A node is registered with [Tree.AddNode] and becomes part of the hierarchy
// once it is added as a child of another node. Nodes without a parent are
// roots. Every node can act as a container.
//
// Tree is not safe for concurrent use. All mutations must come from a single
// goroutine, or be serialized by the caller.
type Tree struct {
	nodes       map[string]*Node
	order       []string
	parent      map[string]string   // nodeID -> parent ID
	children    map[string][]string // nodeID -> child IDs in insertion order
	active      map[string][]*constraint.Constraint
	owner       map[*constraint.Constraint]string
	effects     map[string][]Effect
	recognizers map[string][]Recognizer
}

var _ Hierarchy = (*Tree)(nil)

// NewTree creates an empty hierarchy.
func NewTree() *Tree {
	return &Tree{
		nodes:       make(map[string]*Node),
		parent:      make(map[string]string),
		children:    make(map[string][]string),
		active:      make(map[string][]*constraint.Constraint),
		owner:       make(map[*constraint.Constraint]string),
		effects:     make(map[string][]Effect),
		recognizers: make(map[string][]Recognizer),
	}
}

// AddNode registers n as a root of the tree.
func (t *Tree) AddNode(n *Node) error {
	if n == nil {
		return ErrInvalidNodeID
	}
	if err := errs.ValidateItemID(n.id); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidNodeID, err)
	}
	if _, exists := t.nodes[n.id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.id)
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	t.nodes[n.id] = n
	t.order = append(t.order, n.id)
	return nil
}

// NewNode creates a node with the given ID (a UUID when empty) and registers it.
func (t *Tree) NewNode(id string) (*Node, error) {
	n := NewNode(id)
	if err := t.AddNode(n); err != nil {
		return nil, err
	}
	return n, nil
}

// AddChild attaches child beneath container, appending it to the container's
// child list. A child that already has a different parent is first detached
// from it, with the same constraint cleanup as [Tree.RemoveChild]. Adding an
// existing child again moves it to the end of the list.
func (t *Tree) AddChild(container, child constraint.Item) error {
	c, err := t.mustResolve(container)
	if err != nil {
		return err
	}
	ch, err := t.mustResolve(child)
	if err != nil {
		return err
	}
	if t.IsDescendant(ch, c) {
		return fmt.Errorf("%w: %s under %s", ErrCycle, ch.id, c.id)
	}

	if p, ok := t.parent[ch.id]; ok {
		if p == c.id {
			t.children[c.id] = slices.DeleteFunc(t.children[c.id], func(id string) bool { return id == ch.id })
			t.children[c.id] = append(t.children[c.id], ch.id)
			return nil
		}
		t.detach(ch)
	}

	t.parent[ch.id] = c.id
	t.children[c.id] = append(t.children[c.id], ch.id)
	return nil
}

// RemoveChild detaches child, and its subtree, from container. Every active
// constraint that references a node of the detached subtree and is owned by
// a container outside of it is deactivated.
func (t *Tree) RemoveChild(container, child constraint.Item) error {
	c, err := t.mustResolve(container)
	if err != nil {
		return err
	}
	ch, err := t.mustResolve(child)
	if err != nil {
		return err
	}
	if p, ok := t.parent[ch.id]; !ok || p != c.id {
		return fmt.Errorf("%w: %s is not a child of %s", ErrNotChild, ch.id, c.id)
	}
	t.detach(ch)
	return nil
}

func (t *Tree) detach(ch *Node) {
	p := t.parent[ch.id]
	t.children[p] = slices.DeleteFunc(t.children[p], func(id string) bool { return id == ch.id })
	if len(t.children[p]) == 0 {
		delete(t.children, p)
	}
	delete(t.parent, ch.id)

	inside := t.subtree(ch.id)
	var stale []*constraint.Constraint
	for _, id := range t.order {
		if inside[id] {
			continue
		}
		for _, c := range t.active[id] {
			if t.referencesAny(c, inside) {
				stale = append(stale, c)
			}
		}
	}
	for _, c := range stale {
		t.deactivate(c)
	}
}

// AddConstraint activates c on container. Both items of c must be container
// itself or lie beneath it, and the handle must not be active anywhere.
func (t *Tree) AddConstraint(container constraint.Item, c *constraint.Constraint) error {
	if c == nil {
		return ErrNilTarget
	}
	cn, err := t.mustResolve(container)
	if err != nil {
		return err
	}
	if owner, ok := t.owner[c]; ok {
		return fmt.Errorf("%w: %s on %s", ErrAlreadyActive, c, owner)
	}
	for _, item := range c.Items() {
		if !t.IsDescendant(cn, item) {
			return fmt.Errorf("%w: %s not within %s", ErrOutsideContainer, itemID(item), cn.id)
		}
	}
	t.owner[c] = cn.id
	t.active[cn.id] = append(t.active[cn.id], c)
	return nil
}

// RemoveConstraint deactivates c, which must be active on container.
func (t *Tree) RemoveConstraint(container constraint.Item, c *constraint.Constraint) error {
	if c == nil {
		return ErrNilTarget
	}
	cn, err := t.mustResolve(container)
	if err != nil {
		return err
	}
	if owner, ok := t.owner[c]; !ok || owner != cn.id {
		return fmt.Errorf("%w: %s on %s", ErrNotActive, c, cn.id)
	}
	t.deactivate(c)
	return nil
}

func (t *Tree) deactivate(c *constraint.Constraint) {
	owner := t.owner[c]
	delete(t.owner, c)
	t.active[owner] = slices.DeleteFunc(t.active[owner], func(x *constraint.Constraint) bool { return x == c })
	if len(t.active[owner]) == 0 {
		delete(t.active, owner)
	}
}

// AddEffect attaches e to container.
func (t *Tree) AddEffect(container constraint.Item, e Effect) error {
	if e == nil {
		return ErrNilTarget
	}
	cn, err := t.mustResolve(container)
	if err != nil {
		return err
	}
	if slices.Contains(t.effects[cn.id], e) {
		return fmt.Errorf("%w: %s on %s", ErrDuplicateEffect, e.EffectName(), cn.id)
	}
	t.effects[cn.id] = append(t.effects[cn.id], e)
	return nil
}

// RemoveEffect detaches e from container.
func (t *Tree) RemoveEffect(container constraint.Item, e Effect) error {
	if e == nil {
		return ErrNilTarget
	}
	cn, err := t.mustResolve(container)
	if err != nil {
		return err
	}
	i := slices.Index(t.effects[cn.id], e)
	if i < 0 {
		return fmt.Errorf("%w: %s on %s", ErrUnknownEffect, e.EffectName(), cn.id)
	}
	t.effects[cn.id] = slices.Delete(t.effects[cn.id], i, i+1)
	return nil
}

// AddRecognizer attaches r to container.
func (t *Tree) AddRecognizer(container constraint.Item, r Recognizer) error {
	if r == nil {
		return ErrNilTarget
	}
	cn, err := t.mustResolve(container)
	if err != nil {
		return err
	}
	if slices.Contains(t.recognizers[cn.id], r) {
		return fmt.Errorf("%w: %s on %s", ErrDuplicateRecognizer, r.RecognizerName(), cn.id)
	}
	t.recognizers[cn.id] = append(t.recognizers[cn.id], r)
	return nil
}

// RemoveRecognizer detaches r from container.
func (t *Tree) RemoveRecognizer(container constraint.Item, r Recognizer) error {
	if r == nil {
		return ErrNilTarget
	}
	cn, err := t.mustResolve(container)
	if err != nil {
		return err
	}
	i := slices.Index(t.recognizers[cn.id], r)
	if i < 0 {
		return fmt.Errorf("%w: %s on %s", ErrUnknownRecognizer, r.RecognizerName(), cn.id)
	}
	t.recognizers[cn.id] = slices.Delete(t.recognizers[cn.id], i, i+1)
	return nil
}

// resolve maps an item to the node registered under the same pointer.
func (t *Tree) resolve(item constraint.Item) (*Node, bool) {
	n, ok := item.(*Node)
	if !ok || n == nil {
		return nil, false
	}
	return n, t.nodes[n.id] == n
}

func (t *Tree) mustResolve(item constraint.Item) (*Node, error) {
	n, ok := t.resolve(item)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, itemID(item))
	}
	return n, nil
}

// subtree returns the IDs of the node and all its descendants.
func (t *Tree) subtree(id string) map[string]bool {
	inside := map[string]bool{id: true}
	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range t.children[cur] {
			inside[c] = true
			stack = append(stack, c)
		}
	}
	return inside
}

func (t *Tree) referencesAny(c *constraint.Constraint, ids map[string]bool) bool {
	for _, item := range c.Items() {
		if n, ok := t.resolve(item); ok && ids[n.id] {
			return true
		}
	}
	return false
}

func itemID(item constraint.Item) string {
	if item == nil {
		return "<nil>"
	}
	return item.LayoutID()
}
