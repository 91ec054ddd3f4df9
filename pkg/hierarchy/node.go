package hierarchy

import (
	"github.com/google/uuid"

	"github.com/matzehuels/layoutkit/pkg/constraint"
)

// Metadata stores arbitrary key-value pairs attached to a node, such as a
// display label or the scene file the node came from.
type Metadata map[string]any

// Node is an item of a Tree. It is both a layout item (usable in constraint
// terms) and a potential container for other nodes.
//
// Nodes are compared by pointer, so a Node must not be copied after it has
// been added to a Tree.
type Node struct {
	id   string
	Meta Metadata
}

// NewNode creates a detached node. An empty id is replaced by a random UUID.
func NewNode(id string) *Node {
	if id == "" {
		id = uuid.NewString()
	}
	return &Node{id: id, Meta: Metadata{}}
}

// LayoutID implements constraint.Item. A nil node reports "<nil>".
func (n *Node) LayoutID() string {
	if n == nil {
		return "<nil>"
	}
	return n.id
}

// String returns the node ID.
func (n *Node) String() string { return n.LayoutID() }

// Attr returns the term for attribute a of this node.
func (n *Node) Attr(a constraint.Attribute) constraint.Term { return constraint.At(n, a) }

func (n *Node) Left() constraint.Term     { return n.Attr(constraint.Left) }
func (n *Node) Right() constraint.Term    { return n.Attr(constraint.Right) }
func (n *Node) Top() constraint.Term      { return n.Attr(constraint.Top) }
func (n *Node) Bottom() constraint.Term   { return n.Attr(constraint.Bottom) }
func (n *Node) Leading() constraint.Term  { return n.Attr(constraint.Leading) }
func (n *Node) Trailing() constraint.Term { return n.Attr(constraint.Trailing) }
func (n *Node) Width() constraint.Term    { return n.Attr(constraint.Width) }
func (n *Node) Height() constraint.Term   { return n.Attr(constraint.Height) }
func (n *Node) CenterX() constraint.Term  { return n.Attr(constraint.CenterX) }
func (n *Node) CenterY() constraint.Term  { return n.Attr(constraint.CenterY) }
func (n *Node) Baseline() constraint.Term { return n.Attr(constraint.Baseline) }
