package constraint

import (
	"math"
	"strconv"
	"strings"

	errs "github.com/matzehuels/layoutkit/pkg/errors"
)

// Item is a participant in a linear geometric relationship. Implementations
// must be comparable (typically a pointer) because constraints compare their
// terms with ==.
type Item interface {
	// LayoutID returns a stable, human-readable identifier used in logs and
	// rendered output.
	LayoutID() string
}

// Term is one side of a constraint: an attribute of an item.
type Term struct {
	Item      Item
	Attribute Attribute
}

// At builds the term for attr on item.
func At(item Item, attr Attribute) Term { return Term{Item: item, Attribute: attr} }

// Equal reports whether both terms name the same attribute of the same item.
func (t Term) Equal(o Term) bool { return t.Item == o.Item && t.Attribute == o.Attribute }

// String renders the term as "item.attribute".
func (t Term) String() string {
	id := "<nil>"
	if t.Item != nil {
		id = t.Item.LayoutID()
	}
	return id + "." + t.Attribute.String()
}

// Constraint is the linear relation
//
//	First  Relation  Multiplier * Second + Constant
//
// between two attribute terms. When Second is absent the constraint is unary
// (First Relation Constant) and Multiplier carries no meaning for the algebra.
//
// Constraint is a plain value: copying it does not copy any activation state.
// A hierarchy tracks activation by *Constraint handle, so the same value
// registered through two different pointers counts as two constraints.
type Constraint struct {
	First      Term
	Second     Optional[Term]
	Relation   Relation
	Multiplier float64
	Constant   float64
	Priority   Priority
	Identifier Optional[string]
}

// New builds "first rel multiplier*second + constant" at required priority.
func New(first Term, rel Relation, second Term, multiplier, constant float64) Constraint {
	return Constraint{
		First:      first,
		Second:     Some(second),
		Relation:   rel,
		Multiplier: multiplier,
		Constant:   constant,
		Priority:   PriorityRequired,
	}
}

// NewUnary builds "first rel constant" at required priority.
func NewUnary(first Term, rel Relation, constant float64) Constraint {
	return Constraint{
		First:      first,
		Relation:   rel,
		Multiplier: 1,
		Constant:   constant,
		Priority:   PriorityRequired,
	}
}

// Eq builds "first == second".
func Eq(first, second Term) Constraint { return New(first, Equal, second, 1, 0) }

// Ge builds "first >= second".
func Ge(first, second Term) Constraint { return New(first, GreaterOrEqual, second, 1, 0) }

// Le builds "first <= second".
func Le(first, second Term) Constraint { return New(first, LessOrEqual, second, 1, 0) }

// EqConst builds "first == constant".
func EqConst(first Term, constant float64) Constraint { return NewUnary(first, Equal, constant) }

// GeConst builds "first >= constant".
func GeConst(first Term, constant float64) Constraint {
	return NewUnary(first, GreaterOrEqual, constant)
}

// LeConst builds "first <= constant".
func LeConst(first Term, constant float64) Constraint {
	return NewUnary(first, LessOrEqual, constant)
}

// Times returns a copy with the multiplier set to m.
func (c Constraint) Times(m float64) Constraint {
	c.Multiplier = m
	return c
}

// Plus returns a copy with the constant set to b.
func (c Constraint) Plus(b float64) Constraint {
	c.Constant = b
	return c
}

// WithPriority returns a copy with the given priority.
func (c Constraint) WithPriority(p Priority) Constraint {
	c.Priority = p
	return c
}

// WithIdentifier returns a copy labelled with id.
func (c Constraint) WithIdentifier(id string) Constraint {
	c.Identifier = Some(id)
	return c
}

// IsUnary reports whether the constraint has no second term.
func (c Constraint) IsUnary() bool { return !c.Second.IsSome() }

// Items returns the distinct items referenced by the constraint, first item first.
func (c Constraint) Items() []Item {
	items := []Item{c.First.Item}
	if second, ok := c.Second.Get(); ok && second.Item != nil && second.Item != c.First.Item {
		items = append(items, second.Item)
	}
	return items
}

// References reports whether item appears on either side of the constraint.
func (c Constraint) References(item Item) bool {
	if c.First.Item == item {
		return true
	}
	second, ok := c.Second.Get()
	return ok && second.Item == item
}

// Validate checks structural well-formedness:
//   - the first term names a non-nil item and a real attribute
//   - a present second term names a non-nil item and a real attribute
//   - the relation is ==, >= or <=
//   - the multiplier is nonzero when a second term is present
//   - multiplier and constant are finite
//   - the priority is in range
func (c Constraint) Validate() error {
	if c.First.Item == nil {
		return errs.New(errs.ErrCodeInvalidItem, "first item is nil")
	}
	if c.First.Attribute == NotAnAttribute {
		return errs.New(errs.ErrCodeInvalidAttribute, "first attribute of %s is not an attribute", c.First.Item.LayoutID())
	}
	if !c.Relation.Valid() {
		return errs.New(errs.ErrCodeInvalidInput, "unknown relation %s", c.Relation)
	}
	if second, ok := c.Second.Get(); ok {
		if second.Item == nil {
			return errs.New(errs.ErrCodeInvalidItem, "second item is nil")
		}
		if second.Attribute == NotAnAttribute {
			return errs.New(errs.ErrCodeInvalidAttribute, "second attribute of %s is not an attribute", second.Item.LayoutID())
		}
		if c.Multiplier == 0 {
			return errs.New(errs.ErrCodeInvalidInput, "multiplier must be nonzero in %s", c)
		}
	}
	if err := errs.ValidateFinite("multiplier", c.Multiplier); err != nil {
		return err
	}
	if err := errs.ValidateFinite("constant", c.Constant); err != nil {
		return err
	}
	return c.Priority.Validate()
}

// ApproxEqual reports whether a and b have the same terms, relation, priority
// and identifier, and multipliers and constants that differ by at most eps.
func ApproxEqual(a, b Constraint, eps float64) bool {
	return a.First.Equal(b.First) &&
		a.Second.Equal(b.Second) &&
		a.Relation == b.Relation &&
		a.Priority == b.Priority &&
		a.Identifier.Equal(b.Identifier) &&
		math.Abs(a.Multiplier-b.Multiplier) <= eps &&
		math.Abs(a.Constant-b.Constant) <= eps
}

// String renders the constraint in equation form, for example
//
//	[gap] b.left == a.right + 8 @750
//
// The identifier prefix appears only when set, the multiplier only when it is
// not 1, and the priority suffix only when it is not required.
func (c Constraint) String() string {
	var sb strings.Builder
	if id, ok := c.Identifier.Get(); ok {
		sb.WriteString("[" + id + "] ")
	}
	sb.WriteString(c.First.String())
	sb.WriteString(" " + c.Relation.String() + " ")

	if second, ok := c.Second.Get(); ok {
		if c.Multiplier != 1 {
			sb.WriteString(formatFloat(c.Multiplier) + " * ")
		}
		sb.WriteString(second.String())
		switch {
		case c.Constant > 0:
			sb.WriteString(" + " + formatFloat(c.Constant))
		case c.Constant < 0:
			sb.WriteString(" - " + formatFloat(-c.Constant))
		}
	} else {
		sb.WriteString(formatFloat(c.Constant))
	}

	if c.Priority != PriorityRequired {
		sb.WriteString(" @" + strconv.Itoa(int(c.Priority)))
	}
	return sb.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
