package constraint

import (
	"fmt"

	errs "github.com/matzehuels/layoutkit/pkg/errors"
)

// Relation is the comparison between the two sides of a constraint. The
// inequalities are encoded as -1 and +1 so that flipping the direction is
// plain negation; the zero value is Equal.
type Relation int

const (
	LessOrEqual    Relation = -1
	Equal          Relation = 0
	GreaterOrEqual Relation = 1
)

// Flipped returns the relation with its direction reversed. Equal is its own flip.
func (r Relation) Flipped() Relation { return -r }

// Valid reports whether r is one of the three defined relations.
func (r Relation) Valid() bool { return r >= LessOrEqual && r <= GreaterOrEqual }

// String returns the operator symbol of the relation.
func (r Relation) String() string {
	switch r {
	case LessOrEqual:
		return "<="
	case Equal:
		return "=="
	case GreaterOrEqual:
		return ">="
	default:
		return fmt.Sprintf("Relation(%d)", int(r))
	}
}

// ParseRelation accepts operator symbols ("==", "=", ">=", "<=") and the
// short names "eq", "ge" and "le".
func ParseRelation(s string) (Relation, error) {
	switch s {
	case "==", "=", "eq":
		return Equal, nil
	case ">=", "ge", "gte":
		return GreaterOrEqual, nil
	case "<=", "le", "lte":
		return LessOrEqual, nil
	}
	return Equal, errs.New(errs.ErrCodeInvalidInput, "unknown relation %q", s)
}

// Priority orders constraints for a solver that cannot satisfy all of them.
// Valid priorities lie in [1, 1000]; Required constraints must hold.
type Priority int

const (
	PriorityRequired    Priority = errs.MaxPriority
	PriorityDefaultHigh Priority = 750
	PriorityDefaultLow  Priority = 250
	PriorityFittingSize Priority = 50
)

// Validate reports an INVALID_PRIORITY error when p is out of range.
func (p Priority) Validate() error { return errs.ValidatePriority(int(p)) }
