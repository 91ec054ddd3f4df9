package apply

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/layoutkit/pkg/constraint"
	errs "github.com/matzehuels/layoutkit/pkg/errors"
	"github.com/matzehuels/layoutkit/pkg/hierarchy"
	"github.com/matzehuels/layoutkit/pkg/observability"
)

// Applier activates and deactivates constraints on the container that owns
// them. It keeps no state of its own: the owning container of an active
// constraint is recorded by the hierarchy and read back through
// [hierarchy.Query.Owner].
//
// An Applier is not safe for concurrent use against the same hierarchy.
type Applier struct {
	Hierarchy hierarchy.Hierarchy
	Logger    *log.Logger
}

// New creates an applier over h. If logger is nil, log.Default() is used.
func New(h hierarchy.Hierarchy, logger *log.Logger) *Applier {
	if logger == nil {
		logger = log.Default()
	}
	return &Applier{Hierarchy: h, Logger: logger}
}

// Container returns the container c would be activated on: the nearest
// common ancestor of its two items, or of the first item with itself when c
// is unary. It fails with NO_COMMON_ANCESTOR when the items do not share a
// hierarchy.
func (a *Applier) Container(c *constraint.Constraint) (constraint.Item, error) {
	first := c.First.Item
	other := first
	if second, ok := c.Second.Get(); ok {
		other = second.Item
	}
	container, ok := a.Hierarchy.CommonAncestor(first, other)
	if !ok {
		return nil, errs.New(errs.ErrCodeNoCommonAncestor, "%s and %s share no container", label(first), label(other))
	}
	return container, nil
}

// Apply activates c on its owning container.
//
// It fails with DOUBLE_APPLICATION when c is already active anywhere,
// NO_COMMON_ANCESTOR when its items share no container, and with the
// validation error of c when it is malformed.
func (a *Applier) Apply(c *constraint.Constraint) error {
	err := a.apply(c)
	if err != nil {
		observability.Applier().OnRejected("apply", describe(c), err)
	}
	return err
}

func (a *Applier) apply(c *constraint.Constraint) error {
	if c == nil {
		return errs.New(errs.ErrCodeInvalidInput, "nil constraint")
	}
	if owner, ok := a.Hierarchy.Owner(c); ok {
		return errs.New(errs.ErrCodeDoubleApplication, "%s is already active on %s", c, label(owner))
	}
	if err := c.Validate(); err != nil {
		return err
	}
	container, err := a.Container(c)
	if err != nil {
		return err
	}
	if err := a.Hierarchy.AddConstraint(container, c); err != nil {
		return mutationError(err, "activate %s on %s", c, label(container))
	}

	a.Logger.Debug("activated constraint", "constraint", c.String(), "container", label(container))
	observability.Applier().OnActivate(c.String(), label(container))
	return nil
}

// Remove deactivates c on the container it was activated on. It fails with
// NOT_ACTIVE when c is not currently active.
func (a *Applier) Remove(c *constraint.Constraint) error {
	err := a.remove(c)
	if err != nil {
		observability.Applier().OnRejected("remove", describe(c), err)
	}
	return err
}

func (a *Applier) remove(c *constraint.Constraint) error {
	if c == nil {
		return errs.New(errs.ErrCodeInvalidInput, "nil constraint")
	}
	owner, ok := a.Hierarchy.Owner(c)
	if !ok {
		return errs.New(errs.ErrCodeNotActive, "%s is not active", c)
	}
	if err := a.Hierarchy.RemoveConstraint(owner, c); err != nil {
		return mutationError(err, "deactivate %s on %s", c, label(owner))
	}

	a.Logger.Debug("deactivated constraint", "constraint", c.String(), "container", label(owner))
	observability.Applier().OnDeactivate(c.String(), label(owner))
	return nil
}

// ApplyAll applies cs in order and stops at the first failure. Constraints
// applied before the failure stay active.
func (a *Applier) ApplyAll(cs []*constraint.Constraint) error {
	for i, c := range cs {
		if err := a.Apply(c); err != nil {
			return fmt.Errorf("constraint %d: %w", i, err)
		}
	}
	return nil
}

// RemoveAll removes cs in order and stops at the first failure.
func (a *Applier) RemoveAll(cs []*constraint.Constraint) error {
	for i, c := range cs {
		if err := a.Remove(c); err != nil {
			return fmt.Errorf("constraint %d: %w", i, err)
		}
	}
	return nil
}

// IsActive reports whether c is active on some container.
func (a *Applier) IsActive(c *constraint.Constraint) bool {
	_, ok := a.Hierarchy.Owner(c)
	return ok
}

// mutationError maps hierarchy faults onto engine error codes.
func mutationError(err error, format string, args ...any) error {
	switch {
	case errors.Is(err, hierarchy.ErrAlreadyActive):
		return errs.Wrap(errs.ErrCodeDoubleApplication, err, format, args...)
	case errors.Is(err, hierarchy.ErrNotActive):
		return errs.Wrap(errs.ErrCodeNotActive, err, format, args...)
	case errors.Is(err, hierarchy.ErrUnknownNode):
		return errs.Wrap(errs.ErrCodeNoCommonAncestor, err, format, args...)
	default:
		return errs.Wrap(errs.ErrCodeInternal, err, format, args...)
	}
}

func label(item constraint.Item) string {
	if item == nil {
		return "<nil>"
	}
	return item.LayoutID()
}

func describe(c *constraint.Constraint) string {
	if c == nil {
		return "<nil>"
	}
	return c.String()
}
