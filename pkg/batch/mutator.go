package batch

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/layoutkit/pkg/apply"
	"github.com/matzehuels/layoutkit/pkg/constraint"
	errs "github.com/matzehuels/layoutkit/pkg/errors"
	"github.com/matzehuels/layoutkit/pkg/hierarchy"
	"github.com/matzehuels/layoutkit/pkg/observability"
)

// Mutator drives grouped mutations against one hierarchy. Child, effect and
// recognizer targets go straight to the hierarchy; constraint targets go
// through the Applier, which picks their owning container.
//
// A Mutator is not safe for concurrent use against the same hierarchy, and
// a failed batch is not rolled back.
type Mutator struct {
	Hierarchy hierarchy.Hierarchy
	Applier   *apply.Applier
	Logger    *log.Logger
}

// New creates a mutator and its applier over h. If logger is nil,
// log.Default() is used.
func New(h hierarchy.Hierarchy, logger *log.Logger) *Mutator {
	if logger == nil {
		logger = log.Default()
	}
	return &Mutator{
		Hierarchy: h,
		Applier:   apply.New(h, logger),
		Logger:    logger,
	}
}

// Report describes how far a batch got.
type Report struct {
	Op        string   // "apply" or "remove"
	Container string   // ID of the batch container
	Targets   []Target // grouped order in which targets were attempted
	Completed int      // number of leading Targets that succeeded
	Duration  time.Duration
}

// Done returns the targets that were mutated successfully.
func (r Report) Done() []Target { return r.Targets[:r.Completed] }

// Pending returns the targets that were not mutated, starting with the one
// that failed.
func (r Report) Pending() []Target { return r.Targets[r.Completed:] }

// ApplyAll groups targets and adds each to container in grouped order:
// children are attached, constraints activated through the applier, and
// effects and recognizers attached. It stops at the first failure and
// returns an error naming the failing target's position and kind; the
// report lists what had already been done.
func (m *Mutator) ApplyAll(container constraint.Item, targets []Target) (Report, error) {
	return m.run("apply", container, targets, m.add)
}

// RemoveAll groups targets in the same order as ApplyAll and removes each
// from container.
//
// The order is not reversed: removing a child before a constraint that
// references it lets the hierarchy deactivate that constraint first, and the
// later constraint removal then fails with NOT_ACTIVE. Consequently, passing
// RemoveAll the same targets ApplyAll just applied fails whenever one of the
// constraints references one of the batch's children. To undo such a batch,
// remove the constraints, effects and recognizers in one call and the
// children in a second.
func (m *Mutator) RemoveAll(container constraint.Item, targets []Target) (Report, error) {
	return m.run("remove", container, targets, m.remove)
}

func (m *Mutator) run(op string, container constraint.Item, targets []Target, do func(constraint.Item, Target) error) (Report, error) {
	start := time.Now()
	report := Report{Op: op, Container: label(container)}

	for i, t := range targets {
		if value(t) == nil {
			return report, errs.New(errs.ErrCodeInvalidInput, "%s: target %d is nil", op, i)
		}
	}
	if container == nil {
		return report, errs.New(errs.ErrCodeInvalidItem, "%s: nil container", op)
	}

	report.Targets = Group(targets)
	observability.Batch().OnBatchStart(op, report.Container, len(report.Targets))

	var err error
	for i, t := range report.Targets {
		if err = do(container, t); err != nil {
			err = fmt.Errorf("%s %s target %d: %w", op, t.Kind(), i, err)
			break
		}
		report.Completed++
		m.Logger.Debug("batch step", "op", op, "container", report.Container, "target", t.String())
	}

	report.Duration = time.Since(start)
	observability.Batch().OnBatchComplete(op, report.Container, report.Completed, report.Duration, err)

	if err != nil {
		m.Logger.Warn("batch stopped",
			"op", op,
			"container", report.Container,
			"completed", report.Completed,
			"total", len(report.Targets),
			"err", err)
		return report, err
	}
	m.Logger.Info("batch complete",
		"op", op,
		"container", report.Container,
		"targets", report.Completed,
		"duration", report.Duration)
	return report, nil
}

func (m *Mutator) add(container constraint.Item, t Target) error {
	switch t := t.(type) {
	case ChildTarget:
		return hierarchyError(m.Hierarchy.AddChild(container, t.Item))
	case ConstraintTarget:
		return m.Applier.Apply(t.Constraint)
	case EffectTarget:
		return hierarchyError(m.Hierarchy.AddEffect(container, t.Effect))
	case RecognizerTarget:
		return hierarchyError(m.Hierarchy.AddRecognizer(container, t.Recognizer))
	}
	return errs.New(errs.ErrCodeUnsupported, "unknown target kind %s", t.Kind())
}

func (m *Mutator) remove(container constraint.Item, t Target) error {
	switch t := t.(type) {
	case ChildTarget:
		return hierarchyError(m.Hierarchy.RemoveChild(container, t.Item))
	case ConstraintTarget:
		return m.Applier.Remove(t.Constraint)
	case EffectTarget:
		return hierarchyError(m.Hierarchy.RemoveEffect(container, t.Effect))
	case RecognizerTarget:
		return hierarchyError(m.Hierarchy.RemoveRecognizer(container, t.Recognizer))
	}
	return errs.New(errs.ErrCodeUnsupported, "unknown target kind %s", t.Kind())
}

// hierarchyError attaches an error code to a structural fault reported by
// the hierarchy.
func hierarchyError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, hierarchy.ErrUnknownNode), errors.Is(err, hierarchy.ErrInvalidNodeID):
		return errs.Wrap(errs.ErrCodeInvalidItem, err, "hierarchy rejected mutation")
	case errors.Is(err, hierarchy.ErrNotChild),
		errors.Is(err, hierarchy.ErrUnknownEffect),
		errors.Is(err, hierarchy.ErrUnknownRecognizer):
		return errs.Wrap(errs.ErrCodeNotFound, err, "hierarchy rejected mutation")
	default:
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "hierarchy rejected mutation")
	}
}

func label(item constraint.Item) string {
	if item == nil {
		return "<nil>"
	}
	return item.LayoutID()
}
