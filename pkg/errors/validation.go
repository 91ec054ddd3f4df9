package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// Priority bounds for constraints. Values outside [MinPriority, MaxPriority]
// are rejected by ValidatePriority.
const (
	MinPriority = 1
	MaxPriority = 1000
)

// ValidateItemID validates an item identifier used in scenes and hierarchies.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - No whitespace or dots (a dot separates item and attribute in term syntax)
//   - Maximum length of 128 characters
func ValidateItemID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidItem, "item ID cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidItem, "item ID too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidItem, "item ID %q contains whitespace or control characters", id)
		}
	}

	if strings.Contains(id, ".") {
		return New(ErrCodeInvalidItem, "item ID %q cannot contain '.'", id)
	}

	return nil
}

// ValidatePriority checks that p lies within [MinPriority, MaxPriority].
func ValidatePriority(p int) error {
	if p < MinPriority || p > MaxPriority {
		return New(ErrCodeInvalidPriority, "priority %d out of range [%d, %d]", p, MinPriority, MaxPriority)
	}
	return nil
}

// ValidateSpacing checks that a distribution spacing is a finite, non-negative number.
func ValidateSpacing(spacing float64) error {
	if math.IsNaN(spacing) || math.IsInf(spacing, 0) {
		return New(ErrCodeInvalidSpacing, "spacing must be finite, got %v", spacing)
	}
	if spacing < 0 {
		return New(ErrCodeInvalidSpacing, "spacing must be non-negative, got %v", spacing)
	}
	return nil
}

// ValidateFinite checks that a named numeric input is neither NaN nor infinite.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be finite, got %v", name, v)
	}
	return nil
}

// termRegex matches "item.attribute" term references used by the CLI.
var termRegex = regexp.MustCompile(`^([^.\s]+)\.([A-Za-z]+)$`)

// SplitTerm validates a term reference of the form "item.attribute" and
// returns its two halves. The attribute name itself is not checked here.
func SplitTerm(ref string) (item, attr string, err error) {
	m := termRegex.FindStringSubmatch(ref)
	if m == nil {
		return "", "", New(ErrCodeInvalidInput, "invalid term %q (want item.attribute)", ref)
	}
	if err := ValidateItemID(m[1]); err != nil {
		return "", "", err
	}
	return m[1], m[2], nil
}
