package constraint

import (
	"fmt"
	"strings"

	errs "github.com/matzehuels/layoutkit/pkg/errors"
)

// Attribute names a geometric facet of an item that can appear as a term in
// a linear constraint. The zero value is NotAnAttribute.
type Attribute int

const (
	// NotAnAttribute marks the absent second term of a unary constraint.
	NotAnAttribute Attribute = iota
	Left
	Right
	Top
	Bottom
	Leading
	Trailing
	Width
	Height
	CenterX
	CenterY
	Baseline
)

var attributeNames = [...]string{
	NotAnAttribute: "notAnAttribute",
	Left:           "left",
	Right:          "right",
	Top:            "top",
	Bottom:         "bottom",
	Leading:        "leading",
	Trailing:       "trailing",
	Width:          "width",
	Height:         "height",
	CenterX:        "centerX",
	CenterY:        "centerY",
	Baseline:       "baseline",
}

// String returns the lower-camel name of the attribute ("left", "centerX").
func (a Attribute) String() string {
	if a < 0 || int(a) >= len(attributeNames) {
		return fmt.Sprintf("Attribute(%d)", int(a))
	}
	return attributeNames[a]
}

// ParseAttribute resolves an attribute by name. Matching is case-insensitive,
// so "centerX", "centerx" and "CENTERX" all resolve to CenterX.
func ParseAttribute(name string) (Attribute, error) {
	for i, n := range attributeNames {
		if strings.EqualFold(n, name) {
			return Attribute(i), nil
		}
	}
	return NotAnAttribute, errs.New(errs.ErrCodeInvalidAttribute, "unknown attribute %q", name)
}

// Axis groups attributes by the direction they measure.
type Axis int

const (
	AxisNone Axis = iota
	AxisHorizontal
	AxisVertical
)

func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return "none"
	}
}

// Axis reports the direction the attribute measures along.
func (a Attribute) Axis() Axis {
	switch a {
	case Left, Right, Leading, Trailing, Width, CenterX:
		return AxisHorizontal
	case Top, Bottom, Height, CenterY, Baseline:
		return AxisVertical
	default:
		return AxisNone
	}
}

// IsDimension reports whether the attribute is a size (width or height)
// rather than a position.
func (a Attribute) IsDimension() bool { return a == Width || a == Height }
