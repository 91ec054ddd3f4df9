package generate

import (
	"github.com/matzehuels/layoutkit/pkg/constraint"
	errs "github.com/matzehuels/layoutkit/pkg/errors"
)

// ConstrainWidth fixes the width of item.
func ConstrainWidth(item constraint.Item, width float64) ([]*constraint.Constraint, error) {
	return fixed(item, constraint.Width, width)
}

// ConstrainHeight fixes the height of item.
func ConstrainHeight(item constraint.Item, height float64) ([]*constraint.Constraint, error) {
	return fixed(item, constraint.Height, height)
}

// ConstrainWidthRange bounds the width of item to [minSize, maxSize], returning the
// lower bound followed by the upper bound.
func ConstrainWidthRange(item constraint.Item, minSize, maxSize float64) ([]*constraint.Constraint, error) {
	return bounded(item, constraint.Width, minSize, maxSize)
}

// ConstrainHeightRange bounds the height of item to [minSize, maxSize].
func ConstrainHeightRange(item constraint.Item, minSize, maxSize float64) ([]*constraint.Constraint, error) {
	return bounded(item, constraint.Height, minSize, maxSize)
}

// ConstrainHeightToWidth relates the two dimensions of one item:
//
//	item.height == ratio * item.width + offset
func ConstrainHeightToWidth(item constraint.Item, ratio, offset float64) ([]*constraint.Constraint, error) {
	c, err := aspect(item, constraint.Height, constraint.Width, ratio, offset)
	if err != nil {
		return nil, err
	}
	return []*constraint.Constraint{&c}, nil
}

// ConstrainWidthToHeight expresses
//
//	item.width == ratio * item.height + offset
//
// in height-to-width form, as item.height == (1/ratio) * item.width - offset/ratio.
func ConstrainWidthToHeight(item constraint.Item, ratio, offset float64) ([]*constraint.Constraint, error) {
	c, err := aspect(item, constraint.Width, constraint.Height, ratio, offset)
	if err != nil {
		return nil, err
	}
	r, err := constraint.ReverseErr(c)
	if err != nil {
		return nil, err
	}
	return []*constraint.Constraint{&r}, nil
}

func aspect(item constraint.Item, subject, object constraint.Attribute, ratio, offset float64) (constraint.Constraint, error) {
	if item == nil {
		return constraint.Constraint{}, errs.New(errs.ErrCodeInvalidItem, "item is nil")
	}
	if err := errs.ValidateFinite("ratio", ratio); err != nil {
		return constraint.Constraint{}, err
	}
	if err := errs.ValidateFinite("offset", offset); err != nil {
		return constraint.Constraint{}, err
	}
	if ratio == 0 {
		return constraint.Constraint{}, errs.New(errs.ErrCodeInvalidInput, "ratio must be nonzero")
	}
	return constraint.New(constraint.At(item, subject), constraint.Equal, constraint.At(item, object), ratio, offset), nil
}

func fixed(item constraint.Item, attr constraint.Attribute, size float64) ([]*constraint.Constraint, error) {
	if err := checkDimension(item, attr, size); err != nil {
		return nil, err
	}
	c := constraint.EqConst(constraint.At(item, attr), size)
	return []*constraint.Constraint{&c}, nil
}

func bounded(item constraint.Item, attr constraint.Attribute, minSize, maxSize float64) ([]*constraint.Constraint, error) {
	if err := checkDimension(item, attr, minSize); err != nil {
		return nil, err
	}
	if err := checkDimension(item, attr, maxSize); err != nil {
		return nil, err
	}
	if minSize > maxSize {
		return nil, errs.New(errs.ErrCodeInvalidInput, "%s range [%v, %v] is inverted", attr, minSize, maxSize)
	}
	lo := constraint.GeConst(constraint.At(item, attr), minSize)
	hi := constraint.LeConst(constraint.At(item, attr), maxSize)
	return []*constraint.Constraint{&lo, &hi}, nil
}

func checkDimension(item constraint.Item, attr constraint.Attribute, v float64) error {
	if item == nil {
		return errs.New(errs.ErrCodeInvalidItem, "item is nil")
	}
	if err := errs.ValidateFinite(attr.String(), v); err != nil {
		return err
	}
	if v < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "%s must be non-negative, got %v", attr, v)
	}
	return nil
}
