package constraint

import (
	"math"
	"testing"

	errs "github.com/matzehuels/layoutkit/pkg/errors"
)

func TestConstraintString(t *testing.T) {
	a, b := testItem("a"), testItem("b")

	tests := []struct {
		name string
		c    Constraint
		want string
	}{
		{"equal", Eq(At(a, Left), At(b, Left)), "a.left == b.left"},
		{"spacing", Eq(At(b, Left), At(a, Right)).Plus(8), "b.left == a.right + 8"},
		{"negative constant", Ge(At(a, Width), At(b, Height)).Times(2).Plus(-14), "a.width >= 2 * b.height - 14"},
		{"unary", LeConst(At(a, Height), 44), "a.height <= 44"},
		{"priority", EqConst(At(a, Width), 10).WithPriority(PriorityDefaultLow), "a.width == 10 @250"},
		{"identifier", Eq(At(a, CenterX), At(b, CenterX)).WithIdentifier("center"), "[center] a.centerX == b.centerX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConstraintValidate(t *testing.T) {
	a, b := testItem("a"), testItem("b")

	tests := []struct {
		name     string
		c        Constraint
		wantCode errs.Code
	}{
		{"valid binary", Eq(At(a, Left), At(b, Right)), ""},
		{"valid unary", EqConst(At(a, Width), 10), ""},
		{"nil first item", Eq(At(nil, Left), At(b, Left)), errs.ErrCodeInvalidItem},
		{"nil second item", Eq(At(a, Left), At(nil, Left)), errs.ErrCodeInvalidItem},
		{"first not an attribute", Eq(At(a, NotAnAttribute), At(b, Left)), errs.ErrCodeInvalidAttribute},
		{"second not an attribute", Eq(At(a, Left), At(b, NotAnAttribute)), errs.ErrCodeInvalidAttribute},
		{"zero multiplier", Eq(At(a, Left), At(b, Left)).Times(0), errs.ErrCodeInvalidInput},
		{"unknown relation", New(At(a, Left), Relation(2), At(b, Left), 1, 0), errs.ErrCodeInvalidInput},
		{"unknown unary relation", NewUnary(At(a, Width), Relation(-3), 10), errs.ErrCodeInvalidInput},
		{"nan constant", EqConst(At(a, Width), math.NaN()), errs.ErrCodeInvalidInput},
		{"zero priority", EqConst(At(a, Width), 1).WithPriority(0), errs.ErrCodeInvalidPriority},
		{"priority too high", EqConst(At(a, Width), 1).WithPriority(1001), errs.ErrCodeInvalidPriority},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errs.Is(err, tt.wantCode) {
				t.Errorf("Validate() error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestConstraintItems(t *testing.T) {
	a, b, c := testItem("a"), testItem("b"), testItem("c")

	bin := Eq(At(a, Left), At(b, Left))
	if got := bin.Items(); len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("Items() = %v, want [a b]", got)
	}
	self := Eq(At(a, Width), At(a, Height))
	if got := self.Items(); len(got) != 1 {
		t.Errorf("Items() = %v, want [a]", got)
	}
	if !bin.References(b) || bin.References(c) {
		t.Error("References() mismatch")
	}
	if bin.IsUnary() || !EqConst(At(a, Width), 1).IsUnary() {
		t.Error("IsUnary() mismatch")
	}
}

func TestParseAttribute(t *testing.T) {
	tests := []struct {
		in      string
		want    Attribute
		wantErr bool
	}{
		{"left", Left, false},
		{"centerX", CenterX, false},
		{"CENTERY", CenterY, false},
		{"baseline", Baseline, false},
		{"notAnAttribute", NotAnAttribute, false},
		{"middle", NotAnAttribute, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAttribute(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAttribute(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseAttribute(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestAttributeAxis(t *testing.T) {
	tests := []struct {
		attr Attribute
		want Axis
	}{
		{Left, AxisHorizontal},
		{Trailing, AxisHorizontal},
		{Width, AxisHorizontal},
		{CenterX, AxisHorizontal},
		{Top, AxisVertical},
		{Baseline, AxisVertical},
		{Height, AxisVertical},
		{NotAnAttribute, AxisNone},
	}

	for _, tt := range tests {
		if got := tt.attr.Axis(); got != tt.want {
			t.Errorf("%v.Axis() = %v, want %v", tt.attr, got, tt.want)
		}
	}
}

func TestRelation(t *testing.T) {
	if GreaterOrEqual.Flipped() != LessOrEqual || LessOrEqual.Flipped() != GreaterOrEqual || Equal.Flipped() != Equal {
		t.Error("Flipped() mismatch")
	}

	for _, in := range []string{"==", ">=", "<=", "eq", "ge", "le"} {
		if _, err := ParseRelation(in); err != nil {
			t.Errorf("ParseRelation(%q) error = %v", in, err)
		}
	}
	if _, err := ParseRelation("!="); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("ParseRelation(\"!=\") error = %v, want INVALID_INPUT", err)
	}

	for _, r := range []Relation{LessOrEqual, Equal, GreaterOrEqual} {
		if !r.Valid() {
			t.Errorf("%s.Valid() = false", r)
		}
	}
	if Relation(2).Valid() || Relation(-2).Valid() {
		t.Error("out-of-range relations should not be valid")
	}
}

func TestOptional(t *testing.T) {
	var zero Optional[string]
	if zero.IsSome() {
		t.Error("zero Optional should be None")
	}
	if got := zero.OrElse("x"); got != "x" {
		t.Errorf("OrElse() = %q, want x", got)
	}

	some := Some("id")
	if v, ok := some.Get(); !ok || v != "id" {
		t.Errorf("Get() = (%q, %v), want (id, true)", v, ok)
	}
	if !some.Equal(Some("id")) || some.Equal(Some("other")) || some.Equal(None[string]()) {
		t.Error("Equal() mismatch")
	}
	if !zero.Equal(None[string]()) {
		t.Error("None should equal None")
	}
}
