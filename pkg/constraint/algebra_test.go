package constraint

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	errs "github.com/matzehuels/layoutkit/pkg/errors"
)

type testItem string

func (i testItem) LayoutID() string { return string(i) }

var (
	viewOne = testItem("one")
	viewTwo = testItem("two")

	approx = cmpopts.EquateApprox(0, 1e-9)
)

// widthToHeight builds one.width R m * two.height + b with a non-default
// priority and an identifier, so tests can check both are handled.
func widthToHeight(rel Relation, m, b float64) Constraint {
	return New(At(viewOne, Width), rel, At(viewTwo, Height), m, b).
		WithPriority(PriorityDefaultHigh).
		WithIdentifier("ratio")
}

func TestReverseRejects(t *testing.T) {
	tests := []struct {
		name string
		c    Constraint
	}{
		{"zero multiplier", widthToHeight(Equal, 0, 14)},
		{"no second item", NewUnary(At(viewOne, Width), Equal, 14).Times(2)},
		{"second attribute is not an attribute", New(At(viewOne, Width), Equal, At(viewTwo, NotAnAttribute), 2, 14)},
		{"subnormal multiplier overflows", widthToHeight(GreaterOrEqual, 1e-310, 1)},
		{"constant overflows", widthToHeight(Equal, 1e-300, 1e300)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, ok := Reverse(tt.c); ok {
				t.Errorf("Reverse() = %v, want no result", got)
			}
			if _, err := ReverseErr(tt.c); !errs.Is(err, errs.ErrCodeIrreversibleConstraint) {
				t.Errorf("ReverseErr() error = %v, want %s", err, errs.ErrCodeIrreversibleConstraint)
			}
		})
	}
}

func TestReverse(t *testing.T) {
	tests := []struct {
		name    string
		rel     Relation
		m       float64
		wantRel Relation
		wantM   float64
		wantB   float64
	}{
		{"equal", Equal, 2, Equal, 0.5, -7},
		{"greater or equal, positive multiplier", GreaterOrEqual, 2, LessOrEqual, 0.5, -7},
		{"greater or equal, negative multiplier", GreaterOrEqual, -2, GreaterOrEqual, -0.5, 7},
		{"less or equal, positive multiplier", LessOrEqual, 2, GreaterOrEqual, 0.5, -7},
		{"less or equal, negative multiplier", LessOrEqual, -2, LessOrEqual, -0.5, 7},
		{"equal, negative multiplier", Equal, -2, Equal, -0.5, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Reverse(widthToHeight(tt.rel, tt.m, 14))
			if !ok {
				t.Fatal("Reverse() returned no result")
			}

			want := Constraint{
				First:      At(viewTwo, Height),
				Second:     Some(At(viewOne, Width)),
				Relation:   tt.wantRel,
				Multiplier: tt.wantM,
				Constant:   tt.wantB,
				Priority:   PriorityDefaultHigh,
			}
			if diff := cmp.Diff(want, got, approx); diff != "" {
				t.Errorf("Reverse() mismatch (-want +got):\n%s", diff)
			}
			if got.Identifier.IsSome() {
				t.Error("Reverse() kept the identifier")
			}
		})
	}
}

func TestReverseRoundTrip(t *testing.T) {
	relations := []Relation{Equal, GreaterOrEqual, LessOrEqual}
	multipliers := []float64{2, -2, 0.5, -0.25, 1, -1, 1e-3, 7.3, -1e6}
	constants := []float64{14, -14, 0, 3.3, -1e-7}

	for _, rel := range relations {
		for _, m := range multipliers {
			for _, b := range constants {
				c := New(At(viewOne, Left), rel, At(viewTwo, Right), m, b).WithPriority(PriorityDefaultLow)
				once, ok := Reverse(c)
				if !ok {
					t.Fatalf("Reverse(%v) returned no result", c)
				}
				twice, ok := Reverse(once)
				if !ok {
					t.Fatalf("Reverse(%v) returned no result", once)
				}
				if !ApproxEqual(c, twice, 1e-9*max(1, abs(m), abs(b))) {
					t.Errorf("Reverse(Reverse(%v)) = %v", c, twice)
				}
			}
		}
	}
}

func TestReverseDirection(t *testing.T) {
	for _, rel := range []Relation{GreaterOrEqual, LessOrEqual} {
		pos, _ := Reverse(widthToHeight(rel, 3, 1))
		if pos.Relation != rel.Flipped() {
			t.Errorf("%v with positive multiplier: got %v, want %v", rel, pos.Relation, rel.Flipped())
		}
		neg, _ := Reverse(widthToHeight(rel, -3, 1))
		if neg.Relation != rel {
			t.Errorf("%v with negative multiplier: got %v, want %v", rel, neg.Relation, rel)
		}
	}
}

func TestPositiveConstant(t *testing.T) {
	t.Run("already non-negative", func(t *testing.T) {
		for _, b := range []float64{0, 14} {
			c := widthToHeight(GreaterOrEqual, 2, b)
			if diff := cmp.Diff(c, PositiveConstant(c)); diff != "" {
				t.Errorf("PositiveConstant() changed c (-want +got):\n%s", diff)
			}
		}
	})

	t.Run("negative constant is reversed", func(t *testing.T) {
		c := widthToHeight(GreaterOrEqual, 2, -14)
		got := PositiveConstant(c)
		want, _ := Reverse(c)
		if diff := cmp.Diff(want, got, approx); diff != "" {
			t.Errorf("PositiveConstant() mismatch (-want +got):\n%s", diff)
		}
		if got.Constant < 0 {
			t.Errorf("PositiveConstant().Constant = %v, want >= 0", got.Constant)
		}
	})

	t.Run("irreversible is returned unchanged", func(t *testing.T) {
		c := GeConst(At(viewOne, Height), -5)
		if diff := cmp.Diff(c, PositiveConstant(c)); diff != "" {
			t.Errorf("PositiveConstant() changed c (-want +got):\n%s", diff)
		}
		z := widthToHeight(Equal, 0, -5)
		if diff := cmp.Diff(z, PositiveConstant(z)); diff != "" {
			t.Errorf("PositiveConstant() changed c (-want +got):\n%s", diff)
		}
	})

	t.Run("positive multipliers always end non-negative", func(t *testing.T) {
		for _, m := range []float64{0.1, 1, 2, 50} {
			for _, b := range []float64{-100, -1, -0.5, 0, 9} {
				got := PositiveConstant(widthToHeight(LessOrEqual, m, b))
				if got.Constant < 0 {
					t.Errorf("m=%v b=%v: constant = %v, want >= 0", m, b, got.Constant)
				}
			}
		}
	})
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
