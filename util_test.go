package cogo

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// within compares floats, including those nested in points, up to an
// absolute margin.
func within(margin float64) cmp.Option {
	return cmpopts.EquateApprox(0, margin)
}

// angleNear reports whether two angles differ by at most tol units.
func angleNear(t *testing.T, want, got Angle, tol int64) {
	t.Helper()
	if d := (got - want).Abs(); d > tol {
		t.Errorf("got angle %v, want %v (off by %d units)", got, want, d)
	}
}

func nearPoint(t *testing.T, want, got Point, tol float64) {
	t.Helper()
	if d := want.Distance(got); !(d <= tol) || math.IsNaN(d) {
		t.Errorf("got point %v, want %v (off by %g)", got, want, d)
	}
}
