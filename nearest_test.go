package cogo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearestSegment(t *testing.T) {
	s := NewSegment(Pt3(0, 0, 0), Pt3(10, 0, 0))
	inf := math.Inf(1)
	assert.Equal(t, 3.0, Nearest(s, Pt(3, 5), inf, false))
	assert.Equal(t, 3.0, Nearest(s, Pt(3, -5), inf, false))
	assert.Equal(t, 0.0, Nearest(s, Pt(0, 0), inf, false))
	assert.Equal(t, 10.0, Nearest(s, Pt(10, 0), inf, false))

	assert.True(t, math.IsInf(Nearest(s, Pt(-2, 1), inf, false), -1))
	assert.True(t, math.IsInf(Nearest(s, Pt(12, 1), inf, false), 1))
	assert.Equal(t, 0.0, Nearest(s, Pt(-2, 1), inf, true))
	assert.Equal(t, 10.0, Nearest(s, Pt(12, 1), inf, true))
}

func TestNearestArc(t *testing.T) {
	a := quarter()
	inf := math.Inf(1)
	assert.InDelta(t, math.Pi/4, Nearest(a, Pt(2, 2), inf, false), 1e-6)
	assert.InDelta(t, math.Pi/4, Nearest(a, Pt(0.2, 0.2), inf, false), 1e-6)
	assert.InDelta(t, math.Pi/6, Nearest(a, Pt(math.Sqrt(3), 1), inf, false), 1e-6)
	// Below the start, beyond its tangent.
	assert.True(t, math.IsInf(Nearest(a, Pt(1.5, -1), inf, false), -1))
}

func TestNearestSpiral(t *testing.T) {
	s := entrySpiral(t)
	inf := math.Inf(1)
	for _, along := range []float64{5, 37, 62, 96} {
		on := s.StationAt(along).XY()
		assert.InDelta(t, along, Nearest(s, on, inf, false), 1e-4)
		left := on.Translate(UnitVec(s.BearingAt(along) + Deg90).Mul(5))
		assert.InDelta(t, along, Nearest(s, left, inf, false), 1e-4)
		right := on.Translate(UnitVec(s.BearingAt(along) - Deg90).Mul(5))
		assert.InDelta(t, along, Nearest(s, right, inf, false), 1e-4)
	}
}

func TestNearestDegenerate(t *testing.T) {
	inf := math.Inf(1)
	onCurve := func(t *testing.T, c Curve, tol float64, alongs ...float64) {
		t.Helper()
		for _, along := range alongs {
			got := Nearest(c, c.StationAt(along).XY(), inf, false)
			assert.InDelta(t, along, got, tol, "along %g", along)
		}
	}

	t.Run("short far segment", func(t *testing.T) {
		s := NewSegment(Pt3(1e6, 1e6, 0), Pt3(1e6+1e-5, 1e6, 0))
		onCurve(t, s, 1e-9, 1e-6, 2e-6, 5e-6, 9e-6)
	})
	t.Run("curly arc", func(t *testing.T) {
		a := NewArc(Pt3(0, 0, 0), Pt3(2, 0, 0), DegToAngle(350))
		require.True(t, a.IsCurly())
		l := a.Length()
		onCurve(t, a, 1e-6*l, 0.05*l, 0.3*l, 0.5*l, 0.7*l, 0.95*l)
	})
	t.Run("curly spiral", func(t *testing.T) {
		s, err := NewSpiralFromStart(Pt3(0, 0, 0), 0, 0, 0.1, 100, 0)
		require.NoError(t, err)
		require.True(t, s.IsCurly())
		onCurve(t, s, 1e-4, 3, 25, 50, 75, 97)
	})
}

func TestNearestInvalid(t *testing.T) {
	var s SpiralArc
	s.len = math.NaN()
	assert.True(t, math.IsNaN(Nearest(s, Pt(0, 0), math.Inf(1), false)))
	assert.True(t, math.IsNaN(DirBound(s, 0, math.Inf(1))))
}

func TestNearestAmong(t *testing.T) {
	curves := []Curve{
		NewSegment(Pt3(0, 0, 0), Pt3(10, 0, 0)),
		NewSegment(Pt3(0, 5, 0), Pt3(10, 5, 0)),
		quarter(),
	}
	i, along := NearestAmong(curves, Pt(4, 4))
	assert.Equal(t, 1, i)
	assert.InDelta(t, 4, along, 1e-9)

	i, along = NearestAmong(curves, Pt(-3, -0.5))
	assert.Equal(t, 0, i)
	assert.Equal(t, 0.0, along)

	i, along = NearestAmong(nil, Pt(0, 0))
	assert.Equal(t, -1, i)
	assert.True(t, math.IsNaN(along))
}

func TestDirBound(t *testing.T) {
	a := quarter()
	inf := math.Inf(1)
	// Least easting and northing.
	assert.InDelta(t, 0, DirBound(a, 0, inf), 1e-9)
	assert.InDelta(t, 0, DirBound(a, Deg90, inf), 1e-9)
	// Greatest easting and northing, negated.
	assert.InDelta(t, -1, DirBound(a, Deg180, inf), 1e-9)
	assert.InDelta(t, -1, DirBound(a, -Deg90, inf), 1e-9)
	// The bulge of the arc, at 45°.
	assert.InDelta(t, -1, DirBound(a, Deg180+Deg45, inf), 1e-9)

	s := NewSegment(Pt3(2, 3, 0), Pt3(7, -1, 0))
	assert.InDelta(t, 2, DirBound(s, 0, inf), 1e-9)
	assert.InDelta(t, -1, DirBound(s, Deg90, inf), 1e-9)
	assert.InDelta(t, -7, DirBound(s, Deg180, inf), 1e-9)
}
