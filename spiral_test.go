package cogo

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// entrySpiral runs from the origin, heading east, from straight to a radius
// of 100 over 100 m.
func entrySpiral(t *testing.T) SpiralArc {
	t.Helper()
	s, err := NewSpiralFromStart(Pt3(0, 0, 0), 0, 0, 0.01, 100, 0)
	require.NoError(t, err)
	return s
}

func TestSpiralFromStart(t *testing.T) {
	s := entrySpiral(t)
	assert.True(t, s.Valid())
	assert.Equal(t, 100.0, s.Length())
	nearPoint(t, Pt(0, 0), s.StationAt(0).XY(), 1e-6)
	angleNear(t, 0, s.StartBearing(), 2)
	angleNear(t, RadToAngle(0.5), s.EndBearing(), 4)
	angleNear(t, RadToAngle(0.5), s.Delta(), 1)
	assert.InDelta(t, 0, s.CurvatureAt(0), 1e-12)
	assert.InDelta(t, 0.01, s.CurvatureAt(100), 1e-12)
	assert.InDelta(t, 1e-4, s.Clothance(), 1e-16)
	assert.InDelta(t, 200, s.Mid().Distance(s.Center()), 1e-9)
	assert.False(t, s.IsCurly())
	assert.False(t, s.IsTooCurly())

	want := integrateCis(100, func(x float64) float64 { return 1e-4 * x * x / 2 })
	nearPoint(t, Point(want), s.End().XY(), 1e-6)
	assert.Positive(t, s.DifferentialArea())
}

func TestSpiralFromStartInvalid(t *testing.T) {
	for _, l := range []float64{0, -1, math.Inf(1), math.NaN()} {
		_, err := NewSpiralFromStart(Pt3(0, 0, 0), 0, 0, 0.01, l, 0)
		assert.True(t, errors.Is(err, ErrInvalidLength), "length %v", l)
	}
}

func TestSpiralThrow(t *testing.T) {
	// Between radii of 200 and 100 the shift is about L²·Δk/24, less a
	// fourth-order term.
	s, err := NewSpiralFromStart(Pt3(0, 0, 0), 0, 0.005, 0.01, 100, 0)
	require.NoError(t, err)
	assert.InDelta(t, 2.0657, s.Throw(), 1e-3)

	// Concentric osculating circles do not throw.
	arc := SpiralFromArc(quarter())
	assert.InDelta(t, 0, arc.Throw(), 1e-9)
}

func TestSpiralCurly(t *testing.T) {
	s, err := NewSpiralFromStart(Pt3(0, 0, 0), 0, 0, 0.1, 100, 0)
	require.NoError(t, err)
	assert.True(t, s.IsCurly())

	var invalid SpiralArc
	invalid.len = math.NaN()
	assert.False(t, invalid.Valid())
	assert.True(t, invalid.IsCurly())
	assert.True(t, invalid.IsTooCurly())
}

func TestSpiralFromSegment(t *testing.T) {
	seg := NewSegment(Pt3(0, 0, 1), Pt3(40, 30, 6))
	s := SpiralFromSegment(seg)
	assert.Equal(t, 50.0, s.Length())
	diff(t, seg.StationAt(20), s.StationAt(20), within(1e-7))
	assert.Equal(t, seg.StartBearing(), s.StartBearing())
	assert.True(t, s.Center().IsNaN())
	diff(t, seg.PointOfIntersection(), s.PointOfIntersection(), within(1e-12))
	assert.Equal(t, 0.0, s.DifferentialArea())
}

func TestSpiralFromArc(t *testing.T) {
	a := quarter()
	s := SpiralFromArc(a)
	assert.InDelta(t, a.Length(), s.Length(), 1e-15)
	for _, x := range []float64{0, 0.4, 0.8, 1.2, math.Pi / 2} {
		nearPoint(t, a.StationAt(x).XY(), s.StationAt(x).XY(), 1e-8)
		angleNear(t, a.BearingAt(x), s.BearingAt(x), 2)
	}
	nearPoint(t, a.Center(), s.Center(), 1e-8)
	nearPoint(t, a.PointOfIntersection(), s.PointOfIntersection(), 1e-8)
	assert.InDelta(t, a.TangentLength(AtStart), s.TangentLength(AtStart), 1e-8)
	assert.InDelta(t, a.TangentLength(AtEnd), s.TangentLength(AtEnd), 1e-8)
	assert.InDelta(t, a.DifferentialArea(), s.DifferentialArea(), 1e-8)
}

func TestSpiralRaw(t *testing.T) {
	ref := entrySpiral(t)
	raw := NewSpiralRaw(ref.Start(), ref.Mid(), ref.End(), ref.MidBearing(), ref.CurvatureAt(50), ref.Clothance(), ref.Length())
	diff(t, ref.StationAt(30), raw.StationAt(30))
	assert.Equal(t, ref.BearingAt(70), raw.BearingAt(70))
}
