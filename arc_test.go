package cogo

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quarter is the anticlockwise quarter of the unit circle from east to
// north.
func quarter() Arc { return NewArc(Pt3(1, 0, 0), Pt3(0, 1, 0), Deg90) }

func TestArcQuarter(t *testing.T) {
	a := quarter()
	assert.InDelta(t, math.Pi/2, a.Length(), 1e-14)
	assert.InDelta(t, 1, a.CurvatureAt(0), 1e-14)
	assert.InDelta(t, 1, a.RadiusAt(0), 1e-14)
	nearPoint(t, Pt(0, 0), a.Center(), 1e-14)
	nearPoint(t, Pt(1, 1), a.PointOfIntersection(), 1e-14)
	assert.InDelta(t, 1, a.TangentLength(AtStart), 1e-14)
	assert.InDelta(t, 1, a.TangentLength(AtEnd), 1e-14)
	angleNear(t, Deg90, a.StartBearing(), 1)
	angleNear(t, Deg180, a.EndBearing(), 1)
	assert.Equal(t, Deg90, a.Delta())
	assert.Equal(t, Angle(0), a.Delta2())
	assert.InDelta(t, math.Pi/4-0.5, a.DifferentialArea(), 1e-14)
	assert.False(t, a.IsCurly())
	assert.False(t, a.IsTooCurly())
	for _, x := range []float64{0.1, 0.5, 1, 1.5} {
		assert.InDelta(t, 1, a.StationAt(x).XY().Distance(a.Center()), 1e-14)
	}
}

func TestArcSemicircle(t *testing.T) {
	a := NewArc(Pt3(0, 0, 0), Pt3(2, 0, 0), Deg180)
	assert.InDelta(t, math.Pi, a.Length(), 1e-14)
	nearPoint(t, Pt(1, -1), a.StationAt(math.Pi/2).XY(), 1e-14)
	nearPoint(t, Pt(1, 0), a.Center(), 1e-14)
	assert.InDelta(t, math.Pi/2, a.DifferentialArea(), 1e-14)
	assert.True(t, a.IsCurly())
	assert.False(t, a.IsTooCurly())

	cw := a.Reverse()
	assert.InDelta(t, -1, cw.CurvatureAt(0), 1e-14)
	assert.InDelta(t, -math.Pi/2, cw.DifferentialArea(), 1e-14)
}

func TestArcSmallTurn(t *testing.T) {
	// The series for the circular segment must agree with the closed form
	// near where they meet.
	for _, deg := range []float64{2.8, 2.9} {
		a := NewArc(Pt3(0, 0, 0), Pt3(100, 0, 0), DegToAngle(deg))
		r := a.RadiusAt(0)
		th := a.Delta().Radians()
		assert.InDelta(t, r*r*(th-math.Sin(th))/2, a.DifferentialArea(), 1e-6)
	}
	straight := NewArc(Pt3(0, 0, 0), Pt3(100, 0, 0), 0)
	assert.Equal(t, 100.0, straight.Length())
	assert.Equal(t, 0.0, straight.DifferentialArea())
	assert.True(t, straight.Center().IsNaN())
	diff(t, Pt3(50, 0, 0), straight.StationAt(50), within(1e-12))
}

func TestArcThrough(t *testing.T) {
	h := math.Sqrt2 / 2
	a, err := NewArcThrough(Pt3(1, 0, 0), Pt3(h, h, 5), Pt3(0, 1, 0))
	require.NoError(t, err)
	angleNear(t, Deg90, a.Delta(), 4)
	assert.InDelta(t, 5, a.ElevationAt(a.Length()/2), 1e-6)
	nearPoint(t, Pt(0, 0), a.Center(), 1e-8)

	_, err = NewArcThrough(Pt3(1, 0, 0), Pt3(1, 0, 3), Pt3(0, 1, 0))
	assert.True(t, errors.Is(err, ErrDegenerate))

	line, err := NewArcThrough(Pt3(0, 0, 0), Pt3(1, 0, 1), Pt3(4, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, Angle(0), line.Delta())
	assert.InDelta(t, 1, line.ElevationAt(1), 1e-12)
}

func TestArcSetCurvature(t *testing.T) {
	a := quarter()
	a.SetCurvature(2, 2)
	assert.Equal(t, Deg360, a.Delta())
	assert.True(t, a.IsTooCurly())

	a.SetCurvature(1, 1)
	angleNear(t, Deg90, a.Delta(), 2)

	a.SetDelta(-Deg45)
	assert.Equal(t, -Deg45, a.Delta())
	assert.Less(t, a.CurvatureAt(0), 0.0)
}

func TestArcLengthen(t *testing.T) {
	a := quarter().Lengthen(AtEnd, math.Pi)
	angleNear(t, Deg180, a.Delta(), 2)
	nearPoint(t, Pt(-1, 0), a.End().XY(), 1e-14)
}
