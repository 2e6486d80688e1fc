package cogo

import (
	"math"
)

// Segment is a straight curve between two points. Its profile is a cubic
// with control elevations Ctrl1 and Ctrl2.
type Segment struct {
	// The segment's start point.
	P0 Point3
	// The segment's end point.
	P1 Point3

	Ctrl1, Ctrl2 float64
}

var _ Curve = Segment{}

// NewSegment returns the segment from p0 to p1 with a constant grade.
func NewSegment(p0, p1 Point3) Segment {
	v := NewGrade(p0.Z, p1.Z, 0)
	return Segment{P0: p0, P1: p1, Ctrl1: v.C1, Ctrl2: v.C2}
}

// NewSegmentWithControls returns the segment from p0 to p1 with the given
// control elevations.
func NewSegmentWithControls(p0 Point3, ctrl1, ctrl2 float64, p1 Point3) Segment {
	return Segment{P0: p0, P1: p1, Ctrl1: ctrl1, Ctrl2: ctrl2}
}

func (s Segment) Start() Point3 { return s.P0 }
func (s Segment) End() Point3   { return s.P1 }

// Length returns the horizontal length of the segment.
func (s Segment) Length() float64 {
	return s.P0.XY().Distance(s.P1.XY())
}

func (s Segment) Profile() VCurve {
	return VCurve{Z0: s.P0.Z, C1: s.Ctrl1, C2: s.Ctrl2, Z1: s.P1.Z, Length: s.Length()}
}

func (s Segment) ElevationAt(along float64) float64 { return s.Profile().Elevation(along) }
func (s Segment) SlopeAt(along float64) float64     { return s.Profile().Slope(along) }
func (s Segment) AccelAt(along float64) float64     { return s.Profile().Accel(along) }

func (s Segment) StationAt(along float64) Point3 {
	l := s.Length()
	gnola := l - along
	return Point3{
		X: (s.P0.X*gnola + s.P1.X*along) / l,
		Y: (s.P0.Y*gnola + s.P1.Y*along) / l,
		Z: s.ElevationAt(along),
	}
}

func (s Segment) BearingAt(float64) Angle { return Dir(s.P0.XY(), s.P1.XY()) }
func (s Segment) StartBearing() Angle     { return s.BearingAt(0) }
func (s Segment) EndBearing() Angle       { return s.BearingAt(0) }
func (s Segment) CurvatureAt(float64) float64 {
	return 0
}
func (s Segment) RadiusAt(float64) float64 { return math.Inf(1) }
func (s Segment) Clothance() float64       { return 0 }
func (s Segment) Delta() Angle             { return 0 }
func (s Segment) Delta2() Angle            { return 0 }

// Center returns a NaN point; a straight line has no center.
func (s Segment) Center() Point { return nanPoint }

func (s Segment) PointOfIntersection() Point {
	return s.P0.XY().Midpoint(s.P1.XY())
}

func (s Segment) TangentLength(which End) float64 {
	switch which {
	case AtStart, AtEnd:
		return s.Length() / 2
	default:
		return math.NaN()
	}
}

func (s Segment) DifferentialArea() float64 { return 0 }
func (s Segment) Throw() float64            { return 0 }
func (s Segment) IsCurly() bool             { return false }
func (s Segment) IsTooCurly() bool          { return false }

func (s Segment) Epsilon() float64 {
	return epsilonAt(s.P0.XY().Midpoint(s.P1.XY()), s.Length())
}

// SetSlope changes the control elevation at one end so that the grade there
// is slope.
func (s *Segment) SetSlope(which End, slope float64) {
	v := s.Profile().WithSlope(which, slope)
	s.Ctrl1, s.Ctrl2 = v.C1, v.C2
}

// SetControl sets the control elevation nearest to one end.
func (s *Segment) SetControl(which End, elev float64) {
	switch which {
	case AtStart:
		s.Ctrl1 = elev
	case AtEnd:
		s.Ctrl2 = elev
	}
}

// Split divides the segment at arclength along.
func (s Segment) Split(along float64) (Segment, Segment) {
	p := s.StationAt(along)
	va, vb := s.Profile().Split(along)
	p.Z = va.Z1
	return Segment{P0: s.P0, P1: p, Ctrl1: va.C1, Ctrl2: va.C2},
		Segment{P0: p, P1: s.P1, Ctrl1: vb.C1, Ctrl2: vb.C2}
}

// Lengthen moves one end of the segment to arclength along. The grade at the
// moved end becomes the grade the profile had at along; the grade at the
// other end is kept.
func (s Segment) Lengthen(which End, along float64) Segment {
	v := s.Profile()
	newSlope := v.Slope(along)
	p := s.StationAt(along)
	switch which {
	case AtStart:
		s.P0 = p
		s.SetSlope(AtStart, newSlope)
		s.SetSlope(AtEnd, v.EndSlope())
	case AtEnd:
		s.P1 = p
		s.SetSlope(AtStart, v.StartSlope())
		s.SetSlope(AtEnd, newSlope)
	}
	return s
}

// Reverse returns the segment from P1 to P0.
func (s Segment) Reverse() Segment {
	return Segment{P0: s.P1, P1: s.P0, Ctrl1: s.Ctrl2, Ctrl2: s.Ctrl1}
}

func (s Segment) SplitCurve(along float64) (Curve, Curve) {
	a, b := s.Split(along)
	return a, b
}

func (s Segment) LengthenCurve(which End, along float64) Curve {
	return s.Lengthen(which, along)
}

func (s Segment) ReverseCurve() Curve { return s.Reverse() }
