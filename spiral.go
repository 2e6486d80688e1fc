package cogo

import (
	"math"
)

// SpiralArc is a clothoid: a curve whose curvature changes linearly with
// arclength. It is held by its midpoint, the bearing and curvature there,
// its clothance and its length, together with the end points it was fitted
// to. A spiral whose fit failed has NaN curvature, clothance and length;
// see [SpiralArc.Valid].
type SpiralArc struct {
	start, end   Point3
	ctrl1, ctrl2 float64

	mid     Point
	midBear Angle
	cur     float64
	clo     float64
	len     float64
}

var _ Curve = SpiralArc{}

// NewSpiral returns a straight spiral from p0 to p1 with a constant grade.
// Its shape can then be changed with [SpiralArc.SetDelta] or
// [SpiralArc.SetCurvature].
func NewSpiral(p0, p1 Point3) SpiralArc {
	v := NewGrade(p0.Z, p1.Z, 0)
	s := SpiralArc{start: p0, end: p1, ctrl1: v.C1, ctrl2: v.C2}
	s.seedStraight(false)
	return s
}

// NewSpiralWithCurvature fits a spiral from p0 to p1 whose curvature runs
// from c0 to c1.
func NewSpiralWithCurvature(p0 Point3, c0, c1 float64, p1 Point3) (SpiralArc, FitResult) {
	s := NewSpiral(p0, p1)
	res := s.SetCurvature(c0, c1)
	return s, res
}

// NewSpiralFromStart returns the spiral that leaves p0 at bearing bear with
// curvature c0 and reaches curvature c1 after length. The end elevation is
// endZ and the grade is constant. No fitting is involved.
func NewSpiralFromStart(p0 Point3, bear Angle, c0, c1, length, endZ float64) (SpiralArc, error) {
	if !(length > 0) || math.IsInf(length, 0) {
		return SpiralArc{}, ErrInvalidLength
	}
	clo := (c1 - c0) / length
	s := SpiralArc{
		start:   p0,
		mid:     p0.XY().Translate(Cornu3(length/2, c0, clo).Turn(bear)),
		midBear: bear + spiralBearing(length/2, c0, clo),
		cur:     c0 + clo*length/2,
		clo:     clo,
		len:     length,
	}
	v := NewGrade(p0.Z, endZ, length)
	s.ctrl1, s.ctrl2 = v.C1, v.C2
	s.end = s.StationAt(length).XY().WithZ(endZ)
	return s, nil
}

// NewSpiralRaw assembles a spiral from its fields without checking that they
// agree with each other.
func NewSpiralRaw(start Point3, mid Point, end Point3, midBear Angle, cur, clo, length float64) SpiralArc {
	v := NewGrade(start.Z, end.Z, length)
	return SpiralArc{
		start:   start,
		end:     end,
		ctrl1:   v.C1,
		ctrl2:   v.C2,
		mid:     mid,
		midBear: midBear,
		cur:     cur,
		clo:     clo,
		len:     length,
	}
}

// SpiralFromSegment returns the straight spiral equivalent to seg.
func SpiralFromSegment(seg Segment) SpiralArc {
	s := SpiralArc{start: seg.P0, end: seg.P1, ctrl1: seg.Ctrl1, ctrl2: seg.Ctrl2}
	s.seedStraight(false)
	return s
}

// SpiralFromArc returns the spiral of zero clothance equivalent to a.
func SpiralFromArc(a Arc) SpiralArc {
	l := a.Length()
	return SpiralArc{
		start:   a.P0,
		end:     a.P1,
		ctrl1:   a.Ctrl1,
		ctrl2:   a.Ctrl2,
		mid:     a.StationAt(l / 2).XY(),
		midBear: a.chordBearing(),
		cur:     a.CurvatureAt(0),
		len:     l,
	}
}

// spiralBearing returns the turn after arclength t of a spiral with
// curvature cur and clothance clo at t = 0.
func spiralBearing(t, cur, clo float64) Angle {
	return RadToAngle(t*t*clo/2 + t*cur)
}

// Valid reports whether the spiral's shape is defined, which is false after
// a failed fit.
func (s SpiralArc) Valid() bool {
	return !math.IsNaN(s.cur) && !math.IsNaN(s.clo) && !math.IsNaN(s.len)
}

func (s SpiralArc) Start() Point3   { return s.start }
func (s SpiralArc) End() Point3     { return s.end }
func (s SpiralArc) Length() float64 { return s.len }

// Mid returns the horizontal midpoint the spiral is anchored at.
func (s SpiralArc) Mid() Point { return s.mid }

// MidBearing returns the bearing at the midpoint.
func (s SpiralArc) MidBearing() Angle { return s.midBear }

func (s SpiralArc) Profile() VCurve {
	return VCurve{Z0: s.start.Z, C1: s.ctrl1, C2: s.ctrl2, Z1: s.end.Z, Length: s.len}
}

func (s SpiralArc) ElevationAt(along float64) float64 { return s.Profile().Elevation(along) }
func (s SpiralArc) SlopeAt(along float64) float64     { return s.Profile().Slope(along) }
func (s SpiralArc) AccelAt(along float64) float64     { return s.Profile().Accel(along) }

func (s SpiralArc) StationAt(along float64) Point3 {
	rel := Cornu3(along-s.len/2, s.cur, s.clo).Turn(s.midBear)
	return s.mid.Translate(rel).WithZ(s.ElevationAt(along))
}

func (s SpiralArc) BearingAt(along float64) Angle {
	return s.midBear + spiralBearing(along-s.len/2, s.cur, s.clo)
}

func (s SpiralArc) StartBearing() Angle { return s.BearingAt(0) }
func (s SpiralArc) EndBearing() Angle   { return s.BearingAt(s.len) }

func (s SpiralArc) CurvatureAt(along float64) float64 {
	return s.cur + s.clo*(along-s.len/2)
}

func (s SpiralArc) RadiusAt(along float64) float64 { return 1 / s.CurvatureAt(along) }
func (s SpiralArc) Clothance() float64             { return s.clo }

// Delta returns the total turn, which is the mean curvature times the
// length.
func (s SpiralArc) Delta() Angle { return RadToAngle(s.cur * s.len) }

func (s SpiralArc) Delta2() Angle {
	return s.StartBearing() + s.EndBearing() - 2*Dir(s.start.XY(), s.end.XY())
}

// Center returns the center of curvature at the midpoint.
func (s SpiralArc) Center() Point {
	if s.cur == 0 {
		return nanPoint
	}
	return s.mid.Translate(UnitVec(s.midBear + Deg90).Div(s.cur))
}

func (s SpiralArc) PointOfIntersection() Point {
	if s.cur == 0 && s.clo == 0 {
		return s.mid
	}
	return BearingIntersection(s.start.XY(), s.StartBearing(), s.end.XY(), s.EndBearing())
}

func (s SpiralArc) TangentLength(which End) float64 {
	switch which {
	case AtStart:
		return DistanceInDirection(s.start.XY(), s.PointOfIntersection(), s.StartBearing())
	case AtEnd:
		return DistanceInDirection(s.PointOfIntersection(), s.end.XY(), s.EndBearing())
	default:
		return math.NaN()
	}
}

// DifferentialArea returns the signed area between the spiral and its chord.
// Short, gentle spirals use a series; others are halved recursively, adding
// the triangle each split cuts off.
func (s SpiralArc) DifferentialArea() float64 {
	totCur := s.len * s.cur
	totClo := s.len * s.len * s.clo
	if (math.Abs(totCur) < 0.05 && math.Abs(totClo) < 0.01) || !s.Valid() {
		return s.len * s.len * (totCur/12 - totCur*totCur*totCur/240 - totCur*totClo*totClo/6720)
	}
	a, b := s.Split(s.len / 2)
	return Area3(s.start.XY(), s.mid, s.end.XY()) + a.DifferentialArea() + b.DifferentialArea()
}

// Throw returns the gap between the circles (or, where the curvature is
// zero, lines) osculating the spiral at its two ends.
func (s SpiralArc) Throw() float64 {
	k0, k1 := s.CurvatureAt(0), s.CurvatureAt(s.len)
	p0, p1 := s.start.XY(), s.end.XY()
	b0, b1 := s.StartBearing(), s.EndBearing()
	center := func(p Point, b Angle, k float64) Point {
		return p.Translate(UnitVec(b + Deg90).Div(k))
	}
	switch {
	case k0 == 0 && k1 == 0:
		return math.Abs(DistanceInDirection(p0, p1, b0+Deg90))
	case k0 == 0:
		c1 := center(p1, b1, k1)
		return math.Abs(math.Abs(DistanceInDirection(p0, c1, b0+Deg90)) - 1/math.Abs(k1))
	case k1 == 0:
		c0 := center(p0, b0, k0)
		return math.Abs(math.Abs(DistanceInDirection(p1, c0, b1+Deg90)) - 1/math.Abs(k0))
	}
	c0, c1 := center(p0, b0, k0), center(p1, b1, k1)
	r0, r1 := 1/math.Abs(k0), 1/math.Abs(k1)
	d := c0.Distance(c1)
	switch {
	case d >= r0+r1:
		return d - r0 - r1
	case d <= math.Abs(r0-r1):
		return math.Abs(r0-r1) - d
	default:
		return 0
	}
}

// maxChordDeviation returns, in radians, the largest angle between the
// chord and the spiral's tangent.
func (s SpiralArc) maxChordDeviation() float64 {
	base := (s.midBear - Dir(s.start.XY(), s.end.XY())).Fold().Radians()
	turn := func(t float64) float64 { return t*t*s.clo/2 + t*s.cur }
	h := s.len / 2
	dev := max(math.Abs(base+turn(-h)), math.Abs(base+turn(h)))
	if s.clo != 0 {
		// The tangent is stationary where the curvature vanishes.
		if t := -s.cur / s.clo; t > -h && t < h {
			dev = max(dev, math.Abs(base+turn(t)))
		}
	}
	return dev
}

// IsCurly reports whether the tangent somewhere deviates from the chord by a
// right angle or more.
func (s SpiralArc) IsCurly() bool {
	return !s.Valid() || s.maxChordDeviation() >= math.Pi/2
}

// IsTooCurly reports whether the tangent somewhere points back along the
// chord.
func (s SpiralArc) IsTooCurly() bool {
	return !s.Valid() || s.maxChordDeviation() >= math.Pi
}

func (s SpiralArc) Epsilon() float64 { return epsilonAt(s.mid, s.len) }

func (s *SpiralArc) SetSlope(which End, slope float64) {
	v := s.Profile().WithSlope(which, slope)
	s.ctrl1, s.ctrl2 = v.C1, v.C2
}

func (s *SpiralArc) SetControl(which End, elev float64) {
	switch which {
	case AtStart:
		s.ctrl1 = elev
	case AtEnd:
		s.ctrl2 = elev
	}
}

// Split divides the spiral at arclength along. Both pieces lie exactly on
// the original curve.
func (s SpiralArc) Split(along float64) (SpiralArc, SpiralArc) {
	p := s.StationAt(along)
	va, vb := s.Profile().Split(along)
	p.Z = va.Z1
	a := SpiralArc{
		start:   s.start,
		end:     p,
		ctrl1:   va.C1,
		ctrl2:   va.C2,
		mid:     s.StationAt(along / 2).XY(),
		midBear: s.BearingAt(along / 2),
		cur:     s.CurvatureAt(along / 2),
		clo:     s.clo,
		len:     along,
	}
	b := SpiralArc{
		start:   p,
		end:     s.end,
		ctrl1:   vb.C1,
		ctrl2:   vb.C2,
		mid:     s.StationAt((along + s.len) / 2).XY(),
		midBear: s.BearingAt((along + s.len) / 2),
		cur:     s.CurvatureAt((along + s.len) / 2),
		clo:     s.clo,
		len:     s.len - along,
	}
	return a, b
}

// Lengthen moves one end of the spiral to arclength along on the same
// clothoid. Grades are handled as for [Segment.Lengthen].
func (s SpiralArc) Lengthen(which End, along float64) SpiralArc {
	v := s.Profile()
	newSlope := v.Slope(along)
	p := s.StationAt(along)
	var c float64
	switch which {
	case AtStart:
		c = (along + s.len) / 2
	case AtEnd:
		c = along / 2
	default:
		return s
	}
	mid, midBear, cur := s.StationAt(c).XY(), s.BearingAt(c), s.CurvatureAt(c)
	s.mid, s.midBear, s.cur = mid, midBear, cur
	switch which {
	case AtStart:
		s.start = p
		s.len -= along
		s.SetSlope(AtStart, newSlope)
		s.SetSlope(AtEnd, v.EndSlope())
	case AtEnd:
		s.end = p
		s.len = along
		s.SetSlope(AtStart, v.StartSlope())
		s.SetSlope(AtEnd, newSlope)
	}
	return s
}

// Reverse returns the same clothoid traversed from end to start. The
// curvature changes sign; the clothance does not.
func (s SpiralArc) Reverse() SpiralArc {
	return SpiralArc{
		start:   s.end,
		end:     s.start,
		ctrl1:   s.ctrl2,
		ctrl2:   s.ctrl1,
		mid:     s.mid,
		midBear: s.midBear + Deg180,
		cur:     -s.cur,
		clo:     s.clo,
		len:     s.len,
	}
}

func (s SpiralArc) SplitCurve(along float64) (Curve, Curve) {
	a, b := s.Split(along)
	return a, b
}

func (s SpiralArc) LengthenCurve(which End, along float64) Curve {
	return s.Lengthen(which, along)
}

func (s SpiralArc) ReverseCurve() Curve { return s.Reverse() }
