package cogo

import (
	"math"
)

// Arc is a circular arc from P0 to P1 turning through a fixed angle. A
// positive turn is anticlockwise. An arc with zero turn is a straight line.
//
// The turn is held as an [Angle] and may not reach a full revolution; an arc
// whose turn is [Deg360] is too curly to be used.
type Arc struct {
	P0, P1       Point3
	Ctrl1, Ctrl2 float64

	delta Angle
}

var _ Curve = Arc{}

// NewArc returns the arc from p0 to p1 turning through delta, with a
// constant grade.
func NewArc(p0, p1 Point3, delta Angle) Arc {
	v := NewGrade(p0.Z, p1.Z, 0)
	return Arc{P0: p0, P1: p1, Ctrl1: v.C1, Ctrl2: v.C2, delta: delta}
}

// NewArcWithControls returns the arc from p0 to p1 turning through delta with
// the given control elevations.
func NewArcWithControls(p0 Point3, ctrl1, ctrl2 float64, p1 Point3, delta Angle) Arc {
	return Arc{P0: p0, P1: p1, Ctrl1: ctrl1, Ctrl2: ctrl2, delta: delta}
}

// NewArcThrough returns the arc through three points. The profile's control
// elevations are raised or lowered by the same amount so that it passes
// through mid's elevation. It returns [ErrDegenerate] if any two of the
// points coincide horizontally.
func NewArcThrough(start, mid, end Point3) (Arc, error) {
	s, m, e := start.XY(), mid.XY(), end.XY()
	if s == m || m == e || s == e {
		return Arc{}, ErrDegenerate
	}
	delta := 2 * (Dir(m, e) - Dir(s, m))
	var p float64
	if delta != 0 {
		p = float64(2*(Dir(m, e)-Dir(s, e))) / float64(delta)
	} else {
		p = s.Distance(m) / s.Distance(e)
	}
	q := 1 - p
	r := (mid.Z - start.Z - p*(end.Z-start.Z)) / (p * q) / 3
	v := NewGrade(start.Z, end.Z, 0)
	return Arc{P0: start, P1: end, Ctrl1: v.C1 + r, Ctrl2: v.C2 + r, delta: delta}, nil
}

func (a Arc) Start() Point3 { return a.P0 }
func (a Arc) End() Point3   { return a.P1 }

func (a Arc) chord() float64 { return a.P0.XY().Distance(a.P1.XY()) }

func (a Arc) chordBearing() Angle { return Dir(a.P0.XY(), a.P1.XY()) }

func (a Arc) Length() float64 {
	c := a.chord()
	if a.delta == 0 {
		return c
	}
	return c * a.delta.Radians() / a.delta.SinHalf() / 2
}

func (a Arc) Profile() VCurve {
	return VCurve{Z0: a.P0.Z, C1: a.Ctrl1, C2: a.Ctrl2, Z1: a.P1.Z, Length: a.Length()}
}

func (a Arc) ElevationAt(along float64) float64 { return a.Profile().Elevation(along) }
func (a Arc) SlopeAt(along float64) float64     { return a.Profile().Slope(along) }
func (a Arc) AccelAt(along float64) float64     { return a.Profile().Accel(along) }

func (a Arc) StationAt(along float64) Point3 {
	if a.delta == 0 {
		return Segment{P0: a.P0, P1: a.P1, Ctrl1: a.Ctrl1, Ctrl2: a.Ctrl2}.StationAt(along)
	}
	l := a.Length()
	rdelta := a.delta.Radians()
	angAlong := along / l * rdelta
	d := a.P1.XY().Sub(a.P0.XY())
	chordRad := math.Atan2(d.Y, d.X)
	off := cis((angAlong-rdelta)/2 + chordRad).Mul(math.Sin(angAlong/2) * a.RadiusAt(0) * 2)
	return a.P0.XY().Translate(off).WithZ(a.ElevationAt(along))
}

func (a Arc) BearingAt(along float64) Angle {
	return a.chordBearing() + rintAngle((along/a.Length()-0.5)*float64(a.delta))
}

func (a Arc) StartBearing() Angle {
	return a.chordBearing() + rintAngle(-0.5*float64(a.delta))
}

func (a Arc) EndBearing() Angle {
	return a.chordBearing() + rintAngle(0.5*float64(a.delta))
}

// CurvatureAt returns the arc's curvature, which is the same everywhere and
// positive for anticlockwise arcs.
func (a Arc) CurvatureAt(float64) float64 {
	return 2 * a.delta.SinHalf() / a.chord()
}

// RadiusAt returns the signed radius, infinite for a straight arc.
func (a Arc) RadiusAt(float64) float64 {
	return a.chord() / 2 / a.delta.SinHalf()
}

func (a Arc) Clothance() float64 { return 0 }
func (a Arc) Delta() Angle       { return a.delta }

func (a Arc) Delta2() Angle {
	return a.StartBearing() + a.EndBearing() - 2*a.chordBearing()
}

func (a Arc) Center() Point {
	if a.delta == 0 {
		return nanPoint
	}
	s, e := a.P0.XY(), a.P1.XY()
	return s.Midpoint(e).Translate(e.Sub(s).Div(2 * a.delta.TanHalf()).Turn90())
}

func (a Arc) PointOfIntersection() Point {
	s, e := a.P0.XY(), a.P1.XY()
	return s.Midpoint(e).Translate(e.Sub(s).Mul(a.delta.TanHalf() / 2).Turn90().Negate())
}

func (a Arc) TangentLength(which End) float64 {
	switch which {
	case AtStart, AtEnd:
		return a.chord() / 2 / a.delta.CosHalf()
	default:
		return math.NaN()
	}
}

// DifferentialArea returns the area of the circular segment between the arc
// and its chord, negative for clockwise arcs.
func (a Arc) DifferentialArea() float64 {
	if a.delta == 0 {
		return 0
	}
	r := a.RadiusAt(0)
	th := a.delta.Radians()
	var d float64
	if math.Abs(th) < 0.05 {
		th2 := th * th
		d = th * th2 / 6 * (1 - th2/20*(1-th2/42))
	} else {
		d = th - a.delta.Sin()
	}
	return r * r * d / 2
}

func (a Arc) Throw() float64 { return 0 }

// IsCurly reports whether the arc turns through half a revolution or more.
func (a Arc) IsCurly() bool { return a.delta.Abs() >= int64(Deg180) }

// IsTooCurly reports whether the arc turns through a full revolution.
func (a Arc) IsTooCurly() bool { return a.delta == Deg360 }

func (a Arc) Epsilon() float64 {
	return epsilonAt(a.StationAt(a.Length()/2).XY(), a.Length())
}

// SetDelta changes the turn, keeping the ends.
func (a *Arc) SetDelta(delta Angle) { a.delta = delta }

// SetCurvature sets the turn so that the arc's curvature is the mean of c0
// and c1, keeping the ends. If no arc of that curvature spans the chord, the
// turn becomes [Deg360].
func (a *Arc) SetCurvature(c0, c1 float64) {
	s := (c0 + c1) / 4 * a.chord()
	if math.Abs(s) > 1 {
		a.delta = Deg360
	} else {
		a.delta = TwiceAsin(s)
	}
}

func (a *Arc) SetSlope(which End, slope float64) {
	v := a.Profile().WithSlope(which, slope)
	a.Ctrl1, a.Ctrl2 = v.C1, v.C2
}

func (a *Arc) SetControl(which End, elev float64) {
	switch which {
	case AtStart:
		a.Ctrl1 = elev
	case AtEnd:
		a.Ctrl2 = elev
	}
}

// Split divides the arc at arclength along.
func (a Arc) Split(along float64) (Arc, Arc) {
	p := a.StationAt(along)
	va, vb := a.Profile().Split(along)
	p.Z = va.Z1
	da := rintAngle(float64(a.delta) * along / a.Length())
	return Arc{P0: a.P0, P1: p, Ctrl1: va.C1, Ctrl2: va.C2, delta: da},
		Arc{P0: p, P1: a.P1, Ctrl1: vb.C1, Ctrl2: vb.C2, delta: a.delta - da}
}

// Lengthen moves one end of the arc to arclength along, keeping the
// curvature, the other end and its tangent. Grades are handled as for
// [Segment.Lengthen].
func (a Arc) Lengthen(which End, along float64) Arc {
	v := a.Profile()
	newSlope := v.Slope(along)
	curv := a.CurvatureAt(0)
	p := a.StationAt(along)
	switch which {
	case AtStart:
		a.P0 = p
		a.delta = RadToAngle((v.Length - along) * curv)
		a.SetSlope(AtStart, newSlope)
		a.SetSlope(AtEnd, v.EndSlope())
	case AtEnd:
		a.P1 = p
		a.delta = RadToAngle(along * curv)
		a.SetSlope(AtStart, v.StartSlope())
		a.SetSlope(AtEnd, newSlope)
	}
	return a
}

// Reverse returns the arc from P1 to P0, which turns the other way.
func (a Arc) Reverse() Arc {
	return Arc{P0: a.P1, P1: a.P0, Ctrl1: a.Ctrl2, Ctrl2: a.Ctrl1, delta: -a.delta}
}

func (a Arc) SplitCurve(along float64) (Curve, Curve) {
	x, y := a.Split(along)
	return x, y
}

func (a Arc) LengthenCurve(which End, along float64) Curve {
	return a.Lengthen(which, along)
}

func (a Arc) ReverseCurve() Curve { return a.Reverse() }
