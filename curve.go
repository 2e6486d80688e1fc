package cogo

import (
	"math"
)

// End names one end of a curve.
type End int

const (
	AtStart End = iota + 1
	AtEnd
)

func (e End) String() string {
	switch e {
	case AtStart:
		return "start"
	case AtEnd:
		return "end"
	default:
		return "invalid end"
	}
}

// Curve is a horizontal alignment element parametrized by horizontal
// arclength, carrying a cubic vertical profile. It is implemented by
// [Segment], [Arc], and [SpiralArc].
//
// Quantities that are undefined for a particular curve, such as the center of
// a straight segment, are reported as NaN rather than as errors.
type Curve interface {
	Start() Point3
	End() Point3

	// Length returns the horizontal arclength.
	Length() float64
	// Profile returns the vertical profile.
	Profile() VCurve
	ElevationAt(along float64) float64
	SlopeAt(along float64) float64
	// AccelAt returns the rate of change of grade.
	AccelAt(along float64) float64

	// StationAt returns the point at arclength along. Arclengths outside
	// [0, Length()] extrapolate the curve.
	StationAt(along float64) Point3
	BearingAt(along float64) Angle
	StartBearing() Angle
	EndBearing() Angle
	CurvatureAt(along float64) float64
	RadiusAt(along float64) float64
	// Clothance returns the rate of change of curvature with arclength.
	Clothance() float64

	// Delta returns the total turn from the start bearing to the end
	// bearing.
	Delta() Angle
	// Delta2 returns the secondary turn: the sum of the end bearings minus
	// twice the chord bearing. It is zero for circular arcs.
	Delta2() Angle

	Center() Point
	// PointOfIntersection returns the point where the tangents at the two
	// ends meet.
	PointOfIntersection() Point
	// TangentLength returns the distance from an end to the point of
	// intersection, measured along that end's tangent.
	TangentLength(which End) float64
	// DifferentialArea returns the signed area between the curve and its
	// chord, positive when the curve turns anticlockwise.
	DifferentialArea() float64
	// Throw returns the distance between the circles osculating the two
	// ends. It is nonzero only for spirals.
	Throw() float64

	// IsCurly reports whether the curve turns so far that some of its
	// approximations break down.
	IsCurly() bool
	// IsTooCurly reports whether the curve is too curly to be used at all.
	IsTooCurly() bool

	// Epsilon returns the positional resolution of the curve, which grows
	// with distance from the origin and with length.
	Epsilon() float64

	// SplitCurve divides the curve at arclength along into two curves of the
	// same kind.
	SplitCurve(along float64) (Curve, Curve)
	// LengthenCurve moves one end to arclength along, keeping the other end
	// and its tangent. For AtStart, along is measured from the current start.
	LengthenCurve(which End, along float64) Curve
	// ReverseCurve returns the same curve traversed from end to start.
	ReverseCurve() Curve
}

// ChordLength returns the horizontal distance between the ends of c.
func ChordLength(c Curve) float64 {
	return c.Start().XY().Distance(c.End().XY())
}

// ChordBearing returns the bearing from the start of c to its end.
func ChordBearing(c Curve) Angle {
	return Dir(c.Start().XY(), c.End().XY())
}

// Midpoint returns the point halfway along c.
func Midpoint(c Curve) Point3 {
	return c.StationAt(c.Length() / 2)
}

// VerticalExtrema returns the arclengths of the high and low points of c's
// profile. If withEnds is true the two ends are included.
func VerticalExtrema(c Curve, withEnds bool) []float64 {
	return c.Profile().Extrema(withEnds)
}

// ContourCrossing returns the arclength at which c reaches elevation e, or
// NaN if its end elevations do not bracket e.
func ContourCrossing(c Curve, e float64) float64 {
	return c.Profile().Crossing(e)
}

// maxAbsCurvature returns the larger magnitude of the end curvatures, which
// bounds the curvature everywhere since it varies linearly.
func maxAbsCurvature(c Curve) float64 {
	return max(math.Abs(c.CurvatureAt(0)), math.Abs(c.CurvatureAt(c.Length())))
}

// epsilonAt returns the positional resolution of a curve of length l near
// point m.
func epsilonAt(m Point, l float64) float64 {
	return math.Sqrt((m.X*m.X+m.Y*m.Y+l*l)/1.5) * 0x1p-52
}

// SolveQuadratic finds real roots of a quadratic equation.
//
// Returns values of x for which c0 + c1 x + c2 x² = 0.0
//
// This function tries to be quite numerically robust. If the equation is nearly
// linear, it will return the root ignoring the quadratic term; the other root
// might be out of representable range. In the degenerate case where all
// coefficients are zero, so that all values of x satisfy the equation, a single
// 0.0 is returned.
func SolveQuadratic(c0, c1, c2 float64) ([2]float64, int) {
	sc0 := c0 / c2
	sc1 := c1 / c2
	if math.IsInf(sc0, 0) || math.IsInf(sc1, 0) || c2 == 0 {
		// c2 is zero or very small, treat as linear eqn
		root := -c0 / c1
		if !math.IsInf(root, 0) && !math.IsNaN(root) {
			return [2]float64{root}, 1
		} else if c0 == 0.0 && c1 == 0.0 {
			// Degenerate case
			return [2]float64{0}, 1
		} else {
			return [2]float64{}, 0
		}
	}
	arg := sc1*sc1 - 4.0*sc0
	var root1 float64
	if math.IsInf(arg, 0) {
		// Likely, calculation of sc1 * sc1 overflowed. Find one root
		// using sc1 x + x² = 0, other root as sc0 / root1.
		root1 = -sc1
	} else {
		if arg < 0.0 {
			return [2]float64{}, 0
		} else if arg == 0.0 {
			return [2]float64{-0.5 * sc1}, 1
		}
		// See https://math.stackexchange.com/questions/866331
		root1 = -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	}
	root2 := sc0 / root1
	if !math.IsInf(root2, 0) && !math.IsNaN(root2) {
		// Sort just to be friendly and make results deterministic.
		if root2 > root1 {
			return [2]float64{root1, root2}, 2
		} else {
			return [2]float64{root2, root1}, 2
		}
	} else {
		return [2]float64{root1}, 1
	}
}

// SolveITP solves an arbitrary function for a zero-crossing.
//
// This uses the [ITP method], as described in the paper [An Enhancement of the
// Bisection Method Average Performance Preserving Minmax Optimality].
//
// The values of ya and yb are given as arguments rather than computed from f,
// as the values may already be known, or they may be less expensive to compute
// as special cases.
//
// It is assumed that ya < 0.0 and yb > 0.0, otherwise unexpected results may
// occur.
//
// The value of epsilon must be larger than 2**-63 * (b - a), otherwise integer
// overflow may occur. The a and b parameters represent the lower and upper
// bounds of the bracket searched for a solution.
//
// The n0 parameter controls the relative impact of the bisection and secant
// components, and k1 is suggested to be 0.2 / (b - a). When the function is
// monotonic, the returned result is guaranteed to be within epsilon of the
// zero crossing.
//
// [ITP method]: https://en.wikipedia.org/wiki/ITP_Method
// [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality]: https://dl.acm.org/doi/10.1145/3423597
func SolveITP(
	f func(float64) float64,
	a float64,
	b float64,
	epsilon float64,
	n0 int,
	k1 float64,
	ya float64,
	yb float64,
) float64 {
	n1_2 := int(max(math.Ceil(math.Log2((b-a)/epsilon))-1.0, 0.0))
	nmax := n0 + n1_2
	scaledEpsilon := epsilon * float64(uint64(1)<<nmax)
	for b-a > 2.0*epsilon {
		x1_2 := 0.5 * (a + b)
		r := scaledEpsilon - 0.5*(b-a)
		xf := (yb*a - ya*b) / (yb - ya)
		sigma := x1_2 - xf
		// This has k2 = 2 hardwired for efficiency.
		delta := k1 * ((b - a) * (b - a))
		var xt float64
		if delta <= math.Abs(x1_2-xf) {
			xt = xf + math.Copysign(delta, sigma)
		} else {
			xt = x1_2
		}
		var xitp float64
		if math.Abs(xt-x1_2) <= r {
			xitp = xt
		} else {
			xitp = x1_2 - math.Copysign(r, sigma)
		}
		yitp := f(xitp)
		if yitp > 0.0 {
			b = xitp
			yb = yitp
		} else if yitp < 0.0 {
			a = xitp
			ya = yitp
		} else {
			return xitp
		}
		scaledEpsilon *= 0.5
	}
	return 0.5 * (a + b)
}

// Station is a point on a curve together with its arclength and the
// direction and curvature there.
type Station struct {
	Along     float64
	Point     Point
	Bearing   Angle
	Curvature float64
}

// StationOf returns the station of c at arclength along.
func StationOf(c Curve, along float64) Station {
	return Station{
		Along:     along,
		Point:     c.StationAt(along).XY(),
		Bearing:   c.BearingAt(along),
		Curvature: c.CurvatureAt(along),
	}
}
