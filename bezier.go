package cogo

import (
	"iter"
	"math"
	"slices"

	"github.com/ctessum/geom"
	"github.com/sirupsen/logrus"
)

// BezierChain is a chain of cubic Bézier pieces in three dimensions. The
// points are stored flat: the start of each piece is followed by its two
// control points, and the end of the last piece ends an open chain. A closed
// chain omits its final point, which would repeat the first.
//
// The zero value is an empty chain.
type BezierChain struct {
	pts []Point3
}

// NewBezier returns a chain of one piece.
func NewBezier(p0, c1, c2, p1 Point3) BezierChain {
	return BezierChain{pts: []Point3{p0, c1, c2, p1}}
}

// bezierCorrections returns how far the chord bearing differs from the end
// bearings, as one minus the cosine of each deviation and of their
// difference.
func bezierCorrections(bear0, chordBear, bear1 Angle) (corr0, corr1, corr2 float64) {
	corr0 = 1 - (bear0 - chordBear).Cos()
	corr1 = 1 - (bear1 - chordBear).Cos()
	corr2 = 1 - (bear0 + bear1 - 2*chordBear).Cos()
	return corr0, corr1, corr2
}

// NewBezierBearings returns the single-piece chain that leaves p0 at bearing
// bear0 and grade slope0 and arrives at p1 at bearing bear1 and grade slope1.
// The control arms are a third of the chord, lengthened to better
// approximate a circle or spiral between the same tangents.
func NewBezierBearings(p0 Point3, bear0 Angle, slope0, slope1 float64, bear1 Angle, p1 Point3) BezierChain {
	l := p0.XY().Distance(p1.XY())
	corr0, corr1, corr2 := bezierCorrections(bear0, Dir(p0.XY(), p1.XY()), bear1)
	len0 := l / 3 * (1 + corr0/2 - corr2/24)
	len1 := l / 3 * (1 + corr1/2 - corr2/24)
	arm := func(b Angle, slope float64) Point3 {
		u := UnitVec(b)
		return Point3{X: u.X, Y: u.Y, Z: slope}
	}
	return NewBezier(
		p0,
		p0.Add(arm(bear0, slope0).Mul(len0)),
		p1.Sub(arm(bear1, slope1).Mul(len1)),
		p1,
	)
}

// BezierEstimate estimates how far the piece [NewBezierBearings] would build
// strays from a curve of the given length with the same ends and end
// bearings. The estimate only holds when the bearings are within 30° of the
// chord.
func BezierEstimate(p0 Point, bear0 Angle, length float64, bear1 Angle, p1 Point) float64 {
	corr0, corr1, corr2 := bezierCorrections(bear0, Dir(p0, p1), bear1)
	return ((corr0*corr0+corr1*corr1)/20 + math.Pow(corr2, 1.5)/30 + math.Sqrt(corr2)/3000) * length
}

// Points returns a copy of the chain's points.
func (b BezierChain) Points() []Point3 { return slices.Clone(b.pts) }

// Size returns the number of pieces.
func (b BezierChain) Size() int { return len(b.pts) / 3 }

// IsOpen reports whether the chain ends at a different point from where it
// starts.
func (b BezierChain) IsOpen() bool { return len(b.pts)%3 != 0 || len(b.pts) == 0 }

// Close returns the chain with its last point dropped if it equals the first.
func (b BezierChain) Close() BezierChain {
	if n := len(b.pts); n > 3 && n%3 == 1 && b.pts[0] == b.pts[n-1] {
		return BezierChain{pts: slices.Clone(b.pts[:n-1])}
	}
	return b
}

// Piece returns the four points of piece n. The last piece of a closed chain
// wraps around to the first point.
func (b BezierChain) Piece(n int) [4]Point3 {
	var ret [4]Point3
	for i := range ret {
		ret[i] = b.pts[(3*n+i)%len(b.pts)]
	}
	return ret
}

// Cubic returns the horizontal projection of piece n.
func (b BezierChain) Cubic(n int) CubicBez {
	p := b.Piece(n)
	return CubicBez{p[0].XY(), p[1].XY(), p[2].XY(), p[3].XY()}
}

// Eval returns the point at parameter t in [0, 1] of piece n.
func (b BezierChain) Eval(n int, t float64) Point3 {
	p := b.Piece(n)
	mt := 1 - t
	return p[0].Mul(mt * mt * mt).
		Add(p[1].Mul(3 * mt * mt * t)).
		Add(p[2].Mul(3 * mt * t * t)).
		Add(p[3].Mul(t * t * t))
}

// Append returns the chain continued by o. If b is open, its last point and
// o's first point are taken to be the same and are replaced by their
// average.
func (b BezierChain) Append(o BezierChain) BezierChain {
	if len(b.pts) == 0 {
		return BezierChain{pts: slices.Clone(o.pts)}
	}
	if o.Size() == 0 {
		return BezierChain{pts: slices.Clone(b.pts)}
	}
	ret := make([]Point3, len(b.pts), len(b.pts)+len(o.pts))
	copy(ret, b.pts)
	skip := len(ret) % 3
	if skip == 1 {
		ret[len(ret)-1] = ret[len(ret)-1].Midpoint(o.pts[0])
	}
	ret = append(ret, o.pts[skip:]...)
	return BezierChain{pts: ret}
}

// Cubics returns the horizontal projections of the pieces in order.
func (b BezierChain) Cubics() iter.Seq[CubicBez] {
	return func(yield func(CubicBez) bool) {
		for i := range b.Size() {
			if !yield(b.Cubic(i)) {
				return
			}
		}
	}
}

// PathElements returns the horizontal projection of the chain as a path.
func (b BezierChain) PathElements() iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		if b.Size() == 0 {
			return
		}
		if !yield(MoveTo(b.pts[0].XY())) {
			return
		}
		for c := range b.Cubics() {
			if !yield(CubicTo(c.P1, c.P2, c.P3)) {
				return
			}
		}
		if !b.IsOpen() {
			yield(ClosePath())
		}
	}
}

// LineString samples the horizontal projection of the chain at perPiece
// evenly spaced parameters per piece.
func (b BezierChain) LineString(perPiece int) geom.LineString {
	perPiece = max(perPiece, 1)
	if b.Size() == 0 {
		return nil
	}
	ls := make(geom.LineString, 0, b.Size()*perPiece+1)
	p := b.pts[0].XY()
	ls = append(ls, geom.Point{X: p.X, Y: p.Y})
	for c := range b.Cubics() {
		for i := 1; i <= perPiece; i++ {
			p := c.Eval(float64(i) / float64(perPiece))
			ls = append(ls, geom.Point{X: p.X, Y: p.Y})
		}
	}
	return ls
}

// Approximate returns a chain of cubic Béziers that follows c to within
// about precision. The curve is halved until each half's estimated error is
// small enough. Tolerances finer than the curve's positional resolution are
// raised to it.
//
// A curve whose chord is longer than its length cannot be subdivided. It
// becomes a single piece built from its end bearings, which may be far from
// the curve or NaN.
func Approximate(c Curve, precision float64) BezierChain {
	if floor := 64 * c.Epsilon(); !(precision >= floor) && !math.IsNaN(floor) {
		precision = floor
	}
	return approximate(c, precision)
}

func approximate(c Curve, precision float64) BezierChain {
	start, end := c.Start(), c.End()
	sb, eb := c.StartBearing(), c.EndBearing()
	cb := ChordBearing(c)
	l := c.Length()
	var est float64
	if l == 0 || ((sb-cb).Fold().Abs() < int64(Deg30) &&
		(eb-cb).Fold().Abs() < int64(Deg30) &&
		(sb+eb-2*cb).Fold().Abs() < int64(Deg30)) {
		est = BezierEstimate(start.XY(), sb, l, eb, end.XY())
	} else {
		est = 2*math.Abs(precision) + 1
	}
	if est <= precision || math.IsNaN(l) || math.IsInf(l, 0) {
		v := c.Profile()
		return NewBezierBearings(start, sb, v.StartSlope(), v.EndSlope(), eb, end)
	}
	prof := c.Profile()
	if ChordLength(c) > l || math.IsNaN(prof.C1) || math.IsNaN(prof.C2) {
		Logger().WithFields(logrus.Fields{
			"start":  start,
			"end":    end,
			"length": l,
		}).Warn("bogus curve: cannot approximate with Béziers")
		return NewBezierBearings(start, sb, prof.StartSlope(), prof.EndSlope(), eb, end)
	}
	a, b := c.SplitCurve(l / 2)
	return approximate(a, precision).Append(approximate(b, precision))
}
