package cogo

import (
	"iter"
)

// CubicBez is a plane cubic Bézier segment, the horizontal projection of one
// piece of a [BezierChain].
type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

// PathElements returns the segment as a path.
func (c CubicBez) PathElements() iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		_ = yield(MoveTo(c.P0)) &&
			yield(CubicTo(c.P1, c.P2, c.P3))
	}
}

// Eval evaluates the cubic at parameter t in [0, 1].
func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(c.P0).Mul(mt * mt * mt)
	b := Vec2(c.P1).Mul(mt * mt * 3.0)
	cc := Vec2(c.P2).Mul(mt * 3.0)
	d := Vec2(c.P3)
	v := a.Add(b.Add(cc.Add(d.Mul(t)).Mul(t)).Mul(t))
	return Point(v)
}
