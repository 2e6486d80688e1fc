package cogo

import (
	"math"
	"slices"
)

// Area3 returns the signed area of the triangle abc, positive when the
// vertices run anticlockwise.
//
// The points are first translated so that the median coordinates sit at the
// origin, and the six partial products are added from smallest to largest
// magnitude. This keeps the result accurate for small triangles far from the
// origin.
func Area3(a, b, c Point) float64 {
	m := Point{
		X: median3(a.X, b.X, c.X),
		Y: median3(a.Y, b.Y, c.Y),
	}
	va, vb, vc := a.Sub(m), b.Sub(m), c.Sub(m)
	areas := [6]float64{
		va.X * vb.Y,
		-vb.X * va.Y,
		vb.X * vc.Y,
		-vc.X * vb.Y,
		vc.X * va.Y,
		-va.X * vc.Y,
	}
	s := areas[:]
	slices.SortFunc(s, func(x, y float64) int {
		ax, ay := math.Abs(x), math.Abs(y)
		switch {
		case ax < ay:
			return -1
		case ax > ay:
			return 1
		default:
			return 0
		}
	})
	var sum float64
	for _, v := range s {
		sum += v
	}
	return sum / 2
}

func median3(a, b, c float64) float64 {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b = c
	}
	return max(a, b)
}

// LineIntersection returns the point where the line through a and c crosses
// the line through b and d. If the lines are parallel, the result has
// infinite or NaN coordinates.
func LineIntersection(a, c, b, d Point) Point {
	A := Area3(b, c, d)
	B := Area3(c, d, a)
	C := Area3(d, a, b)
	D := Area3(a, b, c)
	den := (A + C) + (B + D)
	return Point{
		X: ((a.X*A + c.X*C) + (b.X*B + d.X*D)) / den,
		Y: ((a.Y*A + c.Y*C) + (b.Y*B + d.Y*D)) / den,
	}
}

// BearingIntersection returns the point where the line through a at bearing
// aBear crosses the line through b at bearing bBear. Parallel lines yield a
// NaN point.
func BearingIntersection(a Point, aBear Angle, b Point, bBear Angle) Point {
	length := a.Distance(b)
	if length == 0 {
		length = Vec2(a).Hypot()
	}
	if length == 0 {
		length = 1
	}
	if (bBear-aBear)&(Deg180-1) == 0 {
		return nanPoint
	}
	return LineIntersection(
		a, a.Translate(UnitVec(aBear).Mul(length)),
		b, b.Translate(UnitVec(bBear).Mul(length)),
	)
}

// DistanceInDirection returns how far b is from a, measured along bearing
// dir.
func DistanceInDirection(a, b Point, dir Angle) float64 {
	return b.Sub(a).Dot(UnitVec(dir))
}
