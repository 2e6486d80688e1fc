package cogo

import (
	"fmt"
	"math"
)

// Point3 is a surveyed position: easting, northing, and elevation.
type Point3 struct {
	X float64
	Y float64
	Z float64
}

// Pt3 returns the point (x, y, z).
func Pt3(x, y, z float64) Point3 {
	return Point3{X: x, Y: y, Z: z}
}

// XY drops the elevation.
func (pt Point3) XY() Point {
	return Point{X: pt.X, Y: pt.Y}
}

func (pt Point3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", pt.X, pt.Y, pt.Z)
}

// Add returns the componentwise sum of pt and o.
func (pt Point3) Add(o Point3) Point3 {
	return Point3{X: pt.X + o.X, Y: pt.Y + o.Y, Z: pt.Z + o.Z}
}

// Sub returns the componentwise difference of pt and o.
func (pt Point3) Sub(o Point3) Point3 {
	return Point3{X: pt.X - o.X, Y: pt.Y - o.Y, Z: pt.Z - o.Z}
}

func (pt Point3) Mul(f float64) Point3 {
	return Point3{X: pt.X * f, Y: pt.Y * f, Z: pt.Z * f}
}

// Midpoint returns the midpoint of two points.
func (pt Point3) Midpoint(o Point3) Point3 {
	return Point3{
		X: 0.5 * (pt.X + o.X),
		Y: 0.5 * (pt.Y + o.Y),
		Z: 0.5 * (pt.Z + o.Z),
	}
}

// Distance returns the three-dimensional distance between two points.
func (pt Point3) Distance(o Point3) float64 {
	d := pt.Sub(o)
	return math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
}

// IsNaN reports whether any coordinate is NaN.
func (pt Point3) IsNaN() bool {
	return math.IsNaN(pt.X) || math.IsNaN(pt.Y) || math.IsNaN(pt.Z)
}
