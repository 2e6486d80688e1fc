package cogo

import (
	"math"
	"slices"
)

// VCurve is the vertical profile of a curve: elevation as a cubic Bézier
// function of the fraction of horizontal arclength travelled. Z0 and Z1 are
// the end elevations, C1 and C2 the two control elevations.
//
// Control values at one third and two thirds of the way from Z0 to Z1 give
// a constant grade.
type VCurve struct {
	Z0, C1, C2, Z1 float64
	// Length is the horizontal arclength the profile is stretched over.
	Length float64
}

// NewGrade returns a constant-grade profile between two elevations.
func NewGrade(z0, z1, length float64) VCurve {
	return VCurve{
		Z0:     z0,
		C1:     (2*z0 + z1) / 3,
		C2:     (z0 + 2*z1) / 3,
		Z1:     z1,
		Length: length,
	}
}

func vcurve(a, b, c, d, p float64) float64 {
	q := 1 - p
	return q*q*q*a + 3*q*q*p*b + 3*q*p*p*c + p*p*p*d
}

func vslope(a, b, c, d, p float64) float64 {
	q := 1 - p
	return 3 * ((b-a)*q*q + 2*(c-b)*p*q + (d-c)*p*p)
}

func vaccel(a, b, c, d, p float64) float64 {
	return 6 * ((c-2*b+a)*(1-p) + (d-2*c+b)*p)
}

// Elevation returns the elevation at arclength along.
func (v VCurve) Elevation(along float64) float64 {
	return vcurve(v.Z0, v.C1, v.C2, v.Z1, along/v.Length)
}

// Slope returns the grade (rise over run) at arclength along.
func (v VCurve) Slope(along float64) float64 {
	return vslope(v.Z0, v.C1, v.C2, v.Z1, along/v.Length) / v.Length
}

// Accel returns the rate of change of grade at arclength along.
func (v VCurve) Accel(along float64) float64 {
	return vaccel(v.Z0, v.C1, v.C2, v.Z1, along/v.Length) / (v.Length * v.Length)
}

func (v VCurve) StartSlope() float64 { return (v.C1 - v.Z0) * 3 / v.Length }
func (v VCurve) EndSlope() float64   { return (v.Z1 - v.C2) * 3 / v.Length }

// Jerk returns the average rate of change of grade, which is constant for a
// parabolic profile.
func (v VCurve) Jerk() float64 {
	return (v.EndSlope() - v.StartSlope()) / v.Length
}

// WithSlope returns the profile with its grade at one end set to s, keeping
// the other control value.
func (v VCurve) WithSlope(which End, s float64) VCurve {
	switch which {
	case AtStart:
		v.C1 = v.Z0 + s*v.Length/3
	case AtEnd:
		v.C2 = v.Z1 - s*v.Length/3
	}
	return v
}

// Split divides the profile at arclength along using de Casteljau's
// algorithm.
func (v VCurve) Split(along float64) (VCurve, VCurve) {
	p := along / v.Length
	lerp := func(a, b float64) float64 { return a + (b-a)*p }
	ab := lerp(v.Z0, v.C1)
	bc := lerp(v.C1, v.C2)
	cd := lerp(v.C2, v.Z1)
	abc := lerp(ab, bc)
	bcd := lerp(bc, cd)
	m := lerp(abc, bcd)
	return VCurve{v.Z0, ab, abc, m, along},
		VCurve{m, bcd, cd, v.Z1, v.Length - along}
}

// Extrema returns the arclengths of the profile's high and low points, in
// increasing order. If withEnds is true the two ends are included.
func (v VCurve) Extrema(withEnds bool) []float64 {
	a, b, c, d := v.Z0, v.C1, v.C2, v.Z1
	roots, n := SolveQuadratic(b-a, 2*(c-2*b+a), d-3*c+3*b-a)
	var ret []float64
	if withEnds {
		ret = append(ret, 0, 1)
	}
	for _, p := range roots[:n] {
		if p > 0 && p < 1 {
			ret = append(ret, p)
		}
	}
	for i := range ret {
		ret[i] *= v.Length
	}
	slices.Sort(ret)
	return slices.Compact(ret)
}

// Crossing returns the arclength at which the profile reaches elevation e,
// or NaN if the end elevations do not bracket e.
func (v VCurve) Crossing(e float64) float64 {
	y0 := v.Z0 - e
	y1 := v.Z1 - e
	switch {
	case y0 == 0:
		return 0
	case y1 == 0:
		return v.Length
	case math.Signbit(y0) == math.Signbit(y1) || math.IsNaN(y0) || math.IsNaN(y1):
		return math.NaN()
	}
	sign := 1.0
	if y0 > 0 {
		sign = -1
	}
	f := func(along float64) float64 {
		return sign * (v.Elevation(along) - e)
	}
	eps := max(v.Length*1e-12, 1e-15)
	return SolveITP(f, 0, v.Length, eps, 1, 0.2/v.Length, sign*y0, sign*y1)
}
