package cogo

import (
	"fmt"
	"math"
)

// Angle is a bearing or a turn, measured in fixed point. One revolution is
// 2³¹ units, so an Angle spans two revolutions, [-360°, 360°), and sums and
// differences of angles wrap around exactly.
//
// Bearings are measured anticlockwise from the positive x axis (east), the
// same convention as [Vec2.Angle].
type Angle int32

const (
	Deg30  Angle = 0x0aaaaaab
	Deg45  Angle = 0x10000000
	Deg60  Angle = 0x15555555
	Deg90  Angle = 0x20000000
	Deg180 Angle = 0x40000000
	// Deg360 is a full revolution. It is the most negative Angle; negating it
	// yields itself.
	Deg360 Angle = math.MinInt32
)

const (
	binPerRot  = 2147483648.0
	radPerUnit = math.Pi / 1073741824.0
)

// RotToAngle converts a number of rotations to an Angle, folding it into the
// representable range.
func RotToAngle(rot float64) Angle {
	_, frac := math.Modf(rot / 2)
	f := 2 * frac
	if f >= 1 {
		f -= 2
	}
	if f < -1 {
		f += 2
	}
	return rintAngle(binPerRot * f)
}

// RadToAngle converts radians to an Angle.
func RadToAngle(rad float64) Angle {
	return RotToAngle(rad / math.Pi / 2)
}

// DegToAngle converts degrees to an Angle.
func DegToAngle(deg float64) Angle {
	return RotToAngle(deg / 360)
}

// Atan2Angle returns the bearing of v.
func Atan2Angle(v Vec2) Angle {
	return Angle(math.RoundToEven(math.Atan2(v.Y, v.X) / math.Pi * 1073741824.0))
}

// Dir returns the bearing from a to b.
func Dir(a, b Point) Angle {
	return Atan2Angle(b.Sub(a))
}

// TwiceAsin returns twice the arcsine of x.
func TwiceAsin(x float64) Angle {
	return Angle(math.RoundToEven(math.Asin(x) / math.Pi * binPerRot))
}

// UnitVec returns the unit vector pointing at bearing a.
func UnitVec(a Angle) Vec2 {
	return Vec2{X: a.Cos(), Y: a.Sin()}
}

// rintAngle rounds f to the nearest Angle, wrapping values outside the
// int32 range.
func rintAngle(f float64) Angle {
	return Angle(int32(int64(math.RoundToEven(f))))
}

// Rotations returns a as a fraction of a revolution.
func (a Angle) Rotations() float64 { return float64(a) / binPerRot }

// Radians returns a in radians.
func (a Angle) Radians() float64 { return float64(a) * radPerUnit }

// Degrees returns a in degrees.
func (a Angle) Degrees() float64 { return a.Rotations() * 360 }

func (a Angle) Sin() float64 { return math.Sin(float64(a) * radPerUnit) }
func (a Angle) Cos() float64 { return math.Cos(float64(a) * radPerUnit) }

// SinHalf returns the sine of half of a.
func (a Angle) SinHalf() float64 { return math.Sin(float64(a) * radPerUnit / 2) }

// CosHalf returns the cosine of half of a.
func (a Angle) CosHalf() float64 { return math.Cos(float64(a) * radPerUnit / 2) }

// TanHalf returns the tangent of half of a.
func (a Angle) TanHalf() float64 { return math.Tan(float64(a) * radPerUnit / 2) }

// Fold returns the angle equivalent to a in [-180°, 180°).
func (a Angle) Fold() Angle {
	if (uint32(a)>>30)%3 != 0 {
		a ^= Deg360
	}
	return a
}

// InSector reports whether a lies in one of the sectors set in mask. Bit n
// of mask stands for [n·22.5°, (n+1)·22.5°) of the range [0°, 720°), so
// masks for angles that are the same modulo 360° repeat every 16 bits.
func (a Angle) InSector(mask uint32) bool {
	return (mask>>(uint32(a)>>27))&1 != 0
}

// Abs returns the magnitude of a as an int64, so that |Deg360| is
// representable.
func (a Angle) Abs() int64 {
	if a < 0 {
		return -int64(a)
	}
	return int64(a)
}

func (a Angle) String() string {
	return fmt.Sprintf("%g°", a.Degrees())
}
