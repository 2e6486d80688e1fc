package cogo

import (
	"math"
	"slices"

	"github.com/google/btree"
	"gonum.org/v1/gonum/floats"
)

const (
	// tolerMult is how much the angular tolerance of a search grows on each
	// pass that fails to improve the best sample.
	tolerMult = 33
	// maxSeeds bounds the number of initial samples of a search.
	maxSeeds = 1 << 16
)

// sample is a searched arclength and the value of the objective there.
type sample struct {
	along float64
	value float64
}

func sampleLess(a, b sample) bool { return a.along < b.along }

// objective describes a one-dimensional minimization along a curve.
type objective struct {
	// value is minimized.
	value func(sta Point) float64
	// angErr is the angular distance from a stationary point of value, as an
	// offset from a right angle in Angle units.
	angErr func(along float64, sta Point) Angle
	// dropMonotonic discards samples between neighbours whose values rise
	// or fall on both sides.
	dropMonotonic bool
	// pastStart and pastEnd report whether the minimum lies beyond the
	// respective end when it is the best sample.
	pastStart, pastEnd func() bool
}

// minquad returns the abscissa of the vertex of the parabola through three
// points whose abscissas are increasing.
func minquad(x0, y0, x1, y1, x2, y2 float64) float64 {
	s1 := (y0 - y1) / (x0 - x1)
	s2 := (y1 - y2) / (x1 - x2)
	xm := (x0 + 2*x1 + x2) / 4
	return xm + (x2-x0)*(s1+s2)/(s1-s2)/4
}

// minimize searches c for the arclength minimizing obj. The search starts
// from evenly spaced samples and then repeatedly adds the vertices of
// parabolas through adjacent samples. It stops once the best sample is
// within an angular tolerance of a stationary point, where the tolerance is
// reset after every improvement and multiplied by tolerMult otherwise, or
// once no sample can beat bound.
func minimize(c Curve, obj objective, bound float64, farInit float64) (closest, closeVal float64) {
	l := c.Length()
	n := 2
	if seeds := math.Round(maxAbsCurvature(c) * l); seeds >= 0 && seeds < maxSeeds {
		n += int(seeds)
	} else if seeds >= maxSeeds {
		n = maxSeeds
	}
	tree := btree.NewG[sample](16, sampleLess)
	inserenda := floats.Span(make([]float64, n+1), 0, l)
	var delenda []float64
	closest, closeVal = math.NaN(), math.Inf(1)
	farVal := farInit
	var angErr Angle
	var angToler int64 = 1
	for {
		lastCloseVal := closeVal
		for _, a := range delenda {
			tree.Delete(sample{along: a})
		}
		for _, a := range inserenda {
			sta := c.StationAt(a).XY()
			v := obj.value(sta)
			if v < closeVal {
				closest, closeVal = a, v
				angErr = obj.angErr(a, sta)
			}
			if v > farVal {
				farVal = v
			}
			tree.ReplaceOrInsert(sample{along: a, value: v})
		}
		inserenda, delenda = inserenda[:0], delenda[:0]
		var k0, k1 sample
		i := 0
		tree.Ascend(func(k2 sample) bool {
			if i >= 2 {
				vertex := minquad(k0.along, k0.value, k1.along, k1.value, k2.along, k2.value)
				if vertex < 0 && vertex > -l/2 {
					vertex = -vertex
				}
				if vertex > l && vertex < 3*l/2 {
					vertex = 2*l - vertex
				}
				has := !math.IsNaN(vertex) && tree.Has(sample{along: vertex})
				if (has && vertex != k1.along) ||
					(obj.dropMonotonic && (k1.value-k0.value)*(k2.value-k1.value) > 0) {
					delenda = append(delenda, k1.along)
				}
				if !has && vertex >= 0 && vertex <= l {
					inserenda = append(inserenda, vertex)
				}
			}
			k0, k1 = k1, k2
			i++
			return true
		})
		slices.Sort(inserenda)
		inserenda = slices.Compact(inserenda)
		slices.Sort(delenda)
		delenda = slices.Compact(delenda)
		if lastCloseVal > closeVal {
			angToler = 1
		} else {
			angToler *= tolerMult
		}
		if !(int64(angErr) >= angToler || -int64(angErr) >= angToler) {
			break
		}
		if closeVal-(farVal-closeVal)/7 >= bound {
			break
		}
		if (closest == 0 && obj.pastStart()) || (closest == l && obj.pastEnd()) {
			break
		}
	}
	return closest, closeVal
}

// Nearest returns the arclength of the point on c nearest to pt.
//
// closeSoFar is the distance of the best candidate already known, for
// instance on another curve. The search stops early once it is clear that c
// cannot come closer than that, and the arclength returned is then only a
// rough one. Pass +Inf to always get an accurate result.
//
// If the nearest point is an end and pt lies beyond it, Nearest returns the
// end's arclength when offEnds is true, and -Inf (beyond the start) or +Inf
// (beyond the end) otherwise. It returns NaN if c's length is not finite.
func Nearest(c Curve, pt Point, closeSoFar float64, offEnds bool) float64 {
	l := c.Length()
	if math.IsNaN(l) || math.IsInf(l, 0) {
		return math.NaN()
	}
	start, end := c.Start().XY(), c.End().XY()
	sb, eb := c.StartBearing(), c.EndBearing()
	obj := objective{
		value: pt.DistanceSquared,
		angErr: func(along float64, sta Point) Angle {
			return ((c.BearingAt(along) - Dir(pt, sta)) & (Deg180 - 1)) - Deg90
		},
		dropMonotonic: true,
		pastStart:     func() bool { return (Dir(pt, start) - sb).InSector(0xf00ff00f) },
		pastEnd:       func() bool { return (Dir(pt, end) - eb).InSector(0x0ff00ff0) },
	}
	closest, closeDist := minimize(c, obj, closeSoFar*closeSoFar, 0)
	if closeDist == 0 || offEnds {
		return closest
	}
	endAngle := Deg90
	switch closest {
	case 0:
		endAngle = (Dir(pt, start) - sb).Fold()
	case l:
		endAngle = (Dir(end, pt) - eb).Fold()
	}
	if endAngle > -Deg90 && endAngle < Deg90 {
		if closest == 0 {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}
	return closest
}

// NearestAmong returns the index of the curve nearest to pt and the
// arclength of the nearest point on it, or -1 and NaN if no curve has a
// finite length. Ends are included.
func NearestAmong(curves []Curve, pt Point) (int, float64) {
	best, bestAlong := -1, math.NaN()
	bestDist := math.Inf(1)
	for i, c := range curves {
		a := Nearest(c, pt, bestDist, true)
		if math.IsNaN(a) {
			continue
		}
		if d := c.StationAt(a).XY().Distance(pt); d < bestDist || best < 0 {
			best, bestAlong, bestDist = i, a, d
		}
	}
	return best, bestAlong
}

// DirBound returns the smallest value the projection x·cos(angle) +
// y·sin(angle) takes on c: with angle 0 it is the least easting, with angle
// 90° the least northing. Minima not below boundSoFar may be skipped; pass
// +Inf when no bound is known. It returns NaN if c's length is not finite.
func DirBound(c Curve, angle Angle, boundSoFar float64) float64 {
	l := c.Length()
	if math.IsNaN(l) || math.IsInf(l, 0) {
		return math.NaN()
	}
	u := UnitVec(angle)
	sb, eb := c.StartBearing(), c.EndBearing()
	obj := objective{
		value: func(sta Point) float64 { return Vec2(sta).Dot(u) },
		angErr: func(along float64, _ Point) Angle {
			return ((c.BearingAt(along) - angle) & (Deg180 - 1)) - Deg90
		},
		pastStart: func() bool { return (angle - sb).InSector(0xf00ff00f) },
		pastEnd:   func() bool { return (angle - eb).InSector(0x0ff00ff0) },
	}
	_, v := minimize(c, obj, boundSoFar, math.Inf(-1))
	return v
}
