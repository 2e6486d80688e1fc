package cogo

import (
	"cmp"
	"math"
	"slices"
)

const (
	// maxDivisions bounds how many pieces each curve is cut into for
	// seeding.
	maxDivisions = 4096
	// maxMirrors bounds how often a refinement may be folded back into range
	// before giving up.
	maxMirrors = 256
	// maxRefine bounds the refinement steps of one seed.
	maxRefine = 4096
	// minClosedFormTurn is the smallest arc turn for which line–circle
	// intersection is accurate.
	minClosedFormTurn Angle = 0x1000000
	// clusterAngle is the change in crossing angle, in Angle units, that
	// separates intersections found from different seeds.
	clusterAngle = 255
)

// Intersection is a point where two curves cross, as a station on each.
type Intersection struct {
	A, B Station
}

// limitAlong folds a refined arclength back into a curve of length l. With
// extend, arclengths up to half the length beyond either end are allowed.
// It returns NaN for arclengths out of reach, along with the number of
// folds made.
func limitAlong(along, l float64, extend bool) (float64, int) {
	mirrors := 0
	if along < -l/2 || along > 3*l/2 {
		along = math.NaN()
		mirrors++
	}
	if !extend && along < 0 {
		along = -along
		mirrors++
	}
	if !extend && along > l {
		along = 2*l - along
		mirrors++
	}
	return along, mirrors
}

// closest returns the indices into a and b of the nearest pair of stations.
func closest(a, b []Station) (int, int) {
	ai, bi := 0, 0
	best := math.Inf(1)
	for i := range a {
		for j := range b {
			if d := a[i].Point.Distance(b[j].Point); d < best {
				best, ai, bi = d, i, j
			}
		}
	}
	return ai, bi
}

// sortStations moves the nearest pair of stations to the front of a and b,
// and for three stations each, the next nearest pair after them. It reports
// whether anything moved.
func sortStations(a, b []Station) bool {
	moved := false
	ai, bi := closest(a, b)
	if ai > 0 {
		moved = true
		a[0], a[ai] = a[ai], a[0]
	}
	if bi > 0 {
		moved = true
		b[0], b[bi] = b[bi], b[0]
	}
	if len(a) < 3 {
		return moved
	}
	ai, bi = closest(a[1:], b[1:])
	if ai > 0 {
		moved = true
		a[1], a[1+ai] = a[1+ai], a[1]
	}
	if bi > 0 {
		moved = true
		b[1], b[1+bi] = b[1+bi], b[1]
	}
	// Equal stations would leave no secant to follow.
	if a[0].Point == a[1].Point {
		moved = true
		a[1], a[2] = a[2], a[1]
	}
	if b[0].Point == b[1].Point {
		moved = true
		b[1], b[2] = b[2], b[1]
	}
	return moved
}

// converged tracks how many consecutive steps left the two best stations
// coincident within the curves' resolution.
func converged(a, b Curve, sa, sb Station, count int) int {
	tol := (a.Length() + b.Length() + Vec2(sa.Point).Add(Vec2(sb.Point)).Hypot()) * 0x1p-52 * 4096
	if sa.Point.Distance(sb.Point) >= tol {
		return 0
	}
	count++
	if sa.Point == sb.Point {
		count++
	}
	return count
}

// secantAlong interpolates the arclength at which the secant through s0 and
// s1 reaches x.
func secantAlong(s0, s1 Station, x Point) float64 {
	di0 := x.Distance(s0.Point)
	di1 := x.Distance(s1.Point)
	d01 := s0.Point.Distance(s1.Point)
	if di1 > d01 && di1 > di0 {
		di0 = -di0
	}
	if di0 > d01 && di0 > di1 {
		di1 = -di1
	}
	return (s0.Along*di1 + s1.Along*di0) / d01
}

// intersectSecant refines an intersection from a pair of stations on each
// curve by repeatedly crossing the secants through them.
func intersectSecant(a Curve, a1, a2 float64, b Curve, b1, b2 float64, extend bool) (Intersection, bool) {
	var as, bs [3]Station
	as[0], as[1] = StationOf(a, a1), StationOf(a, a2)
	bs[0], bs[1] = StationOf(b, b1), StationOf(b, b2)
	count, mirrors := 0, 0
	for range maxRefine {
		x := LineIntersection(as[0].Point, as[1].Point, bs[0].Point, bs[1].Point)
		along, m := limitAlong(secantAlong(as[0], as[1], x), a.Length(), extend)
		mirrors += m
		as[2] = StationOf(a, along)
		along, m = limitAlong(secantAlong(bs[0], bs[1], x), b.Length(), extend)
		mirrors += m
		bs[2] = StationOf(b, along)
		moved := sortStations(as[:], bs[:])
		count = converged(a, b, as[0], bs[0], count)
		if !moved || count >= 2 || mirrors >= maxMirrors {
			break
		}
	}
	return Intersection{as[0], bs[0]}, count >= 2
}

// intersectTangent refines an intersection from one station on each curve
// by repeatedly crossing the tangents there.
func intersectTangent(a Curve, a1 float64, b Curve, b1 float64, extend bool) (Intersection, bool) {
	var as, bs [2]Station
	as[0], bs[0] = StationOf(a, a1), StationOf(b, b1)
	count, mirrors := 0, 0
	for range maxRefine {
		x := BearingIntersection(as[0].Point, as[0].Bearing, bs[0].Point, bs[0].Bearing)
		along := as[0].Along + DistanceInDirection(as[0].Point, x, as[0].Bearing)
		along, m := limitAlong(along, a.Length(), extend)
		mirrors += m
		as[1] = StationOf(a, along)
		along = bs[0].Along + DistanceInDirection(bs[0].Point, x, bs[0].Bearing)
		along, m = limitAlong(along, b.Length(), extend)
		mirrors += m
		bs[1] = StationOf(b, along)
		moved := sortStations(as[:], bs[:])
		count = converged(a, b, as[0], bs[0], count)
		if !moved || count >= 2 || mirrors >= maxMirrors {
			break
		}
	}
	return Intersection{as[0], bs[0]}, count >= 2
}

// divisions returns how many pieces a curve of length l is cut into when
// seeding intersections with a curve of length other.
func divisions(c Curve, other float64) int {
	l := c.Length()
	if math.IsNaN(l) {
		return 0
	}
	f := math.RoundToEven(maxAbsCurvature(c)*l + l/other)
	if !(f >= 0 && f <= maxDivisions-3) {
		return maxDivisions
	}
	return int(f) + 3
}

// Intersections returns the points where a and b cross, in order along a.
// With extend, both curves are treated as running on for half their length
// beyond each end.
//
// Two segments, or a segment and an arc turning far enough, are intersected
// in closed form. Otherwise both curves are cut into pieces and every pair
// of pieces seeds a secant search and a tangent search; the tangent search
// is also seeded from the points of b nearest to a's division points.
// Results from different seeds converging on the same crossing are merged
// by taking their median.
//
// Where the curves touch or osculate, the number of intersections reported
// may be wrong.
func Intersections(a, b Curve, extend bool) []Intersection {
	if ret, ok := closedFormIntersections(a, b, extend); ok {
		return ret
	}
	al, bl := a.Length(), b.Length()
	adiv, bdiv := divisions(a, bl), divisions(b, al)
	var found []Intersection
	add := func(x Intersection, ok bool) {
		if ok {
			found = append(found, x)
		}
	}
	for i := range adiv {
		for j := range bdiv {
			add(intersectSecant(
				a, float64(i)*al/float64(adiv), float64(i+1)*al/float64(adiv),
				b, float64(j)*bl/float64(bdiv), float64(j+1)*bl/float64(bdiv),
				extend))
		}
	}
	for i := 0; i <= adiv && bdiv > 0; i++ {
		a1 := float64(i) * al / float64(adiv)
		for j := 0; j <= bdiv; j++ {
			add(intersectTangent(a, a1, b, float64(j)*bl/float64(bdiv), extend))
		}
		if b1 := Nearest(b, a.StationAt(a1).XY(), math.Inf(1), true); !math.IsNaN(b1) {
			add(intersectTangent(a, a1, b, b1, extend))
		}
	}
	return mergeIntersections(a, b, found)
}

func crossing(x Intersection) Angle { return x.A.Bearing - x.B.Bearing }

// mergeIntersections sorts intersections along a and replaces each run that
// belongs to one crossing by its median.
func mergeIntersections(a, b Curve, found []Intersection) []Intersection {
	slices.SortFunc(found, func(x, y Intersection) int {
		if c := cmp.Compare(x.A.Along, y.A.Along); c != 0 {
			return c
		}
		return cmp.Compare(x.B.Along, y.B.Along)
	})
	apart := func(x, y Point) bool {
		tol := (a.Length() + b.Length() + Vec2(x).Add(Vec2(y)).Hypot()) * 0x1p-52 * 16384
		return x.Distance(y) > tol
	}
	var bounds []int
	for i := 0; i <= len(found); i++ {
		if i == 0 || i == len(found) ||
			(crossing(found[i])-crossing(found[i-1])).Abs() > clusterAngle ||
			apart(found[i].A.Point, found[i-1].A.Point) {
			bounds = append(bounds, i)
		}
	}
	var ret []Intersection
	for r := 0; r+1 < len(bounds); r++ {
		run := found[bounds[r]:bounds[r+1]]
		bsts := make([]Station, len(run))
		for i, x := range run {
			bsts[i] = x.B
		}
		slices.SortFunc(bsts, func(x, y Station) int { return cmp.Compare(x.Along, y.Along) })
		n := len(run)
		if n%2 == 1 {
			ret = append(ret, Intersection{run[n/2].A, bsts[n/2]})
			continue
		}
		asts := make([]Station, n)
		for i, x := range run {
			asts[i] = x.A
		}
		ret = append(ret, Intersection{median2(a, asts[n/2-1], asts[n/2]), median2(b, bsts[n/2-1], bsts[n/2])})
	}
	return ret
}

// median2 returns the station halfway between two, reusing one of them if
// the halfway arclength rounds to it.
func median2(c Curve, s0, s1 Station) Station {
	along := (s0.Along + s1.Along) / 2
	switch along {
	case s1.Along:
		return s1
	case s0.Along:
		return s0
	default:
		return StationOf(c, along)
	}
}

// closedFormIntersections intersects two straight segments, or a segment and
// an arc, directly. It reports false for other pairs.
func closedFormIntersections(a, b Curve, extend bool) ([]Intersection, bool) {
	switch a := a.(type) {
	case Segment:
		switch b := b.(type) {
		case Segment:
			return intersectSegments(a, b, extend), true
		case Arc:
			if b.delta.Abs() >= int64(minClosedFormTurn) {
				return intersectSegmentArc(a, b, extend, false), true
			}
		}
	case Arc:
		if s, ok := b.(Segment); ok && a.delta.Abs() >= int64(minClosedFormTurn) {
			return intersectSegmentArc(s, a, extend, true), true
		}
	}
	return nil, false
}

// inRange reports whether along lies on a curve of length l, or on its
// extension.
func inRange(along, l float64, extend bool) bool {
	if extend {
		return along >= -l/2 && along <= 3*l/2
	}
	return along >= 0 && along <= l
}

func intersectSegments(a, b Segment, extend bool) []Intersection {
	ap0, ap1 := a.P0.XY(), a.P1.XY()
	bp0, bp1 := b.P0.XY(), b.P1.XY()
	x := LineIntersection(ap0, ap1, bp0, bp1)
	if x.IsNaN() || x.IsInf() {
		return nil
	}
	aa := DistanceInDirection(ap0, x, a.StartBearing())
	ba := DistanceInDirection(bp0, x, b.StartBearing())
	if !inRange(aa, a.Length(), extend) || !inRange(ba, b.Length(), extend) {
		return nil
	}
	return []Intersection{{StationOf(a, aa), StationOf(b, ba)}}
}

// arcAlong returns the arclength on a of the point x on its circle, taken
// within half a revolution of the arc's middle.
func arcAlong(a Arc, x Point) float64 {
	c := a.Center()
	r := math.Abs(a.RadiusAt(0))
	w0, wx := a.P0.XY().Sub(c), x.Sub(c)
	phi := math.Atan2(w0.Cross(wx), w0.Dot(wx))
	if a.delta < 0 {
		phi = -phi
	}
	half := math.Abs(a.delta.Radians()) / 2
	for phi < half-math.Pi {
		phi += 2 * math.Pi
	}
	for phi >= half+math.Pi {
		phi -= 2 * math.Pi
	}
	return phi * r
}

func intersectSegmentArc(s Segment, a Arc, extend, arcFirst bool) []Intersection {
	p0 := s.P0.XY()
	u := s.P1.XY().Sub(p0).Div(s.Length())
	c := a.Center()
	r := a.RadiusAt(0)
	w := p0.Sub(c)
	roots, n := SolveQuadratic(w.Hypot2()-r*r, 2*u.Dot(w), 1)
	var ret []Intersection
	for _, sa := range roots[:n] {
		if !inRange(sa, s.Length(), extend) {
			continue
		}
		aa := arcAlong(a, s.StationAt(sa).XY())
		if !inRange(aa, a.Length(), extend) {
			continue
		}
		x := Intersection{StationOf(s, sa), StationOf(a, aa)}
		if arcFirst {
			x.A, x.B = x.B, x.A
		}
		ret = append(ret, x)
	}
	slices.SortFunc(ret, func(x, y Intersection) int { return cmp.Compare(x.A.Along, y.A.Along) })
	return ret
}
