package cogo

import (
	"math"
	"sort"
	"testing"
)

func checkRoots(t *testing.T, roots, expected []float64) {
	t.Helper()
	if len(roots) != len(expected) {
		t.Fatalf("got %d roots, expected %d", len(roots), len(expected))
	}
	const epsilon = 1e-12
	sort.Float64s(roots)
	sort.Float64s(expected)
	for i := range roots {
		if math.Abs(roots[i]-expected[i]) > epsilon {
			t.Errorf("root %d is %v but we expected %v", i, roots[i], expected[i])
		}
	}
}

func TestSolveQuadratic(t *testing.T) {
	slice := func(roots [2]float64, n int) []float64 {
		return roots[:n]
	}
	checkRoots(t, slice(SolveQuadratic(-5.0, 0.0, 1.0)), []float64{-math.Sqrt(5), math.Sqrt(5)})
	checkRoots(t, slice(SolveQuadratic(5.0, 0.0, 1.0)), []float64{})
	checkRoots(t, slice(SolveQuadratic(5.0, 1.0, 0.0)), []float64{-5.0})
	checkRoots(t, slice(SolveQuadratic(1.0, 2.0, 1.0)), []float64{-1.0})
	checkRoots(t, slice(SolveQuadratic(0.0, 0.0, 0.0)), []float64{0.0})
}

func TestSolveITP(t *testing.T) {
	f := func(x float64) float64 { return x*x*x - x - 2.0 }
	x := SolveITP(f, 1.0, 2.0, 1e-12, 0, 0.2, f(1.0), f(2.0))
	if n := math.Abs(f(x)); n > 6e-12 {
		t.Errorf("%v > 6e-12", n)
	}
}

func testCurves(t *testing.T) map[string]Curve {
	t.Helper()
	sp, err := NewSpiralFromStart(Pt3(10, 20, 5), DegToAngle(30), 0, 0.01, 100, 8)
	if err != nil {
		t.Fatal(err)
	}
	return map[string]Curve{
		"segment": NewSegment(Pt3(0, 0, 0), Pt3(30, 40, 10)),
		"arc":     NewArc(Pt3(100, 0, 2), Pt3(0, 100, 4), Deg90),
		"cw arc":  NewArc(Pt3(0, 0, 0), Pt3(50, 0, -5), -DegToAngle(60)),
		"spiral":  sp,
	}
}

func TestCurveEnds(t *testing.T) {
	for name, c := range testCurves(t) {
		t.Run(name, func(t *testing.T) {
			l := c.Length()
			nearPoint(t, c.Start().XY(), c.StationAt(0).XY(), 1e-6)
			nearPoint(t, c.End().XY(), c.StationAt(l).XY(), 1e-6)
			diff(t, c.Start().Z, c.ElevationAt(0), within(1e-9))
			diff(t, c.End().Z, c.ElevationAt(l), within(1e-9))
			angleNear(t, c.StartBearing(), c.BearingAt(0), 2)
			angleNear(t, c.EndBearing(), c.BearingAt(l), 2)
			if l < ChordLength(c) {
				t.Errorf("length %v shorter than chord %v", l, ChordLength(c))
			}
		})
	}
}

func TestCurveSplit(t *testing.T) {
	for name, c := range testCurves(t) {
		t.Run(name, func(t *testing.T) {
			l := c.Length()
			a, b := c.SplitCurve(l / 3)
			diff(t, l, a.Length()+b.Length(), within(1e-7*l))
			nearPoint(t, c.StationAt(l/3).XY(), a.End().XY(), 1e-9*l)
			diff(t, a.End(), b.Start())
			for _, x := range []float64{0.1, 0.5, 0.9} {
				nearPoint(t, c.StationAt(x*l/3).XY(), a.StationAt(x*l/3).XY(), 1e-6)
				nearPoint(t, c.StationAt(l/3+x*2*l/3).XY(), b.StationAt(x*2*l/3).XY(), 1e-6)
				diff(t, c.ElevationAt(l/3+x*2*l/3), b.ElevationAt(x*2*l/3), within(1e-9))
			}
			diff(t, c.CurvatureAt(l/3), b.CurvatureAt(0), within(1e-9))
		})
	}
}

func TestCurveReverse(t *testing.T) {
	for name, c := range testCurves(t) {
		t.Run(name, func(t *testing.T) {
			l := c.Length()
			r := c.ReverseCurve()
			diff(t, l, r.Length(), within(1e-9*l))
			diff(t, c.Start(), r.End())
			diff(t, c.End(), r.Start())
			for _, x := range []float64{0.2, 0.5, 0.7} {
				nearPoint(t, c.StationAt(l-x*l).XY(), r.StationAt(x*l).XY(), 1e-6)
				diff(t, c.ElevationAt(l-x*l), r.ElevationAt(x*l), within(1e-9))
				diff(t, -c.CurvatureAt(l-x*l), r.CurvatureAt(x*l), within(1e-9))
			}
			angleNear(t, c.EndBearing()+Deg180, r.StartBearing(), 4)
			diff(t, -c.DifferentialArea(), r.DifferentialArea(), within(1e-6))
		})
	}
}

func TestCurveLengthen(t *testing.T) {
	for name, c := range testCurves(t) {
		t.Run(name, func(t *testing.T) {
			l := c.Length()
			e := c.LengthenCurve(AtEnd, 1.2*l)
			diff(t, 1.2*l, e.Length(), within(1e-6*l))
			diff(t, c.Start(), e.Start())
			nearPoint(t, c.End().XY(), e.StationAt(l).XY(), 1e-6)
			nearPoint(t, c.StationAt(1.2*l).XY(), e.End().XY(), 1e-9*l)

			s := c.LengthenCurve(AtStart, -0.2*l)
			diff(t, 1.2*l, s.Length(), within(1e-6*l))
			diff(t, c.End(), s.End())
			nearPoint(t, c.Start().XY(), s.StationAt(0.2*l).XY(), 1e-6)
			diff(t, c.CurvatureAt(0.5*l), s.CurvatureAt(0.7*l), within(1e-9))
		})
	}
}

func TestContourCrossing(t *testing.T) {
	c := NewSegment(Pt3(0, 0, 100), Pt3(0, 50, 110))
	diff(t, 25.0, ContourCrossing(c, 105), within(1e-9))
	if x := ContourCrossing(c, 120); !math.IsNaN(x) {
		t.Errorf("got crossing %v for an elevation out of range, want NaN", x)
	}
	diff(t, []float64{0, 50}, VerticalExtrema(c, true))
	diff(t, 0, len(VerticalExtrema(c, false)))
}

func TestStationOf(t *testing.T) {
	a := NewArc(Pt3(1, 0, 0), Pt3(0, 1, 0), Deg90)
	st := StationOf(a, math.Pi/4)
	diff(t, math.Pi/4, st.Along)
	nearPoint(t, Pt(math.Sqrt2/2, math.Sqrt2/2), st.Point, 1e-12)
	angleNear(t, DegToAngle(135), st.Bearing, 2)
	diff(t, 1.0, st.Curvature, within(1e-12))
}
