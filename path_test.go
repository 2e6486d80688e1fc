package cogo

import (
	"iter"
	"testing"
)

func concat(seqs ...iter.Seq[PathElement]) iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		for _, seq := range seqs {
			for el := range seq {
				if !yield(el) {
					return
				}
			}
		}
	}
}

func TestSVGSingle(t *testing.T) {
	c := CubicBez{
		Pt(10.0, 10.0),
		Pt(20.0, 20.0),
		Pt(30.0, 30.0),
		Pt(40.0, 40.0),
	}
	want := "M10,10 C20,20 30,30 40,40"
	got := SVG(c.PathElements(), SVGOptions{})
	diff(t, got, want)
}

func TestSVGTwoNoMove(t *testing.T) {
	b := NewBezier(Pt3(10, 10, 0), Pt3(20, 20, 0), Pt3(30, 30, 0), Pt3(40, 40, 0)).
		Append(NewBezier(Pt3(40, 40, 0), Pt3(30, 30, 0), Pt3(20, 20, 0), Pt3(10, 10, 0)))
	want := "M10,10 C20,20 30,30 40,40 C30,30 20,20 10,10"
	got := SVG(b.PathElements(), SVGOptions{})
	diff(t, got, want)
}

func TestSVGTwoMove(t *testing.T) {
	seq := concat(
		CubicBez{
			Pt(10.0, 10.0),
			Pt(20.0, 20.0),
			Pt(30.0, 30.0),
			Pt(40.0, 40.0),
		}.PathElements(),
		CubicBez{
			Pt(50.0, 50.0),
			Pt(30.0, 30.0),
			Pt(20.0, 20.0),
			Pt(10.0, 10.0),
		}.PathElements(),
	)
	want := "M10,10 C20,20 30,30 40,40 M50,50 C30,30 20,20 10,10"
	got := SVG(seq, SVGOptions{})
	diff(t, got, want)
}

func TestSVGLinesAndClose(t *testing.T) {
	seq := func(yield func(PathElement) bool) {
		_ = yield(MoveTo(Pt(0, 0))) &&
			yield(LineTo(Pt(1, 2))) &&
			yield(LineTo(Pt(-3, 0.5))) &&
			yield(ClosePath())
	}
	diff(t, "M0,0 L1,2 L-3,0.5 Z", SVG(seq, SVGOptions{}))
}

func TestSVGMaxPrecision(t *testing.T) {
	c := CubicBez{
		Pt(0, 0),
		Pt(1.0/3, 0),
		Pt(2.0/3, -0.0001),
		Pt(10, 1.25),
	}
	diff(t, "M0,0 C0.333,0 0.667,0 10,1.25", SVG(c.PathElements(), SVGOptions{MaxPrecision: 3}))
}

func TestMapPath(t *testing.T) {
	c := CubicBez{Pt(1, 2), Pt(3, 4), Pt(5, 6), Pt(7, 8)}
	flip := func(p Point) Point { return Pt(p.X, -p.Y) }
	diff(t, "M1,-2 C3,-4 5,-6 7,-8", SVG(MapPath(c.PathElements(), flip), SVGOptions{}))
}

func TestPathElementString(t *testing.T) {
	diff(t, "CubicTo((1, 2), (3, 4), (5, 6))", CubicTo(Pt(1, 2), Pt(3, 4), Pt(5, 6)).String())
	diff(t, "ClosePath((0, 0), (0, 0), (0, 0))", ClosePath().String())
}
