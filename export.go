package cogo

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"
)

// ExportOptions controls how curves are rendered for export.
type ExportOptions struct {
	// Tolerance is the precision of the Bézier approximation.
	Tolerance float64 `toml:"tolerance"`
	// MaxPrecision is the number of decimals written for SVG coordinates;
	// 0 writes as many as needed.
	MaxPrecision int `toml:"max_precision"`
	// FlipY negates northings, so that SVG's downward y axis shows north up.
	FlipY bool `toml:"flip_y"`
	// Segments is the number of polyline points sampled per Bézier piece.
	Segments int `toml:"segments"`
	// Simplify, if positive, is the tolerance for simplifying polylines.
	Simplify float64 `toml:"simplify"`
	// StrokeWidth is the width of SVG paths.
	StrokeWidth float64 `toml:"stroke_width"`
}

// DefaultExportOptions returns the options used when none are configured.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Tolerance:   0.01,
		Segments:    8,
		StrokeWidth: 1,
	}
}

// Validate reports the first option that is out of range.
func (o ExportOptions) Validate() error {
	switch {
	case !(o.Tolerance > 0) || math.IsInf(o.Tolerance, 0):
		return fmt.Errorf("cogo: tolerance %v: %w", o.Tolerance, ErrInvalidOption)
	case o.MaxPrecision < 0:
		return fmt.Errorf("cogo: max_precision %d: %w", o.MaxPrecision, ErrInvalidOption)
	case o.Segments < 1:
		return fmt.Errorf("cogo: segments %d: %w", o.Segments, ErrInvalidOption)
	case o.Simplify < 0 || math.IsNaN(o.Simplify):
		return fmt.Errorf("cogo: simplify %v: %w", o.Simplify, ErrInvalidOption)
	case !(o.StrokeWidth > 0):
		return fmt.Errorf("cogo: stroke_width %v: %w", o.StrokeWidth, ErrInvalidOption)
	}
	return nil
}

// LoadExportOptions reads options from TOML. Keys that are absent keep their
// defaults; unknown keys are an error.
func LoadExportOptions(r io.Reader) (ExportOptions, error) {
	opts := DefaultExportOptions()
	md, err := toml.NewDecoder(r).Decode(&opts)
	if err != nil {
		return ExportOptions{}, fmt.Errorf("cogo: decoding export options: %w", err)
	}
	if und := md.Undecoded(); len(und) > 0 {
		return ExportOptions{}, fmt.Errorf("cogo: unknown export option %q: %w", und[0].String(), ErrInvalidOption)
	}
	if err := opts.Validate(); err != nil {
		return ExportOptions{}, err
	}
	return opts, nil
}

// CurveLineString samples the Bézier approximation of c into a polyline.
func CurveLineString(c Curve, opts ExportOptions) geom.LineString {
	ls := Approximate(c, opts.Tolerance).LineString(opts.Segments)
	if opts.Simplify > 0 && len(ls) > 2 {
		if s, ok := ls.Simplify(opts.Simplify).(geom.LineString); ok {
			ls = s
		}
	}
	return ls
}

// CurveGeoJSON encodes the polyline of c as a GeoJSON LineString geometry.
func CurveGeoJSON(c Curve, opts ExportOptions) ([]byte, error) {
	b, err := geojson.Encode(CurveLineString(c, opts))
	if err != nil {
		return nil, fmt.Errorf("cogo: encoding GeoJSON: %w", err)
	}
	return b, nil
}

// WriteSVG writes an SVG document drawing each curve as a path. The view box
// is the bounding box of the curves' polylines, grown by the stroke width.
func WriteSVG(w io.Writer, curves []Curve, opts ExportOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	flip := func(p Point) Point {
		if opts.FlipY {
			p.Y = -p.Y
		}
		return p
	}
	chains := make([]BezierChain, len(curves))
	bounds := geom.NewBounds()
	for i, c := range curves {
		chains[i] = Approximate(c, opts.Tolerance)
		ls := chains[i].LineString(opts.Segments)
		for j := range ls {
			p := flip(Point{X: ls[j].X, Y: ls[j].Y})
			ls[j] = geom.Point{X: p.X, Y: p.Y}
		}
		if len(ls) > 0 {
			bounds.Extend(ls.Bounds())
		}
	}
	if bounds.Empty() {
		bounds = geom.NewBoundsPoint(geom.Point{})
	}
	format := func(n float64) string { return strconv.FormatFloat(n, 'g', -1, 64) }
	m := opts.StrokeWidth
	_, err := fmt.Fprintf(w,
		"<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"%s %s %s %s\">\n",
		format(bounds.Min.X-m), format(bounds.Min.Y-m),
		format(bounds.Max.X-bounds.Min.X+2*m), format(bounds.Max.Y-bounds.Min.Y+2*m))
	if err != nil {
		return err
	}
	svgOpts := SVGOptions{MaxPrecision: opts.MaxPrecision}
	for _, ch := range chains {
		if ch.Size() == 0 {
			continue
		}
		if _, err := io.WriteString(w, "<path fill=\"none\" stroke=\"black\" stroke-width=\""+format(m)+"\" d=\""); err != nil {
			return err
		}
		if err := WriteSVGPath(w, MapPath(ch.PathElements(), flip), svgOpts); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\"/>\n"); err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, "</svg>\n")
	return err
}
