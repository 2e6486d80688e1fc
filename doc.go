// Package cogo provides the curves of a horizontal alignment, as used in
// surveying and road design: straight segments, circular arcs, and clothoid
// (Euler or Cornu) transition spirals. Each curve also carries a cubic
// vertical profile, so that it describes a path in three dimensions.
//
// # Curves
//
// [Curve] is the interface shared by [Segment], [Arc], and [SpiralArc].
// Curves are parametrized by horizontal arclength, measured from their start.
// They can be evaluated for position ([Curve.StationAt]), direction
// ([Curve.BearingAt]), curvature, and elevation, and they can be split,
// lengthened, and reversed into curves of the same kind.
//
// Quantities that do not exist for a curve, such as the center of a straight
// segment, are NaN. Failures of iterative algorithms are reported the same
// way: a spiral that cannot be fitted to its end points has NaN length.
//
// # Angles
//
// Bearings and turns are [Angle] values, fixed-point integers in which one
// revolution is 2³¹. Sums and differences of angles wrap around exactly,
// which keeps bearing arithmetic free of normalization. Bearings are measured
// anticlockwise from east.
//
// # Spirals
//
// A [SpiralArc] is evaluated with the Cornu integral ([Cornu], [Cornu3]),
// computed by a power series in double-double arithmetic that falls back to
// the spiral's limit once the series would lose precision. A spiral is
// specified by its two end points and then shaped with
// [SpiralArc.SetCurvature] or [SpiralArc.SetDelta], which iterate until the
// spiral runs exactly between the end points.
//
// # Queries
//
// [Nearest] finds the point of a curve closest to a given point, [DirBound]
// the extreme of a curve in a direction, and [Intersections] the crossings
// of two curves.
//
// # Export
//
// [Approximate] converts any curve into a [BezierChain] of cubic Béziers to
// within a tolerance. Chains can be drawn as SVG paths ([WriteSVG]) or
// sampled into polylines for GIS use ([CurveLineString], [CurveGeoJSON]).
// [ExportOptions] configures both and can be loaded from TOML.
//
// # Diagnostics
//
// The package is silent by default. [SetLogger] installs a logrus logger that
// receives warnings about inputs the algorithms could not handle well.
//
// # Literature
//
//   - [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality] by Oliveira and Takahashi
//   - [Euler spiral]
//   - [Pairwise summation]
//
// [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality]: https://dl.acm.org/doi/10.1145/3423597
// [Euler spiral]: https://en.wikipedia.org/wiki/Euler_spiral
// [Pairwise summation]: https://en.wikipedia.org/wiki/Pairwise_summation
package cogo
