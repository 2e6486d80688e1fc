package cogo

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	// cornuMaxIter bounds the outer loop of the three-argument series. The
	// bendiest spirals used in practice need about 140 iterations.
	cornuMaxIter = 144
	// seriesCutoff is the largest term that no longer changes a sum near 0.9
	// at 64-bit mantissa precision.
	seriesCutoff = 0x1p-65
	// cornuPrecision is the coarsest acceptable granularity of the largest
	// series term. Sums that cannot reach it are replaced by the limit.
	cornuPrecision = 1e-6
	// cornuSaturated is the magnitude of the phase beyond which the series is
	// known to lose cornuPrecision; such arguments skip the series entirely.
	cornuSaturated = 64
)

// Cornu returns the integral of cis(s²) for s from 0 to t, the classical
// Cornu spiral, whose curvature at t is 2t. It is odd in t. For |t| beyond
// about 6 the result is the limit point ±√(π/8)·(1+i).
func Cornu(t float64) Vec2 {
	return cornuClothance(t, 2, nil)
}

// CornuClothance returns the integral of cis(clothance·s²/2) for s from 0 to
// t: a spiral starting straight at the origin whose curvature changes by
// clothance per unit length.
func CornuClothance(t, clothance float64) Vec2 {
	return cornuClothance(t, clothance, nil)
}

// Cornu3 returns the integral of cis(clothance·s²/2 + curvature·s) for s
// from 0 to t. With clothance 0 this is a circle of radius 1/curvature; with
// curvature 0 and clothance 2 it is [Cornu].
func Cornu3(t, curvature, clothance float64) Vec2 {
	return cornu3(t, curvature, clothance, nil)
}

// CornuStats is a histogram of how many series iterations Cornu
// evaluations took. The zero value is ready to use, and a nil *CornuStats
// records nothing, so evaluators can be handed an optional one.
//
// A CornuStats must not be shared between goroutines without
// synchronization.
type CornuStats struct {
	hist []int
}

func (s *CornuStats) record(n int) {
	if s == nil {
		return
	}
	if n >= len(s.hist) {
		s.hist = append(s.hist, make([]int, n+1-len(s.hist))...)
	}
	s.hist[n]++
}

// Cornu is like the package function [Cornu] but records its iteration count.
func (s *CornuStats) Cornu(t float64) Vec2 { return cornuClothance(t, 2, s) }

// CornuClothance is like [CornuClothance] but records its iteration count.
func (s *CornuStats) CornuClothance(t, clothance float64) Vec2 {
	return cornuClothance(t, clothance, s)
}

// Cornu3 is like [Cornu3] but records its iteration count.
func (s *CornuStats) Cornu3(t, curvature, clothance float64) Vec2 {
	return cornu3(t, curvature, clothance, s)
}

// Histogram returns the number of evaluations indexed by iteration count.
func (s *CornuStats) Histogram() []int {
	if s == nil {
		return nil
	}
	return slices.Clone(s.hist)
}

// Total returns the number of evaluations recorded.
func (s *CornuStats) Total() int {
	if s == nil {
		return 0
	}
	var n int
	for _, c := range s.hist {
		n += c
	}
	return n
}

func (s *CornuStats) String() string {
	sb := &strings.Builder{}
	sb.WriteString("Cornu statistics\n")
	for i, c := range s.Histogram() {
		if c != 0 {
			fmt.Fprintf(sb, "%d %d\n", i, c)
		}
	}
	return sb.String()
}

// granularity returns the spacing of values near x at 64-bit mantissa
// precision.
func granularity(x float64) float64 {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return math.Inf(1)
	}
	_, exp := math.Frexp(x)
	return math.Ldexp(1, exp-64)
}

// cornuLimit is the limit of CornuClothance(t, clothance) as t grows without
// bound in the direction of t's sign.
func cornuLimit(t, clothance float64) Vec2 {
	r := 0.5 * math.Sqrt(math.Pi/math.Abs(clothance))
	v := Vec2{X: r, Y: math.Copysign(r, clothance)}
	if t < 0 {
		v = v.Negate()
	}
	return v
}

func cornuClothance(t, clo float64, stats *CornuStats) Vec2 {
	switch {
	case math.IsNaN(t) || math.IsNaN(clo):
		return Vec2{X: math.NaN(), Y: math.NaN()}
	case t == 0:
		return Vec2{}
	case clo == 0:
		return Vec2{X: t}
	}
	x := clo / 2 * t * t
	if math.Abs(x) > cornuSaturated {
		logCornuLimit("cornu saturated, using limit", t, clo)
		return cornuLimit(t, clo)
	}
	// Term k is i^k · t·x^k / (k!·(2k+1)).
	var re, im []dd
	var bigpart float64
	facpower := ddFloat(t)
	k := 0
	for ; k == 0 || facpower.abs() >= seriesCutoff; k++ {
		term := facpower.divFloat(float64(2*k + 1))
		bigpart = max(bigpart, term.abs())
		switch k & 3 {
		case 0:
			re = append(re, term)
		case 1:
			im = append(im, term)
		case 2:
			re = append(re, term.neg())
		case 3:
			im = append(im, term.neg())
		}
		facpower = facpower.mulFloat(x).divFloat(float64(k + 1))
	}
	stats.record(k)
	if granularity(bigpart) > cornuPrecision {
		logCornuLimit("cornu series lost precision, using limit", t, clo)
		return cornuLimit(t, clo)
	}
	return Vec2{X: pairwiseSum(re).float(), Y: pairwiseSum(im).float()}
}

func cornu3(t, cur, clo float64, stats *CornuStats) Vec2 {
	switch {
	case math.IsNaN(t) || math.IsNaN(cur) || math.IsNaN(clo):
		return Vec2{X: math.NaN(), Y: math.NaN()}
	case t == 0:
		return Vec2{}
	}
	if math.Abs(cur*t)+math.Abs(clo*t*t/2) > cornuSaturated {
		if clo != 0 {
			logCornuFallback("cornu saturated, completing the square", t, cur, clo)
		}
		return cornuCompleted(t, cur, clo, stats)
	}
	// The integrand's exponential series, expanded binomially: term (i, j)
	// is i^i · C(i,j)·(clo/2)^j·cur^(i-j)·t^(i+j+1) / (i!·(i+j+1)).
	var cupower, clpower [cornuMaxIter + 1]dd
	cupower[0], clpower[0] = ddFloat(1), ddFloat(1)
	clotht := clo * t / 2
	re := make([]dd, 0, 64)
	im := make([]dd, 0, 64)
	var bigpart, bigterm float64
	facpower := ddFloat(t)
	i := 0
	for ; (i == 0 || bigterm >= seriesCutoff) && i < cornuMaxIter; i++ {
		bigterm = 0
		binom := ddFloat(1)
		for j := 0; j <= i; j++ {
			term := clpower[j].mul(cupower[i-j]).mul(binom).mul(facpower).divFloat(float64(i + j + 1))
			bigterm = max(bigterm, term.abs())
			switch i & 3 {
			case 0:
				re = append(re, term)
			case 1:
				im = append(im, term)
			case 2:
				re = append(re, term.neg())
			case 3:
				im = append(im, term.neg())
			}
			binom = binom.mulFloat(float64(i - j)).divFloat(float64(j + 1))
		}
		bigpart = max(bigpart, bigterm)
		cupower[i+1] = cupower[i].mulFloat(cur)
		clpower[i+1] = clpower[i].mulFloat(clotht)
		facpower = facpower.mulFloat(t).divFloat(float64(i + 1))
	}
	stats.record(i)
	precision := granularity(bigpart)
	if i >= cornuMaxIter-1 && precision <= cornuPrecision {
		Logger().WithFields(logrus.Fields{
			"t":          t,
			"curvature":  cur,
			"clothance":  clo,
			"iterations": i,
		}).Warn("cornu needs more iterations")
	}
	if precision > cornuPrecision {
		logCornuFallback("cornu series lost precision, completing the square", t, cur, clo)
		return cornuCompleted(t, cur, clo, stats)
	}
	return Vec2{X: pairwiseSum(re).float(), Y: pairwiseSum(im).float()}
}

func cornuFields(t, cur, clo float64) logrus.Fields {
	return logrus.Fields{
		"t":         t,
		"curvature": cur,
		"clothance": clo,
	}
}

// logCornuLimit reports a single-argument evaluation replaced by its limit.
// This is routine far out on a spiral.
func logCornuLimit(msg string, t, clo float64) {
	Logger().WithFields(cornuFields(t, 0, clo)).Debug(msg)
}

// logCornuFallback reports a three-argument evaluation that had to give up
// on the series.
func logCornuFallback(msg string, t, cur, clo float64) {
	Logger().WithFields(cornuFields(t, cur, clo)).Warn(msg)
}

// cornuCompleted evaluates the three-argument integral by completing the
// square, reducing it to two evaluations of [Cornu], which saturate to
// their limits for large arguments.
func cornuCompleted(t, cur, clo float64, stats *CornuStats) Vec2 {
	if clo < 0 {
		return cornuCompleted(t, -cur, -clo, stats).Conj()
	}
	if clo == 0 {
		if cur == 0 {
			return Vec2{X: t}
		}
		s, c := math.Sincos(cur * t)
		return Vec2{X: s / cur, Y: (1 - c) / cur}
	}
	k := math.Sqrt(clo / 2)
	shift := cur / clo
	d := cornuClothance((t+shift)*k, 2, stats).Sub(cornuClothance(shift*k, 2, stats)).Div(k)
	return cis(-cur * cur / (2 * clo)).CMul(d)
}
