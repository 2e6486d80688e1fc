package cogo

import "math"

// dd is an unevaluated sum hi+lo of two float64 values with |lo| at most
// half an ulp of hi, giving about 106 bits of mantissa.
type dd struct {
	hi, lo float64
}

func twoSum(a, b float64) dd {
	s := a + b
	bb := s - a
	return dd{s, (a - (s - bb)) + (b - bb)}
}

func quickTwoSum(a, b float64) dd {
	s := a + b
	return dd{s, b - (s - a)}
}

func twoProd(a, b float64) dd {
	p := a * b
	return dd{p, math.FMA(a, b, -p)}
}

func ddFloat(f float64) dd { return dd{hi: f} }

func (x dd) add(y dd) dd {
	s := twoSum(x.hi, y.hi)
	if math.IsInf(s.hi, 0) || math.IsNaN(s.hi) {
		return dd{hi: s.hi}
	}
	t := twoSum(x.lo, y.lo)
	s.lo += t.hi
	s = quickTwoSum(s.hi, s.lo)
	s.lo += t.lo
	return quickTwoSum(s.hi, s.lo)
}

func (x dd) mul(y dd) dd {
	p := twoProd(x.hi, y.hi)
	if math.IsInf(p.hi, 0) || math.IsNaN(p.hi) {
		return dd{hi: p.hi}
	}
	p.lo += x.hi*y.lo + x.lo*y.hi
	return quickTwoSum(p.hi, p.lo)
}

func (x dd) mulFloat(f float64) dd {
	p := twoProd(x.hi, f)
	if math.IsInf(p.hi, 0) || math.IsNaN(p.hi) {
		return dd{hi: p.hi}
	}
	p.lo += x.lo * f
	return quickTwoSum(p.hi, p.lo)
}

func (x dd) divFloat(f float64) dd {
	q1 := x.hi / f
	if math.IsInf(q1, 0) || math.IsNaN(q1) || q1 == 0 {
		return dd{hi: q1}
	}
	p := twoProd(q1, f)
	s := twoSum(x.hi, -p.hi)
	s.lo -= p.lo
	s.lo += x.lo
	return quickTwoSum(q1, (s.hi+s.lo)/f)
}

func (x dd) neg() dd { return dd{-x.hi, -x.lo} }

func (x dd) abs() float64 { return math.Abs(x.hi) }

func (x dd) float() float64 { return x.hi + x.lo }

// pairwiseSum adds the terms by recursive halving, so that rounding error
// grows with the logarithm of the number of terms rather than linearly.
func pairwiseSum(terms []dd) dd {
	switch n := len(terms); {
	case n == 0:
		return dd{}
	case n <= 8:
		var s dd
		for _, t := range terms {
			s = s.add(t)
		}
		return s
	default:
		h := n / 2
		return pairwiseSum(terms[:h]).add(pairwiseSum(terms[h:]))
	}
}

// PairwiseSum returns the sum of xs, added pairwise.
func PairwiseSum(xs []float64) float64 {
	switch n := len(xs); {
	case n == 0:
		return 0
	case n <= 8:
		var s float64
		for _, x := range xs {
			s += x
		}
		return s
	default:
		h := n / 2
		return PairwiseSum(xs[:h]) + PairwiseSum(xs[h:])
	}
}
