package cogo

import (
	"math"

	"github.com/sirupsen/logrus"
)

const (
	// maxFitIter bounds the number of refinement steps of a spiral fit.
	maxFitIter = 256
	// fitDamping is the step count at which the bearing correction would
	// vanish; the correction applied at step i is scaled by 1-i/fitDamping.
	fitDamping = 257
	// fitMidTolerance is the smallest movement of the midpoint between steps
	// that still counts as progress.
	fitMidTolerance = 1e-6
	// maxSeedTurn is the largest total turn, in radians, before the fit is
	// restarted from a straight line.
	maxSeedTurn = 6.5
)

// FitResult reports how a spiral fit ended.
type FitResult struct {
	// Converged is false if the fit ran out of iterations, in which case the
	// spiral's curvature, clothance and length are NaN.
	Converged bool
	// Iterations is the number of refinement steps taken.
	Iterations int
}

// seedStraight resets the spiral to the straight line between its ends,
// pointing backwards if reversed is set.
func (s *SpiralArc) seedStraight(reversed bool) {
	p0, p1 := s.start.XY(), s.end.XY()
	s.cur, s.clo = 0, 0
	s.len = p0.Distance(p1)
	s.midBear = Dir(p0, p1)
	if reversed {
		s.midBear += Deg180
	}
	s.mid = p0.Midpoint(p1)
}

func (s *SpiralArc) setDeltaRaw(d, sec Angle) {
	s.cur = d.Radians() / s.len
	s.clo = 4 * sec.Radians() / (s.len * s.len)
}

func (s *SpiralArc) setCurvatureRaw(c0, c1 float64) {
	s.cur = (c0 + c1) / 2
	s.clo = (c1 - c0) / s.len
}

// fixEnds moves the trial spiral so that its ends are nearer to the fixed
// end points. The chord's rotation is applied to the mid bearing scaled by
// p; the size and position are corrected fully.
func (s *SpiralArc) fixEnds(p float64) {
	p0, p1 := s.start.XY(), s.end.XY()
	kra, fam := s.StationAt(0).XY(), s.StationAt(s.len).XY()
	turn := (Dir(p0, p1) - Dir(kra, fam)).Fold()
	s.midBear += rintAngle(float64(turn) * p)
	scale := p0.Distance(p1) / kra.Distance(fam)
	s.len *= scale
	s.cur /= scale
	s.clo /= scale * scale
	kra, fam = s.StationAt(0).XY(), s.StationAt(s.len).XY()
	s.mid = s.mid.Translate(p1.Sub(fam).Add(p0.Sub(kra)).Div(2))
}

// bearingLooseness is how far apart, in Angle units, two successive mid
// bearings may be for the fit to be considered settled. Far from the origin
// the positions themselves cannot resolve a single unit.
func (s *SpiralArc) bearingLooseness() int64 {
	return int64(float64(Deg60)*Vec2(s.mid).Hypot()*0x1p-52/(2*s.len)) + 1
}

func (s *SpiralArc) settled(lastBear Angle, lastMid Point) bool {
	tol := max(fitMidTolerance, 64*s.Epsilon())
	return (s.midBear-lastBear).Abs() <= s.bearingLooseness() && s.mid.Distance(lastMid) <= tol
}

func (s *SpiralArc) giveUp(op string, iter int, fields logrus.Fields) {
	fields["iterations"] = iter
	fields["start"] = s.start.XY()
	fields["end"] = s.end.XY()
	Logger().WithFields(fields).Debugf("%s did not converge", op)
	s.cur, s.clo, s.len = math.NaN(), math.NaN(), math.NaN()
}

// SetDelta reshapes the spiral, keeping its ends, so that it turns through
// d in total and its secondary turn ([Curve.Delta2]) is sec. If the fit does
// not converge the spiral becomes invalid.
func (s *SpiralArc) SetDelta(d, sec Angle) FitResult {
	chordBear := Dir(s.start.XY(), s.end.XY())
	if !s.Valid() {
		s.seedStraight(false)
	}
	var i int
	converged := false
	for i < maxFitIter {
		rot := 2 * (chordBear - s.midBear)
		lastBear, lastMid := s.midBear, s.mid
		s.setDeltaRaw(d, sec+rot)
		s.fixEnds(1 - float64(i)/fitDamping)
		i++
		if s.settled(lastBear, lastMid) {
			converged = true
			break
		}
	}
	if !converged {
		s.giveUp("SetDelta", i, logrus.Fields{"delta": d, "delta2": sec})
	}
	return FitResult{Converged: converged, Iterations: i}
}

// SetCurvature reshapes the spiral, keeping its ends, so that its curvature
// runs from c0 at the start to c1 at the end. If the fit does not converge
// the spiral becomes invalid.
//
// When both curvatures have the same sign and are too large for the chord,
// the fit starts from a line pointing backwards, since a spiral that bulges
// away from the chord is the only candidate.
func (s *SpiralArc) SetCurvature(c0, c1 float64) FitResult {
	chord := s.start.XY().Distance(s.end.XY())
	reversed := math.Signbit(c0) == math.Signbit(c1) &&
		math.Abs(c0*chord) > 2 && math.Abs(c1*chord) > 2
	if !s.Valid() || reversed {
		s.seedStraight(reversed)
	}
	var i int
	converged := false
	for i < maxFitIter {
		if math.Abs(s.len*s.cur) > maxSeedTurn {
			s.seedStraight(reversed)
		}
		lastBear, lastMid := s.midBear, s.mid
		s.setCurvatureRaw(c0, c1)
		s.fixEnds(1 - float64(i)/fitDamping)
		i++
		if s.settled(lastBear, lastMid) {
			converged = true
			break
		}
	}
	if !converged {
		s.giveUp("SetCurvature", i, logrus.Fields{"c0": c0, "c1": c1})
	}
	return FitResult{Converged: converged, Iterations: i}
}
