package cogo

import (
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLog routes diagnostics to a test hook for the duration of t.
func captureLog(t *testing.T) *test.Hook {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	SetLogger(logger)
	t.Cleanup(func() { SetLogger(nil) })
	return hook
}

func TestSetDeltaCircle(t *testing.T) {
	s := NewSpiral(Pt3(1, 0, 0), Pt3(0, 1, 0))
	res := s.SetDelta(Deg90, 0)
	require.True(t, res.Converged)
	assert.Less(t, res.Iterations, maxFitIter)
	assert.InDelta(t, math.Pi/2, s.Length(), 1e-6)
	assert.InDelta(t, 1, s.CurvatureAt(0), 1e-6)
	assert.InDelta(t, 1, s.CurvatureAt(s.Length()), 1e-6)
	assert.InDelta(t, 0, s.Clothance(), 1e-6)
	nearPoint(t, Pt(math.Sqrt2/2, math.Sqrt2/2), s.StationAt(s.Length()/2).XY(), 1e-6)
	nearPoint(t, Pt(1, 0), s.StationAt(0).XY(), 1e-6)
	nearPoint(t, Pt(0, 1), s.StationAt(s.Length()).XY(), 1e-6)
}

func TestSetDeltaStraight(t *testing.T) {
	s := NewSpiral(Pt3(0, 0, 0), Pt3(30, 40, 0))
	res := s.SetDelta(0, 0)
	require.True(t, res.Converged)
	assert.InDelta(t, 50, s.Length(), 1e-9)
	assert.InDelta(t, 0, s.CurvatureAt(10), 1e-12)
}

func TestSetCurvatureReproducesSpiral(t *testing.T) {
	ref := entrySpiral(t)
	s, res := NewSpiralWithCurvature(ref.Start(), 0, 0.01, ref.End())
	require.True(t, res.Converged, "iterations: %d", res.Iterations)
	assert.InDelta(t, 100, s.Length(), 1e-5)
	assert.InDelta(t, 0, s.CurvatureAt(0), 1e-8)
	assert.InDelta(t, 0.01, s.CurvatureAt(s.Length()), 1e-8)
	assert.InDelta(t, 1e-4, s.Clothance(), 1e-9)
	for _, x := range []float64{0, 25, 50, 75, 100} {
		nearPoint(t, ref.StationAt(x).XY(), s.StationAt(x).XY(), 1e-5)
	}
	angleNear(t, ref.StartBearing(), s.StartBearing(), 1000)
	angleNear(t, ref.EndBearing(), s.EndBearing(), 1000)
}

func TestSetCurvatureOnCurve(t *testing.T) {
	// Refitting a piece of a spiral finds the same clothoid.
	ref := entrySpiral(t)
	_, b := ref.Split(40)
	s := NewSpiral(b.Start(), b.End())
	res := s.SetCurvature(b.CurvatureAt(0), b.CurvatureAt(b.Length()))
	require.True(t, res.Converged)
	assert.InDelta(t, 60, s.Length(), 1e-5)
	nearPoint(t, ref.StationAt(70).XY(), s.StationAt(30).XY(), 1e-5)
}

func TestFitFailure(t *testing.T) {
	hook := captureLog(t)
	s := NewSpiral(Pt3(0, 0, 0), Pt3(math.NaN(), 1, 0))
	res := s.SetDelta(Deg45, 0)
	assert.False(t, res.Converged)
	assert.Equal(t, maxFitIter, res.Iterations)
	assert.False(t, s.Valid())
	assert.True(t, math.IsNaN(s.Length()))
	assert.True(t, s.IsTooCurly())

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Equal(t, "SetDelta did not converge", entry.Message)
	assert.Equal(t, maxFitIter, entry.Data["iterations"])

	hook.Reset()
	res = s.SetCurvature(0, 0.1)
	assert.False(t, res.Converged)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "SetCurvature did not converge", hook.LastEntry().Message)
}
