package cogo

import (
	"io"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

type loggerBox struct {
	l logrus.FieldLogger
}

var loggerPtr atomic.Pointer[loggerBox]

func init() {
	loggerPtr.Store(&loggerBox{newNopLogger()})
}

func newNopLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// SetLogger configures the logger used for diagnostics. By default nothing
// is logged. Pass nil to restore the silent default.
//
// Levels used:
//   - Debug: spiral fits that ran out of iterations
//   - Warn: Cornu series that needed more iterations than allowed, and
//     curves too inconsistent to approximate with Béziers
//
// SetLogger is safe for concurrent use.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(&loggerBox{l})
}

// Logger returns the current diagnostics logger.
func Logger() logrus.FieldLogger {
	return loggerPtr.Load().l
}
