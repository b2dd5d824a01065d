package eventio

import (
	"io"
	"time"

	"github.com/joeycumines/go-catrate"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// DiagnosticLogger wraps a logiface.Logger for the kernel's own diagnostics
// (uncaught task errors, queue-full warnings, next_arg collisions). It is
// deliberately narrow: the kernel does not expose arbitrary structured
// logging to tasks, only its own handful of call sites.
type DiagnosticLogger struct {
	log *logiface.Logger[*stumpy.Event]
}

// newDefaultLogger returns a DiagnosticLogger writing JSON to stderr.
func newDefaultLogger() *DiagnosticLogger {
	return &DiagnosticLogger{log: stumpy.L.New(stumpy.L.WithStumpy())}
}

// NewJSONLogger builds a DiagnosticLogger writing JSON through w, for callers
// that want to capture or redirect kernel diagnostics (e.g. in tests).
func NewJSONLogger(w io.Writer) *DiagnosticLogger {
	return &DiagnosticLogger{log: stumpy.L.New(stumpy.L.WithStumpy(stumpy.WithWriter(w)))}
}

func (l *DiagnosticLogger) Warn(msg string, key, val string) {
	if l == nil || l.log == nil {
		return
	}
	l.log.Warning().Str(key, val).Log(msg)
}

func (l *DiagnosticLogger) Error(msg string, key, val string) {
	if l == nil || l.log == nil {
		return
	}
	l.log.Err().Str(key, val).Log(msg)
}

func (l *DiagnosticLogger) ErrorErr(msg string, err error, key, val string) {
	if l == nil || l.log == nil {
		return
	}
	l.log.Err().Err(err).Str(key, val).Log(msg)
}

// uncaughtDiagnostics rate-limits and logs a task's uncaught error, so that
// a task stuck in a respawn-fail loop can't flood the log.
type uncaughtDiagnostics struct {
	logger  *DiagnosticLogger
	limiter *catrate.Limiter
}

func newUncaughtDiagnostics(logger *DiagnosticLogger, windows map[time.Duration]int) *uncaughtDiagnostics {
	if len(windows) == 0 {
		windows = map[time.Duration]int{time.Second: 5}
	}
	return &uncaughtDiagnostics{
		logger:  logger,
		limiter: catrate.NewLimiter(windows),
	}
}

func (d *uncaughtDiagnostics) report(taskName string, err error) {
	if d == nil {
		return
	}
	if _, allowed := d.limiter.Allow(taskName); !allowed {
		return
	}
	d.logger.ErrorErr("uncaught error in task", err, "task", taskName)
}
