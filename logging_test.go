package eventio

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

// TestDiagnosticLogger_NilSafe verifies every method on a nil *DiagnosticLogger is a
// no-op rather than a nil-pointer panic, since WithLogger(nil) is how a
// caller disables kernel diagnostics entirely.
func TestDiagnosticLogger_NilSafe(t *testing.T) {
	var l *DiagnosticLogger
	l.Warn("msg", "k", "v")
	l.Error("msg", "k", "v")
	l.ErrorErr("msg", errors.New("boom"), "k", "v")
}

// TestNewJSONLogger_WritesJSON verifies NewJSONLogger actually serializes
// log lines to the provided writer.
func TestNewJSONLogger_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewJSONLogger(&buf)
	l.Warn("wait queue full", "task", "kid")

	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("no output written")
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(line), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput: %s", err, line)
	}
	if decoded["task"] != "kid" {
		t.Errorf("decoded[\"task\"] = %v, want %q", decoded["task"], "kid")
	}
}

// TestUncaughtDiagnostics_RateLimits verifies the sliding-window limiter
// suppresses a flood of identical-category errors rather than logging every
// one.
func TestUncaughtDiagnostics_RateLimits(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf)
	d := newUncaughtDiagnostics(logger, map[time.Duration]int{time.Minute: 2})

	for i := 0; i < 10; i++ {
		d.report("flaky-task", errors.New("boom"))
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Errorf("logged %d lines, want exactly 2 (rate-limited to 2/minute)", len(lines))
	}
}

// TestUncaughtDiagnostics_NilSafe verifies a nil *uncaughtDiagnostics (as
// resolveRunOptions never actually produces, but defensively) does not
// panic on report.
func TestUncaughtDiagnostics_NilSafe(t *testing.T) {
	var d *uncaughtDiagnostics
	d.report("task", errors.New("boom"))
}

// TestUncaughtDiagnostics_DefaultWindow verifies newUncaughtDiagnostics
// falls back to a 5-per-second window when given no windows.
func TestUncaughtDiagnostics_DefaultWindow(t *testing.T) {
	var buf bytes.Buffer
	d := newUncaughtDiagnostics(NewJSONLogger(&buf), nil)
	for i := 0; i < 10; i++ {
		d.report("flaky-task", errors.New("boom"))
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Errorf("logged %d lines, want exactly 5 (default 5/second)", len(lines))
	}
}
