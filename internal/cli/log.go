// Package cli implements the flowgraph command-line interface.
//
// This package provides commands for viewing a collapsible graph in an
// interactive terminal canvas, serving a read-only HTTP surface over a
// running scene, exporting the simulated layout, and generating synthetic
// graphs. The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - view: Interactive terminal canvas with pan/zoom/drag/collapse
//   - serve: Headless scene behind an HTTP API with metrics
//   - export: Render the simulated layout to DOT, SVG, or PNG
//   - gen: Generate a synthetic tree graph document
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger builds the logger every command shares: stamped with
// sub-second times ("15:04:05.00"), writing to w, filtering below level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// stopwatch starts timing and returns a func that logs msg with the
// elapsed time appended, rounded to the millisecond. Example output:
// "Converged in 287 steps (1.234s)".
func stopwatch(l *log.Logger) func(msg string) {
	start := time.Now()
	return func(msg string) {
		l.Infof("%s (%s)", msg, time.Since(start).Round(time.Millisecond))
	}
}

// loggerKey is unexported so no other package can collide with it.
type loggerKey struct{}

// withLogger attaches l to the context for loggerFromContext to find.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() when the context carries none, so callers never nil-check.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
