package synthtext

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gosynth/synthtext/fontkit"
	"github.com/gosynth/synthtext/reliability"
	"github.com/gosynth/synthtext/validate"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := newNopLogger()
	loggerPtr.Store(l)
}

// SetLogger configures the logger for synthtext and all its sub-packages.
// By default, synthtext produces no log output. Call SetLogger to enable it.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by synthtext:
//   - [slog.LevelDebug]: per-call diagnostics (selection weights, cache hits)
//   - [slog.LevelInfo]: lifecycle events (reliability state loaded/saved)
//   - [slog.LevelWarn]: non-fatal issues (corrupt state recovered, font
//     excluded after repeated failures)
//
// Example:
//
//	synthtext.SetLogger(slog.Default())
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	// Sub-packages keep their own logger pointer to avoid import cycles.
	reliability.SetLogger(l)
	validate.SetLogger(l)
	fontkit.SetLogger(l)
}

// Logger returns the current logger used by synthtext.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
