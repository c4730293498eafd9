// Package logging provides leveled operational logging for the lambda tools.
//
// Output goes through a process-wide slog.Logger, by default one backed by
// github.com/jcgregorio/logger writing to stderr. User-facing diagnostics do
// not go through here; see package diag.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/jcgregorio/logger"
	"github.com/jcgregorio/slog"
)

var (
	mu      sync.RWMutex
	current slog.Logger = New(os.Stderr, false)
)

// SyncWriter is the destination of a Logger. *os.File satisfies it.
type SyncWriter = logger.SyncWriter

// New returns a logger writing to dst. Debug messages are dropped unless
// verbose is set.
func New(dst SyncWriter, verbose bool) slog.Logger {
	return logger.NewFromOptions(&logger.Options{
		SyncWriter:   dst,
		DepthDelta:   2,
		IncludeDebug: verbose,
	})
}

// Nop returns a logger that discards everything.
func Nop() slog.Logger {
	return logger.NewNopLogger()
}

// SetLogger replaces the process-wide logger and returns the previous one.
func SetLogger(l slog.Logger) slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	prev := current
	current = l
	return prev
}

// Init installs a logger writing to dst at the requested verbosity.
func Init(dst io.Writer, verbose bool) {
	SetLogger(New(ToWriter(dst), verbose))
}

func get() slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Debugf logs at debug level; it is dropped unless the logger is verbose.
func Debugf(format string, v ...interface{}) {
	get().Debugf(format, v...)
}

// Infof logs at info level.
func Infof(format string, v ...interface{}) {
	get().Infof(format, v...)
}

// Warningf logs at warning level.
func Warningf(format string, v ...interface{}) {
	get().Warningf(format, v...)
}

// Errorf logs at error level.
func Errorf(format string, v ...interface{}) {
	get().Errorf(format, v...)
}

// bufferWriter adapts a plain io.Writer to SyncWriter.
type bufferWriter struct {
	io.Writer
}

func (bufferWriter) Sync() error { return nil }

// ToWriter wraps w so it can be handed to New, for writers such as
// *bytes.Buffer that have no Sync method.
func ToWriter(w io.Writer) SyncWriter {
	if sw, ok := w.(SyncWriter); ok {
		return sw
	}
	return bufferWriter{w}
}
