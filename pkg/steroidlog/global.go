package steroidlog

import (
	"context"
	"sync"
	"sync/atomic"
)

// The process-wide logger, constructed lazily on first use. Thread
// safe, happens exactly once.
var (
	defaultOnce   sync.Once
	defaultLogger atomic.Pointer[Logger]
)

// Default returns the process-wide logger, creating it (and its
// consumer) on first call. It writes to standard output; the
// STEROIDLOG_* environment variables tune its ring capacity, message
// cap, batch size and policy, not its sink.
func Default() *Logger {
	defaultOnce.Do(func() {
		l, err := New()
		if err != nil {
			// Only reachable through a broken environment override;
			// configuration bugs are fatal by design.
			panic(err)
		}
		defaultLogger.Store(l)
	})
	return defaultLogger.Load()
}

// Debug logs at debug level on the process-wide logger.
func Debug(format string, args ...Arg) {
	if LevelDebug < MinLevel {
		return
	}
	Default().logShared(LevelDebug, format, args)
}

// Info logs at info level on the process-wide logger.
func Info(format string, args ...Arg) {
	if LevelInfo < MinLevel {
		return
	}
	Default().logShared(LevelInfo, format, args)
}

// Warn logs at warning level on the process-wide logger.
func Warn(format string, args ...Arg) {
	if LevelWarn < MinLevel {
		return
	}
	Default().logShared(LevelWarn, format, args)
}

// Error logs at error level on the process-wide logger.
func Error(format string, args ...Arg) {
	Default().logShared(LevelError, format, args)
}

// Shutdown drains and stops the process-wide logger. Idempotent; a
// no-op when the logger was never used. Call it before main returns:
// nothing else flushes the last records.
func Shutdown() {
	if l := defaultLogger.Load(); l != nil {
		_ = l.Shutdown(context.Background())
	}
}
