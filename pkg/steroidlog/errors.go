package steroidlog

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/wayneeseguin/steroidlog/internal/registry"
)

// ErrInvalidConfig is wrapped around every configuration rejection.
var ErrInvalidConfig = errors.New("steroidlog: invalid configuration")

// ErrRegistryFull and ErrHashCollision surface the two fatal
// registration failures. Both are configuration bugs: the registry is
// sized for the program's call-site count, and identifier collisions
// mean two literals cannot share a process.
var (
	ErrRegistryFull  = registry.ErrFull
	ErrHashCollision = registry.ErrCollision
)

// LogError describes a failure inside the logging pipeline. These
// never reach the calling goroutine; they go to the configured
// ErrorHandler.
type LogError struct {
	Op   string // the operation that failed ("write", "flush", "close")
	Sink string // which sink, when known
	Msg  string // human readable context
	Err  error  // underlying error
}

// Error implements the error interface.
func (e LogError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

// Unwrap returns the underlying error.
func (e LogError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives pipeline failures.
type ErrorHandler func(LogError)

// SilentErrorHandler discards all errors (used in tests).
var SilentErrorHandler ErrorHandler = func(LogError) {}

// StderrErrorHandler writes errors to stderr.
var StderrErrorHandler ErrorHandler = func(e LogError) {
	fmt.Fprintf(os.Stderr, "steroidlog error: %v\n", e)
}
