package steroidlog

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// isTestMode detects if we're running under go test, so the default
// error handler can stay quiet instead of polluting test output.
func isTestMode() bool {
	for _, arg := range os.Args {
		if strings.HasPrefix(arg, "-test.") {
			return true
		}
	}
	if exe, err := os.Executable(); err == nil {
		if strings.HasSuffix(exe, ".test") || strings.Contains(filepath.Base(exe), ".test") {
			return true
		}
	}
	return false
}

// defaultErrorHandler picks the handler appropriate for the
// environment.
func defaultErrorHandler() ErrorHandler {
	if isTestMode() {
		return SilentErrorHandler
	}
	return StderrErrorHandler
}

// envInt reads a positive integer from the environment, falling back
// to def when unset or unparseable.
func envInt(name string, def int) int {
	if value, exists := os.LookupEnv(name); exists {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// isPowerOfTwo reports whether n is a power of two (and at least 2).
func isPowerOfTwo(n int) bool {
	return n >= 2 && n&(n-1) == 0
}
