// Package testing holds helpers shared by the test suites. The
// pipeline under test is asynchronous, so most of what tests need is
// "wait a bounded time for the consumer to catch up" plus a way to
// fence off the slow stress tests.
package testing

import (
	"os"
	"testing"
	"time"
)

// Stress returns true when the long-running stress tests should run.
// They are skipped under -short, and STEROIDLOG_STRESS_TESTS=false
// disables them outright.
func Stress() bool {
	if os.Getenv("STEROIDLOG_STRESS_TESTS") == "false" {
		return false
	}
	return !testing.Short()
}

// SkipIfShort skips a stress test in short mode.
func SkipIfShort(t *testing.T, message ...string) {
	if !Stress() {
		msg := "skipping stress test in short mode"
		if len(message) > 0 {
			msg = message[0]
		}
		t.Skip(msg)
	}
}

// Eventually polls cond every millisecond until it returns true or the
// timeout elapses, and reports whether it succeeded. It is the bounded
// wait the async pipeline guarantees: enqueued records become visible
// after at most one consumer pass plus formatting time.
func Eventually(timeout time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return cond()
}

// RequireEventually fails the test when cond does not hold within
// timeout.
func RequireEventually(t *testing.T, timeout time.Duration, cond func() bool, message string) {
	t.Helper()
	if !Eventually(timeout, cond) {
		t.Fatal(message)
	}
}
