//go:build steroidlog_minlevel_warning && !steroidlog_minlevel_error

package steroidlog

// MinLevel is the build-time minimum level for warning-and-up builds.
const MinLevel = LevelWarn
