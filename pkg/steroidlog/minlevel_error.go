//go:build steroidlog_minlevel_error

package steroidlog

// MinLevel is the build-time minimum level for error-only builds.
const MinLevel = LevelError
