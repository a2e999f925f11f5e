//go:build steroidlog_minlevel_info && !steroidlog_minlevel_warning && !steroidlog_minlevel_error

package steroidlog

// MinLevel is the build-time minimum level for info-and-up builds.
const MinLevel = LevelInfo
