//go:build !steroidlog_minlevel_info && !steroidlog_minlevel_warning && !steroidlog_minlevel_error

package steroidlog

// MinLevel is the build-time minimum level. Calls below it are guarded
// by a constant comparison the compiler removes entirely.
const MinLevel = LevelDebug
