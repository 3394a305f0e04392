package ai

import "sync/atomic"

// debugLoggingEnabled gates the per-candidate trace in Best.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging turns the candidate trace on or off. main sets it from
// the configured log level.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled reports whether the candidate trace is on.
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
