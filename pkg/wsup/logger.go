package wsup

// Logger provides a pluggable logging interface for wsup operations.
// Implementations must be safe for concurrent use by multiple goroutines.
//
// Every method takes a message followed by alternating key/value pairs:
//
//	log.Verbose("Adding to item content", "file", "maps/arena.bsp")
type Logger interface {
	// Verbose logs detailed diagnostic information.
	// Only logged when verbose mode is enabled.
	Verbose(msg string, kv ...any)

	// Info logs informational messages about normal operations.
	Info(msg string, kv ...any)

	// Warn logs recoverable problems, such as an entry skipped while staging.
	Warn(msg string, kv ...any)

	// Error logs error messages.
	Error(msg string, kv ...any)
}
