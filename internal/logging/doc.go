// Package logging provides concrete implementations of the wsup.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: zerolog console output on stderr, optionally teed to a JSON log file
//   - NullLogger: Discards all messages (useful for testing)
//   - RecordingLogger: Keeps every entry in memory for assertions in tests
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
