package logging

import (
	"fmt"
	"strings"
	"sync"
)

// Level names a RecordingLogger entry severity.
type Level string

const (
	LevelVerbose Level = "verbose"
	LevelInfo    Level = "info"
	LevelWarn    Level = "warn"
	LevelError   Level = "error"
)

// Entry is one message captured by RecordingLogger.
type Entry struct {
	Level Level
	Msg   string
	KV    []any
}

// Field returns the value logged under key, if any.
func (e Entry) Field(key string) (any, bool) {
	for i := 0; i+1 < len(e.KV); i += 2 {
		if k, ok := e.KV[i].(string); ok && k == key {
			return e.KV[i+1], true
		}
	}
	return nil, false
}

func (e Entry) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Level, e.Msg)
	for i := 0; i+1 < len(e.KV); i += 2 {
		fmt.Fprintf(&b, " %v=%v", e.KV[i], e.KV[i+1])
	}
	return b.String()
}

// RecordingLogger keeps every entry in memory.
// Safe for concurrent use by multiple goroutines.
type RecordingLogger struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecordingLogger creates an empty RecordingLogger.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{}
}

func (l *RecordingLogger) record(level Level, msg string, kv []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{Level: level, Msg: msg, KV: append([]any(nil), kv...)})
}

func (l *RecordingLogger) Verbose(msg string, kv ...any) { l.record(LevelVerbose, msg, kv) }

func (l *RecordingLogger) Info(msg string, kv ...any) { l.record(LevelInfo, msg, kv) }

func (l *RecordingLogger) Warn(msg string, kv ...any) { l.record(LevelWarn, msg, kv) }

func (l *RecordingLogger) Error(msg string, kv ...any) { l.record(LevelError, msg, kv) }

// Entries returns a copy of the captured entries, optionally filtered to the
// given levels.
func (l *RecordingLogger) Entries(levels ...Level) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []Entry
	for _, e := range l.entries {
		if len(levels) == 0 || containsLevel(levels, e.Level) {
			out = append(out, e)
		}
	}
	return out
}

// Contains reports whether any entry at level has msg as a substring.
func (l *RecordingLogger) Contains(level Level, msg string) bool {
	for _, e := range l.Entries(level) {
		if strings.Contains(e.Msg, msg) {
			return true
		}
	}
	return false
}

func containsLevel(levels []Level, l Level) bool {
	for _, lv := range levels {
		if lv == l {
			return true
		}
	}
	return false
}
