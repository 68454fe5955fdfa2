package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/wsup/pkg/wsup"
)

var (
	_ wsup.Logger = (*ConsoleLogger)(nil)
	_ wsup.Logger = (*NullLogger)(nil)
	_ wsup.Logger = (*RecordingLogger)(nil)
)

func newBufferLogger(t *testing.T, opts Options) (*ConsoleLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	opts.Out = &buf
	opts.NoColor = true
	l, err := New(opts)
	require.NoError(t, err)
	return l, &buf
}

func TestConsoleLogger_Verbose_WhenEnabled(t *testing.T) {
	l, buf := newBufferLogger(t, Options{Verbose: true})

	l.Verbose("Adding to item content", "file", "maps/arena.bsp")

	out := buf.String()
	assert.Contains(t, out, "DBG")
	assert.Contains(t, out, "Adding to item content")
	assert.Contains(t, out, "file=maps/arena.bsp")
}

func TestConsoleLogger_Verbose_WhenDisabled(t *testing.T) {
	l, buf := newBufferLogger(t, Options{})

	l.Verbose("hidden")

	assert.Empty(t, buf.String())
}

func TestConsoleLogger_Levels(t *testing.T) {
	l, buf := newBufferLogger(t, Options{})

	l.Info("info message")
	l.Warn("warn message", "path", "a.txt")
	l.Error("error message")

	out := buf.String()
	assert.Contains(t, out, "INF info message")
	assert.Contains(t, out, "WRN warn message")
	assert.Contains(t, out, "path=a.txt")
	assert.Contains(t, out, "ERR error message")
}

func TestConsoleLogger_LevelThreshold(t *testing.T) {
	l, buf := newBufferLogger(t, Options{Level: "warn"})

	l.Info("quiet")
	l.Warn("loud")

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "loud")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Options{Level: "chatty"})
	assert.Error(t, err)
}

func TestConsoleLogger_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "wsup.log")
	l, buf := newBufferLogger(t, Options{FilePath: path})

	l.Info("Staged item content", "files", 3)
	require.NoError(t, l.Close())

	assert.Contains(t, buf.String(), "Staged item content")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var line map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "Staged item content", line["message"])
	assert.EqualValues(t, 3, line["files"])
}

func TestConsoleLogger_ConcurrentAccess(t *testing.T) {
	l, buf := newBufferLogger(t, Options{})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			l.Info("message", "n", n)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, strings.Count(buf.String(), "message"))
}

func TestRecordingLogger(t *testing.T) {
	l := NewRecordingLogger()

	l.Verbose("v")
	l.Warn("Skipping entry", "path", "locked.txt")
	l.Error("e")

	warns := l.Entries(LevelWarn)
	require.Len(t, warns, 1)
	path, ok := warns[0].Field("path")
	require.True(t, ok)
	assert.Equal(t, "locked.txt", path)
	assert.Equal(t, "[warn] Skipping entry path=locked.txt", warns[0].String())

	assert.Len(t, l.Entries(), 3)
	assert.True(t, l.Contains(LevelError, "e"))
	assert.False(t, l.Contains(LevelInfo, "v"))
}
