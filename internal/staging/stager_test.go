package staging

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/wsup/internal/files/filesystem"
	"github.com/vvka-141/wsup/internal/logging"
	"github.com/vvka-141/wsup/pkg/wsup"
)

func TestNewStager_PanicsOnNilLogger(t *testing.T) {
	assert.Panics(t, func() { NewStager(nil, "") })
}

func TestStager_Stage(t *testing.T) {
	content := t.TempDir()
	writeTree(t, content, map[string]string{
		"a.txt":         "a",
		"sub/c.txt":     "c",
		"workshop.toml": "w",
	})
	dest := t.TempDir()
	log := logging.NewRecordingLogger()

	res, err := NewStager(log, "").Stage(Options{
		ContentRoot: content,
		Destination: dest,
		Globs:       []string{"!sub/*"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt", "workshop.toml"}, res.Files)
	assert.Equal(t, []string{"a.txt", "workshop.toml"}, listTree(t, dest))
	assert.True(t, log.Contains(logging.LevelInfo, "Staged item content"))
}

func TestStager_Stage_ContentRootErrors(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	tests := map[string]string{
		"empty":     "",
		"missing":   filepath.Join(t.TempDir(), "missing"),
		"not a dir": file,
	}

	for name, root := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewStager(logging.NewNullLogger(), "").Stage(Options{
				ContentRoot: root,
				Destination: t.TempDir(),
			})
			require.Error(t, err)
			assert.True(t, errors.Is(err, wsup.ErrContentNotFound), "got %v", err)
			assert.Equal(t, wsup.ExitContentNotFound, wsup.ExitCodeForError(err))
		})
	}
}

func TestStager_Stage_DestinationErrors(t *testing.T) {
	content := t.TempDir()
	writeTree(t, content, map[string]string{"a.txt": "a", "out/": ""})

	tests := map[string]string{
		"empty":          "",
		"missing":        filepath.Join(t.TempDir(), "missing"),
		"inside content": filepath.Join(content, "out"),
		"content itself": content,
	}

	for name, dest := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewStager(logging.NewNullLogger(), "").Stage(Options{
				ContentRoot: content,
				Destination: dest,
			})
			require.Error(t, err)
			assert.True(t, errors.Is(err, wsup.ErrStagingIO), "got %v", err)
		})
	}
}

func TestStager_Stage_SiblingDestinationAllowed(t *testing.T) {
	parent := t.TempDir()
	content := filepath.Join(parent, "item")
	dest := filepath.Join(parent, "item-staged")
	writeTree(t, parent, map[string]string{"item/a.txt": "a", "item-staged/": ""})

	_, err := NewStager(logging.NewNullLogger(), "").Stage(Options{ContentRoot: content, Destination: dest})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, listTree(t, dest))
}

func TestStager_Stage_ConfirmNonEmpty(t *testing.T) {
	content := t.TempDir()
	writeTree(t, content, map[string]string{"a.txt": "new"})

	t.Run("empty destination is not confirmed", func(t *testing.T) {
		called := false
		_, err := NewStager(logging.NewNullLogger(), "").Stage(Options{
			ContentRoot:     content,
			Destination:     t.TempDir(),
			ConfirmNonEmpty: func(string, int) error { called = true; return nil },
		})
		require.NoError(t, err)
		assert.False(t, called)
	})

	t.Run("approved overwrites and keeps other files", func(t *testing.T) {
		dest := t.TempDir()
		writeTree(t, dest, map[string]string{"a.txt": "old", "keep.txt": "k"})
		var gotEntries int
		_, err := NewStager(logging.NewNullLogger(), "").Stage(Options{
			ContentRoot: content,
			Destination: dest,
			ConfirmNonEmpty: func(_ string, entries int) error {
				gotEntries = entries
				return nil
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, gotEntries)
		assert.Equal(t, []string{"a.txt", "keep.txt"}, listTree(t, dest))
		data, err := os.ReadFile(filepath.Join(dest, "a.txt"))
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})

	t.Run("denied writes nothing", func(t *testing.T) {
		dest := t.TempDir()
		writeTree(t, dest, map[string]string{"a.txt": "old"})
		_, err := NewStager(logging.NewNullLogger(), "").Stage(Options{
			ContentRoot:     content,
			Destination:     dest,
			ConfirmNonEmpty: func(string, int) error { return wsup.ErrApprovalDenied },
		})
		assert.ErrorIs(t, err, wsup.ErrApprovalDenied)
		data, err := os.ReadFile(filepath.Join(dest, "a.txt"))
		require.NoError(t, err)
		assert.Equal(t, "old", string(data))
	})

	t.Run("invalid glob fails before confirming", func(t *testing.T) {
		dest := t.TempDir()
		writeTree(t, dest, map[string]string{"a.txt": "old"})
		called := false
		_, err := NewStager(logging.NewNullLogger(), "").Stage(Options{
			ContentRoot:     content,
			Destination:     dest,
			Globs:           []string{"[oops"},
			ConfirmNonEmpty: func(string, int) error { called = true; return nil },
		})
		assert.ErrorIs(t, err, wsup.ErrInvalidPattern)
		assert.False(t, called)
	})
}

func TestStager_Stage_IgnoreFileErrorsWriteNothing(t *testing.T) {
	content := t.TempDir()
	writeTree(t, content, map[string]string{"a.txt": "a"})
	dest := t.TempDir()

	tests := map[string]string{
		"missing":   filepath.Join(t.TempDir(), "missing.ignore"),
		"directory": t.TempDir(),
	}

	for name, ignore := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewStager(logging.NewNullLogger(), "").Stage(Options{
				ContentRoot: content,
				Destination: dest,
				IgnoreFiles: []string{ignore},
			})
			require.Error(t, err)
			assert.True(t, errors.Is(err, wsup.ErrIgnoreFile), "got %v", err)
			assert.Empty(t, listTree(t, dest))
		})
	}
}

func TestStager_Stage_InvalidGlobWritesNothing(t *testing.T) {
	content := t.TempDir()
	writeTree(t, content, map[string]string{"a.txt": "a"})
	dest := t.TempDir()

	_, err := NewStager(logging.NewNullLogger(), "").Stage(Options{
		ContentRoot: content,
		Destination: dest,
		Globs:       []string{"*.txt", "[oops"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, wsup.ErrInvalidPattern))
	assert.Empty(t, listTree(t, dest))
}

func TestStager_Stage_PartialReadTolerance(t *testing.T) {
	content := t.TempDir()
	writeTree(t, content, map[string]string{"a.txt": "a", "b.txt": "b", "c.txt": "c"})
	dest := t.TempDir()
	absContent, err := filepath.Abs(content)
	require.NoError(t, err)

	s := NewStager(logging.NewNullLogger(), "")
	s.openDir = func(path string) (filesystem.FileSystem, error) {
		fsys, err := filesystem.OpenDir(path)
		if err != nil || path != absContent {
			return fsys, err
		}
		return filesystem.NewFaulty(fsys).Fail(filesystem.OpOpen, "b.txt", fs.ErrPermission), nil
	}

	res, err := s.Stage(Options{ContentRoot: content, Destination: dest})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt", "c.txt"}, listTree(t, dest))
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "b.txt", res.Warnings[0].Path)
}

func TestStager_StageTemp(t *testing.T) {
	content := t.TempDir()
	writeTree(t, content, map[string]string{"a.txt": "a", "sub/b.txt": "b"})
	base := filepath.Join(t.TempDir(), "cache")

	dir, res, err := NewStager(logging.NewNullLogger(), base).StageTemp(Options{ContentRoot: content})
	require.NoError(t, err)

	assert.Equal(t, base, filepath.Dir(dir))
	assert.True(t, strings.HasPrefix(filepath.Base(dir), "staging-"))
	assert.Equal(t, []string{"a.txt", "sub/", "sub/b.txt"}, listTree(t, dir))
	assert.Len(t, res.Files, 2)
}

func TestStager_StageTemp_UniqueDirectories(t *testing.T) {
	content := t.TempDir()
	writeTree(t, content, map[string]string{"a.txt": "a"})
	s := NewStager(logging.NewNullLogger(), t.TempDir())

	first, _, err := s.StageTemp(Options{ContentRoot: content})
	require.NoError(t, err)
	second, _, err := s.StageTemp(Options{ContentRoot: content})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestStager_StageTemp_RemovesDirectoryOnFailure(t *testing.T) {
	content := t.TempDir()
	writeTree(t, content, map[string]string{"a.txt": "a"})
	base := t.TempDir()

	dir, _, err := NewStager(logging.NewNullLogger(), base).StageTemp(Options{
		ContentRoot: content,
		Globs:       []string{"{unclosed"},
	})
	require.Error(t, err)
	assert.Empty(t, dir)

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStager_StageTemp_RemovesPartialTreeOnCopyFailure(t *testing.T) {
	content := t.TempDir()
	writeTree(t, content, map[string]string{"a.txt": "a", "b.txt": "b"})
	base := t.TempDir()
	absContent, err := filepath.Abs(content)
	require.NoError(t, err)

	s := NewStager(logging.NewNullLogger(), base)
	s.openDir = func(path string) (filesystem.FileSystem, error) {
		fsys, err := filesystem.OpenDir(path)
		if err != nil || path == absContent {
			return fsys, err
		}
		return filesystem.NewFaulty(fsys).Fail(filesystem.OpCreate, "b.txt", fs.ErrPermission), nil
	}

	_, res, err := s.StageTemp(Options{ContentRoot: content})
	require.Error(t, err)
	assert.True(t, errors.Is(err, wsup.ErrStagingIO))
	assert.Equal(t, []string{"a.txt"}, res.Files)

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
