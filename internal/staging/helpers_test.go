package staging

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vvka-141/wsup/internal/files/filesystem"
	"github.com/vvka-141/wsup/internal/logging"
)

// writeTree creates files under root. Keys ending in "/" create empty
// directories.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if rel[len(rel)-1] == '/' {
			require.NoError(t, os.MkdirAll(full, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

// listTree returns every entry under root as slash paths, directories with a
// trailing "/".
func listTree(t *testing.T, root string) []string {
	t.Helper()
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			rel += "/"
		}
		out = append(out, rel)
		return nil
	})
	require.NoError(t, err)
	sort.Strings(out)
	return out
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

type walkFixture struct {
	srcDir string
	dstDir string
	src    filesystem.FileSystem
	dst    filesystem.FileSystem
	log    *logging.RecordingLogger
}

func newWalkFixture(t *testing.T, files map[string]string) *walkFixture {
	t.Helper()
	f := &walkFixture{
		srcDir: t.TempDir(),
		dstDir: t.TempDir(),
		log:    logging.NewRecordingLogger(),
	}
	writeTree(t, f.srcDir, files)

	var err error
	f.src, err = filesystem.OpenDir(f.srcDir)
	require.NoError(t, err)
	f.dst, err = filesystem.OpenDir(f.dstDir)
	require.NoError(t, err)
	return f
}

func (f *walkFixture) walk(t *testing.T, in RuleInput) *Result {
	t.Helper()
	rules, err := BuildRules(in)
	require.NoError(t, err)
	res, err := Walk(f.src, f.dst, rules, f.log)
	require.NoError(t, err)
	return res
}
