package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vvka-141/wsup/internal/config"
	"github.com/vvka-141/wsup/internal/paths"
)

// withTestPaths points every wsup directory into a temp dir and clears the
// environment overrides.
func withTestPaths(t *testing.T) *paths.Paths {
	t.Helper()
	base := t.TempDir()
	p := &paths.Paths{
		ConfigDir: filepath.Join(base, "config"),
		CacheDir:  filepath.Join(base, "cache"),
	}
	p.LogDir = filepath.Join(p.CacheDir, "logs")

	orig := resolvePaths
	resolvePaths = func() (*paths.Paths, error) { return p, nil }
	t.Cleanup(func() { resolvePaths = orig })

	for _, name := range []string{config.EnvLogLevel, config.EnvLogToFile, config.EnvOpenItemPage, config.EnvDefaultGlobs} {
		t.Setenv(name, "")
	}
	t.Setenv("NO_COLOR", "1")
	return p
}

// executeCLI runs the root command with args and returns what it wrote.
func executeCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetStageFlags()
	configShowFormat = formatTOML
	require.NoError(t, rootCmd.PersistentFlags().Set("verbose", "false"))
	require.NoError(t, rootCmd.PersistentFlags().Set("config", ""))

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// withStdin feeds input to the next executeCLI call.
func withStdin(t *testing.T, input string) {
	t.Helper()
	rootCmd.SetIn(strings.NewReader(input))
	t.Cleanup(func() { rootCmd.SetIn(nil) })
}

// withInteractive makes the commands believe they run in a terminal.
func withInteractive(t *testing.T, interactive bool) {
	t.Helper()
	orig := isInteractive
	isInteractive = func() bool { return interactive }
	t.Cleanup(func() { isInteractive = orig })
}

// writeTree creates files under root; keys ending in "/" are empty directories.
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
