package filesystem

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// FileSystem is a rooted filesystem: every path handed to it is relative to its root.
type FileSystem = billy.Filesystem

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// OpenDir returns a filesystem rooted at path.
// The path must exist and be a directory.
func OpenDir(path string) (FileSystem, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	return osfs.New(absPath), nil
}

// HostFS is the OS filesystem addressed with ordinary host paths.
type HostFS interface {
	billy.Basic
	billy.Dir
}

// Host returns the OS filesystem, relative paths resolving against the
// working directory.
func Host() HostFS {
	return osfs.Default
}

// ReadFile reads the whole named file from fsys.
func ReadFile(fsys billy.Basic, name string) ([]byte, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}
