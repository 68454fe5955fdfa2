package filesystem

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/go-git/go-billy/v5"
)

// Op names a filesystem operation that FaultyFileSystem can fail.
type Op string

const (
	OpOpen    Op = "open"
	OpCreate  Op = "create"
	OpReadDir Op = "readdir"
	OpMkdir   Op = "mkdir"
	OpStat    Op = "stat"
)

type faultKey struct {
	op   Op
	path string
}

// FaultyFileSystem wraps a FileSystem and returns injected errors for chosen
// operation/path pairs. All other calls pass through.
// Safe for concurrent use as long as the wrapped filesystem is.
type FaultyFileSystem struct {
	FileSystem

	mu     sync.RWMutex
	faults map[faultKey]error
}

// NewFaulty wraps inner.
func NewFaulty(inner FileSystem) *FaultyFileSystem {
	return &FaultyFileSystem{
		FileSystem: inner,
		faults:     make(map[faultKey]error),
	}
}

// Fail registers err for op on path. Paths use forward slashes and are
// relative to the filesystem root.
func (f *FaultyFileSystem) Fail(op Op, path string, err error) *FaultyFileSystem {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults[faultKey{op: op, path: normalize(path)}] = err
	return f
}

func (f *FaultyFileSystem) fault(op Op, path string) error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.faults[faultKey{op: op, path: normalize(path)}]
}

func (f *FaultyFileSystem) Open(filename string) (billy.File, error) {
	if err := f.fault(OpOpen, filename); err != nil {
		return nil, &os.PathError{Op: string(OpOpen), Path: filename, Err: err}
	}
	return f.FileSystem.Open(filename)
}

func (f *FaultyFileSystem) Create(filename string) (billy.File, error) {
	if err := f.fault(OpCreate, filename); err != nil {
		return nil, &os.PathError{Op: string(OpCreate), Path: filename, Err: err}
	}
	return f.FileSystem.Create(filename)
}

func (f *FaultyFileSystem) OpenFile(filename string, flag int, perm os.FileMode) (billy.File, error) {
	op := OpOpen
	if flag&os.O_CREATE != 0 {
		op = OpCreate
	}
	if err := f.fault(op, filename); err != nil {
		return nil, &os.PathError{Op: string(op), Path: filename, Err: err}
	}
	return f.FileSystem.OpenFile(filename, flag, perm)
}

func (f *FaultyFileSystem) ReadDir(path string) ([]os.FileInfo, error) {
	if err := f.fault(OpReadDir, path); err != nil {
		return nil, &os.PathError{Op: string(OpReadDir), Path: path, Err: err}
	}
	return f.FileSystem.ReadDir(path)
}

func (f *FaultyFileSystem) MkdirAll(filename string, perm os.FileMode) error {
	if err := f.fault(OpMkdir, filename); err != nil {
		return &os.PathError{Op: string(OpMkdir), Path: filename, Err: err}
	}
	return f.FileSystem.MkdirAll(filename, perm)
}

func (f *FaultyFileSystem) Stat(filename string) (os.FileInfo, error) {
	if err := f.fault(OpStat, filename); err != nil {
		return nil, &os.PathError{Op: string(OpStat), Path: filename, Err: err}
	}
	return f.FileSystem.Stat(filename)
}

func normalize(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}
