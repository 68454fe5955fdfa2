package staging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/vvka-141/wsup/internal/files/filesystem"
	"github.com/vvka-141/wsup/pkg/wsup"
)

// Options describes one staging run.
type Options struct {
	// ContentRoot is the directory whose filtered copy is produced. Required.
	ContentRoot string
	// Destination must be an existing directory outside ContentRoot.
	// StageTemp fills it in.
	Destination string
	// Globs are override patterns, applied in order.
	Globs []string
	// IgnoreFiles are extra ignore files with the lowest precedence.
	IgnoreFiles []string
	// ConfirmNonEmpty is called when Destination already has entries, after
	// inputs are validated and before anything is written. A non-nil error
	// aborts the run. When nil, non-empty destinations are used as is.
	ConfirmNonEmpty func(dest string, entries int) error
}

// Stager validates staging inputs and runs BuildRules and Walk.
// Safe for concurrent use; each call works on its own destination.
type Stager struct {
	logger   wsup.Logger
	tempBase string
	openDir  func(path string) (filesystem.FileSystem, error)
}

// NewStager creates a Stager that places temporary staging directories under
// tempBase, or under the system temp directory when tempBase is empty.
// Panics if logger is nil.
func NewStager(logger wsup.Logger, tempBase string) *Stager {
	if logger == nil {
		panic("logger cannot be nil")
	}
	if tempBase == "" {
		tempBase = os.TempDir()
	}
	return &Stager{
		logger:   logger,
		tempBase: tempBase,
		openDir:  filesystem.OpenDir,
	}
}

// Stage copies the filtered content of opts.ContentRoot into opts.Destination.
//
// Inputs are validated and rules are compiled before anything is written, so
// pattern and ignore file errors leave the destination untouched.
func (s *Stager) Stage(opts Options) (*Result, error) {
	root, err := validateContentRoot(opts.ContentRoot)
	if err != nil {
		return nil, err
	}

	dest, err := validateDestination(root, opts.Destination)
	if err != nil {
		return nil, err
	}

	for _, path := range opts.IgnoreFiles {
		if err := validateIgnoreFile(path); err != nil {
			return nil, err
		}
	}

	rules, err := BuildRules(RuleInput{
		Globs:       opts.Globs,
		IgnoreFiles: opts.IgnoreFiles,
	})
	if err != nil {
		return nil, err
	}

	if opts.ConfirmNonEmpty != nil {
		entries, err := os.ReadDir(dest)
		if err != nil {
			return nil, &MaterializeError{Op: "readdir", Path: dest, Err: err}
		}
		if len(entries) > 0 {
			if err := opts.ConfirmNonEmpty(dest, len(entries)); err != nil {
				return nil, err
			}
		}
	}

	src, err := s.openDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", wsup.ErrContentNotFound, err)
	}
	dst, err := s.openDir(dest)
	if err != nil {
		return nil, &MaterializeError{Op: "mkdir", Path: dest, Err: err}
	}

	s.logger.Info("Staging item content", "from", root, "to", dest)
	s.logger.Verbose("Override globs", "globs", strings.Join(rules.Globs(), " "))

	result, err := Walk(src, dst, rules, s.logger)
	if err != nil {
		return result, err
	}

	s.logger.Info("Staged item content",
		"files", len(result.Files),
		"bytes", result.Bytes,
		"excluded", len(result.Excluded),
		"warnings", len(result.Warnings))
	return result, nil
}

// StageTemp stages into a new uniquely named directory under the Stager's
// temp base and returns its path. The directory is removed again when staging
// fails; on success the caller owns it.
func (s *Stager) StageTemp(opts Options) (string, *Result, error) {
	if err := os.MkdirAll(s.tempBase, 0o755); err != nil {
		return "", nil, &MaterializeError{Op: "mkdir", Path: s.tempBase, Err: err}
	}

	dir := filepath.Join(s.tempBase, "staging-"+uuid.NewString())
	if err := os.Mkdir(dir, 0o755); err != nil {
		return "", nil, &MaterializeError{Op: "mkdir", Path: dir, Err: err}
	}

	opts.Destination = dir
	result, err := s.Stage(opts)
	if err != nil {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			s.logger.Warn("Failed to remove staging directory", "path", dir, "error", rmErr)
		}
		return "", result, err
	}

	return dir, result, nil
}

func validateContentRoot(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: no path given", wsup.ErrContentNotFound)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", wsup.ErrContentNotFound, path, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", wsup.ErrContentNotFound, path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", wsup.ErrContentNotFound, err)
	}
	return abs, nil
}

func validateDestination(root, path string) (string, error) {
	if path == "" {
		return "", &MaterializeError{Op: "mkdir", Path: path, Err: errors.New("no destination given")}
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", &MaterializeError{Op: "mkdir", Path: path, Err: err}
	}
	if !info.IsDir() {
		return "", &MaterializeError{Op: "mkdir", Path: path, Err: errors.New("not a directory")}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &MaterializeError{Op: "mkdir", Path: path, Err: err}
	}

	if rel, err := filepath.Rel(root, abs); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &MaterializeError{Op: "mkdir", Path: path, Err: errors.New("destination is inside the content root")}
	}
	return abs, nil
}

func validateIgnoreFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &IgnoreFileError{Path: path, Err: err}
	}
	if info.IsDir() {
		return &IgnoreFileError{Path: path, Err: errors.New("is a directory")}
	}
	return nil
}
