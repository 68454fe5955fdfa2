package staging

import (
	"fmt"

	"github.com/vvka-141/wsup/pkg/wsup"
)

// PatternError reports a glob or ignore-file line with invalid syntax.
type PatternError struct {
	Pattern string
	// Source is "override" for user globs, otherwise the ignore file path.
	Source string
	// Line is the 1-based line number inside Source, 0 for user globs.
	Line   int
	Reason string
}

func (e *PatternError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid pattern %q at %s:%d: %s", e.Pattern, e.Source, e.Line, e.Reason)
	}
	return fmt.Sprintf("invalid %s pattern %q: %s", e.Source, e.Pattern, e.Reason)
}

func (e *PatternError) Unwrap() error { return wsup.ErrInvalidPattern }

// IgnoreFileError reports an explicit ignore file that could not be read.
type IgnoreFileError struct {
	Path string
	Err  error
}

func (e *IgnoreFileError) Error() string {
	return fmt.Sprintf("ignore file %s: %v", e.Path, e.Err)
}

func (e *IgnoreFileError) Unwrap() []error { return []error{wsup.ErrIgnoreFile, e.Err} }

// MaterializeError reports a selected entry that could not be created in the
// staging tree. The staging tree is incomplete after this error.
type MaterializeError struct {
	// Op is "mkdir", "readdir" or "copy".
	Op   string
	Path string
	Err  error
}

func (e *MaterializeError) Error() string {
	return fmt.Sprintf("staging %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *MaterializeError) Unwrap() []error { return []error{wsup.ErrStagingIO, e.Err} }

// Warning is an entry skipped during traversal. Warnings never fail a walk.
type Warning struct {
	Path string
	Err  error
}

func (w Warning) Error() string {
	return fmt.Sprintf("%s: %v", w.Path, w.Err)
}

func (w Warning) Unwrap() []error { return []error{wsup.ErrEntryEnumeration, w.Err} }
