package wsup

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := stager.Stage(opts)
//	if errors.Is(err, wsup.ErrInvalidPattern) {
//	    // Ask the user to fix the glob
//	}
var (
	// ErrInvalidConfig indicates the application configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidPattern indicates a glob or ignore-file line has invalid syntax.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrIgnoreFile indicates an explicitly supplied ignore file could not be read.
	ErrIgnoreFile = errors.New("ignore file unavailable")

	// ErrStagingIO indicates a selected entry could not be materialized in the
	// staging directory. The staging directory is incomplete and must be discarded.
	ErrStagingIO = errors.New("staging failed")

	// ErrEntryEnumeration marks a single entry that could not be read or
	// classified during traversal. It is reported as a warning, never returned.
	ErrEntryEnumeration = errors.New("entry skipped")

	// ErrContentNotFound indicates the content directory does not exist or is not a directory.
	ErrContentNotFound = errors.New("content directory not found")

	// ErrCallbackDisconnected indicates an asynchronous platform call released
	// its completion without delivering a result.
	ErrCallbackDisconnected = errors.New("callback disconnected")

	// ErrPlatformCall indicates the workshop platform reported a failure.
	ErrPlatformCall = errors.New("platform call failed")

	// ErrApprovalDenied indicates the user did not approve staging into a
	// directory that already has content.
	ErrApprovalDenied = errors.New("approval denied")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrInvalidPattern):
		return ExitPatternError
	case errors.Is(err, ErrIgnoreFile):
		return ExitIgnoreFileError
	case errors.Is(err, ErrStagingIO):
		return ExitStagingError
	case errors.Is(err, ErrContentNotFound):
		return ExitContentNotFound
	case errors.Is(err, ErrPlatformCall), errors.Is(err, ErrCallbackDisconnected):
		return ExitPlatformError
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	}

	// cobra reports usage problems as plain errors
	errStr := err.Error()
	for _, prefix := range []string{
		"unknown flag",
		"unknown shorthand flag",
		"unknown command",
		"accepts ",
		"requires at least",
		"required flag",
		"invalid argument",
		"missing required argument",
	} {
		if strings.HasPrefix(errStr, prefix) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
