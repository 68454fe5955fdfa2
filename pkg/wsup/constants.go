package wsup

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Command completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration
	ExitPatternError    = 11 // Invalid glob or ignore-file pattern
	ExitIgnoreFileError = 12 // External ignore file missing or unreadable
	ExitStagingError    = 13 // Staging directory could not be populated
	ExitContentNotFound = 14 // Content directory missing or not a directory
	ExitPlatformError   = 15 // Workshop platform call failed
	ExitApprovalDenied  = 16 // User declined staging into a non-empty directory
)

const (
	// ApplicationID is the reverse-DNS application identifier used for per-user
	// config and cache directories.
	ApplicationID = "io.github.vvka-141.wsup"

	// MetadataFileName is the per-item metadata file kept at the content root.
	// The stager always protects it from override exclusion.
	MetadataFileName = "workshop.toml"

	// ConfigFileName is the application config file name inside the config directory.
	ConfigFileName = "config.toml"

	// LocalConfigFileName is the override config file looked up beside the executable.
	LocalConfigFileName = "wsup.toml"

	// LogFileName is the log file written inside the log directory.
	LogFileName = "wsup.log"

	// DefaultCallbackInterval is how often the platform's callback dispatch
	// function is pumped while a blocking call waits for its result.
	DefaultCallbackInterval = 100 * time.Millisecond
)

// IgnoreFileNames lists the per-directory ignore files honored while staging,
// in increasing order of precedence.
var IgnoreFileNames = []string{".gitignore", ".ignore"}
