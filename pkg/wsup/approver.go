package wsup

import "context"

// Approver asks for confirmation before staging into a directory that
// already has content. Files with the same relative path are overwritten.
//
// Implementations:
//   - ForcedApprover: prints a warning and approves (--force)
//   - InteractiveApprover: prompts the user to type the directory name
type Approver interface {
	// RequestApproval reports whether staging into dir may proceed.
	// entries is the number of entries already present in dir.
	RequestApproval(ctx context.Context, dir string, entries int) (bool, error)
}
