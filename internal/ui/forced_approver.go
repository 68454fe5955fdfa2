package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/vvka-141/wsup/pkg/wsup"
)

// ForcedApprover approves without asking. It is used when --force is given
// and still tells the user what is about to happen.
type ForcedApprover struct {
	output io.Writer
}

// NewForcedApprover creates a ForcedApprover writing its warning to w.
func NewForcedApprover(w io.Writer) wsup.Approver {
	return &ForcedApprover{output: w}
}

// RequestApproval prints a warning and approves unless ctx is done.
func (a *ForcedApprover) RequestApproval(ctx context.Context, dir string, entries int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintf(a.output, "! %s already holds %d entries; files with the same path will be overwritten (--force)\n", dir, entries)
	return true, nil
}

var _ wsup.Approver = (*ForcedApprover)(nil)
