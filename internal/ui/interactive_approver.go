package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vvka-141/wsup/pkg/wsup"
)

// InteractiveApprover prompts on the console before staging into a
// non-empty directory. The user confirms by typing the directory's name.
type InteractiveApprover struct {
	input  io.Reader
	output io.Writer
}

// NewInteractiveApprover creates an InteractiveApprover reading answers from r
// and writing the prompt to w.
func NewInteractiveApprover(r io.Reader, w io.Writer) wsup.Approver {
	return &InteractiveApprover{input: r, output: w}
}

// RequestApproval asks the user to type the base name of dir.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, dir string, entries int) (bool, error) {
	name := filepath.Base(filepath.Clean(dir))

	fmt.Fprintf(a.output, "\n! %s already holds %d entries.\n", dir, entries)
	fmt.Fprintln(a.output, "Staged files overwrite existing files with the same path; other files are kept.")
	fmt.Fprintf(a.output, "\nTo continue, type the directory name '%s' and press Enter: ", name)

	// the read cannot be interrupted, so it runs beside the ctx wait
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)
	go func() {
		line, err := bufio.NewReader(a.input).ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(line)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		if input == name {
			fmt.Fprintln(a.output, "✓ Confirmed.")
			return true, nil
		}
		fmt.Fprintf(a.output, "✗ Input '%s' does not match '%s'. Nothing was staged.\n", input, name)
		return false, nil
	}
}

var _ wsup.Approver = (*InteractiveApprover)(nil)
