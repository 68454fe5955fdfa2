package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireContentDir validates that exactly one content_dir argument is provided.
// Returns a helpful error message with usage and examples if missing or too many.
func RequireContentDir(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <content_dir>

Usage: %s

Example:
  %s ./my-item --glob '!*.psd'

Run in an interactive terminal to be asked for the directory.`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}
