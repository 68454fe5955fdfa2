package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const banner = `wsup - workshop uploader`

var rootCmd = &cobra.Command{
	Use:   "wsup",
	Short: "Publish and update workshop items",
	Long: banner + `

wsup prepares the content of a workshop item for upload. The content directory
is copied into a staging directory with everything you do not want published
left out: files matched by .gitignore and .ignore, extra ignore files, and
your own --glob overrides. The item's workshop.toml is always kept.

Your content directory is never modified.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Invalid glob or ignore-file pattern
  12 - Ignore file missing or unreadable
  13 - Staging directory could not be populated
  14 - Content directory not found
  15 - Workshop platform call failed
  16 - Staging into a non-empty directory was not approved`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(rootCmd.OutOrStdout(), rootCmd.ErrOrStderr())
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for wsup")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().String("config", "",
		"Path to a config file\n"+
			"Default: wsup.toml beside the executable, then the per-user config.toml")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

// getConfigFlag returns the --config value, or "" when unset.
func getConfigFlag(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return ""
	}
	return path
}
