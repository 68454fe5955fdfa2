package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// reportFormats contains the valid --format values for shell completion.
var reportFormats = []string{formatText, formatYAML, formatJSON}

// completeReportFormats provides shell completion for --format flag values.
func completeReportFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var matches []string
	for _, format := range reportFormats {
		if strings.HasPrefix(format, toComplete) {
			matches = append(matches, format)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeDirectories provides shell completion for directory paths.
func completeDirectories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	// Let the shell handle directory completion
	return nil, cobra.ShellCompDirectiveFilterDirs
}

// completeDirectoryFlag provides directory completion for flag values,
// regardless of positional arguments.
func completeDirectoryFlag(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return nil, cobra.ShellCompDirectiveFilterDirs
}

// completeNoArgs disables file completion for commands without arguments.
func completeNoArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return nil, cobra.ShellCompDirectiveNoFileComp
}
