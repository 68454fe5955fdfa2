package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestCompleteReportFormats(t *testing.T) {
	cmd := &cobra.Command{}

	t.Run("returns all formats for empty input", func(t *testing.T) {
		completions, directive := completeReportFormats(cmd, nil, "")
		assert.Equal(t, reportFormats, completions)
		assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
	})

	t.Run("filters by prefix", func(t *testing.T) {
		completions, _ := completeReportFormats(cmd, nil, "j")
		assert.Equal(t, []string{"json"}, completions)
	})

	t.Run("returns empty for non-matching prefix", func(t *testing.T) {
		completions, _ := completeReportFormats(cmd, nil, "xml")
		assert.Empty(t, completions)
	})
}

func TestCompleteDirectories(t *testing.T) {
	cmd := &cobra.Command{}

	t.Run("returns FilterDirs directive for first arg", func(t *testing.T) {
		_, directive := completeDirectories(cmd, nil, "")
		assert.Equal(t, cobra.ShellCompDirectiveFilterDirs, directive)
	})

	t.Run("returns NoFileComp when args already provided", func(t *testing.T) {
		_, directive := completeDirectories(cmd, []string{"./existing"}, "")
		assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
	})
}

func TestCompleteDirectoryFlag(t *testing.T) {
	_, directive := completeDirectoryFlag(&cobra.Command{}, []string{"./item"}, "")
	assert.Equal(t, cobra.ShellCompDirectiveFilterDirs, directive)
}

func TestCompleteNoArgs(t *testing.T) {
	completions, directive := completeNoArgs(&cobra.Command{}, nil, "")
	assert.Empty(t, completions)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
}
