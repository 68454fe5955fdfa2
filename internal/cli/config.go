package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/wsup/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show where wsup keeps its files and the effective configuration",
	Long: `Inspect the wsup configuration.

Configuration is read from the first file that exists:
  1. --config <path>
  2. wsup.toml beside the wsup executable
  3. config.toml in the per-user config directory (created with defaults on
     first run)

Environment variables override the file: WSUP_LOG_LEVEL, WSUP_LOG_TO_FILE,
WSUP_OPEN_ITEM_PAGE and WSUP_DEFAULT_GLOBS (comma separated). A .env file in
the working directory is loaded first.`,
}

var configPathCmd = &cobra.Command{
	Use:               "path",
	Short:             "Print the directories and files wsup uses",
	Args:              cobra.NoArgs,
	ValidArgsFunction: completeNoArgs,
	RunE:              runConfigPath,
}

var configShowCmd = &cobra.Command{
	Use:               "show",
	Short:             "Print the effective configuration",
	Args:              cobra.NoArgs,
	ValidArgsFunction: completeNoArgs,
	RunE:              runConfigShow,
}

const formatTOML = "toml"

var configShowFormat string

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)

	configShowCmd.Flags().StringVar(&configShowFormat, "format", formatTOML, "Output format: toml|yaml|json")
	_ = configShowCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{formatTOML, formatYAML, formatJSON}, cobra.ShellCompDirectiveNoFileComp
	})
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	p := a.paths
	out := cmd.OutOrStdout()
	rows := []struct{ name, value string }{
		{"config", a.config.Path},
		{"config_dir", p.ConfigDir},
		{"local_config", p.LocalConfigFile()},
		{"cache_dir", p.CacheDir},
		{"staging_dir", p.StagingDir()},
		{"log_file", p.LogFile()},
	}
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		fmt.Fprintf(out, "%-13s %s\n", row.name, row.value)
	}
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	return writeConfig(cmd.OutOrStdout(), configShowFormat, a.config)
}

func writeConfig(w io.Writer, format string, res *config.Resolved) error {
	switch format {
	case formatTOML:
		if res.Path != "" {
			fmt.Fprintf(w, "# source: %s (%s)\n", res.Source, res.Path)
		} else {
			fmt.Fprintf(w, "# source: %s\n", res.Source)
		}
		return toml.NewEncoder(w).Encode(res.Config)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res.Config); err != nil {
			return err
		}
		return enc.Close()
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Config)
	default:
		return fmt.Errorf("invalid argument %q for --format: must be one of toml, yaml, json", format)
	}
}
