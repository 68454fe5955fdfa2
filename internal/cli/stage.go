package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vvka-141/wsup/internal/config"
	"github.com/vvka-141/wsup/internal/staging"
	"github.com/vvka-141/wsup/internal/tui"
	"github.com/vvka-141/wsup/internal/tui/wizards"
	"github.com/vvka-141/wsup/internal/ui"
	"github.com/vvka-141/wsup/pkg/wsup"
)

var stageCmd = &cobra.Command{
	Use:   "stage [content_dir]",
	Short: "Copy item content into a filtered staging directory",
	Long: `Stage copies the content directory of a workshop item into a staging
directory, leaving out everything that should not be published.

What is left out, from lowest to highest precedence:
  1. --ignore-file files (gitignore syntax)
  2. .gitignore and .ignore files found in the content tree; deeper files
     beat shallower ones and .ignore beats .gitignore
  3. default_globs from the config file, then --glob overrides; the last
     matching glob wins

Globs use gitignore syntax. A plain glob includes, a glob starting with "!"
excludes. Once any including glob is given, files that match no glob are left
out. The item's workshop.toml is always staged unless a glob names it
literally, for example --glob '!workshop.toml'.

Arguments:
  content_dir    Directory holding the item content. Prompted for when
                 omitted in an interactive terminal.

Examples:
  # Stage into a fresh directory under the cache dir
  wsup stage ./my-item

  # Leave out source art and the dev maps
  wsup stage ./my-item -g '!*.psd' -g '!maps/dev/'

  # Only publish maps and the preview
  wsup stage ./my-item -g 'maps/**' -g preview.png

  # Preview the selection as JSON without keeping anything
  wsup stage ./my-item --dry-run --format json

  # Restage into an existing build directory without prompting
  wsup stage ./my-item --out ./build --force`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeDirectories,
	RunE:              runStage,
}

type stageFlagValues struct {
	globs       []string
	ignoreFiles []string
	out         string
	dryRun      bool
	force       bool
	format      string
}

var stageFlags stageFlagValues

// runStageWizard is replaced in tests.
var runStageWizard = wizards.RunStageWizard

// isInteractive is replaced in tests.
var isInteractive = tui.IsInteractive

func resetStageFlags() {
	stageFlags = stageFlagValues{format: formatText}
}

func init() {
	rootCmd.AddCommand(stageCmd)

	// StringArray keeps brace lists such as '*.{png,jpg}' in one glob.
	stageCmd.Flags().StringArrayVarP(&stageFlags.globs, "glob", "g", nil,
		"Override glob in gitignore syntax (can be specified multiple times)\n"+
			"Plain globs include, '!'-prefixed globs exclude; the last match wins")
	stageCmd.Flags().StringArrayVar(&stageFlags.ignoreFiles, "ignore-file", nil,
		"Additional ignore file in gitignore syntax (can be specified multiple times)\n"+
			"Lowest precedence; ignore files in the content tree override it")
	stageCmd.Flags().StringVarP(&stageFlags.out, "out", "o", "",
		"Existing directory to stage into instead of a new directory under the cache dir\n"+
			"Must not be inside the content directory")
	stageCmd.Flags().BoolVar(&stageFlags.force, "force", false,
		"Stage into a non-empty --out directory without asking")
	stageCmd.Flags().BoolVar(&stageFlags.dryRun, "dry-run", false,
		"Stage into a temporary directory, report the selection, then remove it")
	stageCmd.Flags().StringVar(&stageFlags.format, "format", formatText,
		"Report format: text|yaml|json")

	_ = stageCmd.RegisterFlagCompletionFunc("format", completeReportFormats)
	_ = stageCmd.RegisterFlagCompletionFunc("out", completeDirectoryFlag)
}

func runStage(cmd *cobra.Command, args []string) error {
	if err := validateFormat(stageFlags.format); err != nil {
		return err
	}
	if stageFlags.dryRun && stageFlags.out != "" {
		return fmt.Errorf("invalid argument: --dry-run cannot be combined with --out")
	}

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	globs := append(append([]string{}, a.config.Config.DefaultGlobs...), stageFlags.globs...)

	contentDir, cancelled, err := resolveContentDir(cmd, args, globs)
	if err != nil {
		return err
	}
	if cancelled {
		fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled.")
		return nil
	}

	item, err := config.LoadWorkshopItem(contentDir)
	if err != nil {
		a.logger.Warn("Could not read item metadata", "path", config.WorkshopItemPath(contentDir), "error", err)
		item = nil
	}
	if item != nil {
		a.logger.Info("Preparing workshop item", "app_id", item.AppID.String(), "item", itemLabel(item))
	}

	opts := staging.Options{
		ContentRoot: contentDir,
		Destination: stageFlags.out,
		Globs:       globs,
		IgnoreFiles: stageFlags.ignoreFiles,
	}
	stager := staging.NewStager(a.logger, a.paths.StagingDir())

	var (
		stagingDir string
		res        *staging.Result
	)
	if stageFlags.out != "" {
		opts.ConfirmNonEmpty = func(dest string, entries int) error {
			return approveDestination(cmd, dest, entries)
		}
		stagingDir = stageFlags.out
		res, err = stager.Stage(opts)
	} else {
		stagingDir, res, err = stager.StageTemp(opts)
	}
	if err != nil {
		return err
	}

	if stageFlags.dryRun {
		if err := os.RemoveAll(stagingDir); err != nil {
			a.logger.Warn("Could not remove staging directory", "path", stagingDir, "error", err)
		}
		stagingDir = ""
	}

	report := newStageReport(absOrSelf(contentDir), stagingDir, stageFlags.dryRun, globs, item, res)
	return writeReport(cmd.OutOrStdout(), stageFlags.format, report)
}

// resolveContentDir returns the content directory from args, asking for it in
// an interactive terminal when it is missing.
func resolveContentDir(cmd *cobra.Command, args []string, globs []string) (string, bool, error) {
	if len(args) == 1 {
		return args[0], false, nil
	}
	if !isInteractive() {
		return "", false, RequireContentDir(cmd, args)
	}

	result, err := runStageWizard("", globs, wizards.WithDescriber(describeItem))
	if err != nil {
		return "", false, fmt.Errorf("stage wizard failed: %w", err)
	}
	if result.Cancelled {
		return "", true, nil
	}
	return result.ContentDir, false, nil
}

// approveDestination asks before staging into a directory that already has
// entries. Outside a terminal only --force lets the run continue.
func approveDestination(cmd *cobra.Command, dir string, entries int) error {
	var approver wsup.Approver
	switch {
	case stageFlags.force:
		approver = ui.NewForcedApprover(cmd.ErrOrStderr())
	case isInteractive():
		approver = ui.NewInteractiveApprover(cmd.InOrStdin(), cmd.ErrOrStderr())
	default:
		return fmt.Errorf("%s is not empty, use --force to stage into it: %w", dir, wsup.ErrApprovalDenied)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	approved, err := approver.RequestApproval(ctx, dir, entries)
	if err != nil {
		return fmt.Errorf("approval failed: %w", err)
	}
	if !approved {
		return fmt.Errorf("staging into %s: %w", dir, wsup.ErrApprovalDenied)
	}
	return nil
}

// describeItem summarizes the workshop.toml of dir for the stage wizard.
func describeItem(dir string) ([]string, error) {
	item, err := config.LoadWorkshopItem(dir)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return []string{"No workshop.toml, this will be a new item"}, nil
	}

	lines := []string{
		"App ID:  " + item.AppID.String(),
		"Item:    " + itemLabel(item),
	}
	if len(item.Tags) > 0 {
		lines = append(lines, fmt.Sprintf("Tags:    %v", item.Tags))
	}
	return lines, nil
}

func absOrSelf(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
