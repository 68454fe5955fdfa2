package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/wsup/internal/config"
	"github.com/vvka-141/wsup/internal/staging"
	"github.com/vvka-141/wsup/internal/tui"
)

const (
	formatText = "text"
	formatYAML = "yaml"
	formatJSON = "json"
)

// stageReport is the machine readable outcome of `wsup stage`.
type stageReport struct {
	ContentDir string                     `yaml:"content_dir" json:"content_dir"`
	StagingDir string                     `yaml:"staging_dir,omitempty" json:"staging_dir,omitempty"`
	DryRun     bool                       `yaml:"dry_run" json:"dry_run"`
	Item       *config.WorkshopItemConfig `yaml:"item,omitempty" json:"item,omitempty"`
	Globs      []string                   `yaml:"globs,omitempty" json:"globs,omitempty"`
	Files      []string                   `yaml:"files" json:"files"`
	Dirs       []string                   `yaml:"dirs" json:"dirs"`
	Excluded   []excludedEntry            `yaml:"excluded,omitempty" json:"excluded,omitempty"`
	Warnings   []warningEntry             `yaml:"warnings,omitempty" json:"warnings,omitempty"`
	Bytes      int64                      `yaml:"bytes" json:"bytes"`
	Digest     string                     `yaml:"digest,omitempty" json:"digest,omitempty"`
}

type excludedEntry struct {
	Path  string `yaml:"path" json:"path"`
	IsDir bool   `yaml:"dir,omitempty" json:"dir,omitempty"`
}

type warningEntry struct {
	Path  string `yaml:"path" json:"path"`
	Error string `yaml:"error" json:"error"`
}

func newStageReport(contentDir, stagingDir string, dryRun bool, globs []string, item *config.WorkshopItemConfig, res *staging.Result) stageReport {
	r := stageReport{
		ContentDir: contentDir,
		StagingDir: stagingDir,
		DryRun:     dryRun,
		Item:       item,
		Globs:      globs,
		Files:      []string{},
		Dirs:       []string{},
	}
	if res == nil {
		return r
	}

	r.Files = append(r.Files, res.Files...)
	r.Dirs = append(r.Dirs, res.Dirs...)
	r.Bytes = res.Bytes
	r.Digest = res.Digest
	for _, e := range res.Excluded {
		r.Excluded = append(r.Excluded, excludedEntry{Path: e.Path, IsDir: e.IsDir})
	}
	for _, w := range res.Warnings {
		r.Warnings = append(r.Warnings, warningEntry{Path: w.Path, Error: w.Err.Error()})
	}
	return r
}

func validateFormat(format string) error {
	for _, f := range reportFormats {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("invalid argument %q for --format: must be one of %s", format, strings.Join(reportFormats, ", "))
}

func writeReport(w io.Writer, format string, r stageReport) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return enc.Close()
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return nil
	default:
		return writeTextReport(w, r)
	}
}

func writeTextReport(w io.Writer, r stageReport) error {
	var b strings.Builder

	if r.Item != nil {
		fmt.Fprintf(&b, "Item:     %s (app %s)\n", itemLabel(r.Item), r.Item.AppID)
	}
	fmt.Fprintf(&b, "Content:  %s\n", r.ContentDir)
	switch {
	case r.DryRun:
		b.WriteString("Staging:  dry run, staging directory removed\n")
	case r.StagingDir != "":
		fmt.Fprintf(&b, "Staging:  %s\n", r.StagingDir)
	}
	b.WriteString("\n")

	for _, f := range r.Files {
		fmt.Fprintf(&b, "  %s\n", f)
	}
	if len(r.Excluded) > 0 {
		b.WriteString("\nExcluded:\n")
		for _, e := range r.Excluded {
			name := e.Path
			if e.IsDir {
				name += "/"
			}
			fmt.Fprintf(&b, "  %s %s\n", tui.SymbolCross, name)
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n")
		for _, warn := range r.Warnings {
			b.WriteString(tui.WarningStyle.Render(fmt.Sprintf("%s %s: %s", tui.SymbolWarning, warn.Path, warn.Error)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(tui.SuccessStyle.Render(fmt.Sprintf("%s %d file(s), %d byte(s) staged", tui.SymbolCheck, len(r.Files), r.Bytes)))
	b.WriteString("\n")
	if r.Digest != "" {
		fmt.Fprintf(&b, "Digest:   %s\n", r.Digest)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// itemLabel names the item for humans: its id, or "new item" before the
// first upload.
func itemLabel(item *config.WorkshopItemConfig) string {
	if item.ItemID == 0 {
		return "new item"
	}
	return item.ItemID.String()
}
