package wizards

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/wsup/internal/files/filesystem"
	"github.com/vvka-141/wsup/internal/tui"
	"github.com/vvka-141/wsup/internal/tui/components"
)

// StageResult holds the result of the stage wizard.
type StageResult struct {
	Cancelled  bool
	ContentDir string
}

// Describer summarizes the item rooted at dir for the confirmation step,
// one line per entry.
type Describer func(dir string) ([]string, error)

// StageWizard asks for the content directory of an item and confirms it
// before staging.
type StageWizard struct {
	step stageStep

	dir components.DirField
	fs  filesystem.HostFS

	globs    []string
	describe Describer
	summary  []string
	descErr  error

	// proceed is the highlighted confirmation choice.
	proceed bool

	result StageResult

	width  int
	height int

	keys tui.KeyMap
}

type stageStep int

const (
	stageStepContentDir stageStep = iota
	stageStepConfirm
	stageStepDone
)

// StageOption configures a StageWizard.
type StageOption func(*StageWizard)

// WithDescriber sets the item summary shown before confirming.
func WithDescriber(d Describer) StageOption {
	return func(w *StageWizard) { w.describe = d }
}

// WithFileSystem sets the filesystem used for completion and validation.
func WithFileSystem(hostFS filesystem.HostFS) StageOption {
	return func(w *StageWizard) { w.fs = hostFS }
}

// NewStageWizard creates a stage wizard. initial pre-fills the path and
// globs are listed on the confirmation step.
func NewStageWizard(initial string, globs []string, opts ...StageOption) StageWizard {
	w := StageWizard{
		step:    stageStepContentDir,
		globs:   globs,
		fs:      filesystem.Host(),
		proceed: true,
		width:   80,
		height:  24,
		keys:    tui.DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(&w)
	}

	w.dir = components.NewDirField("Content directory", w.fs).WithValue(initial)
	w.dir.Focus()
	return w
}

// Init implements tea.Model.
func (w StageWizard) Init() tea.Cmd {
	return w.dir.Init()
}

// Update implements tea.Model.
func (w StageWizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		return w, nil

	case tea.KeyMsg:
		if key.Matches(msg, w.keys.Quit) {
			w.result.Cancelled = true
			return w, tea.Quit
		}

		switch w.step {
		case stageStepContentDir:
			return w.updateContentDir(msg)
		case stageStepConfirm:
			return w.updateConfirm(msg)
		}
	}

	return w, nil
}

func (w StageWizard) updateContentDir(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Back):
		w.result.Cancelled = true
		return w, tea.Quit
	case key.Matches(msg, w.keys.Confirm):
		if err := w.dir.Validate(); err != nil {
			return w, nil
		}
		dir := w.dir.Value()
		w.result.ContentDir = dir
		w.summary, w.descErr = nil, nil
		if w.describe != nil {
			w.summary, w.descErr = w.describe(dir)
		}
		w.proceed = true
		w.step = stageStepConfirm
		return w, nil
	}

	var cmd tea.Cmd
	w.dir, cmd = w.dir.Update(msg)
	return w, cmd
}

func (w StageWizard) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Toggle):
		w.proceed = !w.proceed
	case key.Matches(msg, w.keys.Confirm):
		if !w.proceed {
			w.step = stageStepContentDir
			return w, w.dir.Focus()
		}
		w.step = stageStepDone
		return w, tea.Quit
	case key.Matches(msg, w.keys.Back):
		w.step = stageStepContentDir
		return w, w.dir.Focus()
	}
	return w, nil
}

// View implements tea.Model.
func (w StageWizard) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("wsup stage - Prepare Item Content"))
	b.WriteString("\n")

	switch w.step {
	case stageStepContentDir:
		b.WriteString(w.viewContentDir())
	case stageStepConfirm:
		b.WriteString(w.viewConfirm())
	}

	return b.String()
}

func (w StageWizard) viewContentDir() string {
	var b strings.Builder

	b.WriteString(tui.SubtitleStyle.Render("Which directory holds the item content?"))
	b.WriteString("\n\n")
	b.WriteString(w.dir.View())
	b.WriteString("\n")
	b.WriteString(tui.HelpStyle.Render(w.keys.InputHelp()))
	return b.String()
}

func (w StageWizard) viewConfirm() string {
	var b strings.Builder

	absPath, err := filepath.Abs(w.result.ContentDir)
	if err != nil {
		absPath = w.result.ContentDir
	}
	b.WriteString(fmt.Sprintf("%s %s\n", tui.LabelStyle.Render("Content:"), absPath))

	switch {
	case w.descErr != nil:
		b.WriteString(tui.WarningStyle.Render(fmt.Sprintf("%s %v", tui.SymbolWarning, w.descErr)))
		b.WriteString("\n")
	case len(w.summary) > 0:
		for _, line := range w.summary {
			b.WriteString(fmt.Sprintf("%s %s\n", tui.SymbolBullet, line))
		}
	}

	if len(w.globs) > 0 {
		b.WriteString(tui.LabelStyle.Render("Globs:"))
		b.WriteString("\n")
		for _, g := range w.globs {
			b.WriteString(fmt.Sprintf("  %s\n", g))
		}
	}
	b.WriteString("\n")

	options := []struct {
		selected bool
		name     string
	}{
		{w.proceed, "Stage this directory"},
		{!w.proceed, "Choose another directory"},
	}
	for _, opt := range options {
		cursor := "  "
		style := tui.UnselectedStyle
		symbol := tui.SymbolUnselected
		if opt.selected {
			cursor = ""
			style = tui.SelectedStyle
			symbol = tui.SymbolSelected
		}
		b.WriteString(cursor)
		b.WriteString(style.Render(symbol + " " + opt.name))
		b.WriteString("\n")
	}

	b.WriteString(tui.HelpStyle.Render(w.keys.ChoiceHelp()))
	return b.String()
}

// Result returns the wizard result.
func (w StageWizard) Result() StageResult {
	return w.result
}

// RunStageWizard executes the stage wizard.
func RunStageWizard(initial string, globs []string, opts ...StageOption) (StageResult, error) {
	wizard := NewStageWizard(initial, globs, opts...)
	p := tea.NewProgram(wizard, tea.WithAltScreen())

	model, err := p.Run()
	if err != nil {
		return StageResult{Cancelled: true}, err
	}

	return model.(StageWizard).Result(), nil
}
