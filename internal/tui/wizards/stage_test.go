package wizards

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(t *testing.T, w StageWizard, keys ...string) (StageWizard, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var m tea.Model
		m, cmd = w.Update(keyMsg(k))
		w = m.(StageWizard)
	}
	return w, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestStageWizard_ConfirmsExistingDirectory(t *testing.T) {
	dir := t.TempDir()
	w := NewStageWizard(dir, []string{"!*.psd"})

	w, cmd := press(t, w, "enter")
	assert.Equal(t, stageStepConfirm, w.step)
	assert.False(t, isQuit(cmd))
	assert.Contains(t, w.View(), "!*.psd")

	w, cmd = press(t, w, "enter")
	assert.True(t, isQuit(cmd))
	assert.Equal(t, StageResult{ContentDir: dir}, w.Result())
}

func TestStageWizard_TypedPath(t *testing.T) {
	parent := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(parent, "item"), 0o755))
	w := NewStageWizard("", nil)

	w, _ = press(t, w, filepath.Join(parent, "item"), "enter", "enter")

	assert.Equal(t, filepath.Join(parent, "item"), w.Result().ContentDir)
	assert.False(t, w.Result().Cancelled)
}

func TestStageWizard_TabCompletesPath(t *testing.T) {
	parent := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(parent, "content"), 0o755))
	w := NewStageWizard(filepath.Join(parent, "con"), nil)

	w, _ = press(t, w, "tab")

	assert.Equal(t, filepath.Join(parent, "content")+string(filepath.Separator), w.dir.Value())
}

func TestStageWizard_RejectsMissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	w := NewStageWizard(missing, nil)

	w, cmd := press(t, w, "enter")

	assert.Equal(t, stageStepContentDir, w.step)
	assert.False(t, isQuit(cmd))
	assert.Contains(t, w.View(), "directory does not exist")
}

func TestStageWizard_RejectsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	w := NewStageWizard(file, nil)

	w, _ = press(t, w, "enter")

	assert.Equal(t, stageStepContentDir, w.step)
	assert.Contains(t, w.View(), "not a directory")
}

func TestStageWizard_RejectsBlank(t *testing.T) {
	w := NewStageWizard("", nil)

	w, _ = press(t, w, "enter")

	assert.Equal(t, stageStepContentDir, w.step)
	assert.Contains(t, w.View(), "this field is required")
}

func TestStageWizard_ChooseAnotherDirectory(t *testing.T) {
	w := NewStageWizard(t.TempDir(), nil)

	w, cmd := press(t, w, "enter", "down", "enter")

	assert.Equal(t, stageStepContentDir, w.step)
	assert.False(t, isQuit(cmd))
}

func TestStageWizard_BackFromConfirm(t *testing.T) {
	w := NewStageWizard(t.TempDir(), nil)

	w, _ = press(t, w, "enter", "esc")

	assert.Equal(t, stageStepContentDir, w.step)
	assert.False(t, w.Result().Cancelled)
}

func TestStageWizard_Cancel(t *testing.T) {
	for _, k := range []string{"esc", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			w, cmd := press(t, NewStageWizard(t.TempDir(), nil), k)

			assert.True(t, isQuit(cmd))
			assert.True(t, w.Result().Cancelled)
		})
	}
}

func TestStageWizard_ShowsDescription(t *testing.T) {
	dir := t.TempDir()
	var described string
	w := NewStageWizard(dir, nil, WithDescriber(func(d string) ([]string, error) {
		described = d
		return []string{"App ID: 480", "Item ID: 1234"}, nil
	}))

	w, _ = press(t, w, "enter")

	assert.Equal(t, dir, described)
	view := w.View()
	assert.Contains(t, view, "App ID: 480")
	assert.Contains(t, view, "Item ID: 1234")
}

func TestStageWizard_DescriberErrorIsShownNotFatal(t *testing.T) {
	w := NewStageWizard(t.TempDir(), nil, WithDescriber(func(string) ([]string, error) {
		return nil, errors.New("workshop.toml: bad app_id")
	}))

	w, _ = press(t, w, "enter")
	assert.Contains(t, w.View(), "bad app_id")

	w, cmd := press(t, w, "enter")
	assert.True(t, isQuit(cmd))
	assert.False(t, w.Result().Cancelled)
}

func TestStageWizard_WindowSize(t *testing.T) {
	m, _ := NewStageWizard("", nil).Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	w := m.(StageWizard)

	assert.Equal(t, 120, w.width)
	assert.Equal(t, 40, w.height)
}
