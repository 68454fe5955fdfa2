package components

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/wsup/internal/files/filesystem"
	"github.com/vvka-141/wsup/internal/tui"
)

// Validation errors shown under a DirField.
var (
	ErrPathRequired  = errors.New("this field is required")
	ErrDirNotFound   = errors.New("directory does not exist")
	ErrNotADirectory = errors.New("not a directory")
)

const separators = "/" + string(filepath.Separator)

// DirField is a text input for a directory path. Tab completes the last path
// segment against the directories that exist; repeated Tab presses cycle
// through the candidates.
type DirField struct {
	label string
	input textinput.Model
	fs    filesystem.HostFS
	err   error

	base       string
	candidates []string
	next       int
	// completed is the value the last completion produced. Tab cycles only
	// while the value still equals it.
	completed string
}

// NewDirField creates a DirField that completes and validates against
// hostFS, or the host filesystem when nil.
func NewDirField(label string, hostFS filesystem.HostFS) DirField {
	if hostFS == nil {
		hostFS = filesystem.Host()
	}
	ti := textinput.New()
	ti.Placeholder = "./content"
	ti.CharLimit = 4096
	ti.Width = 60
	return DirField{label: label, input: ti, fs: hostFS}
}

// WithValue pre-fills the field.
func (f DirField) WithValue(v string) DirField {
	f.setValue(v)
	return f
}

// Focus focuses the input.
func (f *DirField) Focus() tea.Cmd {
	return f.input.Focus()
}

// Init implements tea.Model.
func (f DirField) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles Tab itself and passes every other message to the input.
func (f DirField) Update(msg tea.Msg) (DirField, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		if k.Type == tea.KeyTab {
			f.complete()
			return f, nil
		}
		f.resetCompletion()
		f.err = nil
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

// Value returns the entered path without surrounding blanks.
func (f DirField) Value() string {
	return strings.TrimSpace(f.input.Value())
}

// Candidates returns the directory names of the current completion.
func (f DirField) Candidates() []string {
	return f.candidates
}

// Validate checks that the value names an existing directory. The error is
// kept and shown by View until the next edit.
func (f *DirField) Validate() error {
	f.resetCompletion()
	f.err = f.check(f.Value())
	return f.err
}

func (f DirField) check(path string) error {
	if path == "" {
		return ErrPathRequired
	}
	info, err := f.fs.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrDirNotFound
	case err != nil:
		return err
	case !info.IsDir():
		return ErrNotADirectory
	}
	return nil
}

// View implements tea.Model.
func (f DirField) View() string {
	var b strings.Builder
	b.WriteString(tui.LabelStyle.Render(f.label))
	b.WriteString("\n")

	style := tui.InputStyle
	if f.input.Focused() {
		style = tui.FocusedInputStyle
	}
	b.WriteString(style.Render(f.input.View()))

	if len(f.candidates) > 1 {
		b.WriteString("\n")
		b.WriteString(tui.HintStyle.Render(strings.Join(f.candidates, "  ")))
	}
	if f.err != nil {
		b.WriteString("\n")
		b.WriteString(tui.ErrorStyle.Render(f.err.Error()))
	}
	return b.String()
}

func (f *DirField) setValue(v string) {
	f.input.SetValue(v)
	f.input.CursorEnd()
}

func (f *DirField) resetCompletion() {
	f.base = ""
	f.candidates = nil
	f.next = 0
	f.completed = ""
}

func (f *DirField) complete() {
	value := f.input.Value()
	if len(f.candidates) > 1 && value == f.completed {
		f.show(f.base + f.candidates[f.next] + string(filepath.Separator))
		f.next = (f.next + 1) % len(f.candidates)
		return
	}

	base, prefix := splitLast(value)
	f.base = base
	f.candidates = f.listDirs(base, prefix)
	f.next = 0
	switch len(f.candidates) {
	case 0:
		return
	case 1:
		f.show(base + f.candidates[0] + string(filepath.Separator))
		return
	}

	// extend to the shared prefix before cycling
	if shared := sharedPrefix(f.candidates); len(shared) > len(prefix) {
		f.show(base + shared)
		return
	}
	f.show(base + f.candidates[0] + string(filepath.Separator))
	f.next = 1
}

func (f *DirField) show(v string) {
	f.setValue(v)
	f.completed = v
}

func (f DirField) listDirs(base, prefix string) []string {
	dir := base
	if dir == "" {
		dir = "."
	}
	infos, err := f.fs.ReadDir(dir)
	if err != nil {
		return nil
	}
	lower := strings.ToLower(prefix)
	var names []string
	for _, info := range infos {
		if info.IsDir() && strings.HasPrefix(strings.ToLower(info.Name()), lower) {
			names = append(names, info.Name())
		}
	}
	sort.Strings(names)
	return names
}

// splitLast splits v after its last separator: "maps/de" is ("maps/", "de").
func splitLast(v string) (base, prefix string) {
	i := strings.LastIndexAny(v, separators)
	return v[:i+1], v[i+1:]
}

// sharedPrefix is the case-insensitive common prefix of names, spelled as in
// the first name.
func sharedPrefix(names []string) string {
	first := names[0]
	n := len(first)
	for _, name := range names[1:] {
		i := 0
		for i < n && i < len(name) && strings.EqualFold(first[i:i+1], name[i:i+1]) {
			i++
		}
		n = i
	}
	return first[:n]
}
