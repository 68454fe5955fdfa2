package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the wizard key bindings. Letters belong to the text input,
// so nothing here binds one.
type KeyMap struct {
	Toggle   key.Binding
	Confirm  key.Binding
	Back     key.Binding
	Quit     key.Binding
	Complete key.Binding
}

// DefaultKeyMap returns the wizard key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle:   key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "toggle")),
		Confirm:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Complete: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
	}
}

// ChoiceHelp is the help line under a list of choices.
func (k KeyMap) ChoiceHelp() string {
	return helpLine(k.Toggle.Help(), k.Confirm.Help(), k.Back.Help())
}

// InputHelp is the help line under a path input, where esc leaves the wizard.
func (k KeyMap) InputHelp() string {
	return helpLine(k.Complete.Help(), k.Confirm.Help(), key.Help{Key: k.Back.Help().Key, Desc: "cancel"})
}

func helpLine(entries ...key.Help) string {
	parts := make([]string, 0, len(entries))
	for _, h := range entries {
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
