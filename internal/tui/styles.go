package tui

import "github.com/charmbracelet/lipgloss"

// Palette. Adaptive colors keep the wizard readable on light terminals.
var (
	ColorAccent = lipgloss.AdaptiveColor{Light: "25", Dark: "75"}
	ColorText   = lipgloss.AdaptiveColor{Light: "235", Dark: "252"}
	ColorSubtle = lipgloss.AdaptiveColor{Light: "241", Dark: "245"}
	ColorFaint  = lipgloss.AdaptiveColor{Light: "247", Dark: "240"}
	ColorOK     = lipgloss.AdaptiveColor{Light: "28", Dark: "78"}
	ColorWarn   = lipgloss.AdaptiveColor{Light: "130", Dark: "214"}
	ColorFail   = lipgloss.AdaptiveColor{Light: "160", Dark: "203"}
)

var (
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent).MarginBottom(1)
	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorSubtle).MarginBottom(1)
	LabelStyle    = lipgloss.NewStyle().Foreground(ColorSubtle)

	// InputStyle and FocusedInputStyle render text field values.
	InputStyle        = lipgloss.NewStyle().Foreground(ColorText)
	FocusedInputStyle = lipgloss.NewStyle().Foreground(ColorAccent)

	SelectedStyle   = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	UnselectedStyle = lipgloss.NewStyle().Foreground(ColorSubtle)

	// HintStyle is for completion candidates and other secondary lines.
	HintStyle = lipgloss.NewStyle().Foreground(ColorFaint).MarginLeft(2)
	HelpStyle = lipgloss.NewStyle().Foreground(ColorFaint).MarginTop(1)

	SuccessStyle = lipgloss.NewStyle().Foreground(ColorOK)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarn)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorFail)
)

const (
	SymbolSelected   = "●"
	SymbolUnselected = "○"
	SymbolCheck      = "✓"
	SymbolCross      = "✗"
	SymbolWarning    = "!"
	SymbolBullet     = "•"
)
