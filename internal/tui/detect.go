package tui

import (
	"os"

	"golang.org/x/term"
)

// EnvNonInteractive set to "1" disables every prompt.
const EnvNonInteractive = "WSUP_NON_INTERACTIVE"

// Mode tells whether wsup may prompt.
type Mode int

const (
	ModeNonInteractive Mode = iota
	ModeInteractive
)

func (m Mode) String() string {
	if m == ModeInteractive {
		return "interactive"
	}
	return "non-interactive"
}

// Detector decides the Mode from the environment and the standard streams.
type Detector struct {
	Getenv     func(string) string
	IsTerminal func(fd int) bool
	StdinFd    int
	StdoutFd   int
}

// HostDetector inspects the real process environment.
func HostDetector() Detector {
	return Detector{
		Getenv:     os.Getenv,
		IsTerminal: term.IsTerminal,
		StdinFd:    int(os.Stdin.Fd()),
		StdoutFd:   int(os.Stdout.Fd()),
	}
}

// Detect returns the mode and, for non-interactive runs, the reason.
// Explicit opt-outs win over terminal checks: WSUP_NON_INTERACTIVE=1, CI,
// NO_COLOR. Otherwise both stdin and stdout must be terminals.
func (d Detector) Detect() (Mode, string) {
	switch {
	case d.Getenv(EnvNonInteractive) == "1":
		return ModeNonInteractive, EnvNonInteractive + "=1"
	case d.Getenv("CI") != "":
		return ModeNonInteractive, "CI is set"
	case d.Getenv("NO_COLOR") != "":
		return ModeNonInteractive, "NO_COLOR is set"
	case !d.IsTerminal(d.StdinFd):
		return ModeNonInteractive, "stdin is not a terminal"
	case !d.IsTerminal(d.StdoutFd):
		return ModeNonInteractive, "stdout is not a terminal"
	}
	return ModeInteractive, ""
}

// DetectMode reports the mode of the current process.
func DetectMode() Mode {
	m, _ := HostDetector().Detect()
	return m
}

// IsInteractive reports whether the current process may prompt.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}
