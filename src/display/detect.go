// Package display detects what kind of session the CLI runs in: whether a
// graphical display is reachable for launching a browser, which selection
// tools apply, and whether stdin/stdout are terminals.
package display

import (
	"os"
	"runtime"

	"golang.org/x/term"
)

// Package-level function variables for testing
var (
	isTerminalFunc = term.IsTerminal
	getenvFunc     = os.Getenv
	goosFunc       = func() string { return runtime.GOOS }
)

// DisplayType represents the type of display available
type DisplayType string

const (
	DisplayTypeNone    DisplayType = "none"
	DisplayTypeX11     DisplayType = "x11"
	DisplayTypeWayland DisplayType = "wayland"
	DisplayTypeWindows DisplayType = "windows"
	DisplayTypeMacOS   DisplayType = "macos"
)

// Env represents the detected session environment
type Env struct {
	OS          string
	HasDisplay  bool
	DisplayType DisplayType

	StdinTerminal  bool
	StdoutTerminal bool

	IsSSH    bool
	HasColor bool
}

// Detect inspects the current process environment
func Detect() Env {
	env := Env{
		OS:          goosFunc(),
		DisplayType: DisplayTypeNone,
	}

	env.StdinTerminal = isTerminalFunc(int(os.Stdin.Fd()))
	env.StdoutTerminal = isTerminalFunc(int(os.Stdout.Fd()))

	env.IsSSH = getenvFunc("SSH_CLIENT") != "" || getenvFunc("SSH_TTY") != "" || getenvFunc("SSH_CONNECTION") != ""
	env.HasColor = env.StdoutTerminal && detectColorSupport()

	env.detectDisplay()
	return env
}

// detectColorSupport checks if the terminal supports colors
func detectColorSupport() bool {
	if getenvFunc("NO_COLOR") != "" {
		return false
	}
	termEnv := getenvFunc("TERM")
	return termEnv != "" && termEnv != "dumb"
}

func (e *Env) detectDisplay() {
	switch e.OS {
	case "windows":
		e.HasDisplay = !e.IsSSH
		if e.HasDisplay {
			e.DisplayType = DisplayTypeWindows
		}
	case "darwin":
		e.HasDisplay = !e.IsSSH
		if e.HasDisplay {
			e.DisplayType = DisplayTypeMacOS
		}
	default:
		// Wayland is preferred over X11 when both are exported
		if getenvFunc("WAYLAND_DISPLAY") != "" {
			e.HasDisplay = true
			e.DisplayType = DisplayTypeWayland
		} else if getenvFunc("DISPLAY") != "" {
			e.HasDisplay = true
			e.DisplayType = DisplayTypeX11
		}
	}
}

// GetMode determines the display mode for this environment
func (e Env) GetMode() Mode {
	switch {
	case e.HasDisplay:
		return ModeGUI
	case e.StdoutTerminal:
		return ModeTUI
	case e.StdinTerminal:
		return ModeCLI
	default:
		return ModeHeadless
	}
}
