package display

// Mode represents how the CLI can interact with the user
type Mode int

const (
	// ModeHeadless - no display, no TTY (cron, pipes)
	ModeHeadless Mode = iota
	// ModeCLI - input from a terminal, output redirected
	ModeCLI
	// ModeTUI - interactive terminal, no graphical display
	ModeTUI
	// ModeGUI - native display available (X11, Wayland, Windows, macOS)
	ModeGUI
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeHeadless:
		return "headless"
	case ModeCLI:
		return "cli"
	case ModeTUI:
		return "tui"
	case ModeGUI:
		return "gui"
	default:
		return "unknown"
	}
}

// CanLaunchBrowser reports whether a graphical browser can be opened
func (m Mode) CanLaunchBrowser() bool {
	return m == ModeGUI
}

// IsInteractive reports whether interactive prompts can be shown
func (m Mode) IsInteractive() bool {
	return m == ModeTUI || m == ModeGUI
}
