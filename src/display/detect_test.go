package display

import "testing"

func fakeEnv(t *testing.T, goos string, env map[string]string, tty bool) {
	t.Helper()
	origTerm, origEnv, origGOOS := isTerminalFunc, getenvFunc, goosFunc
	isTerminalFunc = func(int) bool { return tty }
	getenvFunc = func(key string) string { return env[key] }
	goosFunc = func() string { return goos }
	t.Cleanup(func() {
		isTerminalFunc, getenvFunc, goosFunc = origTerm, origEnv, origGOOS
	})
}

func TestDetectWayland(t *testing.T) {
	fakeEnv(t, "linux", map[string]string{"WAYLAND_DISPLAY": "wayland-0", "DISPLAY": ":0"}, true)

	env := Detect()

	if !env.HasDisplay {
		t.Error("HasDisplay should be true")
	}
	if env.DisplayType != DisplayTypeWayland {
		t.Errorf("DisplayType = %q, want wayland", env.DisplayType)
	}
}

func TestDetectX11(t *testing.T) {
	fakeEnv(t, "linux", map[string]string{"DISPLAY": ":0"}, false)

	env := Detect()

	if env.DisplayType != DisplayTypeX11 {
		t.Errorf("DisplayType = %q, want x11", env.DisplayType)
	}
	if env.StdinTerminal || env.StdoutTerminal {
		t.Error("terminal flags should be false")
	}
}

func TestDetectNoDisplay(t *testing.T) {
	fakeEnv(t, "linux", map[string]string{}, true)

	env := Detect()

	if env.HasDisplay {
		t.Error("HasDisplay should be false without DISPLAY/WAYLAND_DISPLAY")
	}
	if env.GetMode() != ModeTUI {
		t.Errorf("GetMode() = %v, want tui", env.GetMode())
	}
}

func TestDetectMacOSOverSSH(t *testing.T) {
	fakeEnv(t, "darwin", map[string]string{"SSH_TTY": "/dev/ttys001"}, true)

	env := Detect()

	if !env.IsSSH {
		t.Error("IsSSH should be true")
	}
	if env.HasDisplay {
		t.Error("HasDisplay should be false over SSH")
	}
}

func TestDetectWindows(t *testing.T) {
	fakeEnv(t, "windows", map[string]string{}, true)

	env := Detect()

	if env.DisplayType != DisplayTypeWindows {
		t.Errorf("DisplayType = %q, want windows", env.DisplayType)
	}
}

func TestDetectColor(t *testing.T) {
	fakeEnv(t, "linux", map[string]string{"TERM": "xterm-256color"}, true)
	if !Detect().HasColor {
		t.Error("HasColor should be true for xterm on a tty")
	}

	fakeEnv(t, "linux", map[string]string{"TERM": "xterm-256color", "NO_COLOR": "1"}, true)
	if Detect().HasColor {
		t.Error("HasColor should honor NO_COLOR")
	}

	fakeEnv(t, "linux", map[string]string{"TERM": "dumb"}, true)
	if Detect().HasColor {
		t.Error("HasColor should be false for dumb terminals")
	}
}

func TestGetMode(t *testing.T) {
	tests := []struct {
		env  Env
		want Mode
	}{
		{Env{HasDisplay: true}, ModeGUI},
		{Env{StdoutTerminal: true}, ModeTUI},
		{Env{StdinTerminal: true}, ModeCLI},
		{Env{}, ModeHeadless},
	}

	for _, tt := range tests {
		if got := tt.env.GetMode(); got != tt.want {
			t.Errorf("GetMode(%+v) = %v, want %v", tt.env, got, tt.want)
		}
	}
}

func TestModeString(t *testing.T) {
	tests := map[Mode]string{
		ModeHeadless: "headless",
		ModeCLI:      "cli",
		ModeTUI:      "tui",
		ModeGUI:      "gui",
		Mode(42):     "unknown",
	}
	for m, want := range tests {
		if m.String() != want {
			t.Errorf("Mode(%d).String() = %q, want %q", m, m.String(), want)
		}
	}
}

func TestModeCapabilities(t *testing.T) {
	if !ModeGUI.CanLaunchBrowser() || ModeTUI.CanLaunchBrowser() {
		t.Error("only GUI mode can launch a browser")
	}
	if !ModeTUI.IsInteractive() || !ModeGUI.IsInteractive() || ModeCLI.IsInteractive() {
		t.Error("TUI and GUI are interactive, CLI is not")
	}
}
