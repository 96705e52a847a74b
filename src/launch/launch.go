// Package launch opens URLs in the browser and files in an editor
package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ErrNoEditor is returned when no editor command is configured or exported
var ErrNoEditor = errors.New("no editor configured")

// Launcher starts external programs. Empty command fields fall back to the
// platform opener and $VISUAL/$EDITOR.
type Launcher struct {
	GOOS           string
	BrowserCommand string
	EditorCommand  string

	Getenv func(string) string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// start runs a command without waiting; run waits for it to exit
	start func(*exec.Cmd) error
	run   func(*exec.Cmd) error
}

// New returns a launcher for goos attached to the process's standard streams
func New(goos, browserCommand, editorCommand string) *Launcher {
	return &Launcher{
		GOOS:           goos,
		BrowserCommand: browserCommand,
		EditorCommand:  editorCommand,
		Getenv:         os.Getenv,
		Stdin:          os.Stdin,
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
		start:          startDetached,
		run:            (*exec.Cmd).Run,
	}
}

func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// opener returns the platform command that opens a URL or file with its
// default application.
func opener(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"open"}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler"}
	default:
		return []string{"xdg-open"}
	}
}

// Browser opens url in the configured or default browser
func (l *Launcher) Browser(ctx context.Context, url string) error {
	argv := strings.Fields(l.BrowserCommand)
	if len(argv) == 0 {
		argv = opener(l.GOOS)
	}
	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], url)...)
	if err := l.start(cmd); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	return nil
}

// Open opens path with the system's default application
func (l *Launcher) Open(ctx context.Context, path string) error {
	argv := opener(l.GOOS)
	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], path)...)
	if err := l.start(cmd); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}

// Editor opens path in a terminal editor and waits for it to exit
func (l *Launcher) Editor(ctx context.Context, path string) error {
	argv := l.editorCommand()
	if len(argv) == 0 {
		return ErrNoEditor
	}

	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], path)...)
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr
	if err := l.run(cmd); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}

func (l *Launcher) editorCommand() []string {
	if argv := strings.Fields(l.EditorCommand); len(argv) > 0 {
		return argv
	}
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if argv := strings.Fields(l.Getenv(key)); len(argv) > 0 {
			return argv
		}
	}
	if l.GOOS == "windows" {
		return []string{"notepad"}
	}
	return []string{"vi"}
}
