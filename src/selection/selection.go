// Package selection acquires a search term when none is given on the
// command line: the primary text selection first, then the clipboard, then
// piped standard input.
package selection

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/apimgr/websearch/src/display"
	"github.com/apimgr/websearch/src/logging"
)

// ErrNoTerm is returned when no source produced a non-empty term
var ErrNoTerm = errors.New("no search term available")

// Runner executes a command and returns its standard output
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Source reads the selection and falls back to clipboard and stdin
type Source struct {
	Env       display.Env
	Run       Runner
	Clipboard func() (string, error)
	Stdin     io.Reader
	Logger    *slog.Logger
}

// New returns a source bound to the real system tools
func New(env display.Env, stdin io.Reader, logger *slog.Logger) *Source {
	return &Source{
		Env:       env,
		Run:       execRunner,
		Clipboard: clipboard.ReadAll,
		Stdin:     stdin,
		Logger:    logger,
	}
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, err
	}
	return stdout.Bytes(), nil
}

// primaryCommands lists the tools that print the primary selection
func primaryCommands(t display.DisplayType) [][]string {
	switch t {
	case display.DisplayTypeWayland:
		return [][]string{
			{"wl-paste", "--primary", "--no-newline"},
			{"xclip", "-o", "-selection", "primary"},
		}
	case display.DisplayTypeX11:
		return [][]string{
			{"xclip", "-o", "-selection", "primary"},
			{"xsel", "-o", "-p"},
		}
	default:
		return nil
	}
}

// Term returns the first non-empty term from the selection, the clipboard
// or piped stdin, trimmed of surrounding whitespace.
func (s *Source) Term(ctx context.Context) (string, error) {
	for _, argv := range primaryCommands(s.Env.DisplayType) {
		out, err := s.Run(ctx, argv[0], argv[1:]...)
		if err != nil {
			s.log().Debug("selection tool failed", "tool", argv[0], "error", err)
			continue
		}
		if term := strings.TrimSpace(string(out)); term != "" {
			s.log().Info("term read from primary selection", "tool", argv[0])
			return term, nil
		}
	}

	if s.Env.HasDisplay && s.Clipboard != nil {
		text, err := s.Clipboard()
		if err != nil {
			s.log().Debug("clipboard read failed", "error", err)
		} else if term := strings.TrimSpace(text); term != "" {
			s.log().Info("term read from clipboard")
			return term, nil
		}
	}

	if !s.Env.StdinTerminal && s.Stdin != nil {
		data, err := io.ReadAll(s.Stdin)
		if err != nil {
			return "", err
		}
		if term := strings.TrimSpace(string(data)); term != "" {
			s.log().Info("term read from stdin")
			return term, nil
		}
	}

	return "", ErrNoTerm
}

func (s *Source) log() *slog.Logger {
	if s.Logger == nil {
		return logging.Discard()
	}
	return s.Logger
}
