package selection

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/apimgr/websearch/src/display"
)

func fakeRunner(outputs map[string]string) (Runner, *[]string) {
	var calls []string
	return func(_ context.Context, name string, args ...string) ([]byte, error) {
		calls = append(calls, name)
		out, ok := outputs[name]
		if !ok {
			return nil, errors.New("not installed")
		}
		return []byte(out), nil
	}, &calls
}

func TestTermFromWaylandSelection(t *testing.T) {
	run, calls := fakeRunner(map[string]string{"wl-paste": "  golang generics \n"})
	s := &Source{Env: display.Env{HasDisplay: true, DisplayType: display.DisplayTypeWayland}, Run: run}

	term, err := s.Term(context.Background())
	if err != nil {
		t.Fatalf("Term() error = %v", err)
	}
	if term != "golang generics" {
		t.Errorf("Term() = %q, want 'golang generics'", term)
	}
	if len(*calls) != 1 || (*calls)[0] != "wl-paste" {
		t.Errorf("calls = %v, want [wl-paste]", *calls)
	}
}

func TestTermX11FallsBackToXsel(t *testing.T) {
	run, calls := fakeRunner(map[string]string{"xsel": "selected"})
	s := &Source{Env: display.Env{HasDisplay: true, DisplayType: display.DisplayTypeX11}, Run: run}

	term, err := s.Term(context.Background())
	if err != nil {
		t.Fatalf("Term() error = %v", err)
	}
	if term != "selected" {
		t.Errorf("Term() = %q, want 'selected'", term)
	}
	if strings.Join(*calls, ",") != "xclip,xsel" {
		t.Errorf("calls = %v, want [xclip xsel]", *calls)
	}
}

func TestTermFallsBackToClipboard(t *testing.T) {
	run, _ := fakeRunner(map[string]string{"xclip": "   "})
	s := &Source{
		Env:       display.Env{HasDisplay: true, DisplayType: display.DisplayTypeX11},
		Run:       run,
		Clipboard: func() (string, error) { return "from clipboard", nil },
	}

	term, err := s.Term(context.Background())
	if err != nil {
		t.Fatalf("Term() error = %v", err)
	}
	if term != "from clipboard" {
		t.Errorf("Term() = %q", term)
	}
}

func TestTermFallsBackToStdin(t *testing.T) {
	run, _ := fakeRunner(nil)
	s := &Source{
		Env:       display.Env{},
		Run:       run,
		Clipboard: func() (string, error) { return "", errors.New("unused") },
		Stdin:     strings.NewReader("piped term\n"),
	}

	term, err := s.Term(context.Background())
	if err != nil {
		t.Fatalf("Term() error = %v", err)
	}
	if term != "piped term" {
		t.Errorf("Term() = %q, want 'piped term'", term)
	}
}

func TestTermIgnoresTerminalStdin(t *testing.T) {
	run, _ := fakeRunner(nil)
	s := &Source{
		Env:   display.Env{StdinTerminal: true},
		Run:   run,
		Stdin: strings.NewReader("should not be read"),
	}

	_, err := s.Term(context.Background())
	if !errors.Is(err, ErrNoTerm) {
		t.Errorf("Term() error = %v, want ErrNoTerm", err)
	}
}

func TestTermNothingAvailable(t *testing.T) {
	run, _ := fakeRunner(nil)
	s := &Source{
		Env:       display.Env{HasDisplay: true, DisplayType: display.DisplayTypeMacOS},
		Run:       run,
		Clipboard: func() (string, error) { return "", errors.New("no clipboard") },
		Stdin:     strings.NewReader(""),
	}

	_, err := s.Term(context.Background())
	if !errors.Is(err, ErrNoTerm) {
		t.Errorf("Term() error = %v, want ErrNoTerm", err)
	}
}

func TestPrimaryCommands(t *testing.T) {
	if cmds := primaryCommands(display.DisplayTypeWindows); cmds != nil {
		t.Errorf("primaryCommands(windows) = %v, want nil", cmds)
	}
	if cmds := primaryCommands(display.DisplayTypeWayland); cmds[0][0] != "wl-paste" {
		t.Errorf("wayland should try wl-paste first, got %v", cmds)
	}
}
