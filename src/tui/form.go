package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/apimgr/websearch/src/engine"
)

// formField is one question of the add-engine form
type formField struct {
	prompt      string
	placeholder string
	required    bool
}

var engineFields = []formField{
	{"What is the name of the search engine?", "google", true},
	{"What is the engine URL pattern?", "https://www.google.com/search?q={q}", true},
	{"What pattern are you using?", "{q}", true},
	{"What regex should be applied to the search term?", `\s+`, false},
	{"What should the regex be replaced with?", "+", false},
}

// formModel asks the engineFields questions one at a time
type formModel struct {
	inputs    []textinput.Model
	focus     int
	err       string
	done      bool
	cancelled bool
}

func newFormModel(defaults []string) formModel {
	inputs := make([]textinput.Model, len(engineFields))
	for i, f := range engineFields {
		ti := textinput.New()
		ti.Placeholder = f.placeholder
		ti.Width = 60
		if i < len(defaults) {
			ti.SetValue(defaults[i])
		}
		inputs[i] = ti
	}
	inputs[0].Focus()
	return formModel{inputs: inputs}
}

func (m formModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "shift+tab", "up":
			if m.focus > 0 {
				m.setFocus(m.focus - 1)
			}
			return m, nil
		case "enter", "tab", "down":
			return m.advance()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m formModel) advance() (tea.Model, tea.Cmd) {
	if engineFields[m.focus].required && strings.TrimSpace(m.inputs[m.focus].Value()) == "" {
		m.err = "a value is required"
		return m, nil
	}
	m.err = ""

	if m.focus == len(m.inputs)-1 {
		if err := m.engine().Validate(); err != nil {
			m.err = err.Error()
			return m, nil
		}
		m.done = true
		return m, tea.Quit
	}
	m.setFocus(m.focus + 1)
	return m, nil
}

func (m *formModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

func (m formModel) values() []string {
	out := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		out[i] = in.Value()
	}
	return out
}

func (m formModel) engine() engine.Engine {
	v := m.values()
	return engine.New(strings.TrimSpace(v[0]), v[1], v[2], v[3], v[4])
}

func (m formModel) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Add search engine"))
	sb.WriteString("\n\n")

	for i, f := range engineFields {
		switch {
		case i < m.focus:
			sb.WriteString(doneStyle.Render(fmt.Sprintf("✓ %s %s", f.prompt, m.inputs[i].Value())))
			sb.WriteString("\n")
		case i == m.focus:
			sb.WriteString(labelStyle.Render(f.prompt))
			sb.WriteString("\n")
			sb.WriteString(inputStyle.Render(m.inputs[i].View()))
			sb.WriteString("\n")
		}
	}

	if m.err != "" {
		sb.WriteString(errorStyle.Render("Error: " + m.err))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Enter: next • Shift+Tab: back • Esc: cancel"))
	return sb.String()
}

// AddEngine runs the add-engine form. defaults pre-fill the answers in
// order: name, URL pattern, pattern, regex, replacement.
func AddEngine(in io.Reader, out io.Writer, defaults ...string) (engine.Engine, error) {
	p := tea.NewProgram(newFormModel(defaults), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return engine.Engine{}, err
	}

	m := final.(formModel)
	if m.cancelled || !m.done {
		return engine.Engine{}, ErrCancelled
	}
	return m.engine(), nil
}
