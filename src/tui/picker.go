package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/apimgr/websearch/src/engine"
)

// pickerStage tracks which half of the picker has focus
type pickerStage int

const (
	stageEngine pickerStage = iota
	stageTerm
)

// engineItem shows an engine in the picker list
type engineItem struct {
	engine engine.Engine
}

func (i engineItem) Title() string       { return i.engine.Name }
func (i engineItem) Description() string { return i.engine.URLPattern }
func (i engineItem) FilterValue() string { return i.engine.Name }

// pickerModel lets the user choose an engine, then type a term while the
// resulting URL is previewed.
type pickerModel struct {
	list      list.Model
	term      textinput.Model
	stage     pickerStage
	chosen    engine.Engine
	done      bool
	cancelled bool
}

func newPickerModel(engines []engine.Engine, preselect string) pickerModel {
	items := make([]list.Item, 0, len(engines))
	selected := 0
	for i, e := range engines {
		items = append(items, engineItem{engine: e})
		if e.Name == preselect {
			selected = i
		}
	}

	l := list.New(items, list.NewDefaultDelegate(), 72, 16)
	l.Title = "Search engines"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)
	l.DisableQuitKeybindings()
	l.Styles.Title = titleStyle
	l.Select(selected)

	term := textinput.New()
	term.Placeholder = "search term..."
	term.Width = 60

	return pickerModel{list: l, term: term}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-4)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancelled = true
			return m, tea.Quit
		}
		if m.stage == stageTerm {
			return m.updateTerm(msg)
		}
		if m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "esc":
				if m.list.FilterState() == list.Unfiltered {
					m.cancelled = true
					return m, tea.Quit
				}
			case "enter":
				if item, ok := m.list.SelectedItem().(engineItem); ok {
					m.chosen = item.engine
					m.stage = stageTerm
					cmd := m.term.Focus()
					return m, cmd
				}
				return m, nil
			}
		}
	}

	if m.stage == stageTerm {
		var cmd tea.Cmd
		m.term, cmd = m.term.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) updateTerm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.stage = stageEngine
		m.term.Blur()
		return m, nil
	case "enter":
		m.done = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.term, cmd = m.term.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	if m.stage == stageEngine {
		return m.list.View()
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Search"))
	sb.WriteString("\n\n")
	sb.WriteString(labelStyle.Render("Engine: "))
	sb.WriteString(selectedStyle.Render(m.chosen.Name))
	sb.WriteString("\n")
	sb.WriteString(inputStyle.Render(m.term.View()))
	sb.WriteString("\n")
	if url, err := m.chosen.URL(m.term.Value()); err != nil {
		sb.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
	} else {
		sb.WriteString(urlStyle.Render(url))
	}
	sb.WriteString("\n\n")
	sb.WriteString(helpStyle.Render("Enter: open • Esc: back"))
	return sb.String()
}

// Pick runs the engine picker and returns the chosen engine and term.
// preselect moves the selection to the engine with that name.
func Pick(in io.Reader, out io.Writer, engines []engine.Engine, preselect string) (engine.Engine, string, error) {
	p := tea.NewProgram(newPickerModel(engines, preselect), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return engine.Engine{}, "", err
	}

	m := final.(pickerModel)
	if m.cancelled || !m.done {
		return engine.Engine{}, "", ErrCancelled
	}
	return m.chosen, m.term.Value(), nil
}
