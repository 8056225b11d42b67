package terminal

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chime-frame/pkg/chimes"
)

// stepper is what a row needs from a selector; every *selector.Selector
// satisfies it.
type stepper interface {
	Label() string
	CanDecrease() bool
	CanIncrease() bool
	Decrease()
	Increase()
}

type tickMsg time.Time

// Model renders the chimes settings screen in a terminal.
type Model struct {
	chimes *chimes.Model
	ringer *chimes.Ringer
	rows   []stepper
	titles []string
	focus  int

	keys KeyMap
	help help.Model

	quitting bool
	err      error
}

// NewModel opens a chimes model over store and actuator.
func NewModel(store chimes.Store, actuator chimes.Actuator) (Model, error) {
	cm, err := chimes.New(store, actuator)
	if err != nil {
		return Model{}, err
	}

	return Model{
		chimes: cm,
		ringer: chimes.NewRinger(store, actuator, time.Now()),
		rows:   []stepper{cm.Frequency(), cm.Duration()},
		titles: []string{"Frequency", "Duration"},
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}, nil
}

// Run shows the screen until the user quits. The settings are saved on the
// way out.
func Run(store chimes.Store, actuator chimes.Actuator) error {
	m, err := NewModel(store, actuator)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		// Save whatever was changed before the program died.
		if closeErr := m.chimes.Close(); closeErr != nil {
			return fmt.Errorf("%w (and %v)", err, closeErr)
		}
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.err
	}
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.ringer.Tick(time.Time(msg))
		return m, tick()

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.err = m.chimes.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.focus = (m.focus + len(m.rows) - 1) % len(m.rows)
		case key.Matches(msg, m.keys.Down):
			m.focus = (m.focus + 1) % len(m.rows)
		case key.Matches(msg, m.keys.Decrease):
			if row := m.rows[m.focus]; row.CanDecrease() {
				row.Decrease()
			}
		case key.Matches(msg, m.keys.Increase):
			if row := m.rows[m.focus]; row.CanIncrease() {
				row.Increase()
			}
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	sections = append(sections, titleStyle.Render("◷ Chimes"))

	for i, row := range m.rows {
		sections = append(sections, m.renderRow(i, row))
	}

	next := mutedStyle.Render("Next chime " + m.ringer.NextChime().Format("15:04"))
	sections = append(sections, next, "", m.help.View(m.keys))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderRow(i int, row stepper) string {
	minus := disabledButtonStyle.Render("-")
	if row.CanDecrease() {
		minus = buttonStyle.Render("-")
	}
	plus := disabledButtonStyle.Render("+")
	if row.CanIncrease() {
		plus = buttonStyle.Render("+")
	}

	label := labelStyle.Render(strings.ReplaceAll(row.Label(), "\n", " "))
	line := lipgloss.JoinHorizontal(lipgloss.Center, minus, label, plus)

	style := rowStyle
	if i == m.focus {
		style = focusedRowStyle
	}
	return style.Render(mutedStyle.Render(m.titles[i]) + "\n" + line)
}

// Err returns the error from saving on quit, if any.
func (m Model) Err() error {
	return m.err
}
