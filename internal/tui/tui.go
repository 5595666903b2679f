// Package tui renders a live terminal view of the iterative repair loop:
// a spinner, the current round, and the tail of the event log.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/worksonmyai/patchdoctor/internal/engine"
	"github.com/worksonmyai/patchdoctor/internal/event"
)

// maxVisibleEvents bounds the event tail shown on screen.
const maxVisibleEvents = 12

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	roundStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("117"))
	codeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	msgStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	statusStyle = lipgloss.NewStyle().Bold(true)
)

type eventMsg event.Event

type doneMsg engine.Result

type model struct {
	input    string
	spin     spinner.Model
	events   <-chan event.Event
	done     <-chan engine.Result
	tail     []event.Event
	round    int
	result   engine.Result
	finished bool
}

func newModel(input string, events <-chan event.Event, done <-chan engine.Result) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return model{input: input, spin: s, events: events, done: done}
}

// Run displays the live view until the loop finishes or the user quits.
// The engine's result is returned either way; on early quit the view
// detaches and the loop is left to finish.
func Run(input string, events <-chan event.Event, done <-chan engine.Result) (engine.Result, error) {
	p := tea.NewProgram(newModel(input, events, done))
	out, runErr := p.Run()

	if m, ok := out.(model); ok && m.finished {
		return m.result, runErr
	}

	// Detached early: keep draining events so the engine never blocks on
	// its handler, then collect the result.
	go func() {
		for range events {
		}
	}()
	return <-done, runErr
}

func (m model) waitForActivity() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg(<-m.done)
		}
		return eventMsg(ev)
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.waitForActivity())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case eventMsg:
		ev := event.Event(msg)
		if ev.Code == "ITERATION_START" {
			m.round = ev.Iteration + 1
		}
		m.tail = append(m.tail, ev)
		if len(m.tail) > maxVisibleEvents {
			m.tail = m.tail[len(m.tail)-maxVisibleEvents:]
		}
		return m, m.waitForActivity()

	case doneMsg:
		m.finished = true
		m.result = engine.Result(msg)
		return m, tea.Quit
	}

	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("patchdoctor iterate") + " " + m.input + "\n\n")

	if m.finished {
		b.WriteString(statusLine(m.result) + "\n")
	} else {
		b.WriteString(fmt.Sprintf("%s %s\n", m.spin.View(), roundStyle.Render(fmt.Sprintf("round %d", m.round))))
	}
	b.WriteString("\n")

	for _, ev := range m.tail {
		b.WriteString(fmt.Sprintf("  %s %s\n", codeStyle.Render(ev.Code), msgStyle.Render(ev.Message)))
	}

	if !m.finished {
		b.WriteString("\n" + helpStyle.Render("q to detach") + "\n")
	}
	return b.String()
}

func statusLine(res engine.Result) string {
	label := statusStyle.Render(res.Status.String())
	switch res.Status {
	case engine.StatusConvergedByOracle, engine.StatusConvergedByNoProgress:
		return okStyle.Render("✓") + " " + label
	default:
		return warnStyle.Render("!") + " " + label
	}
}
