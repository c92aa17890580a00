// Package tui is the terminal front end for study sessions.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studyplanner/internal/core/countdown"
	"studyplanner/internal/core/scheduler"
)

const maxLines = 500

// Controller is the study session the model drives.
type Controller interface {
	Start(source scheduler.QuestionSource) error
	Input(text string) bool
	SkipBreak() bool
}

// Timer is the optional focus timer shown in the header.
type Timer interface {
	Start()
	Pause()
	Resume()
	Snapshot() countdown.Snapshot
}

// Messages
type lineMsg struct {
	text string
}

type stateMsg struct {
	state scheduler.State
}

type breakMsg struct {
	remaining int
}

type timerMsg struct {
	snapshot countdown.Snapshot
}

type startedMsg struct {
	err error
}

// Model is the root Bubble Tea model.
type Model struct {
	width  int
	height int

	controller Controller
	source     scheduler.QuestionSource
	timer      Timer
	keys       KeyMap

	input    textinput.Model
	viewport viewport.Model
	lines    []string

	state    scheduler.State
	snapshot countdown.Snapshot
}

// NewModel creates the model. timer may be nil.
func NewModel(controller Controller, source scheduler.QuestionSource, timer Timer) Model {
	input := textinput.New()
	input.Placeholder = "answer, or pause / resume / reset / back"
	input.Prompt = "> "
	input.CharLimit = 500
	input.Focus()

	return Model{
		controller: controller,
		source:     source,
		timer:      timer,
		keys:       DefaultKeyMap(),
		input:      input,
		viewport:   viewport.New(80, 20),
	}
}

// Init starts the first study session.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.startCmd())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = max(msg.Width-4, 20)
		m.viewport.Height = max(msg.Height-8, 5)
		m.input.Width = max(msg.Width-4, 20)
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.SkipBreak):
			return m, m.skipBreakCmd()
		case key.Matches(msg, m.keys.Timer):
			return m, m.toggleTimerCmd()
		case key.Matches(msg, m.keys.Submit):
			text := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if text == "" {
				return m, nil
			}
			if text == "start" && !m.running() {
				return m, m.startCmd()
			}
			return m, m.inputCmd(text)
		}

	case lineMsg:
		m.lines = append(m.lines, msg.text)
		if len(m.lines) > maxLines {
			m.lines = append([]string(nil), m.lines[len(m.lines)-maxLines:]...)
		}
		m.refreshViewport()
		return m, nil

	case stateMsg:
		m.state = msg.state
		return m, nil

	case breakMsg:
		m.state.Round = scheduler.RoundBreak
		m.state.BreakRemaining = msg.remaining
		return m, nil

	case timerMsg:
		m.snapshot = msg.snapshot
		return m, nil

	case startedMsg:
		if msg.err != nil {
			m.lines = append(m.lines, "Type 'start' to try again.")
			m.refreshViewport()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Study Planner"))
	if timer := m.timerLine(); timer != "" {
		b.WriteString("  " + TimerStyle.Render(timer))
	}
	b.WriteString("\n")
	b.WriteString(StatusStyle.Render(statusLine(m.state)))
	b.WriteString("\n")
	b.WriteString(TranscriptStyle.Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) running() bool {
	return m.state.Status == scheduler.StatusRunning
}

func (m *Model) refreshViewport() {
	styled := make([]string, len(m.lines))
	for i, line := range m.lines {
		styled[i] = styleLine(line)
	}
	m.viewport.SetContent(lipgloss.NewStyle().Width(m.viewport.Width).Render(strings.Join(styled, "\n")))
	m.viewport.GotoBottom()
}

func (m Model) helpLine() string {
	parts := make([]string, 0, 4)
	for _, binding := range m.keys.ShortHelp() {
		if binding.Help().Key == "ctrl+t" && m.timer == nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s", binding.Help().Key, binding.Help().Desc))
	}
	return strings.Join(parts, " · ")
}

func (m Model) timerLine() string {
	if m.timer == nil {
		return ""
	}
	return timerLine(m.snapshot)
}

// Commands run controller calls off the event loop; the controller reports
// back through the Bridge.
func (m Model) startCmd() tea.Cmd {
	controller, source := m.controller, m.source
	return func() tea.Msg {
		return startedMsg{err: controller.Start(source)}
	}
}

func (m Model) inputCmd(text string) tea.Cmd {
	controller := m.controller
	return func() tea.Msg {
		controller.Input(text)
		return nil
	}
}

func (m Model) skipBreakCmd() tea.Cmd {
	controller := m.controller
	return func() tea.Msg {
		controller.SkipBreak()
		return nil
	}
}

func (m Model) toggleTimerCmd() tea.Cmd {
	timer := m.timer
	if timer == nil {
		return nil
	}
	return func() tea.Msg {
		snapshot := timer.Snapshot()
		switch snapshot.State {
		case countdown.StateRunning:
			timer.Pause()
		case countdown.StatePaused:
			timer.Resume()
		default:
			timer.Start()
		}
		return timerMsg{snapshot: timer.Snapshot()}
	}
}

func statusLine(state scheduler.State) string {
	switch state.Status {
	case scheduler.StatusRunning:
	case scheduler.StatusComplete:
		return "All sessions complete. Type 'start' for another run."
	case scheduler.StatusAbandoned, scheduler.StatusStopped:
		return "Session ended. Type 'start' for another run."
	default:
		return "Waiting for questions..."
	}

	line := fmt.Sprintf("Session %d of %d", state.SessionCount, state.TotalSessions)
	if state.Round == scheduler.RoundBreak {
		line += fmt.Sprintf(" · break %s", clock(state.BreakRemaining))
	} else {
		line += fmt.Sprintf(" · %s round", state.Round)
	}
	if state.Paused {
		line += " · paused"
	}
	return line
}

func timerLine(snapshot countdown.Snapshot) string {
	switch snapshot.State {
	case countdown.StateRunning, countdown.StatePaused:
		line := fmt.Sprintf("%s %s", phaseLabel(snapshot.Phase), clock(snapshot.Remaining))
		if snapshot.Paused() {
			line += " (paused)"
		}
		return line
	case countdown.StateStopped:
		return "timer done"
	default:
		return "timer idle"
	}
}

func phaseLabel(phase countdown.Phase) string {
	switch phase {
	case countdown.PhaseShortBreak:
		return "short break"
	case countdown.PhaseLongBreak:
		return "long break"
	default:
		return "focus"
	}
}

func clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func hasAnyPrefix(text string, prefixes ...string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(text, prefix) {
			return true
		}
	}
	return false
}
