// Package tui is the interactive terminal front-end for a check-in.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/moodscape/pkg/catalog"
	"github.com/aretw0/moodscape/pkg/domain"
	"github.com/aretw0/moodscape/pkg/ports"
	"github.com/aretw0/moodscape/pkg/runner"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultWidth = 72

// Engine is what the TUI needs from the session owner.
type Engine interface {
	ports.Controller
	Themes() *catalog.Themes
}

// sessionMsg carries a snapshot from the controller subscription.
type sessionMsg domain.Session

// closedMsg is sent when the subscription ends.
type closedMsg struct{}

// Model is the bubbletea model for one check-in session.
type Model struct {
	engine      Engine
	updates     <-chan domain.Session
	unsubscribe func()
	sanitizer   runner.Sanitizer

	textarea textarea.Model
	spinner  spinner.Model
	session  domain.Session
	styles   Styles
	theme    domain.Theme

	// notice blocks the screen until any key is pressed.
	notice    string
	noticeGen uint64

	width int
}

// NewModel subscribes to engine and builds the initial model.
// maxInput limits the check-in text in bytes; zero uses the default.
func NewModel(engine Engine, maxInput int) Model {
	ta := textarea.New()
	ta.Placeholder = runner.Prompt
	ta.ShowLineNumbers = false
	ta.SetWidth(defaultWidth - 8)
	ta.SetHeight(3)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	updates, unsubscribe := engine.Subscribe()
	m := Model{
		engine:      engine,
		updates:     updates,
		unsubscribe: unsubscribe,
		sanitizer:   runner.Sanitizer{Limit: maxInput},
		textarea:    ta,
		spinner:     sp,
		width:       defaultWidth,
	}
	m.applySession(engine.Snapshot())
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		m.waitForSession(),
	)
}

func (m Model) waitForSession() tea.Cmd {
	updates := m.updates
	return func() tea.Msg {
		snap, ok := <-updates
		if !ok {
			return closedMsg{}
		}
		return sessionMsg(snap)
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionMsg:
		m.applySession(domain.Session(msg))
		return m, m.waitForSession()

	case closedMsg:
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.textarea.SetWidth(max(msg.Width-8, 20))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.unsubscribe()
			return m, tea.Quit
		}
		if m.notice != "" {
			m.notice = ""
			return m, nil
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.session.Phase {
	case domain.PhasePlaying:
		switch msg.String() {
		case "enter":
			m.engine.AdvanceStep()
		case "r", "esc":
			m.engine.Reset()
		case "q":
			m.unsubscribe()
			return m, tea.Quit
		}
		m.applySession(m.engine.Snapshot())
		return m, nil

	case domain.PhasePending:
		if msg.Type == tea.KeyEsc {
			m.engine.Reset()
			m.applySession(m.engine.Snapshot())
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyEsc:
		m.unsubscribe()
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	text, err := m.sanitizer.Clean(m.textarea.Value())
	if err != nil {
		m.notice = err.Error()
		return m, nil
	}

	err = m.engine.SubmitText(text)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrEmptySubmission):
		return m, nil
	default:
		m.notice = err.Error()
		return m, nil
	}

	m.applySession(m.engine.Snapshot())
	return m, m.spinner.Tick
}

// applySession stores snap and derives everything that depends on it.
func (m *Model) applySession(snap domain.Session) {
	prev := m.session.Phase
	m.session = snap
	m.theme = m.engine.Themes().Resolve(snap.Mood)
	m.styles = NewStyles(m.theme)

	if snap.Notice != "" && snap.Generation != m.noticeGen {
		m.notice = snap.Notice
		m.noticeGen = snap.Generation
	}

	switch snap.Phase {
	case domain.PhasePending:
		m.textarea.Blur()
	case domain.PhasePlaying:
		m.textarea.Reset()
		m.textarea.Blur()
	default:
		if prev == domain.PhasePending {
			if snap.Notice != "" {
				// Failed classification: give the text back for a retry.
				m.textarea.SetValue(snap.RawInput)
			} else {
				m.textarea.Reset()
			}
		}
		m.textarea.Focus()
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("MoodScape"))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(m.styles.Notice.Render(m.notice))
		b.WriteString("\n")
		b.WriteString(m.styles.Hint.Render("press any key to continue"))
		return m.styles.Screen.Width(m.width).Render(b.String())
	}

	switch m.session.Phase {
	case domain.PhasePending:
		b.WriteString(m.textarea.View())
		b.WriteString("\n\n")
		b.WriteString(m.spinner.View() + " Analyzing...")
		b.WriteString("\n")
		b.WriteString(m.styles.Hint.Render("esc: cancel"))

	case domain.PhasePlaying:
		b.WriteString(m.ritualView())

	default:
		b.WriteString(runner.Prompt)
		b.WriteString("\n\n")
		b.WriteString(m.textarea.View())
		b.WriteString("\n")
		b.WriteString(m.styles.Hint.Render("enter: check in • esc: quit"))
	}

	return m.styles.Screen.Width(m.width).Render(b.String())
}

func (m Model) ritualView() string {
	s := m.session
	if s.Ritual == nil {
		return ""
	}

	var card strings.Builder
	card.WriteString(m.styles.Title.Render(s.Ritual.Title))
	card.WriteString("\n\n")
	card.WriteString(m.styles.Step.Render(s.CurrentStep()))
	card.WriteString("\n\n")
	card.WriteString(m.progress())
	card.WriteString(fmt.Sprintf("  Step %d of %d", s.Step+1, s.Ritual.Len()))

	next := "enter: Next Step"
	if s.IsLastStep() {
		next = "enter: Complete"
	}

	var b strings.Builder
	b.WriteString("Detected mood: " + s.Mood.String() + "\n")
	b.WriteString(m.styles.Card.Render(card.String()))
	b.WriteString("\n")
	b.WriteString(m.styles.Hint.Render(next + " • r: reset • q: quit"))
	return b.String()
}

func (m Model) progress() string {
	s := m.session
	dots := make([]string, s.Ritual.Len())
	for i := range dots {
		if i <= s.Step {
			dots[i] = m.styles.DotDone.Render("●")
		} else {
			dots[i] = m.styles.DotTodo.Render("○")
		}
	}
	return strings.Join(dots, " ")
}

// Run starts the interactive program and blocks until the user quits or ctx is done.
func Run(ctx context.Context, engine Engine, maxInput int) error {
	m := NewModel(engine, maxInput)
	defer m.unsubscribe()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
