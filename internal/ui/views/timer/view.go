package timer

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "zazen/internal/modules/session/dto"
	"zazen/internal/ui/theme"
)

const tickInterval = 500 * time.Millisecond

// ─── port ────────────────────────────────────────────────────────────────────

type SessionPort interface {
	Start(ctx context.Context, input sessiondto.StartInput) (sessiondto.StateOutput, error)
	Pause(ctx context.Context) sessiondto.StateOutput
	Resume(ctx context.Context) sessiondto.StateOutput
	Finish(ctx context.Context) sessiondto.StateOutput
	Reset(ctx context.Context) sessiondto.StateOutput
	Recompute(ctx context.Context, now time.Time) sessiondto.StateOutput
	State(ctx context.Context) sessiondto.StateOutput
}

// ─── messages ────────────────────────────────────────────────────────────────

type StateMsg struct {
	State sessiondto.StateOutput
	Err   error
}

type TickMsg time.Time

// SessionFinishedMsg bubbles up so other views can refresh.
type SessionFinishedMsg struct{}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     SessionPort
	bar      progress.Model
	duration textinput.Model
	state    sessiondto.StateOutput
	errText  string
	finished bool
	width    int
	height   int
}

func New(port SessionPort) Model {
	bar := progress.New(
		progress.WithGradient(string(theme.Sapphire), string(theme.Lavender)),
		progress.WithoutPercentage(),
	)

	input := textinput.New()
	input.Placeholder = "minutes"
	input.CharLimit = 4
	input.Width = 10
	input.Prompt = "duration: "
	input.PromptStyle = theme.Muted
	input.Focus()

	return Model{port: port, bar: bar, duration: input}
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		return StateMsg{State: m.port.State(context.Background())}
	}
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		barWidth := m.width - 12
		if barWidth > 60 {
			barWidth = 60
		}
		if barWidth < 10 {
			barWidth = 10
		}
		m.bar.Width = barWidth
		return m, nil

	case StateMsg:
		if msg.Err != nil {
			m.errText = msg.Err.Error()
			return m, nil
		}
		m.errText = ""
		wasRunning := m.state.Status == "running"
		m.state = msg.State
		var cmds []tea.Cmd
		if m.state.Status == "running" && !wasRunning {
			cmds = append(cmds, tick())
		}
		if m.state.Status == "finished" && !m.finished {
			m.finished = true
			cmds = append(cmds, func() tea.Msg { return SessionFinishedMsg{} })
		}
		if m.state.Status != "finished" {
			m.finished = false
		}
		return m, tea.Batch(cmds...)

	case TickMsg:
		if m.state.Status != "running" {
			return m, nil
		}
		return m, tea.Batch(m.recomputeCmd(), tick())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.duration, cmd = m.duration.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.state.Status {
	case "idle", "":
		switch msg.String() {
		case "enter":
			return m, m.startCmd()
		default:
			var cmd tea.Cmd
			m.duration, cmd = m.duration.Update(msg)
			return m, cmd
		}

	case "running":
		switch msg.String() {
		case "p", " ":
			return m, m.transitionCmd(m.port.Pause)
		case "f":
			return m, m.transitionCmd(m.port.Finish)
		}

	case "paused":
		switch msg.String() {
		case "p", " ":
			return m, m.transitionCmd(m.port.Resume)
		case "f":
			return m, m.transitionCmd(m.port.Finish)
		}

	case "finished":
		if msg.String() == "r" || msg.String() == "enter" {
			return m, m.transitionCmd(m.port.Reset)
		}
	}
	return m, nil
}

// CapturingInput reports whether keystrokes belong to the duration
// field, so global bindings must stand aside.
func (m Model) CapturingInput() bool {
	return m.state.Status == "" || m.state.Status == "idle"
}

// ─── commands ────────────────────────────────────────────────────────────────

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) startCmd() tea.Cmd {
	raw := strings.TrimSpace(m.duration.Value())
	seconds := 0
	if raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil {
			return func() tea.Msg {
				return StateMsg{State: m.state, Err: fmt.Errorf("duration must be a whole number of minutes")}
			}
		}
		seconds = minutes * 60
	}
	return func() tea.Msg {
		state, err := m.port.Start(context.Background(), sessiondto.StartInput{DurationSeconds: seconds})
		return StateMsg{State: state, Err: err}
	}
}

func (m Model) transitionCmd(fn func(context.Context) sessiondto.StateOutput) tea.Cmd {
	return func() tea.Msg {
		return StateMsg{State: fn(context.Background())}
	}
}

func (m Model) recomputeCmd() tea.Cmd {
	return func() tea.Msg {
		return StateMsg{State: m.port.Recompute(context.Background(), time.Now())}
	}
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	var b strings.Builder

	switch m.state.Status {
	case "running", "paused":
		b.WriteString(theme.Title.Render(formatClock(m.state.RemainingSeconds)))
		b.WriteString("\n\n")
		b.WriteString(m.bar.ViewAs(m.state.Progress))
		b.WriteString("\n\n")
		if m.state.Status == "paused" {
			b.WriteString(theme.Hot.Render("paused"))
			b.WriteString(theme.Muted.Render("   p/space: resume  f: finish"))
		} else {
			b.WriteString(theme.Calm.Render("sitting"))
			b.WriteString(theme.Muted.Render("   p/space: pause  f: finish"))
		}
		b.WriteString("\n")
		b.WriteString(theme.Muted.Render(fmt.Sprintf("%s of %s elapsed",
			formatClock(m.state.ElapsedSeconds), formatClock(m.state.TotalSeconds))))

	case "finished":
		b.WriteString(theme.Title.Render("session complete"))
		b.WriteString("\n\n")
		b.WriteString(m.bar.ViewAs(1))
		b.WriteString("\n\n")
		b.WriteString(theme.Calm.Render(fmt.Sprintf("sat for %s", formatClock(m.state.ElapsedSeconds))))
		b.WriteString("\n")
		b.WriteString(theme.Muted.Render("r/enter: new session"))

	default:
		b.WriteString(theme.Title.Render("zazen"))
		b.WriteString("\n\n")
		b.WriteString(m.duration.View())
		b.WriteString("\n\n")
		b.WriteString(theme.Muted.Render("enter: begin (empty uses your default)"))
	}

	if m.errText != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Alert.Render(m.errText))
	}

	content := theme.Pane.Render(b.String())
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func formatClock(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	minutes := totalSeconds / 60
	seconds := totalSeconds % 60
	if minutes >= 60 {
		return fmt.Sprintf("%d:%02d:%02d", minutes/60, minutes%60, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
