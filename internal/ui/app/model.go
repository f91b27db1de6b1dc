package app

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "zazen/internal/modules/session/dto"
	"zazen/internal/ui/theme"
	historyview "zazen/internal/ui/views/history"
	timerview "zazen/internal/ui/views/timer"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type sessionPort interface {
	timerview.SessionPort
	OnBecameActive(ctx context.Context, now time.Time) sessiondto.StateOutput
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabTimer tabID = iota
	tabHistory
	tabCount
)

var tabLabels = [tabCount]string{"Timer", "History"}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab    key.Binding
	Help   key.Binding
	Quit   key.Binding
	Begin  key.Binding
	Pause  key.Binding
	Finish key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Begin:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "begin")),
		Pause:  key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p", "pause/resume")),
		Finish: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "finish early")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Begin, k.Pause, k.Finish},
		{k.Tab, k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the help
// overlay, and the resync-on-focus signal; session logic lives behind
// the port interfaces.
type Model struct {
	session sessionPort

	timerView   timerview.Model
	historyView historyview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	status    string
	width     int
	height    int
}

func NewModel(session sessionPort, history historyview.HistoryPort) Model {
	return Model{
		session:     session,
		timerView:   timerview.New(session),
		historyView: historyview.New(history),
		activeTab:   tabTimer,
		keys:        defaultKeys(),
		help:        help.New(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.timerView.Init(), m.historyView.Init())
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.width
		m.propagateSize()

	// The terminal regained focus or the process was resumed; wall
	// clock time may have jumped while we were away.
	case tea.FocusMsg:
		return m, m.resyncCmd()
	case tea.ResumeMsg:
		return m, m.resyncCmd()

	case timerview.SessionFinishedMsg:
		m.status = "session recorded"
		cmds = append(cmds, m.historyView.Reload())

	case timerview.StateMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
		} else {
			m.status = msg.State.Status
		}

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if !m.capturingInput() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "tab":
				m.activeTab = (m.activeTab + 1) % tabCount
				if m.activeTab == tabHistory {
					cmds = append(cmds, m.historyView.Reload())
				}
			case "shift+tab":
				m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			case "?":
				m.showHelp = !m.showHelp
				return m, nil
			}
		} else if msg.String() == "tab" {
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, tea.Batch(cmds...)
		}
	}

	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabTimer:
		m.timerView, tabCmd = m.timerView.Update(msg)
	case tabHistory:
		m.historyView, tabCmd = m.historyView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	// Ticks and state changes must reach the timer even while the
	// history tab is in front, or the countdown would stall.
	if m.activeTab != tabTimer {
		switch msg.(type) {
		case timerview.TickMsg, timerview.StateMsg:
			var cmd tea.Cmd
			m.timerView, cmd = m.timerView.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	if m.showHelp {
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	} else {
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabTimer:
		return m.timerView.View()
	case tabHistory:
		return m.historyView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "zazen  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:switch  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) capturingInput() bool {
	switch m.activeTab {
	case tabTimer:
		return m.timerView.CapturingInput()
	case tabHistory:
		return m.historyView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.timerView, _ = m.timerView.Update(sz)
	m.historyView, _ = m.historyView.Update(sz)
}

func (m Model) resyncCmd() tea.Cmd {
	return func() tea.Msg {
		return timerview.StateMsg{State: m.session.OnBecameActive(context.Background(), time.Now())}
	}
}
