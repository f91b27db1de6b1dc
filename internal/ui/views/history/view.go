package history

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	historydto "zazen/internal/modules/history/dto"
	"zazen/internal/ui/theme"
)

const listLimit = 100

// ─── port ────────────────────────────────────────────────────────────────────

type HistoryPort interface {
	List(ctx context.Context, limit int) ([]historydto.RecordOutput, error)
	Today(ctx context.Context) (historydto.DaySummaryOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Records []historydto.RecordOutput
	Today   historydto.DaySummaryOutput
	Err     error
}

// ─── list item ───────────────────────────────────────────────────────────────

type recordItem struct {
	record historydto.RecordOutput
}

func (i recordItem) Title() string {
	return i.record.StartedAt.Format("Mon Jan 2 15:04")
}

func (i recordItem) Description() string {
	meditated := time.Duration(i.record.MeditatedSeconds) * time.Second
	planned := time.Duration(i.record.PlannedSeconds) * time.Second
	if i.record.Completed {
		return fmt.Sprintf("%s, completed", meditated)
	}
	return fmt.Sprintf("%s of %s, ended early", meditated, planned)
}

func (i recordItem) FilterValue() string {
	return i.record.StartedAt.Format("2006-01-02")
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port  HistoryPort
	list  list.Model
	today historydto.DaySummaryOutput
}

func New(port HistoryPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "History"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return Model{port: port, list: l}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

// Reload fetches records and the day summary in one command.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		records, err := m.port.List(context.Background(), listLimit)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		today, err := m.port.Today(context.Background())
		return LoadedMsg{Records: records, Today: today, Err: err}
	}
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case LoadedMsg:
		if msg.Err != nil {
			m.list.Title = "History: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "History"
		m.today = msg.Today
		items := make([]list.Item, len(msg.Records))
		for i, record := range msg.Records {
			items[i] = recordItem{record: record}
		}
		return m, m.list.SetItems(items)

	case tea.KeyMsg:
		if msg.String() == "r" && !m.Filtering() {
			return m, m.Reload()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	meditated := time.Duration(m.today.MeditatedSeconds) * time.Second
	summary := theme.Calm.Render(fmt.Sprintf("today: %d sittings, %s", m.today.Sessions, meditated))
	return m.list.View() + "\n" + summary
}
