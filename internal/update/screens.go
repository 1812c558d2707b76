package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/sandeepkv93/ignite/internal/model"
	"github.com/sandeepkv93/ignite/internal/views"
)

// syncBubbleData pushes store state into the bubble components after every
// update.
func (m *Model) syncBubbleData() {
	if m.Form.Active && !m.running() {
		if m.Form.Field == FieldMinutes {
			m.taskInput.Blur()
			m.minutesInput.Focus()
		} else {
			m.minutesInput.Blur()
			m.taskInput.Focus()
		}
	} else {
		m.taskInput.Blur()
		m.minutesInput.Blur()
	}

	rows := make([]table.Row, 0)
	for _, row := range m.historyRows() {
		rows = append(rows, table.Row{row.Task, formatMinutes(row.Minutes), row.Started, row.Status})
	}
	m.historyTable.SetRows(rows)
}

func (m Model) historyRows() []views.HistoryRowData {
	if m.store == nil {
		return nil
	}
	now := m.now()
	history := m.store.History()
	out := make([]views.HistoryRowData, 0, len(history))
	for _, c := range history {
		out = append(out, views.HistoryRowData{
			Task:    c.Task,
			Minutes: c.DurationMinutes,
			Started: humanize.RelTime(c.StartedAt, now, "ago", "from now"),
			Status:  statusLabel(c.Status()),
		})
	}
	return out
}

func statusLabel(s model.CycleStatus) string {
	switch s {
	case model.CycleStatusCompleted:
		return views.StatusCompleted
	case model.CycleStatusInterrupted:
		return views.StatusInterrupted
	default:
		return views.StatusInProgress
	}
}

func formatMinutes(n int) string {
	if n == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", n)
}

func (m Model) renderHomeView() string {
	progress := m.reading.Progress()
	activeTask := ""
	if m.running() {
		activeTask = m.taskForCycle(m.driver.CycleID())
	}
	suggestions := ""
	if m.Form.Active && m.Form.Field == FieldTask && len(m.suggestions.Items()) > 0 {
		suggestions = m.suggestions.View()
	}
	spin := ""
	if m.running() {
		spin = m.runSpinner.View()
	}
	return views.RenderHomePanel(views.HomePanelData{
		TaskInputView:    m.taskInput.View(),
		MinutesInputView: m.minutesInput.View(),
		SuggestionsView:  suggestions,
		Clock:            m.reading.Clock(),
		ProgressView:     m.cycleBar.ViewAs(progress),
		ProgressPct:      int(progress * 100),
		ActiveTask:       activeTask,
		SpinnerView:      spin,
		Running:          m.running(),
		FormError:        m.Form.Error,
	})
}

func (m Model) renderHistoryView() string {
	rows := m.historyRows()
	data := views.HistoryPanelData{
		TableView: m.historyTable.View(),
		Rows:      rows,
	}
	for _, r := range rows {
		switch r.Status {
		case views.StatusCompleted:
			data.Completed++
		case views.StatusInterrupted:
			data.Interrupted++
		default:
			data.Running++
		}
	}
	return views.RenderHistoryPanel(data)
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

// WindowTitle is the terminal title for the current countdown state.
func (m Model) WindowTitle() string {
	return views.WindowTitle(m.running(), m.reading.Clock())
}

func (m Model) titleCmd() tea.Cmd {
	return tea.SetWindowTitle(m.WindowTitle())
}
