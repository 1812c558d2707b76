package update

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/ignite/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.driver == nil {
		return m.titleCmd()
	}
	return tea.Batch(m.immediateTickCmd(m.driver.CycleID()), m.runSpinner.Tick, m.titleCmd())
}

// Update syncs bubble components after the handler returns; a deferred sync
// on the value receiver would be lost.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == "ctrl+c" {
				m.Quitting = true
				return m, tea.Quit
			}
			return m.handlePaletteKey(typed)
		}
		if m.CurrentView == ViewHome && m.Form.Active && !m.running() {
			return m.handleFormKey(typed)
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Home:
			m.CurrentView = ViewHome
			return m, nil
		case m.Keys.History:
			m.CurrentView = ViewHistory
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		switch m.CurrentView {
		case ViewHome:
			return m.handleHomeKey(typed)
		case ViewHistory:
			var cmd tea.Cmd
			m.historyTable, cmd = m.historyTable.Update(typed)
			return m, cmd
		}
	case tea.WindowSizeMsg:
		m.width = typed.Width
		// leave room for the "progress: " label and percentage
		m.cycleBar.Width = views.PaneWidth(typed.Width, true) - 20
		return m, nil
	case spinner.TickMsg:
		if m.running() {
			var cmd tea.Cmd
			m.runSpinner, cmd = m.runSpinner.Update(typed)
			return m, cmd
		}
	case CountdownTickMsg:
		return m.onCountdownTick(typed)
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	case "esc":
		m.Form.Active = false
		m.Form.Error = ""
		return m, nil
	case "enter":
		return m.submitForm()
	case "tab", "shift+tab":
		if m.Form.Field == FieldTask {
			m.Form.Field = FieldMinutes
		} else {
			m.Form.Field = FieldTask
		}
		return m, nil
	case "up", "down":
		if len(m.suggestions.Items()) == 0 {
			return m, nil
		}
		if msg.String() == "up" {
			m.suggestions.CursorUp()
		} else {
			m.suggestions.CursorDown()
		}
		if item, ok := m.suggestions.SelectedItem().(listItem); ok {
			m.taskInput.SetValue(item.title)
			m.taskInput.CursorEnd()
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.Form.Field == FieldMinutes {
		if msg.Type == tea.KeyRunes && !allDigits(msg.Runes) {
			return m, nil
		}
		m.minutesInput, cmd = m.minutesInput.Update(msg)
		return m, cmd
	}
	m.taskInput, cmd = m.taskInput.Update(msg)
	return m, cmd
}

func (m Model) submitForm() (Model, tea.Cmd) {
	task := strings.TrimSpace(m.taskInput.Value())
	minutes, err := strconv.Atoi(strings.TrimSpace(m.minutesInput.Value()))
	if err != nil {
		m.Form.Error = "minutes must be a number"
		m.Form.Field = FieldMinutes
		return m, nil
	}
	next, cmd, err := m.startCycle(task, minutes)
	if err != nil {
		m.Form.Error = err.Error()
		return m, nil
	}
	next.Form.Error = ""
	return next, cmd
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "i":
		if !m.running() {
			m.Form.Active = true
			m.Form.Field = FieldTask
		}
		return m, nil
	case "x":
		next, cmd, err := m.interruptCycle()
		if err != nil {
			m.reportStoreError(err)
			return m, nil
		}
		return next, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	status := ""
	if m.Status.Text != "" {
		status = "status: " + m.Status.Text
	}
	leftPane := ""
	switch m.CurrentView {
	case ViewHome:
		leftPane = m.renderHomeView()
	case ViewHistory:
		leftPane = m.renderHistoryView()
	}
	rightPane := strings.TrimSpace(m.renderCommandPalette() + "\n" + m.renderHelpIfVisible())

	cycleCount := 0
	if m.store != nil {
		cycleCount = len(m.store.History())
	}
	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("ignite | view: %s | cycles: %d", m.CurrentView, cycleCount),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Width:        m.width,
		Notification: m.renderNotificationsView(),
		Footer:       fmt.Sprintf("keys: %s home | %s history | / cmd | %s help | %s quit", m.Keys.Home, m.Keys.History, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewHome, ViewHistory:
		return true
	default:
		return false
	}
}
