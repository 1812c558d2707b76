package update

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/ignite/internal/countdown"
	"github.com/sandeepkv93/ignite/internal/cycles"
	"github.com/sandeepkv93/ignite/internal/model"
)

const storageUnavailableText = "storage unavailable: history is kept in memory for this session"

// syncDriver binds the countdown driver to the store's active cycle. It
// reports true when a new poll registration is needed.
func (m *Model) syncDriver() bool {
	if m.store == nil {
		m.driver = nil
		m.reading = countdown.Reading{}
		return false
	}
	active, ok := m.store.ActiveCycle()
	if !ok {
		m.driver = nil
		m.reading = countdown.Reading{}
		return false
	}
	if m.driver != nil && m.driver.CycleID() == active.ID {
		return false
	}
	m.driver = countdown.New(active, m.now(), m.store)
	m.reading = m.driver.Reading()
	return true
}

// pollCmd registers the next countdown tick for cycleID.
func pollCmd(cycleID string, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return CountdownTickMsg{CycleID: cycleID, At: t}
	})
}

// immediateTickCmd fires the first tick right away so a cycle that ran out
// while the app was closed completes without waiting a full interval.
func (m Model) immediateTickCmd(cycleID string) tea.Cmd {
	now := m.now
	return func() tea.Msg {
		return CountdownTickMsg{CycleID: cycleID, At: now()}
	}
}

func (m Model) onCountdownTick(msg CountdownTickMsg) (Model, tea.Cmd) {
	if m.driver == nil || m.driver.CycleID() != msg.CycleID || m.driver.Stopped() {
		// registration belongs to a cycle that is no longer active
		return m, nil
	}
	reading, err := m.driver.Tick(m.ctx, msg.At)
	m.reading = reading
	if err != nil {
		m.reportStoreError(err)
	}
	if !reading.Done {
		return m, tea.Batch(pollCmd(msg.CycleID, m.tickInterval), m.titleCmd())
	}

	task := m.taskForCycle(msg.CycleID)
	m.syncDriver()
	m.Form = FormState{Active: true, Field: FieldTask}
	if err == nil || errors.Is(err, cycles.ErrStorageUnavailable) {
		m.notify("Cycle complete", fmt.Sprintf("%s finished after %d minutes", task, reading.Target/60), "info")
		if err == nil {
			m.Status = StatusBar{Text: fmt.Sprintf("cycle complete: %s", task), IsError: false}
		}
	}
	return m, m.titleCmd()
}

// startCycle is the form collaborator: it validates before handing the
// request to the store.
func (m Model) startCycle(task string, minutes int) (Model, tea.Cmd, error) {
	if err := model.ValidateRequest(task, minutes); err != nil {
		return m, nil, err
	}
	if m.store == nil {
		return m, nil, errors.New("cycle store not configured")
	}
	created, err := m.store.CreateCycle(m.ctx, task, minutes)
	if err != nil && !errors.Is(err, cycles.ErrStorageUnavailable) {
		return m, nil, err
	}
	if err != nil {
		m.reportStoreError(err)
	} else {
		m.Status = StatusBar{Text: fmt.Sprintf("cycle started: %s (%d min)", created.Task, created.DurationMinutes), IsError: false}
	}

	m.taskInput.SetValue("")
	m.Form = FormState{Active: false, Field: FieldTask}
	m.taskInput.Blur()
	m.minutesInput.Blur()

	if !m.syncDriver() {
		return m, m.titleCmd(), nil
	}
	return m, tea.Batch(pollCmd(created.ID, m.tickInterval), m.runSpinner.Tick, m.titleCmd()), nil
}

func (m Model) interruptCycle() (Model, tea.Cmd, error) {
	if m.store == nil {
		return m, nil, nil
	}
	task := ""
	if active, ok := m.store.ActiveCycle(); ok {
		task = active.Task
	}
	err := m.store.InterruptActiveCycle(m.ctx)
	if errors.Is(err, cycles.ErrNoActiveCycle) {
		return m, nil, nil
	}
	if err != nil && !errors.Is(err, cycles.ErrStorageUnavailable) {
		return m, nil, err
	}
	if err != nil {
		m.reportStoreError(err)
	} else {
		m.Status = StatusBar{Text: fmt.Sprintf("cycle interrupted: %s", task), IsError: false}
	}
	m.syncDriver()
	m.Form = FormState{Active: true, Field: FieldTask}
	return m, m.titleCmd(), nil
}

func (m *Model) reportStoreError(err error) {
	if err == nil || errors.Is(err, cycles.ErrNoActiveCycle) {
		return
	}
	m.LastError = err
	if errors.Is(err, cycles.ErrStorageUnavailable) {
		m.Status = StatusBar{Text: storageUnavailableText, IsError: true}
		return
	}
	m.Status = StatusBar{Text: err.Error(), IsError: true}
}

func (m Model) taskForCycle(id string) string {
	if m.store == nil {
		return id
	}
	for _, c := range m.store.History() {
		if c.ID == id {
			return c.Task
		}
	}
	return id
}

func (m Model) running() bool {
	return m.driver != nil && !m.driver.Stopped()
}
