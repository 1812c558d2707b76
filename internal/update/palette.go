package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/ignite/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.closePalette()
		return m, nil
	}

	var follow tea.Cmd
	m.Status = StatusBar{}
	res, err := commands.Execute(cmd, commands.Handlers{
		Start: func(a commands.StartArgs) (commands.Result, error) {
			next, c, startErr := m.startCycle(a.Task, a.Minutes)
			if startErr != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: startErr.Error()}
			}
			m, follow = next, c
			m.CurrentView = ViewHome
			return commands.Result{Message: fmt.Sprintf("started %d minute cycle: %s", a.Minutes, strings.TrimSpace(a.Task))}, nil
		},
		Interrupt: func() (commands.Result, error) {
			if !m.running() {
				return commands.Result{Message: "no cycle running"}, nil
			}
			next, c, intErr := m.interruptCycle()
			if intErr != nil {
				return commands.Result{}, intErr
			}
			m, follow = next, c
			return commands.Result{Message: "cycle interrupted"}, nil
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			switch s.Subject {
			case "history":
				m.CurrentView = ViewHistory
			default:
				m.CurrentView = ViewHome
			}
			return commands.Result{Message: fmt.Sprintf("show %s", s.Subject)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	} else if !m.Status.IsError {
		m.Status = StatusBar{Text: res.Message, IsError: false}
	}

	m.closePalette()
	return m, follow
}
