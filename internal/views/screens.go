package views

import (
	"fmt"
	"strings"
)

type HomePanelData struct {
	TaskInputView    string
	MinutesInputView string
	SuggestionsView  string
	Clock            string
	ProgressView     string
	ProgressPct      int
	ActiveTask       string
	SpinnerView      string
	Running          bool
	FormError        string
}

type HistoryRowData struct {
	Task    string
	Minutes int
	Started string
	Status  string
}

type HistoryPanelData struct {
	TableView   string
	Rows        []HistoryRowData
	Completed   int
	Interrupted int
	Running     int
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
	Markdown    string
}

const (
	StatusCompleted   = "Completed"
	StatusInterrupted = "Interrupted"
	StatusInProgress  = "In progress"
)

func RenderHomePanel(data HomePanelData) string {
	var b strings.Builder
	b.WriteString("home:\n")
	if data.Running {
		b.WriteString(fmt.Sprintf("working on: %s %s\n", data.ActiveTask, data.SpinnerView))
	} else {
		b.WriteString("I'm working on\n")
		b.WriteString(data.TaskInputView + "\n")
		b.WriteString("during\n")
		b.WriteString(data.MinutesInputView + " minutes\n")
		if data.SuggestionsView != "" {
			b.WriteString(data.SuggestionsView + "\n")
		}
	}
	b.WriteString("\n" + clockStyle.Render(data.Clock) + "\n\n")
	b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
	if data.FormError != "" {
		b.WriteString(errorStyle.Render("form: "+data.FormError) + "\n")
	}
	if data.Running {
		b.WriteString("actions: [x]interrupt [2]history")
	} else {
		b.WriteString("actions: [enter]start [tab]switch field [up/down]suggestion [esc]leave form")
	}
	return strings.TrimSpace(b.String())
}

func RenderHistoryPanel(data HistoryPanelData) string {
	var b strings.Builder
	b.WriteString("history:\n")
	if len(data.Rows) == 0 {
		b.WriteString("(no cycles yet)")
		return b.String()
	}
	b.WriteString(data.TableView + "\n")
	b.WriteString(fmt.Sprintf("\n%s: %d | %s: %d | %s: %d",
		RenderStatus(StatusCompleted), data.Completed,
		RenderStatus(StatusInterrupted), data.Interrupted,
		RenderStatus(StatusInProgress), data.Running,
	))
	return strings.TrimSpace(b.String())
}

// RenderStatus colours a history status label.
func RenderStatus(status string) string {
	switch status {
	case StatusCompleted:
		return completeStyle.Render(status)
	case StatusInterrupted:
		return canceledStyle.Render(status)
	default:
		return ongoingStyle.Render(status)
	}
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	out := fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
	if md := RenderMarkdown(data.Markdown); md != "" {
		out += "\n\n" + md
	}
	return out
}

// WindowTitle mirrors the countdown in the terminal title while a cycle runs.
func WindowTitle(running bool, clock string) string {
	if !running {
		return "ignite"
	}
	return clock + " | ignite"
}
