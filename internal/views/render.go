package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultPaneWidth = 58
	minPaneWidth     = 40
)

type AppData struct {
	Header       string
	LeftPane     string
	RightPane    string
	StatusLine   string
	StatusError  bool
	Footer       string
	Notification string
	// Width is the terminal width; zero keeps the default pane size.
	Width int
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	clockStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Padding(0, 2)

	completeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	canceledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	ongoingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// PaneWidth splits the terminal between one or two bordered panes.
func PaneWidth(termWidth int, split bool) int {
	if termWidth <= 0 {
		return defaultPaneWidth
	}
	w := termWidth - 2
	if split {
		w = termWidth/2 - 2
	}
	if w < minPaneWidth {
		return minPaneWidth
	}
	return w
}

func RenderApp(data AppData) string {
	split := strings.TrimSpace(data.RightPane) != ""
	width := PaneWidth(data.Width, split)
	row := panelStyle.Width(width).Render(data.LeftPane)
	if split {
		right := panelStyle.Width(width).Render(data.RightPane)
		row = lipgloss.JoinHorizontal(lipgloss.Top, row, right)
	}

	status := statusStyle.Render(data.StatusLine)
	if data.StatusError {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{headerStyle.Render(data.Header), row, status}
	if data.Notification != "" {
		lines = append(lines, panelStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown falls back to the raw text when glamour cannot render it.
func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
