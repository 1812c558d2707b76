package views

import (
	"strings"
	"testing"
)

func TestRenderHomePanelForm(t *testing.T) {
	out := RenderHomePanel(HomePanelData{
		TaskInputView:    "task> Write report",
		MinutesInputView: "min> 25",
		Clock:            "25:00",
		FormError:        "task is required",
	})
	for _, want := range []string{"I'm working on", "task> Write report", "min> 25 minutes", "25:00", "form: task is required", "[enter]start"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in home panel:\n%s", want, out)
		}
	}
}

func TestRenderHomePanelRunningHidesForm(t *testing.T) {
	out := RenderHomePanel(HomePanelData{
		TaskInputView: "task> hidden",
		ActiveTask:    "Design system",
		Clock:         "04:59",
		Running:       true,
	})
	if strings.Contains(out, "task> hidden") {
		t.Fatalf("form must be hidden while running:\n%s", out)
	}
	if !strings.Contains(out, "working on: Design system") || !strings.Contains(out, "[x]interrupt") {
		t.Fatalf("unexpected running panel:\n%s", out)
	}
}

func TestRenderHistoryPanel(t *testing.T) {
	if out := RenderHistoryPanel(HistoryPanelData{}); !strings.Contains(out, "(no cycles yet)") {
		t.Fatalf("expected empty marker, got %q", out)
	}
	out := RenderHistoryPanel(HistoryPanelData{
		TableView: "TABLE",
		Rows:      []HistoryRowData{{Task: "A", Minutes: 5, Status: StatusCompleted}},
		Completed: 1,
	})
	if !strings.Contains(out, "TABLE") || !strings.Contains(out, "Completed") {
		t.Fatalf("unexpected history panel: %q", out)
	}
}

func TestWindowTitle(t *testing.T) {
	if got := WindowTitle(false, "00:00"); got != "ignite" {
		t.Fatalf("idle title = %q", got)
	}
	if got := WindowTitle(true, "12:34"); got != "12:34 | ignite" {
		t.Fatalf("running title = %q", got)
	}
}

func TestRenderMarkdownEmpty(t *testing.T) {
	if RenderMarkdown("   ") != "" {
		t.Fatal("expected empty markdown to render empty")
	}
}

func TestPaneWidth(t *testing.T) {
	cases := []struct {
		term  int
		split bool
		want  int
	}{
		{0, true, defaultPaneWidth},
		{120, false, 118},
		{120, true, 58},
		{60, true, minPaneWidth},
	}
	for _, tc := range cases {
		if got := PaneWidth(tc.term, tc.split); got != tc.want {
			t.Fatalf("PaneWidth(%d, %v) = %d, want %d", tc.term, tc.split, got, tc.want)
		}
	}
}
