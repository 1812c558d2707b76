package update

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/ignite/internal/views"
)

// helpKeyMap feeds the bubbles help component: globals first, then the
// bindings of the current view.
type helpKeyMap struct {
	global  []key.Binding
	context []key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding {
	return append(append([]key.Binding{}, k.global...), k.context...)
}

func (k helpKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.global, k.context}
}

const quickReference = `## Palette
- ` + "`start 25 Write report`" + ` starts a cycle
- ` + "`interrupt`" + ` stops the running cycle
- ` + "`show home`" + ` / ` + "`show history`" + ` switch views

Cycles run from 1 to 60 minutes.`

func binding(keys, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(keys), key.WithHelp(keys, desc))
}

func (m Model) keyMap() helpKeyMap {
	k := helpKeyMap{
		global: []key.Binding{
			binding(m.Keys.Home, "home"),
			binding(m.Keys.History, "history"),
			binding("/", "command palette"),
			binding(m.Keys.Help, "toggle help"),
			binding(m.Keys.Quit, "quit"),
		},
	}
	switch {
	case m.CurrentView == ViewHistory:
		k.context = []key.Binding{binding("up/down", "scroll history")}
	case m.running():
		k.context = []key.Binding{binding("x", "interrupt cycle")}
	default:
		k.context = []key.Binding{
			binding("enter", "start cycle / edit form"),
			binding("tab", "switch task/minutes"),
			binding("up/down", "pick suggestion"),
			binding("esc", "leave form"),
		}
	}
	return k
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	k := m.keyMap()
	lines := make([]string, 0, len(k.context))
	for _, b := range k.context {
		h := b.Help()
		lines = append(lines, "- "+h.Key+": "+h.Desc)
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    lines,
		HelpView:    m.helpModel.View(k),
		Markdown:    quickReference,
	})
}
