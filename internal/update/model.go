package update

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/ignite/internal/config"
	"github.com/sandeepkv93/ignite/internal/countdown"
	"github.com/sandeepkv93/ignite/internal/cycles"
)

type View string

const (
	ViewHome    View = "Home"
	ViewHistory View = "History"
)

type FormField string

const (
	FieldTask    FormField = "task"
	FieldMinutes FormField = "minutes"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Home    string
	History string
	Help    string
	Quit    string
}

type FormState struct {
	Active bool
	Field  FormField
	Error  string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentView    View
	Form           FormState
	Palette        CommandPaletteState
	HelpVisible    bool
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error
	Notifications  []Notification
	DesktopEnabled bool
	notifier       DesktopNotifier

	ctx          context.Context
	store        *cycles.Store
	driver       *countdown.Driver
	reading      countdown.Reading
	tickInterval time.Duration
	now          func() time.Time
	width        int

	// Bubble components used for rich TUI controls
	taskInput    textinput.Model
	minutesInput textinput.Model
	commandInput textinput.Model
	suggestions  list.Model
	historyTable table.Model
	cycleBar     progress.Model
	runSpinner   spinner.Model
	helpModel    help.Model
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// CountdownTickMsg is one poll of the countdown registered for CycleID.
type CountdownTickMsg struct {
	CycleID string
	At      time.Time
}

func NewModel(ctx context.Context, store *cycles.Store, cfg config.RuntimeConfig) Model {
	return NewModelWithRuntime(ctx, store, cfg, nil, nil)
}

// NewModelWithRuntime lets callers swap the desktop notifier and wall clock.
func NewModelWithRuntime(ctx context.Context, store *cycles.Store, cfg config.RuntimeConfig, notifier DesktopNotifier, now func() time.Time) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if now == nil {
		now = time.Now
	}
	m := Model{
		CurrentView:    ViewHome,
		Form:           FormState{Active: true, Field: FieldTask},
		DesktopEnabled: cfg.DesktopNotifications,
		notifier:       NoopDesktopNotifier{},
		ctx:            ctx,
		store:          store,
		tickInterval:   cfg.TickInterval,
		now:            now,
		Keys: GlobalKeyMap{
			Home:    "1",
			History: "2",
			Help:    "?",
			Quit:    "q",
		},
	}
	if notifier != nil {
		m.notifier = notifier
	}
	if m.tickInterval <= 0 {
		m.tickInterval = countdown.DefaultInterval
	}
	m.initBubbleComponents(cfg)
	m.syncDriver()
	if m.driver != nil {
		m.Form.Active = false
	}
	if store != nil && store.Degraded() {
		m.Status = StatusBar{Text: storageUnavailableText, IsError: true}
	}
	m.syncBubbleData()
	return m
}

func (m *Model) initBubbleComponents(cfg config.RuntimeConfig) {
	m.taskInput = textinput.New()
	m.taskInput.Prompt = "task> "
	m.taskInput.Placeholder = "Give your project a name"
	m.taskInput.CharLimit = 128
	m.taskInput.Width = 42

	m.minutesInput = textinput.New()
	m.minutesInput.Prompt = "min> "
	m.minutesInput.Placeholder = "00"
	m.minutesInput.CharLimit = 2
	m.minutesInput.Width = 4
	if cfg.DefaultMinutes > 0 {
		m.minutesInput.SetValue(strconv.Itoa(cfg.DefaultMinutes))
	}

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	items := make([]list.Item, 0, len(cfg.TaskSuggestions))
	for _, s := range cfg.TaskSuggestions {
		items = append(items, listItem{title: s, description: "suggestion"})
	}
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	m.suggestions = list.New(items, delegate, 40, 6)
	m.suggestions.Title = "Suggestions"
	m.suggestions.SetShowHelp(false)
	m.suggestions.SetShowStatusBar(false)
	m.suggestions.SetFilteringEnabled(false)

	cols := []table.Column{
		{Title: "Task", Width: 13},
		{Title: "Duration", Width: 10},
		{Title: "Started", Width: 14},
		{Title: "Status", Width: 11},
	}
	m.historyTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(10))

	m.cycleBar = progress.New(progress.WithDefaultGradient(), progress.WithWidth(36))

	m.runSpinner = spinner.New()
	m.runSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
}
