package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines every key binding used by the views. Views check only the
// bindings they care about, so some keys are shared between views.
type KeyMap struct {
	Quit  key.Binding
	Back  key.Binding
	Tab   key.Binding
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Enter key.Binding
	Help  key.Binding

	// Tabs
	TasksTab     key.Binding
	DashboardTab key.Binding
	FocusTab     key.Binding
	SettingsTab  key.Binding

	// Task list
	New      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Toggle   key.Binding
	Search   key.Binding
	Filter   key.Binding
	Sort     key.Binding
	Status   key.Binding
	Save     key.Binding
	ShowDone key.Binding

	// Focus timer
	StartPause key.Binding
	Reset      key.Binding
	Skip       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "decrease"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "increase"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "select"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),

		TasksTab: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "tasks"),
		),
		DashboardTab: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "dashboard"),
		),
		FocusTab: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "focus"),
		),
		SettingsTab: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "settings"),
		),

		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "done"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "priority"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Status: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "status"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		ShowDone: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "completed"),
		),

		StartPause: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "start/pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "skip"),
		),
	}
}
