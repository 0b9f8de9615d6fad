package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/taskmaster/internal/analytics"
	"github.com/tgienger/taskmaster/internal/focus"
	"github.com/tgienger/taskmaster/internal/notify"
	"github.com/tgienger/taskmaster/internal/settings"
	"github.com/tgienger/taskmaster/internal/streak"
	"github.com/tgienger/taskmaster/internal/tasks"
	"github.com/tgienger/taskmaster/internal/ui/keys"
	"github.com/tgienger/taskmaster/internal/ui/styles"
	"github.com/tgienger/taskmaster/internal/ui/views"
)

// Currently active tab
type Tab int

const (
	TabTasks Tab = iota
	TabDashboard
	TabFocus
	TabSettings
)

var tabNames = []string{"Tasks", "Dashboard", "Focus", "Settings"}

// statusTTL is how long a notification stays in the status bar
const statusTTL = 4 * time.Second

// chrome is the number of lines taken by the tab bar and status bar
const chrome = 4

// Deps are the collaborators the app is built from
type Deps struct {
	Store        *tasks.Store
	Settings     *settings.Live
	SettingsRepo *settings.Repo
	Debouncer    *settings.Debouncer
	Status       *notify.Latest
	Notifier     notify.Notifier // for messages raised by the UI itself
	Sort         analytics.SortKey
	StatusFilter analytics.StatusFilter
}

type view interface {
	tea.Model
	Restyle()
}

// capturer is implemented by views that sometimes take raw key input
type capturer interface {
	Capturing() bool
}

type App struct {
	deps    Deps
	current Tab
	views   []view
	styles  *styles.Styles
	keys    keys.KeyMap
	width   int
	height  int
}

type clockTickMsg time.Time

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return clockTickMsg(t) })
}

// Creates a new application
func NewApp(d Deps) *App {
	if d.Notifier == nil {
		d.Notifier = notify.Discard
	}
	if d.Status == nil {
		d.Status = notify.NewLatest()
	}
	s := d.Settings.Get()
	styles.Use(s.DarkMode)

	return &App{
		deps:    d,
		current: TabTasks,
		views: []view{
			views.NewTaskListView(d.Store, d.Sort, d.StatusFilter),
			views.NewDashboardView(d.Store),
			views.NewFocusView(s, focus.NewPlanner(d.Notifier)),
			views.NewSettingsView(d.Settings, d.SettingsRepo, d.Debouncer, d.Notifier),
		},
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
	}
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{clockTick()}
	for _, v := range a.views {
		cmds = append(cmds, v.Init())
	}
	return tea.Batch(cmds...)
}

func (a *App) active() view {
	return a.views[a.current]
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		inner := tea.WindowSizeMsg{Width: msg.Width, Height: max(msg.Height-chrome, 0)}
		return a, a.broadcast(inner)

	case clockTickMsg:
		// redraws the status bar and dashboard "today"
		return a, clockTick()

	case views.SettingsChanged:
		styles.Use(msg.Settings.DarkMode)
		a.styles = styles.NewStyles()
		for _, v := range a.views {
			v.Restyle()
		}
		return a, a.broadcast(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if c, ok := a.active().(capturer); !ok || !c.Capturing() {
			switch {
			case key.Matches(msg, a.keys.TasksTab):
				return a, a.switchTo(TabTasks)
			case key.Matches(msg, a.keys.DashboardTab):
				return a, a.switchTo(TabDashboard)
			case key.Matches(msg, a.keys.FocusTab):
				return a, a.switchTo(TabFocus)
			case key.Matches(msg, a.keys.SettingsTab):
				return a, a.switchTo(TabSettings)
			}
		}
		_, cmd := a.active().Update(msg)
		return a, cmd
	}

	// everything else (loads, timer ticks, store changes, blinks) goes to all
	// views; each ignores what it does not understand
	return a, a.broadcast(msg)
}

func (a *App) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(a.views))
	for _, v := range a.views {
		_, cmd := v.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (a *App) switchTo(t Tab) tea.Cmd {
	a.current = t
	if t == TabTasks {
		return func() tea.Msg { return views.StoreChanged{} }
	}
	return nil
}

func (a *App) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		a.renderTabs(),
		"",
		a.active().View(),
	)

	body := lipgloss.NewStyle().Height(max(a.height-2, 0)).Render(content)
	return styles.CenterView(lipgloss.JoinVertical(lipgloss.Left, body, a.renderStatus()), a.width, a.height)
}

func (a *App) renderTabs() string {
	s := a.styles
	parts := []string{s.Title.Render("Task Master"), " "}
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Tab(i) == a.current {
			parts = append(parts, s.TabActive.Render(label))
		} else {
			parts = append(parts, s.Tab.Render(label))
		}
	}
	return s.TitleBar.Render(lipgloss.JoinHorizontal(lipgloss.Center, parts...))
}

func (a *App) renderStatus() string {
	s := a.styles
	if msg, ok := a.deps.Status.Current(statusTTL); ok {
		if msg.Level == notify.Success {
			return s.StatusSuccess.Render("✓ " + msg.Text)
		}
		return s.StatusBar.Render("• " + msg.Text)
	}

	snap := a.deps.Store.Snapshot()
	open := len(analytics.FilterTasks(snap.Tasks, analytics.Filter{Status: analytics.StatusActive}))
	current := streak.Current(snap.Streak, time.Now())
	return s.StatusBar.Render(fmt.Sprintf("Hi %s • %d open • 🔥 %d", a.deps.Settings.Get().Username, open, current))
}
