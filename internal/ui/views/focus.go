package views

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/taskmaster/internal/focus"
	"github.com/tgienger/taskmaster/internal/settings"
	"github.com/tgienger/taskmaster/internal/ui/keys"
	"github.com/tgienger/taskmaster/internal/ui/styles"
)

// focusTickMsg carries the session generation it was scheduled for
type focusTickMsg struct {
	gen int
}

func tick(gen int) tea.Cmd {
	return tea.Tick(focus.TickInterval, func(time.Time) tea.Msg {
		return focusTickMsg{gen: gen}
	})
}

// FocusView runs pomodoro and break timers
type FocusView struct {
	session  *focus.Session
	planner  *focus.Planner
	settings settings.Settings
	styles   *styles.Styles
	keys     keys.KeyMap
	width    int
	height   int
}

func NewFocusView(s settings.Settings, planner *focus.Planner) *FocusView {
	return &FocusView{
		session:  focus.NewSession(focus.Pomodoro, focus.Pomodoro.Length(s)),
		planner:  planner,
		settings: s,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
	}
}

func (v *FocusView) Restyle() { v.styles = styles.NewStyles() }

func (v *FocusView) Init() tea.Cmd { return nil }

func (v *FocusView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case focusTickMsg:
		if v.session.Tick(msg.gen) {
			v.selectMode(v.planner.Complete(v.session.Mode()))
			return v, nil
		}
		if msg.gen == v.session.Generation() && v.session.Running() {
			return v, tick(msg.gen)
		}
		return v, nil

	case SettingsChanged:
		v.settings = msg.Settings
		// a running countdown keeps its length
		if !v.session.Running() {
			v.session.SetMode(v.session.Mode(), v.session.Mode().Length(v.settings))
		}
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit

		case key.Matches(msg, v.keys.StartPause):
			if gen, running := v.session.Toggle(); running {
				return v, tick(gen)
			}
			return v, nil

		case key.Matches(msg, v.keys.Reset):
			v.session.Reset()
			return v, nil

		case key.Matches(msg, v.keys.Skip):
			v.session.Skip()
			v.selectMode(v.planner.Complete(v.session.Mode()))
			return v, nil

		case key.Matches(msg, v.keys.Left):
			v.selectMode(shiftMode(v.session.Mode(), -1))
			return v, nil

		case key.Matches(msg, v.keys.Right), key.Matches(msg, v.keys.Tab):
			v.selectMode(shiftMode(v.session.Mode(), 1))
			return v, nil
		}
	}
	return v, nil
}

func (v *FocusView) selectMode(m focus.Mode) {
	v.session.SetMode(m, m.Length(v.settings))
}

func shiftMode(m focus.Mode, step int) focus.Mode {
	n := len(focus.Modes)
	return focus.Modes[(int(m)+step+n)%n]
}

func (v *FocusView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	var modes []string
	for _, m := range focus.Modes {
		label := fmt.Sprintf("%s %d min", m, int(m.Length(v.settings).Minutes()))
		if m == v.session.Mode() {
			modes = append(modes, s.ButtonFocused.Render(label))
		} else {
			modes = append(modes, s.Button.Render(label))
		}
	}

	timer := lipgloss.JoinVertical(lipgloss.Center,
		s.CardValue.Render(v.session.FormatRemaining()),
		s.TitleMuted.Render(v.session.Label()),
		"",
		styles.Bar(v.session.Progress(), clamp(contentWidth-20, 10, 40), s.BarDone, s.BarEmpty),
	)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render("Focus Mode"),
		s.TitleMuted.Render("Eliminate distractions and maximize your productivity with focused work sessions."),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center, modes...),
		"",
		s.Card.Padding(1, 4).Render(timer),
		"",
		s.TitleMuted.Render(fmt.Sprintf("Sessions completed: %d • Pomodoros: %d", v.planner.Sessions(), v.planner.Pomodoros())),
		s.Help.Render(fmt.Sprintf("%s start/pause • %s reset • %s skip • %s mode",
			s.HelpKey.Render("space"),
			s.HelpKey.Render("r"),
			s.HelpKey.Render("s"),
			s.HelpKey.Render("←→"),
		)),
	)

	return lipgloss.PlaceHorizontal(contentWidth, lipgloss.Center, content)
}
