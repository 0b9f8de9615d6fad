package views

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/taskmaster/internal/notify"
	"github.com/tgienger/taskmaster/internal/settings"
	"github.com/tgienger/taskmaster/internal/ui/keys"
	"github.com/tgienger/taskmaster/internal/ui/styles"
)

type settingField int

const (
	settingDarkMode settingField = iota
	settingNotifications
	settingSound
	settingVolume
	settingFocus
	settingBreak
	settingUsername
)

type settingItem struct {
	field settingField
	label string
	hint  string
	value string
}

func (i settingItem) Title() string       { return i.label }
func (i settingItem) Description() string { return i.hint }
func (i settingItem) FilterValue() string { return i.label }

type settingDelegate struct {
	styles *styles.Styles
	width  int
}

func (d settingDelegate) Height() int                               { return 2 }
func (d settingDelegate) Spacing() int                              { return 1 }
func (d settingDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d settingDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(settingItem)
	if !ok {
		return
	}

	selected := index == m.Index()
	width := max(d.width-4, 20)

	var titleStyle, descStyle lipgloss.Style
	if selected {
		titleStyle = d.styles.ListSelected.Width(width)
		descStyle = d.styles.ListSelected.Foreground(styles.Current.ForegroundDim).Width(width)
	} else {
		titleStyle = d.styles.ListItem.Width(width)
		descStyle = d.styles.ListItem.Foreground(styles.Current.ForegroundDim).Width(width)
	}

	gap := max(width-lipgloss.Width(it.label)-lipgloss.Width(it.value)-4, 1)
	title := titleStyle.Render(it.label + strings.Repeat(" ", gap) + it.value)
	desc := descStyle.Render(it.hint)

	fmt.Fprintf(w, "%s\n%s", title, desc)
}

// SettingsView edits user preferences. Every change is applied at once and
// saved through the debouncer.
type SettingsView struct {
	live      *settings.Live
	repo      *settings.Repo
	debouncer *settings.Debouncer
	notifier  notify.Notifier

	list     list.Model
	delegate *settingDelegate
	styles   *styles.Styles
	keys     keys.KeyMap
	width    int
	height   int

	editingName     bool
	nameInput       textinput.Model
	confirmingReset bool
}

func NewSettingsView(live *settings.Live, repo *settings.Repo, debouncer *settings.Debouncer, n notify.Notifier) *SettingsView {
	s := styles.NewStyles()

	nameInput := textinput.New()
	nameInput.Placeholder = "Your name"
	nameInput.CharLimit = 50

	delegate := &settingDelegate{styles: s, width: 80}

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Settings"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = s.Title
	l.SetShowHelp(false)

	v := &SettingsView{
		live:      live,
		repo:      repo,
		debouncer: debouncer,
		notifier:  n,
		list:      l,
		delegate:  delegate,
		styles:    s,
		keys:      keys.DefaultKeyMap(),
		nameInput: nameInput,
	}
	v.refreshItems()
	return v
}

func (v *SettingsView) Restyle() {
	v.styles = styles.NewStyles()
	v.delegate.styles = v.styles
	v.list.Styles.Title = v.styles.Title
}

// Capturing reports whether the view is consuming raw key input
func (v *SettingsView) Capturing() bool {
	return v.editingName || v.confirmingReset
}

func (v *SettingsView) Init() tea.Cmd { return nil }

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (v *SettingsView) refreshItems() {
	s := v.live.Get()
	items := []list.Item{
		settingItem{settingDarkMode, "Dark Mode", "Adjust how Task Master looks", onOff(s.DarkMode)},
		settingItem{settingNotifications, "Enable Notifications", "Show status messages for task changes", onOff(s.NotificationsEnabled)},
		settingItem{settingSound, "Sound Effects", "Play sounds for timer events", onOff(s.SoundEnabled)},
		settingItem{settingVolume, "Sound Volume", "←→ to adjust", fmt.Sprintf("%d%%", s.SoundVolume)},
		settingItem{settingFocus, "Focus Duration", "Length of a pomodoro, ←→ in steps of 5", fmt.Sprintf("%d min", s.FocusDuration)},
		settingItem{settingBreak, "Break Duration", "Length of a short break, ←→ to adjust", fmt.Sprintf("%d min", s.BreakDuration)},
		settingItem{settingUsername, "Display Name", "↵ to edit", s.Username},
	}
	v.list.SetItems(items)
}

// apply stores s, schedules a save and tells the rest of the app
func (v *SettingsView) apply(s settings.Settings) tea.Cmd {
	s = s.Normalize()
	v.live.Set(s)
	v.debouncer.Trigger(s)
	v.refreshItems()
	return func() tea.Msg { return SettingsChanged{Settings: s} }
}

func (v *SettingsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.list.SetSize(contentWidth-4, max(msg.Height-10, 6))
		return v, nil

	case tea.KeyMsg:
		if v.confirmingReset {
			return v.updateConfirmReset(msg)
		}
		if v.editingName {
			return v.updateEditingName(msg)
		}

		item, _ := v.list.SelectedItem().(settingItem)
		s := v.live.Get()

		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit

		case key.Matches(msg, v.keys.Save):
			if err := v.debouncer.Flush(); err != nil {
				v.notifier.Notify(notify.Info, "Failed to save settings")
				return v, nil
			}
			v.notifier.Notify(notify.Success, "Settings saved successfully")
			return v, nil

		case msg.String() == "R":
			v.confirmingReset = true
			return v, nil

		case key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.Toggle):
			switch item.field {
			case settingDarkMode:
				s.DarkMode = !s.DarkMode
			case settingNotifications:
				s.NotificationsEnabled = !s.NotificationsEnabled
			case settingSound:
				s.SoundEnabled = !s.SoundEnabled
			case settingUsername:
				v.editingName = true
				v.nameInput.SetValue(s.Username)
				v.nameInput.Focus()
				return v, textinput.Blink
			default:
				return v, nil
			}
			return v, v.apply(s)

		case key.Matches(msg, v.keys.Left):
			return v, v.adjust(item.field, s, -1)

		case key.Matches(msg, v.keys.Right):
			return v, v.adjust(item.field, s, 1)
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// adjust steps a numeric setting in direction dir
func (v *SettingsView) adjust(field settingField, s settings.Settings, dir int) tea.Cmd {
	switch field {
	case settingVolume:
		s.SoundVolume += 5 * dir
	case settingFocus:
		s.FocusDuration += settings.FocusStepMinutes * dir
	case settingBreak:
		s.BreakDuration += dir
	default:
		return nil
	}
	return v.apply(s)
}

func (v *SettingsView) updateEditingName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editingName = false
		v.nameInput.Blur()
		return v, nil
	case key.Matches(msg, v.keys.Enter):
		v.editingName = false
		v.nameInput.Blur()
		s := v.live.Get()
		s.Username = v.nameInput.Value()
		return v, v.apply(s)
	}

	var cmd tea.Cmd
	v.nameInput, cmd = v.nameInput.Update(msg)
	return v, cmd
}

func (v *SettingsView) updateConfirmReset(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingReset = false
		// pending edits are discarded; the defaults replace them
		s, err := v.debouncer.Replace(v.repo.Reset)
		if err != nil {
			v.notifier.Notify(notify.Info, "Failed to reset settings")
			return v, nil
		}
		v.live.Set(s)
		v.refreshItems()
		v.notifier.Notify(notify.Success, "Settings reset to defaults")
		return v, func() tea.Msg { return SettingsChanged{Settings: s} }
	case "n", "N", "esc":
		v.confirmingReset = false
		return v, nil
	}
	return v, nil
}

func (v *SettingsView) View() string {
	if v.confirmingReset {
		return v.renderResetConfirm()
	}
	if v.editingName {
		return v.renderNameForm()
	}

	return v.list.View() + "\n" + v.renderHelp()
}

func (v *SettingsView) renderHelp() string {
	return v.styles.Help.Render(
		fmt.Sprintf("%s toggle • %s adjust • %s save • %s reset • %s quit",
			v.styles.HelpKey.Render("↵"),
			v.styles.HelpKey.Render("←→"),
			v.styles.HelpKey.Render("ctrl+s"),
			v.styles.HelpKey.Render("R"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *SettingsView) renderNameForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-6, 20, 50)

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Display Name"),
		"",
		s.InputFocused.Width(inputWidth).Render(v.nameInput.View()),
		"",
		s.TitleMuted.Render("↵: save • Esc: cancel"),
	)

	return lipgloss.Place(contentWidth, max(v.height-4, 0),
		lipgloss.Center, lipgloss.Center,
		form,
	)
}

func (v *SettingsView) renderResetConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Reset Settings?"),
		"",
		s.TitleMuted.Render("All preferences return to their defaults."),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	return lipgloss.Place(contentWidth, max(v.height-4, 0),
		lipgloss.Center, lipgloss.Center,
		content,
	)
}
