package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/taskmaster/internal/analytics"
	"github.com/tgienger/taskmaster/internal/db"
	"github.com/tgienger/taskmaster/internal/models"
	"github.com/tgienger/taskmaster/internal/notify"
	"github.com/tgienger/taskmaster/internal/settings"
	"github.com/tgienger/taskmaster/internal/tasks"
	"github.com/tgienger/taskmaster/internal/ui/styles"
	"github.com/tgienger/taskmaster/internal/ui/views"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestApp(t *testing.T) (*App, *notify.Latest) {
	t.Helper()
	t.Cleanup(func() { styles.Use(false) })

	repo := settings.NewRepo(db.NewMemoryKV())
	live := settings.NewLive(repo.Load())
	deb := settings.NewDebouncer(time.Hour, repo.Save)
	t.Cleanup(deb.Stop)
	status := notify.NewLatest()

	store := tasks.NewStore(models.TaskState{Tasks: []models.Task{
		{ID: "1", Title: "Plan week", Priority: models.PriorityHigh, CreatedAt: time.Now()},
	}}, nil, tasks.WithNotifier(status))

	app := NewApp(Deps{
		Store:        store,
		Settings:     live,
		SettingsRepo: repo,
		Debouncer:    deb,
		Status:       status,
		Notifier:     status,
		Sort:         analytics.SortPriority,
		StatusFilter: analytics.StatusAll,
	})
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return app, status
}

func TestApp_SwitchesTabs(t *testing.T) {
	app, _ := newTestApp(t)
	assert.Equal(t, TabTasks, app.current)

	app.Update(runes("2"))
	assert.Equal(t, TabDashboard, app.current)

	app.Update(runes("3"))
	assert.Equal(t, TabFocus, app.current)
	assert.Contains(t, app.View(), "Pomodoro")

	app.Update(runes("4"))
	assert.Equal(t, TabSettings, app.current)

	_, cmd := app.Update(runes("1"))
	assert.Equal(t, TabTasks, app.current)
	require.NotNil(t, cmd)
	assert.IsType(t, views.StoreChanged{}, cmd())
}

func TestApp_CapturingViewKeepsDigits(t *testing.T) {
	app, _ := newTestApp(t)

	app.Update(runes("n"))
	app.Update(runes("2"))
	assert.Equal(t, TabTasks, app.current, "digits go to the edit form")
}

func TestApp_SettingsChangedSwitchesTheme(t *testing.T) {
	app, _ := newTestApp(t)
	require.Equal(t, styles.TokyoNightDay.Name, styles.Current.Name)

	s := settings.Default()
	s.DarkMode = true
	app.Update(views.SettingsChanged{Settings: s})
	assert.Equal(t, styles.TokyoNight.Name, styles.Current.Name)
}

func TestApp_StatusBar(t *testing.T) {
	app, status := newTestApp(t)
	assert.Contains(t, app.View(), "Hi User • 1 open")

	status.Notify(notify.Success, "Task added successfully")
	assert.Contains(t, app.View(), "Task added successfully")
}

func TestApp_CtrlCQuits(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
