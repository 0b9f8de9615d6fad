package views

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tgienger/taskmaster/internal/settings"
)

// StoreChanged is broadcast after a view modifies the task store
type StoreChanged struct{}

func changed() tea.Cmd {
	return func() tea.Msg { return StoreChanged{} }
}

// SettingsChanged is broadcast after the user edits a setting
type SettingsChanged struct {
	Settings settings.Settings
}
