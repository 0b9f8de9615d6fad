package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tgienger/taskmaster/internal/config"
	"github.com/tgienger/taskmaster/internal/notify"
	"github.com/tgienger/taskmaster/internal/settings"
	"github.com/tgienger/taskmaster/internal/ui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// the alt screen owns the terminal, so logs go to a file
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	logFile, err := tea.LogToFile(cfg.LogFile, "taskmaster")
	if err != nil {
		log.SetOutput(io.Discard)
	} else {
		defer logFile.Close()
	}

	// notifications show in the status bar and are kept in the log
	status := notify.NewLatest()
	sink := notify.Tee(status, notify.Log{})
	r, err := openRuntime(cfg, sink, io.Discard)
	if err != nil {
		return err
	}
	defer r.Close()

	debouncer := settings.NewDebouncer(cfg.Debounce(), r.settings.Save)
	defer func() {
		if err := debouncer.Flush(); err != nil {
			log.Printf("warning: failed to save settings: %v", err)
		}
		debouncer.Stop()
	}()

	app := ui.NewApp(ui.Deps{
		Store:        r.store,
		Settings:     r.live,
		SettingsRepo: r.settings,
		Debouncer:    debouncer,
		Status:       status,
		Notifier: notify.Muted(sink, func() bool {
			return cfg.Notifications && r.live.NotificationsEnabled()
		}),
		Sort:         cfg.Sort(),
		StatusFilter: cfg.Status(),
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
