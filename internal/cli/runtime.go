package cli

import (
	"fmt"
	"io"

	"github.com/tgienger/taskmaster/internal/config"
	"github.com/tgienger/taskmaster/internal/db"
	"github.com/tgienger/taskmaster/internal/notify"
	"github.com/tgienger/taskmaster/internal/settings"
	"github.com/tgienger/taskmaster/internal/tasks"
)

// runtime wires storage, settings and the task store for one invocation
type runtime struct {
	cfg      *config.Config
	db       *db.DB
	settings *settings.Repo
	live     *settings.Live
	store    *tasks.Store
	out      io.Writer
}

// openRuntime opens the database named by cfg and loads the stored state.
// Store notifications go to sink, gated by the notifications config and
// setting.
func openRuntime(cfg *config.Config, sink notify.Notifier, out io.Writer) (*runtime, error) {
	database, err := db.New(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.Database, err)
	}

	repo := settings.NewRepo(database)
	live := settings.NewLive(repo.Load())
	gated := notify.Muted(sink, func() bool {
		return cfg.Notifications && live.NotificationsEnabled()
	})

	snapshots := db.NewSnapshotStore(database)
	store := tasks.NewStore(snapshots.Load(), snapshots, tasks.WithNotifier(gated))

	return &runtime{
		cfg:      cfg,
		db:       database,
		settings: repo,
		live:     live,
		store:    store,
		out:      out,
	}, nil
}

func (r *runtime) Close() error {
	return r.db.Close()
}

// withRuntime loads config and opens a runtime that prints notifications to out
func withRuntime(out io.Writer, fn func(r *runtime) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	r, err := openRuntime(cfg, notify.Writer{W: out}, out)
	if err != nil {
		return err
	}
	defer r.Close()
	return fn(r)
}
