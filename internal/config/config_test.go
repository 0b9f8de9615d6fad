package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/taskmaster/internal/analytics"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "priority", cfg.DefaultSort)
	assert.Equal(t, "all", cfg.DefaultStatus)
	assert.True(t, cfg.Notifications)
	assert.Equal(t, 500*time.Millisecond, cfg.Debounce())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	cfg, err := Load(filepath.Join(dir, "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "taskmaster"), cfg.DataDir)
	assert.Equal(t, filepath.Join(dir, "taskmaster", "taskmaster.db"), cfg.Database)
	assert.Equal(t, filepath.Join(dir, "taskmaster", "taskmaster.log"), cfg.LogFile)
	assert.Equal(t, analytics.SortPriority, cfg.Sort())
	assert.Equal(t, analytics.StatusAll, cfg.Status())
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir: `+dir+`
default_sort: dueDate
default_status: active
notifications: false
settings_debounce: 2s
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dir, "taskmaster.db"), cfg.Database)
	assert.Equal(t, analytics.SortDueDate, cfg.Sort())
	assert.Equal(t, analytics.StatusActive, cfg.Status())
	assert.False(t, cfg.Notifications)
	assert.Equal(t, 2*time.Second, cfg.Debounce())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: "+dir+"\ndefault_sort: dueDate\n"), 0644))

	t.Setenv("TASKMASTER_DEFAULT_SORT", "createdAt")
	t.Setenv("TASKMASTER_DATABASE", filepath.Join(dir, "other.db"))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, analytics.SortCreatedAt, cfg.Sort())
	assert.Equal(t, filepath.Join(dir, "other.db"), cfg.Database)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: "+dir+"\ndefault_status: someday\n"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "default_status")
}

func TestWriteDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taskmaster", "config.yaml")

	require.NoError(t, WriteDefault(path, false))
	assert.Error(t, WriteDefault(path, false), "refuses to overwrite")
	require.NoError(t, WriteDefault(path, true))

	t.Setenv("XDG_DATA_HOME", dir)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().DefaultSort, cfg.DefaultSort)
	assert.Equal(t, DefaultConfig().SettingsDebounce, cfg.SettingsDebounce)
}
