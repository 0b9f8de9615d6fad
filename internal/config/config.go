// Package config loads taskmaster's configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/tgienger/taskmaster/internal/analytics"
	"github.com/tgienger/taskmaster/internal/db"
)

// EnvPrefix prefixes environment overrides, e.g. TASKMASTER_DATA_DIR
const EnvPrefix = "TASKMASTER"

// Config is the on-disk configuration
type Config struct {
	DataDir          string `mapstructure:"data_dir" yaml:"data_dir"`
	Database         string `mapstructure:"database" yaml:"database"`
	LogFile          string `mapstructure:"log_file" yaml:"log_file"`
	DefaultSort      string `mapstructure:"default_sort" yaml:"default_sort"`
	DefaultStatus    string `mapstructure:"default_status" yaml:"default_status"`
	Notifications    bool   `mapstructure:"notifications" yaml:"notifications"`
	SettingsDebounce string `mapstructure:"settings_debounce" yaml:"settings_debounce"`
}

// DefaultConfig returns the default configuration. Empty paths are resolved
// relative to the data directory.
func DefaultConfig() *Config {
	return &Config{
		DefaultSort:      string(analytics.SortPriority),
		DefaultStatus:    string(analytics.StatusAll),
		Notifications:    true,
		SettingsDebounce: "500ms",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/taskmaster/config.yaml
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "taskmaster", "config.yaml")
}

// Load reads the config file at path (DefaultPath when empty) and applies
// TASKMASTER_* environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.resolve(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("database", cfg.Database)
	v.SetDefault("log_file", cfg.LogFile)
	v.SetDefault("default_sort", cfg.DefaultSort)
	v.SetDefault("default_status", cfg.DefaultStatus)
	v.SetDefault("notifications", cfg.Notifications)
	v.SetDefault("settings_debounce", cfg.SettingsDebounce)
}

// resolve fills derived paths and checks enumerated values
func (c *Config) resolve() error {
	if c.DataDir == "" {
		dir, err := db.DefaultDataDir()
		if err != nil {
			return fmt.Errorf("failed to resolve data dir: %w", err)
		}
		c.DataDir = dir
	}
	if c.Database == "" {
		c.Database = filepath.Join(c.DataDir, "taskmaster.db")
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(c.DataDir, "taskmaster.log")
	}

	if _, err := analytics.ParseSortKey(c.DefaultSort); err != nil {
		return fmt.Errorf("default_sort: %w", err)
	}
	if _, err := analytics.ParseStatusFilter(c.DefaultStatus); err != nil {
		return fmt.Errorf("default_status: %w", err)
	}
	if _, err := time.ParseDuration(c.SettingsDebounce); err != nil {
		return fmt.Errorf("settings_debounce: %w", err)
	}
	return nil
}

// Sort returns the configured default sort key
func (c *Config) Sort() analytics.SortKey {
	k, err := analytics.ParseSortKey(c.DefaultSort)
	if err != nil {
		return analytics.SortPriority
	}
	return k
}

// Status returns the configured default status filter
func (c *Config) Status() analytics.StatusFilter {
	s, err := analytics.ParseStatusFilter(c.DefaultStatus)
	if err != nil {
		return analytics.StatusAll
	}
	return s
}

// Debounce returns the settings save delay
func (c *Config) Debounce() time.Duration {
	d, err := time.ParseDuration(c.SettingsDebounce)
	if err != nil || d < 0 {
		return 500 * time.Millisecond
	}
	return d
}

// WriteDefault writes the default configuration to path, creating parent
// directories. An existing file is left alone unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	content := "# taskmaster configuration\n# Empty paths default to the XDG data directory.\n" + string(data)
	return os.WriteFile(path, []byte(content), 0644)
}
