// Package settings holds user preferences and their persisted form.
package settings

import (
	"encoding/json"
	"log"
	"strings"
	"sync"

	"github.com/tgienger/taskmaster/internal/db"
)

// Key is the storage key for the settings record
const Key = "taskMasterSettings"

// Limits for the numeric settings
const (
	MinVolume        = 0
	MaxVolume        = 100
	MinFocusMinutes  = 5
	MaxFocusMinutes  = 60
	FocusStepMinutes = 5
	MinBreakMinutes  = 1
	MaxBreakMinutes  = 30
)

// Settings are the user's preferences
type Settings struct {
	DarkMode             bool   `json:"darkMode"`
	NotificationsEnabled bool   `json:"notificationsEnabled"`
	SoundEnabled         bool   `json:"soundEnabled"`
	SoundVolume          int    `json:"soundVolume"`
	FocusDuration        int    `json:"focusDuration"`
	BreakDuration        int    `json:"breakDuration"`
	Username             string `json:"username"`
}

func Default() Settings {
	return Settings{
		DarkMode:             false,
		NotificationsEnabled: true,
		SoundEnabled:         true,
		SoundVolume:          70,
		FocusDuration:        25,
		BreakDuration:        5,
		Username:             "User",
	}
}

// Normalize clamps numeric fields into range and fills a blank username
func (s Settings) Normalize() Settings {
	s.SoundVolume = clamp(s.SoundVolume, MinVolume, MaxVolume)
	s.FocusDuration = clamp(s.FocusDuration, MinFocusMinutes, MaxFocusMinutes)
	s.BreakDuration = clamp(s.BreakDuration, MinBreakMinutes, MaxBreakMinutes)
	s.Username = strings.TrimSpace(s.Username)
	if s.Username == "" {
		s.Username = Default().Username
	}
	return s
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// Repo loads and saves Settings through a key/value store
type Repo struct {
	kv db.KV
}

func NewRepo(kv db.KV) *Repo {
	return &Repo{kv: kv}
}

// Load returns the stored settings, or the defaults when the record is
// missing or unreadable. Fields absent from the record keep their defaults.
func (r *Repo) Load() Settings {
	raw, err := r.kv.GetSetting(Key)
	if err != nil {
		log.Printf("warning: failed to read %s: %v", Key, err)
		return Default()
	}
	if strings.TrimSpace(raw) == "" {
		return Default()
	}

	s := Default()
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		log.Printf("warning: failed to parse %s, using defaults: %v", Key, err)
		return Default()
	}
	return s.Normalize()
}

// Save writes s after normalizing it
func (r *Repo) Save(s Settings) error {
	data, err := json.Marshal(s.Normalize())
	if err != nil {
		return err
	}
	return r.kv.SetSetting(Key, string(data))
}

// Reset restores and saves the defaults
func (r *Repo) Reset() (Settings, error) {
	s := Default()
	return s, r.Save(s)
}

// Live is the settings value shared between the settings screen and the
// parts of the app that react to it
type Live struct {
	mu sync.RWMutex
	s  Settings
}

func NewLive(s Settings) *Live {
	return &Live{s: s}
}

func (l *Live) Get() Settings {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.s
}

func (l *Live) Set(s Settings) {
	l.mu.Lock()
	l.s = s
	l.mu.Unlock()
}

// NotificationsEnabled fits notify.Muted
func (l *Live) NotificationsEnabled() bool {
	return l.Get().NotificationsEnabled
}
