package db

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/tgienger/taskmaster/internal/models"
)

// Keys under which the task list and streak are stored
const (
	TasksKey  = "tasks"
	StreakKey = "streak"
)

// isoLayout is ISO-8601 with milliseconds, e.g. 2024-03-05T09:00:00.000Z
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

type taskRecord struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Completed   bool     `json:"completed"`
	Priority    string   `json:"priority"`
	DueDate     *string  `json:"dueDate,omitempty"`
	CreatedAt   string   `json:"createdAt"`
	CompletedAt *string  `json:"completedAt,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type streakRecord struct {
	CurrentStreak     int     `json:"currentStreak"`
	LongestStreak     int     `json:"longestStreak"`
	LastCompletedDate *string `json:"lastCompletedDate"`
}

// batchKV is implemented by stores that can write several keys atomically
type batchKV interface {
	SetSettings(values map[string]string) error
}

// SnapshotStore persists the task list and streak as two JSON records
type SnapshotStore struct {
	kv KV
}

func NewSnapshotStore(kv KV) *SnapshotStore {
	return &SnapshotStore{kv: kv}
}

// Load reads the stored state. Missing or unreadable records fall back to an
// empty task list and a zeroed streak; Load never fails.
func (s *SnapshotStore) Load() models.TaskState {
	return models.TaskState{
		Tasks:  s.loadTasks(),
		Streak: s.loadStreak(),
	}
}

// Save writes the task list and streak from state
func (s *SnapshotStore) Save(state models.TaskState) error {
	records := make([]taskRecord, len(state.Tasks))
	for i, t := range state.Tasks {
		records[i] = encodeTask(t)
	}
	tasksJSON, err := json.Marshal(records)
	if err != nil {
		return err
	}
	streakJSON, err := json.Marshal(encodeStreak(state.Streak))
	if err != nil {
		return err
	}

	if b, ok := s.kv.(batchKV); ok {
		return b.SetSettings(map[string]string{
			TasksKey:  string(tasksJSON),
			StreakKey: string(streakJSON),
		})
	}
	if err := s.kv.SetSetting(TasksKey, string(tasksJSON)); err != nil {
		return err
	}
	return s.kv.SetSetting(StreakKey, string(streakJSON))
}

func (s *SnapshotStore) loadTasks() []models.Task {
	raw, err := s.kv.GetSetting(TasksKey)
	if err != nil {
		log.Printf("warning: failed to read %s: %v", TasksKey, err)
		return []models.Task{}
	}
	if strings.TrimSpace(raw) == "" {
		return []models.Task{}
	}

	var records []taskRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		log.Printf("warning: failed to parse %s, starting empty: %v", TasksKey, err)
		return []models.Task{}
	}

	tasks := make([]models.Task, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, r := range records {
		t, ok := decodeTask(r)
		if !ok {
			log.Printf("warning: skipping stored task %d (%q): missing id or bad createdAt", i, r.ID)
			continue
		}
		if seen[t.ID] {
			log.Printf("warning: skipping duplicate stored task %s", t.ID)
			continue
		}
		seen[t.ID] = true
		tasks = append(tasks, t)
	}
	return tasks
}

func (s *SnapshotStore) loadStreak() models.StreakData {
	raw, err := s.kv.GetSetting(StreakKey)
	if err != nil {
		log.Printf("warning: failed to read %s: %v", StreakKey, err)
		return models.StreakData{}
	}
	if strings.TrimSpace(raw) == "" {
		return models.StreakData{}
	}

	var r streakRecord
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		log.Printf("warning: failed to parse %s, resetting: %v", StreakKey, err)
		return models.StreakData{}
	}
	return decodeStreak(r)
}

func encodeTask(t models.Task) taskRecord {
	r := taskRecord{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    string(t.Priority),
		DueDate:     formatTime(t.DueDate),
		CreatedAt:   t.CreatedAt.UTC().Format(isoLayout),
		CompletedAt: formatTime(t.CompletedAt),
	}
	if len(t.Tags) > 0 {
		r.Tags = append([]string(nil), t.Tags...)
	}
	return r
}

// decodeTask turns a stored record into a Task. Records without an id or a
// usable creation time are rejected; other bad fields are defaulted.
func decodeTask(r taskRecord) (models.Task, bool) {
	if strings.TrimSpace(r.ID) == "" {
		return models.Task{}, false
	}
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return models.Task{}, false
	}

	t := models.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		Priority:    models.Priority(r.Priority),
		CreatedAt:   created,
	}
	if !t.Priority.Valid() {
		log.Printf("warning: task %s has unknown priority %q, using medium", r.ID, r.Priority)
		t.Priority = models.PriorityMedium
	}
	t.DueDate = parseOptional(r.ID, "dueDate", r.DueDate)
	if t.Completed {
		t.CompletedAt = parseOptional(r.ID, "completedAt", r.CompletedAt)
	}
	if len(r.Tags) > 0 {
		t.Tags = append([]string(nil), r.Tags...)
	}
	return t, true
}

func encodeStreak(s models.StreakData) streakRecord {
	return streakRecord{
		CurrentStreak:     s.CurrentStreak,
		LongestStreak:     s.LongestStreak,
		LastCompletedDate: formatTime(s.LastCompletedDate),
	}
}

func decodeStreak(r streakRecord) models.StreakData {
	s := models.StreakData{
		CurrentStreak:     max(0, r.CurrentStreak),
		LongestStreak:     max(0, r.LongestStreak),
		LastCompletedDate: parseOptional("streak", "lastCompletedDate", r.LastCompletedDate),
	}
	if s.LongestStreak < s.CurrentStreak {
		log.Printf("warning: stored longestStreak %d below currentStreak %d, raising it", s.LongestStreak, s.CurrentStreak)
		s.LongestStreak = s.CurrentStreak
	}
	return s
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(isoLayout)
	return &s
}

// parseOptional parses an optional timestamp, dropping it with a warning when malformed
func parseOptional(owner, field string, s *string) *time.Time {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	t, err := parseTime(*s)
	if err != nil {
		log.Printf("warning: %s has malformed %s %q, clearing it", owner, field, *s)
		return nil
	}
	return &t
}

// parseTime accepts RFC 3339 timestamps (with or without fractional seconds)
// and bare dates, returning local time
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.Local(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
