// Package tasks owns the authoritative task list and streak. State changes go
// through the pure Reduce function; Store wraps it with persistence and
// notifications.
package tasks

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/tgienger/taskmaster/internal/clock"
	"github.com/tgienger/taskmaster/internal/models"
	"github.com/tgienger/taskmaster/internal/notify"
	"github.com/tgienger/taskmaster/internal/streak"
)

var (
	ErrNotFound  = errors.New("task not found")
	ErrAmbiguous = errors.New("task id prefix matches more than one task")
)

// Persister writes committed state to durable storage
type Persister interface {
	Save(state models.TaskState) error
}

// Store is the mutable wrapper around Reduce. All reads hand out copies.
type Store struct {
	mu       sync.Mutex
	state    models.TaskState
	persist  Persister
	notifier notify.Notifier
	clock    clock.Clock
	newID    func() string
	logger   *log.Logger
}

type Option func(*Store)

func WithNotifier(n notify.Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

func WithClock(c clock.Clock) Option {
	return func(s *Store) { s.clock = c }
}

func WithIDGenerator(f func() string) Option {
	return func(s *Store) { s.newID = f }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates a store seeded with initial; p may be nil for a store that
// is never persisted
func NewStore(initial models.TaskState, p Persister, opts ...Option) *Store {
	s := &Store{
		state:    initial.Clone(),
		persist:  p,
		notifier: notify.Discard,
		clock:    clock.Real{},
		newID:    func() string { return uuid.New().String() },
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() models.TaskState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Task returns a copy of the task with the given id
func (s *Store) Task(id string) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.findLocked(id); ok {
		return t.Clone(), true
	}
	return models.Task{}, false
}

// Find resolves a full id or a unique id prefix
func (s *Store) Find(prefix string) (models.Task, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return models.Task{}, ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.findLocked(prefix); ok {
		return t.Clone(), nil
	}

	var match *models.Task
	for i := range s.state.Tasks {
		if strings.HasPrefix(s.state.Tasks[i].ID, prefix) {
			if match != nil {
				return models.Task{}, fmt.Errorf("%w: %s", ErrAmbiguous, prefix)
			}
			match = &s.state.Tasks[i]
		}
	}
	if match == nil {
		return models.Task{}, fmt.Errorf("%w: %s", ErrNotFound, prefix)
	}
	return match.Clone(), nil
}

// AddTask creates a task from d and puts it first in the list
func (s *Store) AddTask(d models.Draft) models.Task {
	s.mu.Lock()
	t := models.Task{
		ID:          s.newID(),
		Title:       d.Title,
		Description: d.Description,
		Completed:   d.Completed,
		Priority:    d.Priority,
		DueDate:     d.DueDate,
		CreatedAt:   s.clock.Now(),
		Tags:        NormalizeTags(d.Tags),
	}
	if t.Completed {
		at := t.CreatedAt
		t.CompletedAt = &at
	}
	s.dispatchLocked(AddTask{Task: t})
	s.mu.Unlock()

	s.notifier.Notify(notify.Success, "Task added successfully")
	return t.Clone()
}

// UpdateTask replaces the task with the same id. Unknown ids leave the state
// unchanged.
func (s *Store) UpdateTask(t models.Task) {
	s.mu.Lock()
	if cur, ok := s.findLocked(t.ID); ok {
		t = t.Clone()
		t.CreatedAt = cur.CreatedAt
		t.Tags = NormalizeTags(t.Tags)
		switch {
		case !t.Completed:
			t.CompletedAt = nil
		case t.CompletedAt == nil && cur.Completed:
			t.CompletedAt = cur.CompletedAt
		case t.CompletedAt == nil:
			now := s.clock.Now()
			t.CompletedAt = &now
		}
	}
	s.dispatchLocked(UpdateTask{Task: t})
	s.mu.Unlock()

	s.notifier.Notify(notify.Success, "Task updated successfully")
}

// DeleteTask removes the task with the given id, if any
func (s *Store) DeleteTask(id string) {
	s.mu.Lock()
	s.dispatchLocked(DeleteTask{ID: id})
	s.mu.Unlock()

	s.notifier.Notify(notify.Success, "Task deleted successfully")
}

// ToggleCompleted flips a task between open and completed. Completing a task
// advances the daily streak in the same transition.
func (s *Store) ToggleCompleted(id string) {
	s.mu.Lock()
	t, ok := s.findLocked(id)
	if !ok {
		s.mu.Unlock()
		return
	}

	now := s.clock.Now()
	milestone := 0
	next := s.state
	if !t.Completed {
		before := s.state.Streak
		after := streak.Apply(before, now)
		next = Reduce(next, UpdateStreak{Streak: after})
		if after.CurrentStreak != before.CurrentStreak && streak.IsMilestone(after.CurrentStreak) {
			milestone = after.CurrentStreak
		}
	}
	next = Reduce(next, ToggleCompleted{ID: id, At: now})
	s.commitLocked(next)
	s.mu.Unlock()

	if milestone > 0 {
		s.notifier.Notify(notify.Success, fmt.Sprintf("🔥 %d day streak! Keep it up!", milestone))
	}
}

func (s *Store) findLocked(id string) (models.Task, bool) {
	for _, t := range s.state.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

func (s *Store) dispatchLocked(a Action) {
	s.commitLocked(Reduce(s.state, a))
}

// commitLocked installs next and writes it through to storage
func (s *Store) commitLocked(next models.TaskState) {
	s.state = next
	if s.persist == nil {
		return
	}
	if err := s.persist.Save(next); err != nil {
		s.logger.Printf("warning: failed to save tasks: %v", err)
	}
}

// NormalizeTags trims tags and drops empty and repeated ones, keeping the
// first occurrence
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
