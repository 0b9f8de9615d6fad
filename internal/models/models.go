package models

import (
	"errors"
	"strings"
	"time"
)

// Priority is the importance level of a task
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every priority, highest first
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

var ErrInvalidPriority = errors.New("invalid priority (want low, medium or high)")

// ParsePriority parses a priority name case-insensitively
func ParsePriority(s string) (Priority, error) {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	}
	return "", ErrInvalidPriority
}

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task represents a single task
type Task struct {
	ID          string
	Title       string
	Description string
	Completed   bool
	Priority    Priority
	DueDate     *time.Time
	CreatedAt   time.Time
	CompletedAt *time.Time // nil while the task is open
	Tags        []string
}

// Clone returns a copy of t that shares no memory with it
func (t Task) Clone() Task {
	out := t
	if t.DueDate != nil {
		d := *t.DueDate
		out.DueDate = &d
	}
	if t.CompletedAt != nil {
		c := *t.CompletedAt
		out.CompletedAt = &c
	}
	if t.Tags != nil {
		out.Tags = append([]string(nil), t.Tags...)
	}
	return out
}

// Draft holds the caller-supplied fields of a new task
type Draft struct {
	Title       string
	Description string
	Completed   bool
	Priority    Priority
	DueDate     *time.Time
	Tags        []string
}

// StreakData tracks consecutive days with at least one completed task
type StreakData struct {
	CurrentStreak     int
	LongestStreak     int
	LastCompletedDate *time.Time
}

// Clone returns a copy of s that shares no memory with it
func (s StreakData) Clone() StreakData {
	out := s
	if s.LastCompletedDate != nil {
		d := *s.LastCompletedDate
		out.LastCompletedDate = &d
	}
	return out
}

// TaskState is the whole task store state
type TaskState struct {
	Tasks   []Task // newest first
	Loading bool
	Error   string
	Streak  StreakData
}

// Clone returns a deep copy, used to hand out snapshots
func (s TaskState) Clone() TaskState {
	out := s
	out.Tasks = make([]Task, len(s.Tasks))
	for i, t := range s.Tasks {
		out.Tasks[i] = t.Clone()
	}
	out.Streak = s.Streak.Clone()
	return out
}
