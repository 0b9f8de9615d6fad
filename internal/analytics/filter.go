package analytics

import (
	"fmt"
	"strings"

	"github.com/tgienger/taskmaster/internal/models"
)

// StatusFilter narrows tasks by completion state
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusCompleted StatusFilter = "completed"
)

// StatusFilters lists the status tabs in display order
var StatusFilters = []StatusFilter{StatusAll, StatusActive, StatusCompleted}

// ParseStatusFilter accepts all, active or completed ("" means all)
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch StatusFilter(strings.ToLower(strings.TrimSpace(s))) {
	case "", StatusAll:
		return StatusAll, nil
	case StatusActive:
		return StatusActive, nil
	case StatusCompleted:
		return StatusCompleted, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// PriorityAll disables the priority filter
const PriorityAll = "all"

// Filter holds the list view criteria. Zero values match everything.
type Filter struct {
	Status   StatusFilter
	Priority string // a models.Priority, PriorityAll or ""
	Search   string // case-insensitive substring of the title
}

// Matches reports whether t passes every criterion in f
func (f Filter) Matches(t models.Task) bool {
	switch f.Status {
	case StatusActive:
		if t.Completed {
			return false
		}
	case StatusCompleted:
		if !t.Completed {
			return false
		}
	}

	if f.Priority != "" && f.Priority != PriorityAll && string(t.Priority) != f.Priority {
		return false
	}

	if f.Search != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(f.Search)) {
		return false
	}

	return true
}

// FilterTasks returns the tasks matching f, in their original order
func FilterTasks(tasks []models.Task, f Filter) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}
