// Package analytics derives rankings, filtered views and statistics from task
// lists. Every function is pure and returns new slices.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/tgienger/taskmaster/internal/models"
)

var priorityScores = map[models.Priority]int{
	models.PriorityHigh:   100,
	models.PriorityMedium: 50,
	models.PriorityLow:    10,
}

// CalculateTaskScore ranks a task by priority and due-date urgency as of now
func CalculateTaskScore(t models.Task) int {
	return Score(t, time.Now())
}

// Score ranks a task by priority and due-date urgency as of now
func Score(t models.Task, now time.Time) int {
	score := priorityScores[t.Priority]
	if t.DueDate == nil {
		return score
	}

	days := max(0, int(math.Floor(t.DueDate.Sub(now).Hours()/24)))
	switch {
	case days <= 1:
		score += 50
	case days <= 3:
		score += 30
	case days <= 7:
		score += 15
	}
	return score
}

// SortKey selects the ordering used by SortTasks
type SortKey string

const (
	SortPriority  SortKey = "priority"
	SortDueDate   SortKey = "dueDate"
	SortCreatedAt SortKey = "createdAt"
)

// SortKeys lists the sort keys in the order the UI cycles through them
var SortKeys = []SortKey{SortPriority, SortDueDate, SortCreatedAt}

// ParseSortKey accepts a sort key name, ignoring case and separators
func ParseSortKey(s string) (SortKey, error) {
	norm := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	switch norm {
	case "", "priority", "score":
		return SortPriority, nil
	case "duedate", "due":
		return SortDueDate, nil
	case "createdat", "created":
		return SortCreatedAt, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

func (k SortKey) Label() string {
	switch k {
	case SortDueDate:
		return "Due date"
	case SortCreatedAt:
		return "Newest"
	default:
		return "Priority"
	}
}

// SortTasks returns a sorted copy of tasks
func SortTasks(tasks []models.Task, key SortKey) []models.Task {
	return SortTasksAt(tasks, key, time.Now())
}

// SortTasksAt returns a sorted copy of tasks, scoring urgency against now.
// Ties keep their input order.
func SortTasksAt(tasks []models.Task, key SortKey, now time.Time) []models.Task {
	out := append([]models.Task(nil), tasks...)

	switch key {
	case SortPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return Score(out[i], now) > Score(out[j], now)
		})

	case SortDueDate:
		// undated tasks go last and keep their relative order
		sort.SliceStable(out, func(i, j int) bool {
			di, dj := out[i].DueDate, out[j].DueDate
			switch {
			case di == nil:
				return false
			case dj == nil:
				return true
			default:
				return di.Before(*dj)
			}
		})

	case SortCreatedAt:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}

	return out
}
