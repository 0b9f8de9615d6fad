package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/tgienger/taskmaster/internal/models"
)

// ProductivityStats summarizes completion across a task list
type ProductivityStats struct {
	Completed           int
	Total               int
	CompletionRate      int // percent, rounded
	TasksCompletedToday int
}

// GenerateProductivityStats computes stats as of the current time
func GenerateProductivityStats(tasks []models.Task) ProductivityStats {
	return ProductivityStatsAt(tasks, time.Now())
}

// ProductivityStatsAt computes stats with "today" taken from now.
//
// A task counts toward TasksCompletedToday when its CompletedAt is on or after
// local midnight. Records written before CompletedAt existed have no
// completion time; for those the creation time is used instead.
func ProductivityStatsAt(tasks []models.Task, now time.Time) ProductivityStats {
	var s ProductivityStats
	today := startOfDay(now)

	for _, t := range tasks {
		s.Total++
		if !t.Completed {
			continue
		}
		s.Completed++

		when := t.CreatedAt
		if t.CompletedAt != nil {
			when = *t.CompletedAt
		}
		if !when.Before(today) {
			s.TasksCompletedToday++
		}
	}

	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}

// NoDueDate is the group key for tasks without a due date
const NoDueDate = "No Due Date"

// FormatDate renders a date the way the task list shows it, e.g. "Mar 5, 2026"
func FormatDate(t time.Time) string {
	return t.Local().Format("Jan 2, 2006")
}

// GroupTasksByDate buckets tasks by formatted due date, keeping input order
// inside each bucket
func GroupTasksByDate(tasks []models.Task) map[string][]models.Task {
	groups := make(map[string][]models.Task)
	for _, t := range tasks {
		key := NoDueDate
		if t.DueDate != nil {
			key = FormatDate(*t.DueDate)
		}
		groups[key] = append(groups[key], t)
	}
	return groups
}

// GroupKeys orders group keys by date, with NoDueDate last
func GroupKeys(groups map[string][]models.Task) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		if k != NoDueDate {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		ti, _ := time.ParseInLocation("Jan 2, 2006", keys[i], time.Local)
		tj, _ := time.ParseInLocation("Jan 2, 2006", keys[j], time.Local)
		return ti.Before(tj)
	})
	if _, ok := groups[NoDueDate]; ok {
		keys = append(keys, NoDueDate)
	}
	return keys
}

// PriorityCount is the number of tasks at one priority
type PriorityCount struct {
	Priority models.Priority
	Count    int
}

// PriorityBreakdown counts tasks per priority, highest first
func PriorityBreakdown(tasks []models.Task) []PriorityCount {
	out := make([]PriorityCount, len(models.Priorities))
	for i, p := range models.Priorities {
		out[i].Priority = p
		for _, t := range tasks {
			if t.Priority == p {
				out[i].Count++
			}
		}
	}
	return out
}

// DayStat is the task activity for one calendar day
type DayStat struct {
	Day       time.Time // local midnight
	Label     string    // short weekday, e.g. "Mon"
	Completed int
	Total     int
}

// CompletionByDay reports, for each of the last days ending today, how many
// tasks were created that day and how many of those are completed. Oldest
// day first.
func CompletionByDay(tasks []models.Task, now time.Time, days int) []DayStat {
	if days <= 0 {
		return nil
	}
	out := make([]DayStat, days)
	today := startOfDay(now)
	for i := range out {
		day := today.AddDate(0, 0, i-days+1)
		out[i] = DayStat{Day: day, Label: day.Format("Mon")}
	}

	for _, t := range tasks {
		created := startOfDay(t.CreatedAt.In(now.Location()))
		for i := range out {
			if created.Equal(out[i].Day) {
				out[i].Total++
				if t.Completed {
					out[i].Completed++
				}
				break
			}
		}
	}
	return out
}

// UpcomingTasks returns the first n open tasks ordered by due date
func UpcomingTasks(tasks []models.Task, n int) []models.Task {
	if n <= 0 {
		return nil
	}
	upcoming := FilterTasks(SortTasks(tasks, SortDueDate), Filter{Status: StatusActive})
	if len(upcoming) > n {
		upcoming = upcoming[:n]
	}
	return upcoming
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
