// Package streak decides how a task completion moves the daily streak.
package streak

import (
	"fmt"
	"time"

	"github.com/tgienger/taskmaster/internal/models"
)

// MilestoneEvery is the streak length interval that earns a celebration.
const MilestoneEvery = 5

// Apply returns the streak after a completion at now. At most one increment
// happens per local calendar day; a gap of two or more days restarts at 1.
func Apply(s models.StreakData, now time.Time) models.StreakData {
	if s.LastCompletedDate != nil && sameDay(*s.LastCompletedDate, now) {
		return s.Clone()
	}

	next := s.CurrentStreak
	if s.LastCompletedDate != nil && sameDay(*s.LastCompletedDate, now.AddDate(0, 0, -1)) {
		next++
	} else {
		next = 1
	}

	completed := now
	return models.StreakData{
		CurrentStreak:     next,
		LongestStreak:     max(next, s.LongestStreak),
		LastCompletedDate: &completed,
	}
}

// IsMilestone reports whether a streak of n days deserves a notification.
func IsMilestone(n int) bool {
	return n > 0 && n%MilestoneEvery == 0
}

// State describes a streak as seen at a given moment.
type State int

const (
	Broken State = iota // no completion today or yesterday
	AtRisk              // last completion was yesterday; complete something today
	Active              // already counted today
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case AtRisk:
		return "at risk"
	default:
		return "broken"
	}
}

// Status reports the state of s at now without changing it.
func Status(s models.StreakData, now time.Time) State {
	if s.LastCompletedDate == nil || s.CurrentStreak == 0 {
		return Broken
	}
	switch {
	case sameDay(*s.LastCompletedDate, now):
		return Active
	case sameDay(*s.LastCompletedDate, now.AddDate(0, 0, -1)):
		return AtRisk
	}
	return Broken
}

// Current is the streak length a viewer should see at now: a streak that was
// not extended yesterday or today is shown as 0 even though the stored value
// keeps the old count until the next completion.
func Current(s models.StreakData, now time.Time) int {
	if Status(s, now) == Broken {
		return 0
	}
	return s.CurrentStreak
}

func sameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Headline is the one-line encouragement shown next to a streak count.
func Headline(current int) string {
	switch current {
	case 0:
		return "Complete a task today to start your streak!"
	case 1:
		return "You've completed tasks 1 day in a row!"
	}
	return fmt.Sprintf("You've completed tasks %d days in a row!", current)
}
