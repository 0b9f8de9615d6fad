package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/taskmaster/internal/models"
)

func at(y int, m time.Month, d, h, mi int) time.Time {
	return time.Date(y, m, d, h, mi, 0, 0, time.Local)
}

func ptr(t time.Time) *time.Time { return &t }

func TestApply_FirstCompletionStartsAtOne(t *testing.T) {
	now := at(2026, 2, 7, 9, 0)

	got := Apply(models.StreakData{LongestStreak: 3}, now)

	assert.Equal(t, 1, got.CurrentStreak)
	assert.Equal(t, 3, got.LongestStreak)
	require.NotNil(t, got.LastCompletedDate)
	assert.True(t, got.LastCompletedDate.Equal(now))
}

func TestApply_YesterdayIncrementsToMilestone(t *testing.T) {
	now := at(2026, 2, 7, 9, 0)
	cur := models.StreakData{CurrentStreak: 4, LongestStreak: 4, LastCompletedDate: ptr(now.AddDate(0, 0, -1))}

	got := Apply(cur, now)

	assert.Equal(t, 5, got.CurrentStreak)
	assert.Equal(t, 5, got.LongestStreak)
	assert.True(t, got.LastCompletedDate.Equal(now))
	assert.True(t, IsMilestone(got.CurrentStreak))
}

func TestApply_SameDayIsIdempotent(t *testing.T) {
	morning := at(2026, 2, 7, 8, 0)
	evening := at(2026, 2, 7, 22, 30)
	cur := models.StreakData{CurrentStreak: 2, LongestStreak: 6, LastCompletedDate: ptr(morning.AddDate(0, 0, -1))}

	first := Apply(cur, morning)
	second := Apply(first, evening)

	assert.Equal(t, first, second)
	assert.Equal(t, 3, second.CurrentStreak)
	assert.True(t, second.LastCompletedDate.Equal(morning))
}

func TestApply_GapResetsStreak(t *testing.T) {
	now := at(2026, 2, 7, 12, 0)
	cur := models.StreakData{CurrentStreak: 9, LongestStreak: 12, LastCompletedDate: ptr(now.AddDate(0, 0, -3))}

	got := Apply(cur, now)

	assert.Equal(t, 1, got.CurrentStreak)
	assert.Equal(t, 12, got.LongestStreak)
}

func TestApply_UsesCalendarDaysNotElapsedTime(t *testing.T) {
	// 2 minutes apart across midnight: consecutive days
	late := at(2026, 2, 6, 23, 59)
	early := at(2026, 2, 7, 0, 1)
	got := Apply(models.StreakData{CurrentStreak: 1, LongestStreak: 1, LastCompletedDate: &late}, early)
	assert.Equal(t, 2, got.CurrentStreak)

	// 25 hours apart but a whole calendar day skipped: broken
	start := at(2026, 2, 5, 23, 30)
	end := at(2026, 2, 7, 0, 30)
	got = Apply(models.StreakData{CurrentStreak: 4, LongestStreak: 4, LastCompletedDate: &start}, end)
	assert.Equal(t, 1, got.CurrentStreak)
	assert.Equal(t, 4, got.LongestStreak)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	last := at(2026, 2, 6, 10, 0)
	cur := models.StreakData{CurrentStreak: 1, LongestStreak: 1, LastCompletedDate: &last}

	_ = Apply(cur, at(2026, 2, 7, 10, 0))

	assert.Equal(t, 1, cur.CurrentStreak)
	assert.True(t, cur.LastCompletedDate.Equal(at(2026, 2, 6, 10, 0)))
}

func TestApply_LongestIsWatermark(t *testing.T) {
	s := models.StreakData{}
	day := at(2026, 1, 1, 10, 0)
	// complete on days 0-5, skip 6-7, complete 8-9, same-day repeats on 9
	offsets := []int{0, 1, 2, 3, 4, 5, 8, 9, 9}
	prevLongest := 0
	for _, off := range offsets {
		s = Apply(s, day.AddDate(0, 0, off))
		assert.GreaterOrEqual(t, s.LongestStreak, prevLongest)
		assert.GreaterOrEqual(t, s.LongestStreak, s.CurrentStreak)
		prevLongest = s.LongestStreak
	}
	assert.Equal(t, 2, s.CurrentStreak)
	assert.Equal(t, 6, s.LongestStreak)
}

func TestIsMilestone(t *testing.T) {
	assert.False(t, IsMilestone(0))
	assert.False(t, IsMilestone(4))
	assert.True(t, IsMilestone(5))
	assert.True(t, IsMilestone(10))
}

func TestStatus(t *testing.T) {
	now := at(2026, 2, 7, 12, 0)

	assert.Equal(t, Broken, Status(models.StreakData{}, now))
	assert.Equal(t, Active, Status(models.StreakData{CurrentStreak: 2, LastCompletedDate: ptr(now.Add(-time.Hour))}, now))
	assert.Equal(t, AtRisk, Status(models.StreakData{CurrentStreak: 2, LastCompletedDate: ptr(now.AddDate(0, 0, -1))}, now))

	stale := models.StreakData{CurrentStreak: 7, LongestStreak: 7, LastCompletedDate: ptr(now.AddDate(0, 0, -2))}
	assert.Equal(t, Broken, Status(stale, now))
	assert.Equal(t, 0, Current(stale, now))
}

func TestHeadline(t *testing.T) {
	assert.Equal(t, "Complete a task today to start your streak!", Headline(0))
	assert.Equal(t, "You've completed tasks 1 day in a row!", Headline(1))
	assert.Equal(t, "You've completed tasks 12 days in a row!", Headline(12))
}
