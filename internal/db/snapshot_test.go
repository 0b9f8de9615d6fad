package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/taskmaster/internal/models"
)

func sampleState() models.TaskState {
	created := time.Date(2026, 2, 7, 9, 30, 0, 0, time.Local)
	due := created.AddDate(0, 0, 3)
	completed := created.Add(2 * time.Hour)
	last := completed

	return models.TaskState{
		Tasks: []models.Task{
			{
				ID:          "b",
				Title:       "Buy milk",
				Completed:   true,
				Priority:    models.PriorityMedium,
				CreatedAt:   created.Add(time.Minute),
				CompletedAt: &completed,
				Tags:        []string{"errands", "home"},
			},
			{
				ID:          "a",
				Title:       "Write report",
				Description: "Q1 numbers",
				Priority:    models.PriorityHigh,
				DueDate:     &due,
				CreatedAt:   created,
			},
		},
		Streak: models.StreakData{CurrentStreak: 3, LongestStreak: 8, LastCompletedDate: &last},
	}
}

func assertSameState(t *testing.T, want, got models.TaskState) {
	t.Helper()
	require.Len(t, got.Tasks, len(want.Tasks))
	for i := range want.Tasks {
		w, g := want.Tasks[i], got.Tasks[i]
		assert.Equal(t, w.ID, g.ID)
		assert.Equal(t, w.Title, g.Title)
		assert.Equal(t, w.Description, g.Description)
		assert.Equal(t, w.Completed, g.Completed)
		assert.Equal(t, w.Priority, g.Priority)
		assert.Equal(t, w.Tags, g.Tags)
		assert.True(t, w.CreatedAt.Equal(g.CreatedAt), "createdAt of %s", w.ID)
		assertSameTime(t, w.DueDate, g.DueDate)
		assertSameTime(t, w.CompletedAt, g.CompletedAt)
	}
	assert.Equal(t, want.Streak.CurrentStreak, got.Streak.CurrentStreak)
	assert.Equal(t, want.Streak.LongestStreak, got.Streak.LongestStreak)
	assertSameTime(t, want.Streak.LastCompletedDate, got.Streak.LastCompletedDate)
}

func assertSameTime(t *testing.T, want, got *time.Time) {
	t.Helper()
	if want == nil {
		assert.Nil(t, got)
		return
	}
	require.NotNil(t, got)
	assert.True(t, want.Equal(*got), "want %s got %s", want, got)
}

func TestSnapshotStore_RoundTrip(t *testing.T) {
	kv := NewMemoryKV()
	store := NewSnapshotStore(kv)

	require.NoError(t, store.Save(sampleState()))

	assertSameState(t, sampleState(), store.Load())
}

func TestSnapshotStore_WireFormat(t *testing.T) {
	kv := NewMemoryKV()
	created := time.Date(2026, 2, 7, 9, 30, 0, 0, time.UTC)
	state := models.TaskState{
		Tasks: []models.Task{{ID: "1", Title: "Buy milk", Priority: models.PriorityMedium, CreatedAt: created}},
	}

	require.NoError(t, NewSnapshotStore(kv).Save(state))

	tasks, _ := kv.GetSetting(TasksKey)
	streak, _ := kv.GetSetting(StreakKey)
	assert.JSONEq(t, `[{"id":"1","title":"Buy milk","completed":false,"priority":"medium","createdAt":"2026-02-07T09:30:00.000Z"}]`, tasks)
	assert.JSONEq(t, `{"currentStreak":0,"longestStreak":0,"lastCompletedDate":null}`, streak)
}

func TestSnapshotStore_MissingKeysGiveDefaults(t *testing.T) {
	state := NewSnapshotStore(NewMemoryKV()).Load()

	assert.NotNil(t, state.Tasks)
	assert.Empty(t, state.Tasks)
	assert.Equal(t, models.StreakData{}, state.Streak)
}

func TestSnapshotStore_CorruptPayloadGivesDefaults(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.SetSetting(TasksKey, "{not json"))
	require.NoError(t, kv.SetSetting(StreakKey, `"a string"`))

	state := NewSnapshotStore(kv).Load()

	assert.Empty(t, state.Tasks)
	assert.Equal(t, models.StreakData{}, state.Streak)
}

func TestSnapshotStore_CorruptTasksKeepStreak(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.SetSetting(TasksKey, "[[["))
	require.NoError(t, kv.SetSetting(StreakKey, `{"currentStreak":2,"longestStreak":4,"lastCompletedDate":"2026-02-06T20:00:00.000Z"}`))

	state := NewSnapshotStore(kv).Load()

	assert.Empty(t, state.Tasks)
	assert.Equal(t, 2, state.Streak.CurrentStreak)
	assert.Equal(t, 4, state.Streak.LongestStreak)
	require.NotNil(t, state.Streak.LastCompletedDate)
	assert.True(t, state.Streak.LastCompletedDate.Equal(time.Date(2026, 2, 6, 20, 0, 0, 0, time.UTC)))
}

func TestSnapshotStore_DecodesMalformedFields(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.SetSetting(TasksKey, `[
		{"id":"ok","title":"Valid","completed":true,"priority":"high","createdAt":"2026-02-07T09:30:00Z","dueDate":"someday","completedAt":"2026-02-07"},
		{"id":"","title":"No id","priority":"low","createdAt":"2026-02-07T09:30:00Z"},
		{"id":"bad-created","title":"Bad","priority":"low","createdAt":"yesterday"},
		{"id":"odd-priority","title":"Odd","priority":"urgent","createdAt":"2026-02-07T09:30:00.123+02:00"},
		{"id":"ok","title":"Duplicate","priority":"low","createdAt":"2026-02-07T09:30:00Z"},
		{"id":"open","title":"Open","completed":false,"priority":"low","createdAt":"2026-02-07T09:30:00Z","completedAt":"2026-02-07T10:00:00Z"}
	]`))
	require.NoError(t, kv.SetSetting(StreakKey, `{"currentStreak":5,"longestStreak":-1,"lastCompletedDate":"not a date"}`))

	state := NewSnapshotStore(kv).Load()

	require.Len(t, state.Tasks, 3)

	valid := state.Tasks[0]
	assert.Equal(t, "Valid", valid.Title)
	assert.Nil(t, valid.DueDate)
	require.NotNil(t, valid.CompletedAt)
	assert.True(t, valid.CompletedAt.Equal(time.Date(2026, 2, 7, 0, 0, 0, 0, time.Local)))

	odd := state.Tasks[1]
	assert.Equal(t, models.PriorityMedium, odd.Priority)
	assert.True(t, odd.CreatedAt.Equal(time.Date(2026, 2, 7, 7, 30, 0, 123e6, time.UTC)))

	open := state.Tasks[2]
	assert.Nil(t, open.CompletedAt)

	assert.Equal(t, 5, state.Streak.CurrentStreak)
	assert.Equal(t, 5, state.Streak.LongestStreak)
	assert.Nil(t, state.Streak.LastCompletedDate)
}

func TestSQLite_SnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "taskmaster.db")
	database, err := New(path)
	require.NoError(t, err)

	require.NoError(t, NewSnapshotStore(database).Save(sampleState()))
	require.NoError(t, database.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	assertSameState(t, sampleState(), NewSnapshotStore(reopened).Load())
}

func TestSQLite_Settings(t *testing.T) {
	database, err := New(filepath.Join(t.TempDir(), "taskmaster.db"))
	require.NoError(t, err)
	defer database.Close()

	v, err := database.GetSetting("missing")
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, database.SetSetting("k", "one"))
	require.NoError(t, database.SetSetting("k", "two"))
	v, err = database.GetSetting("k")
	require.NoError(t, err)
	assert.Equal(t, "two", v)
}
