package tasks

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/taskmaster/internal/clock"
	"github.com/tgienger/taskmaster/internal/db"
	"github.com/tgienger/taskmaster/internal/models"
	"github.com/tgienger/taskmaster/internal/notify"
)

type recordingPersister struct {
	saves []models.TaskState
	err   error
}

func (p *recordingPersister) Save(state models.TaskState) error {
	p.saves = append(p.saves, state.Clone())
	return p.err
}

type fixture struct {
	store   *Store
	clock   *clock.Fake
	persist *recordingPersister
	notes   *notify.Recorder
}

func newFixture(t *testing.T, initial models.TaskState) *fixture {
	t.Helper()
	f := &fixture{
		clock:   clock.NewFake(time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)),
		persist: &recordingPersister{},
		notes:   &notify.Recorder{},
	}
	n := 0
	f.store = NewStore(initial, f.persist,
		WithClock(f.clock),
		WithNotifier(f.notes),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
	return f
}

func TestStore_AddTask(t *testing.T) {
	f := newFixture(t, models.TaskState{Tasks: []models.Task{}})

	task := f.store.AddTask(models.Draft{Title: "Buy milk", Priority: models.PriorityMedium})

	assert.Equal(t, "id-1", task.ID)
	assert.False(t, task.Completed)
	assert.True(t, task.CreatedAt.Equal(f.clock.Now()))

	state := f.store.Snapshot()
	require.Len(t, state.Tasks, 1)
	assert.Equal(t, "Buy milk", state.Tasks[0].Title)
	assert.Equal(t, []string{"Task added successfully"}, f.notes.Messages())
	require.Len(t, f.persist.saves, 1)
	assert.Len(t, f.persist.saves[0].Tasks, 1)
}

func TestStore_AddTaskPrependsAndNormalizesTags(t *testing.T) {
	f := newFixture(t, models.TaskState{})

	f.store.AddTask(models.Draft{Title: "one", Priority: models.PriorityLow})
	f.store.AddTask(models.Draft{Title: "two", Priority: models.PriorityLow, Tags: []string{" home ", "", "work", "home"}})

	state := f.store.Snapshot()
	assert.Equal(t, []string{"id-2", "id-1"}, ids(state.Tasks))
	assert.Equal(t, []string{"home", "work"}, state.Tasks[0].Tags)
}

func TestStore_ToggleFirstCompletion(t *testing.T) {
	created := time.Date(2026, 3, 9, 8, 0, 0, 0, time.Local)
	f := newFixture(t, models.TaskState{
		Tasks: []models.Task{{ID: "1", Title: "Buy milk", Priority: models.PriorityMedium, CreatedAt: created}},
	})

	f.store.ToggleCompleted("1")

	state := f.store.Snapshot()
	assert.True(t, state.Tasks[0].Completed)
	require.NotNil(t, state.Tasks[0].CompletedAt)
	assert.True(t, state.Tasks[0].CompletedAt.Equal(f.clock.Now()))
	assert.Equal(t, 1, state.Streak.CurrentStreak)
	assert.Equal(t, 1, state.Streak.LongestStreak)
	require.NotNil(t, state.Streak.LastCompletedDate)
	assert.True(t, state.Streak.LastCompletedDate.Equal(f.clock.Now()))

	assert.Empty(t, f.notes.Messages())
	require.Len(t, f.persist.saves, 1, "toggle and streak are persisted together")
	assert.Equal(t, 1, f.persist.saves[0].Streak.CurrentStreak)
}

func TestStore_ToggleMilestone(t *testing.T) {
	yesterday := time.Date(2026, 3, 9, 20, 0, 0, 0, time.Local)
	f := newFixture(t, models.TaskState{
		Tasks: []models.Task{
			{ID: "1", Title: "a", Priority: models.PriorityLow},
			{ID: "2", Title: "b", Priority: models.PriorityLow},
		},
		Streak: models.StreakData{CurrentStreak: 4, LongestStreak: 4, LastCompletedDate: &yesterday},
	})

	f.store.ToggleCompleted("1")

	state := f.store.Snapshot()
	assert.Equal(t, 5, state.Streak.CurrentStreak)
	assert.Equal(t, 5, state.Streak.LongestStreak)
	assert.Equal(t, []string{"🔥 5 day streak! Keep it up!"}, f.notes.Messages())

	f.notes.Reset()
	f.store.ToggleCompleted("2")
	assert.Equal(t, 5, f.store.Snapshot().Streak.CurrentStreak)
	assert.Empty(t, f.notes.Messages(), "same-day completion does not repeat the milestone")
}

func TestStore_ReopenLeavesStreak(t *testing.T) {
	f := newFixture(t, models.TaskState{Tasks: []models.Task{{ID: "1", Title: "a", Priority: models.PriorityLow}}})

	f.store.ToggleCompleted("1")
	f.clock.Advance(time.Hour)
	f.store.ToggleCompleted("1")

	state := f.store.Snapshot()
	assert.False(t, state.Tasks[0].Completed)
	assert.Nil(t, state.Tasks[0].CompletedAt)
	assert.Equal(t, 1, state.Streak.CurrentStreak)
	assert.Len(t, f.persist.saves, 2)
}

func TestStore_ToggleUnknownIsNoOp(t *testing.T) {
	f := newFixture(t, twoTasks())

	f.store.ToggleCompleted("missing")

	assert.Equal(t, twoTasks().Tasks, f.store.Snapshot().Tasks)
	assert.Equal(t, 0, f.store.Snapshot().Streak.CurrentStreak)
	assert.Empty(t, f.persist.saves)
}

func TestStore_UpdatePreservesCreatedAt(t *testing.T) {
	f := newFixture(t, twoTasks())
	orig, ok := f.store.Task("a")
	require.True(t, ok)

	edited := orig
	edited.Title = "First, edited"
	edited.CreatedAt = time.Time{}
	edited.Tags = []string{"new", "new "}
	f.store.UpdateTask(edited)

	got, _ := f.store.Task("a")
	assert.Equal(t, "First, edited", got.Title)
	assert.True(t, got.CreatedAt.Equal(orig.CreatedAt))
	assert.Equal(t, []string{"new"}, got.Tags)
	assert.Equal(t, []string{"Task updated successfully"}, f.notes.Messages())
}

func TestStore_UpdateUnknownStillPersistsAndNotifies(t *testing.T) {
	f := newFixture(t, twoTasks())

	f.store.UpdateTask(models.Task{ID: "ghost", Title: "nope"})

	assert.Equal(t, twoTasks().Tasks, f.store.Snapshot().Tasks)
	assert.Len(t, f.persist.saves, 1)
	assert.Equal(t, []string{"Task updated successfully"}, f.notes.Messages())
}

func TestStore_Delete(t *testing.T) {
	f := newFixture(t, twoTasks())

	f.store.DeleteTask("b")

	assert.Equal(t, []string{"a"}, ids(f.store.Snapshot().Tasks))
	assert.Equal(t, []string{"Task deleted successfully"}, f.notes.Messages())
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	f := newFixture(t, twoTasks())

	snap := f.store.Snapshot()
	snap.Tasks[0].Title = "mutated"
	snap.Tasks[0].Tags[0] = "mutated"

	got, _ := f.store.Task("b")
	assert.Equal(t, "Second", got.Title)
	assert.Equal(t, []string{"x"}, got.Tags)
}

func TestStore_Find(t *testing.T) {
	f := newFixture(t, models.TaskState{Tasks: []models.Task{
		{ID: "abc123"}, {ID: "abd456"}, {ID: "ab"},
	}})

	got, err := f.store.Find("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc123", got.ID)

	got, err = f.store.Find("ab")
	require.NoError(t, err, "exact id wins over prefix matches")
	assert.Equal(t, "ab", got.ID)

	_, err = f.store.Find("abx")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = f.store.Find("")
	assert.True(t, errors.Is(err, ErrNotFound))

	f.store.DeleteTask("ab")
	_, err = f.store.Find("ab")
	assert.True(t, errors.Is(err, ErrAmbiguous))
}

func TestStore_SaveErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	p := &recordingPersister{err: errors.New("disk full")}
	s := NewStore(models.TaskState{}, p, WithLogger(log.New(&buf, "", 0)))

	task := s.AddTask(models.Draft{Title: "x", Priority: models.PriorityLow})

	assert.NotEmpty(t, task.ID)
	assert.Len(t, s.Snapshot().Tasks, 1)
	assert.Contains(t, buf.String(), "disk full")
}

func TestStore_PersistsThroughSnapshotStore(t *testing.T) {
	kv := db.NewMemoryKV()
	snap := db.NewSnapshotStore(kv)
	c := clock.NewFake(time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local))

	s := NewStore(snap.Load(), snap, WithClock(c))
	task := s.AddTask(models.Draft{Title: "Persist me", Priority: models.PriorityHigh})
	s.ToggleCompleted(task.ID)

	reloaded := db.NewSnapshotStore(kv).Load()
	require.Len(t, reloaded.Tasks, 1)
	assert.Equal(t, task.ID, reloaded.Tasks[0].ID)
	assert.True(t, reloaded.Tasks[0].Completed)
	assert.Equal(t, 1, reloaded.Streak.CurrentStreak)
}
