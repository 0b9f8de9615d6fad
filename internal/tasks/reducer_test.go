package tasks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/taskmaster/internal/models"
)

func twoTasks() models.TaskState {
	created := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	return models.TaskState{
		Tasks: []models.Task{
			{ID: "b", Title: "Second", Priority: models.PriorityLow, CreatedAt: created.Add(time.Hour), Tags: []string{"x"}},
			{ID: "a", Title: "First", Priority: models.PriorityHigh, CreatedAt: created},
		},
	}
}

func TestReduce_AddPrepends(t *testing.T) {
	state := twoTasks()
	next := Reduce(state, AddTask{Task: models.Task{ID: "c", Title: "Third"}})

	require.Len(t, next.Tasks, 3)
	assert.Equal(t, []string{"c", "b", "a"}, ids(next.Tasks))
	assert.Len(t, state.Tasks, 2)
}

func TestReduce_UpdateReplacesWholeRecord(t *testing.T) {
	state := twoTasks()
	next := Reduce(state, UpdateTask{Task: models.Task{ID: "b", Title: "Renamed", Priority: models.PriorityHigh}})

	assert.Equal(t, "Renamed", next.Tasks[0].Title)
	assert.Nil(t, next.Tasks[0].Tags)
	assert.Equal(t, "Second", state.Tasks[0].Title)
	assert.Equal(t, []string{"x"}, state.Tasks[0].Tags)
}

func TestReduce_UnknownIDsAreNoOps(t *testing.T) {
	state := twoTasks()

	for _, a := range []Action{
		UpdateTask{Task: models.Task{ID: "zzz", Title: "ghost"}},
		DeleteTask{ID: "zzz"},
		ToggleCompleted{ID: "zzz", At: time.Now()},
	} {
		next := Reduce(state, a)
		assert.Equal(t, state.Tasks, next.Tasks, "%T", a)
	}
}

func TestReduce_Delete(t *testing.T) {
	next := Reduce(twoTasks(), DeleteTask{ID: "b"})
	assert.Equal(t, []string{"a"}, ids(next.Tasks))
}

func TestReduce_ToggleMaintainsCompletedAt(t *testing.T) {
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

	done := Reduce(twoTasks(), ToggleCompleted{ID: "a", At: at})
	require.True(t, done.Tasks[1].Completed)
	require.NotNil(t, done.Tasks[1].CompletedAt)
	assert.True(t, done.Tasks[1].CompletedAt.Equal(at))
	assert.Equal(t, "First", done.Tasks[1].Title)

	reopened := Reduce(done, ToggleCompleted{ID: "a", At: at.Add(time.Hour)})
	assert.False(t, reopened.Tasks[1].Completed)
	assert.Nil(t, reopened.Tasks[1].CompletedAt)
	assert.True(t, done.Tasks[1].Completed)
}

func TestReduce_FlagsAndStreak(t *testing.T) {
	state := twoTasks()

	assert.True(t, Reduce(state, SetLoading{Loading: true}).Loading)
	assert.Equal(t, "boom", Reduce(state, SetError{Error: "boom"}).Error)

	last := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	s := models.StreakData{CurrentStreak: 2, LongestStreak: 3, LastCompletedDate: &last}
	next := Reduce(state, UpdateStreak{Streak: s})
	assert.Equal(t, 2, next.Streak.CurrentStreak)
	assert.Equal(t, 0, state.Streak.CurrentStreak)
}

func TestReduce_NeverAliasesInput(t *testing.T) {
	state := twoTasks()
	actions := []Action{
		SetLoading{Loading: true},
		SetError{Error: "x"},
		UpdateStreak{},
		DeleteTask{ID: "zzz"},
	}
	for _, a := range actions {
		next := Reduce(state, a)
		next.Tasks[0].Title = "mutated"
		assert.Equal(t, "Second", state.Tasks[0].Title, "%T", a)
	}
}

func ids(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
