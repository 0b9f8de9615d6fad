package tasks

import (
	"time"

	"github.com/tgienger/taskmaster/internal/models"
)

// Action is a state transition understood by Reduce
type Action interface {
	isAction()
}

type AddTask struct{ Task models.Task }

type UpdateTask struct{ Task models.Task }

type DeleteTask struct{ ID string }

// ToggleCompleted flips the completed flag; At stamps CompletedAt when completing
type ToggleCompleted struct {
	ID string
	At time.Time
}

type SetLoading struct{ Loading bool }

type SetError struct{ Error string }

type UpdateStreak struct{ Streak models.StreakData }

func (AddTask) isAction()         {}
func (UpdateTask) isAction()      {}
func (DeleteTask) isAction()      {}
func (ToggleCompleted) isAction() {}
func (SetLoading) isAction()      {}
func (SetError) isAction()        {}
func (UpdateStreak) isAction()    {}

// Reduce returns the state after applying a. It never modifies state; the
// returned task slice is always freshly allocated.
func Reduce(state models.TaskState, a Action) models.TaskState {
	next := state
	next.Tasks = make([]models.Task, 0, len(state.Tasks)+1)

	switch a := a.(type) {
	case AddTask:
		next.Tasks = append(next.Tasks, a.Task.Clone())
		next.Tasks = append(next.Tasks, state.Tasks...)

	case UpdateTask:
		for _, t := range state.Tasks {
			if t.ID == a.Task.ID {
				t = a.Task.Clone()
			}
			next.Tasks = append(next.Tasks, t)
		}

	case DeleteTask:
		for _, t := range state.Tasks {
			if t.ID != a.ID {
				next.Tasks = append(next.Tasks, t)
			}
		}

	case ToggleCompleted:
		for _, t := range state.Tasks {
			if t.ID == a.ID {
				t.Completed = !t.Completed
				if t.Completed {
					at := a.At
					t.CompletedAt = &at
				} else {
					t.CompletedAt = nil
				}
			}
			next.Tasks = append(next.Tasks, t)
		}

	case SetLoading:
		next.Tasks = append(next.Tasks, state.Tasks...)
		next.Loading = a.Loading

	case SetError:
		next.Tasks = append(next.Tasks, state.Tasks...)
		next.Error = a.Error

	case UpdateStreak:
		next.Tasks = append(next.Tasks, state.Tasks...)
		next.Streak = a.Streak.Clone()

	default:
		next.Tasks = append(next.Tasks, state.Tasks...)
	}

	return next
}
