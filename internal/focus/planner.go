package focus

import (
	"fmt"

	"github.com/tgienger/taskmaster/internal/notify"
)

// LongBreakEvery is how many pomodoros earn a long break
const LongBreakEvery = 4

// Planner counts finished sessions and suggests what to do next
type Planner struct {
	notifier  notify.Notifier
	sessions  int
	pomodoros int
}

func NewPlanner(n notify.Notifier) *Planner {
	if n == nil {
		n = notify.Discard
	}
	return &Planner{notifier: n}
}

func (p *Planner) Sessions() int  { return p.sessions }
func (p *Planner) Pomodoros() int { return p.pomodoros }

// Complete records a finished session of mode m, announces it and returns
// the suggested next mode
func (p *Planner) Complete(m Mode) Mode {
	p.sessions++
	p.notifier.Notify(notify.Success, fmt.Sprintf("%s session completed!", m))

	if m != Pomodoro {
		return Pomodoro
	}
	p.pomodoros++
	if p.pomodoros%LongBreakEvery == 0 {
		p.notifier.Notify(notify.Info, "Time for a longer break!")
		return LongBreak
	}
	p.notifier.Notify(notify.Info, "Time for a short break!")
	return ShortBreak
}
