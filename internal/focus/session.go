// Package focus implements the countdown behind focus sessions.
//
// A Session does not own a timer. The caller schedules ticks and passes back
// the generation it was given; any pause, reset, skip or mode change bumps the
// generation so ticks scheduled earlier are ignored.
package focus

import (
	"fmt"
	"time"

	"github.com/tgienger/taskmaster/internal/settings"
)

// Mode is the kind of focus session
type Mode int

const (
	Pomodoro Mode = iota
	ShortBreak
	LongBreak
)

// Modes lists the modes in display order
var Modes = []Mode{Pomodoro, ShortBreak, LongBreak}

// LongBreakLength is fixed; the other lengths come from settings
const LongBreakLength = 15 * time.Minute

func (m Mode) String() string {
	switch m {
	case ShortBreak:
		return "Short Break"
	case LongBreak:
		return "Long Break"
	default:
		return "Pomodoro"
	}
}

// Length returns how long a session of mode m lasts under s
func (m Mode) Length(s settings.Settings) time.Duration {
	switch m {
	case ShortBreak:
		return time.Duration(s.BreakDuration) * time.Minute
	case LongBreak:
		return LongBreakLength
	default:
		return time.Duration(s.FocusDuration) * time.Minute
	}
}

// TickInterval is the countdown granularity
const TickInterval = time.Second

// Session is a pausable countdown
type Session struct {
	mode      Mode
	length    time.Duration
	remaining time.Duration
	running   bool
	completed bool
	gen       int
}

func NewSession(mode Mode, length time.Duration) *Session {
	return &Session{mode: mode, length: length, remaining: length}
}

func (s *Session) Mode() Mode               { return s.mode }
func (s *Session) Length() time.Duration    { return s.length }
func (s *Session) Remaining() time.Duration { return s.remaining }
func (s *Session) Running() bool            { return s.running }
func (s *Session) Completed() bool          { return s.completed }
func (s *Session) Generation() int          { return s.gen }

// Start begins or resumes the countdown and returns the generation that
// ticks must carry. Starting a completed session restarts it.
func (s *Session) Start() int {
	if s.running {
		return s.gen
	}
	if s.completed {
		s.completed = false
		s.remaining = s.length
	}
	s.gen++
	s.running = true
	return s.gen
}

// Pause stops the countdown, keeping the remaining time
func (s *Session) Pause() {
	if !s.running {
		return
	}
	s.running = false
	s.gen++
}

// Toggle pauses a running session or starts a stopped one. It reports the
// current generation and whether the session is now running.
func (s *Session) Toggle() (int, bool) {
	if s.running {
		s.Pause()
		return s.gen, false
	}
	return s.Start(), true
}

// Reset stops the session and refills it
func (s *Session) Reset() {
	s.gen++
	s.running = false
	s.completed = false
	s.remaining = s.length
}

// Skip ends the session immediately as completed
func (s *Session) Skip() {
	s.gen++
	s.running = false
	s.completed = true
	s.remaining = 0
}

// SetMode switches to another mode and length, resetting the countdown
func (s *Session) SetMode(mode Mode, length time.Duration) {
	s.mode = mode
	s.length = length
	s.Reset()
}

// Tick advances the countdown by one interval. Ticks from an old generation
// or for a stopped session do nothing. It reports whether this tick finished
// the session.
func (s *Session) Tick(gen int) bool {
	if gen != s.gen || !s.running {
		return false
	}
	s.remaining -= TickInterval
	if s.remaining > 0 {
		return false
	}
	s.remaining = 0
	s.running = false
	s.completed = true
	s.gen++
	return true
}

// Progress is the elapsed fraction in [0, 1]
func (s *Session) Progress() float64 {
	if s.length <= 0 {
		return 1
	}
	return 1 - float64(s.remaining)/float64(s.length)
}

// Label describes the session state for display
func (s *Session) Label() string {
	switch {
	case s.completed:
		return "COMPLETED"
	case s.running:
		return "FOCUS TIME"
	default:
		return "PAUSED"
	}
}

// FormatRemaining renders the remaining time as MM:SS
func (s *Session) FormatRemaining() string {
	secs := int(s.remaining / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
