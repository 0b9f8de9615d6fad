// Package notify carries short user-facing messages out of the task store.
// Delivery is fire-and-forget: a notifier never reports failure to its caller.
package notify

import (
	"fmt"
	"io"
	"log"
	"sync"
	"time"
)

// Level is the severity of a notification
type Level int

const (
	Info Level = iota
	Success
)

func (l Level) String() string {
	if l == Success {
		return "success"
	}
	return "info"
}

// Notifier receives user-facing messages
type Notifier interface {
	Notify(level Level, msg string)
}

// Func adapts a plain function to a Notifier
type Func func(level Level, msg string)

func (f Func) Notify(level Level, msg string) { f(level, msg) }

// Discard drops every message
var Discard Notifier = Func(func(Level, string) {})

// Writer prints messages to w, one per line
type Writer struct {
	W io.Writer
}

func (n Writer) Notify(level Level, msg string) {
	prefix := "•"
	if level == Success {
		prefix = "✓"
	}
	fmt.Fprintf(n.W, "%s %s\n", prefix, msg)
}

// Log writes messages through the standard logger
type Log struct{}

func (Log) Notify(level Level, msg string) {
	log.Printf("%s: %s", level, msg)
}

// Message is a notification with the time it was received
type Message struct {
	Level Level
	Text  string
	At    time.Time
}

// Latest keeps only the most recent message, for a status bar
type Latest struct {
	mu  sync.Mutex
	msg Message
	now func() time.Time
}

func NewLatest() *Latest {
	return &Latest{now: time.Now}
}

func (n *Latest) Notify(level Level, msg string) {
	n.mu.Lock()
	n.msg = Message{Level: level, Text: msg, At: n.now()}
	n.mu.Unlock()
}

// Current returns the last message if it is younger than ttl
func (n *Latest) Current(ttl time.Duration) (Message, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.msg.Text == "" || n.now().Sub(n.msg.At) > ttl {
		return Message{}, false
	}
	return n.msg, true
}

// Recorder collects every message; used in tests
type Recorder struct {
	mu   sync.Mutex
	msgs []Message
}

func (r *Recorder) Notify(level Level, msg string) {
	r.mu.Lock()
	r.msgs = append(r.msgs, Message{Level: level, Text: msg})
	r.mu.Unlock()
}

// Messages returns the recorded message texts in order
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.msgs))
	for i, m := range r.msgs {
		out[i] = m.Text
	}
	return out
}

// Reset forgets recorded messages
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.msgs = nil
	r.mu.Unlock()
}

// Muted forwards to n only while enabled reports true
func Muted(n Notifier, enabled func() bool) Notifier {
	return Func(func(level Level, msg string) {
		if enabled() {
			n.Notify(level, msg)
		}
	})
}

// Tee forwards every message to each of ns in order
func Tee(ns ...Notifier) Notifier {
	return Func(func(level Level, msg string) {
		for _, n := range ns {
			n.Notify(level, msg)
		}
	})
}
