package settings

import (
	"log"
	"sync"
	"time"
)

// Debouncer coalesces bursts of changes into a single save. Each Trigger
// restarts the delay; only the latest value is written.
//
// Every value gets a sequence number when it is triggered. Writes run one at
// a time and a value older than the last write is dropped, so a slow save
// from the timer can never overwrite a newer Flush or Replace.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	save    func(Settings) error
	timer   *time.Timer
	pending *Settings
	seq     uint64 // sequence of the newest value
	pendSeq uint64 // sequence of pending
	stopped bool

	writeMu sync.Mutex
	written uint64 // sequence of the last value written, guarded by writeMu
}

func NewDebouncer(delay time.Duration, save func(Settings) error) *Debouncer {
	return &Debouncer{delay: delay, save: save}
}

// Trigger schedules s to be saved after the delay
func (d *Debouncer) Trigger(s Settings) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.seq++
	d.pending = &s
	d.pendSeq = d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// take removes the pending value and stops the timer
func (d *Debouncer) take() (*Settings, uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	s, seq := d.pending, d.pendSeq
	d.pending = nil
	return s, seq
}

// write saves s unless something newer has been written already
func (d *Debouncer) write(s Settings, seq uint64) error {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()
	if seq < d.written {
		return nil
	}
	d.written = seq
	return d.save(s)
}

// Flush saves the pending value now, if there is one
func (d *Debouncer) Flush() error {
	s, seq := d.take()
	if s == nil {
		return nil
	}
	return d.write(*s, seq)
}

// Replace drops any pending value and runs write in place of a save. Saves
// already in flight finish first, and none started earlier runs afterwards.
func (d *Debouncer) Replace(write func() (Settings, error)) (Settings, error) {
	d.take()
	d.mu.Lock()
	d.seq++
	seq := d.seq
	d.mu.Unlock()

	d.writeMu.Lock()
	defer d.writeMu.Unlock()
	d.written = seq
	return write()
}

// Stop drops any pending save. Later Triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	s, seq := d.pending, d.pendSeq
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	if s == nil {
		return
	}
	if err := d.write(*s, seq); err != nil {
		log.Printf("warning: failed to save settings: %v", err)
	}
}
