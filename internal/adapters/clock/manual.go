// Package clock provides Scheduler implementations driven by virtual time
package clock

import (
	"slices"
	"time"

	"github.com/renato0307/keebs/internal/ports"
)

// Manual is a Scheduler whose time only moves when Advance is called.
// Callbacks run synchronously inside Advance, on the caller's goroutine.
type Manual struct {
	now    time.Duration
	nextID uint64
	timers []*manualTimer
}

type manualTimer struct {
	clock   *Manual
	id      uint64
	due     time.Duration
	fn      func()
	stopped bool
	fired   bool
}

// Verify interface compliance at compile time
var _ ports.Scheduler = (*Manual)(nil)

// NewManual creates a Manual clock at t=0
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc schedules f to run once the clock has advanced by d
func (m *Manual) AfterFunc(d time.Duration, f func()) ports.Timer {
	if d < 0 {
		d = 0
	}
	m.nextID++
	t := &manualTimer{
		clock: m,
		id:    m.nextID,
		due:   m.now + d,
		fn:    f,
	}
	m.timers = append(m.timers, t)
	return t
}

// Stop prevents the timer from firing. It reports whether the call stopped it.
func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	t.clock.remove(t)
	return true
}

func (m *Manual) remove(t *manualTimer) {
	m.timers = slices.DeleteFunc(m.timers, func(o *manualTimer) bool { return o == t })
}

// Advance moves the clock forward by d, firing due timers in order
func (m *Manual) Advance(d time.Duration) {
	m.AdvanceTo(m.now + d)
}

// AdvanceTo moves the clock to the absolute offset target, firing due timers
// in due order. Timers scheduled by callbacks fire too if they fall due before
// target. Moving backwards is a no-op.
func (m *Manual) AdvanceTo(target time.Duration) {
	for {
		next := m.nextDue(target)
		if next == nil {
			break
		}
		m.now = next.due
		next.fired = true
		m.remove(next)
		next.fn()
	}
	if target > m.now {
		m.now = target
	}
}

func (m *Manual) nextDue(target time.Duration) *manualTimer {
	var next *manualTimer
	for _, t := range m.timers {
		if t.due > target {
			continue
		}
		if next == nil || t.due < next.due || (t.due == next.due && t.id < next.id) {
			next = t
		}
	}
	return next
}

// Elapsed returns the virtual time since the clock was created
func (m *Manual) Elapsed() time.Duration {
	return m.now
}

// Pending returns the number of timers that have neither fired nor been stopped
func (m *Manual) Pending() int {
	return len(m.timers)
}
