// Package eventloop serializes key events and timer callbacks onto one goroutine
package eventloop

import (
	"context"
	"sync"
	"time"

	"github.com/renato0307/keebs/internal/logging"
	"github.com/renato0307/keebs/internal/ports"
)

// DefaultBuffer is the queue size used when New is given a non-positive size
const DefaultBuffer = 64

// Loop is a Scheduler whose callbacks are posted to a queue instead of running
// on the timer goroutine. Exactly one goroutine drains the queue, either Run or
// a bubbletea command reading from Queue.
type Loop struct {
	queue     chan func()
	done      chan struct{}
	closeOnce sync.Once
}

// Verify interface compliance at compile time
var _ ports.Scheduler = (*Loop)(nil)

// New creates a Loop with the given queue size
func New(buffer int) *Loop {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Loop{
		queue: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Post enqueues fn. It blocks while the queue is full and returns false once
// the loop is closed.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case <-l.done:
		return false
	case l.queue <- fn:
		return true
	}
}

type loopTimer struct {
	timer *time.Timer
}

func (t *loopTimer) Stop() bool {
	return t.timer.Stop()
}

// AfterFunc posts f to the queue after d. A callback that was already queued
// when Stop is called still runs; callers drop such fires themselves.
func (l *Loop) AfterFunc(d time.Duration, f func()) ports.Timer {
	return &loopTimer{
		timer: time.AfterFunc(d, func() {
			if !l.Post(f) {
				logging.Logger.Debug("Dropped timer callback on closed event loop")
			}
		}),
	}
}

// Queue exposes the queue for hosts that drain it themselves
func (l *Loop) Queue() <-chan func() {
	return l.queue
}

// Done is closed when the loop is closed
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Run executes queued callbacks until ctx is cancelled or the loop is closed
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.queue:
			fn()
		}
	}
}

// Close stops the loop. Pending callbacks are discarded.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
	})
}
