package ports

import "time"

// Timer is a cancellable one-shot timer
type Timer interface {
	// Stop cancels the timer. It returns false if the timer already fired
	// or was already stopped.
	Stop() bool
}

// Scheduler runs a callback once after a delay.
// Implementations must invoke f on the goroutine that drives the tracker.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}
