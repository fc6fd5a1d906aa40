// Package keysource fans host key events out to registered listeners
package keysource

import (
	"slices"

	"github.com/renato0307/keebs/internal/domain"
	"github.com/renato0307/keebs/internal/ports"
)

// Dispatcher is a KeyEventSource fed by the host. Like the tracker it is
// driven from a single goroutine.
type Dispatcher struct {
	nextID    int
	listeners []entry
}

type entry struct {
	id       int
	listener ports.KeyListener
}

// Verify interface compliance at compile time
var _ ports.KeyEventSource = (*Dispatcher)(nil)

// NewDispatcher creates an empty Dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// AddListener attaches l and returns a function that detaches it
func (d *Dispatcher) AddListener(l ports.KeyListener) (remove func()) {
	d.nextID++
	id := d.nextID
	d.listeners = append(d.listeners, entry{id: id, listener: l})

	return func() {
		d.listeners = slices.DeleteFunc(d.listeners, func(e entry) bool {
			return e.id == id
		})
	}
}

// KeyDown delivers ev to every listener and reports whether any handled it
func (d *Dispatcher) KeyDown(ev domain.KeyEvent) bool {
	handled := false
	for _, e := range d.snapshot() {
		if e.listener.KeyDown(ev) {
			handled = true
		}
	}
	return handled
}

// KeyUp delivers ev to every listener
func (d *Dispatcher) KeyUp(ev domain.KeyEvent) {
	for _, e := range d.snapshot() {
		e.listener.KeyUp(ev)
	}
}

// Blur delivers a focus loss to every listener
func (d *Dispatcher) Blur() {
	for _, e := range d.snapshot() {
		e.listener.Blur()
	}
}

// Len returns the number of attached listeners
func (d *Dispatcher) Len() int {
	return len(d.listeners)
}

// snapshot lets listeners detach themselves while being called
func (d *Dispatcher) snapshot() []entry {
	return slices.Clone(d.listeners)
}
