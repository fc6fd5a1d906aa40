package ports

import "github.com/renato0307/keebs/internal/domain"

// KeyListener receives key transitions and focus loss from a host
type KeyListener interface {
	// KeyDown handles a key press. It returns true when the event was consumed
	// and the host should suppress its default action.
	KeyDown(ev domain.KeyEvent) bool
	KeyUp(ev domain.KeyEvent)
	Blur()
}

// KeyEventSource delivers host events to listeners
type KeyEventSource interface {
	// AddListener attaches l and returns a function that detaches it
	AddListener(l KeyListener) (remove func())
}
