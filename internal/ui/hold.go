package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/keebs/internal/domain"
)

// DefaultReleaseWindow must exceed the terminal's initial auto-repeat delay,
// or a held peek key reads as a quick tap followed by a new press
const DefaultReleaseWindow = 600 * time.Millisecond

// holdReleaseMsg fires when the release window after a peek press has passed
type holdReleaseMsg struct {
	seq int
}

// HoldEmulator turns the auto-repeat presses of a held key into one
// key-down and one key-up of a trigger modifier. Terminals report presses
// only, so the key counts as released once no repeat arrives for the window.
type HoldEmulator struct {
	held    bool
	seq     int
	trigger domain.Modifier
	window  time.Duration
}

// NewHoldEmulator creates a HoldEmulator for trigger
func NewHoldEmulator(trigger domain.Modifier, window time.Duration) *HoldEmulator {
	if window <= 0 {
		window = DefaultReleaseWindow
	}
	return &HoldEmulator{trigger: trigger, window: window}
}

// Press records a peek key press. It returns the trigger key-down on the
// first press of a hold (nil on repeats) and a command for the release check.
func (h *HoldEmulator) Press() (*domain.KeyEvent, tea.Cmd) {
	h.seq++
	seq := h.seq
	cmd := tea.Tick(h.window, func(time.Time) tea.Msg {
		return holdReleaseMsg{seq: seq}
	})

	if h.held {
		return nil, cmd
	}
	h.held = true
	down := domain.KeyEventFromCombo(string(h.trigger))
	return &down, cmd
}

// Release handles a release check. It returns the trigger key-up when no
// press arrived since the check was scheduled.
func (h *HoldEmulator) Release(msg holdReleaseMsg) *domain.KeyEvent {
	if !h.held || msg.seq != h.seq {
		return nil
	}
	h.held = false
	return &domain.KeyEvent{Key: string(h.trigger)}
}

// Reset forgets a hold without producing a key-up, e.g. after focus loss
func (h *HoldEmulator) Reset() {
	h.held = false
	h.seq++
}

// Held reports whether the emulated modifier is down
func (h *HoldEmulator) Held() bool {
	return h.held
}

// Trigger returns the emulated modifier
func (h *HoldEmulator) Trigger() domain.Modifier {
	return h.trigger
}
