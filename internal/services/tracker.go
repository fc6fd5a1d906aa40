package services

import (
	"fmt"
	"slices"
	"time"

	"github.com/renato0307/keebs/internal/domain"
	"github.com/renato0307/keebs/internal/logging"
	"github.com/renato0307/keebs/internal/ports"
)

// DefaultRevealDelay is how long a trigger key must be held before hints show
const DefaultRevealDelay = 300 * time.Millisecond

// HoldState is the state of the trigger-key state machine
type HoldState int

const (
	// StateIdle means no trigger key is held
	StateIdle HoldState = iota
	// StateHolding means a trigger key is held and hints are still hidden
	StateHolding
	// StateRevealed means a trigger key has been held past the delay
	StateRevealed
)

func (s HoldState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHolding:
		return "holding"
	case StateRevealed:
		return "revealed"
	}
	return fmt.Sprintf("HoldState(%d)", int(s))
}

// TrackerConfig holds the options applied when a Tracker is created
type TrackerConfig struct {
	// TriggerKeys start the reveal timer when held alone. Empty means Meta and Control.
	TriggerKeys []domain.Modifier
	// Delay before hints show. Zero or negative means DefaultRevealDelay.
	Delay time.Duration
	// Theme is passed through to renderers
	Theme             domain.Theme
	DisabledInitially bool
	DefaultShortcuts  domain.ShortcutMap
	Overrides         domain.ShortcutMap
	// Permissive accepts malformed shortcut strings at registration;
	// a registration without a key then never matches.
	Permissive bool
	// DiagnosticHandler receives duplicate-id and conflict diagnostics in addition to the log
	DiagnosticHandler func(domain.Diagnostic)
}

type visibilitySubscriber struct {
	id int
	fn func(bool)
}

// Tracker owns shortcut registrations and the hint-visibility state machine.
//
// A Tracker is not safe for concurrent use. All calls, including timer
// callbacks delivered by the Scheduler, must happen on the goroutine that
// drives it (an event loop or a bubbletea Update).
type Tracker struct {
	delay        time.Duration
	onDiagnostic func(domain.Diagnostic)
	permissive   bool
	scheduler    ports.Scheduler
	theme        domain.Theme
	triggerKeys  []domain.Modifier
	triggerSet   map[domain.Modifier]bool

	// Registry; order keeps first-insertion order of ids
	order         []string
	registrations map[string]domain.Registration

	defaults  domain.ShortcutMap
	overrides domain.ShortcutMap

	disabled     bool
	generation   uint64
	hintsVisible bool
	modifierHeld bool
	pendingTimer ports.Timer

	active         bool
	closed         bool
	removeListener func()

	nextSubscriberID int
	subscribers      []visibilitySubscriber
}

// Verify interface compliance at compile time
var _ ports.KeyListener = (*Tracker)(nil)

// NewTracker creates a Tracker. It does not react to events until Init is called.
func NewTracker(cfg TrackerConfig, scheduler ports.Scheduler) *Tracker {
	if scheduler == nil {
		panic("services.NewTracker: nil scheduler")
	}

	triggerKeys := cfg.TriggerKeys
	if len(triggerKeys) == 0 {
		triggerKeys = domain.DefaultTriggerKeys
	}
	triggerSet := make(map[domain.Modifier]bool, len(triggerKeys))
	for _, mod := range triggerKeys {
		triggerSet[mod] = true
	}

	delay := cfg.Delay
	if delay <= 0 {
		delay = DefaultRevealDelay
	}

	theme := cfg.Theme
	if theme == "" {
		theme = domain.ThemeAuto
	}

	return &Tracker{
		delay:         delay,
		onDiagnostic:  cfg.DiagnosticHandler,
		permissive:    cfg.Permissive,
		scheduler:     scheduler,
		theme:         theme,
		triggerKeys:   slices.Clone(triggerKeys),
		triggerSet:    triggerSet,
		registrations: make(map[string]domain.Registration),
		defaults:      cfg.DefaultShortcuts.Clone(),
		overrides:     cfg.Overrides.Clone(),
		disabled:      cfg.DisabledInitially,
	}
}

// Init activates the tracker and attaches it to source.
// source may be nil when the host calls KeyDown, KeyUp and Blur directly.
func (t *Tracker) Init(source ports.KeyEventSource) error {
	if t.closed {
		return domain.ErrTrackerClosed
	}
	if t.active {
		return domain.ErrTrackerActive
	}

	t.active = true
	if source != nil {
		t.removeListener = source.AddListener(t)
	}

	logging.Logger.Debug("Shortcut tracker initialized",
		"trigger_keys", t.triggerKeys,
		"delay", t.delay,
		"disabled", t.disabled)
	return nil
}

// Teardown detaches listeners and cancels any pending reveal timer.
// After Teardown no event or timer can change the tracker's visible state.
func (t *Tracker) Teardown() {
	if !t.active {
		return
	}

	if t.removeListener != nil {
		t.removeListener()
		t.removeListener = nil
	}
	t.cancelTimer()

	t.active = false
	t.closed = true
	t.modifierHeld = false
	t.hintsVisible = false
	t.subscribers = nil

	logging.Logger.Debug("Shortcut tracker torn down", "registrations", len(t.order))
}

// Active reports whether the tracker is between Init and Teardown
func (t *Tracker) Active() bool {
	return t.active
}

// KeyDown handles a key press. It returns true when a registered shortcut
// fired, in which case the host should suppress the key's default action.
func (t *Tracker) KeyDown(ev domain.KeyEvent) bool {
	if !t.active || t.disabled {
		return false
	}

	for _, id := range t.order {
		reg := t.registrations[id]
		if !reg.Parsed.Matches(ev) {
			continue
		}
		logging.Logger.Debug("Shortcut matched", "id", id, "shortcut", reg.Shortcut)
		if reg.Handler != nil {
			reg.Handler()
		}
		return true
	}

	if !t.isTriggerKey(ev) || t.modifierHeld {
		return false
	}

	t.modifierHeld = true
	t.startTimer()
	logging.Logger.Debug("Trigger key held", "key", ev.Key, "delay", t.delay)
	return false
}

// KeyUp handles a key release. Releasing a trigger key hides hints immediately.
func (t *Tracker) KeyUp(ev domain.KeyEvent) {
	if !t.active || !t.isTriggerKey(ev) {
		return
	}
	t.release("key_up")
}

// Blur handles focus loss; it is treated as a release of every trigger key
func (t *Tracker) Blur() {
	if !t.active {
		return
	}
	t.release("blur")
}

func (t *Tracker) isTriggerKey(ev domain.KeyEvent) bool {
	mod, ok := ev.Modifier()
	return ok && t.triggerSet[mod]
}

func (t *Tracker) release(reason string) {
	wasHeld := t.modifierHeld
	t.modifierHeld = false
	t.cancelTimer()
	t.setHintsVisible(false)

	if wasHeld {
		logging.Logger.Debug("Trigger key released", "reason", reason)
	}
}

func (t *Tracker) startTimer() {
	t.cancelTimer()
	gen := t.generation
	t.pendingTimer = t.scheduler.AfterFunc(t.delay, func() {
		t.revealTimerFired(gen)
	})
}

// cancelTimer stops the pending timer and invalidates fires that were already queued
func (t *Tracker) cancelTimer() {
	t.generation++
	if t.pendingTimer != nil {
		t.pendingTimer.Stop()
		t.pendingTimer = nil
	}
}

func (t *Tracker) revealTimerFired(gen uint64) {
	if !t.active || gen != t.generation {
		return
	}
	t.pendingTimer = nil
	if t.disabled || !t.modifierHeld {
		return
	}
	t.setHintsVisible(true)
}

func (t *Tracker) setHintsVisible(visible bool) {
	if t.hintsVisible == visible {
		return
	}
	t.hintsVisible = visible
	logging.Logger.Debug("Hint visibility changed", "visible", visible)

	for _, sub := range slices.Clone(t.subscribers) {
		sub.fn(visible)
	}
}

// HintsVisible reports whether hints should currently be rendered
func (t *Tracker) HintsVisible() bool {
	return t.hintsVisible
}

// State returns the current state of the trigger-key state machine
func (t *Tracker) State() HoldState {
	switch {
	case t.hintsVisible:
		return StateRevealed
	case t.modifierHeld:
		return StateHolding
	}
	return StateIdle
}

// OnHintsVisibleChange calls fn whenever hint visibility flips.
// The returned function unsubscribes.
func (t *Tracker) OnHintsVisibleChange(fn func(visible bool)) (unsubscribe func()) {
	t.nextSubscriberID++
	id := t.nextSubscriberID
	t.subscribers = append(t.subscribers, visibilitySubscriber{id: id, fn: fn})

	return func() {
		t.subscribers = slices.DeleteFunc(t.subscribers, func(s visibilitySubscriber) bool {
			return s.id == id
		})
	}
}

// SetDisabled suppresses matching and the reveal timer. Disabling hides hints
// and cancels the timer but keeps the held flag, so re-enabling while a
// trigger key is still down waits for the next key transition.
func (t *Tracker) SetDisabled(disabled bool) {
	if t.disabled == disabled {
		return
	}
	t.disabled = disabled
	logging.Logger.Info("Shortcut tracker disabled state changed", "disabled", disabled)

	if disabled {
		t.cancelTimer()
		t.setHintsVisible(false)
	}
}

// Disabled reports whether shortcuts are globally disabled
func (t *Tracker) Disabled() bool {
	return t.disabled
}

// Theme returns the configured theme
func (t *Tracker) Theme() domain.Theme {
	return t.theme
}

// TriggerKeys returns the configured trigger modifiers
func (t *Tracker) TriggerKeys() []domain.Modifier {
	return slices.Clone(t.triggerKeys)
}

// Delay returns the reveal delay
func (t *Tracker) Delay() time.Duration {
	return t.delay
}
