package replay

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/renato0307/keebs/internal/adapters/clock"
	"github.com/renato0307/keebs/internal/adapters/keysource"
	"github.com/renato0307/keebs/internal/domain"
	"github.com/renato0307/keebs/internal/services"
)

// EntryKind classifies a timeline entry
type EntryKind string

const (
	EntryKey        EntryKind = "key"
	EntryBlur       EntryKind = "blur"
	EntryDisabled   EntryKind = "disabled"
	EntryFired      EntryKind = "fired"
	EntryHints      EntryKind = "hints"
	EntryDiagnostic EntryKind = "diagnostic"
)

// Entry is one observable event in a replay
type Entry struct {
	At     time.Duration
	Kind   EntryKind
	Detail string
}

// Runner owns a tracker wired to a virtual clock and an in-process key source
type Runner struct {
	clock    *clock.Manual
	source   *keysource.Dispatcher
	tracker  *services.Tracker
	timeline []Entry
}

// NewRunner creates and initializes a tracker for replay. Diagnostics are
// recorded on the timeline in addition to cfg.DiagnosticHandler.
func NewRunner(cfg services.TrackerConfig) (*Runner, error) {
	r := &Runner{
		clock:  clock.NewManual(),
		source: keysource.NewDispatcher(),
	}

	next := cfg.DiagnosticHandler
	cfg.DiagnosticHandler = func(d domain.Diagnostic) {
		r.record(EntryDiagnostic, d.Message())
		if next != nil {
			next(d)
		}
	}

	r.tracker = services.NewTracker(cfg, r.clock)
	if err := r.tracker.Init(r.source); err != nil {
		return nil, err
	}
	r.tracker.OnHintsVisibleChange(func(visible bool) {
		if visible {
			r.record(EntryHints, "visible")
			return
		}
		r.record(EntryHints, "hidden")
	})

	return r, nil
}

func (r *Runner) record(kind EntryKind, detail string) {
	r.timeline = append(r.timeline, Entry{At: r.clock.Elapsed(), Kind: kind, Detail: detail})
}

// Bind registers shortcut under id with a handler that records its firing
func (r *Runner) Bind(id, shortcut string) error {
	_, err := services.Bind(r.tracker, shortcut, func() {
		r.record(EntryFired, id)
	}, services.BindOptions{ID: id})
	return err
}

// BindDefaults binds every id the tracker can resolve through its defaults
// and overrides, in id order
func (r *Runner) BindDefaults() error {
	ids := r.tracker.Defaults()
	for id := range r.tracker.Overrides() {
		ids[id] = ""
	}
	for _, id := range ids.IDs() {
		_, err := services.BindNamed(r.tracker, id, func() {
			r.record(EntryFired, id)
		}, services.BindOptions{})
		if err != nil {
			return err
		}
	}
	return nil
}

// Tracker exposes the tracker under replay
func (r *Runner) Tracker() *services.Tracker {
	return r.tracker
}

// Run applies steps in order, advancing virtual time to each step, then lets
// tail more time pass so pending timers can fire. It returns the timeline so far.
func (r *Runner) Run(steps []Step, tail time.Duration) []Entry {
	for _, step := range steps {
		r.clock.AdvanceTo(step.At)
		r.apply(step)
	}
	if tail > 0 {
		r.clock.Advance(tail)
	}
	return r.Timeline()
}

func (r *Runner) apply(step Step) {
	switch step.Action {
	case ActionDown:
		ev := domain.KeyEventFromCombo(step.Combo)
		r.record(EntryKey, "down "+step.Combo)
		r.source.KeyDown(ev)
	case ActionUp:
		ev := domain.KeyEventFromCombo(step.Combo)
		r.record(EntryKey, "up "+step.Combo)
		r.source.KeyUp(ev)
	case ActionBlur:
		r.record(EntryBlur, "window lost focus")
		r.source.Blur()
	case ActionDisable:
		r.record(EntryDisabled, "true")
		r.tracker.SetDisabled(true)
	case ActionEnable:
		r.record(EntryDisabled, "false")
		r.tracker.SetDisabled(false)
	}
}

// Timeline returns a copy of the recorded entries
func (r *Runner) Timeline() []Entry {
	out := make([]Entry, len(r.timeline))
	copy(out, r.timeline)
	return out
}

// Close tears the tracker down
func (r *Runner) Close() {
	r.tracker.Teardown()
}

// WriteTimeline prints entries as aligned columns
func WriteTimeline(w io.Writer, entries []Entry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(tw, "%dms\t%s\t%s\n", e.At.Milliseconds(), e.Kind, e.Detail)
	}
	return tw.Flush()
}
