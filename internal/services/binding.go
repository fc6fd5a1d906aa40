package services

import (
	"fmt"
	"runtime"

	"github.com/google/uuid"

	"github.com/renato0307/keebs/internal/domain"
	"github.com/renato0307/keebs/internal/logging"
)

// BindOptions configures Bind and BindNamed
type BindOptions struct {
	// ID to register under. Bind generates one when empty; BindNamed uses the shortcut id.
	ID string
	// Element is handed to the hint renderer untouched
	Element any
	// Disabled bindings are created but never registered
	Disabled bool
}

// Binding ties a component's handler to the tracker for the component's lifetime.
// Create it when the component appears and Close it when the component goes away.
type Binding struct {
	tracker    *Tracker
	id         string
	named      bool
	shortcut   string
	handler    func()
	element    any
	disabled   bool
	registered bool
}

// Bind registers handler for a literal shortcut string
func Bind(t *Tracker, shortcut string, handler func(), opts BindOptions) (*Binding, error) {
	if t == nil {
		panic(domain.ErrNoTracker)
	}

	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}

	b := &Binding{
		tracker:  t,
		id:       id,
		shortcut: shortcut,
		handler:  handler,
		element:  opts.Element,
		disabled: opts.Disabled,
	}
	if err := b.register(); err != nil {
		return nil, err
	}
	return b, nil
}

// BindNamed registers handler under a shortcut id, resolving the shortcut
// string through the tracker's overrides and defaults
func BindNamed(t *Tracker, id string, handler func(), opts BindOptions) (*Binding, error) {
	if t == nil {
		panic(domain.ErrNoTracker)
	}

	shortcut, ok := t.ResolveShortcut(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownShortcutID, id)
	}

	b := &Binding{
		tracker:  t,
		id:       id,
		named:    true,
		shortcut: shortcut,
		handler:  handler,
		element:  opts.Element,
		disabled: opts.Disabled,
	}
	if err := b.register(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Binding) register() error {
	if b.disabled {
		return nil
	}
	err := b.tracker.Register(domain.Registration{
		ID:       b.id,
		Shortcut: b.shortcut,
		Handler:  b.handler,
		Element:  b.element,
	})
	if err != nil {
		return err
	}
	b.registered = true
	return nil
}

// ID returns the registration id
func (b *Binding) ID() string {
	return b.id
}

// Shortcut returns the shortcut string the binding is registered with
func (b *Binding) Shortcut() string {
	return b.shortcut
}

// Parsed returns the structured shortcut
func (b *Binding) Parsed() domain.Shortcut {
	return domain.ParseShortcut(b.shortcut)
}

// Display formats the shortcut for the given platform
func (b *Binding) Display(platform domain.Platform) string {
	return domain.FormatShortcut(b.Parsed(), platform.IsMac(runtime.GOOS))
}

// Visible reports whether the tracker currently shows hints
func (b *Binding) Visible() bool {
	return b.tracker.HintsVisible()
}

// Registered reports whether the binding is live in the tracker
func (b *Binding) Registered() bool {
	return b.registered
}

// Rebind re-registers the binding with a new shortcut string.
// On a validation error the previous registration stays in place.
func (b *Binding) Rebind(shortcut string) error {
	if err := b.tracker.checkShortcut(shortcut); err != nil {
		return fmt.Errorf("cannot rebind %q: %w", b.id, err)
	}

	b.Close()
	b.shortcut = shortcut
	return b.register()
}

// Refresh re-resolves a named binding and re-registers it when the resolved
// shortcut changed. This is how overrides reach an existing registration.
func (b *Binding) Refresh() error {
	if !b.named {
		return nil
	}

	shortcut, ok := b.tracker.ResolveShortcut(b.id)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownShortcutID, b.id)
	}
	if shortcut == b.shortcut {
		return nil
	}

	logging.Logger.Debug("Refreshing shortcut binding", "id", b.id, "from", b.shortcut, "to", shortcut)
	return b.Rebind(shortcut)
}

// Close unregisters the binding. It is safe to call more than once.
func (b *Binding) Close() {
	if !b.registered {
		return
	}
	b.tracker.Unregister(b.id)
	b.registered = false
}
