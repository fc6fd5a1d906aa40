package domain

import "fmt"

// Registration binds a shortcut string to a handler under a unique id.
// Parsed is derived from Shortcut when the registration is stored and is not
// recomputed unless the owner registers again.
type Registration struct {
	ID       string
	Shortcut string
	Parsed   Shortcut
	Handler  func()
	// Element is an opaque handle for the hint-rendering collaborator
	Element any
}

// DiagnosticKind identifies a non-fatal registration problem
type DiagnosticKind string

const (
	DiagnosticDuplicateID      DiagnosticKind = "duplicate_id"
	DiagnosticShortcutConflict DiagnosticKind = "shortcut_conflict"
)

// Diagnostic reports a non-fatal registry condition. Registration proceeds regardless.
type Diagnostic struct {
	Kind     DiagnosticKind
	ID       string
	OtherID  string
	Shortcut string
}

// Message returns a human-readable description
func (d Diagnostic) Message() string {
	switch d.Kind {
	case DiagnosticDuplicateID:
		return fmt.Sprintf("shortcut id %q is already registered; the new registration replaces the previous one", d.ID)
	case DiagnosticShortcutConflict:
		return fmt.Sprintf("shortcut conflict: %q is registered by %q and %q; the earlier registration handles it",
			d.Shortcut, d.OtherID, d.ID)
	}
	return string(d.Kind)
}
