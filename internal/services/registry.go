package services

import (
	"fmt"
	"slices"

	"github.com/renato0307/keebs/internal/domain"
	"github.com/renato0307/keebs/internal/logging"
)

// checkShortcut rejects malformed shortcut strings unless the tracker is permissive
func (t *Tracker) checkShortcut(shortcut string) error {
	if t.permissive {
		return nil
	}
	if res := domain.ValidateShortcut(shortcut); !res.Valid {
		return res.Err
	}
	return nil
}

// Register stores reg under reg.ID, replacing any registration with that id.
// Replacing keeps the id's original position in match order. Duplicate ids and
// equivalent shortcuts on other ids produce diagnostics, not errors.
func (t *Tracker) Register(reg domain.Registration) error {
	if reg.ID == "" {
		return fmt.Errorf("cannot register shortcut %q: %w", reg.Shortcut, domain.ErrMissingID)
	}
	if err := t.checkShortcut(reg.Shortcut); err != nil {
		logging.Logger.Warn("Rejected shortcut registration",
			"id", reg.ID,
			"shortcut", reg.Shortcut,
			"error", err)
		return fmt.Errorf("cannot register %q: %w", reg.ID, err)
	}

	reg.Parsed = domain.ParseShortcut(reg.Shortcut)

	if _, exists := t.registrations[reg.ID]; exists {
		t.emit(domain.Diagnostic{
			Kind:     domain.DiagnosticDuplicateID,
			ID:       reg.ID,
			Shortcut: reg.Shortcut,
		})
	} else {
		t.order = append(t.order, reg.ID)
	}

	for _, id := range t.order {
		if id == reg.ID {
			continue
		}
		other := t.registrations[id]
		sameString := other.Shortcut == reg.Shortcut
		sameShortcut := reg.Parsed.Key != "" && other.Parsed == reg.Parsed
		if sameString || sameShortcut {
			t.emit(domain.Diagnostic{
				Kind:     domain.DiagnosticShortcutConflict,
				ID:       reg.ID,
				OtherID:  id,
				Shortcut: reg.Shortcut,
			})
		}
	}

	t.registrations[reg.ID] = reg
	logging.Logger.Debug("Shortcut registered", "id", reg.ID, "shortcut", reg.Shortcut)
	return nil
}

// Unregister removes the registration for id. Unknown ids are ignored.
func (t *Tracker) Unregister(id string) {
	if _, ok := t.registrations[id]; !ok {
		return
	}
	delete(t.registrations, id)
	t.order = slices.DeleteFunc(t.order, func(o string) bool { return o == id })
	logging.Logger.Debug("Shortcut unregistered", "id", id)
}

// Registration returns the registration stored under id
func (t *Tracker) Registration(id string) (domain.Registration, bool) {
	reg, ok := t.registrations[id]
	return reg, ok
}

// Registrations returns a snapshot of all registrations in match order
func (t *Tracker) Registrations() []domain.Registration {
	result := make([]domain.Registration, 0, len(t.order))
	for _, id := range t.order {
		result = append(result, t.registrations[id])
	}
	return result
}

func (t *Tracker) emit(d domain.Diagnostic) {
	logging.Logger.Warn(d.Message(),
		"kind", string(d.Kind),
		"id", d.ID,
		"other_id", d.OtherID,
		"shortcut", d.Shortcut)
	if t.onDiagnostic != nil {
		t.onDiagnostic(d)
	}
}

// ResolveShortcut returns the override for id, else its default
func (t *Tracker) ResolveShortcut(id string) (string, bool) {
	if s, ok := t.overrides[id]; ok {
		return s, true
	}
	if s, ok := t.defaults[id]; ok {
		return s, true
	}
	return "", false
}

// ListResolvedShortcuts returns, for every registered id, its override, its
// default, or the string it was registered with
func (t *Tracker) ListResolvedShortcuts() domain.ShortcutMap {
	result := make(domain.ShortcutMap, len(t.order))
	for _, id := range t.order {
		if s, ok := t.ResolveShortcut(id); ok {
			result[id] = s
			continue
		}
		result[id] = t.registrations[id].Shortcut
	}
	return result
}

// UpdateShortcutOverride sets the override for id.
// Existing registrations keep matching their registered shortcut until re-registered.
func (t *Tracker) UpdateShortcutOverride(id, shortcut string) {
	t.overrides[id] = shortcut
	logging.Logger.Debug("Shortcut override updated", "id", id, "shortcut", shortcut)
}

// ResetShortcutOverride drops the override for id
func (t *Tracker) ResetShortcutOverride(id string) {
	delete(t.overrides, id)
}

// ResetAllOverrides drops every override
func (t *Tracker) ResetAllOverrides() {
	t.overrides = make(domain.ShortcutMap)
}

// Overrides returns a copy of the override mapping
func (t *Tracker) Overrides() domain.ShortcutMap {
	return t.overrides.Clone()
}

// Defaults returns a copy of the default mapping
func (t *Tracker) Defaults() domain.ShortcutMap {
	return t.defaults.Clone()
}

// ReplaceDefaults swaps the default mapping. Like overrides, this only affects resolution.
func (t *Tracker) ReplaceDefaults(defaults domain.ShortcutMap) {
	t.defaults = defaults.Clone()
	logging.Logger.Debug("Default shortcuts replaced", "count", len(t.defaults))
}
