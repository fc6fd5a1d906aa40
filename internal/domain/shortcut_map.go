package domain

import "sort"

// ShortcutMap maps shortcut ids to shortcut strings
type ShortcutMap map[string]string

// Clone returns an independent copy (never nil)
func (m ShortcutMap) Clone() ShortcutMap {
	out := make(ShortcutMap, len(m))
	for id, s := range m {
		out[id] = s
	}
	return out
}

// IDs returns the ids in sorted order
func (m ShortcutMap) IDs() []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Validate returns the first invalid entry, checking ids in sorted order
func (m ShortcutMap) Validate() error {
	for _, id := range m.IDs() {
		if res := ValidateShortcut(m[id]); !res.Valid {
			return &ShortcutMapError{ID: id, Err: res.Err}
		}
	}
	return nil
}

// Conflict is a pair of ids whose shortcuts parse to the same Shortcut
type Conflict struct {
	Shortcut string
	IDs      []string
}

// Conflicts groups ids whose shortcuts are equivalent ("Cmd+K" and "Meta+K").
// Results are sorted by shortcut then id.
func (m ShortcutMap) Conflicts() []Conflict {
	byShortcut := make(map[Shortcut][]string)
	for _, id := range m.IDs() {
		parsed := ParseShortcut(m[id])
		if parsed.Key == "" {
			continue
		}
		byShortcut[parsed] = append(byShortcut[parsed], id)
	}

	var conflicts []Conflict
	for parsed, ids := range byShortcut {
		if len(ids) > 1 {
			conflicts = append(conflicts, Conflict{Shortcut: parsed.String(), IDs: ids})
		}
	}
	sort.Slice(conflicts, func(i, j int) bool {
		return conflicts[i].Shortcut < conflicts[j].Shortcut
	})
	return conflicts
}

// ShortcutMapError ties a validation failure to the id it was found under
type ShortcutMapError struct {
	ID  string
	Err *ValidationError
}

func (e *ShortcutMapError) Error() string {
	return "shortcut '" + e.ID + "': " + e.Err.Error()
}

func (e *ShortcutMapError) Unwrap() error {
	return e.Err
}
