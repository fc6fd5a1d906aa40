package domain

import "strings"

// Shortcut is the structured form of a shortcut string such as "Ctrl+Shift+P".
// Key is always lower-cased. A Shortcut is a value; it is never mutated after parsing.
type Shortcut struct {
	Meta    bool   `json:"meta"`
	Control bool   `json:"control"`
	Alt     bool   `json:"alt"`
	Shift   bool   `json:"shift"`
	Key     string `json:"key"`
}

// splitShortcut splits a shortcut string on "+" and trims every token.
// Empty tokens (from "Meta++K" or a trailing "+") are dropped.
func splitShortcut(s string) []string {
	parts := strings.Split(s, "+")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			tokens = append(tokens, trimmed)
		}
	}
	return tokens
}

// ParseShortcut converts a shortcut string into a Shortcut.
//
// Parsing never fails. Modifier aliases are recognised case-insensitively and
// token order is irrelevant. When more than one non-modifier token is present
// the last one wins; call ValidateShortcut first to reject such input.
func ParseShortcut(s string) Shortcut {
	var result Shortcut
	for _, token := range splitShortcut(s) {
		mod, ok := ModifierFromToken(token)
		if !ok {
			result.Key = NormalizeKey(token)
			continue
		}
		switch mod {
		case ModifierMeta:
			result.Meta = true
		case ModifierControl:
			result.Control = true
		case ModifierAlt:
			result.Alt = true
		case ModifierShift:
			result.Shift = true
		}
	}
	return result
}

// NormalizeKey lower-cases a key name and maps the literal space character to "space"
func NormalizeKey(key string) string {
	if key == " " {
		return "space"
	}
	return strings.ToLower(strings.TrimSpace(key))
}

// Matches reports whether a key event triggers this shortcut.
// Every modifier flag must be exactly equal: a shortcut without Shift does not
// match while Shift is held. A shortcut with no key never matches.
func (s Shortcut) Matches(ev KeyEvent) bool {
	if s.Key == "" {
		return false
	}
	return NormalizeKey(ev.Key) == s.Key &&
		ev.Meta == s.Meta &&
		ev.Control == s.Control &&
		ev.Alt == s.Alt &&
		ev.Shift == s.Shift
}

// MatchesShortcut is the free-function form of Shortcut.Matches
func MatchesShortcut(ev KeyEvent, s Shortcut) bool {
	return s.Matches(ev)
}

// IsZero reports whether the shortcut has neither key nor modifiers
func (s Shortcut) IsZero() bool {
	return s == Shortcut{}
}

// String returns the canonical shortcut string, e.g. "Control+Shift+P"
func (s Shortcut) String() string {
	var parts []string
	if s.Control {
		parts = append(parts, string(ModifierControl))
	}
	if s.Alt {
		parts = append(parts, string(ModifierAlt))
	}
	if s.Shift {
		parts = append(parts, string(ModifierShift))
	}
	if s.Meta {
		parts = append(parts, string(ModifierMeta))
	}
	if s.Key != "" {
		parts = append(parts, strings.ToUpper(s.Key))
	}
	return strings.Join(parts, "+")
}
