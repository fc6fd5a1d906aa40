package domain

import "strings"

// KeyEvent is a snapshot of a key transition as delivered by the host.
// Key holds the key name ("k", "K", "Meta", " ", "Escape"); the flags hold
// which modifiers were down when the event fired.
type KeyEvent struct {
	Key     string
	Meta    bool
	Control bool
	Alt     bool
	Shift   bool
	Repeat  bool
}

// Modifier returns the modifier this event's key is, if any
func (e KeyEvent) Modifier() (Modifier, bool) {
	return ModifierFromKey(e.Key)
}

// KeyEventFromCombo builds the key-down event a user produces when pressing combo.
// "Meta+K" yields {Key: "k", Meta: true}; a bare modifier such as "Meta" yields
// {Key: "Meta", Meta: true}, which is how hosts report a modifier press.
func KeyEventFromCombo(combo string) KeyEvent {
	tokens := splitShortcut(combo)
	var ev KeyEvent
	var lastModifier Modifier
	for _, token := range tokens {
		mod, ok := ModifierFromToken(token)
		if !ok {
			ev.Key = token
			continue
		}
		lastModifier = mod
		switch mod {
		case ModifierMeta:
			ev.Meta = true
		case ModifierControl:
			ev.Control = true
		case ModifierAlt:
			ev.Alt = true
		case ModifierShift:
			ev.Shift = true
		}
	}
	if ev.Key == "" && lastModifier != "" {
		ev.Key = string(lastModifier)
	}
	if strings.EqualFold(ev.Key, "space") {
		ev.Key = " "
	}
	return ev
}
