package domain

import (
	"fmt"
	"strings"
)

// Modifier is one of the four modifier keys a shortcut can require
type Modifier string

const (
	ModifierMeta    Modifier = "Meta"
	ModifierControl Modifier = "Control"
	ModifierAlt     Modifier = "Alt"
	ModifierShift   Modifier = "Shift"
)

// AllModifiers lists modifiers in display order (Control, Alt, Shift, Meta)
var AllModifiers = []Modifier{ModifierControl, ModifierAlt, ModifierShift, ModifierMeta}

// DefaultTriggerKeys are the modifiers that start the reveal timer when no
// trigger keys are configured
var DefaultTriggerKeys = []Modifier{ModifierMeta, ModifierControl}

// modifierAliases maps lower-cased shortcut tokens to modifiers
var modifierAliases = map[string]Modifier{
	"meta":    ModifierMeta,
	"cmd":     ModifierMeta,
	"command": ModifierMeta,
	"control": ModifierControl,
	"ctrl":    ModifierControl,
	"alt":     ModifierAlt,
	"option":  ModifierAlt,
	"shift":   ModifierShift,
}

// ModifierFromToken returns the modifier a shortcut token stands for.
// Matching is case-insensitive and accepts the aliases cmd, command, ctrl and option.
func ModifierFromToken(token string) (Modifier, bool) {
	mod, ok := modifierAliases[strings.ToLower(strings.TrimSpace(token))]
	return mod, ok
}

// ModifierFromKey returns the modifier a key event's key name refers to.
// Only canonical names are recognised (Meta, Control, Alt, Shift), case-insensitively.
func ModifierFromKey(key string) (Modifier, bool) {
	switch strings.ToLower(key) {
	case "meta":
		return ModifierMeta, true
	case "control":
		return ModifierControl, true
	case "alt":
		return ModifierAlt, true
	case "shift":
		return ModifierShift, true
	}
	return "", false
}

// ParseModifier parses a trigger key name from configuration
func ParseModifier(name string) (Modifier, error) {
	if mod, ok := ModifierFromToken(name); ok {
		return mod, nil
	}
	return "", fmt.Errorf("%w: unknown modifier %q (valid: Meta, Control, Alt, Shift)", ErrInvalidSetting, name)
}

// ParseModifiers parses a list of trigger key names, dropping duplicates
func ParseModifiers(names []string) ([]Modifier, error) {
	result := make([]Modifier, 0, len(names))
	seen := make(map[Modifier]bool, len(names))
	for _, name := range names {
		mod, err := ParseModifier(name)
		if err != nil {
			return nil, err
		}
		if seen[mod] {
			continue
		}
		seen[mod] = true
		result = append(result, mod)
	}
	return result, nil
}
