package domain

import (
	"fmt"
	"strings"
)

// Platform selects the display style of shortcut labels
type Platform string

const (
	PlatformAuto  Platform = "auto"
	PlatformMac   Platform = "mac"
	PlatformOther Platform = "other"
)

// ParsePlatform parses a platform name; "" means auto
func ParsePlatform(s string) (Platform, error) {
	switch Platform(strings.ToLower(s)) {
	case "", PlatformAuto:
		return PlatformAuto, nil
	case PlatformMac:
		return PlatformMac, nil
	case PlatformOther:
		return PlatformOther, nil
	}
	return "", fmt.Errorf("%w: unknown platform %q (valid: auto, mac, other)", ErrInvalidSetting, s)
}

// DetectPlatform maps a GOOS value to a platform
func DetectPlatform(goos string) Platform {
	switch goos {
	case "darwin", "ios":
		return PlatformMac
	}
	return PlatformOther
}

// IsMac resolves auto against goos and reports whether Mac glyphs should be used
func (p Platform) IsMac(goos string) bool {
	if p == PlatformAuto || p == "" {
		p = DetectPlatform(goos)
	}
	return p == PlatformMac
}

// FormatShortcut renders a shortcut for display.
//
// Mac: modifier glyphs in Control, Alt, Shift, Meta order with no separator,
// then the upper-cased key ("⌃⇧P", "⌘K").
// Elsewhere: Ctrl, Alt, Shift, Win joined with "+" ("Ctrl+Shift+P").
func FormatShortcut(s Shortcut, mac bool) string {
	var parts []string
	key := strings.ToUpper(s.Key)

	if mac {
		if s.Control {
			parts = append(parts, "⌃")
		}
		if s.Alt {
			parts = append(parts, "⌥")
		}
		if s.Shift {
			parts = append(parts, "⇧")
		}
		if s.Meta {
			parts = append(parts, "⌘")
		}
		parts = append(parts, key)
		return strings.Join(parts, "")
	}

	if s.Control {
		parts = append(parts, "Ctrl")
	}
	if s.Alt {
		parts = append(parts, "Alt")
	}
	if s.Shift {
		parts = append(parts, "Shift")
	}
	if s.Meta {
		parts = append(parts, "Win")
	}
	parts = append(parts, key)
	return strings.Join(parts, "+")
}
