package domain

import (
	"fmt"
	"strings"
)

// Theme is passed through to hint renderers; the tracker never reads it
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

// ParseTheme parses a theme name; "" means auto
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(s)) {
	case "", ThemeAuto:
		return ThemeAuto, nil
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return "", fmt.Errorf("%w: unknown theme %q (valid: light, dark, auto)", ErrInvalidSetting, s)
}
