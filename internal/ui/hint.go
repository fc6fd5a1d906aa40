package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/keebs/internal/domain"
	"github.com/renato0307/keebs/internal/theme"
)

// HintVariant selects how a hint is drawn next to its element
type HintVariant string

const (
	HintText  HintVariant = "text"
	HintBadge HintVariant = "badge"
)

// ParseHintVariant parses a variant name; "" means badge
func ParseHintVariant(s string) (HintVariant, error) {
	switch HintVariant(strings.ToLower(s)) {
	case "", HintBadge:
		return HintBadge, nil
	case HintText:
		return HintText, nil
	}
	return "", fmt.Errorf("%w: unknown hint variant %q (valid: text, badge)", domain.ErrInvalidSetting, s)
}

// HintRenderer draws shortcut hints with styles bound to one renderer
type HintRenderer struct {
	styles theme.HintStyles
}

// NewHintRenderer creates a HintRenderer. A nil renderer means the default one.
func NewHintRenderer(r *lipgloss.Renderer, t domain.Theme) HintRenderer {
	return HintRenderer{styles: theme.NewHintStyles(r, t)}
}

// Render returns the styled hint, or "" when hints are hidden
func (h HintRenderer) Render(display string, visible bool, variant HintVariant) string {
	if !visible || display == "" {
		return ""
	}
	if variant == HintText {
		return h.styles.Text.Render(display)
	}
	return h.styles.Badge.Render(display)
}

// RenderHint renders a single hint on the default renderer
func RenderHint(display string, visible bool, variant HintVariant, t domain.Theme) string {
	return NewHintRenderer(nil, t).Render(display, visible, variant)
}
