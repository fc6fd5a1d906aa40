package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/keebs/internal/domain"
)

// Main UI styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(1, 0)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(1, 0)
)

// Header styles
var (
	AppNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	TaglineStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	VersionStyle = lipgloss.NewStyle().
			Foreground(ColorVersion)
)

// Shortcut list styles
var (
	ActionLabelStyle = lipgloss.NewStyle().
				Foreground(ColorNormal).
				Width(24)

	ActionIDStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle).
			Width(16)

	FiredStyle = lipgloss.NewStyle().
			Foreground(ColorRevealed).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Error style
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorError).
	Bold(true)

// StateStyle returns the style for a hold state name
func StateStyle(state string, disabled bool) lipgloss.Style {
	color := ColorIdle
	switch {
	case disabled:
		color = ColorDisabled
	case state == "holding":
		color = ColorHolding
	case state == "revealed":
		color = ColorRevealed
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}

// HintStyles holds the styles for both hint variants
type HintStyles struct {
	Badge lipgloss.Style
	Text  lipgloss.Style
}

// NewHintStyles builds hint styles on r, so adaptive colors resolve against
// the terminal r renders to (an SSH session's, not the server's)
func NewHintStyles(r *lipgloss.Renderer, t domain.Theme) HintStyles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := PaletteFor(t)

	return HintStyles{
		Badge: r.NewStyle().
			Foreground(p.Foreground).
			Background(p.Background).
			Bold(true).
			Padding(0, 1),
		Text: r.NewStyle().
			Foreground(p.Border).
			Italic(true),
	}
}
