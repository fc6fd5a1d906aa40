package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/keebs/internal/domain"
)

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - app name, titles
	ColorSecondary Color = "86" // Cyan - subtitles
)

// UI semantic colors
const (
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSubtle    Color = "245" // Light gray - labels
	ColorVersion   Color = "240" // Dark gray
)

// Hold state colors
const (
	ColorIdle     Color = "8" // Gray
	ColorHolding  Color = "3" // Yellow
	ColorRevealed Color = "2" // Green
	ColorDisabled Color = "1" // Red
)

// Hint palettes. Light hints sit on light terminals, dark hints on dark ones.
var (
	hintLight = HintPalette{
		Foreground: Color("232"),
		Background: Color("254"),
		Border:     Color("245"),
	}
	hintDark = HintPalette{
		Foreground: Color("255"),
		Background: Color("237"),
		Border:     Color("241"),
	}
)

// HintPalette is the color set used for a hint badge
type HintPalette struct {
	Foreground lipgloss.TerminalColor
	Background lipgloss.TerminalColor
	Border     lipgloss.TerminalColor
}

// PaletteFor returns the hint palette for a theme. Auto adapts to the
// terminal background as detected by the renderer.
func PaletteFor(t domain.Theme) HintPalette {
	switch t {
	case domain.ThemeLight:
		return hintLight
	case domain.ThemeDark:
		return hintDark
	}
	return HintPalette{
		Foreground: adaptive(hintLight.Foreground, hintDark.Foreground),
		Background: adaptive(hintLight.Background, hintDark.Background),
		Border:     adaptive(hintLight.Border, hintDark.Border),
	}
}

func adaptive(light, dark lipgloss.TerminalColor) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{
		Light: string(light.(Color)),
		Dark:  string(dark.(Color)),
	}
}
