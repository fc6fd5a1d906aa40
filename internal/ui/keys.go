package ui

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/keebs/internal/domain"
)

// DefaultPeekKey is held down to emulate holding a trigger modifier
const DefaultPeekKey = "tab"

// KeyDefinition defines the metadata for a demo control key
type KeyDefinition struct {
	Defaults []string
	Help     string
	Name     string
}

// demoKeyDefinitions is the single source of truth for demo control keys.
// They are handled before shortcut matching and never reach the tracker.
var demoKeyDefinitions = []KeyDefinition{
	{Name: "peek", Defaults: []string{DefaultPeekKey}, Help: "hold to show hints"},
	{Name: "toggle_disabled", Defaults: []string{"f2"}, Help: "enable/disable shortcuts"},
	{Name: "toggle_variant", Defaults: []string{"f3"}, Help: "badge/text hints"},
	{Name: "reload_overrides", Defaults: []string{"f5"}, Help: "reload overrides"},
	{Name: "quit", Defaults: []string{"esc", "ctrl+c"}, Help: "quit"},
}

// DemoKeys contains the demo's control bindings
type DemoKeys struct {
	Peek           key.Binding
	Quit            key.Binding
	ReloadOverrides key.Binding
	ToggleDisabled  key.Binding
	ToggleVariant   key.Binding
}

// NewDemoKeys builds the control bindings. An empty peekKey keeps the default.
func NewDemoKeys(peekKey string) DemoKeys {
	bindings := make(map[string]key.Binding, len(demoKeyDefinitions))
	for _, def := range demoKeyDefinitions {
		keys := def.Defaults
		if def.Name == "peek" && peekKey != "" {
			keys = []string{peekKey}
		}
		bindings[def.Name] = key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(keys, "/"), def.Help),
		)
	}

	return DemoKeys{
		Peek:            bindings["peek"],
		Quit:            bindings["quit"],
		ReloadOverrides: bindings["reload_overrides"],
		ToggleDisabled:  bindings["toggle_disabled"],
		ToggleVariant:   bindings["toggle_variant"],
	}
}

// ShortHelp implements help.KeyMap
func (k DemoKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Peek, k.ToggleDisabled, k.ToggleVariant, k.ReloadOverrides, k.Quit}
}

// FullHelp implements help.KeyMap
func (k DemoKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// terminalKeyNames maps bubbletea key names to the names hosts report for them
var terminalKeyNames = map[string]string{
	" ":         " ",
	"backspace": "Backspace",
	"delete":    "Delete",
	"down":      "ArrowDown",
	"end":       "End",
	"enter":     "Enter",
	"esc":       "Escape",
	"home":      "Home",
	"insert":    "Insert",
	"left":      "ArrowLeft",
	"pgdown":    "PageDown",
	"pgup":      "PageUp",
	"right":     "ArrowRight",
	"space":     " ",
	"tab":       "Tab",
	"up":        "ArrowUp",
}

// KeyEventFromMsg translates a terminal key press into a key event.
// Terminals cannot report Meta, so only Control, Alt and Shift are set.
// An upper-case letter implies Shift.
func KeyEventFromMsg(msg tea.KeyMsg) domain.KeyEvent {
	s := msg.String()
	var ev domain.KeyEvent

	for {
		switch {
		case strings.HasPrefix(s, "alt+") && len(s) > len("alt+"):
			ev.Alt = true
			s = s[len("alt+"):]
			continue
		case strings.HasPrefix(s, "ctrl+") && len(s) > len("ctrl+"):
			ev.Control = true
			s = s[len("ctrl+"):]
			continue
		case strings.HasPrefix(s, "shift+") && len(s) > len("shift+"):
			ev.Shift = true
			s = s[len("shift+"):]
			continue
		}
		break
	}

	if name, ok := terminalKeyNames[s]; ok {
		ev.Key = name
		return ev
	}
	if len(s) > 1 && s[0] == 'f' && isDigits(s[1:]) {
		ev.Key = "F" + s[1:]
		return ev
	}

	if r, size := utf8.DecodeRuneInString(s); size == len(s) && unicode.IsUpper(r) {
		ev.Shift = true
	}
	ev.Key = s
	return ev
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
