package ui

import (
	"context"
	"fmt"
	"runtime"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/renato0307/keebs/internal/domain"
	"github.com/renato0307/keebs/internal/logging"
	"github.com/renato0307/keebs/internal/services"
	"github.com/renato0307/keebs/internal/theme"
)

// ShortcutEditFormResult contains the result of the edit
type ShortcutEditFormResult struct {
	ID        string
	Previous  string
	Shortcut  string
	Cancelled bool
	Error     error
}

// ShortcutEditForm is a Bubble Tea component that stores a shortcut override
type ShortcutEditForm struct {
	Completed bool
	form      *huh.Form
	platform  domain.Platform
	resolved  domain.ShortcutMap
	result    ShortcutEditFormResult
	service   *services.OverrideService
}

// NewShortcutEditForm creates the form. resolved is the current id -> shortcut
// mapping; when id is empty the form first asks which id to edit.
func NewShortcutEditForm(service *services.OverrideService, resolved domain.ShortcutMap, id string, platform domain.Platform) *ShortcutEditForm {
	ef := &ShortcutEditForm{
		platform: platform,
		resolved: resolved.Clone(),
		result:   ShortcutEditFormResult{ID: id},
		service:  service,
	}

	var fields []huh.Field
	if id == "" {
		options := make([]huh.Option[string], 0, len(resolved))
		for _, shortcutID := range resolved.IDs() {
			label := fmt.Sprintf("%-20s %s", shortcutID, ef.display(resolved[shortcutID]))
			options = append(options, huh.NewOption(label, shortcutID))
		}
		fields = append(fields, huh.NewSelect[string]().
			Title("Shortcut").
			Options(options...).
			Value(&ef.result.ID))
	}

	fields = append(fields, huh.NewInput().
		Title("New shortcut").
		DescriptionFunc(func() string {
			current, ok := ef.resolved[ef.result.ID]
			if !ok {
				return "e.g. Meta+K, Control+Shift+P"
			}
			return fmt.Sprintf("Currently: %s (%s)", current, ef.display(current))
		}, &ef.result.ID).
		Value(&ef.result.Shortcut).
		Validate(ef.validate))

	ef.form = huh.NewForm(huh.NewGroup(fields...))
	return ef
}

func (ef *ShortcutEditForm) display(shortcut string) string {
	return domain.FormatShortcut(domain.ParseShortcut(shortcut), ef.platform.IsMac(runtime.GOOS))
}

// validate rejects malformed shortcuts and shortcuts already used by another id
func (ef *ShortcutEditForm) validate(s string) error {
	if err := domain.ValidateShortcut(s).AsError(); err != nil {
		return err
	}

	candidate := ef.resolved.Clone()
	candidate[ef.result.ID] = s
	for _, c := range candidate.Conflicts() {
		if !slices.Contains(c.IDs, ef.result.ID) {
			continue
		}
		for _, other := range c.IDs {
			if other != ef.result.ID {
				return fmt.Errorf("%s is already used by %s", s, other)
			}
		}
	}
	return nil
}

func (ef *ShortcutEditForm) Init() tea.Cmd {
	return ef.form.Init()
}

func (ef *ShortcutEditForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" || keyMsg.String() == "ctrl+c" {
			ef.result.Cancelled = true
			ef.Completed = true
			return ef, tea.Quit
		}
	}

	form, cmd := ef.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		ef.form = f
	}

	if ef.form.State == huh.StateCompleted && !ef.Completed {
		ef.Completed = true
		if err := ef.save(); err != nil {
			logging.Logger.Error("Failed to save shortcut override", "error", err)
			ef.result.Error = err
		}
		return ef, tea.Quit
	}

	return ef, cmd
}

func (ef *ShortcutEditForm) View() string {
	if ef.result.Error != nil {
		return theme.ErrorStyle.Render(formatErrorForDisplay(ef.result.Error, 80)) + "\n"
	}
	if ef.form != nil {
		return ef.form.View()
	}
	return ""
}

// Result returns the form result
func (ef *ShortcutEditForm) Result() ShortcutEditFormResult {
	return ef.result
}

func (ef *ShortcutEditForm) save() error {
	ef.result.Previous = ef.resolved[ef.result.ID]

	logging.Logger.Info("Saving shortcut override",
		"id", ef.result.ID,
		"from", ef.result.Previous,
		"to", ef.result.Shortcut)

	return ef.service.Set(context.Background(), ef.result.ID, ef.result.Shortcut)
}
