package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/keebs/internal/adapters/clock"
	"github.com/renato0307/keebs/internal/domain"
	"github.com/renato0307/keebs/internal/logging"
	"github.com/renato0307/keebs/internal/paths"
	"github.com/renato0307/keebs/internal/services"
	"github.com/renato0307/keebs/internal/ui"
)

// KeysCmd manages persisted shortcut overrides
type KeysCmd struct {
	Edit  KeysEditCmd  `cmd:"edit" help:"Edit a shortcut override interactively"`
	List  KeysListCmd  `cmd:"list" help:"List shortcuts (defaults and overrides)" default:"1"`
	Reset KeysResetCmd `cmd:"reset" help:"Remove one override, or all of them with --all"`
	Set   KeysSetCmd   `cmd:"set" help:"Override the shortcut for an id"`
}

// KeysListCmd lists shortcuts
type KeysListCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// KeysSetCmd stores an override
type KeysSetCmd struct {
	ID       string `arg:"" help:"Shortcut id (e.g. search, save)"`
	Shortcut string `arg:"" help:"Shortcut string (e.g. Meta+K)"`
	Force    bool   `help:"Allow ids that have no default"`
}

// KeysResetCmd removes overrides
type KeysResetCmd struct {
	ID  string `arg:"" optional:"" help:"Shortcut id to reset"`
	All bool   `help:"Reset every override"`
}

// KeysEditCmd opens the shortcut editor
type KeysEditCmd struct {
	ID  string `arg:"" optional:"" help:"Shortcut id to edit (asks when omitted)"`
	Dev bool   `help:"Show version info in the dialog header"`
}

type keyEntry struct {
	Default  string `json:"default,omitempty"`
	Override string `json:"override,omitempty"`
	Display  string `json:"display"`
}

// withShortcutTracker runs fn with a context carrying a tracker that holds
// the demo's built-in shortcuts, settings, keymap file and persisted overrides
func withShortcutTracker(cli *CLI, fn func(ctx context.Context) error) error {
	ctx := context.Background()
	cfg, err := cli.Container.TrackerConfig(ctx, true)
	if err != nil {
		return err
	}

	defaults := ui.DefaultDemoShortcuts.Clone()
	for id, s := range cfg.DefaultShortcuts {
		defaults[id] = s
	}
	cfg.DefaultShortcuts = defaults

	tracker := services.NewTracker(cfg, clock.NewManual())
	if err := tracker.Init(nil); err != nil {
		return err
	}
	defer tracker.Teardown()

	return fn(services.WithTracker(ctx, tracker))
}

// resolvedShortcuts resolves every id known to the context's tracker
func resolvedShortcuts(ctx context.Context) domain.ShortcutMap {
	tracker := services.MustFromContext(ctx)

	ids := tracker.Defaults()
	for id, s := range tracker.Overrides() {
		ids[id] = s
	}

	resolved := make(domain.ShortcutMap, len(ids))
	for id := range ids {
		if s, ok := tracker.ResolveShortcut(id); ok {
			resolved[id] = s
		}
	}
	return resolved
}

// Run executes the list command
func (k *KeysListCmd) Run(cli *CLI) error {
	return withShortcutTracker(cli, func(ctx context.Context) error {
		return k.list(ctx, cli)
	})
}

func (k *KeysListCmd) list(ctx context.Context, cli *CLI) error {
	tracker := services.MustFromContext(ctx)
	defaults, overrides := tracker.Defaults(), tracker.Overrides()

	mac := cli.Container.Settings.GetPlatform().IsMac(runtime.GOOS)
	all := resolvedShortcuts(ctx)
	entries := make(map[string]keyEntry, len(all))
	for id, s := range all {
		entries[id] = keyEntry{
			Default:  defaults[id],
			Override: overrides[id],
			Display:  domain.FormatShortcut(domain.ParseShortcut(s), mac),
		}
	}

	if k.Format == "json" {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(cli.out(), string(data))
		return nil
	}

	fmt.Fprintf(cli.out(), "Shortcuts (overrides: %s)\n\n", paths.GetDBPath())

	w := tabwriter.NewWriter(cli.out(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tDefault\tOverride\tDisplay")
	fmt.Fprintln(w, "──\t───────\t────────\t───────")
	for _, id := range all.IDs() {
		e := entries[id]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", id, dash(e.Default), dash(e.Override), e.Display)
	}
	w.Flush()

	for _, c := range all.Conflicts() {
		fmt.Fprintf(cli.out(), "\nwarning: %s is shared by %s", c.Shortcut, strings.Join(c.IDs, ", "))
	}

	fmt.Fprintln(cli.out())
	fmt.Fprintln(cli.out(), "Use 'keebs keys set <id> <shortcut>' to customize.")
	return nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Run executes the set command
func (k *KeysSetCmd) Run(cli *CLI) error {
	return withShortcutTracker(cli, func(ctx context.Context) error {
		return k.set(ctx, cli)
	})
}

func (k *KeysSetCmd) set(ctx context.Context, cli *CLI) error {
	all := resolvedShortcuts(ctx)
	if _, ok := all[k.ID]; !ok && !k.Force {
		return fmt.Errorf("%w: '%s'. Valid ids: %s (use --force to add a new one)",
			domain.ErrUnknownShortcutID, k.ID, strings.Join(all.IDs(), ", "))
	}

	svc, err := cli.Container.OverrideService()
	if err != nil {
		return err
	}
	if err := svc.Set(ctx, k.ID, k.Shortcut); err != nil {
		return err
	}

	logging.Logger.Info("Shortcut override set via CLI", "id", k.ID, "shortcut", k.Shortcut)
	fmt.Fprintf(cli.out(), "✓ %s is now %s\n", k.ID, k.Shortcut)
	return nil
}

// Run executes the reset command
func (k *KeysResetCmd) Run(cli *CLI) error {
	if k.All == (k.ID != "") {
		return errors.New("pass either a shortcut id or --all")
	}

	svc, err := cli.Container.OverrideService()
	if err != nil {
		return err
	}

	ctx := context.Background()
	if k.All {
		if err := svc.ResetAll(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cli.out(), "✓ All shortcut overrides removed")
		return nil
	}

	if err := svc.Reset(ctx, k.ID); err != nil {
		if errors.Is(err, domain.ErrOverrideNotFound) {
			return fmt.Errorf("'%s' has no override", k.ID)
		}
		return err
	}
	fmt.Fprintf(cli.out(), "✓ %s restored to its default\n", k.ID)
	return nil
}

// Run executes the edit command
func (k *KeysEditCmd) Run(cli *CLI) error {
	var all domain.ShortcutMap
	err := withShortcutTracker(cli, func(ctx context.Context) error {
		all = resolvedShortcuts(ctx)
		return nil
	})
	if err != nil {
		return err
	}
	if k.ID != "" {
		if _, ok := all[k.ID]; !ok {
			return fmt.Errorf("%w: '%s'", domain.ErrUnknownShortcutID, k.ID)
		}
	}

	svc, err := cli.Container.OverrideService()
	if err != nil {
		return err
	}

	form := ui.NewShortcutEditForm(svc, all, k.ID, cli.Container.Settings.GetPlatform())
	if _, err := tea.NewProgram(ui.NewDialog("Edit shortcut", form, k.Dev)).Run(); err != nil {
		return fmt.Errorf("error running editor: %w", err)
	}

	result := form.Result()
	switch {
	case result.Cancelled:
		fmt.Fprintln(cli.out(), "Cancelled")
	case result.Error != nil:
		return result.Error
	default:
		fmt.Fprintf(cli.out(), "✓ %s: %s → %s\n", result.ID, dash(result.Previous), result.Shortcut)
	}
	return nil
}
