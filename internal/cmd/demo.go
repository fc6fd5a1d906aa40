package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	adapterkeymap "github.com/renato0307/keebs/internal/adapters/keymap"
	"github.com/renato0307/keebs/internal/domain"
	"github.com/renato0307/keebs/internal/logging"
	"github.com/renato0307/keebs/internal/ui"
)

// DemoCmd runs the interactive demo in this terminal
type DemoCmd struct {
	Dev           bool          `help:"Show version info in the header"`
	PeekKey       string        `help:"Key to hold in place of the trigger modifier" default:"tab"`
	ReleaseWindow time.Duration `help:"Silence after the last peek key repeat that counts as release" default:"600ms"`
	Variant       string        `help:"Hint style: badge or text" enum:"badge,text" default:"badge"`
}

// demoConfig builds a demo configuration from settings and the keymap.
// The demo loads persisted overrides itself from the returned store.
func demoConfig(ctx context.Context, cli *CLI, peekKey string, releaseWindow time.Duration, variant string, dev bool) (ui.DemoConfig, error) {
	trackerCfg, err := cli.Container.TrackerConfig(ctx, false)
	if err != nil {
		return ui.DemoConfig{}, err
	}
	repo, err := cli.Container.OverrideRepository()
	if err != nil {
		return ui.DemoConfig{}, err
	}
	hintVariant, err := ui.ParseHintVariant(variant)
	if err != nil {
		return ui.DemoConfig{}, err
	}

	return ui.DemoConfig{
		Tracker:       trackerCfg,
		Overrides:     repo,
		Platform:      cli.Container.Settings.GetPlatform(),
		PeekKey:       peekKey,
		ReleaseWindow: releaseWindow,
		Variant:       hintVariant,
		Verbose:       dev,
	}, nil
}

// watchKeymap reloads the keymap file until ctx ends, handing each new
// default mapping (settings shortcuts with the file on top) to apply
func watchKeymap(ctx context.Context, cli *CLI, apply func(domain.ShortcutMap)) error {
	path := cli.Container.Settings.GetKeymapFile()
	if path == "" {
		return nil
	}

	watcher, err := adapterkeymap.NewWatcher(path, adapterkeymap.DefaultDebounce)
	if err != nil {
		return fmt.Errorf("failed to watch keymap file: %w", err)
	}

	base := cli.Container.Settings.Shortcuts
	return watcher.Run(ctx, func(fromFile domain.ShortcutMap) {
		defaults := base.Clone()
		for id, s := range fromFile {
			defaults[id] = s
		}
		apply(defaults)
	})
}

// Run executes the demo
func (d *DemoCmd) Run(cli *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	cfg, err := demoConfig(ctx, cli, d.PeekKey, d.ReleaseWindow, d.Variant, d.Dev)
	if err != nil {
		return err
	}

	model, err := ui.NewDemoModel(cfg)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithContext(gctx),
	)

	g.Go(func() error {
		defer stop()
		logging.Logger.Info("Starting demo program")
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("error running demo: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return watchKeymap(gctx, cli, func(defaults domain.ShortcutMap) {
			model.Post(func(m *ui.DemoModel) { m.ApplyDefaults(defaults) })
		})
	})

	err = g.Wait()
	model.Close()
	logging.Logger.Info("Demo program exited")
	return err
}
