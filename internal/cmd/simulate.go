package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/renato0307/keebs/internal/domain"
	"github.com/renato0307/keebs/internal/logging"
	"github.com/renato0307/keebs/internal/replay"
)

// SimulateCmd replays a key event script against the configured shortcuts
type SimulateCmd struct {
	Script      string            `arg:"" help:"Script file, or - for stdin"`
	Bind        map[string]string `help:"Extra shortcut to register, as id=shortcut (repeatable)" short:"b"`
	Tail        time.Duration     `help:"Virtual time to let pass after the last step" default:"1s"`
	NoDefaults  bool              `help:"Do not register shortcuts from settings and the keymap file"`
	NoOverrides bool              `help:"Ignore persisted overrides"`
}

// Run executes the simulate command
func (s *SimulateCmd) Run(cli *CLI) error {
	steps, err := s.readScript()
	if err != nil {
		return err
	}

	cfg, err := cli.Container.TrackerConfig(context.Background(), !s.NoOverrides && !s.NoDefaults)
	if err != nil {
		return err
	}
	if s.NoDefaults {
		cfg.DefaultShortcuts = nil
	}

	runner, err := replay.NewRunner(cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	if err := runner.BindDefaults(); err != nil {
		return fmt.Errorf("failed to register configured shortcuts: %w", err)
	}
	binds := domain.ShortcutMap(s.Bind)
	for _, id := range binds.IDs() {
		if err := runner.Bind(id, binds[id]); err != nil {
			return fmt.Errorf("--bind %s=%s: %w", id, binds[id], err)
		}
	}

	logging.Logger.Info("Replaying script",
		"script", s.Script,
		"steps", len(steps),
		"registrations", len(runner.Tracker().Registrations()))

	return replay.WriteTimeline(cli.out(), runner.Run(steps, s.Tail))
}

func (s *SimulateCmd) readScript() ([]replay.Step, error) {
	var r io.Reader = os.Stdin
	if s.Script != "-" {
		f, err := os.Open(s.Script)
		if err != nil {
			return nil, fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()
		r = f
	}

	steps, err := replay.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("invalid script %s: %w", s.Script, err)
	}
	return steps, nil
}
