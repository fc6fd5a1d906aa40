package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/renato0307/keebs/internal/domain"
	"github.com/renato0307/keebs/internal/logging"
	"github.com/renato0307/keebs/internal/paths"
	"github.com/renato0307/keebs/internal/server"
	"github.com/renato0307/keebs/internal/ui"
)

// ServeCmd serves the demo over SSH
type ServeCmd struct {
	Host           string        `help:"Host to bind to" default:"localhost"`
	Port           string        `help:"Port to listen on" default:"23234"`
	AuthorizedKeys string        `help:"authorized_keys file (default: ~/.ssh/authorized_keys)" type:"path"`
	PeekKey        string        `help:"Key to hold in place of the trigger modifier" default:"tab"`
	ReleaseWindow  time.Duration `help:"Silence after the last peek key repeat that counts as release" default:"600ms"`
	Variant        string        `help:"Hint style: badge or text" enum:"badge,text" default:"badge"`

	mu sync.Mutex `kong:"-"`
}

// Run executes the serve command
func (s *ServeCmd) Run(cli *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Fail fast on bad settings instead of on the first connection
	if _, err := demoConfig(ctx, cli, s.PeekKey, s.ReleaseWindow, s.Variant, false); err != nil {
		return err
	}

	// Sessions share the container, so each session's config is built under a lock
	newConfig := func() (ui.DemoConfig, error) {
		return s.sessionConfig(ctx, cli)
	}

	srv, err := server.NewServer(server.Options{
		Host:               s.Host,
		Port:               s.Port,
		SSHDir:             paths.GetSSHDir(),
		AuthorizedKeysPath: s.AuthorizedKeys,
		NewConfig:          newConfig,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logging.Logger.Info("Starting keebs SSH server", "address", srv.Address())
	fmt.Fprintf(cli.out(), "SSH server listening on %s\n", srv.Address())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(gctx)
	})
	g.Go(func() error {
		return watchKeymap(gctx, cli, func(defaults domain.ShortcutMap) {
			n := srv.Broadcast(func(m *ui.DemoModel) { m.ApplyDefaults(defaults) })
			logging.Logger.Info("Keymap pushed to SSH sessions", "sessions", n)
		})
	})

	return g.Wait()
}

// sessionConfig reads overrides afresh so edits made while serving reach new sessions
func (s *ServeCmd) sessionConfig(ctx context.Context, cli *CLI) (ui.DemoConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return demoConfig(ctx, cli, s.PeekKey, s.ReleaseWindow, s.Variant, false)
}
