// Package server serves the shortcut demo over SSH, one tracker per session
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	wishlogging "github.com/charmbracelet/wish/logging"
	"golang.org/x/sync/errgroup"

	"github.com/renato0307/keebs/internal/logging"
	"github.com/renato0307/keebs/internal/ui"
)

const shutdownTimeout = 30 * time.Second

// ConfigFunc builds the demo configuration for a new session
type ConfigFunc func() (ui.DemoConfig, error)

// Options configures NewServer
type Options struct {
	Host               string
	Port               string
	SSHDir             string
	AuthorizedKeysPath string
	NewConfig          ConfigFunc
}

// Server represents the SSH server for keebs
type Server struct {
	address            string
	authorizedKeysPath string
	newConfig          ConfigFunc
	sessions           *sessionRegistry
	wishServer         *ssh.Server
}

// NewServer creates a new SSH server instance
func NewServer(opts Options) (*Server, error) {
	if opts.NewConfig == nil {
		return nil, errors.New("server: NewConfig is required")
	}

	authorizedKeysPath := opts.AuthorizedKeysPath
	if authorizedKeysPath == "" {
		path, err := DefaultAuthorizedKeysPath()
		if err != nil {
			return nil, err
		}
		authorizedKeysPath = path
	}

	if err := os.MkdirAll(opts.SSHDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create SSH directory: %w", err)
	}

	s := &Server{
		address:            net.JoinHostPort(opts.Host, opts.Port),
		authorizedKeysPath: authorizedKeysPath,
		newConfig:          opts.NewConfig,
		sessions:           newSessionRegistry(),
	}

	// Middleware executes in reverse order (last to first)
	wishServer, err := wish.NewServer(
		wish.WithAddress(s.address),
		wish.WithHostKeyPath(filepath.Join(opts.SSHDir, "id_ed25519")),
		wish.WithPublicKeyAuth(s.publicKeyHandler),
		wish.WithMiddleware(
			releaseMiddleware(),
			bubbletea.Middleware(s.teaHandler),
			activeterm.Middleware(),
			wishlogging.Middleware(),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH server: %w", err)
	}

	s.wishServer = wishServer
	return s, nil
}

// Address returns the listen address
func (s *Server) Address() string {
	return s.address
}

// Broadcast runs fn on the goroutine of every live session's demo model.
// It returns the number of sessions that accepted it.
func (s *Server) Broadcast(fn func(*ui.DemoModel)) int {
	return s.sessions.broadcast(fn)
}

// Sessions returns the number of live sessions
func (s *Server) Sessions() int {
	return s.sessions.len()
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	logging.Logger.Info("Starting SSH server", "address", s.address)

	g.Go(func() error {
		if err := s.wishServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("SSH server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logging.Logger.Info("Shutting down SSH server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := s.wishServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown SSH server: %w", err)
		}
		logging.Logger.Info("SSH server stopped")
		return nil
	})

	return g.Wait()
}
