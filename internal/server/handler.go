package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/renato0307/keebs/internal/logging"
	"github.com/renato0307/keebs/internal/ui"
)

// sessionModel wraps the demo model so the session is released on disconnect
type sessionModel struct {
	*ui.DemoModel
	sessionID string
	startTime time.Time
	onClose   func()
	closeOnce sync.Once
}

func (s *sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := s.DemoModel.Update(msg)
	return s, cmd
}

// close tears the demo down. It runs once the session's program has exited,
// so nothing else touches the tracker anymore.
func (s *sessionModel) close() {
	s.closeOnce.Do(func() {
		s.DemoModel.Close()
		if s.onClose != nil {
			s.onClose()
		}
		logging.Logger.Info("SSH session ended",
			"session_id", s.sessionID,
			"duration", time.Since(s.startTime).String())
	})
}

// sessionModelKey stores a session's model in its ssh.Context
type sessionModelKey struct{}

// releaseMiddleware sits inside the bubbletea middleware, which calls it
// after the session's program has stopped
func releaseMiddleware() wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			releaseSession(sess.Context())
			next(sess)
		}
	}
}

// releaseSession closes the demo model stored in ctx, if any
func releaseSession(ctx context.Context) {
	if m, ok := ctx.Value(sessionModelKey{}).(*sessionModel); ok {
		m.close()
	}
}

// teaHandler creates a demo model for each SSH session
func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	sessionID := fmt.Sprintf("%s@%s", sess.User(), sess.RemoteAddr().String())

	logging.Logger.Info("New SSH session",
		"session_id", sessionID,
		"user", sess.User(),
		"remote_addr", sess.RemoteAddr().String(),
		"term", pty.Term,
		"window", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

	cfg, err := s.newConfig()
	if err != nil {
		logging.Logger.Error("Failed to build demo config for SSH session",
			"error", err,
			"session_id", sessionID)
		return errorModel{err}, nil
	}
	cfg.Renderer = bubbletea.MakeRenderer(sess)

	model, err := ui.NewDemoModel(cfg)
	if err != nil {
		logging.Logger.Error("Failed to start demo for SSH session",
			"error", err,
			"session_id", sessionID)
		return errorModel{err}, nil
	}

	wrapped := &sessionModel{
		DemoModel: model,
		sessionID: sessionID,
		startTime: time.Now(),
	}
	wrapped.onClose = s.sessions.add(sessionID, model)
	sess.Context().SetValue(sessionModelKey{}, wrapped)

	return wrapped, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	}
}

// errorModel is a simple model that displays an error
type errorModel struct {
	err error
}

func (e errorModel) Init() tea.Cmd {
	return nil
}

func (e errorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return e, tea.Quit
}

func (e errorModel) View() string {
	return fmt.Sprintf("Error: %v\n", e.err)
}

// sessionRegistry tracks live demo models so keymap reloads reach every session
type sessionRegistry struct {
	mu     sync.Mutex
	nextID int
	models map[int]*ui.DemoModel
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{models: make(map[int]*ui.DemoModel)}
}

// add registers m and returns the function that removes it
func (r *sessionRegistry) add(sessionID string, m *ui.DemoModel) (remove func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := r.nextID
	r.models[id] = m
	logging.Logger.Debug("Registered SSH session", "session_id", sessionID, "live", len(r.models))

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.models, id)
	}
}

// broadcast posts fn to every live session and returns how many accepted it
func (r *sessionRegistry) broadcast(fn func(*ui.DemoModel)) int {
	r.mu.Lock()
	models := make([]*ui.DemoModel, 0, len(r.models))
	for _, m := range r.models {
		models = append(models, m)
	}
	r.mu.Unlock()

	delivered := 0
	for _, m := range models {
		if m.Post(fn) {
			delivered++
		}
	}
	return delivered
}

func (r *sessionRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.models)
}
