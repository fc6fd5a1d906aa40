package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/keebs/internal/adapters/eventloop"
	"github.com/renato0307/keebs/internal/adapters/keysource"
	"github.com/renato0307/keebs/internal/domain"
	"github.com/renato0307/keebs/internal/logging"
	"github.com/renato0307/keebs/internal/ports"
	"github.com/renato0307/keebs/internal/services"
	"github.com/renato0307/keebs/internal/theme"
)

// maxDemoNotices bounds the diagnostics shown under the shortcut list
const maxDemoNotices = 5

// DemoAction is a row in the demo: a shortcut id and what it does
type DemoAction struct {
	ID    string
	Label string
}

// DefaultDemoActions are always listed; extra configured ids are appended
var DefaultDemoActions = []DemoAction{
	{ID: "search", Label: "Search"},
	{ID: "new_file", Label: "New file"},
	{ID: "save", Label: "Save"},
	{ID: "close_tab", Label: "Close tab"},
	{ID: "command_palette", Label: "Command palette"},
	{ID: "toggle_sidebar", Label: "Toggle sidebar"},
}

// DefaultDemoShortcuts are the built-in defaults for DefaultDemoActions.
// Terminals cannot send Meta, so these use Control and Alt.
var DefaultDemoShortcuts = domain.ShortcutMap{
	"search":          "Control+K",
	"new_file":        "Control+N",
	"save":            "Control+S",
	"close_tab":       "Control+W",
	"command_palette": "Alt+P",
	"toggle_sidebar":  "Alt+B",
}

// DemoConfig configures NewDemoModel
type DemoConfig struct {
	// Tracker options. DefaultShortcuts are layered over DefaultDemoShortcuts.
	Tracker services.TrackerConfig
	// Overrides is the persisted override store. When set, its overrides
	// replace Tracker.Overrides and can be reloaded while the demo runs.
	Overrides ports.OverrideRepository
	Platform  domain.Platform
	// Renderer styles hints; nil means the default renderer
	Renderer      *lipgloss.Renderer
	PeekKey       string
	ReleaseWindow time.Duration
	Variant       HintVariant
	// Verbose shows build details in the header
	Verbose bool
}

// loopMsg carries a callback posted to the event loop
type loopMsg struct {
	fn func()
}

// loopClosedMsg is sent once the event loop is closed
type loopClosedMsg struct{}

// DemoModel is a bubbletea model that owns a tracker for one terminal.
// The tracker only runs inside Update, and timer callbacks reach it through
// the event loop queue.
type DemoModel struct {
	actions   []DemoAction
	bindings  map[string]*services.Binding
	closed    bool
	fired     map[string]int
	help      help.Model
	hints     HintRenderer
	hold      *HoldEmulator
	keys      DemoKeys
	lastFired string
	loop      *eventloop.Loop
	notices   []string
	overrides *services.OverrideService
	platform  domain.Platform
	source    *keysource.Dispatcher
	tracker   *services.Tracker
	variant   HintVariant
	verbose   bool
	width     int
}

// NewDemoModel creates the tracker, binds every action and returns the model
func NewDemoModel(cfg DemoConfig) (*DemoModel, error) {
	m := &DemoModel{
		bindings: make(map[string]*services.Binding),
		fired:    make(map[string]int),
		help:     help.New(),
		hints:    NewHintRenderer(cfg.Renderer, cfg.Tracker.Theme),
		keys:     NewDemoKeys(cfg.PeekKey),
		loop:     eventloop.New(0),
		platform: cfg.Platform,
		source:   keysource.NewDispatcher(),
		variant:  cfg.Variant,
		verbose:  cfg.Verbose,
	}
	if m.variant == "" {
		m.variant = HintBadge
	}

	trackerCfg := cfg.Tracker
	trackerCfg.DefaultShortcuts = layerDefaults(cfg.Tracker.DefaultShortcuts)
	next := trackerCfg.DiagnosticHandler
	trackerCfg.DiagnosticHandler = func(d domain.Diagnostic) {
		m.notice(d.Message())
		if next != nil {
			next(d)
		}
	}

	m.tracker = services.NewTracker(trackerCfg, m.loop)
	if err := m.tracker.Init(m.source); err != nil {
		return nil, err
	}

	if cfg.Overrides != nil {
		m.overrides = services.NewOverrideService(cfg.Overrides, m.tracker)
		if _, err := m.overrides.Load(context.Background()); err != nil {
			m.tracker.Teardown()
			m.Shutdown()
			return nil, err
		}
	}

	triggers := m.tracker.TriggerKeys()
	m.hold = NewHoldEmulator(triggers[0], cfg.ReleaseWindow)

	m.actions = actionsFor(m.tracker.Defaults(), m.tracker.Overrides())
	for _, action := range m.actions {
		m.bind(action)
	}

	logging.Logger.Info("Demo started",
		"actions", len(m.actions),
		"trigger", m.hold.Trigger(),
		"delay", m.tracker.Delay())
	return m, nil
}

func layerDefaults(configured domain.ShortcutMap) domain.ShortcutMap {
	defaults := DefaultDemoShortcuts.Clone()
	for id, s := range configured {
		defaults[id] = s
	}
	return defaults
}

// actionsFor lists DefaultDemoActions followed by any other resolvable id
func actionsFor(defaults, overrides domain.ShortcutMap) []DemoAction {
	known := make(map[string]bool, len(DefaultDemoActions))
	actions := make([]DemoAction, 0, len(defaults))
	for _, a := range DefaultDemoActions {
		known[a.ID] = true
		actions = append(actions, a)
	}

	extra := defaults.Clone()
	for id, s := range overrides {
		extra[id] = s
	}
	for _, id := range extra.IDs() {
		if !known[id] {
			actions = append(actions, DemoAction{ID: id, Label: id})
		}
	}
	return actions
}

func (m *DemoModel) bind(action DemoAction) {
	id := action.ID
	b, err := services.BindNamed(m.tracker, id, func() {
		m.fired[id]++
		m.lastFired = id
	}, services.BindOptions{Element: action.Label})
	if err != nil {
		m.notice(err.Error())
		return
	}
	m.bindings[id] = b
}

func (m *DemoModel) notice(msg string) {
	m.notices = append(m.notices, msg)
	if len(m.notices) > maxDemoNotices {
		m.notices = m.notices[len(m.notices)-maxDemoNotices:]
	}
}

// Tracker returns the model's tracker
func (m *DemoModel) Tracker() *services.Tracker {
	return m.tracker
}

// Post runs fn on the model's goroutine. It returns false once the demo has ended.
func (m *DemoModel) Post(fn func(*DemoModel)) bool {
	return m.loop.Post(func() { fn(m) })
}

// ApplyDefaults swaps in a new default mapping (e.g. a reloaded keymap file)
// and refreshes every binding whose resolved shortcut changed
func (m *DemoModel) ApplyDefaults(configured domain.ShortcutMap) {
	m.tracker.ReplaceDefaults(layerDefaults(configured))
	m.syncBindings()
}

// ReloadOverrides reads the persisted overrides again and refreshes the
// bindings they affect
func (m *DemoModel) ReloadOverrides() {
	if m.overrides == nil {
		m.notice("no override store configured")
		return
	}
	if _, err := m.overrides.Load(context.Background()); err != nil {
		m.notice(err.Error())
		return
	}
	m.syncBindings()
}

// syncBindings lists and binds new ids and refreshes the existing bindings
func (m *DemoModel) syncBindings() {
	listed := make(map[string]bool, len(m.actions))
	for _, a := range m.actions {
		listed[a.ID] = true
	}

	for _, action := range actionsFor(m.tracker.Defaults(), m.tracker.Overrides()) {
		if !listed[action.ID] {
			m.actions = append(m.actions, action)
		}
		b, ok := m.bindings[action.ID]
		if !ok {
			m.bind(action)
			continue
		}
		if err := b.Refresh(); err != nil {
			m.notice(err.Error())
		}
	}
}

// Close unregisters every binding and stops the tracker and event loop.
// It must run on the model's goroutine, or after the program has exited.
func (m *DemoModel) Close() {
	if m.closed {
		return
	}
	m.closed = true
	for _, b := range m.bindings {
		b.Close()
	}
	m.tracker.Teardown()
	m.Shutdown()
	logging.Logger.Info("Demo ended")
}

// Shutdown closes the event loop. Unlike Close it may be called from any
// goroutine; queued timer callbacks are dropped and Post returns false.
func (m *DemoModel) Shutdown() {
	m.loop.Close()
}

func waitForLoop(l *eventloop.Loop) tea.Cmd {
	return func() tea.Msg {
		select {
		case fn := <-l.Queue():
			return loopMsg{fn: fn}
		case <-l.Done():
			return loopClosedMsg{}
		}
	}
}

func (m *DemoModel) Init() tea.Cmd {
	return waitForLoop(m.loop)
}

func (m *DemoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loopMsg:
		msg.fn()
		return m, waitForLoop(m.loop)

	case loopClosedMsg:
		return m, nil

	case holdReleaseMsg:
		if up := m.hold.Release(msg); up != nil {
			m.source.KeyUp(*up)
		}
		return m, nil

	case tea.BlurMsg:
		m.hold.Reset()
		m.source.Blur()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *DemoModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Peek):
		down, cmd := m.hold.Press()
		if down != nil {
			m.source.KeyDown(*down)
		}
		return m, cmd

	case key.Matches(msg, m.keys.ToggleDisabled):
		m.tracker.SetDisabled(!m.tracker.Disabled())
		return m, nil

	case key.Matches(msg, m.keys.ReloadOverrides):
		m.ReloadOverrides()
		return m, nil

	case key.Matches(msg, m.keys.ToggleVariant):
		if m.variant == HintBadge {
			m.variant = HintText
		} else {
			m.variant = HintBadge
		}
		return m, nil
	}

	// Terminals report presses only, so every press is followed by its release
	ev := KeyEventFromMsg(msg)
	m.source.KeyDown(ev)
	m.source.KeyUp(ev)
	return m, nil
}

func (m *DemoModel) View() string {
	var sb strings.Builder

	sb.WriteString(renderHeader(m.verbose, ""))
	sb.WriteString("\n")

	visible := m.tracker.HintsVisible()
	for _, action := range m.actions {
		label := theme.ActionLabelStyle.Render(action.Label)
		id := theme.ActionIDStyle.Render(action.ID)

		hint := ""
		if b, ok := m.bindings[action.ID]; ok && b.Registered() {
			hint = m.hints.Render(b.Display(m.platform), visible, m.variant)
		}

		count := ""
		if n := m.fired[action.ID]; n > 0 {
			count = theme.FiredStyle.Render(fmt.Sprintf("  ×%d", n))
		}
		sb.WriteString(fmt.Sprintf("  %s%s%s%s\n", label, id, hint, count))
	}

	sb.WriteString("\n")
	state := m.tracker.State().String()
	if m.tracker.Disabled() {
		state = "disabled"
	}
	sb.WriteString(theme.MutedStyle.Render("state: "))
	sb.WriteString(theme.StateStyle(state, m.tracker.Disabled()).Render(state))
	if m.lastFired != "" {
		sb.WriteString(theme.MutedStyle.Render("   last: "))
		sb.WriteString(theme.FiredStyle.Render(m.lastFired))
	}
	sb.WriteString("\n")

	for _, n := range m.notices {
		sb.WriteString(theme.ErrorStyle.Render("! " + n))
		sb.WriteString("\n")
	}

	sb.WriteString(theme.HelpStyle.Render(m.help.View(m.keys)))
	return sb.String()
}
