package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/keebs/internal/adapters/clock"
	"github.com/renato0307/keebs/internal/domain"
	"github.com/renato0307/keebs/internal/ports"
	portsmocks "github.com/renato0307/keebs/internal/ports/mocks"
)

var (
	metaDown    = domain.KeyEvent{Key: "Meta", Meta: true}
	metaUp      = domain.KeyEvent{Key: "Meta"}
	controlDown = domain.KeyEvent{Key: "Control", Control: true}
	shiftDown   = domain.KeyEvent{Key: "Shift", Shift: true}
	metaK       = domain.KeyEvent{Key: "k", Meta: true}
)

func newTestTracker(t *testing.T, cfg TrackerConfig) (*Tracker, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual()
	tr := NewTracker(cfg, clk)
	require.NoError(t, tr.Init(nil))
	t.Cleanup(tr.Teardown)
	return tr, clk
}

func TestNewTracker_Defaults(t *testing.T) {
	tr := NewTracker(TrackerConfig{}, clock.NewManual())

	assert.Equal(t, DefaultRevealDelay, tr.Delay())
	assert.Equal(t, []domain.Modifier{domain.ModifierMeta, domain.ModifierControl}, tr.TriggerKeys())
	assert.Equal(t, domain.ThemeAuto, tr.Theme())
	assert.False(t, tr.Disabled())
	assert.False(t, tr.HintsVisible())
	assert.False(t, tr.Active())
	assert.Equal(t, StateIdle, tr.State())
}

func TestNewTracker_NilSchedulerPanics(t *testing.T) {
	assert.Panics(t, func() { NewTracker(TrackerConfig{}, nil) })
}

func TestTracker_InitLifecycle(t *testing.T) {
	tr := NewTracker(TrackerConfig{}, clock.NewManual())

	require.NoError(t, tr.Init(nil))
	assert.True(t, tr.Active())
	assert.ErrorIs(t, tr.Init(nil), domain.ErrTrackerActive)

	tr.Teardown()
	assert.False(t, tr.Active())
	assert.ErrorIs(t, tr.Init(nil), domain.ErrTrackerClosed)

	// second teardown is a no-op
	tr.Teardown()
}

func TestTracker_RevealAfterDelayAndHideOnKeyUp(t *testing.T) {
	tr, clk := newTestTracker(t, TrackerConfig{})

	tr.KeyDown(metaDown)
	assert.False(t, tr.HintsVisible())
	assert.Equal(t, StateHolding, tr.State())

	clk.AdvanceTo(299 * time.Millisecond)
	assert.False(t, tr.HintsVisible())

	clk.AdvanceTo(300 * time.Millisecond)
	assert.True(t, tr.HintsVisible())
	assert.Equal(t, StateRevealed, tr.State())

	clk.AdvanceTo(350 * time.Millisecond)
	tr.KeyUp(metaUp)
	assert.False(t, tr.HintsVisible())
	assert.Equal(t, StateIdle, tr.State())
}

func TestTracker_ReleaseBeforeDelayCancelsReveal(t *testing.T) {
	tr, clk := newTestTracker(t, TrackerConfig{})

	tr.KeyDown(controlDown)
	clk.AdvanceTo(100 * time.Millisecond)
	tr.KeyUp(domain.KeyEvent{Key: "Control"})

	clk.AdvanceTo(time.Second)
	assert.False(t, tr.HintsVisible())
	assert.Equal(t, 0, clk.Pending())
}

func TestTracker_BlurHidesHints(t *testing.T) {
	tr, clk := newTestTracker(t, TrackerConfig{})

	tr.KeyDown(metaDown)
	clk.AdvanceTo(300 * time.Millisecond)
	require.True(t, tr.HintsVisible())

	clk.AdvanceTo(400 * time.Millisecond)
	tr.Blur()
	assert.False(t, tr.HintsVisible())
	assert.Equal(t, StateIdle, tr.State())
}

func TestTracker_BlurCancelsPendingReveal(t *testing.T) {
	tr, clk := newTestTracker(t, TrackerConfig{})

	tr.KeyDown(metaDown)
	clk.AdvanceTo(100 * time.Millisecond)
	tr.Blur()

	clk.AdvanceTo(time.Second)
	assert.False(t, tr.HintsVisible())
}

func TestTracker_NonTriggerKeyIgnored(t *testing.T) {
	tr, clk := newTestTracker(t, TrackerConfig{})

	tr.KeyDown(shiftDown)
	clk.AdvanceTo(time.Second)
	assert.False(t, tr.HintsVisible())
	assert.Equal(t, 0, clk.Pending())

	// releasing a non-trigger key does not hide hints
	tr.KeyDown(metaDown)
	clk.AdvanceTo(1300 * time.Millisecond)
	require.True(t, tr.HintsVisible())
	tr.KeyUp(domain.KeyEvent{Key: "Shift"})
	assert.True(t, tr.HintsVisible())
}

func TestTracker_CustomTriggerKeysAndDelay(t *testing.T) {
	tr, clk := newTestTracker(t, TrackerConfig{
		TriggerKeys: []domain.Modifier{domain.ModifierAlt},
		Delay:       500 * time.Millisecond,
	})

	tr.KeyDown(metaDown)
	clk.AdvanceTo(time.Second)
	assert.False(t, tr.HintsVisible())

	tr.KeyDown(domain.KeyEvent{Key: "Alt", Alt: true})
	clk.Advance(499 * time.Millisecond)
	assert.False(t, tr.HintsVisible())
	clk.Advance(time.Millisecond)
	assert.True(t, tr.HintsVisible())
}

func TestTracker_SecondTriggerWhileHeldIsNoop(t *testing.T) {
	sched := portsmocks.NewMockScheduler(t)
	timer := portsmocks.NewMockTimer(t)

	sched.EXPECT().AfterFunc(DefaultRevealDelay, mock.Anything).Return(timer).Once()

	tr := NewTracker(TrackerConfig{}, sched)
	require.NoError(t, tr.Init(nil))

	tr.KeyDown(metaDown)
	tr.KeyDown(controlDown)
	tr.KeyDown(metaDown)

	assert.Equal(t, StateHolding, tr.State())

	timer.EXPECT().Stop().Return(true).Once()
	tr.Teardown()
}

func TestTracker_KeyUpStopsTimer(t *testing.T) {
	sched := portsmocks.NewMockScheduler(t)
	timer := portsmocks.NewMockTimer(t)

	sched.EXPECT().AfterFunc(DefaultRevealDelay, mock.Anything).Return(timer).Once()
	timer.EXPECT().Stop().Return(true).Once()

	tr := NewTracker(TrackerConfig{}, sched)
	require.NoError(t, tr.Init(nil))

	tr.KeyDown(metaDown)
	tr.KeyUp(metaUp)

	// no pending timer left to stop
	tr.Teardown()
}

func TestTracker_StaleTimerFireIgnored(t *testing.T) {
	sched := portsmocks.NewMockScheduler(t)
	timer := portsmocks.NewMockTimer(t)

	var fires []func()
	sched.EXPECT().AfterFunc(DefaultRevealDelay, mock.Anything).
		RunAndReturn(func(_ time.Duration, f func()) ports.Timer {
			fires = append(fires, f)
			return timer
		}).Twice()
	// a timer that already fired cannot be stopped
	timer.EXPECT().Stop().Return(false)

	tr := NewTracker(TrackerConfig{}, sched)
	require.NoError(t, tr.Init(nil))

	tr.KeyDown(metaDown)
	tr.KeyUp(metaUp)
	tr.KeyDown(metaDown)
	require.Len(t, fires, 2)

	fires[0]()
	assert.False(t, tr.HintsVisible(), "fire from the released hold must be dropped")

	fires[1]()
	assert.True(t, tr.HintsVisible())

	tr.Teardown()
}

func TestTracker_TeardownMidHold(t *testing.T) {
	tr, clk := newTestTracker(t, TrackerConfig{})

	changes := 0
	tr.OnHintsVisibleChange(func(bool) { changes++ })

	tr.KeyDown(metaDown)
	clk.AdvanceTo(100 * time.Millisecond)
	tr.Teardown()

	clk.AdvanceTo(time.Second)
	assert.False(t, tr.HintsVisible())
	assert.Equal(t, 0, changes)

	// events after teardown are ignored
	tr.KeyDown(metaDown)
	clk.AdvanceTo(2 * time.Second)
	assert.False(t, tr.HintsVisible())
}

func TestTracker_TeardownDetachesSource(t *testing.T) {
	src := &fakeSource{}
	tr := NewTracker(TrackerConfig{}, clock.NewManual())

	require.NoError(t, tr.Init(src))
	assert.Len(t, src.listeners, 1)

	tr.Teardown()
	assert.Empty(t, src.listeners)
}

func TestTracker_DisableMidHold(t *testing.T) {
	tr, clk := newTestTracker(t, TrackerConfig{})

	tr.KeyDown(metaDown)
	clk.AdvanceTo(100 * time.Millisecond)
	tr.SetDisabled(true)

	clk.AdvanceTo(400 * time.Millisecond)
	assert.False(t, tr.HintsVisible())
}

func TestTracker_DisableHidesVisibleHints(t *testing.T) {
	tr, clk := newTestTracker(t, TrackerConfig{})

	tr.KeyDown(metaDown)
	clk.AdvanceTo(300 * time.Millisecond)
	require.True(t, tr.HintsVisible())

	tr.SetDisabled(true)
	assert.False(t, tr.HintsVisible())

	// re-enabling while still held waits for the next transition
	tr.SetDisabled(false)
	clk.AdvanceTo(time.Second)
	assert.False(t, tr.HintsVisible())

	tr.KeyUp(metaUp)
	tr.KeyDown(metaDown)
	clk.AdvanceTo(1300 * time.Millisecond)
	assert.True(t, tr.HintsVisible())
}

func TestTracker_DisabledInitially(t *testing.T) {
	called := false
	tr, clk := newTestTracker(t, TrackerConfig{DisabledInitially: true})
	require.NoError(t, tr.Register(domain.Registration{
		ID: "search", Shortcut: "Meta+K", Handler: func() { called = true },
	}))

	assert.False(t, tr.KeyDown(metaK))
	assert.False(t, called)

	tr.KeyDown(metaDown)
	clk.AdvanceTo(time.Second)
	assert.False(t, tr.HintsVisible())

	tr.SetDisabled(false)
	assert.True(t, tr.KeyDown(metaK))
	assert.True(t, called)
}

func TestTracker_ShortcutFiresHandler(t *testing.T) {
	tr, _ := newTestTracker(t, TrackerConfig{})

	calls := 0
	require.NoError(t, tr.Register(domain.Registration{
		ID: "search", Shortcut: "Meta+K", Handler: func() { calls++ },
	}))

	assert.True(t, tr.KeyDown(metaK))
	assert.Equal(t, 1, calls)

	// extra modifier does not match
	assert.False(t, tr.KeyDown(domain.KeyEvent{Key: "k", Meta: true, Shift: true}))
	// key comparison is case-insensitive
	assert.True(t, tr.KeyDown(domain.KeyEvent{Key: "K", Meta: true}))
	assert.Equal(t, 2, calls)
}

func TestTracker_HandlerFiresWhileHintsVisible(t *testing.T) {
	tr, clk := newTestTracker(t, TrackerConfig{})

	calls := 0
	require.NoError(t, tr.Register(domain.Registration{
		ID: "search", Shortcut: "Meta+K", Handler: func() { calls++ },
	}))

	tr.KeyDown(metaDown)
	clk.AdvanceTo(300 * time.Millisecond)
	require.True(t, tr.HintsVisible())

	assert.True(t, tr.KeyDown(metaK))
	assert.Equal(t, 1, calls)
	assert.True(t, tr.HintsVisible())
}

func TestTracker_FirstRegistrationWinsOnConflict(t *testing.T) {
	var diags []domain.Diagnostic
	tr, _ := newTestTracker(t, TrackerConfig{
		DiagnosticHandler: func(d domain.Diagnostic) { diags = append(diags, d) },
	})

	var fired []string
	require.NoError(t, tr.Register(domain.Registration{
		ID: "search", Shortcut: "Meta+K", Handler: func() { fired = append(fired, "search") },
	}))
	require.NoError(t, tr.Register(domain.Registration{
		ID: "nav", Shortcut: "Meta+K", Handler: func() { fired = append(fired, "nav") },
	}))

	require.Len(t, diags, 1)
	assert.Equal(t, domain.DiagnosticShortcutConflict, diags[0].Kind)
	assert.Equal(t, "nav", diags[0].ID)
	assert.Equal(t, "search", diags[0].OtherID)

	tr.KeyDown(metaK)
	assert.Equal(t, []string{"search"}, fired)
}

func TestTracker_ConflictOnEquivalentSpelling(t *testing.T) {
	var diags []domain.Diagnostic
	tr, _ := newTestTracker(t, TrackerConfig{
		DiagnosticHandler: func(d domain.Diagnostic) { diags = append(diags, d) },
	})

	require.NoError(t, tr.Register(domain.Registration{ID: "a", Shortcut: "Meta+Shift+K"}))
	require.NoError(t, tr.Register(domain.Registration{ID: "b", Shortcut: "shift+cmd+k"}))

	require.Len(t, diags, 1)
	assert.Equal(t, domain.DiagnosticShortcutConflict, diags[0].Kind)
}

func TestTracker_DuplicateIDKeepsSlot(t *testing.T) {
	var diags []domain.Diagnostic
	tr, _ := newTestTracker(t, TrackerConfig{
		DiagnosticHandler: func(d domain.Diagnostic) { diags = append(diags, d) },
	})

	var fired []string
	require.NoError(t, tr.Register(domain.Registration{
		ID: "first", Shortcut: "Meta+K", Handler: func() { fired = append(fired, "first-old") },
	}))
	require.NoError(t, tr.Register(domain.Registration{
		ID: "second", Shortcut: "Meta+J", Handler: func() { fired = append(fired, "second") },
	}))
	require.NoError(t, tr.Register(domain.Registration{
		ID: "first", Shortcut: "Meta+J", Handler: func() { fired = append(fired, "first-new") },
	}))

	kinds := make([]domain.DiagnosticKind, 0, len(diags))
	for _, d := range diags {
		kinds = append(kinds, d.Kind)
	}
	assert.Equal(t, []domain.DiagnosticKind{
		domain.DiagnosticDuplicateID,
		domain.DiagnosticShortcutConflict,
	}, kinds)

	// "first" keeps its position ahead of "second"
	regs := tr.Registrations()
	require.Len(t, regs, 2)
	assert.Equal(t, "first", regs[0].ID)
	assert.Equal(t, "Meta+J", regs[0].Shortcut)

	assert.False(t, tr.KeyDown(metaK))
	assert.True(t, tr.KeyDown(domain.KeyEvent{Key: "j", Meta: true}))
	assert.Equal(t, []string{"first-new"}, fired)
}

func TestTracker_UnregisterStopsMatching(t *testing.T) {
	tr, _ := newTestTracker(t, TrackerConfig{})

	require.NoError(t, tr.Register(domain.Registration{ID: "search", Shortcut: "Meta+K", Handler: func() {}}))
	tr.Unregister("search")
	tr.Unregister("unknown")

	assert.False(t, tr.KeyDown(metaK))
	assert.Empty(t, tr.Registrations())
	_, ok := tr.Registration("search")
	assert.False(t, ok)
}

func TestTracker_HandlerMayUnregisterItself(t *testing.T) {
	tr, _ := newTestTracker(t, TrackerConfig{})

	calls := 0
	require.NoError(t, tr.Register(domain.Registration{
		ID: "once", Shortcut: "Meta+K",
		Handler: func() {
			calls++
			tr.Unregister("once")
		},
	}))

	assert.True(t, tr.KeyDown(metaK))
	assert.False(t, tr.KeyDown(metaK))
	assert.Equal(t, 1, calls)
}

func TestTracker_RegisterValidation(t *testing.T) {
	tests := []struct {
		name       string
		permissive bool
		shortcut   string
		wantCode   domain.ValidationCode
		wantErr    bool
	}{
		{name: "valid", shortcut: "Meta+K"},
		{name: "modifier only rejected", shortcut: "Meta+Shift", wantErr: true, wantCode: domain.ValidationNoKey},
		{name: "two keys rejected", shortcut: "Meta+K+J", wantErr: true, wantCode: domain.ValidationMultipleKeys},
		{name: "empty rejected", shortcut: "", wantErr: true, wantCode: domain.ValidationEmptyInput},
		{name: "modifier only permissive", permissive: true, shortcut: "Meta+Shift"},
		{name: "two keys permissive", permissive: true, shortcut: "Meta+K+J"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, _ := newTestTracker(t, TrackerConfig{Permissive: tt.permissive})

			err := tr.Register(domain.Registration{ID: "x", Shortcut: tt.shortcut, Handler: func() {}})
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantCode, verr.Code)
			assert.Empty(t, tr.Registrations())
		})
	}
}

func TestTracker_PermissiveKeylessNeverMatches(t *testing.T) {
	tr, clk := newTestTracker(t, TrackerConfig{Permissive: true})

	called := false
	require.NoError(t, tr.Register(domain.Registration{
		ID: "mods", Shortcut: "Meta+Shift", Handler: func() { called = true },
	}))

	assert.False(t, tr.KeyDown(metaDown))
	assert.False(t, tr.KeyDown(domain.KeyEvent{Key: "Shift", Meta: true, Shift: true}))
	assert.False(t, called)

	// the trigger key still starts the reveal timer
	clk.AdvanceTo(300 * time.Millisecond)
	assert.True(t, tr.HintsVisible())
}

func TestTracker_PermissiveLastKeyWins(t *testing.T) {
	tr, _ := newTestTracker(t, TrackerConfig{Permissive: true})

	called := false
	require.NoError(t, tr.Register(domain.Registration{
		ID: "x", Shortcut: "Meta+K+J", Handler: func() { called = true },
	}))

	assert.False(t, tr.KeyDown(metaK))
	assert.True(t, tr.KeyDown(domain.KeyEvent{Key: "j", Meta: true}))
	assert.True(t, called)
}

func TestTracker_RegisterRequiresID(t *testing.T) {
	tr, _ := newTestTracker(t, TrackerConfig{})
	assert.ErrorIs(t, tr.Register(domain.Registration{Shortcut: "Meta+K"}), domain.ErrMissingID)
}

func TestTracker_OnHintsVisibleChange(t *testing.T) {
	tr, clk := newTestTracker(t, TrackerConfig{})

	var seen []bool
	unsubscribe := tr.OnHintsVisibleChange(func(v bool) { seen = append(seen, v) })

	tr.KeyDown(metaDown)
	clk.AdvanceTo(300 * time.Millisecond)
	tr.KeyUp(metaUp)
	// no change, no notification
	tr.Blur()

	assert.Equal(t, []bool{true, false}, seen)

	unsubscribe()
	tr.KeyDown(metaDown)
	clk.AdvanceTo(time.Second)
	assert.Equal(t, []bool{true, false}, seen)
}

func TestTracker_ResolveShortcut(t *testing.T) {
	tr, _ := newTestTracker(t, TrackerConfig{
		DefaultShortcuts: domain.ShortcutMap{"search": "Meta+K", "save": "Meta+S"},
		Overrides:        domain.ShortcutMap{"search": "Meta+J"},
	})

	s, ok := tr.ResolveShortcut("search")
	assert.True(t, ok)
	assert.Equal(t, "Meta+J", s)

	s, ok = tr.ResolveShortcut("save")
	assert.True(t, ok)
	assert.Equal(t, "Meta+S", s)

	_, ok = tr.ResolveShortcut("missing")
	assert.False(t, ok)

	tr.ResetShortcutOverride("search")
	s, _ = tr.ResolveShortcut("search")
	assert.Equal(t, "Meta+K", s)

	tr.UpdateShortcutOverride("save", "Control+S")
	s, _ = tr.ResolveShortcut("save")
	assert.Equal(t, "Control+S", s)

	tr.ResetAllOverrides()
	assert.Empty(t, tr.Overrides())
	s, _ = tr.ResolveShortcut("save")
	assert.Equal(t, "Meta+S", s)
}

func TestTracker_OverrideIsNotRetroactive(t *testing.T) {
	tr, _ := newTestTracker(t, TrackerConfig{
		DefaultShortcuts: domain.ShortcutMap{"search": "Meta+K"},
	})

	called := false
	require.NoError(t, tr.Register(domain.Registration{
		ID: "search", Shortcut: "Meta+K", Handler: func() { called = true },
	}))

	tr.UpdateShortcutOverride("search", "Meta+J")
	assert.False(t, tr.KeyDown(domain.KeyEvent{Key: "j", Meta: true}))
	assert.True(t, tr.KeyDown(metaK))
	assert.True(t, called)
}

func TestTracker_ListResolvedShortcuts(t *testing.T) {
	tr, _ := newTestTracker(t, TrackerConfig{
		DefaultShortcuts: domain.ShortcutMap{"search": "Meta+K", "unused": "Meta+U"},
		Overrides:        domain.ShortcutMap{"save": "Control+S"},
	})

	require.NoError(t, tr.Register(domain.Registration{ID: "search", Shortcut: "Meta+K"}))
	require.NoError(t, tr.Register(domain.Registration{ID: "save", Shortcut: "Meta+S"}))
	require.NoError(t, tr.Register(domain.Registration{ID: "adhoc", Shortcut: "Alt+N"}))

	assert.Equal(t, domain.ShortcutMap{
		"search": "Meta+K",
		"save":   "Control+S",
		"adhoc":  "Alt+N",
	}, tr.ListResolvedShortcuts())
}

func TestTracker_ReplaceDefaults(t *testing.T) {
	tr, _ := newTestTracker(t, TrackerConfig{
		DefaultShortcuts: domain.ShortcutMap{"search": "Meta+K"},
	})

	tr.ReplaceDefaults(domain.ShortcutMap{"search": "Meta+F"})
	s, ok := tr.ResolveShortcut("search")
	assert.True(t, ok)
	assert.Equal(t, "Meta+F", s)

	// returned maps are copies
	d := tr.Defaults()
	d["search"] = "Meta+X"
	s, _ = tr.ResolveShortcut("search")
	assert.Equal(t, "Meta+F", s)
}

func TestHoldState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "holding", StateHolding.String())
	assert.Equal(t, "revealed", StateRevealed.String())
	assert.Equal(t, "HoldState(7)", HoldState(7).String())
}

type fakeSource struct {
	listeners []ports.KeyListener
}

func (s *fakeSource) AddListener(l ports.KeyListener) func() {
	s.listeners = append(s.listeners, l)
	return func() {
		for i, o := range s.listeners {
			if o == l {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}
