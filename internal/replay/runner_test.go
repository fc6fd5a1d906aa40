package replay

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/keebs/internal/domain"
	"github.com/renato0307/keebs/internal/services"
)

func run(t *testing.T, cfg services.TrackerConfig, binds map[string]string, script string) []Entry {
	t.Helper()
	r, err := NewRunner(cfg)
	require.NoError(t, err)
	t.Cleanup(r.Close)

	for _, id := range domain.ShortcutMap(binds).IDs() {
		require.NoError(t, r.Bind(id, binds[id]))
	}

	steps, err := Parse(strings.NewReader(script))
	require.NoError(t, err)
	return r.Run(steps, time.Second)
}

func hintEntries(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Kind == EntryHints {
			out = append(out, e)
		}
	}
	return out
}

func TestRunner_RevealAndRelease(t *testing.T) {
	entries := run(t, services.TrackerConfig{}, nil, "0 down Meta\n350 up Meta")

	assert.Equal(t, []Entry{
		{At: 300 * time.Millisecond, Kind: EntryHints, Detail: "visible"},
		{At: 350 * time.Millisecond, Kind: EntryHints, Detail: "hidden"},
	}, hintEntries(entries))
}

func TestRunner_ReleaseBeforeDelay(t *testing.T) {
	entries := run(t, services.TrackerConfig{}, nil, "0 down Control\n299 up Control")
	assert.Empty(t, hintEntries(entries))
}

func TestRunner_BlurHides(t *testing.T) {
	entries := run(t, services.TrackerConfig{}, nil, "0 down Meta\n500 blur")

	assert.Equal(t, []Entry{
		{At: 300 * time.Millisecond, Kind: EntryHints, Detail: "visible"},
		{At: 500 * time.Millisecond, Kind: EntryHints, Detail: "hidden"},
	}, hintEntries(entries))
}

func TestRunner_DisableMidHold(t *testing.T) {
	entries := run(t, services.TrackerConfig{}, nil, "0 down Meta\n100 disable")
	assert.Empty(t, hintEntries(entries))
}

func TestRunner_ConflictFirstWins(t *testing.T) {
	r, err := NewRunner(services.TrackerConfig{})
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.Bind("search", "Meta+K"))
	require.NoError(t, r.Bind("nav", "Meta+K"))

	steps, err := Parse(strings.NewReader("0 down Meta+K"))
	require.NoError(t, err)
	entries := r.Run(steps, 0)

	require.Len(t, entries, 3)
	assert.Equal(t, EntryDiagnostic, entries[0].Kind)
	assert.Contains(t, entries[0].Detail, "shortcut conflict")
	assert.Equal(t, Entry{Kind: EntryKey, Detail: "down Meta+K"}, entries[1])
	assert.Equal(t, Entry{Kind: EntryFired, Detail: "search"}, entries[2])
}

func TestRunner_OptionSpace(t *testing.T) {
	entries := run(t, services.TrackerConfig{}, map[string]string{"palette": "Option+Space"}, "0 down Alt+Space")

	require.NotEmpty(t, entries)
	assert.Equal(t, Entry{Kind: EntryFired, Detail: "palette"}, entries[len(entries)-1])
}

func TestRunner_BindDefaults(t *testing.T) {
	r, err := NewRunner(services.TrackerConfig{
		DefaultShortcuts: domain.ShortcutMap{"search": "Meta+K"},
		Overrides:        domain.ShortcutMap{"search": "Meta+J", "save": "Control+S"},
	})
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.BindDefaults())
	assert.Len(t, r.Tracker().Registrations(), 2)

	steps, err := Parse(strings.NewReader("0 down Meta+K\n10 down Meta+J\n20 down Control+S"))
	require.NoError(t, err)
	entries := r.Run(steps, 0)

	var fired []string
	for _, e := range entries {
		if e.Kind == EntryFired {
			fired = append(fired, e.Detail)
		}
	}
	assert.Equal(t, []string{"search", "save"}, fired)
}

func TestRunner_DiagnosticHandlerChained(t *testing.T) {
	var got []domain.Diagnostic
	r, err := NewRunner(services.TrackerConfig{
		DiagnosticHandler: func(d domain.Diagnostic) { got = append(got, d) },
	})
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.Bind("a", "Meta+K"))
	require.NoError(t, r.Bind("a", "Meta+J"))

	require.Len(t, got, 1)
	assert.Equal(t, domain.DiagnosticDuplicateID, got[0].Kind)
}

func TestWriteTimeline(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTimeline(&buf, []Entry{
		{At: 300 * time.Millisecond, Kind: EntryHints, Detail: "visible"},
	}))
	assert.Equal(t, "300ms  hints  visible\n", buf.String())
}
