package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/keebs/internal/config"
	"github.com/renato0307/keebs/internal/domain"
	portsmocks "github.com/renato0307/keebs/internal/ports/mocks"
	"github.com/renato0307/keebs/internal/ui"
)

func newTestCLI(t *testing.T, settings *config.Settings) (*CLI, *portsmocks.MockOverrideRepository, *bytes.Buffer) {
	t.Helper()
	if settings == nil {
		settings = &config.Settings{}
	}
	repo := portsmocks.NewMockOverrideRepository(t)
	out := &bytes.Buffer{}
	return &CLI{
		Container: NewContainerWithRepository(settings, repo),
		Stdout:    out,
		settings:  settings,
	}, repo, out
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseCmd(t *testing.T) {
	cli, _, out := newTestCLI(t, nil)

	require.NoError(t, (&ParseCmd{Shortcut: "cmd+shift+k"}).Run(cli))

	var got parseOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, domain.Shortcut{Meta: true, Shift: true, Key: "k"}, got.Parsed)
	assert.Equal(t, "Shift+Meta+K", got.Canonical)
	assert.True(t, got.Valid)
	assert.Empty(t, got.Error)
}

func TestParseCmd_ReportsInvalid(t *testing.T) {
	cli, _, out := newTestCLI(t, nil)

	require.NoError(t, (&ParseCmd{Shortcut: "Meta+Shift"}).Run(cli))

	var got parseOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.False(t, got.Valid)
	assert.NotEmpty(t, got.Error)
}

func TestFormatCmd(t *testing.T) {
	tests := []struct {
		name     string
		settings *config.Settings
		platform string
		expected string
	}{
		{name: "mac flag", platform: "mac", expected: "⇧⌘K\n"},
		{name: "other flag", platform: "other", expected: "Shift+Win+K\n"},
		{name: "settings platform", settings: &config.Settings{Platform: "mac"}, expected: "⇧⌘K\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, _, out := newTestCLI(t, tt.settings)
			require.NoError(t, (&FormatCmd{Shortcut: "Meta+Shift+K", Platform: tt.platform}).Run(cli))
			assert.Equal(t, tt.expected, out.String())
		})
	}
}

func TestFormatCmd_Invalid(t *testing.T) {
	cli, _, _ := newTestCLI(t, nil)
	assert.Error(t, (&FormatCmd{Shortcut: "Meta+K+J", Platform: "other"}).Run(cli))
	assert.ErrorIs(t, (&FormatCmd{Shortcut: "Meta+K", Platform: "amiga"}).Run(cli), domain.ErrInvalidSetting)
}

func TestValidateCmd(t *testing.T) {
	cli, _, out := newTestCLI(t, nil)

	require.NoError(t, (&ValidateCmd{Shortcuts: []string{"Meta+K", "Option+Space"}}).Run(cli))
	assert.Contains(t, out.String(), "ok")

	out.Reset()
	err := (&ValidateCmd{Shortcuts: []string{"Meta+K", "Meta+Shift", ""}}).Run(cli)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 invalid")
	assert.Contains(t, out.String(), "invalid")
}

func TestValidateCmd_File(t *testing.T) {
	cli, _, out := newTestCLI(t, nil)

	good := writeFile(t, "keymap.toml", "[shortcuts]\nsearch = \"Meta+K\"\nfind = \"Cmd+K\"\n")
	require.NoError(t, (&ValidateCmd{File: good}).Run(cli))
	assert.Contains(t, out.String(), "2 shortcuts")
	assert.Contains(t, out.String(), "warning")

	bad := writeFile(t, "keymap.yaml", "shortcuts:\n  search: Meta+\n")
	assert.Error(t, (&ValidateCmd{File: bad}).Run(cli))
}

func TestValidateCmd_NothingToValidate(t *testing.T) {
	cli, _, _ := newTestCLI(t, nil)
	assert.Error(t, (&ValidateCmd{}).Run(cli))
}

func TestKeysListCmd(t *testing.T) {
	cli, repo, out := newTestCLI(t, &config.Settings{
		Platform:  "other",
		Shortcuts: domain.ShortcutMap{"reload": "Control+R"},
	})
	repo.EXPECT().List(mock.Anything).Return(domain.ShortcutMap{"search": "Meta+J"}, nil)

	require.NoError(t, (&KeysListCmd{Format: "json"}).Run(cli))

	var entries map[string]keyEntry
	require.NoError(t, json.Unmarshal(out.Bytes(), &entries))
	assert.Equal(t, keyEntry{Default: "Control+K", Override: "Meta+J", Display: "Win+J"}, entries["search"])
	assert.Equal(t, keyEntry{Default: "Control+R", Display: "Ctrl+R"}, entries["reload"])
}

func TestKeysListCmd_Table(t *testing.T) {
	cli, repo, out := newTestCLI(t, nil)
	repo.EXPECT().List(mock.Anything).Return(domain.ShortcutMap{}, nil)

	require.NoError(t, (&KeysListCmd{Format: "table"}).Run(cli))
	assert.Contains(t, out.String(), "command_palette")
	assert.Contains(t, out.String(), "keebs keys set")
}

func TestKeysSetCmd(t *testing.T) {
	cli, repo, out := newTestCLI(t, nil)
	repo.EXPECT().List(mock.Anything).Return(domain.ShortcutMap{}, nil)
	repo.EXPECT().Set(mock.Anything, "search", "Alt+F").Return(nil)

	require.NoError(t, (&KeysSetCmd{ID: "search", Shortcut: "Alt+F"}).Run(cli))
	assert.Contains(t, out.String(), "search is now Alt+F")
}

func TestKeysSetCmd_UnknownID(t *testing.T) {
	cli, repo, _ := newTestCLI(t, nil)
	repo.EXPECT().List(mock.Anything).Return(domain.ShortcutMap{}, nil)

	err := (&KeysSetCmd{ID: "nope", Shortcut: "Alt+F"}).Run(cli)
	assert.ErrorIs(t, err, domain.ErrUnknownShortcutID)
}

func TestKeysSetCmd_ForceAndInvalid(t *testing.T) {
	cli, repo, _ := newTestCLI(t, nil)
	repo.EXPECT().List(mock.Anything).Return(domain.ShortcutMap{}, nil)

	err := (&KeysSetCmd{ID: "nope", Shortcut: "Alt+", Force: true}).Run(cli)
	require.Error(t, err)
	repo.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestKeysResetCmd(t *testing.T) {
	cli, repo, out := newTestCLI(t, nil)
	repo.EXPECT().Delete(mock.Anything, "search").Return(nil)
	repo.EXPECT().Delete(mock.Anything, "save").Return(domain.ErrOverrideNotFound)
	repo.EXPECT().DeleteAll(mock.Anything).Return(nil)

	require.NoError(t, (&KeysResetCmd{ID: "search"}).Run(cli))
	assert.Contains(t, out.String(), "restored")

	err := (&KeysResetCmd{ID: "save"}).Run(cli)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no override")

	require.NoError(t, (&KeysResetCmd{All: true}).Run(cli))
	assert.Contains(t, out.String(), "All shortcut overrides removed")
}

func TestKeysResetCmd_NeedsExactlyOneTarget(t *testing.T) {
	cli, _, _ := newTestCLI(t, nil)
	assert.Error(t, (&KeysResetCmd{}).Run(cli))
	assert.Error(t, (&KeysResetCmd{ID: "search", All: true}).Run(cli))
}

func TestSimulateCmd(t *testing.T) {
	cli, _, out := newTestCLI(t, nil)
	script := writeFile(t, "hold.keys", "# hold Meta, then use a shortcut\n0 down Meta\n350 up Meta\n400 down Meta+K\n")

	cmd := &SimulateCmd{
		Script:      script,
		Bind:        map[string]string{"search": "Meta+K"},
		Tail:        time.Second,
		NoOverrides: true,
	}
	require.NoError(t, cmd.Run(cli))

	got := out.String()
	assert.Contains(t, got, "300ms  hints  visible")
	assert.Contains(t, got, "350ms  hints  hidden")
	assert.Contains(t, got, "400ms  fired  search")
}

func TestSimulateCmd_BadScript(t *testing.T) {
	cli, _, _ := newTestCLI(t, nil)
	script := writeFile(t, "bad.keys", "0 hover Meta\n")

	err := (&SimulateCmd{Script: script, NoOverrides: true}).Run(cli)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestSimulateCmd_InvalidBind(t *testing.T) {
	cli, _, _ := newTestCLI(t, nil)
	script := writeFile(t, "ok.keys", "0 down Meta\n")

	err := (&SimulateCmd{Script: script, Bind: map[string]string{"x": "Meta+"}, NoOverrides: true}).Run(cli)
	assert.Error(t, err)
}

func TestContainer_TrackerConfig(t *testing.T) {
	delay := 150
	keymap := writeFile(t, "keymap.yaml", "shortcuts:\n  search: Meta+J\n  palette: Control+Shift+P\n")
	cli, repo, _ := newTestCLI(t, &config.Settings{
		DelayMs:     &delay,
		KeymapFile:  keymap,
		Shortcuts:   domain.ShortcutMap{"search": "Meta+K", "save": "Control+S"},
		Theme:       "dark",
		TriggerKeys: config.StringArray{"Alt"},
	})
	repo.EXPECT().List(mock.Anything).Return(domain.ShortcutMap{"save": "Meta+S"}, nil)

	cfg, err := cli.Container.TrackerConfig(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, []domain.Modifier{domain.ModifierAlt}, cfg.TriggerKeys)
	assert.Equal(t, 150*time.Millisecond, cfg.Delay)
	assert.Equal(t, domain.ThemeDark, cfg.Theme)
	assert.Equal(t, domain.ShortcutMap{
		"search":  "Meta+J",
		"save":    "Control+S",
		"palette": "Control+Shift+P",
	}, cfg.DefaultShortcuts)
	assert.Equal(t, domain.ShortcutMap{"save": "Meta+S"}, cfg.Overrides)
}

func TestContainer_TrackerConfigRejectsInvalidSettings(t *testing.T) {
	cli, _, _ := newTestCLI(t, &config.Settings{Theme: "neon"})

	_, err := cli.Container.TrackerConfig(context.Background(), false)
	assert.ErrorIs(t, err, domain.ErrInvalidSetting)
}

func TestSettingsValidateCmd(t *testing.T) {
	cli, _, out := newTestCLI(t, &config.Settings{
		Shortcuts: domain.ShortcutMap{"search": "Meta+K", "find": "Cmd+K"},
	})

	require.NoError(t, (&SettingsValidateCmd{}).Run(cli))
	assert.Contains(t, out.String(), "2 default shortcuts")
	assert.Contains(t, out.String(), "find, search")
}

func TestSettingsMetaCmd_JSON(t *testing.T) {
	cli, _, out := newTestCLI(t, nil)

	require.NoError(t, (&SettingsMetaCmd{Format: "json"}).Run(cli))

	var got map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Contains(t, got, "settings_file")
	assert.Contains(t, got["format"], "trigger_keys")
}

func TestKeysListCmd_RejectsInvalidSettings(t *testing.T) {
	cli, _, _ := newTestCLI(t, &config.Settings{Theme: "neon"})

	err := (&KeysListCmd{Format: "json"}).Run(cli)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid settings.json")
}

func TestResolvedShortcuts(t *testing.T) {
	cli, repo, _ := newTestCLI(t, &config.Settings{Shortcuts: domain.ShortcutMap{"reload": "Control+R"}})
	repo.EXPECT().List(mock.Anything).Return(domain.ShortcutMap{"search": "Meta+J", "extra": "Alt+X"}, nil)

	var got domain.ShortcutMap
	require.NoError(t, withShortcutTracker(cli, func(ctx context.Context) error {
		got = resolvedShortcuts(ctx)
		return nil
	}))

	assert.Equal(t, "Meta+J", got["search"])
	assert.Equal(t, "Control+R", got["reload"])
	assert.Equal(t, "Alt+X", got["extra"])
	assert.Equal(t, ui.DefaultDemoShortcuts["save"], got["save"])
}

func TestResolvedShortcuts_RequiresTracker(t *testing.T) {
	assert.PanicsWithError(t, domain.ErrNoTracker.Error(), func() {
		resolvedShortcuts(context.Background())
	})
}

func TestDemoConfig_PassesOverrideStore(t *testing.T) {
	cli, repo, _ := newTestCLI(t, nil)

	cfg, err := demoConfig(context.Background(), cli, "tab", 0, "text", false)
	require.NoError(t, err)
	assert.Equal(t, repo, cfg.Overrides)
	assert.Empty(t, cfg.Tracker.Overrides)
	assert.Equal(t, ui.HintText, cfg.Variant)
}

func TestSettingsSetCmd(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("KEEBS_HOME", dir)
	cli, _, out := newTestCLI(t, nil)

	require.NoError(t, (&SettingsSetCmd{Field: "delay_ms", Value: "450"}).Run(cli))
	require.NoError(t, (&SettingsSetCmd{Field: "shortcuts.search", Value: "Alt+K"}).Run(cli))
	assert.Contains(t, out.String(), "delay_ms set to 450")

	saved, err := config.LoadSettingsFrom(filepath.Join(dir, "settings.json"))
	require.NoError(t, err)
	assert.Equal(t, 450*time.Millisecond, saved.GetDelay())
	assert.Equal(t, domain.ShortcutMap{"search": "Alt+K"}, saved.Shortcuts)

	require.NoError(t, (&SettingsSetCmd{Field: "delay_ms"}).Run(cli))
	assert.Contains(t, out.String(), "delay_ms cleared")

	saved, err = config.LoadSettingsFrom(filepath.Join(dir, "settings.json"))
	require.NoError(t, err)
	assert.Nil(t, saved.DelayMs)
}

func TestSettingsSetCmd_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("KEEBS_HOME", dir)
	cli, _, _ := newTestCLI(t, nil)

	err := (&SettingsSetCmd{Field: "trigger_keys", Value: "Hyper"}).Run(cli)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to save")
	assert.NoFileExists(t, filepath.Join(dir, "settings.json"))

	err = (&SettingsSetCmd{Field: "colour", Value: "red"}).Run(cli)
	assert.ErrorIs(t, err, domain.ErrInvalidSetting)
}
