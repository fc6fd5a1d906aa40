package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetKeebsHome_Env(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvHome, dir)

	assert.Equal(t, dir, GetKeebsHome())
	assert.Equal(t, filepath.Join(dir, "settings.json"), GetSettingsPath())
	assert.Equal(t, filepath.Join(dir, "overrides.db"), GetDBPath())
	assert.Equal(t, filepath.Join(dir, "ssh"), GetSSHDir())
}

func TestGetKeebsHome_Default(t *testing.T) {
	t.Setenv(EnvHome, "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	assert.Equal(t, filepath.Join(home, ".keebs"), GetKeebsHome())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "keymap.toml"), ExpandPath("~/keymap.toml"))
	assert.Equal(t, "/etc/keebs", ExpandPath("/etc/keebs"))
	assert.Equal(t, "", ExpandPath(""))
}
