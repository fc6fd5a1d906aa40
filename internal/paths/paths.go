package paths

import (
	"os"
	"path/filepath"
)

// EnvHome overrides the keebs home directory
const EnvHome = "KEEBS_HOME"

// GetKeebsHome returns KEEBS_HOME or ~/.keebs default
func GetKeebsHome() string {
	keebsHome := os.Getenv(EnvHome)
	if keebsHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".keebs"
		}
		return filepath.Join(homeDir, ".keebs")
	}
	return ExpandPath(keebsHome)
}

// GetDBPath returns $KEEBS_HOME/overrides.db
func GetDBPath() string {
	return filepath.Join(GetKeebsHome(), "overrides.db")
}

// GetSettingsPath returns $KEEBS_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetKeebsHome(), "settings.json")
}

// GetSSHDir returns $KEEBS_HOME/ssh, where the server host key lives
func GetSSHDir() string {
	return filepath.Join(GetKeebsHome(), "ssh")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
