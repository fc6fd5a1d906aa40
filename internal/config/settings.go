package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/renato0307/keebs/internal/domain"
	"github.com/renato0307/keebs/internal/paths"
)

// Settings represents the structure of ~/.keebs/settings.json
type Settings struct {
	Debug       *bool              `json:"debug,omitempty"`
	DelayMs     *int               `json:"delay_ms,omitempty"`
	Disabled    *bool              `json:"disabled,omitempty"`
	KeymapFile  string             `json:"keymap_file,omitempty"`
	MaxLogFiles *int               `json:"max_log_files,omitempty"`
	Permissive  *bool              `json:"permissive,omitempty"`
	Platform    string             `json:"platform,omitempty"`
	Shortcuts   domain.ShortcutMap `json:"shortcuts,omitempty"`
	Theme       string             `json:"theme,omitempty"`
	TriggerKeys StringArray        `json:"trigger_keys,omitempty"`
}

// StringArray supports both JSON arrays and comma-separated strings
type StringArray []string

// UnmarshalJSON implements custom unmarshaling for StringArray
func (sa *StringArray) UnmarshalJSON(data []byte) error {
	// Try array format first
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*sa = arr
		return nil
	}

	// Fall back to comma-separated string
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*sa = ParseCommaSeparated(str)
	return nil
}

// ParseCommaSeparated splits comma-separated string and trims whitespace
func ParseCommaSeparated(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// Validate checks every field that has a constrained value
func (s *Settings) Validate() error {
	var errs []error

	if _, err := domain.ParseModifiers(s.TriggerKeys); err != nil {
		errs = append(errs, fmt.Errorf("trigger_keys: %w", err))
	}
	if s.DelayMs != nil && *s.DelayMs < 0 {
		errs = append(errs, fmt.Errorf("delay_ms: %w: must not be negative, got %d", domain.ErrInvalidSetting, *s.DelayMs))
	}
	if s.MaxLogFiles != nil && *s.MaxLogFiles < 0 {
		errs = append(errs, fmt.Errorf("max_log_files: %w: must not be negative, got %d", domain.ErrInvalidSetting, *s.MaxLogFiles))
	}
	if _, err := domain.ParseTheme(s.Theme); err != nil {
		errs = append(errs, fmt.Errorf("theme: %w", err))
	}
	if _, err := domain.ParsePlatform(s.Platform); err != nil {
		errs = append(errs, fmt.Errorf("platform: %w", err))
	}
	if err := s.Shortcuts.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("shortcuts: %w", err))
	}

	return errors.Join(errs...)
}

// GetTriggerKeys returns the configured trigger modifiers, nil meaning the default
func (s *Settings) GetTriggerKeys() ([]domain.Modifier, error) {
	if len(s.TriggerKeys) == 0 {
		return nil, nil
	}
	return domain.ParseModifiers(s.TriggerKeys)
}

// GetDelay returns the reveal delay, zero meaning the default
func (s *Settings) GetDelay() time.Duration {
	if s.DelayMs == nil {
		return 0
	}
	return time.Duration(*s.DelayMs) * time.Millisecond
}

// GetTheme returns the configured theme
func (s *Settings) GetTheme() domain.Theme {
	theme, err := domain.ParseTheme(s.Theme)
	if err != nil {
		return domain.ThemeAuto
	}
	return theme
}

// GetPlatform returns the configured display platform
func (s *Settings) GetPlatform() domain.Platform {
	platform, err := domain.ParsePlatform(s.Platform)
	if err != nil {
		return domain.PlatformAuto
	}
	return platform
}

// GetKeymapFile returns the keymap file path with ~ expanded
func (s *Settings) GetKeymapFile() string {
	return paths.ExpandPath(s.KeymapFile)
}

// IsDisabled reports whether shortcuts start disabled
func (s *Settings) IsDisabled() bool {
	return s.Disabled != nil && *s.Disabled
}

// IsPermissive reports whether malformed shortcut strings are accepted
func (s *Settings) IsPermissive() bool {
	return s.Permissive != nil && *s.Permissive
}

// LoadSettings loads settings from $KEEBS_HOME/settings.json (or ~/.keebs/settings.json if not set)
// Returns empty Settings if file doesn't exist (not an error)
func LoadSettings() (*Settings, error) {
	return LoadSettingsFrom(paths.GetSettingsPath())
}

// LoadSettingsFrom loads settings from path
func LoadSettingsFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil // Not an error, use defaults
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	return &settings, nil
}

// SaveSettings saves settings to $KEEBS_HOME/settings.json
func SaveSettings(settings *Settings) error {
	return SaveSettingsTo(paths.GetSettingsPath(), settings)
}

// SaveSettingsTo writes settings to path while holding an exclusive lock on it
func SaveSettingsTo(path string, settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open settings file: %w", err)
	}
	defer file.Close()

	if err := lockFile(file); err != nil {
		return fmt.Errorf("failed to lock settings file: %w", err)
	}
	defer unlockFile(file)

	if err := file.Truncate(0); err != nil {
		return fmt.Errorf("failed to truncate settings file: %w", err)
	}
	if _, err := file.WriteAt(data, 0); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}
