// Package keymap loads default shortcut mappings from JSON, TOML or YAML files
package keymap

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/renato0307/keebs/internal/domain"
)

// File is the on-disk keymap document:
//
//	[shortcuts]
//	search = "Meta+K"
//	"editor.save" = "Control+S"
type File struct {
	Shortcuts map[string]string `json:"shortcuts" toml:"shortcuts" yaml:"shortcuts"`
}

// Load reads a keymap file, choosing the decoder by extension, and validates
// every shortcut in it
func Load(path string) (domain.ShortcutMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keymap: %w", err)
	}

	m, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("keymap %s: %w", path, err)
	}
	return m, nil
}

// Decode parses keymap data in the format named by ext (".json", ".toml",
// ".yaml", ".yml"). Any other ext tries each format in turn.
func Decode(data []byte, ext string) (domain.ShortcutMap, error) {
	var f File

	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	default:
		if err := autoDetect(data, &f); err != nil {
			return nil, err
		}
	}

	m := domain.ShortcutMap(f.Shortcuts).Clone()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func autoDetect(data []byte, f *File) error {
	if _, err := toml.Decode(string(data), f); err == nil {
		return nil
	}
	*f = File{}
	if err := json.Unmarshal(data, f); err == nil {
		return nil
	}
	*f = File{}
	if err := yaml.Unmarshal(data, f); err == nil {
		return nil
	}
	return fmt.Errorf("%w: keymap is not valid TOML, JSON or YAML", domain.ErrInvalidSetting)
}

// Encode renders m in the format named by ext. Unknown extensions encode as TOML.
func Encode(m domain.ShortcutMap, ext string) ([]byte, error) {
	f := File{Shortcuts: m.Clone()}

	switch strings.ToLower(ext) {
	case ".json":
		return json.MarshalIndent(f, "", "  ")
	case ".yaml", ".yml":
		return yaml.Marshal(f)
	}

	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(f); err != nil {
		return nil, fmt.Errorf("encode TOML: %w", err)
	}
	return []byte(sb.String()), nil
}
