package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/renato0307/keebs/internal/domain"
)

// shortcutFieldPrefix addresses one entry of the shortcuts table, e.g. "shortcuts.search"
const shortcutFieldPrefix = "shortcuts."

// settableFields lists the fields accepted by SetField besides shortcuts.<id>
var settableFields = []string{
	"debug",
	"delay_ms",
	"disabled",
	"keymap_file",
	"max_log_files",
	"permissive",
	"platform",
	"theme",
	"trigger_keys",
}

// SettableFields returns the field names SetField accepts
func SettableFields() []string {
	fields := append([]string{shortcutFieldPrefix + "<id>"}, settableFields...)
	sort.Strings(fields)
	return fields
}

// SetField sets a field by its JSON name. An empty value clears the field.
// The result is not validated; call Validate before saving.
func (s *Settings) SetField(name, value string) error {
	value = strings.TrimSpace(value)

	if id, ok := strings.CutPrefix(name, shortcutFieldPrefix); ok {
		if id == "" {
			return fmt.Errorf("%w: missing shortcut id in '%s'", domain.ErrInvalidSetting, name)
		}
		if value == "" {
			delete(s.Shortcuts, id)
			return nil
		}
		if s.Shortcuts == nil {
			s.Shortcuts = make(domain.ShortcutMap)
		}
		s.Shortcuts[id] = value
		return nil
	}

	var err error
	switch name {
	case "debug":
		s.Debug, err = parseBoolField(name, value)
	case "delay_ms":
		s.DelayMs, err = parseIntField(name, value)
	case "disabled":
		s.Disabled, err = parseBoolField(name, value)
	case "keymap_file":
		s.KeymapFile = value
	case "max_log_files":
		s.MaxLogFiles, err = parseIntField(name, value)
	case "permissive":
		s.Permissive, err = parseBoolField(name, value)
	case "platform":
		s.Platform = value
	case "theme":
		s.Theme = value
	case "trigger_keys":
		s.TriggerKeys = ParseCommaSeparated(value)
	default:
		return fmt.Errorf("%w: unknown field '%s'. Valid fields: %s",
			domain.ErrInvalidSetting, name, strings.Join(SettableFields(), ", "))
	}
	return err
}

func parseBoolField(name, value string) (*bool, error) {
	if value == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be true or false, got %q", domain.ErrInvalidSetting, name, value)
	}
	return &b, nil
}

func parseIntField(name, value string) (*int, error) {
	if value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number, got %q", domain.ErrInvalidSetting, name, value)
	}
	return &n, nil
}
