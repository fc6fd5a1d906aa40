package config

import (
	"reflect"
	"strings"

	"github.com/renato0307/keebs/internal/paths"
)

// GetSettingsFilePath returns the path to the settings file
func GetSettingsFilePath() string {
	return paths.GetSettingsPath()
}

// GetSettingsExample uses reflection to generate example settings
// This automatically stays in sync when new fields are added to Settings
func GetSettingsExample() map[string]any {
	var s Settings
	t := reflect.TypeOf(s)
	example := make(map[string]any)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		jsonTag := field.Tag.Get("json")
		if jsonTag == "" {
			continue
		}

		jsonName := strings.Split(jsonTag, ",")[0]
		example[jsonName] = generateExampleValue(field.Type, jsonName)
	}

	return example
}

// generateExampleValue creates appropriate example values based on type and field name
func generateExampleValue(t reflect.Type, fieldName string) any {
	if t.Kind() == reflect.Ptr {
		switch t.Elem().Kind() {
		case reflect.Bool:
			return false
		case reflect.Int:
			switch fieldName {
			case "delay_ms":
				return 300
			case "max_log_files":
				return 1000
			}
			return 10
		}
	}

	switch t.Kind() {
	case reflect.String:
		switch fieldName {
		case "keymap_file":
			return "~/.keebs/keymap.toml"
		case "platform":
			return "auto"
		case "theme":
			return "dark"
		default:
			return "example"
		}
	case reflect.Map:
		return map[string]string{
			"search":      "Meta+K",
			"editor.save": "Control+S",
		}
	case reflect.Slice:
		if fieldName == "trigger_keys" {
			return []string{"Meta", "Control"}
		}
		return []string{"example1", "example2"}
	}

	return nil
}
