package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/renato0307/keebs/internal/config"
	"github.com/renato0307/keebs/internal/logging"
)

// SettingsCmd manages settings
type SettingsCmd struct {
	Meta     SettingsMetaCmd     `cmd:"meta" help:"Show settings file location and available options" default:"1"`
	Set      SettingsSetCmd      `cmd:"set" help:"Set a field in settings.json (empty value clears it)"`
	Validate SettingsValidateCmd `cmd:"validate" help:"Check settings.json and the keymap file"`
}

// SettingsMetaCmd displays settings metadata
type SettingsMetaCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// SettingsSetCmd writes one field of settings.json
type SettingsSetCmd struct {
	Field string `arg:"" help:"Field name (e.g. trigger_keys, delay_ms, theme, shortcuts.search)"`
	Value string `arg:"" optional:"" help:"New value; omit to clear the field"`
}

// SettingsValidateCmd checks the loaded settings
type SettingsValidateCmd struct{}

// Run executes the meta command
func (s *SettingsMetaCmd) Run(cli *CLI) error {
	settingsFile := config.GetSettingsFilePath()
	example := config.GetSettingsExample()

	if s.Format == "json" {
		output := map[string]any{
			"settings_file": settingsFile,
			"format":        example,
		}
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(cli.out(), string(data))
		return nil
	}

	fmt.Fprintf(cli.out(), "Settings file: %s\n\n", settingsFile)
	fmt.Fprintln(cli.out(), "Example settings.json:")
	fmt.Fprintln(cli.out())

	keys := make([]string, 0, len(example))
	for key := range example {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(cli.out(), 0, 0, 2, ' ', 0)
	for _, key := range keys {
		var valueStr string
		switch v := example[key].(type) {
		case []string, map[string]string:
			data, _ := json.Marshal(v)
			valueStr = string(data)
		default:
			valueStr = fmt.Sprintf("%v", v)
		}
		fmt.Fprintf(w, "%s\t%s\n", key, valueStr)
	}
	w.Flush()

	fmt.Fprintln(cli.out())
	fmt.Fprintln(cli.out(), "Edit this file, or use 'keebs settings set <field> <value>'.")
	fmt.Fprintln(cli.out(), "All settings are optional and have sensible defaults.")
	return nil
}

// Run executes the set command
func (s *SettingsSetCmd) Run(cli *CLI) error {
	logging.Logger.Debug("Setting settings field", "field", s.Field, "value", s.Value)

	// Load from disk so flags and environment overrides are not persisted
	path := config.GetSettingsFilePath()
	settings, err := config.LoadSettingsFrom(path)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if err := settings.SetField(s.Field, s.Value); err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("refusing to save: %w", err)
	}

	if err := config.SaveSettingsTo(path, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	if s.Value == "" {
		fmt.Fprintf(cli.out(), "✓ %s cleared in %s\n", s.Field, path)
	} else {
		fmt.Fprintf(cli.out(), "✓ %s set to %s in %s\n", s.Field, s.Value, path)
	}
	return nil
}

// Run executes the validate command
func (s *SettingsValidateCmd) Run(cli *CLI) error {
	settings := cli.Container.Settings
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings.json: %w", err)
	}

	defaults, err := cli.Container.DefaultShortcuts()
	if err != nil {
		return err
	}

	fmt.Fprintf(cli.out(), "✓ %s is valid (%d default shortcuts)\n", config.GetSettingsFilePath(), len(defaults))
	for _, c := range defaults.Conflicts() {
		fmt.Fprintf(cli.out(), "warning: %s is shared by %s\n", c.Shortcut, strings.Join(c.IDs, ", "))
	}
	return nil
}
