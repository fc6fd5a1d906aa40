package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/renato0307/keebs/internal/config"
	"github.com/renato0307/keebs/internal/logging"
	"github.com/renato0307/keebs/internal/paths"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`

	Demo     DemoCmd     `cmd:"" help:"Run the interactive shortcut demo (default)" default:"1"`
	Format   FormatCmd   `cmd:"format" help:"Format a shortcut for display"`
	Keys     KeysCmd     `cmd:"keys" help:"Manage shortcut overrides (list, set, reset, edit)"`
	Parse    ParseCmd    `cmd:"parse" help:"Parse a shortcut into its structured form"`
	Serve    ServeCmd    `cmd:"serve" help:"Serve the demo over SSH"`
	Settings SettingsCmd `cmd:"settings" help:"Show and check settings (meta, validate)"`
	Simulate SimulateCmd `cmd:"simulate" help:"Replay a key event script on virtual time"`
	Validate ValidateCmd `cmd:"validate" help:"Validate shortcut strings or a keymap file"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	Stdout    io.Writer        `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// out returns where commands print their results
func (c *CLI) out() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	// Precedence: CLI flags > env vars > settings.json > defaults.
	// A setting only applies when the flag is at its default and the env var is unset.
	if c.settings == nil {
		c.settings = &config.Settings{}
	}

	if c.MaxLogFiles == logging.DefaultMaxLogFiles {
		if _, hasEnv := os.LookupEnv(logging.EnvMaxLogFiles); !hasEnv && c.settings.MaxLogFiles != nil {
			c.MaxLogFiles = *c.settings.MaxLogFiles
		}
	}
	if !c.Debug {
		if _, hasEnv := os.LookupEnv(logging.EnvDebug); !hasEnv && c.settings.Debug != nil && *c.settings.Debug {
			c.Debug = true
		}
	}

	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}

	// Exported after initialization so SSH sessions and child processes share the same log file
	if c.Debug || c.DebugFile != "" {
		os.Setenv(logging.EnvDebug, "1")
		if logFilePath != "" {
			os.Setenv(logging.EnvDebugFile, logFilePath)
		}
	}
	if c.MaxLogFiles != logging.DefaultMaxLogFiles {
		os.Setenv(logging.EnvMaxLogFiles, fmt.Sprintf("%d", c.MaxLogFiles))
	}

	// Created after logging so GORM's logger never sees a half-initialized logger
	c.Container = NewContainer(c.settings, paths.GetDBPath())
	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}
