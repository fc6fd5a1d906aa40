package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/renato0307/keebs/internal/cmd"
	"github.com/renato0307/keebs/internal/config"
	"github.com/renato0307/keebs/internal/version"
)

func main() {
	// Load settings from ~/.keebs/settings.json
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load settings: %v\n", err)
		settings = &config.Settings{}
	}

	// Container is created in CLI.AfterApply() after logging is initialized
	var cli cmd.CLI
	cli.SetSettings(settings)
	ctx := kong.Parse(&cli,
		kong.Name("keebs"),
		kong.Description(version.Tagline),
		kong.Vars{
			"version": version.Info(),
		},
		kong.UsageOnError(),
		kong.Bind(&cli),
	)

	err = ctx.Run()
	cli.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
