package cmd

import (
	"fmt"
	"runtime"

	"github.com/renato0307/keebs/internal/domain"
)

// FormatCmd prints a shortcut the way hints display it
type FormatCmd struct {
	Shortcut string `arg:"" help:"Shortcut string (e.g. Meta+K)"`
	Platform string `help:"Display style: auto, mac or other (default: settings platform)"`
}

// Run executes the format command
func (f *FormatCmd) Run(cli *CLI) error {
	platform := cli.Container.Settings.GetPlatform()
	if f.Platform != "" {
		p, err := domain.ParsePlatform(f.Platform)
		if err != nil {
			return err
		}
		platform = p
	}

	shortcut, err := domain.ParseValidShortcut(f.Shortcut)
	if err != nil {
		return err
	}

	fmt.Fprintln(cli.out(), domain.FormatShortcut(shortcut, platform.IsMac(runtime.GOOS)))
	return nil
}
