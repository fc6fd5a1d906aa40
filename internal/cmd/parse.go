package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/renato0307/keebs/internal/domain"
)

// ParseCmd prints the structured form of a shortcut
type ParseCmd struct {
	Shortcut string `arg:"" help:"Shortcut string (e.g. Meta+K, Ctrl+Shift+P)"`
}

type parseOutput struct {
	Input     string          `json:"input"`
	Parsed    domain.Shortcut `json:"parsed"`
	Canonical string          `json:"canonical"`
	Valid     bool            `json:"valid"`
	Error     string          `json:"error,omitempty"`
}

// Run executes the parse command
func (p *ParseCmd) Run(cli *CLI) error {
	parsed := domain.ParseShortcut(p.Shortcut)
	res := domain.ValidateShortcut(p.Shortcut)

	data, err := json.MarshalIndent(parseOutput{
		Input:     p.Shortcut,
		Parsed:    parsed,
		Canonical: parsed.String(),
		Valid:     res.Valid,
		Error:     res.Error(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(cli.out(), string(data))
	return nil
}
