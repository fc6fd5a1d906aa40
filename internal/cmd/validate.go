package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"

	adapterkeymap "github.com/renato0307/keebs/internal/adapters/keymap"
	"github.com/renato0307/keebs/internal/domain"
)

// ValidateCmd checks shortcut strings and keymap files
type ValidateCmd struct {
	Shortcuts []string `arg:"" optional:"" help:"Shortcut strings to validate"`
	File      string   `help:"Keymap file (.toml, .json, .yaml) to validate" type:"existingfile" short:"f"`
}

// Run executes the validate command
func (v *ValidateCmd) Run(cli *CLI) error {
	if len(v.Shortcuts) == 0 && v.File == "" {
		return errors.New("nothing to validate: pass shortcuts or --file")
	}

	var errs []error
	w := tabwriter.NewWriter(cli.out(), 0, 0, 2, ' ', 0)
	for _, s := range v.Shortcuts {
		res := domain.ValidateShortcut(s)
		if res.Valid {
			fmt.Fprintf(w, "ok\t%q\t\n", s)
			continue
		}
		fmt.Fprintf(w, "invalid\t%q\t%s\n", s, res.Error())
		errs = append(errs, fmt.Errorf("%q: %w", s, res.Err))
	}
	w.Flush()

	if v.File != "" {
		m, err := adapterkeymap.Load(v.File)
		if err != nil {
			fmt.Fprintf(cli.out(), "invalid keymap %s: %v\n", v.File, err)
			errs = append(errs, err)
		} else {
			fmt.Fprintf(cli.out(), "keymap %s: %d shortcuts\n", v.File, len(m))
			for _, c := range m.Conflicts() {
				fmt.Fprintf(cli.out(), "warning: %s is shared by %v\n", c.Shortcut, c.IDs)
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d invalid: %w", len(errs), errors.Join(errs...))
	}
	return nil
}
