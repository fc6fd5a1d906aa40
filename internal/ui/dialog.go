package ui

import tea "github.com/charmbracelet/bubbletea"

// Dialog wraps a form and prepends the app header with a title.
//
// Usage:
//
//	form := NewShortcutEditForm(...)
//	dialog := NewDialog("Edit shortcut", form, false)
//	tea.NewProgram(dialog).Run()
type Dialog struct {
	content tea.Model
	title   string
	verbose bool
}

// NewDialog creates a dialog around content
func NewDialog(title string, content tea.Model, verbose bool) *Dialog {
	return &Dialog{
		content: content,
		title:   title,
		verbose: verbose,
	}
}

func (d *Dialog) Init() tea.Cmd {
	return d.content.Init()
}

func (d *Dialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := d.content.Update(msg)
	d.content = updated
	return d, cmd
}

func (d *Dialog) View() string {
	return renderHeader(d.verbose, d.title) + "\n" + d.content.View()
}

// Content returns the wrapped model for type assertion after the program ends
func (d *Dialog) Content() tea.Model {
	return d.content
}
