package ui

import (
	"fmt"

	"github.com/renato0307/keebs/internal/theme"
	"github.com/renato0307/keebs/internal/version"
)

// renderHeader renders the app name, tagline and an optional subtitle.
// Build details are appended after the name when verbose is set.
func renderHeader(verbose bool, subtitle string) string {
	line := theme.AppNameStyle.Render("keebs")
	if verbose {
		commit := version.Commit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		line += theme.VersionStyle.Render(fmt.Sprintf(" %s | %s | %s", version.Version, commit, version.Date))
	}

	result := line + "\n" + theme.TaglineStyle.Render(version.Tagline)
	if subtitle != "" {
		result += "\n\n" + theme.SubtitleStyle.Render(subtitle)
	}
	return result + "\n"
}
