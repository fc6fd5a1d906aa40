package ui

import (
	"strings"
	"unicode/utf8"
)

const (
	maxErrorLines  = 2
	errorPrefix    = "Error: "
	minErrorWidth  = 10
	truncationMark = "..."
)

// formatErrorForDisplay word-wraps an error to at most maxErrorLines lines of
// maxWidth runes, prefixed with "Error: " and truncated with "..." when longer
func formatErrorForDisplay(err error, maxWidth int) string {
	if err == nil {
		return ""
	}
	words := strings.Fields(err.Error())
	if len(words) == 0 {
		return errorPrefix + "unknown error"
	}

	width := max(maxWidth, minErrorWidth)
	limit := max(width-utf8.RuneCountInString(errorPrefix), minErrorWidth)

	var lines []string
	var line strings.Builder
	consumed := 0
	for _, word := range words {
		n := utf8.RuneCountInString(line.String())
		if n > 0 && n+1+utf8.RuneCountInString(word) > limit {
			lines = append(lines, line.String())
			line.Reset()
			limit = width
			if len(lines) == maxErrorLines {
				break
			}
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
		consumed++
	}
	if line.Len() > 0 && len(lines) < maxErrorLines {
		lines = append(lines, line.String())
	}

	if consumed < len(words) {
		last := []rune(lines[len(lines)-1])
		keep := width - utf8.RuneCountInString(truncationMark)
		if len(last) > keep {
			last = last[:keep]
		}
		lines[len(lines)-1] = string(last) + truncationMark
	}

	return errorPrefix + strings.Join(lines, "\n")
}
