package tui

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// displayName title-cases a platform or scope name for display.
func displayName(s string) string {
	return titleCaser.String(s)
}

// truncateText shortens text to width runes, marking the cut with "..."
// when there is room for it.
func truncateText(text string, width int) string {
	runes := []rune(text)
	switch {
	case width <= 0:
		return ""
	case len(runes) <= width:
		return text
	case width <= 3:
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// formatDetail renders label followed by text wrapped to width, with
// continuation lines indented under the text.
func formatDetail(label, text string, width int) string {
	if width <= len(label) {
		return label + text
	}
	indent := "\n" + strings.Repeat(" ", len(label))
	return label + strings.ReplaceAll(wrapText(text, width-len(label)), "\n", indent)
}

// wrapText breaks text on whitespace into lines of at most width bytes.
// Words longer than width get a line of their own.
func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if width <= 0 || len(words) == 0 {
		return strings.Join(words, " ")
	}

	var b strings.Builder
	col := 0
	for i, word := range words {
		switch {
		case i == 0:
		case col+1+len(word) > width:
			b.WriteByte('\n')
			col = 0
		default:
			b.WriteByte(' ')
			col++
		}
		b.WriteString(word)
		col += len(word)
	}
	return b.String()
}
