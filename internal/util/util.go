// Package util holds small text helpers shared by the TUI and log previews.
package util

import (
	"strings"
	"unicode/utf8"
)

// TruncateRunes truncates a string to a maximum number of runes,
// appending an ellipsis if truncated.
func TruncateRunes(text string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxRunes]) + "…"
}

// WrapToWidth wraps the given text to a specified width at word boundaries.
// Words longer than the width are emitted on their own line unbroken.
func WrapToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			out = append(out, "")
			continue
		}
		var cur strings.Builder
		runeCount := 0
		for wi, w := range strings.Fields(line) {
			wLen := utf8.RuneCountInString(w)
			space := 0
			if cur.Len() > 0 {
				space = 1
			}
			if wi > 0 && runeCount+space+wLen > width {
				out = append(out, cur.String())
				cur.Reset()
				runeCount = 0
				space = 0
			}
			if space == 1 {
				cur.WriteByte(' ')
				runeCount++
			}
			cur.WriteString(w)
			runeCount += wLen
		}
		out = append(out, cur.String())
	}
	return strings.Join(out, "\n")
}
