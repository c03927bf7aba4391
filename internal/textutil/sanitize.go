package textutil

import (
	"strings"
	"unicode"
)

// CleanLabel normalizes a free-text label (album title, tool diagnostic)
// for safe use as a command-line field value and in report output. Control
// characters and newlines become spaces, runs of whitespace collapse to a
// single space, and the result is trimmed. Returns "" for empty input.
func CleanLabel(value string) string {
	value = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, value)
	return strings.Join(strings.Fields(value), " ")
}

// FirstNonEmpty returns the first entry whose CleanLabel form is non-empty.
func FirstNonEmpty(values []string) string {
	for _, v := range values {
		if cleaned := CleanLabel(v); cleaned != "" {
			return cleaned
		}
	}
	return ""
}

// Truncate shortens s to at most n runes, appending an ellipsis when
// anything was cut. Keeps tool diagnostics readable in report tables.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(runes[:n-1]) + "…"
}
