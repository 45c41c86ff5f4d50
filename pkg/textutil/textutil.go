// Package textutil provides small text helpers shared by the prompt
// builders and handlers.
package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// HumanizeFieldName converts a form field name such as "party-name" or
// "notice_period" into a readable label ("Party Name", "Notice Period").
func HumanizeFieldName(name string) string {
	readable := strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return titleCaser.String(readable)
}

// IsBlank reports whether the text is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Truncate shortens s to at most maxLen bytes, appending an ellipsis
// marker when it had to cut. Used for log previews.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// SanitizeFilename strips path components and characters that are not
// safe in a stored filename, mirroring what browsers may send.
func SanitizeFilename(name string) string {
	// Drop any client-supplied directory part, both separators.
	if idx := strings.LastIndexAny(name, `/\`); idx != -1 {
		name = name[idx+1:]
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
