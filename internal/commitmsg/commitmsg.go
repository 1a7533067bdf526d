// Package commitmsg cleans up model output and validates commit message
// formatting.
package commitmsg

import (
	"regexp"
	"strings"
)

// conventionalPattern matches a conventional commit header:
// type, optional (scope), optional breaking-change marker, then a description.
var conventionalPattern = regexp.MustCompile(`^[a-z]+(\([^)]+\))?(!)?: .+`)

// Clean strips markdown code fences and wrapping quotes that models sometimes
// add around the message.
func Clean(msg string) string {
	msg = strings.TrimSpace(msg)
	msg = strings.ReplaceAll(msg, "```", "")
	msg = strings.Trim(msg, `"'`)
	return strings.TrimSpace(msg)
}

// IsConventional reports whether the first line of msg follows the
// conventional commit format.
func IsConventional(msg string) bool {
	first, _, _ := strings.Cut(msg, "\n")
	return conventionalPattern.MatchString(first)
}
