// Package prompt builds the instruction prompt sent to the model.
package prompt

import (
	"fmt"
	"strings"
)

// DefaultMaxDiffBytes is the truncation limit applied when the caller passes
// a non-positive limit.
const DefaultMaxDiffBytes = 100000

// truncationNotice marks a diff that was cut to fit the limit.
const truncationNotice = "\n[diff truncated]"

const template = `Generate a git commit message following this structure:
1. First line: conventional commit format (type: concise description)
   (use types like feat, fix, docs, style, refactor, perf, test, chore, etc.)
2. Optional bullet points for context:
   - Keep second line blank
   - Be concise and clear
   - Avoid long explanations
   - No fluff or quotes

Recent commits from this repo (for style reference):
%s

Here's the current diff:
%s
`

// Build combines the instruction template, recent commit history and the
// staged diff into a single prompt. Pure function: the same inputs always
// produce the same prompt. Diffs larger than maxDiffBytes are truncated at
// the last full line and marked with a truncation notice.
func Build(diff, recentCommits string, maxDiffBytes int) string {
	return fmt.Sprintf(template, recentCommits, Truncate(diff, maxDiffBytes))
}

// Truncate cuts the diff at the last newline within limit bytes and appends
// a truncation notice. Diffs within the limit are returned unchanged.
func Truncate(diff string, limit int) string {
	if limit <= 0 {
		limit = DefaultMaxDiffBytes
	}
	if len(diff) <= limit {
		return diff
	}

	cut := diff[:limit]
	if i := strings.LastIndexByte(cut, '\n'); i > 0 {
		cut = cut[:i]
	}
	return cut + truncationNotice
}
