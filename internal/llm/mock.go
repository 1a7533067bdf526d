package llm

import (
	"context"
	"strings"

	"github.com/oussamaachahboune/gencommit/internal/log"
)

// MockGenerator fabricates a plausible conventional commit message from the
// prompt text without any network call. Deterministic and side-effect free.
type MockGenerator struct{}

// NewMockGenerator creates a new MockGenerator
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Name returns the generator name
func (g *MockGenerator) Name() string {
	return "mock"
}

// Generate derives a summary line from simple diff heuristics and never
// fails. Heuristics are checked in order: a touched file name, an added
// function, the word "fix" on an added line, otherwise a generic summary.
func (g *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	log.Debug("using mock generator (no network call)")

	lines := strings.Split(prompt, "\n")

	summary := "chore: update files"
	if name := firstTouchedFile(lines); name != "" {
		summary = "feat: update " + name
	} else if hasAddedFunction(lines) {
		summary = "feat: add or modify function"
	} else if hasFixHint(lines) {
		summary = "fix: address bug found in diff"
	}

	var bullets []string
	if strings.Contains(strings.ToUpper(prompt), "TODO") {
		bullets = append(bullets, "- Resolve TODO items")
	}
	if len(bullets) == 0 {
		bullets = append(bullets, "- See diff for details")
	}

	return summary + "\n\n" + strings.Join(bullets, "\n"), nil
}

// firstTouchedFile returns the path of the first "+++ b/" header in the diff.
func firstTouchedFile(lines []string) string {
	for _, line := range lines {
		if name, ok := strings.CutPrefix(strings.TrimSpace(line), "+++ b/"); ok && name != "" {
			return name
		}
	}
	return ""
}

// hasAddedFunction reports whether the diff adds a function definition.
func hasAddedFunction(lines []string) bool {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "+func ") || strings.HasPrefix(trimmed, "+def ") {
			return true
		}
	}
	return false
}

// hasFixHint reports whether an added diff line mentions a fix. Only "+"
// lines are considered so the instruction template itself never matches.
func hasFixHint(lines []string) bool {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "+") && strings.Contains(strings.ToLower(trimmed), "fix") {
			return true
		}
	}
	return false
}
