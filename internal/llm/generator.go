// Package llm provides the commit message generators: a live client for the
// Anthropic API and an offline mock.
package llm

import (
	"context"
	"errors"

	"github.com/oussamaachahboune/gencommit/internal/config"
)

// ErrMissingAPIKey is returned when live mode is requested without a
// credential. It is reported before any network attempt.
var ErrMissingAPIKey = errors.New("ANTHROPIC_API_KEY not set (use --mock for offline testing)")

// Generator produces a commit message for a prompt.
type Generator interface {
	// Name returns the generator name
	Name() string

	// Generate returns a commit message for the given prompt
	Generate(ctx context.Context, prompt string) (string, error)
}

// New selects a generator based on the run configuration: the mock when
// cfg.Mock is set, the Anthropic client otherwise.
func New(cfg *config.RunConfig) (Generator, error) {
	if cfg.Mock {
		return NewMockGenerator(), nil
	}
	return NewAnthropicGenerator(cfg)
}
