// Package output maps pipeline errors to process exit codes.
package output

import (
	"errors"

	"github.com/oussamaachahboune/gencommit/internal/git"
	"github.com/oussamaachahboune/gencommit/internal/llm"
)

// Exit codes:
// 0 = success (including dry-run, rejection and --version)
// 1 = user error (nothing staged, missing credential)
// 2 = system error (git unavailable, API failure)
// Failed commits exit with git's own status when it is known.
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitSystemError = 2
)

// GetExitCode extracts the exit code for an error.
// Returns ExitSuccess for nil, ExitUserError for untyped errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, git.ErrNoChanges) || errors.Is(err, llm.ErrMissingAPIKey) {
		return ExitUserError
	}

	var commitErr *git.CommitError
	if errors.As(err, &commitErr) {
		if commitErr.ExitCode > 0 {
			return commitErr.ExitCode
		}
		return ExitSystemError
	}

	var unavailableErr *git.UnavailableError
	if errors.As(err, &unavailableErr) {
		return ExitSystemError
	}

	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		return ExitSystemError
	}

	return ExitUserError
}
