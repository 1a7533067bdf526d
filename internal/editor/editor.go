// Package editor opens the user's editor on a temporary file so the
// suggested commit message can be revised.
package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/oussamaachahboune/gencommit/internal/log"
)

// Editor edits a piece of text and returns the result.
type Editor interface {
	Edit(ctx context.Context, initial string) (string, error)
}

// ExternalEditor runs a terminal editor (from $EDITOR, default vim) on a
// temporary file pre-filled with the initial text, blocking until the editor
// exits, then reads the file back.
type ExternalEditor struct {
	command string
	args    []string
}

// New creates an ExternalEditor for the given command. The command may carry
// arguments ("code --wait"); an empty command falls back to vim.
func New(command string) *ExternalEditor {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		fields = []string{"vim"}
	}
	return &ExternalEditor{command: fields[0], args: fields[1:]}
}

// Edit implements Editor. A missing editor binary is not fatal: the initial
// text is kept and a warning printed.
func (e *ExternalEditor) Edit(ctx context.Context, initial string) (string, error) {
	tmp, err := os.CreateTemp("", "gencommit-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := tmp.Name()
	defer func() { _ = os.Remove(path) }()

	if _, err := tmp.WriteString(initial); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	log.Debug("opening editor: %s %s", e.command, path)

	cmd := exec.CommandContext(ctx, e.command, append(e.args, path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			log.Warn("editor '%s' not found, keeping original message", e.command)
			return initial, nil
		}
		return "", fmt.Errorf("editor %s failed: %w", e.command, err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read edited message: %w", err)
	}

	return string(edited), nil
}
