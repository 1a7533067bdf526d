package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrNoChanges is returned when the staging area is empty.
var ErrNoChanges = errors.New("no staged changes found")

// UnavailableError indicates that git itself could not be used: the binary is
// missing or the working directory is not inside a repository.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("git is not available: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// CommitError indicates that git commit itself failed, e.g. a pre-commit hook
// rejected the change. ExitCode carries git's own exit status when known.
type CommitError struct {
	ExitCode int
	Output   string
	Err      error
}

func (e *CommitError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("git commit failed: %v\n%s", e.Err, e.Output)
	}
	return fmt.Sprintf("git commit failed: %v", e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}

// Executor defines the interface for git command execution
type Executor interface {
	// DiffCached returns the diff of staged changes
	DiffCached(ctx context.Context) (string, error)

	// NewStagedFiles returns the paths of newly added staged files
	NewStagedFiles(ctx context.Context) ([]string, error)

	// StagedChanges returns the staged diff with the full content of newly
	// added files appended
	StagedChanges(ctx context.Context) (string, error)

	// RecentCommits returns the last n commit messages
	RecentCommits(ctx context.Context, n int) (string, error)

	// Commit executes a git commit with the given message
	Commit(ctx context.Context, message string) error
}

// DefaultExecutor is the default implementation of Executor
type DefaultExecutor struct {
	workDir string
}

// NewExecutor creates a new DefaultExecutor
func NewExecutor(workDir string) *DefaultExecutor {
	return &DefaultExecutor{workDir: workDir}
}

// runGit runs a git command and returns the output
func (e *DefaultExecutor) runGit(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = e.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", &UnavailableError{Err: err}
		}
		errMsg := strings.TrimSpace(stderr.String())
		if strings.Contains(errMsg, "not a git repository") {
			return "", &UnavailableError{Err: fmt.Errorf("%s", errMsg)}
		}
		return "", fmt.Errorf("git %s failed: %w\n%s", strings.Join(args, " "), err, errMsg)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// DiffCached returns the diff of staged changes
func (e *DefaultExecutor) DiffCached(ctx context.Context) (string, error) {
	return e.runGit(ctx, "diff", "--cached")
}

// NewStagedFiles returns the paths of newly added staged files
func (e *DefaultExecutor) NewStagedFiles(ctx context.Context) ([]string, error) {
	out, err := e.runGit(ctx, "diff", "--cached", "--name-only", "--diff-filter=A")
	if err != nil {
		return nil, err
	}
	return strings.Fields(out), nil
}

// StagedChanges returns the staged diff with the full content of newly added
// files appended, so the model sees more than an abbreviated file-add hunk.
// Returns ErrNoChanges when nothing is staged.
func (e *DefaultExecutor) StagedChanges(ctx context.Context) (string, error) {
	diff, err := e.DiffCached(ctx)
	if err != nil {
		return "", err
	}

	newFiles, err := e.NewStagedFiles(ctx)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(diff) == "" && len(newFiles) == 0 {
		return "", ErrNoChanges
	}

	var b strings.Builder
	b.WriteString(diff)
	for _, file := range newFiles {
		content, err := os.ReadFile(filepath.Join(e.workDir, file))
		if err != nil {
			return "", fmt.Errorf("failed to read new staged file %s: %w", file, err)
		}
		fmt.Fprintf(&b, "\n--- /dev/null\n+++ b/%s\n%s\n", file, content)
	}

	return b.String(), nil
}

// RecentCommits returns the last n commit messages. The history is advisory
// style context only, so any failure (e.g. an empty repository) yields "".
func (e *DefaultExecutor) RecentCommits(ctx context.Context, n int) (string, error) {
	out, err := e.runGit(ctx, "log", "-n", strconv.Itoa(n), "--pretty=format:%B")
	if err != nil {
		return "", nil
	}
	return out, nil
}

// Commit executes a git commit with the given message
func (e *DefaultExecutor) Commit(ctx context.Context, message string) error {
	cmd := exec.CommandContext(ctx, "git", "commit", "-m", message)
	cmd.Dir = e.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return &UnavailableError{Err: err}
		}

		output := strings.TrimSpace(stderr.String())
		if output == "" {
			// Hook output often lands on stdout.
			output = strings.TrimSpace(stdout.String())
		}

		commitErr := &CommitError{Output: output, Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			commitErr.ExitCode = exitErr.ExitCode()
		}
		return commitErr
	}

	return nil
}
