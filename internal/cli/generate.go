package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/oussamaachahboune/gencommit/internal/commitmsg"
	"github.com/oussamaachahboune/gencommit/internal/config"
	"github.com/oussamaachahboune/gencommit/internal/editor"
	"github.com/oussamaachahboune/gencommit/internal/git"
	"github.com/oussamaachahboune/gencommit/internal/llm"
	"github.com/oussamaachahboune/gencommit/internal/log"
	"github.com/oussamaachahboune/gencommit/internal/prompt"
	"github.com/oussamaachahboune/gencommit/internal/ui"
	"github.com/spf13/cobra"
)

// recentCommitCount is how many commit messages are included in the prompt
// as style reference.
const recentCommitCount = 3

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Resolve(config.Options{
		Mock:   mockMode,
		DryRun: dryRun,
		Debug:  debugMode,
		Model:  modelName,
	})
	if err != nil {
		return fmt.Errorf("failed to resolve configuration: %w", err)
	}

	log.DebugConfig("Configuration", cfg)

	// The credential check happens here, before any git or network work.
	generator, err := llm.New(cfg)
	if err != nil {
		return err
	}

	log.Debug("using generator: %s", generator.Name())

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	gitExec := git.NewExecutor(cwd)
	ed := editor.New(cfg.Editor)

	return executePipeline(ctx, cfg, gitExec, generator, ed, os.Stdin, os.Stdout)
}

// executePipeline runs the linear pipeline: staged diff, prompt, generation,
// interactive review, commit. Dependencies are injected so tests can run the
// whole flow with doubles.
func executePipeline(ctx context.Context, cfg *config.RunConfig, gitExec git.Executor, generator llm.Generator, ed editor.Editor, input io.Reader, output io.Writer) error {
	diff, err := gitExec.StagedChanges(ctx)
	if err != nil {
		if errors.Is(err, git.ErrNoChanges) {
			return fmt.Errorf("%w (use 'git add' first)", git.ErrNoChanges)
		}
		return fmt.Errorf("failed to get staged changes: %w", err)
	}

	history, err := gitExec.RecentCommits(ctx, recentCommitCount)
	if err != nil {
		history = ""
	}

	p := prompt.Build(diff, history, cfg.MaxDiffBytes)
	log.Debug("prompt built (%d bytes, diff %d bytes)", len(p), len(diff))

	raw, err := generator.Generate(ctx, p)
	if err != nil {
		return fmt.Errorf("failed to generate commit message: %w", err)
	}

	message := commitmsg.Clean(raw)
	if message == "" {
		return &llm.APIError{Message: "model returned an empty message"}
	}
	if !commitmsg.IsConventional(message) {
		log.Warn("generated message does not follow the conventional commit format")
	}

	final, accepted, err := ui.Review(ctx, message, ed, input, output)
	if err != nil {
		return err
	}

	if !accepted {
		fmt.Fprintln(output, "Commit message rejected. No changes committed.")
		return nil
	}

	if final == "" {
		return errors.New("refusing to commit an empty message")
	}

	if cfg.DryRun {
		fmt.Fprintf(output, "[DRY-RUN] git commit -m %q\n", final)
		return nil
	}

	if err := gitExec.Commit(ctx, final); err != nil {
		return err
	}

	fmt.Fprintln(output, "Changes committed successfully!")
	return nil
}
