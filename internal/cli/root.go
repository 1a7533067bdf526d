package cli

import (
	"github.com/oussamaachahboune/gencommit/internal/log"
	"github.com/spf13/cobra"
)

var (
	// Flags
	mockMode  bool
	dryRun    bool
	debugMode bool
	modelName string

	// Version info
	version   = "dev"
	gitCommit = "unknown"
	buildTime = "unknown"
)

// rootCmd is the single command: there are no subcommands.
var rootCmd = &cobra.Command{
	Use:   "gencommit",
	Short: "Generate git commit messages using Claude",
	Long: `gencommit generates a conventional commit message from your staged changes.

It will:
1. Read the staged diff (git diff --cached, including new files)
2. Ask Claude for a conventional commit message
3. Let you accept, edit, or reject the suggestion before committing

Requires ANTHROPIC_API_KEY unless --mock is set.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugMode {
			log.SetDebugMode(true)
			log.Debug("Debug mode enabled")
		}
	},
	RunE: runGenerate,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, commit, time string) {
	version = v
	gitCommit = commit
	buildTime = time
	rootCmd.Version = v
}

func init() {
	rootCmd.Flags().BoolVar(&mockMode, "mock", false, "Use the offline mock generator (no network call)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the would-be commit instead of committing")
	rootCmd.Flags().StringVarP(&modelName, "model", "m", "", "Anthropic model id to use (ignored with --mock)")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug mode for verbose output")
	rootCmd.SetVersionTemplate("gencommit {{.Version}}\n")
}
