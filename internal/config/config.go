package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Defaults applied when neither flags, environment nor config file say otherwise.
const (
	DefaultModel        = "claude-sonnet-4-5-20250929"
	DefaultEditor       = "vim"
	DefaultMaxDiffBytes = 100000
	DefaultMaxTokens    = 300
)

// configFileName is searched in the current directory and then the home directory.
const configFileName = ".gencommit.yaml"

// RunConfig holds all resolved options for a single run.
// It is constructed once at startup and never mutated afterwards.
type RunConfig struct {
	Mock   bool   `json:"mock"`
	DryRun bool   `json:"dry_run"`
	Debug  bool   `json:"debug"`
	Model  string `json:"model"` // empty means auto-select in live mode
	Editor string `json:"editor"`
	APIKey string `json:"-"`
	// MaxDiffBytes caps how much of the staged diff is sent to the model.
	MaxDiffBytes int `json:"max_diff_bytes"`
	// MaxTokens caps the length of the generated message.
	MaxTokens int `json:"max_tokens"`
}

// Options carries the raw command-line flag values into Resolve.
type Options struct {
	Mock   bool
	DryRun bool
	Debug  bool
	Model  string
}

// fileConfig is the subset of options that may come from a config file.
type fileConfig struct {
	Model        string `mapstructure:"model"`
	Editor       string `mapstructure:"editor"`
	MaxDiffBytes int    `mapstructure:"max_diff_bytes"`
	MaxTokens    int    `mapstructure:"max_tokens"`
}

// Resolve builds the RunConfig from flags, environment variables and an
// optional config file. Priority: flags > environment > config file > defaults.
//
// Environment variables consumed:
//   - ANTHROPIC_API_KEY: credential for the live generator
//   - GENCOMMIT_MOCK: "1" forces mock mode
//   - EDITOR: editor used for the edit branch (default vim)
func Resolve(opts Options) (*RunConfig, error) {
	// A .env in the working directory may carry the API key.
	_ = godotenv.Load()

	fc, err := loadFile()
	if err != nil {
		return nil, err
	}

	cfg := &RunConfig{
		Mock:         opts.Mock,
		DryRun:       opts.DryRun,
		Debug:        opts.Debug,
		Model:        opts.Model,
		Editor:       fc.Editor,
		APIKey:       os.Getenv("ANTHROPIC_API_KEY"),
		MaxDiffBytes: fc.MaxDiffBytes,
		MaxTokens:    fc.MaxTokens,
	}

	if os.Getenv("GENCOMMIT_MOCK") == "1" {
		cfg.Mock = true
	}
	if cfg.Model == "" {
		cfg.Model = fc.Model
	}
	if envEditor := os.Getenv("EDITOR"); envEditor != "" {
		cfg.Editor = envEditor
	}
	if cfg.Editor == "" {
		cfg.Editor = DefaultEditor
	}
	if cfg.MaxDiffBytes <= 0 {
		cfg.MaxDiffBytes = DefaultMaxDiffBytes
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}

	return cfg, nil
}

// loadFile reads the optional config file from the current directory or the
// home directory. A missing file is not an error.
func loadFile() (*fileConfig, error) {
	for _, path := range candidatePaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return loadFromFile(path)
	}
	return &fileConfig{}, nil
}

func candidatePaths() []string {
	paths := []string{configFileName}
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, configFileName))
	}
	return paths
}

func loadFromFile(path string) (*fileConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file %s: %w", path, err)
	}

	return &fc, nil
}
