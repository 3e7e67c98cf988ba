// Package cli holds the wiring shared by the bundle, graph and watch commands:
// configuration, logging and translation of flags into bundle options.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/lessbundle/bundle"
	"github.com/LegacyCodeHQ/lessbundle/internal/config"
	"github.com/LegacyCodeHQ/lessbundle/internal/logging"
	"github.com/LegacyCodeHQ/lessbundle/vcs/git"
)

const (
	// ConfigFlag names the persistent flag holding an explicit config file path.
	ConfigFlag = "config"
	// VerboseFlag names the persistent flag enabling debug logging.
	VerboseFlag = "verbose"
)

// Settings is the configuration and logger a command runs with.
type Settings struct {
	Config config.Config
	Logger *slog.Logger
}

// LoadSettings reads the config file named by --config and builds a logger
// writing to the command's error stream. --verbose forces debug level.
func LoadSettings(cmd *cobra.Command) (Settings, error) {
	var configPath string
	if f := cmd.Flags().Lookup(ConfigFlag); f != nil {
		configPath = f.Value.String()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return Settings{}, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return Settings{}, fmt.Errorf("invalid log_level %q: %w", cfg.LogLevel, err)
	}
	if verbose, err := cmd.Flags().GetBool(VerboseFlag); err == nil && verbose {
		level = slog.LevelDebug
	}

	return Settings{
		Config: cfg,
		Logger: logging.New(cmd.ErrOrStderr(), level),
	}, nil
}

// SourceFlags are the flags shared by every command that resolves a stylesheet.
type SourceFlags struct {
	ModuleRoot   string
	StrictCycles bool
	Commit       string
	Repo         string
}

// Register adds the source flags to cmd.
func (f *SourceFlags) Register(cmd *cobra.Command, withCommit bool) {
	cmd.Flags().StringVar(&f.ModuleRoot, "module-root", "", "Directory substituted for the ~ prefix of aliased imports")
	cmd.Flags().BoolVar(&f.StrictCycles, "strict-cycles", false, "Fail on cyclic imports instead of skipping them")
	if withCommit {
		cmd.Flags().StringVarP(&f.Commit, "commit", "c", "", "Read stylesheets from a git commit instead of the working copy")
		cmd.Flags().StringVarP(&f.Repo, "repo", "r", ".", "Git repository path used with --commit")
	}
}

// Options builds bundle options for source. Flags that were set on cmd win
// over configuration values.
func (f *SourceFlags) Options(ctx context.Context, cmd *cobra.Command, s Settings, source string) (bundle.Options, error) {
	opts := bundle.Options{
		Source:       source,
		ModuleRoot:   s.Config.ModuleRoot,
		StrictCycles: s.Config.StrictCycles,
		Extensions: bundle.Extensions{
			Primary:     s.Config.PrimaryExt,
			Precompiled: s.Config.PrecompiledExt,
		},
		Logger: s.Logger,
	}

	if cmd.Flags().Changed("module-root") {
		opts.ModuleRoot = f.ModuleRoot
	}
	if cmd.Flags().Changed("strict-cycles") {
		opts.StrictCycles = f.StrictCycles
	}

	if f.Commit != "" {
		reader, err := git.CommitContentReader(ctx, f.Repo, f.Commit)
		if err != nil {
			return bundle.Options{}, fmt.Errorf("failed to read from commit %s: %w", f.Commit, err)
		}
		opts.ContentReader = reader
		s.Logger.Debug("reading from commit", "commit", f.Commit, "repo", f.Repo)
	}

	return opts, nil
}
