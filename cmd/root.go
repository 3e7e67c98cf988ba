package cmd

import (
	"os"

	"github.com/spf13/cobra"

	bundlecmd "github.com/LegacyCodeHQ/lessbundle/cmd/bundle"
	graphcmd "github.com/LegacyCodeHQ/lessbundle/cmd/graph"
	initcmd "github.com/LegacyCodeHQ/lessbundle/cmd/init"
	watchcmd "github.com/LegacyCodeHQ/lessbundle/cmd/watch"
	"github.com/LegacyCodeHQ/lessbundle/internal/cli"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

// NewRootCommand builds the lessbundle command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lessbundle",
		Short: "Bundle LESS stylesheets by inlining their @import statements",
		Long: `lessbundle flattens a LESS stylesheet and everything it imports into a
single file. Each imported file is included once, at its first import.

Use 'lessbundle --help' to see all available commands, or 'lessbundle <command> --help'
for detailed information about a specific command.`,
		Version: version,
	}

	rootCmd.AddCommand(bundlecmd.NewCommand())
	rootCmd.AddCommand(graphcmd.NewCommand())
	rootCmd.AddCommand(watchcmd.NewCommand())
	rootCmd.AddCommand(initcmd.NewCommand())

	rootCmd.Annotations = map[string]string{
		"buildDate": buildDate,
		"commit":    commit,
	}

	// Customize version template to show additional build info
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)

	rootCmd.PersistentFlags().String(cli.ConfigFlag, "", "Config file (default: .lessbundle.yaml in the working directory or ~/.config/lessbundle)")
	rootCmd.PersistentFlags().BoolP(cli.VerboseFlag, "v", false, "Enable debug logging")

	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
