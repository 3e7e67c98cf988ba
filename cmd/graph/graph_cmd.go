package graph

import (
	"fmt"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/lessbundle/bundle"
	"github.com/LegacyCodeHQ/lessbundle/cmd/graph/formatters"
	"github.com/LegacyCodeHQ/lessbundle/internal/cli"
	"github.com/LegacyCodeHQ/lessbundle/vcs/git"
)

type graphOptions struct {
	source          cli.SourceFlags
	outputFormat    string
	generateURL     bool
	copyToClipboard bool
}

// Cmd represents the graph command.
var Cmd = NewCommand()

// NewCommand returns a new graph command instance.
func NewCommand() *cobra.Command {
	opts := &graphOptions{}

	cmd := &cobra.Command{
		Use:   "graph <source>",
		Short: "Print the import graph of a LESS stylesheet",
		Long: `Print the import graph of a LESS stylesheet.

Every @import statement is an edge, including imports that the bundle skips
because the file was already included. Cyclic imports are highlighted.

Examples:
  lessbundle graph styles/site.less               # Graphviz DOT
  lessbundle graph styles/site.less -f mermaid    # Mermaid flowchart
  lessbundle graph styles/site.less -f json       # machine readable
  lessbundle graph styles/site.less -u            # generate visualization URL`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd, opts, args[0])
		},
	}

	opts.source.Register(cmd, true)
	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", formatters.OutputFormatDOT.String(),
		fmt.Sprintf("Output format (%s)", formatters.SupportedFormats()))
	cmd.Flags().BoolVarP(&opts.generateURL, "url", "u", false, "Generate visualization URL (supported formats: dot, mermaid)")
	cmd.Flags().BoolVarP(&opts.copyToClipboard, "clipboard", "b", false, "Automatically copy output to clipboard")

	return cmd
}

func runGraph(cmd *cobra.Command, opts *graphOptions, source string) error {
	formatter, err := NewFormatter(opts.outputFormat)
	if err != nil {
		return err
	}

	settings, err := cli.LoadSettings(cmd)
	if err != nil {
		return err
	}

	bundleOpts, err := opts.source.Options(cmd.Context(), cmd, settings, source)
	if err != nil {
		return err
	}

	result, err := bundle.Bundle(cmd.Context(), bundleOpts)
	if err != nil {
		return fmt.Errorf("failed to build import graph: %w", err)
	}

	label := graphLabel(cmd, opts, result)
	output, err := formatter.Format(result.Graph, formatters.RenderOptions{Label: label})
	if err != nil {
		return fmt.Errorf("failed to format graph: %w", err)
	}

	out := cmd.OutOrStdout()
	if opts.generateURL {
		if urlStr, ok := formatter.GenerateURL(output); ok {
			fmt.Fprintln(out, urlStr)
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: URL generation is not supported for %s format\n\n", opts.outputFormat)
			fmt.Fprintln(out, output)
		}
	} else {
		fmt.Fprintln(out, output)
	}

	if opts.copyToClipboard {
		if err := clipboard.WriteAll(output); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintln(out, "\n✅ Content copied to your clipboard.")
	}

	return nil
}

// graphLabel names the entry file, the revision when reading from git, and the file count.
func graphLabel(cmd *cobra.Command, opts *graphOptions, result *bundle.Result) string {
	label := filepath.Base(result.Graph.Entry())

	if opts.source.Commit != "" {
		if short, err := git.GetShortCommitHash(cmd.Context(), opts.source.Repo, opts.source.Commit); err == nil {
			label += " • " + short
		}
	}

	count := len(result.Graph.Files())
	if count == 1 {
		return label + fmt.Sprintf(" • %d file", count)
	}
	return label + fmt.Sprintf(" • %d files", count)
}
