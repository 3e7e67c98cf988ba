package bundle

import (
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/lessbundle/bundle"
	"github.com/LegacyCodeHQ/lessbundle/internal/cli"
)

type bundleOptions struct {
	source  cli.SourceFlags
	outputs []string
}

// Cmd represents the bundle command.
var Cmd = NewCommand()

// NewCommand returns a new bundle command instance.
func NewCommand() *cobra.Command {
	opts := &bundleOptions{}

	cmd := &cobra.Command{
		Use:   "bundle <source>",
		Short: "Inline every @import of a LESS stylesheet into a single file",
		Long: `Inline every @import of a LESS stylesheet into a single file.

Each imported file is included once, at the position of its first import.
Imports starting with ~ resolve against the module root.

Examples:
  lessbundle bundle styles/site.less                      # print to stdout
  lessbundle bundle styles/site.less -o dist/site.less    # write one destination
  lessbundle bundle site.less -o a/out -o b/out.css       # both written as .less
  lessbundle bundle site.less -c HEAD~1                   # bundle a previous commit`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBundle(cmd, opts, args[0])
		},
	}

	opts.source.Register(cmd, true)
	cmd.Flags().StringArrayVarP(&opts.outputs, "output", "o", nil, "Destination file; repeat for several (extension is rewritten to .less)")

	return cmd
}

func runBundle(cmd *cobra.Command, opts *bundleOptions, source string) error {
	settings, err := cli.LoadSettings(cmd)
	if err != nil {
		return err
	}

	bundleOpts, err := opts.source.Options(cmd.Context(), cmd, settings, source)
	if err != nil {
		return err
	}
	bundleOpts.Destinations = opts.outputs
	bundleOpts.WriteToDisk = len(opts.outputs) > 0

	result, err := bundle.Bundle(cmd.Context(), bundleOpts)
	if result == nil {
		return err
	}

	if !bundleOpts.WriteToDisk {
		_, writeErr := io.WriteString(cmd.OutOrStdout(), result.Text)
		return writeErr
	}

	printWriteResults(cmd.OutOrStdout(), result)
	if err != nil {
		var writeErr *bundle.WriteError
		if errors.As(err, &writeErr) {
			return fmt.Errorf("failed to write %d of %d destinations", countFailed(result.Writes), len(result.Writes))
		}
		return err
	}
	return nil
}

func printWriteResults(w io.Writer, result *bundle.Result) {
	ok := color.New(color.FgGreen).SprintFunc()
	failed := color.New(color.FgRed).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	for _, write := range result.Writes {
		if write.Err != nil {
			fmt.Fprintf(w, "%s %s %s\n", failed("✗"), write.Path, dim(write.Err.Error()))
			continue
		}
		fmt.Fprintf(w, "%s %s %s\n", ok("✓"), write.Path, dim(humanize.Bytes(uint64(write.Bytes))))
	}
	fmt.Fprintf(w, "%s from %d %s\n", dim("bundled"), len(result.Files), pluralFiles(len(result.Files)))
}

func countFailed(writes []bundle.WriteResult) int {
	n := 0
	for _, w := range writes {
		if w.Err != nil {
			n++
		}
	}
	return n
}

func pluralFiles(n int) string {
	if n == 1 {
		return "file"
	}
	return "files"
}
