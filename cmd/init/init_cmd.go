package init

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const configFileName = ".lessbundle.yaml"

const configTemplate = `# lessbundle configuration. Command line flags override these values, and
# LESSBUNDLE_* environment variables override the file.

# Directory substituted for the ~ prefix of aliased imports, for example
# @import "~theme/base". Empty means two levels above the lessbundle binary.
module_root: ""

# Imports without either extension get primary_ext appended.
primary_ext: .less
precompiled_ext: .css

# Fail on cyclic imports instead of skipping them.
strict_cycles: false

# debug, info, warn or error
log_level: info

watch:
  debounce: 300ms
  # HTTP port serving the latest bundle; 0 disables the server.
  port: 0
`

type initOptions struct {
	dir   string
	force bool
	quiet bool
}

// Cmd represents the init command
var Cmd = NewCommand()

// NewCommand returns a new init command instance.
func NewCommand() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .lessbundle.yaml with the default settings",
		Long: `Create a .lessbundle.yaml in the current directory with every setting
at its default value and a short description of each.

With --force: Overwrites an existing file.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "d", ".", "Directory to create the config file in")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing config file")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress output")

	return cmd
}

func runInit(cmd *cobra.Command, opts *initOptions) error {
	path, err := filepath.Abs(filepath.Join(opts.dir, configFileName))
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	_, err = os.Stat(path)
	fileExists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to check %s: %w", path, err)
	}
	if fileExists && !opts.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if !opts.quiet {
		if fileExists {
			fmt.Fprintf(cmd.OutOrStdout(), "Overwrote %s\n", path)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		}
	}
	return nil
}
