package watch

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/lessbundle/internal/cli"
)

type watchOptions struct {
	source  cli.SourceFlags
	outputs []string
	port    int
}

// Cmd represents the watch command.
var Cmd = NewCommand()

// NewCommand returns a new watch command instance.
func NewCommand() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <source>",
		Short: "Rebuild the bundle whenever an imported stylesheet changes",
		Long: `Bundle a LESS stylesheet, then watch every directory holding one of its
imported files and rebuild on change. The set of watched directories follows
the import graph of the latest build.

With --port, the latest bundle is served at http://localhost:<port>/ and every
rebuild is pushed to /events as a server-sent event.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts, args[0])
		},
	}

	opts.source.Register(cmd, false)
	cmd.Flags().StringArrayVarP(&opts.outputs, "output", "o", nil, "Destination file; repeat for several (extension is rewritten to .less)")
	cmd.Flags().IntVarP(&opts.port, "port", "P", 0, "HTTP port serving the latest bundle (0 disables the server)")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runWatch(cmd *cobra.Command, opts *watchOptions, source string) error {
	settings, err := cli.LoadSettings(cmd)
	if err != nil {
		return err
	}

	bundleOpts, err := opts.source.Options(cmd.Context(), cmd, settings, source)
	if err != nil {
		return err
	}
	bundleOpts.Destinations = opts.outputs
	bundleOpts.WriteToDisk = true

	port := settings.Config.Watch.Port
	if cmd.Flags().Changed("port") {
		port = opts.port
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	b := newBroker()
	s := newSession(bundleOpts, settings.Logger, cmd.OutOrStdout(), b)

	if _, err := s.rebuild(ctx, watcher); err != nil && len(s.watchedDirectories()) == 0 {
		return fmt.Errorf("initial build failed: %w", err)
	}

	if port > 0 {
		ln, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
		if err != nil {
			return fmt.Errorf("failed to listen on port %d: %w", port, err)
		}
		srv := newServer(b)
		go func() {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				settings.Logger.Error("server stopped", "error", err)
			}
		}()
		defer srv.Close()
		fmt.Fprintf(cmd.OutOrStdout(), "Serving at http://localhost:%d\n", port)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %d %s\n", len(s.watchedDirectories()), pluralDirs(len(s.watchedDirectories())))
	fmt.Fprintf(cmd.OutOrStdout(), "Press Ctrl+C to stop\n")

	return watchAndRebuild(ctx, s, watcher, settings.Config.Watch.Debounce)
}

func pluralDirs(n int) string {
	if n == 1 {
		return "directory"
	}
	return "directories"
}
