// Package bundle inlines @import statements of LESS stylesheets into a single
// file. Each distinct file is included once, at the position of its first import.
package bundle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/LegacyCodeHQ/lessbundle/importgraph"
	"github.com/LegacyCodeHQ/lessbundle/internal/logging"
	"github.com/LegacyCodeHQ/lessbundle/vcs"
)

var (
	// ErrSourceRequired is returned when no entry file is given.
	ErrSourceRequired = errors.New("source file is required")
	// ErrNoDestinations is returned when writing is requested without destinations.
	ErrNoDestinations = errors.New("at least one destination is required to write output")
	// ErrMalformedImport is reported for an @import statement without a quoted path.
	ErrMalformedImport = errors.New("import statement has no quoted path")
	// ErrImportCycle is reported for a cyclic import when strict cycle checking is on.
	ErrImportCycle = errors.New("import cycle")
)

// Options configures one bundling run.
type Options struct {
	// Source is the entry stylesheet.
	Source string
	// Destinations are the output files. Their extension is replaced by the
	// primary extension before writing.
	Destinations []string
	// WriteToDisk writes the bundle to every destination.
	WriteToDisk bool
	// ModuleRoot replaces the "~" prefix of aliased imports. Defaults to DefaultModuleRoot().
	ModuleRoot string
	// Extensions defaults to DefaultExtensions.
	Extensions Extensions
	// StrictCycles fails the run on a cyclic import instead of skipping it.
	StrictCycles bool
	// ContentReader reads source files. Defaults to the filesystem.
	ContentReader vcs.ContentReader
	// Logger receives debug diagnostics. Defaults to a discarding logger.
	Logger *slog.Logger
}

// Result is the outcome of a bundling run.
type Result struct {
	// Text is the bundled stylesheet.
	Text string
	// Lines is Text split on newlines.
	Lines []string
	// Files lists every file read, entry first, in read order.
	Files []string
	// Graph holds every import statement seen, including skipped ones.
	Graph *importgraph.Graph
	// Writes holds one entry per destination when WriteToDisk is set.
	Writes []WriteResult
}

// Bundle resolves the imports of opts.Source and returns the flattened text.
// When opts.WriteToDisk is set, the text is also written to every destination.
// A failed write does not stop the others: the result is returned together with
// the joined write errors.
func Bundle(ctx context.Context, opts Options) (*Result, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	source, err := filepath.Abs(opts.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", opts.Source, err)
	}

	r := newResolver(opts)
	lines, err := r.readFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}

	segments, err := r.resolve(ctx, lines, source)
	if err != nil {
		return nil, err
	}

	output := Assemble(segments)
	result := &Result{
		Text:  strings.Join(output, "\n"),
		Lines: output,
		Files: r.files,
		Graph: r.graph,
	}
	opts.Logger.Debug("bundled", "source", source, "files", len(r.files), "lines", len(output))

	if !opts.WriteToDisk {
		return result, nil
	}

	destinations := make([]string, 0, len(opts.Destinations))
	for _, dest := range opts.Destinations {
		path, err := destinationPath(dest, opts.Extensions.Primary)
		if err != nil {
			return result, fmt.Errorf("failed to resolve destination %s: %w", dest, err)
		}
		destinations = append(destinations, path)
	}

	result.Writes = WriteDestinations(ctx, result.Text, destinations)
	return result, WriteErrors(result.Writes)
}

func (o Options) withDefaults() (Options, error) {
	if strings.TrimSpace(o.Source) == "" {
		return o, ErrSourceRequired
	}
	if o.WriteToDisk && len(o.Destinations) == 0 {
		return o, ErrNoDestinations
	}
	if o.ModuleRoot == "" {
		o.ModuleRoot = DefaultModuleRoot()
	}
	moduleRoot, err := filepath.Abs(o.ModuleRoot)
	if err != nil {
		return o, fmt.Errorf("failed to resolve module root %s: %w", o.ModuleRoot, err)
	}
	o.ModuleRoot = moduleRoot
	o.Extensions = o.Extensions.WithDefaults()
	if o.ContentReader == nil {
		o.ContentReader = vcs.FilesystemContentReader()
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	return o, nil
}
