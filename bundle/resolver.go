package bundle

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/LegacyCodeHQ/lessbundle/importgraph"
	"github.com/LegacyCodeHQ/lessbundle/vcs"
)

// ImportError locates a failure at an import statement.
type ImportError struct {
	File   string // importing file
	Line   int    // 1-based line of the import statement
	Import string // resolved path, empty when the statement could not be parsed
	Err    error
}

func (e *ImportError) Error() string {
	if e.Import == "" {
		return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: import %s: %v", e.File, e.Line, e.Import, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// resolver holds the state of one bundling run. It must not be reused.
type resolver struct {
	reader       vcs.ContentReader
	moduleRoot   string
	exts         Extensions
	strictCycles bool
	logger       *slog.Logger

	visited map[string]bool
	files   []string
	graph   *importgraph.Graph
}

func newResolver(opts Options) *resolver {
	return &resolver{
		reader:       opts.ContentReader,
		moduleRoot:   opts.ModuleRoot,
		exts:         opts.Extensions,
		strictCycles: opts.StrictCycles,
		logger:       opts.Logger,
		visited:      make(map[string]bool),
		graph:        importgraph.New(),
	}
}

// readFile reads and splits path, recording it as read.
func (r *resolver) readFile(path string) ([]string, error) {
	content, err := r.reader(path)
	if err != nil {
		return nil, err
	}
	r.files = append(r.files, path)
	r.logger.Debug("read file", "file", path, "bytes", len(content))
	return splitLines(string(content)), nil
}

// resolve returns the segments of filePath with every import not seen earlier in
// the run expanded in place. Segments come back in pre-order: content before an
// import, then the imported file's segments, then the content after it.
func (r *resolver) resolve(ctx context.Context, lines []string, filePath string) ([]Segment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.visited[filePath] = true
	if err := r.graph.AddFile(filePath); err != nil {
		return nil, err
	}

	var segments []Segment
	var pending []string

	for i, line := range lines {
		if !isImportLine(line) {
			pending = append(pending, line)
			continue
		}

		if len(pending) > 0 {
			segments = append(segments, Segment{File: filePath, Lines: pending})
			pending = nil
		}

		importPath, ok := parseImportPath(line)
		if !ok {
			return nil, &ImportError{File: filePath, Line: i + 1, Err: ErrMalformedImport}
		}
		target := resolveImportPath(withExtension(importPath, r.exts), filePath, r.moduleRoot)

		cycle, err := r.graph.AddImport(filePath, target)
		if err != nil {
			return nil, err
		}
		if cycle {
			r.logger.Debug("import cycle", "file", filePath, "line", i+1, "import", target)
			if r.strictCycles {
				return nil, &ImportError{File: filePath, Line: i + 1, Import: target, Err: ErrImportCycle}
			}
		}

		if r.visited[target] {
			r.logger.Debug("import already bundled", "file", filePath, "line", i+1, "import", target)
			continue
		}
		r.visited[target] = true

		importedLines, err := r.readFile(target)
		if err != nil {
			return nil, &ImportError{File: filePath, Line: i + 1, Import: target, Err: err}
		}

		r.logger.Debug("expanding import", "file", filePath, "line", i+1, "import", target)
		nested, err := r.resolve(ctx, importedLines, target)
		if err != nil {
			return nil, err
		}
		segments = append(segments, nested...)
	}

	segments = append(segments, Segment{File: filePath, Lines: pending})
	return segments, nil
}
