package formatters

import (
	"github.com/LegacyCodeHQ/lessbundle/importgraph"
)

// RenderOptions contains optional parameters for rendering import graphs.
type RenderOptions struct {
	// Label is an optional title or label for the graph
	Label string
	// BaseDir is the directory node labels are made relative to. Defaults to the entry file's directory.
	BaseDir string
}

// Formatter is the interface that all graph formatters must implement.
type Formatter interface {
	// Format converts an import graph to a formatted string representation.
	Format(g *importgraph.Graph, opts RenderOptions) (string, error)
	// GenerateURL returns a shareable visualization URL for output when the format supports one.
	GenerateURL(output string) (string, bool)
}
