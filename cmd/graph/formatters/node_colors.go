package formatters

import (
	"path/filepath"
	"strings"

	"github.com/LegacyCodeHQ/lessbundle/importgraph"
)

// NodeKind classifies a file for styling.
type NodeKind int

const (
	NodeKindStylesheet NodeKind = iota
	NodeKindEntry
	NodeKindCycle
	NodeKindPrecompiled
)

// ClassifyNodes assigns a NodeKind to every file in the graph. The entry file
// wins over cycle membership, and cycle membership wins over a .css extension.
func ClassifyNodes(g *importgraph.Graph) (map[string]NodeKind, error) {
	cycles, err := g.Cycles()
	if err != nil {
		return nil, err
	}
	inCycle := make(map[string]bool)
	for _, cycle := range cycles {
		for _, file := range cycle {
			inCycle[file] = true
		}
	}

	kinds := make(map[string]NodeKind)
	for _, file := range g.Files() {
		switch {
		case file == g.Entry():
			kinds[file] = NodeKindEntry
		case inCycle[file]:
			kinds[file] = NodeKindCycle
		case strings.EqualFold(filepath.Ext(file), ".css"):
			kinds[file] = NodeKindPrecompiled
		default:
			kinds[file] = NodeKindStylesheet
		}
	}
	return kinds, nil
}
