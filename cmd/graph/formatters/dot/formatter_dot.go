package dot

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/LegacyCodeHQ/lessbundle/cmd/graph/formatters"
	"github.com/LegacyCodeHQ/lessbundle/importgraph"
)

// Formatter formats import graphs as Graphviz DOT.
type Formatter struct{}

var fillColors = map[formatters.NodeKind]string{
	formatters.NodeKindStylesheet:  "white",
	formatters.NodeKindEntry:       "lightyellow",
	formatters.NodeKindCycle:       "lightpink",
	formatters.NodeKindPrecompiled: "lightblue",
}

// Format converts the import graph to Graphviz DOT format.
func (f *Formatter) Format(g *importgraph.Graph, opts formatters.RenderOptions) (string, error) {
	kinds, err := formatters.ClassifyNodes(g)
	if err != nil {
		return "", err
	}
	cycleEdges, err := g.CycleEdges()
	if err != nil {
		return "", err
	}

	files := g.Files()
	names := formatters.BuildNodeNames(files, formatters.BaseDir(g, opts))
	adjacency := g.AdjacencyList()

	var sb strings.Builder
	sb.WriteString("digraph imports {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box];\n")

	if opts.Label != "" {
		sb.WriteString(fmt.Sprintf("  label=%q;\n", opts.Label))
		sb.WriteString("  labelloc=t;\n")
		sb.WriteString("  labeljust=l;\n")
		sb.WriteString("  fontsize=10;\n")
		sb.WriteString("  fontname=Courier;\n")
	}
	sb.WriteString("\n")

	for _, file := range files {
		sb.WriteString(fmt.Sprintf("  %q [style=filled, fillcolor=%s];\n", names[file], fillColors[kinds[file]]))
	}
	if len(files) > 0 {
		sb.WriteString("\n")
	}

	for _, file := range files {
		for _, dep := range adjacency[file] {
			if cycleEdges[importgraph.Edge{From: file, To: dep}] {
				sb.WriteString(fmt.Sprintf("  %q -> %q [color=red];\n", names[file], names[dep]))
				continue
			}
			sb.WriteString(fmt.Sprintf("  %q -> %q;\n", names[file], names[dep]))
		}
	}

	sb.WriteString("}")
	return sb.String(), nil
}

// GenerateURL creates a GraphvizOnline URL with the DOT graph embedded.
func (f *Formatter) GenerateURL(output string) (string, bool) {
	encoded := url.PathEscape(output)
	return fmt.Sprintf("https://dreampuf.github.io/GraphvizOnline/?engine=dot#%s", encoded), true
}
