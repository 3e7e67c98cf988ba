package mermaid

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/LegacyCodeHQ/lessbundle/cmd/graph/formatters"
	"github.com/LegacyCodeHQ/lessbundle/importgraph"
)

// Formatter formats import graphs as Mermaid.js flowcharts.
type Formatter struct{}

var classNames = map[formatters.NodeKind]string{
	formatters.NodeKindEntry:       "entryFile",
	formatters.NodeKindCycle:       "cycleFile",
	formatters.NodeKindPrecompiled: "cssFile",
}

var classDefs = []struct {
	kind  formatters.NodeKind
	style string
}{
	{formatters.NodeKindEntry, "fill:#fff9c4,stroke:#f9a825"},
	{formatters.NodeKindCycle, "fill:#ffcdd2,stroke:#c62828"},
	{formatters.NodeKindPrecompiled, "fill:#bbdefb,stroke:#1565c0"},
}

// Format converts the import graph to Mermaid.js flowchart format.
func (f *Formatter) Format(g *importgraph.Graph, opts formatters.RenderOptions) (string, error) {
	kinds, err := formatters.ClassifyNodes(g)
	if err != nil {
		return "", err
	}
	cycles, err := g.Cycles()
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

	if opts.Label != "" {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("title: %s\n", opts.Label))
		sb.WriteString("---\n")
	}

	sb.WriteString("flowchart LR\n")

	for i, cycle := range cycles {
		parts := make([]string, 0, len(cycle)+1)
		for _, file := range cycle {
			parts = append(parts, names[file])
		}
		parts = append(parts, names[cycle[0]])
		sb.WriteString(fmt.Sprintf("%%%% C%d: %s\n", i+1, strings.Join(parts, " -> ")))
	}

	ids := make(map[string]string, len(files))
	for i, file := range files {
		ids[file] = fmt.Sprintf("n%d", i)
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", ids[file], escapeLabel(names[file])))
	}

	// Mermaid numbers links in declaration order; linkStyle needs those indices.
	var redLinks []string
	link := 0
	for _, file := range files {
		for _, dep := range adjacency[file] {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", ids[file], ids[dep]))
			if cycleEdges[importgraph.Edge{From: file, To: dep}] {
				redLinks = append(redLinks, fmt.Sprintf("%d", link))
			}
			link++
		}
	}

	byClass := make(map[formatters.NodeKind][]string)
	for _, file := range files {
		if _, ok := classNames[kinds[file]]; ok {
			byClass[kinds[file]] = append(byClass[kinds[file]], ids[file])
		}
	}
	for _, def := range classDefs {
		nodes := byClass[def.kind]
		if len(nodes) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("    classDef %s %s\n", classNames[def.kind], def.style))
		sb.WriteString(fmt.Sprintf("    class %s %s\n", strings.Join(nodes, ","), classNames[def.kind]))
	}
	if len(redLinks) > 0 {
		sb.WriteString(fmt.Sprintf("    linkStyle %s stroke:#c62828\n", strings.Join(redLinks, ",")))
	}

	return sb.String(), nil
}

func escapeLabel(label string) string {
	return strings.ReplaceAll(label, `"`, "#quot;")
}

// GenerateURL creates a mermaid.live URL with the diagram embedded.
func (f *Formatter) GenerateURL(output string) (string, bool) {
	payload := map[string]interface{}{
		"code": output,
		"mermaid": map[string]interface{}{
			"theme": "default",
		},
		"autoSync":      true,
		"updateDiagram": true,
	}

	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("https://mermaid.live/edit#%s", url.PathEscape(output)), true
	}

	encoded := base64.URLEncoding.EncodeToString(jsonBytes)
	return fmt.Sprintf("https://mermaid.live/edit#base64:%s", encoded), true
}
