package formatters

import (
	"encoding/json"

	"github.com/LegacyCodeHQ/lessbundle/importgraph"
)

// JSONFormatter formats import graphs as JSON.
type JSONFormatter struct{}

type jsonGraph struct {
	Label  string     `json:"label,omitempty"`
	Entry  string     `json:"entry"`
	Files  []jsonFile `json:"files"`
	Cycles [][]string `json:"cycles"`
}

type jsonFile struct {
	Name    string   `json:"name"`
	Path    string   `json:"path"`
	Imports []string `json:"imports"`
}

// Format converts the import graph to JSON. Files appear in sorted path order
// and imports are listed by display name.
func (f *JSONFormatter) Format(g *importgraph.Graph, opts RenderOptions) (string, error) {
	adjacency := g.AdjacencyList()
	cycles, err := g.Cycles()
	if err != nil {
		return "", err
	}

	files := g.Files()
	names := BuildNodeNames(files, BaseDir(g, opts))

	out := jsonGraph{
		Label:  opts.Label,
		Entry:  names[g.Entry()],
		Files:  make([]jsonFile, 0, len(files)),
		Cycles: make([][]string, 0, len(cycles)),
	}
	for _, path := range files {
		imports := make([]string, 0, len(adjacency[path]))
		for _, dep := range adjacency[path] {
			imports = append(imports, names[dep])
		}
		out.Files = append(out.Files, jsonFile{Name: names[path], Path: path, Imports: imports})
	}
	for _, cycle := range cycles {
		named := make([]string, 0, len(cycle))
		for _, path := range cycle {
			named = append(named, names[path])
		}
		out.Cycles = append(out.Cycles, named)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GenerateURL returns false as JSON format does not support URL generation.
func (f *JSONFormatter) GenerateURL(output string) (string, bool) {
	return "", false
}
