// Package importgraph records which stylesheet imports which during a bundling run.
package importgraph

import (
	"errors"
	"fmt"
	"sort"

	graphlib "github.com/dominikbraun/graph"
)

// Graph is a directed import graph keyed by absolute file path.
// An edge A -> B means A contains an @import that resolved to B.
type Graph struct {
	g     graphlib.Graph[string, string]
	entry string
}

// New creates an empty import graph.
func New() *Graph {
	return &Graph{g: graphlib.New(graphlib.StringHash, graphlib.Directed())}
}

// Entry returns the first file added to the graph.
func (g *Graph) Entry() string {
	return g.entry
}

// AddFile adds a file node. Adding a file twice is not an error.
func (g *Graph) AddFile(path string) error {
	if err := g.g.AddVertex(path); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
		return fmt.Errorf("failed to add %s to import graph: %w", path, err)
	}
	if g.entry == "" {
		g.entry = path
	}
	return nil
}

// AddImport records that from imports to. It reports whether the edge closes a
// cycle, which includes a file importing itself. Recording the same edge twice is
// not an error.
func (g *Graph) AddImport(from, to string) (bool, error) {
	if err := g.AddFile(from); err != nil {
		return false, err
	}
	if err := g.AddFile(to); err != nil {
		return false, err
	}

	cycle, err := graphlib.CreatesCycle(g.g, from, to)
	if err != nil {
		return false, fmt.Errorf("failed to check import %s -> %s: %w", from, to, err)
	}

	if err := g.g.AddEdge(from, to); err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
		return false, fmt.Errorf("failed to add import %s -> %s: %w", from, to, err)
	}

	return cycle, nil
}

// HasFile reports whether path is a node of the graph.
func (g *Graph) HasFile(path string) bool {
	_, err := g.g.Vertex(path)
	return err == nil
}

// Files returns every file in the graph, sorted.
func (g *Graph) Files() []string {
	adjacency, err := g.g.AdjacencyMap()
	if err != nil {
		return nil
	}

	files := make([]string, 0, len(adjacency))
	for file := range adjacency {
		files = append(files, file)
	}
	sort.Strings(files)
	return files
}

// Imports returns the sorted direct imports of path.
func (g *Graph) Imports(path string) []string {
	return g.AdjacencyList()[path]
}

// AdjacencyList returns a sorted copy of the graph as file -> imported files.
func (g *Graph) AdjacencyList() map[string][]string {
	adjacency, err := g.g.AdjacencyMap()
	if err != nil {
		return map[string][]string{}
	}

	result := make(map[string][]string, len(adjacency))
	for file, targets := range adjacency {
		imports := make([]string, 0, len(targets))
		for target := range targets {
			imports = append(imports, target)
		}
		sort.Strings(imports)
		result[file] = imports
	}
	return result
}

// Cycles returns every import cycle as the sorted set of files taking part in it.
// A file importing itself is a cycle of one.
func (g *Graph) Cycles() ([][]string, error) {
	components, err := graphlib.StronglyConnectedComponents(g.g)
	if err != nil {
		return nil, fmt.Errorf("failed to compute import cycles: %w", err)
	}

	adjacency := g.AdjacencyList()
	var cycles [][]string
	for _, component := range components {
		if len(component) == 1 && !contains(adjacency[component[0]], component[0]) {
			continue
		}
		cycle := append([]string(nil), component...)
		sort.Strings(cycle)
		cycles = append(cycles, cycle)
	}

	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i][0] < cycles[j][0]
	})
	return cycles, nil
}

// CycleEdges returns the set of edges whose endpoints belong to the same cycle.
func (g *Graph) CycleEdges() (map[Edge]bool, error) {
	cycles, err := g.Cycles()
	if err != nil {
		return nil, err
	}

	member := make(map[string]int)
	for i, cycle := range cycles {
		for _, file := range cycle {
			member[file] = i + 1
		}
	}

	edges := make(map[Edge]bool)
	for from, targets := range g.AdjacencyList() {
		for _, to := range targets {
			if member[from] != 0 && member[from] == member[to] {
				edges[Edge{From: from, To: to}] = true
			}
		}
	}
	return edges, nil
}

// Edge identifies a directed import between two files.
type Edge struct {
	From string
	To   string
}

func contains(values []string, want string) bool {
	i := sort.SearchStrings(values, want)
	return i < len(values) && values[i] == want
}
