// Package testhelpers provides fixtures shared by tests in several packages.
package testhelpers

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/lessbundle/importgraph"
)

// Goldie creates a goldie instance storing golden files as testdata/*.gold.txt.
func Goldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t, goldie.WithNameSuffix(".gold.txt"))
}

// ImportGraph builds a graph whose entry is entry, adding edges in the given order.
func ImportGraph(t *testing.T, entry string, edges [][2]string) *importgraph.Graph {
	t.Helper()
	g := importgraph.New()
	require.NoError(t, g.AddFile(entry))
	for _, edge := range edges {
		_, err := g.AddImport(edge[0], edge[1])
		require.NoError(t, err)
	}
	return g
}

// SiteGraph is an acyclic stylesheet tree with an aliased import from outside
// the entry directory and a precompiled .css file.
func SiteGraph(t *testing.T) *importgraph.Graph {
	t.Helper()
	return ImportGraph(t, "/project/styles/main.less", [][2]string{
		{"/project/styles/main.less", "/project/styles/variables.less"},
		{"/project/styles/main.less", "/project/styles/mixins.less"},
		{"/project/styles/mixins.less", "/project/styles/variables.less"},
		{"/project/styles/main.less", "/project/styles/components/buttons.less"},
		{"/project/styles/components/buttons.less", "/project/styles/variables.less"},
		{"/project/styles/components/buttons.less", "/project/styles/mixins.less"},
		{"/project/styles/main.less", "/project/styles/vendor/normalize.css"},
		{"/project/styles/main.less", "/modules/theme/base.less"},
	})
}

// CycleGraph has a two-file cycle and a self-import.
func CycleGraph(t *testing.T) *importgraph.Graph {
	t.Helper()
	return ImportGraph(t, "/project/main.less", [][2]string{
		{"/project/main.less", "/project/a.less"},
		{"/project/a.less", "/project/b.less"},
		{"/project/b.less", "/project/a.less"},
		{"/project/main.less", "/project/c.less"},
		{"/project/c.less", "/project/c.less"},
	})
}
