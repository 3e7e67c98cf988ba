package formatters

import (
	"path/filepath"
	"strings"

	"github.com/LegacyCodeHQ/lessbundle/importgraph"
)

// BaseDir returns opts.BaseDir, or the directory of the graph's entry file when unset.
func BaseDir(g *importgraph.Graph, opts RenderOptions) string {
	if opts.BaseDir != "" {
		return opts.BaseDir
	}
	if g.Entry() == "" {
		return ""
	}
	return filepath.Dir(g.Entry())
}

// BuildNodeNames returns stable, distinct display names for file paths.
// Paths under baseDir are shown relative to it. Paths outside it, such as
// files pulled in through the module root, fall back to their base name and
// are disambiguated by increasing path suffix depth.
func BuildNodeNames(paths []string, baseDir string) map[string]string {
	names := make(map[string]string, len(paths))
	taken := make(map[string]bool, len(paths))
	var outside []string

	for _, path := range paths {
		if rel, ok := relativeTo(path, baseDir); ok {
			names[path] = rel
			taken[rel] = true
			continue
		}
		outside = append(outside, path)
	}

	for _, path := range outside {
		for depth := 1; ; depth++ {
			suffix := pathSuffix(path, depth)
			if !taken[suffix] && !sharesSuffix(outside, path, depth) {
				names[path] = suffix
				taken[suffix] = true
				break
			}
			if suffix == pathSuffix(path, depth+1) {
				names[path] = filepath.ToSlash(filepath.Clean(path))
				taken[names[path]] = true
				break
			}
		}
	}

	return names
}

func relativeTo(path, baseDir string) (string, bool) {
	if baseDir == "" {
		return "", false
	}
	rel, err := filepath.Rel(baseDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func sharesSuffix(paths []string, path string, depth int) bool {
	suffix := pathSuffix(path, depth)
	for _, other := range paths {
		if other != path && pathSuffix(other, depth) == suffix {
			return true
		}
	}
	return false
}

func pathSuffix(path string, depth int) string {
	normalized := filepath.ToSlash(filepath.Clean(path))
	parts := strings.Split(strings.TrimPrefix(normalized, "/"), "/")
	if depth > len(parts) {
		depth = len(parts)
	}
	return strings.Join(parts[len(parts)-depth:], "/")
}
