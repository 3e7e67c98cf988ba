package bundle

import (
	"os"
	"path/filepath"
	"strings"
)

const aliasMarker = "~"

// resolveImportPath maps an import path, already carrying its extension, to an
// absolute path. Paths starting with "~" are taken relative to moduleRoot, all
// others relative to the directory of the importing file.
func resolveImportPath(importPath, importingFile, moduleRoot string) string {
	if strings.HasPrefix(importPath, aliasMarker) {
		return filepath.Join(moduleRoot, strings.TrimPrefix(importPath, aliasMarker))
	}
	if filepath.IsAbs(importPath) {
		return filepath.Clean(importPath)
	}
	return filepath.Join(filepath.Dir(importingFile), importPath)
}

// DefaultModuleRoot is the directory two levels above the one holding the
// running executable. It is used for "~" imports when no module root is set.
func DefaultModuleRoot() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Clean(filepath.Join(filepath.Dir(exe), "..", ".."))
}

// destinationPath replaces the extension of dest with primaryExt. A destination
// without extension gains one.
func destinationPath(dest, primaryExt string) (string, error) {
	absPath, err := filepath.Abs(dest)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(absPath, filepath.Ext(absPath)) + primaryExt, nil
}
