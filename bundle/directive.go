package bundle

import (
	"regexp"
	"strings"
)

const importKeyword = "@import "

var quotedPathRegex = regexp.MustCompile(`['"]([^'"]*)['"]`)

// isImportLine reports whether line is an import statement.
func isImportLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), importKeyword)
}

// parseImportPath extracts the first quoted path of an import statement.
// Media queries, "(reference)" style options and trailing semicolons are ignored.
func parseImportPath(line string) (string, bool) {
	matches := quotedPathRegex.FindStringSubmatch(line)
	if matches == nil {
		return "", false
	}
	return matches[1], true
}

// withExtension appends primaryExt unless path already ends with one of the
// accepted extensions.
func withExtension(path string, exts Extensions) string {
	if strings.HasSuffix(path, exts.Primary) || strings.HasSuffix(path, exts.Precompiled) {
		return path
	}
	return path + exts.Primary
}

// Extensions configures which import targets are taken as given.
type Extensions struct {
	// Primary is the native source extension, appended to imports that carry
	// neither extension.
	Primary string
	// Precompiled is the extension of already processed output.
	Precompiled string
}

// DefaultExtensions are the LESS source and CSS output extensions.
var DefaultExtensions = Extensions{Primary: ".less", Precompiled: ".css"}

// WithDefaults fills unset extensions from DefaultExtensions and adds missing leading dots.
func (e Extensions) WithDefaults() Extensions {
	if e.Primary == "" {
		e.Primary = DefaultExtensions.Primary
	}
	if e.Precompiled == "" {
		e.Precompiled = DefaultExtensions.Precompiled
	}
	e.Primary = normalizeExt(e.Primary)
	e.Precompiled = normalizeExt(e.Precompiled)
	return e
}

func normalizeExt(ext string) string {
	if strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}
