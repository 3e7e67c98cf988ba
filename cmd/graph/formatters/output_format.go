package formatters

import "strings"

// OutputFormat represents an output format type
type OutputFormat string

const (
	OutputFormatDOT     OutputFormat = "dot"
	OutputFormatJSON    OutputFormat = "json"
	OutputFormatMermaid OutputFormat = "mermaid"
)

var outputFormats = []OutputFormat{OutputFormatDOT, OutputFormatJSON, OutputFormatMermaid}

// String returns the string representation of the format
func (f OutputFormat) String() string {
	return string(f)
}

// ParseOutputFormat converts a format name into an OutputFormat. Matching ignores case.
func ParseOutputFormat(name string) (OutputFormat, bool) {
	normalized := OutputFormat(strings.ToLower(strings.TrimSpace(name)))
	for _, f := range outputFormats {
		if f == normalized {
			return f, true
		}
	}
	return "", false
}

// SupportedFormats returns the accepted format names as a comma separated list.
func SupportedFormats() string {
	names := make([]string, 0, len(outputFormats))
	for _, f := range outputFormats {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}
