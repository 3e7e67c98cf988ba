package bundle

import "strings"

// Segment is a contiguous run of literal lines from one source file, bounded by
// import statements or by the start and end of the file.
type Segment struct {
	File  string
	Lines []string
}

// Assemble flattens segments into output lines.
//
// A blank line is dropped while no non-blank line precedes it, which removes the
// leading blanks of the output and collapses blank runs to a single line. Trailing
// blank lines are stripped and, when there is content, one empty line is appended
// so that the joined text ends with exactly one newline.
func Assemble(segments []Segment) []string {
	var output []string
	previous := ""

	for _, segment := range segments {
		for _, line := range segment.Lines {
			trimmed := strings.TrimSpace(line)
			if previous == "" && trimmed == "" {
				continue
			}
			output = append(output, line)
			previous = trimmed
		}
	}

	output = trimTrailingBlankLines(output)
	if len(output) > 0 {
		output = append(output, "")
	}
	return output
}

func trimTrailingBlankLines(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// splitLines splits file content on CRLF or LF and trims the first line, which
// drops a UTF-8 byte order mark or stray leading whitespace.
func splitLines(content string) []string {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	lines[0] = strings.TrimSpace(strings.TrimPrefix(lines[0], "\ufeff"))
	return lines
}
