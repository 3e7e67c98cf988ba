package bundle

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssemble(t *testing.T) {
	tests := []struct {
		name     string
		segments [][]string
		want     []string
	}{
		{
			name:     "no segments",
			segments: nil,
			want:     nil,
		},
		{
			name:     "only blank lines",
			segments: [][]string{{"", "  "}, {"\t"}},
			want:     nil,
		},
		{
			name:     "leading blanks are dropped",
			segments: [][]string{{"", "", "a {}"}},
			want:     []string{"a {}", ""},
		},
		{
			name:     "blank after content is kept once",
			segments: [][]string{{"a {}", "", "", "b {}"}},
			want:     []string{"a {}", "", "b {}", ""},
		},
		{
			name:     "cursor carries across segments",
			segments: [][]string{{"a {}", ""}, {"", "b {}"}},
			want:     []string{"a {}", "", "b {}", ""},
		},
		{
			name:     "leading blanks of a later segment are dropped when nothing was emitted",
			segments: [][]string{{}, {"", ""}, {"", "b {}"}},
			want:     []string{"b {}", ""},
		},
		{
			name:     "indentation is preserved",
			segments: [][]string{{".a {", "  color: red;", "}"}},
			want:     []string{".a {", "  color: red;", "}", ""},
		},
		{
			name:     "trailing whitespace-only lines are stripped",
			segments: [][]string{{"a {}", "   "}},
			want:     []string{"a {}", ""},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var segments []Segment
			for _, lines := range tc.segments {
				segments = append(segments, Segment{Lines: lines})
			}

			assert.Equal(t, tc.want, Assemble(segments))
		})
	}
}

func TestAssemble_TextEndsWithSingleNewline(t *testing.T) {
	got := strings.Join(Assemble([]Segment{{Lines: []string{"a {}", "", "", ""}}}), "\n")

	assert.Equal(t, "a {}\n", got)
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{name: "lf", content: "a\nb\n", want: []string{"a", "b", ""}},
		{name: "crlf", content: "a\r\nb\r\n", want: []string{"a", "b", ""}},
		{name: "mixed", content: "a\r\nb\nc", want: []string{"a", "b", "c"}},
		{name: "first line is trimmed", content: "  a  \n  b  ", want: []string{"a", "  b  "}},
		{name: "byte order mark", content: "\ufeff@import 'x';\ny", want: []string{"@import 'x';", "y"}},
		{name: "empty", content: "", want: []string{""}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, splitLines(tc.content))
		})
	}
}
