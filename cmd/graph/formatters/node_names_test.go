package formatters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildNodeNames(t *testing.T) {
	tests := []struct {
		name    string
		paths   []string
		baseDir string
		want    map[string]string
	}{
		{
			name:    "relative to base directory",
			paths:   []string{"/p/main.less", "/p/components/buttons.less"},
			baseDir: "/p",
			want: map[string]string{
				"/p/main.less":               "main.less",
				"/p/components/buttons.less": "components/buttons.less",
			},
		},
		{
			name:    "outside base directory uses base name",
			paths:   []string{"/p/main.less", "/mods/theme/base.less"},
			baseDir: "/p",
			want: map[string]string{
				"/p/main.less":          "main.less",
				"/mods/theme/base.less": "base.less",
			},
		},
		{
			name:    "outside files sharing a base name are disambiguated",
			paths:   []string{"/p/main.less", "/mods/a/vars.less", "/mods/b/vars.less"},
			baseDir: "/p",
			want: map[string]string{
				"/p/main.less":      "main.less",
				"/mods/a/vars.less": "a/vars.less",
				"/mods/b/vars.less": "b/vars.less",
			},
		},
		{
			name:    "outside file clashing with an inside name",
			paths:   []string{"/p/vars.less", "/mods/theme/vars.less"},
			baseDir: "/p",
			want: map[string]string{
				"/p/vars.less":          "vars.less",
				"/mods/theme/vars.less": "theme/vars.less",
			},
		},
		{
			name:    "no base directory",
			paths:   []string{"/a/x.less", "/b/x.less", "/b/y.less"},
			baseDir: "",
			want: map[string]string{
				"/a/x.less": "a/x.less",
				"/b/x.less": "b/x.less",
				"/b/y.less": "y.less",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BuildNodeNames(tc.paths, tc.baseDir))
		})
	}
}

func TestParseOutputFormat(t *testing.T) {
	f, ok := ParseOutputFormat(" Mermaid ")
	assert.True(t, ok)
	assert.Equal(t, OutputFormatMermaid, f)

	_, ok = ParseOutputFormat("svg")
	assert.False(t, ok)

	assert.Equal(t, "dot, json, mermaid", SupportedFormats())
}
