package repomix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionsArgs(t *testing.T) {
	cases := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "whole directory",
			opts: Options{Directories: []string{"/work/proj"}},
			want: []string{"/work/proj", "--stdout"},
		},
		{
			name: "everything",
			opts: Options{
				Directories:       []string{"/work/my proj"},
				Include:           "src/a.ts,docs/**",
				Ignore:            "**/*.snap",
				NoGitignore:       true,
				NoDefaultPatterns: true,
				Style:             StyleXML,
				Copy:              true,
				RemoveComments:    true,
				RemoveEmptyLines:  true,
			},
			want: []string{
				"/work/my proj",
				"--include", "src/a.ts,docs/**",
				"-i", "**/*.snap",
				"--no-gitignore",
				"--no-default-patterns",
				"--style", "xml",
				"--copy",
				"--remove-comments",
				"--remove-empty-lines",
				"--stdout",
			},
		},
		{
			name: "parsable to file",
			opts: Options{Directories: []string{"d"}, Style: StylePlain, ParsableStyle: true, Output: "/tmp/out.txt"},
			want: []string{"d", "--style", "plain", "--parsable-style", "-o", "/tmp/out.txt"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.opts.Args())
		})
	}
}

func TestParseStyle(t *testing.T) {
	assert := assert.New(t)

	s, err := ParseStyle("")
	assert.NoError(err)
	assert.Equal(StylePlain, s)

	s, err = ParseStyle("Markdown")
	assert.NoError(err)
	assert.Equal(StyleMarkdown, s)

	_, err = ParseStyle("json")
	assert.Error(err)

	assert.Equal(StyleMarkdown, StylePlain.Next())
	assert.Equal(StyleXML, StyleMarkdown.Next())
	assert.Equal(StylePlain, StyleXML.Next())
	assert.Equal(".md", StyleMarkdown.Ext())
}
