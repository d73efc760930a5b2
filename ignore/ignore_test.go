package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestIsIgnored(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "*.log\nbuild/\n")
	writeFile(t, filepath.Join(root, "sub", ".gitignore"), "secret.txt\n")
	writeFile(t, filepath.Join(root, RepomixIgnoreFile), "fixtures/\n*.snap\n")

	cases := []struct {
		name  string
		opts  Options
		path  string
		isDir bool
		want  bool
	}{
		{"git dir", Options{}, ".git", true, true},
		{"root", DefaultOptions, "", true, false},
		{"plain file", DefaultOptions, "main.go", false, false},
		{"gitignored file", DefaultOptions, "debug.log", false, true},
		{"gitignored dir", DefaultOptions, "build", true, true},
		{"nested gitignore", DefaultOptions, "sub/secret.txt", false, true},
		{"nested gitignore elsewhere", DefaultOptions, "secret.txt", false, false},
		{"repomixignore dir", DefaultOptions, "fixtures", true, true},
		{"repomixignore glob", DefaultOptions, "a/b.snap", false, true},
		{"gitignore disabled", Options{RepomixIgnore: true}, "debug.log", false, false},
		{"repomixignore disabled", Options{Gitignore: true}, "a/b.snap", false, false},
		{"extra pattern", Options{Patterns: []string{"# comment", "", "vendor/"}}, "vendor", true, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			ig, err := New(root, tc.opts)
			assert.NoError(err)

			got, err := ig.IsIgnored(filepath.Join(root, filepath.FromSlash(tc.path)), tc.isDir)
			assert.NoError(err)
			assert.Equal(tc.want, got)
		})
	}
}

func TestNew_NoIgnoreFiles(t *testing.T) {
	assert := assert.New(t)

	root := t.TempDir()
	ig, err := New(root, DefaultOptions)
	assert.NoError(err)

	got, err := ig.IsIgnored(filepath.Join(root, "x.go"), false)
	assert.NoError(err)
	assert.False(got)
}
