package listing

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/hayeah/repopick/ignore"
	"github.com/hayeah/repopick/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func normalizedPaths(t *testing.T, entries []tree.Entry, root string) []string {
	t.Helper()
	node, err := tree.Normalize(entries, root)
	require.NoError(t, err)

	var out []string
	tree.Walk(node, func(n *tree.Node) error {
		if n.Path != "" {
			out = append(out, n.Path)
		}
		return nil
	})
	return out
}

func TestListDirectory(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		".gitignore":         "*.log\n",
		".repomixignore":     "tmp/\n",
		".git/HEAD":          "ref: refs/heads/main\n",
		"main.go":            "package main\n",
		"debug.log":          "x",
		"src/a.ts":           "a",
		"src/lib/b.ts":       "b",
		"tmp/scratch.txt":    "s",
		"docs/readme.md":     "r",
		"docs/build/out.log": "o",
	})

	cases := []struct {
		name string
		opts ignore.Options
		want []string
	}{
		{
			name: "default ignore files",
			opts: ignore.DefaultOptions,
			want: []string{
				"docs", "docs/build", "docs/readme.md",
				"src", "src/lib", "src/lib/b.ts", "src/a.ts",
				".gitignore", ".repomixignore", "main.go",
			},
		},
		{
			name: "no ignore files",
			opts: ignore.Options{},
			want: []string{
				"docs", "docs/build", "docs/build/out.log", "docs/readme.md",
				"src", "src/lib", "src/lib/b.ts", "src/a.ts",
				"tmp", "tmp/scratch.txt",
				".gitignore", ".repomixignore", "debug.log", "main.go",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			l := &Lister{Ignore: tc.opts}
			entries, err := l.ListDirectory(context.Background(), root)
			assert.NoError(err)
			assert.Equal(tc.want, normalizedPaths(t, entries, root))
		})
	}
}

func TestListDirectory_MissingRoot(t *testing.T) {
	assert := assert.New(t)

	l := NewLister(nil)
	_, err := l.ListDirectory(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(err, os.ErrNotExist)
}

func TestListDirectory_UnreadableSubdirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	assert := assert.New(t)

	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"ok.txt":          "ok",
		"locked/file.txt": "x",
	})
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	entries, err := NewLister(nil).ListDirectory(context.Background(), root)
	assert.NoError(err)

	node, err := tree.Normalize(entries, root)
	var traversal *tree.TraversalError
	assert.ErrorAs(err, &traversal)
	assert.Len(traversal.Failures, 1)
	assert.Equal("locked", traversal.Failures[0].Path)

	ix := tree.NewIndex(node)
	assert.True(ix.Has("ok.txt"))
	assert.True(ix.Has("locked"))
	assert.False(ix.Has("locked/file.txt"))
}

func TestListDirectory_Cancelled(t *testing.T) {
	assert := assert.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLister(nil).ListDirectory(ctx, t.TempDir())
	assert.ErrorIs(err, context.Canceled)
}
