package session

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/hayeah/repopick/repomix"
	"github.com/hayeah/repopick/selection"
	"github.com/hayeah/repopick/tree"
	"github.com/stretchr/testify/assert"
)

type fakeLister struct {
	entries []tree.Entry
	err     error
}

func (f *fakeLister) ListDirectory(ctx context.Context, root string) ([]tree.Entry, error) {
	return f.entries, f.err
}

type fakeFetcher struct {
	paths []string
	err   error
}

func (f *fakeFetcher) FetchDefaultPaths(ctx context.Context, dir string) ([]string, error) {
	return f.paths, f.err
}

func sampleEntries() []tree.Entry {
	return []tree.Entry{
		{Name: "src", IsDir: true, Children: []tree.Entry{
			{Name: "a.ts"},
			{Name: "c.ts"},
		}},
		{Name: "docs", IsDir: true, Children: []tree.Entry{
			{Name: "readme.md"},
		}},
	}
}

func load(t *testing.T, l *Loader) *Loaded {
	t.Helper()
	gen := l.Begin()
	loaded, err := l.Load(context.Background(), gen, t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return loaded
}

func TestLoader_Generations(t *testing.T) {
	assert := assert.New(t)

	l := NewLoader(&fakeLister{}, nil, nil)

	first := l.Begin()
	second := l.Begin()

	assert.Greater(second, first)
	assert.False(l.Accept(first))
	assert.True(l.Accept(second))
	assert.Equal(second, l.Current())
}

func TestLoader_StaleResultDiscarded(t *testing.T) {
	assert := assert.New(t)

	l := NewLoader(&fakeLister{entries: sampleEntries()}, nil, nil)

	gen := l.Begin()
	loaded, err := l.Load(context.Background(), gen, t.TempDir())
	assert.NoError(err)
	assert.Equal(gen, loaded.Generation)

	// another pick happens before the result is delivered
	l.Begin()
	assert.False(l.Accept(loaded.Generation))
}

func TestLoader_FetchFailureYieldsEmptyDefaults(t *testing.T) {
	assert := assert.New(t)

	fetchErr := &repomix.FetchDefaultsError{Dir: "x", Err: errors.New("repomix not found")}
	l := NewLoader(&fakeLister{entries: sampleEntries()}, &fakeFetcher{err: fetchErr}, nil)

	loaded := load(t, l)
	assert.Equal(0, loaded.Defaults.Len())
	assert.Len(loaded.Full.Children, 2)
}

func TestLoader_ListFailure(t *testing.T) {
	assert := assert.New(t)

	l := NewLoader(&fakeLister{err: os.ErrNotExist}, &fakeFetcher{paths: []string{"a"}}, nil)
	_, err := l.Load(context.Background(), l.Begin(), t.TempDir())
	assert.ErrorIs(err, os.ErrNotExist)
}

func TestLoader_PartialListing(t *testing.T) {
	assert := assert.New(t)

	entries := append(sampleEntries(), tree.Entry{Name: "locked", IsDir: true, Err: os.ErrPermission})
	l := NewLoader(&fakeLister{entries: entries}, nil, nil)

	loaded := load(t, l)
	var traversal *tree.TraversalError
	assert.ErrorAs(loaded.TraversalErr, &traversal)
	assert.True(tree.NewIndex(loaded.Full).Has("locked"))
}

func TestNew_AppliesDefaults(t *testing.T) {
	l := NewLoader(&fakeLister{entries: sampleEntries()}, &fakeFetcher{paths: []string{"src/a.ts", "src/b.ts"}}, nil)
	loaded := load(t, l)

	cases := []struct {
		name       string
		filterMode bool
		wantTree   []string
		wantSel    selection.Snapshot
	}{
		{
			name:       "filter on",
			filterMode: true,
			wantTree:   []string{"", "src", "src/a.ts"},
			wantSel: selection.Snapshot{
				"":         tree.Directory,
				"src":      tree.Directory,
				"src/a.ts": tree.File,
			},
		},
		{
			name:       "filter off",
			filterMode: false,
			wantTree:   []string{"", "docs", "docs/readme.md", "src", "src/a.ts", "src/c.ts"},
			wantSel:    selection.Snapshot{"src/a.ts": tree.File},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			s := New(loaded, tc.filterMode)

			var paths []string
			for _, n := range s.Index.Nodes() {
				paths = append(paths, n.Path)
			}
			assert.Equal(tc.wantTree, paths)
			assert.Equal(tc.wantSel, s.Selection.Snapshot())
		})
	}
}

func TestWithFilterMode_ResetsSelection(t *testing.T) {
	assert := assert.New(t)

	l := NewLoader(&fakeLister{entries: sampleEntries()}, &fakeFetcher{paths: []string{"src/a.ts"}}, nil)
	s := New(load(t, l), false)

	s.Selection.Toggle("docs", tree.Directory, true)
	assert.True(s.Selection.IsSelected("docs/readme.md"))

	filtered := s.WithFilterMode(true)
	assert.True(filtered.FilterActive())
	assert.False(filtered.Selection.IsSelected("docs/readme.md"))
	assert.True(filtered.Selection.IsSelected("src/a.ts"))
	assert.False(filtered.Index.Has("docs"))

	// the source session is untouched
	assert.True(s.Selection.IsSelected("docs/readme.md"))
	assert.True(s.Index.Has("docs"))
}

func TestFilterActive_NoDefaults(t *testing.T) {
	assert := assert.New(t)

	l := NewLoader(&fakeLister{entries: sampleEntries()}, &fakeFetcher{}, nil)
	s := New(load(t, l), true)

	assert.False(s.FilterActive())
	assert.True(s.Index.Has("docs/readme.md"))
	assert.Equal(0, s.Selection.Len())
}
