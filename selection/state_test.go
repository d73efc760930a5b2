package selection

import (
	"testing"

	"github.com/hayeah/repopick/defaults"
	"github.com/hayeah/repopick/tree"
	"github.com/stretchr/testify/assert"
)

func sampleIndex(t *testing.T) *tree.Index {
	t.Helper()
	root, err := tree.Normalize([]tree.Entry{
		{Name: "src", IsDir: true, Children: []tree.Entry{
			{Name: "a.ts"},
			{Name: "c.ts"},
			{Name: "lib", IsDir: true, Children: []tree.Entry{
				{Name: "b.ts"},
			}},
		}},
		{Name: "docs", IsDir: true, Children: []tree.Entry{
			{Name: "readme.md"},
		}},
		{Name: "main.go"},
	}, "proj")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	return tree.NewIndex(root)
}

func TestToggle_File(t *testing.T) {
	assert := assert.New(t)

	s := New(sampleIndex(t))

	change := s.Toggle("main.go", tree.File, true)
	assert.Equal([]string{"main.go"}, change.Paths)
	assert.Empty(change.Expand)
	assert.True(s.IsSelected("main.go"))
	assert.Equal(Snapshot{"main.go": tree.File}, s.Snapshot())

	change = s.Toggle("main.go", tree.File, false)
	assert.Equal([]string{"main.go"}, change.Paths)
	assert.Equal(0, s.Len())
}

func TestToggle_DirectoryPropagation(t *testing.T) {
	ix := sampleIndex(t)

	for _, n := range ix.Nodes() {
		if !n.IsDir() {
			continue
		}
		t.Run("dir="+n.Path, func(t *testing.T) {
			assert := assert.New(t)

			s := New(ix)
			change := s.Toggle(n.Path, tree.Directory, true)

			assert.True(s.IsSelected(n.Path))
			want := Snapshot{n.Path: tree.Directory}
			for _, d := range ix.Descendants(n.Path) {
				want[d.Path] = d.Kind
			}
			assert.Equal(want, s.Snapshot())
			assert.Len(change.Paths, len(want))
			assert.Contains(change.Expand, n.Path)

			change = s.Toggle(n.Path, tree.Directory, false)
			assert.Equal(0, s.Len())
			assert.Len(change.Paths, len(want))
			assert.Empty(change.Expand)
		})
	}
}

func TestToggle_ExpandListsDescendantDirectories(t *testing.T) {
	assert := assert.New(t)

	s := New(sampleIndex(t))

	change := s.Toggle("", tree.Directory, true)
	assert.Equal([]string{"", "docs", "src", "src/lib"}, change.Expand)

	change = s.Toggle("src", tree.Directory, false)
	assert.Nil(change.Expand)
	assert.Equal([]string{"src", "src/lib", "src/lib/b.ts", "src/a.ts", "src/c.ts"}, change.Paths)
	assert.True(s.IsSelected(""))
	assert.True(s.IsSelected("docs/readme.md"))
	assert.False(s.IsSelected("src/a.ts"))
}

func TestToggle_UncheckFileInsideCheckedDirectory(t *testing.T) {
	assert := assert.New(t)

	s := New(sampleIndex(t))
	s.Toggle("src", tree.Directory, true)
	s.Toggle("src/a.ts", tree.File, false)

	assert.True(s.IsSelected("src"))
	assert.False(s.IsSelected("src/a.ts"))
	assert.True(s.IsSelected("src/c.ts"))
}

func TestToggle_Ignored(t *testing.T) {
	assert := assert.New(t)

	s := New(sampleIndex(t))

	assert.Equal(Change{}, s.Toggle("nope.go", tree.File, true))
	assert.Equal(Change{}, s.Toggle("src", tree.File, true))
	assert.Equal(Change{}, s.Toggle("main.go", tree.Directory, true))
	assert.Equal(0, s.Len())
}

func TestSnapshot_IsCopy(t *testing.T) {
	assert := assert.New(t)

	s := New(sampleIndex(t))
	s.Toggle("main.go", tree.File, true)

	snap := s.Snapshot()
	delete(snap, "main.go")
	assert.True(s.IsSelected("main.go"))
}

func TestSnapshot_Partitions(t *testing.T) {
	assert := assert.New(t)

	snap := Snapshot{"src/a.ts": tree.File, "docs": tree.Directory, "b.go": tree.File}
	assert.Equal([]string{"b.go", "src/a.ts"}, snap.Files())
	assert.Equal([]string{"docs"}, snap.Dirs())
	assert.Equal([]string{"b.go", "docs", "src/a.ts"}, snap.Paths())
	assert.True(snap.Has("docs"))
}

func TestApplyDefaults(t *testing.T) {
	d := defaults.NewPathSet([]string{"src/a.ts", "src/lib/b.ts", "missing.go"})

	cases := []struct {
		name       string
		filterMode bool
		want       Snapshot
	}{
		{
			name:       "filter mode off",
			filterMode: false,
			want: Snapshot{
				"src/a.ts":     tree.File,
				"src/lib/b.ts": tree.File,
			},
		},
		{
			name:       "filter mode on",
			filterMode: true,
			want: Snapshot{
				"":             tree.Directory,
				"src":          tree.Directory,
				"src/lib":      tree.Directory,
				"src/a.ts":     tree.File,
				"src/lib/b.ts": tree.File,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			s := New(sampleIndex(t))
			s.ApplyDefaults(d, tc.filterMode)
			assert.Equal(tc.want, s.Snapshot())
		})
	}
}

func TestReset(t *testing.T) {
	assert := assert.New(t)

	s := New(sampleIndex(t))
	s.SelectAll()
	assert.Equal(s.Index().Len(), s.Len())

	other := tree.NewIndex(&tree.Node{Kind: tree.Directory, Children: []*tree.Node{
		{Name: "x.go", Path: "x.go", Kind: tree.File},
	}})
	s.Reset(other)
	assert.Equal(0, s.Len())
	assert.Equal(Change{}, s.Toggle("main.go", tree.File, true))
	assert.Equal([]string{"x.go"}, s.Toggle("x.go", tree.File, true).Paths)

	s.Clear()
	assert.Equal(0, s.Len())
}
