package pattern

import (
	"errors"
	"testing"

	"github.com/hayeah/repopick/selection"
	"github.com/hayeah/repopick/tree"
	"github.com/stretchr/testify/assert"
)

func TestSynthesize(t *testing.T) {
	cases := []struct {
		name string
		sel  selection.Snapshot
		want Result
	}{
		{
			name: "file and directory",
			sel:  selection.Snapshot{"src/a.ts": tree.File, "docs": tree.Directory},
			want: Result{Include: "src/a.ts,docs/**", HasInclude: true},
		},
		{
			name: "root wins over everything",
			sel:  selection.Snapshot{"": tree.Directory, "src/a.ts": tree.File, "docs": tree.Directory},
			want: Result{UsesWholeRoot: true},
		},
		{
			name: "overlap kept",
			sel:  selection.Snapshot{"src": tree.Directory, "src/a.ts": tree.File, "src/b.ts": tree.File},
			want: Result{Include: "src/a.ts,src/b.ts,src/**", HasInclude: true},
		},
		{
			name: "nested directories sorted",
			sel:  selection.Snapshot{"src/lib": tree.Directory, "docs": tree.Directory, "src": tree.Directory},
			want: Result{Include: "docs/**,src/**,src/lib/**", HasInclude: true},
		},
		{
			name: "empty",
			sel:  selection.Snapshot{},
			want: Result{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			got := Synthesize(tc.sel)
			assert.Equal(tc.want, got)
			assert.Equal(got, Synthesize(tc.sel))
		})
	}
}

func TestValidate(t *testing.T) {
	assert := assert.New(t)

	err := Validate(selection.Snapshot{})
	var empty *EmptySelectionError
	assert.True(errors.As(err, &empty))
	assert.EqualError(err, "select at least one file or folder")

	assert.NoError(Validate(selection.Snapshot{"a": tree.File}))
}

func TestCoveredFiles(t *testing.T) {
	assert := assert.New(t)

	root, err := tree.Normalize([]tree.Entry{
		{Name: "src", IsDir: true, Children: []tree.Entry{
			{Name: "a.ts"},
			{Name: "c.ts"},
		}},
		{Name: "docs", IsDir: true, Children: []tree.Entry{
			{Name: "readme.md"},
		}},
		{Name: "main.go"},
	}, "proj")
	assert.NoError(err)
	idx := tree.NewIndex(root)

	files, err := CoveredFiles(Result{Include: "src/a.ts,docs/**", HasInclude: true}, idx)
	assert.NoError(err)
	assert.Equal([]string{"docs/readme.md", "src/a.ts"}, files)

	files, err = CoveredFiles(Result{UsesWholeRoot: true}, idx)
	assert.NoError(err)
	assert.Equal(idx.Files(), files)

	_, err = CoveredFiles(Result{Include: "src/[", HasInclude: true}, idx)
	assert.Error(err)
}

func TestCovers(t *testing.T) {
	assert := assert.New(t)

	r := Result{Include: "a.go,pkg/**", HasInclude: true}

	ok, err := Covers(r, "pkg/x/y.go")
	assert.NoError(err)
	assert.True(ok)

	ok, err = Covers(r, "b.go")
	assert.NoError(err)
	assert.False(ok)
}
