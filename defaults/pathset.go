// Package defaults holds the set of files the packaging tool would include
// on its own, and the tree operations driven by it.
package defaults

import (
	"path"
	"strings"

	"github.com/hayeah/repopick/internal/set"
)

// PathSet is an immutable set of relative file paths considered default.
// It is replaced wholesale on every fetch and never mutated in place.
type PathSet struct {
	files *set.Set[string]
	// dirs holds every proper ancestor directory of a file in files.
	dirs *set.Set[string]
}

// NewPathSet normalizes paths to forward slashes without a leading "./".
// Empty entries are ignored.
func NewPathSet(paths []string) PathSet {
	files := set.New[string]()
	dirs := set.New[string]()
	for _, p := range paths {
		p = normalize(p)
		if p == "" {
			continue
		}
		files.Add(p)
		for dir := path.Dir(p); dir != "." && dir != "/"; dir = path.Dir(dir) {
			if dirs.Contains(dir) {
				break
			}
			dirs.Add(dir)
		}
	}
	return PathSet{files: files, dirs: dirs}
}

func normalize(p string) string {
	p = strings.TrimSpace(strings.ReplaceAll(p, `\`, "/"))
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return strings.TrimPrefix(p, "/")
}

// Has reports whether p is a default path.
func (d PathSet) Has(p string) bool {
	return d.files.Contains(p)
}

// Len returns the number of default paths.
func (d PathSet) Len() int {
	return d.files.Len()
}

// Sorted returns the default paths in lexical order.
func (d PathSet) Sorted() []string {
	if d.files == nil {
		return nil
	}
	return set.Sorted(d.files)
}

// ContainsUnder reports whether some default path has the prefix dir + "/".
// The root ("") contains every default.
func (d PathSet) ContainsUnder(dir string) bool {
	if dir == "" {
		return d.Len() > 0
	}
	return d.dirs.Contains(dir)
}
