// Package selection tracks which tree paths the user has checked.
//
// State is not safe for concurrent use; it is driven from the UI update loop.
package selection

import (
	"sort"

	"github.com/hayeah/repopick/defaults"
	"github.com/hayeah/repopick/tree"
)

// Snapshot maps a relative path to the kind it was selected as. The key ""
// with kind Directory selects the whole tree.
type Snapshot map[string]tree.Kind

// Has reports whether path is selected.
func (s Snapshot) Has(path string) bool {
	_, ok := s[path]
	return ok
}

// Paths returns all selected paths in lexical order.
func (s Snapshot) Paths() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Files returns the selected file paths in lexical order.
func (s Snapshot) Files() []string {
	return s.ofKind(tree.File)
}

// Dirs returns the selected directory paths in lexical order.
func (s Snapshot) Dirs() []string {
	return s.ofKind(tree.Directory)
}

func (s Snapshot) ofKind(kind tree.Kind) []string {
	var out []string
	for p, k := range s {
		if k == kind {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// Change describes the effect of a toggle.
type Change struct {
	// Paths whose selection changed, in tree order.
	Paths []string
	// Expand lists directories the view should expand. Only set when a
	// directory is turned on.
	Expand []string
}

// State is the selection over one indexed tree.
type State struct {
	idx      *tree.Index
	selected map[string]tree.Kind
}

// New returns an empty selection over idx.
func New(idx *tree.Index) *State {
	s := &State{}
	s.Reset(idx)
	return s
}

// Reset drops every entry and rebinds the state to idx.
func (s *State) Reset(idx *tree.Index) {
	if idx == nil {
		idx = tree.NewIndex(nil)
	}
	s.idx = idx
	s.selected = make(map[string]tree.Kind)
}

// Index returns the tree the state is bound to.
func (s *State) Index() *tree.Index {
	return s.idx
}

// Toggle checks or unchecks path. Checking a directory checks all of its
// descendants; unchecking removes them. Paths that are not in the tree, or
// whose kind does not match, are ignored.
func (s *State) Toggle(path string, kind tree.Kind, checked bool) Change {
	n, ok := s.idx.Node(path)
	if !ok || n.Kind != kind {
		return Change{}
	}

	var change Change
	s.set(n, checked, &change)

	if kind != tree.Directory {
		return change
	}

	if checked {
		change.Expand = append(change.Expand, n.Path)
	}
	for _, d := range s.idx.Descendants(path) {
		s.set(d, checked, &change)
		if checked && d.IsDir() {
			change.Expand = append(change.Expand, d.Path)
		}
	}
	return change
}

func (s *State) set(n *tree.Node, checked bool, change *Change) {
	_, had := s.selected[n.Path]
	if checked {
		s.selected[n.Path] = n.Kind
		if !had {
			change.Paths = append(change.Paths, n.Path)
		}
		return
	}
	if had {
		delete(s.selected, n.Path)
		change.Paths = append(change.Paths, n.Path)
	}
}

// IsSelected reports whether path is checked.
func (s *State) IsSelected(path string) bool {
	_, ok := s.selected[path]
	return ok
}

// Len returns the number of checked paths.
func (s *State) Len() int {
	return len(s.selected)
}

// Snapshot returns a copy of the current selection.
func (s *State) Snapshot() Snapshot {
	out := make(Snapshot, len(s.selected))
	for p, k := range s.selected {
		out[p] = k
	}
	return out
}

// ApplyDefaults checks every default file in the tree. With filterMode on,
// directories containing a default are checked as well, including the root.
func (s *State) ApplyDefaults(d defaults.PathSet, filterMode bool) {
	for _, n := range s.idx.Nodes() {
		if n.IsDir() {
			if filterMode && defaults.ContainsDefault(n.Path, d) {
				s.selected[n.Path] = tree.Directory
			}
			continue
		}
		if d.Has(n.Path) {
			s.selected[n.Path] = tree.File
		}
	}
}

// SelectAll checks every node, root included.
func (s *State) SelectAll() {
	for _, n := range s.idx.Nodes() {
		s.selected[n.Path] = n.Kind
	}
}

// Clear unchecks everything.
func (s *State) Clear() {
	clear(s.selected)
}
