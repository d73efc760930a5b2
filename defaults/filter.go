package defaults

import "github.com/hayeah/repopick/tree"

// FilterToDefaults returns a copy of root keeping only default files and the
// directories that lead to them. The root is always returned, possibly with
// no children. The input tree is not modified.
func FilterToDefaults(root *tree.Node, d PathSet) *tree.Node {
	if root == nil {
		return nil
	}
	out := &tree.Node{
		Name:     root.Name,
		Path:     root.Path,
		Kind:     tree.Directory,
		Children: filterChildren(root.Children, d),
	}
	return out
}

func filterChildren(children []*tree.Node, d PathSet) []*tree.Node {
	kept := make([]*tree.Node, 0, len(children))
	for _, child := range children {
		if n := filterNode(child, d); n != nil {
			kept = append(kept, n)
		}
	}
	return kept
}

// filterNode returns nil when the node should be pruned.
func filterNode(n *tree.Node, d PathSet) *tree.Node {
	if !n.IsDir() {
		if !d.Has(n.Path) {
			return nil
		}
		return &tree.Node{Name: n.Name, Path: n.Path, Kind: tree.File}
	}

	children := filterChildren(n.Children, d)
	if len(children) == 0 {
		return nil
	}
	return &tree.Node{Name: n.Name, Path: n.Path, Kind: tree.Directory, Children: children}
}

// Annotation marks a node for display.
type Annotation struct {
	IsDefault       bool
	ContainsDefault bool
}

// Annotate reports whether a file is a default, or whether a directory has a
// default somewhere below it.
func Annotate(n *tree.Node, d PathSet) Annotation {
	if n.IsDir() {
		return Annotation{ContainsDefault: ContainsDefault(n.Path, d)}
	}
	return Annotation{IsDefault: d.Has(n.Path)}
}

// ContainsDefault reports whether some default path lies under dir.
func ContainsDefault(dir string, d PathSet) bool {
	return d.ContainsUnder(dir)
}
