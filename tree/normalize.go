package tree

import (
	"path/filepath"
	"sort"
	"strings"
)

// Normalize builds a synthetic root directory for basePath whose children
// are the normalized entries. Paths are made relative to basePath and use
// forward slashes regardless of the host separator.
//
// Entries whose Err is set become directories with no children; every such
// failure is reported in a *TraversalError returned together with the
// partial tree. Entries that resolve outside basePath are dropped.
func Normalize(entries []Entry, basePath string) (*Node, error) {
	root := &Node{
		Name:     rootName(basePath),
		Path:     "",
		Kind:     Directory,
		Children: []*Node{},
	}

	n := normalizer{base: filepath.Clean(basePath)}
	root.Children = n.children("", entries)

	if len(n.failures) > 0 {
		return root, &TraversalError{Failures: n.failures}
	}
	return root, nil
}

type normalizer struct {
	base     string
	failures []Failure
}

func (n *normalizer) children(parent string, entries []Entry) []*Node {
	nodes := make([]*Node, 0, len(entries))
	for _, e := range entries {
		rel, ok := n.relPath(parent, e)
		if !ok {
			continue
		}

		node := &Node{
			Name: nameOf(rel, e.Name),
			Path: rel,
			Kind: File,
		}
		if e.IsDir {
			node.Kind = Directory
			if e.Err != nil {
				n.failures = append(n.failures, Failure{Path: rel, Err: e.Err})
				node.Children = []*Node{}
			} else {
				node.Children = n.children(rel, e.Children)
			}
		}
		nodes = append(nodes, node)
	}
	sortNodes(nodes)
	return nodes
}

// relPath computes the slash-separated path of e relative to the base. An
// entry without a host path is placed under its parent by name.
func (n *normalizer) relPath(parent string, e Entry) (string, bool) {
	if e.Path == "" {
		if e.Name == "" {
			return "", false
		}
		return ChildPath(parent, e.Name), true
	}

	rel, err := filepath.Rel(n.base, filepath.Clean(e.Path))
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}

func nameOf(rel, name string) string {
	if name != "" {
		return name
	}
	if i := strings.LastIndex(rel, "/"); i >= 0 {
		return rel[i+1:]
	}
	return rel
}

func rootName(basePath string) string {
	name := filepath.Base(filepath.Clean(basePath))
	if name == "." || name == string(filepath.Separator) {
		return basePath
	}
	return name
}

// sortNodes orders directories before files, each group by name.
func sortNodes(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].IsDir() != nodes[j].IsDir() {
			return nodes[i].IsDir()
		}
		return nodes[i].Name < nodes[j].Name
	})
}
