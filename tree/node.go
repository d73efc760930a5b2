// Package tree turns a raw directory listing into an addressable tree of
// nodes keyed by their slash-separated path relative to the listed directory.
package tree

// Kind distinguishes files from directories.
type Kind string

const (
	File      Kind = "file"
	Directory Kind = "directory"
)

// Node is one file or directory of a normalized tree.
//
// Path is relative to the listed directory and always uses '/' separators.
// The root node has Path "" and its children have paths without a leading
// slash.
type Node struct {
	Name     string  `json:"name"`
	Path     string  `json:"path"`
	Kind     Kind    `json:"kind"`
	Children []*Node `json:"children,omitempty"`
}

// IsDir reports whether n is a directory.
func (n *Node) IsDir() bool {
	return n.Kind == Directory
}

// IsRoot reports whether n is the synthetic root of a tree.
func (n *Node) IsRoot() bool {
	return n.Path == ""
}

// Entry is an element of a raw nested listing, as produced by a directory
// lister. Path is a host path (any separator); Err records a failure to read
// the entry's children.
type Entry struct {
	Name     string
	Path     string
	IsDir    bool
	Children []Entry
	Err      error
}

// Walk calls fn for n and every node below it in pre-order. Returning
// SkipChildren from fn skips the children of the current node.
func Walk(n *Node, fn func(*Node) error) error {
	if n == nil {
		return nil
	}
	err := fn(n)
	if err == SkipChildren {
		return nil
	}
	if err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := Walk(child, fn); err != nil {
			return err
		}
	}
	return nil
}

// ChildPath joins a parent path and a child name.
func ChildPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}
