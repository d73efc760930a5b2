package tree

import (
	"fmt"
	"io"
)

// DiagramOptions controls WriteDiagram.
type DiagramOptions struct {
	// RootLabel replaces the root's name on the first line.
	RootLabel string
	// Marker returns a suffix printed after a node's name, e.g. " *".
	Marker func(n *Node) string
}

// WriteDiagram writes a tree-like structure of root to w:
//
//	proj
//	├── src/
//	│   └── a.go
//	└── README.md
func WriteDiagram(w io.Writer, root *Node, opts DiagramOptions) error {
	if root == nil {
		return nil
	}

	label := opts.RootLabel
	if label == "" {
		label = root.Name
	}
	if _, err := fmt.Fprintln(w, label+marker(root, opts)); err != nil {
		return err
	}

	var writeNode func(node *Node, prefix string, isLast bool) error
	writeNode = func(node *Node, prefix string, isLast bool) error {
		connector := "├── "
		if isLast {
			connector = "└── "
		}

		displayName := node.Name
		if node.IsDir() {
			displayName += "/"
		}

		if _, err := fmt.Fprintln(w, prefix+connector+displayName+marker(node, opts)); err != nil {
			return err
		}

		childPrefix := prefix + "│   "
		if isLast {
			childPrefix = prefix + "    "
		}
		for i, child := range node.Children {
			if err := writeNode(child, childPrefix, i == len(node.Children)-1); err != nil {
				return err
			}
		}
		return nil
	}

	for i, child := range root.Children {
		if err := writeNode(child, "", i == len(root.Children)-1); err != nil {
			return err
		}
	}
	return nil
}

func marker(n *Node, opts DiagramOptions) string {
	if opts.Marker == nil {
		return ""
	}
	return opts.Marker(n)
}
