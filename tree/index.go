package tree

// Index is a flat, path-addressable view of a tree. Nodes are stored in
// pre-order so that every subtree occupies a contiguous range; descendant
// queries are slices of that range.
type Index struct {
	root    *Node
	nodes   []*Node
	parents []int
	pos     map[string]int
	end     []int // exclusive end of each node's subtree in nodes
}

// NewIndex indexes every node reachable from root. If two nodes share a
// path, the first one in pre-order wins and the duplicate subtree is skipped.
func NewIndex(root *Node) *Index {
	ix := &Index{
		root: root,
		pos:  make(map[string]int),
	}
	if root != nil {
		ix.add(root, -1)
	}
	return ix
}

func (ix *Index) add(n *Node, parent int) {
	if _, dup := ix.pos[n.Path]; dup {
		return
	}
	i := len(ix.nodes)
	ix.nodes = append(ix.nodes, n)
	ix.parents = append(ix.parents, parent)
	ix.end = append(ix.end, 0)
	ix.pos[n.Path] = i
	for _, child := range n.Children {
		ix.add(child, i)
	}
	ix.end[i] = len(ix.nodes)
}

// Root returns the indexed root node.
func (ix *Index) Root() *Node {
	return ix.root
}

// Len returns the number of indexed nodes, root included.
func (ix *Index) Len() int {
	return len(ix.nodes)
}

// Node looks up a node by path.
func (ix *Index) Node(path string) (*Node, bool) {
	i, ok := ix.pos[path]
	if !ok {
		return nil, false
	}
	return ix.nodes[i], true
}

// Has reports whether path is in the tree.
func (ix *Index) Has(path string) bool {
	_, ok := ix.pos[path]
	return ok
}

// Parent returns the path of the node's parent. The root has no parent.
func (ix *Index) Parent(path string) (string, bool) {
	i, ok := ix.pos[path]
	if !ok || ix.parents[i] < 0 {
		return "", false
	}
	return ix.nodes[ix.parents[i]].Path, true
}

// Ancestors returns the paths from the root down to the node's parent.
func (ix *Index) Ancestors(path string) []string {
	i, ok := ix.pos[path]
	if !ok {
		return nil
	}
	var out []string
	for p := ix.parents[i]; p >= 0; p = ix.parents[p] {
		out = append(out, ix.nodes[p].Path)
	}
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out
}

// Descendants returns every node below path in pre-order, excluding the
// node itself. The returned slice must not be modified.
func (ix *Index) Descendants(path string) []*Node {
	i, ok := ix.pos[path]
	if !ok {
		return nil
	}
	return ix.nodes[i+1 : ix.end[i]]
}

// Nodes returns all nodes in pre-order. The returned slice must not be
// modified.
func (ix *Index) Nodes() []*Node {
	return ix.nodes
}

// Files returns the paths of all file nodes in pre-order.
func (ix *Index) Files() []string {
	var out []string
	for _, n := range ix.nodes {
		if !n.IsDir() {
			out = append(out, n.Path)
		}
	}
	return out
}
