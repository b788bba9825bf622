package domain

import "slices"

// TreeNode represents a node in a workspace tree for navigation
type TreeNode struct {
	ID         string
	Name       string
	Title      string
	Path       string
	Type       string
	Stage      Stage
	RoutePath  string
	Order      int
	Children   []*TreeNode
	IsExpanded bool
	Parent     *TreeNode
}

// IsRoot reports whether n is the synthetic workspace root
func (n *TreeNode) IsRoot() bool {
	return n.ID == ""
}

// Flatten returns all visible nodes in the tree (for list rendering)
func (n *TreeNode) Flatten() []*TreeNode {
	var result []*TreeNode
	n.flattenRecursive(&result)
	return result
}

func (n *TreeNode) flattenRecursive(result *[]*TreeNode) {
	*result = append(*result, n)
	if n.IsExpanded {
		for _, child := range n.Children {
			child.flattenRecursive(result)
		}
	}
}

// Depth returns the depth of this node in the tree
func (n *TreeNode) Depth() int {
	depth := 0
	current := n.Parent
	for current != nil {
		depth++
		current = current.Parent
	}
	return depth
}

// Toggle expands or collapses the node
func (n *TreeNode) Toggle() {
	n.IsExpanded = !n.IsExpanded
}

// Expand sets the node as expanded
func (n *TreeNode) Expand() {
	n.IsExpanded = true
}

// Collapse sets the node as collapsed
func (n *TreeNode) Collapse() {
	n.IsExpanded = false
}

// ExpandAll expands the node and every descendant
func (n *TreeNode) ExpandAll() {
	n.IsExpanded = true
	for _, child := range n.Children {
		child.ExpandAll()
	}
}

// Find returns the node with the given id in the subtree
func (n *TreeNode) Find(id string) *TreeNode {
	if n.ID == id {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// SortChildren orders children by order weight, then path
func (n *TreeNode) SortChildren() {
	slices.SortFunc(n.Children, func(a, b *TreeNode) int {
		if a.Order != b.Order {
			return a.Order - b.Order
		}
		if a.Path < b.Path {
			return -1
		}
		if a.Path > b.Path {
			return 1
		}
		return 0
	})
	for _, child := range n.Children {
		child.SortChildren()
	}
}

// BuildTree arranges nodes (any order) into a tree under a synthetic root.
// locale selects which localization feeds Title, Stage and RoutePath.
func BuildTree(nodes []*Node, locale string) *TreeNode {
	root := &TreeNode{Name: "/", Path: RootPath, IsExpanded: true}
	byID := make(map[string]*TreeNode, len(nodes))

	for _, n := range nodes {
		tn := &TreeNode{
			ID:    n.ID,
			Name:  n.Name,
			Path:  n.Path,
			Type:  n.Type,
			Order: n.Order,
		}
		if loc := n.Localization(locale); loc != nil {
			tn.Title = loc.Title
			tn.Stage = loc.Stage
			tn.RoutePath = loc.RoutePath
		}
		byID[n.ID] = tn
	}

	for _, n := range nodes {
		tn := byID[n.ID]
		parent, ok := byID[n.ParentID]
		if !ok {
			parent = root
		}
		tn.Parent = parent
		parent.Children = append(parent.Children, tn)
	}

	root.SortChildren()
	return root
}
