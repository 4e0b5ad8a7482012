package chaff

// NodeRef is a non-owning locator for a node occurrence: the index of its
// page within a domain's success set plus the child-index path from the
// page's root. It never becomes a second owner of the node.
type NodeRef struct {
	Page int   `json:"page"`
	Path []int `json:"path"`
}

// Resolve follows the child-index path from root and returns the referenced
// node, or nil if the path does not fit the tree.
func (r NodeRef) Resolve(root *Node) *Node {
	n := root
	for _, idx := range r.Path {
		if n == nil || idx < 0 || idx >= len(n.Children) {
			return nil
		}
		n = n.Children[idx]
	}
	return n
}

// DuplicateGroup collects every occurrence of one signature across the
// successfully fetched pages of a domain.
type DuplicateGroup struct {
	Signature string `json:"signature"`

	// Occurrences are ordered by (page index, path) for determinism.
	Occurrences []NodeRef `json:"occurrences"`

	// DistinctPages counts unique pages contributing at least one occurrence.
	DistinctPages int `json:"distinctPages"`
}

// IsDuplicate reports whether the group qualifies as cross-page boilerplate.
// Page-local repetition alone never qualifies: the signature must appear on
// at least two distinct pages.
func (g *DuplicateGroup) IsDuplicate() bool {
	return g.DistinctPages >= 2
}
