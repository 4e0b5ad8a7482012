// Package analyze implements the cross-page analysis passes: duplicate
// detection by structural signature, template recognition over duplicate
// groups, and result assembly.
package analyze

import (
	"sort"

	"github.com/chaffhq/chaff"
)

// DefaultMinDepth excludes the top two levels of every tree (html and body)
// from duplicate flagging. Those ancestors are present on every page
// trivially and would otherwise flag the entire page as one giant duplicate.
const DefaultMinDepth = 2

// Detector groups nodes by signature across the pages of a domain and
// flags cross-page recurring groups.
type Detector struct {
	// MinDepth is the number of root levels excluded from flagging.
	// Zero means DefaultMinDepth; negative means no exclusion. Pages whose
	// trees are no deeper than MinDepth fall back to leaf-level grouping.
	MinDepth int
}

// groupAccum accumulates one signature's occurrences during the scan.
type groupAccum struct {
	refs  []chaff.NodeRef
	nodes []*chaff.Node
	pages map[int]bool
}

// Detect computes signatures for every tree, groups occurrences by
// signature, and returns the groups whose occurrences span at least two
// distinct pages, sorted by signature. Every node belonging to a returned
// group has Duplicate set true, across every occurrence on every page.
//
// NodeRef page indices refer to positions in the pages argument. Pages
// without a tree (failed or pending) are skipped but keep their index.
// Given the same trees, the output is independent of fetch order and
// re-running is idempotent. Fewer than two pages with trees yields nil.
func (d *Detector) Detect(pages []*chaff.Page) []chaff.DuplicateGroup {
	minDepth := d.MinDepth
	if minDepth == 0 {
		minDepth = DefaultMinDepth
	}

	accums := make(map[string]*groupAccum)
	withTrees := 0

	for pageIdx, page := range pages {
		if page == nil || page.Tree == nil {
			continue
		}
		withTrees++
		chaff.ComputeSignatures(page.Tree)

		// Documents without boilerplate nesting below MinDepth fall back
		// to grouping their leaves.
		shallow := maxDepth(page.Tree, 1) <= minDepth

		collect(page.Tree, nil, func(n *chaff.Node, path []int) {
			depth := chaff.SignatureDepth(n.Signature)
			if minDepth > 0 && depth <= minDepth && !(shallow && len(n.Children) == 0) {
				return
			}
			acc, ok := accums[n.Signature]
			if !ok {
				acc = &groupAccum{pages: make(map[int]bool)}
				accums[n.Signature] = acc
			}
			acc.refs = append(acc.refs, chaff.NodeRef{Page: pageIdx, Path: append([]int(nil), path...)})
			acc.nodes = append(acc.nodes, n)
			acc.pages[pageIdx] = true
		})
	}

	// Nothing to compare against: a lone page never produces duplicates.
	if withTrees < 2 {
		return nil
	}

	sigs := make([]string, 0, len(accums))
	for sig, acc := range accums {
		if len(acc.pages) >= 2 {
			sigs = append(sigs, sig)
		}
	}
	sort.Strings(sigs)

	groups := make([]chaff.DuplicateGroup, 0, len(sigs))
	for _, sig := range sigs {
		acc := accums[sig]
		for _, n := range acc.nodes {
			n.Duplicate = true
		}
		groups = append(groups, chaff.DuplicateGroup{
			Signature:     sig,
			Occurrences:   acc.refs,
			DistinctPages: len(acc.pages),
		})
	}
	if len(groups) == 0 {
		return nil
	}
	return groups
}

// collect walks the tree in document order, tracking the child-index path.
func collect(n *chaff.Node, path []int, fn func(*chaff.Node, []int)) {
	fn(n, path)
	for i, child := range n.Children {
		collect(child, append(path, i), fn)
	}
}

// maxDepth returns the depth of the deepest node, counting the root as 1.
func maxDepth(n *chaff.Node, depth int) int {
	deepest := depth
	for _, child := range n.Children {
		if d := maxDepth(child, depth+1); d > deepest {
			deepest = d
		}
	}
	return deepest
}
