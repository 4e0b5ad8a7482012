package chaff

import (
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Signature separators. Class tokens within a segment are joined by
// classSeparator; segments along the ancestor chain by chainSeparator.
// The two must differ so that depth can be recovered from the string.
const (
	classSeparator = "."
	chainSeparator = ">"
)

// SignatureSegment returns the single-node portion of a signature:
// the tag followed by its sorted class tokens, e.g. "tr.athing.submission".
// The id attribute and all other attributes are deliberately excluded.
func SignatureSegment(n *Node) string {
	if len(n.Classes) == 0 {
		return n.Tag
	}
	classes := n.Classes
	if !sort.StringsAreSorted(classes) {
		classes = append([]string(nil), classes...)
		sort.Strings(classes)
	}
	return n.Tag + classSeparator + strings.Join(classes, classSeparator)
}

// ComputeSignatures walks the tree and stamps Node.Signature on every node.
// A node's signature is the chainSeparator-joined segments of its ancestor
// chain from the document root down to and including the node itself. Two
// nodes, on the same page or different pages, are structurally equivalent
// iff their signatures are byte-equal.
func ComputeSignatures(root *Node) {
	computeSignatures(root, "")
}

func computeSignatures(n *Node, prefix string) {
	if prefix == "" {
		n.Signature = SignatureSegment(n)
	} else {
		n.Signature = prefix + chainSeparator + SignatureSegment(n)
	}
	for _, child := range n.Children {
		computeSignatures(child, n.Signature)
	}
}

// SignatureDepth returns the number of segments in a signature, i.e. the
// node's depth counted from the document root starting at 1.
func SignatureDepth(sig string) int {
	if sig == "" {
		return 0
	}
	return strings.Count(sig, chainSeparator) + 1
}

// SignatureHash returns a 64-bit hash of the signature, used as a compact
// grouping key when full string comparison is not needed.
func SignatureHash(sig string) uint64 {
	return xxhash.Sum64String(sig)
}
