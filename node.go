package chaff

import "strings"

// TextTag is the sentinel tag used for text runs that appear between
// sibling elements and cannot be folded into a parent's Text.
const TextTag = "#text"

// Node represents one element or text run in a page's structural tree.
// Each node is exclusively owned by its parent; the tree holds no
// back-references.
type Node struct {
	// Tag is the element name, or TextTag for a text run.
	Tag string `json:"tag"`

	// Attrs holds element attributes. The "id" attribute is retained for
	// display but is never part of structural comparison: ids are commonly
	// per-instance and would make every row of a list appear unique.
	Attrs map[string]string `json:"attrs,omitempty"`

	// Classes holds the class tokens, sorted for comparison stability.
	Classes []string `json:"classes,omitempty"`

	// Text is the direct text content of this node, whitespace-collapsed.
	// It does not include descendants' text.
	Text string `json:"text,omitempty"`

	// Children are the owned child nodes in document order.
	Children []*Node `json:"children,omitempty"`

	// Signature is the structural fingerprint derived from the tag/class
	// ancestor chain. Computed by ComputeSignatures; not part of identity.
	Signature string `json:"signature,omitempty"`

	// Duplicate marks nodes whose signature recurs across >= 2 pages of the
	// domain. Set only by analyze.Detector.
	Duplicate bool `json:"duplicate,omitempty"`

	// TemplateText is the generalized text (e.g. "{count} comments") set by
	// analyze.Recognizer. When present it supersedes Text for display; the
	// original Text is retained.
	TemplateText string `json:"templateText,omitempty"`
}

// DisplayText returns TemplateText when a template was recognized,
// otherwise the original Text.
func (n *Node) DisplayText() string {
	if n.TemplateText != "" {
		return n.TemplateText
	}
	return n.Text
}

// Walk visits n and all its descendants in document (pre-) order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// CountNodes returns the number of nodes in the tree rooted at n.
func (n *Node) CountNodes() int {
	count := 0
	n.Walk(func(*Node) { count++ })
	return count
}

// Title returns the text of the first <title> element, or "".
func (n *Node) Title() string {
	if n.Tag == "title" && n.Text != "" {
		return n.Text
	}
	for _, child := range n.Children {
		if title := child.Title(); title != "" {
			return title
		}
	}
	return ""
}

// HasClass reports whether the node carries the given class token.
func (n *Node) HasClass(class string) bool {
	for _, c := range n.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// FindByPath returns all nodes matching a CSS-like whitespace-separated
// path such as "html body tr.athing.submission td.title". Each part is a
// tag with optional class requirements; ids are ignored. Intermediate
// non-matching nodes are skipped, so the path describes an ancestor
// sequence rather than a strict parent chain.
func (n *Node) FindByPath(path string) []*Node {
	parts := strings.Fields(path)
	if len(parts) == 0 {
		return nil
	}
	var results []*Node
	n.findByPath(parts, 0, &results)
	return results
}

func (n *Node) findByPath(parts []string, depth int, results *[]*Node) {
	if depth >= len(parts) {
		return
	}

	if n.matchesPathPart(parts[depth]) {
		if depth == len(parts)-1 {
			*results = append(*results, n)
		} else {
			for _, child := range n.Children {
				child.findByPath(parts, depth+1, results)
			}
		}
	}

	// Children may also start a match of the current part.
	for _, child := range n.Children {
		child.findByPath(parts, depth, results)
	}
}

// matchesPathPart matches parts like "tr.athing.submission" or plain "td".
func (n *Node) matchesPathPart(part string) bool {
	dot := strings.IndexByte(part, '.')
	if dot == -1 {
		return n.Tag == part
	}
	if n.Tag != part[:dot] {
		return false
	}
	for _, class := range strings.Split(part[dot+1:], ".") {
		if !n.HasClass(class) {
			return false
		}
	}
	return true
}
