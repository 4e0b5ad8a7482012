package chaff

// TreeParser builds a structural tree from raw markup.
// Parsing is a pure function of the input string and never fails on
// malformed markup; implementations recover best-effort and return a tree
// rooted at the document element.
type TreeParser interface {
	Parse(html string) (*Node, error)
}
