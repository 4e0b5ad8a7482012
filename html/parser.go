// Package html builds chaff node trees from raw markup using the tolerant
// HTML5 parser from golang.org/x/net/html. Malformed input (unclosed tags,
// stray text) is recovered per the standard parsing algorithm and never
// surfaces as an error.
package html

import (
	"sort"
	"strings"

	"github.com/chaffhq/chaff"
	"golang.org/x/net/html"
)

// Ensure Parser implements chaff.TreeParser at compile time.
var _ chaff.TreeParser = (*Parser)(nil)

// defaultIgnoredTags are elements that carry no structural or textual value
// for cross-page comparison: scripting, styling, and embedded media.
var defaultIgnoredTags = []string{
	"script", "style", "noscript", "svg", "path", "img", "video", "audio",
	"canvas", "embed", "object", "iframe",
}

// Parser builds chaff.Node trees from HTML source.
// Comments, doctypes, and processing instructions are dropped, ignored-tag
// subtrees are skipped, and blank nodes (no text, no children) are pruned.
type Parser struct {
	ignored map[string]bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithIgnoredTags adds element names whose subtrees are dropped during
// parsing, in addition to the defaults.
func WithIgnoredTags(tags ...string) Option {
	return func(p *Parser) {
		for _, tag := range tags {
			p.ignored[tag] = true
		}
	}
}

// NewParser creates a Parser with the default ignored-tag set.
func NewParser(opts ...Option) *Parser {
	p := &Parser{ignored: make(map[string]bool, len(defaultIgnoredTags))}
	for _, tag := range defaultIgnoredTags {
		p.ignored[tag] = true
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse builds the structural tree rooted at the document's html element.
// The underlying parser synthesizes html/head/body when missing, so a root
// always exists. Parse is a pure function of its input.
func (p *Parser) Parse(src string) (*chaff.Node, error) {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		// html.Parse only fails on reader errors, which strings.Reader
		// cannot produce; keep the tolerant contract regardless.
		return &chaff.Node{Tag: "html"}, nil
	}

	root := findElement(doc, "html")
	if root == nil {
		return &chaff.Node{Tag: "html"}, nil
	}
	return p.buildElement(root), nil
}

// buildElement converts one element and its subtree.
func (p *Parser) buildElement(el *html.Node) *chaff.Node {
	node := &chaff.Node{Tag: el.Data}

	for _, attr := range el.Attr {
		switch attr.Key {
		case "class":
			node.Classes = splitClasses(attr.Val)
		default:
			if node.Attrs == nil {
				node.Attrs = make(map[string]string)
			}
			node.Attrs[attr.Key] = attr.Val
		}
	}

	var texts []string
	for child := el.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.ElementNode:
			if p.ignored[child.Data] {
				continue
			}
			built := p.buildElement(child)
			if isBlank(built) {
				continue
			}
			node.Children = append(node.Children, built)
		case html.TextNode:
			if text := collapseWhitespace(child.Data); text != "" {
				texts = append(texts, text)
			}
		}
		// Comments, doctypes, and PIs are dropped here.
	}

	text := strings.Join(texts, " ")
	if len(node.Children) == 0 {
		// Leaf element: fold the text runs into the element itself.
		node.Text = text
	} else if text != "" {
		// Mixed content: keep stray text as an explicit text-run child so
		// direct text never absorbs descendant text.
		node.Children = append(node.Children, &chaff.Node{Tag: chaff.TextTag, Text: text})
	}

	return node
}

// findElement returns the first element with the given tag in document order.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findElement(child, tag); found != nil {
			return found
		}
	}
	return nil
}

// splitClasses tokenizes a class attribute into sorted, deduplicated tokens.
func splitClasses(val string) []string {
	fields := strings.Fields(val)
	if len(fields) == 0 {
		return nil
	}
	sort.Strings(fields)
	classes := make([]string, 0, len(fields))
	for _, class := range fields {
		if len(classes) > 0 && class == classes[len(classes)-1] {
			continue
		}
		classes = append(classes, class)
	}
	return classes
}

// collapseWhitespace trims and collapses runs of whitespace to single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// isBlank reports whether a built node carries neither text nor children.
func isBlank(n *chaff.Node) bool {
	return n.Text == "" && len(n.Children) == 0
}
