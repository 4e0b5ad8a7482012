package mock

import "github.com/chaffhq/chaff"

var _ chaff.TreeParser = (*TreeParser)(nil)

// TreeParser is a mock implementation of chaff.TreeParser.
type TreeParser struct {
	ParseFn func(html string) (*chaff.Node, error)
}

func (p *TreeParser) Parse(html string) (*chaff.Node, error) {
	return p.ParseFn(html)
}
