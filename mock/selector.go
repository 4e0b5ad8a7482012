package mock

import (
	"context"

	"github.com/chaffhq/chaff"
)

var _ chaff.URLSelector = (*URLSelector)(nil)

// URLSelector is a mock implementation of chaff.URLSelector.
type URLSelector struct {
	SelectFn func(ctx context.Context, objective string, urls []string, domain string, max int) ([]string, error)
}

func (s *URLSelector) Select(ctx context.Context, objective string, urls []string, domain string, max int) ([]string, error) {
	return s.SelectFn(ctx, objective, urls, domain, max)
}
