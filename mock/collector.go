package mock

import (
	"context"

	"github.com/chaffhq/chaff"
)

var _ chaff.LinkCollector = (*LinkCollector)(nil)

// LinkCollector is a mock implementation of chaff.LinkCollector.
type LinkCollector struct {
	CollectFn func(html string, pageURL string) ([]string, error)
}

func (c *LinkCollector) Collect(html string, pageURL string) ([]string, error) {
	return c.CollectFn(html, pageURL)
}

var _ chaff.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of chaff.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

var _ chaff.URLSource = (*URLSource)(nil)

// URLSource is a mock implementation of chaff.URLSource.
type URLSource struct {
	DiscoverFn func(ctx context.Context, domain string) ([]string, error)
}

func (s *URLSource) Discover(ctx context.Context, domain string) ([]string, error) {
	return s.DiscoverFn(ctx, domain)
}
