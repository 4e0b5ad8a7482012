package chaff

import "context"

// LinkCollector extracts same-domain hyperlink targets from a fetched page.
// Results are normalized (absolute, fragment-stripped) and deduplicated in
// document order. The collector has no side effects; admission caps and
// queue state belong to the crawl scheduler.
type LinkCollector interface {
	Collect(html string, pageURL string) ([]string, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// URLSource discovers candidate URLs for a domain out of band, e.g. from
// its sitemap. Implementations return an empty slice when the domain
// exposes no such index; that is not an error.
type URLSource interface {
	Discover(ctx context.Context, domain string) ([]string, error)
}
