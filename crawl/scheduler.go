// Package crawl provides the crawl scheduler and pipeline orchestration.
// It coordinates link discovery, strictly sequential fetching, tree
// building, and the cross-page analysis passes.
package crawl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/chaffhq/chaff"
)

// Default configuration values for the scheduler.
const (
	// DefaultFetchTimeout bounds a single fetch attempt.
	DefaultFetchTimeout = 30 * time.Second

	// DefaultMaxDiscovered caps discovered URLs admitted per domain,
	// keeping the crawl conservative.
	DefaultMaxDiscovered = 3

	// queueExpectedURLs is the expected number of URLs for Bloom filter sizing.
	queueExpectedURLs = 1000
	// queueFalsePositiveRate is the acceptable false positive rate for deduplication.
	queueFalsePositiveRate = 0.01
)

// Crawler fetches the pages of one domain at a time.
//
// Fetching is strictly sequential: the fetch transport is a single stateful
// session, so one fetch is issued, observed, and only then is the next queue
// entry processed. A failed fetch marks its page Failed and the crawl
// continues; there is no fatal error path short of context cancellation.
type Crawler struct {
	Fetcher chaff.Fetcher
	Parser  chaff.TreeParser

	// Links extracts same-domain anchors from fetched pages. Optional;
	// without it (or with Seed.Discover false) only the seed and root are
	// fetched.
	Links chaff.LinkCollector

	// Sitemaps is an optional out-of-band URL source consulted once per
	// domain before fetching begins. Its URLs join the discovered pool
	// ahead of on-page links, subject to the same admission cap.
	Sitemaps chaff.URLSource

	// Selector, when set, narrows sitemap candidates to the ones most
	// relevant to Objective before admission. Without it candidates are
	// taken in discovery order.
	Selector  chaff.URLSelector
	Objective string

	// RateLimiter, when set, is consulted before every fetch.
	RateLimiter chaff.DomainLimiter

	Logger *slog.Logger

	// FetchTimeout bounds each fetch attempt. Zero means
	// DefaultFetchTimeout; negative is rejected.
	FetchTimeout time.Duration

	// MaxDiscovered caps discovered-URL admissions per domain. Zero means
	// DefaultMaxDiscovered; negative means no discovery.
	MaxDiscovered int

	// RetryDelays configures fetch retries. Nil means no retries.
	RetryDelays []time.Duration
}

// CrawlDomain runs phases 1 and 2 for one seed: it admits the seed, the
// domain root, and up to MaxDiscovered discovered URLs, fetches them in
// priority order (seed > root > discovered, discovery order within a
// level), and parses each success into a tree. All returned pages belong to
// the seed's domain and are insertion-ordered by Sequence.
//
// The returned error is non-nil only for invalid configuration or context
// cancellation; per-page fetch failures are recorded on the pages.
func (c *Crawler) CrawlDomain(ctx context.Context, seed chaff.Seed) ([]*chaff.Page, error) {
	if c.FetchTimeout < 0 {
		return nil, chaff.Errorf(chaff.EINVALID, "negative fetch timeout")
	}
	timeout := c.FetchTimeout
	if timeout == 0 {
		timeout = DefaultFetchTimeout
	}
	maxDiscovered := c.MaxDiscovered
	if maxDiscovered == 0 {
		maxDiscovered = DefaultMaxDiscovered
	}

	seedURL := chaff.NormalizeURL(seed.URL)
	domain := chaff.DomainOf(seedURL)
	if domain == "" {
		return nil, chaff.Errorf(chaff.EINVALID, "seed URL %q has no host", seed.URL)
	}

	queue := NewQueue(queueExpectedURLs, queueFalsePositiveRate)
	var records []*chaff.Page
	sequence := 0
	discovered := 0

	admit := func(rawURL string, role chaff.Role) {
		if role == chaff.RoleDiscovered && discovered >= maxDiscovered {
			return
		}
		page := chaff.NewPage(rawURL, role, sequence)
		if !queue.Push(page) {
			return
		}
		records = append(records, page)
		sequence++
		if role == chaff.RoleDiscovered {
			discovered++
		}
	}

	admit(seedURL, chaff.RoleSeed)

	if seed.Discover {
		// The domain root frequently carries distinct boilerplate worth
		// comparing against, so it is always a candidate.
		admit(chaff.RootURL(domain), chaff.RoleRoot)

		if c.Sitemaps != nil {
			urls, err := c.Sitemaps.Discover(ctx, domain)
			if err != nil {
				c.logger().Warn("sitemap discovery failed", "domain", domain, "err", err)
			}
			if c.Selector != nil && len(urls) > maxDiscovered {
				selected, err := c.Selector.Select(ctx, c.Objective, urls, domain, maxDiscovered)
				if err != nil {
					c.logger().Warn("url selection failed", "domain", domain, "err", err)
				} else {
					urls = selected
				}
			}
			for _, u := range urls {
				admit(u, chaff.RoleDiscovered)
			}
		}
	}

	for {
		page, ok := queue.Pop()
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			return records, err
		}

		if c.RateLimiter != nil {
			if err := c.RateLimiter.Wait(ctx, domain); err != nil {
				return records, err
			}
		}

		html, err := c.fetchOne(ctx, page.URL, timeout)
		if err != nil {
			if ctx.Err() != nil {
				return records, ctx.Err()
			}
			// A single page failure is never fatal to the domain's crawl.
			page.Status = chaff.StatusFailed
			page.FailReason = err.Error()
			c.logger().Warn("fetch failed", "url", page.URL, "err", err)
			continue
		}

		tree, err := c.Parser.Parse(html)
		if err != nil {
			page.Status = chaff.StatusFailed
			page.FailReason = err.Error()
			continue
		}
		page.Status = chaff.StatusSuccess
		page.Tree = tree
		c.logger().Info("fetched", "url", page.URL, "bytes", len(html), "nodes", tree.CountNodes())

		if seed.Discover && c.Links != nil && discovered < maxDiscovered {
			links, err := c.Links.Collect(html, page.URL)
			if err != nil {
				c.logger().Warn("link collection failed", "url", page.URL, "err", err)
				continue
			}
			for _, link := range links {
				if discovered >= maxDiscovered {
					break
				}
				admit(link, chaff.RoleDiscovered)
			}
		}
	}

	return records, nil
}

// fetchOne runs one fetch attempt set under the per-URL timeout.
func (c *Crawler) fetchOne(ctx context.Context, url string, timeout time.Duration) (string, error) {
	fctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return FetchWithRetryDelays(fctx, url, c.Fetcher.Fetch, c.RetryDelays)
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
