package crawl

import (
	"context"
	"io"
	"log/slog"

	"github.com/chaffhq/chaff"
	"github.com/chaffhq/chaff/analyze"
	"github.com/google/uuid"
)

// Pipeline is the run context for a full three-phase crawl: link discovery,
// sequential fetching, and cross-page analysis. It owns no global state;
// every run's trees and indices live only inside Run.
type Pipeline struct {
	Crawler    *Crawler
	Detector   *analyze.Detector
	Recognizer *analyze.Recognizer
	Logger     *slog.Logger
}

// Run crawls each seed's domain in order, one domain at a time (the fetch
// transport is a single exclusively-owned session), then analyzes the
// domain's successful pages. Analysis never interleaves with fetching:
// within a domain, every queued fetch resolves before detection starts.
//
// Seeds sharing a domain after the first are skipped. An empty seed list is
// rejected with EINVALID. Per-page failures are reported in the results;
// the only run-level errors are invalid input and context cancellation.
func (p *Pipeline) Run(ctx context.Context, seeds []chaff.Seed) (*chaff.RunResult, error) {
	if len(seeds) == 0 {
		return nil, chaff.Errorf(chaff.EINVALID, "at least one seed URL required")
	}
	for _, seed := range seeds {
		if chaff.DomainOf(chaff.NormalizeURL(seed.URL)) == "" {
			return nil, chaff.Errorf(chaff.EINVALID, "seed URL %q has no host", seed.URL)
		}
	}

	detector := p.Detector
	if detector == nil {
		detector = &analyze.Detector{}
	}
	recognizer := p.Recognizer
	if recognizer == nil {
		recognizer = &analyze.Recognizer{}
	}

	run := &chaff.RunResult{ID: uuid.New().String()}
	seen := make(map[string]bool)

	for _, seed := range seeds {
		domain := chaff.DomainOf(chaff.NormalizeURL(seed.URL))
		if seen[domain] {
			p.logger().Info("skipping duplicate seed domain", "domain", domain)
			continue
		}
		seen[domain] = true

		pages, err := p.Crawler.CrawlDomain(ctx, seed)
		if err != nil {
			return run, err
		}

		groups := detector.Detect(successPages(pages))
		templates := recognizer.Recognize(successPages(pages), groups)
		run.Domains = append(run.Domains, analyze.Assemble(domain, pages, groups, templates))

		p.logger().Info("domain analyzed",
			"domain", domain,
			"pages", len(pages),
			"duplicateGroups", len(groups),
			"templates", templates,
		)
	}

	return run, nil
}

// successPages filters to pages that fetched and parsed successfully.
// The result is a stable subset: NodeRef page indices from detection refer
// to positions within it.
func successPages(pages []*chaff.Page) []*chaff.Page {
	out := make([]*chaff.Page, 0, len(pages))
	for _, page := range pages {
		if page.Status == chaff.StatusSuccess && page.Tree != nil {
			out = append(out, page)
		}
	}
	return out
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
