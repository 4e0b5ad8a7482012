package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/beevik/etree"
	"github.com/chaffhq/chaff"
	"golang.org/x/sync/errgroup"
)

// Sitemap resolution limits. Sitemap fetching runs over plain HTTP, outside
// the exclusive browser session, so bounded concurrency is safe here.
const (
	// maxSitemapDepth bounds recursion through nested sitemap indexes.
	maxSitemapDepth = 3
	// sitemapConcurrency bounds concurrent child-sitemap fetches.
	sitemapConcurrency = 3
	// maxSitemapURLs caps the URLs collected per domain.
	maxSitemapURLs = 200
)

// Ensure SitemapSource implements chaff.URLSource at compile time.
var _ chaff.URLSource = (*SitemapSource)(nil)

// SitemapSource discovers candidate URLs for a domain from its sitemaps.
// It checks robots.txt for Sitemap directives, falls back to /sitemap.xml,
// and resolves sitemap indexes recursively.
type SitemapSource struct {
	client *http.Client
}

// NewSitemapSource creates a SitemapSource with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapSource(client *http.Client) *SitemapSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapSource{client: client}
}

// Discover returns same-domain URLs listed by the domain's sitemaps.
// A domain without sitemaps yields an empty slice, not an error.
func (s *SitemapSource) Discover(ctx context.Context, domain string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sitemapURLs := s.fromRobots(ctx, domain)
	if len(sitemapURLs) == 0 {
		sitemapURLs = []string{"https://" + domain + "/sitemap.xml"}
	}

	var (
		mu   sync.Mutex
		urls []string
		seen = make(map[string]bool)
	)
	add := func(u string) {
		mu.Lock()
		defer mu.Unlock()
		if len(urls) >= maxSitemapURLs || seen[u] {
			return
		}
		seen[u] = true
		urls = append(urls, u)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sitemapConcurrency)
	for _, sitemapURL := range sitemapURLs {
		sitemapURL := sitemapURL
		g.Go(func() error {
			return s.resolve(gctx, sitemapURL, domain, 0, add)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return urls, nil
}

// resolve fetches one sitemap and either collects its page URLs or recurses
// into its child sitemaps. Unreachable or malformed sitemaps are skipped.
func (s *SitemapSource) resolve(ctx context.Context, sitemapURL, domain string, depth int, add func(string)) error {
	if depth > maxSitemapDepth {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return nil
	}
	root := doc.Root()
	if root == nil {
		return nil
	}

	switch root.Tag {
	case "sitemapindex":
		children := root.FindElements("//sitemap/loc")
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(sitemapConcurrency)
		for _, loc := range children {
			child := strings.TrimSpace(loc.Text())
			if child == "" {
				continue
			}
			g.Go(func() error {
				return s.resolve(gctx, child, domain, depth+1, add)
			})
		}
		return g.Wait()
	case "urlset":
		for _, loc := range root.FindElements("//url/loc") {
			u := chaff.NormalizeURL(strings.TrimSpace(loc.Text()))
			if u == "" || !chaff.SameDomain(chaff.DomainOf(u), domain) {
				continue
			}
			add(u)
		}
	}
	return nil
}

// fromRobots extracts Sitemap directives from the domain's robots.txt.
func (s *SitemapSource) fromRobots(ctx context.Context, domain string) []string {
	body, err := s.get(ctx, "https://"+domain+"/robots.txt")
	if err != nil {
		return nil
	}

	var sitemaps []string
	scanner := bufio.NewScanner(strings.NewReader(body))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) < len("sitemap:") || !strings.EqualFold(line[:len("sitemap:")], "sitemap:") {
			continue
		}
		if u := strings.TrimSpace(line[len("sitemap:"):]); u != "" {
			sitemaps = append(sitemaps, u)
		}
	}
	return sitemaps
}

func (s *SitemapSource) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
