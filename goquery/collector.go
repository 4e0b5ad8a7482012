// Package goquery provides a CSS-selector based implementation of
// chaff.LinkCollector.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/chaffhq/chaff"
)

// Ensure LinkCollector implements chaff.LinkCollector at compile time.
var _ chaff.LinkCollector = (*LinkCollector)(nil)

// LinkCollector extracts same-domain anchor targets from fetched pages.
type LinkCollector struct{}

// NewLinkCollector creates a new LinkCollector.
func NewLinkCollector() *LinkCollector {
	return &LinkCollector{}
}

// Collect parses HTML and returns the same-domain hyperlink targets found
// in anchor elements, normalized (absolute, fragment-stripped) and
// deduplicated in document order. Subdomains of the page's domain count as
// same-domain. Collect never mutates crawl state; callers decide admission.
func (c *LinkCollector) Collect(html string, pageURL string) ([]string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, chaff.Errorf(chaff.EINVALID, "invalid page URL: %v", err)
	}
	domain := base.Hostname()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, chaff.Errorf(chaff.EINVALID, "failed to parse HTML: %v", err)
	}

	var links []string
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}
		if !chaff.SameDomain(chaff.DomainOf(resolved), domain) {
			return
		}

		normalized := chaff.NormalizeURL(resolved)
		if seen[normalized] {
			return
		}
		seen[normalized] = true
		links = append(links, normalized)
	})

	return links, nil
}

// resolveURL resolves href against the base URL. Non-HTTP schemes
// (mailto:, javascript:, tel:) return "".
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}
