package http_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	chaffhttp "github.com/chaffhq/chaff/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTripperFunc serves canned responses by URL, keeping sitemap tests
// hermetic without binding the https:// scheme to a local listener.
type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func siteClient(responses map[string]string) *http.Client {
	return &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		body, ok := responses[req.URL.String()]
		status := http.StatusOK
		if !ok {
			status = http.StatusNotFound
		}
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     make(http.Header),
			Request:    req,
		}, nil
	})}
}

const urlsetXML = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://example.com/news</loc></url>
  <url><loc> https://example.com/item?id=1 </loc></url>
  <url><loc>https://other.org/external</loc></url>
</urlset>`

func TestSitemapSource_reads_robots_directive(t *testing.T) {
	t.Parallel()

	s := chaffhttp.NewSitemapSource(siteClient(map[string]string{
		"https://example.com/robots.txt": "User-agent: *\nDisallow: /admin\nSitemap: https://example.com/map.xml\n",
		"https://example.com/map.xml":    urlsetXML,
	}))

	urls, err := s.Discover(context.Background(), "example.com")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"https://example.com/news",
		"https://example.com/item?id=1",
	}, urls)
}

func TestSitemapSource_falls_back_to_sitemap_xml(t *testing.T) {
	t.Parallel()

	s := chaffhttp.NewSitemapSource(siteClient(map[string]string{
		"https://example.com/sitemap.xml": urlsetXML,
	}))

	urls, err := s.Discover(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Len(t, urls, 2)
}

func TestSitemapSource_resolves_sitemap_index(t *testing.T) {
	t.Parallel()

	index := `<?xml version="1.0"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>https://example.com/pages.xml</loc></sitemap>
  <sitemap><loc>https://example.com/posts.xml</loc></sitemap>
</sitemapindex>`
	posts := `<urlset><url><loc>https://example.com/post/1</loc></url></urlset>`

	s := chaffhttp.NewSitemapSource(siteClient(map[string]string{
		"https://example.com/sitemap.xml": index,
		"https://example.com/pages.xml":   urlsetXML,
		"https://example.com/posts.xml":   posts,
	}))

	urls, err := s.Discover(context.Background(), "example.com")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"https://example.com/news",
		"https://example.com/item?id=1",
		"https://example.com/post/1",
	}, urls)
}

func TestSitemapSource_excludes_other_domains(t *testing.T) {
	t.Parallel()

	s := chaffhttp.NewSitemapSource(siteClient(map[string]string{
		"https://example.com/sitemap.xml": urlsetXML,
	}))

	urls, err := s.Discover(context.Background(), "example.com")
	require.NoError(t, err)
	assert.NotContains(t, urls, "https://other.org/external")
}

func TestSitemapSource_missing_sitemap_yields_empty(t *testing.T) {
	t.Parallel()

	s := chaffhttp.NewSitemapSource(siteClient(nil))

	urls, err := s.Discover(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestSitemapSource_malformed_xml_is_skipped(t *testing.T) {
	t.Parallel()

	s := chaffhttp.NewSitemapSource(siteClient(map[string]string{
		"https://example.com/sitemap.xml": "<urlset><url><loc>broken",
	}))

	urls, err := s.Discover(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestSitemapSource_canceled_context(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := chaffhttp.NewSitemapSource(siteClient(nil))
	_, err := s.Discover(ctx, "example.com")
	assert.Error(t, err)
}
