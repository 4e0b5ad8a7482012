package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/chaffhq/chaff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_crawl_http_end_to_end(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/news" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`<html><body><p class="story">hello</p></body></html>`))
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "report.json")
	var stdout, stderr bytes.Buffer

	err := NewMain().Run(context.Background(),
		[]string{"crawl", srv.URL + "/news", "--http", "--no-discover", "--rps", "100", "-o", out},
		&stdout, &stderr)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "127.0.0.1")
	assert.Contains(t, stdout.String(), "report written to")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var run chaff.RunResult
	require.NoError(t, json.Unmarshal(data, &run))
	require.Len(t, run.Domains, 1)
	require.Len(t, run.Domains[0].Pages, 1)
	assert.Equal(t, chaff.StatusSuccess, run.Domains[0].Pages[0].Status)
}

func TestMain_rejects_missing_seeds(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := NewMain().Run(context.Background(), []string{"crawl"}, &stdout, &stderr)
	assert.Error(t, err)
}

func TestMain_rejects_unknown_flag(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := NewMain().Run(context.Background(),
		[]string{"crawl", "https://example.com/", "--bogus"}, &stdout, &stderr)
	assert.Error(t, err)
}

func TestMain_rejects_unknown_command(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := NewMain().Run(context.Background(), []string{"frobnicate"}, &stdout, &stderr)
	assert.Error(t, err)
}

func TestCrawlCmd_flag_parsing(t *testing.T) {
	t.Parallel()

	cli := &CLI{}
	parser, err := kong.New(cli)
	require.NoError(t, err)

	// Defaults mirror the conservative crawl posture.
	_, err = parser.Parse([]string{"crawl", "https://example.com/"})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/"}, cli.Crawl.Seeds)
	assert.Equal(t, 30*time.Second, cli.Crawl.Timeout)
	assert.Equal(t, 3, cli.Crawl.MaxURLs)
	assert.Equal(t, 2, cli.Crawl.MinDepth)
	assert.True(t, cli.Crawl.Discover)
	assert.False(t, cli.Crawl.Sitemap)
	assert.False(t, cli.Crawl.HTTP)

	cli = &CLI{}
	parser, err = kong.New(cli)
	require.NoError(t, err)
	_, err = parser.Parse([]string{
		"crawl", "https://a.com/", "https://b.com/",
		"--no-discover", "--sitemap", "--max-urls", "5", "--timeout", "5s", "-v",
	})
	require.NoError(t, err)
	assert.Len(t, cli.Crawl.Seeds, 2)
	assert.False(t, cli.Crawl.Discover)
	assert.True(t, cli.Crawl.Sitemap)
	assert.Equal(t, 5, cli.Crawl.MaxURLs)
	assert.Equal(t, 5*time.Second, cli.Crawl.Timeout)
	assert.True(t, cli.Crawl.Verbose)
}
