package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/chaffhq/chaff"
	"github.com/chaffhq/chaff/analyze"
	"github.com/chaffhq/chaff/crawl"
	"github.com/chaffhq/chaff/fs"
	"github.com/chaffhq/chaff/goquery"
	chaffhtml "github.com/chaffhq/chaff/html"
	chaffhttp "github.com/chaffhq/chaff/http"
	"github.com/chaffhq/chaff/rod"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run parses arguments and executes the selected command.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("chaff"),
		kong.Description("Detects structural boilerplate across pages of a domain."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return err
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}
	return kctx.Run(deps)
}

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	level := slog.LevelWarn
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(deps.Stderr, &slog.HandlerOptions{Level: level}))

	fetcher, err := c.newFetcher(logger)
	if err != nil {
		return err
	}
	defer fetcher.Close()

	crawler := &crawl.Crawler{
		Fetcher:       fetcher,
		Parser:        chaffhtml.NewParser(),
		Links:         goquery.NewLinkCollector(),
		RateLimiter:   crawl.NewDomainLimiter(c.RPS),
		Logger:        logger,
		FetchTimeout:  c.Timeout,
		MaxDiscovered: c.MaxURLs,
		RetryDelays:   crawl.DefaultRetryDelays(),
	}
	if c.Sitemap {
		crawler.Sitemaps = chaffhttp.NewSitemapSource(nil)
	}

	pipeline := &crawl.Pipeline{
		Crawler:  crawler,
		Detector: &analyze.Detector{MinDepth: c.MinDepth},
		Logger:   logger,
	}

	seeds := make([]chaff.Seed, 0, len(c.Seeds))
	for _, u := range c.Seeds {
		seeds = append(seeds, chaff.Seed{URL: u, Discover: c.Discover})
	}

	run, err := pipeline.Run(deps.Ctx, seeds)
	if err != nil {
		return err
	}

	for _, domain := range run.Domains {
		fmt.Fprintf(deps.Stdout, "%s: %d pages, %d duplicate groups, %d flagged nodes, %d templates\n",
			domain.Domain, len(domain.Pages), domain.DuplicateGroupCount,
			domain.FlaggedNodeCount, domain.TemplateCount)
		for _, page := range domain.Pages {
			switch page.Status {
			case chaff.StatusSuccess:
				fmt.Fprintf(deps.Stdout, "  %s: %d nodes, %d duplicate\n",
					page.URL, page.TotalNodes, page.DuplicateNodes)
			default:
				fmt.Fprintf(deps.Stdout, "  %s: %s (%s)\n", page.URL, page.Status, page.FailReason)
			}
		}
	}

	if c.Output != "" {
		if err := fs.NewWriter(c.Output).WriteRun(run); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "report written to %s\n", c.Output)
	}

	return nil
}

// newFetcher selects the transport: headless browser by default, plain HTTP
// with --http.
func (c *CrawlCmd) newFetcher(logger *slog.Logger) (chaff.Fetcher, error) {
	if c.HTTP {
		return chaffhttp.NewFetcher(chaffhttp.WithTimeout(c.Timeout)), nil
	}
	browser, err := rod.NewFetcher()
	if err != nil {
		return nil, err
	}
	return rod.NewLoggingFetcher(browser, logger), nil
}
