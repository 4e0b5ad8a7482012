package main

import (
	"context"
	"io"
	"time"
)

// Dependencies holds shared context for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Crawl CrawlCmd `cmd:"" help:"Crawl one or more seed URLs and detect cross-page boilerplate"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Seeds []string `arg:"" help:"Seed URLs, one per domain"`

	Timeout  time.Duration `default:"30s" help:"Per-fetch timeout"`
	MaxURLs  int           `name:"max-urls" default:"3" help:"Max discovered URLs admitted per domain"`
	MinDepth int           `default:"2" help:"Tree levels excluded from duplicate flagging"`
	Discover bool          `default:"true" negatable:"" help:"Follow same-domain links beyond the seed"`
	Sitemap  bool          `help:"Consult the domain sitemap for candidate URLs"`
	RPS      float64       `default:"1" help:"Max requests per second per domain"`
	HTTP     bool          `help:"Use the plain HTTP fetcher instead of the browser"`
	Output   string        `short:"o" help:"Write the JSON report to this file"`
	Verbose  bool          `short:"v" help:"Enable debug logging"`
}
