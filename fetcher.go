package chaff

import "context"

// Fetcher retrieves raw HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// content. The crawl scheduler treats a Fetcher as a single stateful
// session and never issues more than one Fetch at a time.
type Fetcher interface {
	// Fetch navigates to the URL and returns the page's HTML source.
	// The context controls timeout and cancellation; the scheduler applies
	// the per-fetch timeout before calling.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases transport resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
