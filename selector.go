package chaff

import "context"

// URLSelector narrows a candidate URL list down to the most relevant ones
// for an objective. This is the seam for the model-assisted selection step,
// which lives outside this module; the pipeline works without one by taking
// candidates in discovery order.
type URLSelector interface {
	Select(ctx context.Context, objective string, urls []string, domain string, max int) ([]string, error)
}
