package chaff

// PageResult is the per-page output shape: crawl outcome plus the annotated
// tree when the fetch succeeded.
type PageResult struct {
	URL        string `json:"url"`
	Status     Status `json:"status"`
	FailReason string `json:"failReason,omitempty"`

	// TotalNodes and DuplicateNodes summarize the annotated tree.
	// Both are zero for failed pages.
	TotalNodes     int `json:"totalNodes"`
	DuplicateNodes int `json:"duplicateNodes"`

	Tree *Node `json:"tree,omitempty"`
}

// DomainResult aggregates one domain's crawl and analysis.
type DomainResult struct {
	Domain string `json:"domain"`

	Pages []PageResult `json:"pages"`

	DuplicateGroupCount int `json:"duplicateGroupCount"`
	FlaggedNodeCount    int `json:"flaggedNodeCount"`
	TemplateCount       int `json:"templateCount"`
}

// RunResult is the output of one pipeline run across all seed domains.
type RunResult struct {
	ID      string         `json:"id"`
	Domains []DomainResult `json:"domains"`
}
