package chaff

import (
	"net/url"
	"strings"
)

// Role describes how a page's URL entered the crawl.
type Role string

// Page roles, in fetch priority order.
const (
	RoleSeed       Role = "seed"
	RoleRoot       Role = "root"
	RoleDiscovered Role = "discovered"
)

// Priority returns the crawl priority for the role (higher = fetched first).
func (r Role) Priority() int {
	switch r {
	case RoleSeed:
		return 100
	case RoleRoot:
		return 50
	default:
		return 10
	}
}

// Status describes a page's crawl outcome.
type Status string

// Page statuses.
const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Page represents one URL's crawl outcome within a domain.
// Status and Tree are written exactly once, by the scheduler, after the
// fetch attempt resolves; they are never mutated afterward.
type Page struct {
	URL        string `json:"url"`
	Domain     string `json:"domain"`
	Role       Role   `json:"role"`
	Status     Status `json:"status"`
	FailReason string `json:"failReason,omitempty"`
	Tree       *Node  `json:"tree,omitempty"`

	// Sequence is the discovery order, used for deterministic tie-breaking
	// between pages of equal priority.
	Sequence int `json:"sequence"`
}

// NewPage creates a pending page for a normalized URL.
func NewPage(rawURL string, role Role, sequence int) *Page {
	normalized := NormalizeURL(rawURL)
	return &Page{
		URL:      normalized,
		Domain:   DomainOf(normalized),
		Role:     role,
		Status:   StatusPending,
		Sequence: sequence,
	}
}

// Seed is a user-supplied starting URL. Discover controls whether
// domain-wide discovery (root + on-page links) is permitted for the
// URL's domain beyond the seed itself.
type Seed struct {
	URL      string
	Discover bool
}

// NormalizeURL returns the canonical form of a URL for deduplication:
// scheme+host+path+query with the fragment stripped. Unparseable input is
// returned with at most the fragment removed.
func NormalizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		if idx := strings.IndexByte(rawURL, '#'); idx != -1 {
			return rawURL[:idx]
		}
		return rawURL
	}
	u.Fragment = ""
	return u.String()
}

// DomainOf extracts the host from a URL, or "" if it cannot be parsed.
func DomainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// RootURL constructs the canonical root URL for a domain.
func RootURL(domain string) string {
	return "https://" + domain + "/"
}

// IsRootURL reports whether a URL points at the bare root of its host:
// path "/" or empty, no query, no fragment.
func IsRootURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return (u.Path == "" || u.Path == "/") && u.RawQuery == "" && u.Fragment == ""
}

// SameDomain reports whether host belongs to domain, either exactly or as
// a subdomain.
func SameDomain(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}
