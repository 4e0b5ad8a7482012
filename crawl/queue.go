package crawl

import (
	"container/heap"
	"sync"

	"github.com/chaffhq/chaff"
	"github.com/chaffhq/chaff/bloom"
)

// Queue is an in-memory per-domain crawl queue with priority ordering and
// Bloom filter deduplication of normalized URLs. Priority follows the page
// role (seed > root > discovered); equal priorities break ties by ascending
// discovery sequence, keeping runs deterministic.
// It is safe for concurrent use by multiple goroutines.
type Queue struct {
	mu   sync.Mutex
	seen *bloom.Filter
	heap *pageHeap
}

// NewQueue creates a Queue sized for n expected URLs with the given false
// positive rate for deduplication.
func NewQueue(n uint, fpRate float64) *Queue {
	h := &pageHeap{}
	heap.Init(h)
	return &Queue{
		seen: bloom.NewFilter(n, fpRate),
		heap: h,
	}
}

// Push adds a page to the queue.
// Returns false if the page's normalized URL has already been seen.
func (q *Queue) Push(page *chaff.Page) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	url := chaff.NormalizeURL(page.URL)
	if q.seen.Test(url) {
		return false
	}
	q.seen.Add(url)

	heap.Push(q.heap, page)
	return true
}

// Pop returns the next page by priority.
// The bool result is false if the queue is empty.
func (q *Queue) Pop() (*chaff.Page, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.heap.Len() == 0 {
		return nil, false
	}
	page, _ := heap.Pop(q.heap).(*chaff.Page)
	return page, true
}

// Len returns the number of pages waiting in the queue.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.heap.Len()
}

// Seen returns true if the URL has been queued at some point.
func (q *Queue) Seen(rawURL string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.seen.Test(chaff.NormalizeURL(rawURL))
}

// pageHeap implements heap.Interface for the page priority queue.
// Higher role priority pops first; ties pop in discovery order.
type pageHeap []*chaff.Page

func (h pageHeap) Len() int { return len(h) }

func (h pageHeap) Less(i, j int) bool {
	pi, pj := h[i].Role.Priority(), h[j].Role.Priority()
	if pi != pj {
		return pi > pj
	}
	return h[i].Sequence < h[j].Sequence
}

func (h pageHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *pageHeap) Push(x any) {
	page, _ := x.(*chaff.Page)
	*h = append(*h, page)
}

func (h *pageHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
