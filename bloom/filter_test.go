package bloom_test

import (
	"fmt"
	"testing"

	"github.com/chaffhq/chaff/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_added_urls_test_positive(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	f.Add("https://example.com/")
	f.Add("https://example.com/news")

	assert.True(t, f.Test("https://example.com/"))
	assert.True(t, f.Test("https://example.com/news"))
}

func TestFilter_no_false_negatives(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(10000, 0.01)
	for i := 0; i < 5000; i++ {
		f.Add(fmt.Sprintf("https://example.com/item?id=%d", i))
	}
	for i := 0; i < 5000; i++ {
		assert.True(t, f.Test(fmt.Sprintf("https://example.com/item?id=%d", i)))
	}
}

func TestFilter_unadded_url_usually_negative(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.001)
	f.Add("https://example.com/")

	// A single miss suffices; the false positive rate is one in a thousand.
	assert.False(t, f.Test("https://other.org/never-added"))
}

func TestFilter_estimated_count(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	assert.Zero(t, f.EstimatedCount())

	for i := 0; i < 100; i++ {
		f.Add(fmt.Sprintf("https://example.com/page/%d", i))
	}
	assert.InDelta(t, 100, float64(f.EstimatedCount()), 10)
}
