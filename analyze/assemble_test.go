package analyze_test

import (
	"testing"

	"github.com/chaffhq/chaff"
	"github.com/chaffhq/chaff/analyze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble_aggregates_domain_counts(t *testing.T) {
	t.Parallel()

	pages := []*chaff.Page{
		storyPage("https://example.com/", "Front", 2),
		storyPage("https://example.com/news", "News", 2),
	}

	d := &analyze.Detector{}
	groups := d.Detect(pages)
	require.NotEmpty(t, groups)

	result := analyze.Assemble("example.com", pages, groups, 1)

	assert.Equal(t, "example.com", result.Domain)
	assert.Equal(t, len(groups), result.DuplicateGroupCount)
	assert.Equal(t, 1, result.TemplateCount)

	wantFlagged := 0
	for _, g := range groups {
		wantFlagged += len(g.Occurrences)
	}
	assert.Equal(t, wantFlagged, result.FlaggedNodeCount)

	require.Len(t, result.Pages, 2)
	for _, pr := range result.Pages {
		assert.Equal(t, chaff.StatusSuccess, pr.Status)
		assert.Positive(t, pr.TotalNodes)
		assert.Positive(t, pr.DuplicateNodes)
		assert.LessOrEqual(t, pr.DuplicateNodes, pr.TotalNodes)
	}
}

func TestAssemble_keeps_failed_pages_without_trees(t *testing.T) {
	t.Parallel()

	pages := []*chaff.Page{
		{URL: "https://example.com/broken", Status: chaff.StatusFailed, FailReason: "connection refused"},
	}

	result := analyze.Assemble("example.com", pages, nil, 0)

	require.Len(t, result.Pages, 1)
	assert.Equal(t, chaff.StatusFailed, result.Pages[0].Status)
	assert.Equal(t, "connection refused", result.Pages[0].FailReason)
	assert.Zero(t, result.Pages[0].TotalNodes)
	assert.Nil(t, result.Pages[0].Tree)
	assert.Zero(t, result.DuplicateGroupCount)
	assert.Zero(t, result.FlaggedNodeCount)
}
