package crawl_test

import (
	"testing"

	"github.com/chaffhq/chaff"
	"github.com/chaffhq/chaff/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_pops_by_role_priority(t *testing.T) {
	t.Parallel()

	q := crawl.NewQueue(100, 0.01)
	require.True(t, q.Push(chaff.NewPage("https://example.com/found", chaff.RoleDiscovered, 2)))
	require.True(t, q.Push(chaff.NewPage("https://example.com/", chaff.RoleRoot, 1)))
	require.True(t, q.Push(chaff.NewPage("https://example.com/seed", chaff.RoleSeed, 0)))

	var roles []chaff.Role
	for {
		page, ok := q.Pop()
		if !ok {
			break
		}
		roles = append(roles, page.Role)
	}
	assert.Equal(t, []chaff.Role{chaff.RoleSeed, chaff.RoleRoot, chaff.RoleDiscovered}, roles)
}

func TestQueue_breaks_ties_by_sequence(t *testing.T) {
	t.Parallel()

	q := crawl.NewQueue(100, 0.01)
	require.True(t, q.Push(chaff.NewPage("https://example.com/b", chaff.RoleDiscovered, 5)))
	require.True(t, q.Push(chaff.NewPage("https://example.com/a", chaff.RoleDiscovered, 3)))
	require.True(t, q.Push(chaff.NewPage("https://example.com/c", chaff.RoleDiscovered, 9)))

	var urls []string
	for {
		page, ok := q.Pop()
		if !ok {
			break
		}
		urls = append(urls, page.URL)
	}
	assert.Equal(t, []string{
		"https://example.com/a",
		"https://example.com/b",
		"https://example.com/c",
	}, urls)
}

func TestQueue_dedupes_normalized_urls(t *testing.T) {
	t.Parallel()

	q := crawl.NewQueue(100, 0.01)
	assert.True(t, q.Push(chaff.NewPage("https://example.com/page", chaff.RoleSeed, 0)))
	assert.False(t, q.Push(chaff.NewPage("https://example.com/page#frag", chaff.RoleDiscovered, 1)))
	assert.Equal(t, 1, q.Len())
}

func TestQueue_seen_reflects_pushed_urls(t *testing.T) {
	t.Parallel()

	q := crawl.NewQueue(100, 0.01)
	assert.False(t, q.Seen("https://example.com/page"))
	require.True(t, q.Push(chaff.NewPage("https://example.com/page", chaff.RoleSeed, 0)))
	assert.True(t, q.Seen("https://example.com/page"))
	assert.True(t, q.Seen("https://example.com/page#frag"))

	// Seen outlives Pop: dedup covers the whole crawl, not just the backlog.
	_, ok := q.Pop()
	require.True(t, ok)
	assert.True(t, q.Seen("https://example.com/page"))
}

func TestQueue_pop_empty(t *testing.T) {
	t.Parallel()

	q := crawl.NewQueue(100, 0.01)
	page, ok := q.Pop()
	assert.Nil(t, page)
	assert.False(t, ok)
	assert.Zero(t, q.Len())
}
