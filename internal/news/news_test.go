package news

import (
	"errors"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deusflow/findigest/internal/rss"
)

var keywords = []string{"finance", "crypto", "banking"}

func ts(t time.Time) *time.Time { return &t }

func TestFilterRecencyWindow(t *testing.T) {
	now := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)
	window := 24 * time.Hour

	results := []rss.FetchResult{{
		SourceTitle: "Feed",
		Items: []*gofeed.Item{
			{
				Title:           "Old finance story",
				Link:            "https://example.com/old",
				PublishedParsed: ts(time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)),
			},
			{
				Title:           "Fresh finance story",
				Link:            "https://example.com/fresh",
				PublishedParsed: ts(time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC)),
			},
			{
				Title: "Undated finance story",
				Link:  "https://example.com/undated",
			},
		},
	}}

	articles := Filter(results, keywords, window, now)

	require.Len(t, articles, 2)
	assert.Equal(t, "Fresh finance story", articles[0].Title)
	assert.Equal(t, "Undated finance story", articles[1].Title)
}

func TestFilterFallsBackToUpdatedTime(t *testing.T) {
	now := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)

	results := []rss.FetchResult{{
		SourceTitle: "Feed",
		Items: []*gofeed.Item{
			{
				Title:         "Updated-only finance story, stale",
				Link:          "https://example.com/stale",
				UpdatedParsed: ts(time.Date(2023, 12, 30, 0, 0, 0, 0, time.UTC)),
			},
			{
				Title:         "Updated-only finance story, fresh",
				Link:          "https://example.com/recent",
				UpdatedParsed: ts(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)),
			},
		},
	}}

	articles := Filter(results, keywords, 24*time.Hour, now)

	require.Len(t, articles, 1)
	assert.Equal(t, "Updated-only finance story, fresh", articles[0].Title)
}

func TestFilterKeywords(t *testing.T) {
	now := time.Now()

	results := []rss.FetchResult{{
		SourceTitle: "Feed",
		Items: []*gofeed.Item{
			{Title: "New finance regulations", Link: "https://example.com/1"},
			{Title: "Weather report", Link: "https://example.com/2"},
			{Title: "Dry headline", Description: "All about CRYPTO markets", Link: "https://example.com/3"},
			{Title: "Summary markup", Description: "<p>banking &amp; more</p>", Link: "https://example.com/4"},
		},
	}}

	articles := Filter(results, keywords, 24*time.Hour, now)

	require.Len(t, articles, 3)
	assert.Equal(t, "New finance regulations", articles[0].Title)
	assert.Equal(t, "Dry headline", articles[1].Title)
	assert.Equal(t, "Summary markup", articles[2].Title)
}

func TestFilterPlaceholders(t *testing.T) {
	now := time.Now()

	results := []rss.FetchResult{{
		SourceTitle: "Feed",
		Items: []*gofeed.Item{
			{Title: "Finance story without link"},
			{Description: "crypto summary, no title", Link: "https://example.com/x"},
		},
	}}

	articles := Filter(results, keywords, 24*time.Hour, now)

	require.Len(t, articles, 2)
	assert.Equal(t, NoLink, articles[0].Link)
	assert.Equal(t, NoTitle, articles[1].Title)
	assert.Equal(t, "https://example.com/x", articles[1].Link)
}

func TestFilterSkipsFailedSources(t *testing.T) {
	now := time.Now()

	results := []rss.FetchResult{
		{
			SourceTitle: "Broken",
			Err:         errors.New("fetch failed"),
			Items: []*gofeed.Item{
				{Title: "finance news that must not appear", Link: "https://example.com/leak"},
			},
		},
		{
			SourceTitle: "Working",
			Items: []*gofeed.Item{
				{Title: "crypto story", Link: "https://example.com/ok"},
			},
		},
	}

	articles := Filter(results, keywords, 24*time.Hour, now)

	require.Len(t, articles, 1)
	assert.Equal(t, "Working", articles[0].Source)
}

func TestFilterPreservesSourceOrderAndDuplicates(t *testing.T) {
	now := time.Now()

	dup := &gofeed.Item{Title: "Shared crypto story", Link: "https://example.com/same"}
	results := []rss.FetchResult{
		{SourceTitle: "First", Items: []*gofeed.Item{dup, {Title: "finance one", Link: "https://example.com/f1"}}},
		{SourceTitle: "Second", Items: []*gofeed.Item{dup}},
	}

	articles := Filter(results, keywords, 24*time.Hour, now)

	require.Len(t, articles, 3)
	assert.Equal(t, "First", articles[0].Source)
	assert.Equal(t, "First", articles[1].Source)
	assert.Equal(t, "Second", articles[2].Source)
	assert.Equal(t, articles[0].Link, articles[2].Link)
}

func TestFilterNormalizesFields(t *testing.T) {
	now := time.Now()

	results := []rss.FetchResult{{
		SourceTitle: "Feed",
		Items: []*gofeed.Item{
			{Title: "Fin​ance update", Link: " https://example.com/n "},
		},
	}}

	articles := Filter(results, keywords, 24*time.Hour, now)

	require.Len(t, articles, 1)
	assert.Equal(t, "Finance update", articles[0].Title)
	assert.Equal(t, "https://example.com/n", articles[0].Link)
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "plain", StripHTML("plain"))
	assert.Equal(t, "banking & more", StripHTML("<p>banking &amp; more</p>"))
	assert.Equal(t, "nested text", StripHTML("<div><b>nested</b> text</div>"))
}
