// Package news selects the articles worth mailing out of the raw feed items.
package news

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/deusflow/findigest/internal/logger"
	"github.com/deusflow/findigest/internal/metrics"
	"github.com/deusflow/findigest/internal/rss"
	"github.com/deusflow/findigest/internal/textutil"
)

// Placeholders for feed items that arrive without the field.
const (
	NoTitle = "No title available"
	NoLink  = "No link available"
)

// Article is one digest entry: normalized title and link plus the feed it
// came from. Built once during filtering, immutable afterwards.
type Article struct {
	Title  string
	Link   string
	Source string
}

// Filter walks the fetch results in source order and keeps entries that are
// fresh enough and mention at least one keyword. Failed sources contribute
// nothing; duplicates across feeds are kept as-is.
func Filter(results []rss.FetchResult, keywords []string, window time.Duration, now time.Time) []Article {
	cutoff := now.Add(-window)
	var articles []Article

	for _, res := range results {
		if res.Err != nil {
			continue
		}
		source := res.SourceTitle
		if source == "" {
			source = rss.UnknownSource
		}

		for _, item := range res.Items {
			metrics.Global.IncrementEntriesSeen()

			// Recency is best effort: feeds without a usable date are
			// let through rather than dropped.
			if ts := publishedAt(item); ts != nil && ts.Before(cutoff) {
				continue
			}

			title := textutil.Normalize(item.Title)
			summary := textutil.Normalize(StripHTML(item.Description))
			if !matchesKeywords(title, summary, keywords) {
				continue
			}

			if title == "" {
				title = NoTitle
			}
			link := textutil.Normalize(item.Link)
			if link == "" {
				link = NoLink
			}

			articles = append(articles, Article{Title: title, Link: link, Source: source})
			metrics.Global.IncrementArticlesMatched()
			logger.Debug("article matched", "title", title, "source", source)
		}
	}

	return articles
}

// publishedAt prefers the published time, falls back to updated, and reports
// nil when the feed gives neither.
func publishedAt(item *gofeed.Item) *time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed
	}
	return item.UpdatedParsed
}

// matchesKeywords is a flat case-insensitive substring match over title and
// summary. There is no word-boundary logic, so keyword "payment" also
// matches "prepayment".
func matchesKeywords(title, summary string, keywords []string) bool {
	haystack := strings.ToLower(title + " " + summary)
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if strings.Contains(haystack, k) {
			return true
		}
	}
	return false
}

// StripHTML extracts the plain text of a feed summary that arrives as HTML
// markup. On parse failure the raw string is returned.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}
