// Package rss downloads and parses the configured feeds. One broken feed
// must never take down the run, so every source gets its own FetchResult.
package rss

import (
	"context"
	"os"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"github.com/deusflow/findigest/internal/logger"
	"github.com/deusflow/findigest/internal/metrics"
	"github.com/deusflow/findigest/internal/textutil"
)

// UnknownSource labels feeds whose title metadata is missing or unusable.
const UnknownSource = "Unknown Source"

// FeedsConfig is the YAML override file structure
//
// feeds:
//   - https://...
// keywords:
//   - banking
type FeedsConfig struct {
	Feeds    []string `yaml:"feeds"`
	Keywords []string `yaml:"keywords"`
}

// LoadFeeds reads the feeds and keywords lists from a YAML file.
func LoadFeeds(path string) (*FeedsConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg FeedsConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FetchResult is the outcome of one source: either its parsed items or the
// fetch/parse error that excluded it from this run.
type FetchResult struct {
	URL         string
	SourceTitle string
	Items       []*gofeed.Item
	Err         error
}

// FetchAll downloads and parses every feed in order, one at a time, with a
// per-feed timeout. Errors are recorded on the result and logged, never
// returned; results come back in the same order as urls.
func FetchAll(ctx context.Context, urls []string, timeout time.Duration) []FetchResult {
	parser := gofeed.NewParser()
	parser.UserAgent = "findigest/1.0 (RSS digest)"

	results := make([]FetchResult, 0, len(urls))
	successCount := 0

	for _, url := range urls {
		res := fetchOne(ctx, parser, url, timeout)
		if res.Err != nil {
			metrics.Global.IncrementFeedsFailed()
			logger.Warn("feed fetch failed", "url", url, "error", res.Err)
		} else {
			successCount++
			metrics.Global.IncrementFeedsFetched()
			logger.Info("feed loaded", "url", url, "items", len(res.Items), "source", res.SourceTitle)
		}
		results = append(results, res)
	}

	logger.Info("feeds processed", "ok", successCount, "total", len(urls))
	return results
}

func fetchOne(ctx context.Context, parser *gofeed.Parser, url string, timeout time.Duration) FetchResult {
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	feed, err := parser.ParseURLWithContext(url, fetchCtx)
	if err != nil {
		return FetchResult{URL: url, SourceTitle: UnknownSource, Err: err}
	}

	title := textutil.Normalize(feed.Title)
	if title == "" {
		title = UnknownSource
	}
	return FetchResult{URL: url, SourceTitle: title, Items: feed.Items}
}
