package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed/rss"

	"github.com/scipunch/newswatch/article"
	"github.com/scipunch/newswatch/classify"
	"github.com/scipunch/newswatch/config"
	"github.com/scipunch/newswatch/query"
)

const (
	userAgent = "newswatch/0.1"
	// Upper bound on a single feed document, to avoid huge downloads.
	maxFeedBytes = 5 << 20
)

// Fetcher retrieves the provider's search feed for one keyword and
// normalizes its entries into articles.
type Fetcher struct {
	feed   config.FeedConfig
	client *http.Client
	parser *rss.Parser
}

// NewFetcher creates a fetcher against the configured search endpoint.
func NewFetcher(feed config.FeedConfig) *Fetcher {
	return &Fetcher{
		feed: feed,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		parser: &rss.Parser{},
	}
}

// FeedURL builds the provider request URL for an already translated
// query string.
func (f *Fetcher) FeedURL(translated string) string {
	v := url.Values{}
	v.Set("q", translated)
	v.Set("hl", f.feed.Language)
	v.Set("gl", f.feed.Country)
	v.Set("ceid", f.feed.Edition)
	return f.feed.BaseURL + "?" + v.Encode()
}

// Fetch translates the keyword, requests the search feed and returns
// one article per entry. The articles carry the original keyword as
// typed, never the translated query.
func (f *Fetcher) Fetch(ctx context.Context, keyword string) ([]article.Article, error) {
	feedURL := f.FeedURL(query.Translate(keyword))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request with %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch search feed with %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected feed response status %d", resp.StatusCode)
	}

	feed, err := f.parser.Parse(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to parse search feed with %w", err)
	}

	articles := make([]article.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		articles = append(articles, normalize(keyword, item))
	}
	return articles, nil
}

// normalize converts one raw feed entry into an Article. Every field is
// best effort: a missing source becomes "Unknown" and an unparsable
// date leaves PublishedAt nil while the raw text is kept for display.
func normalize(keyword string, item *rss.Item) article.Article {
	sourceName := "Unknown"
	if item.Source != nil && item.Source.Title != "" {
		sourceName = item.Source.Title
	}

	a := article.Article{
		Keyword:        keyword,
		Title:          item.Title,
		URL:            item.Link,
		Published:      item.PubDate,
		Source:         sourceName,
		SourceCategory: classify.Classify(sourceName),
		Description:    item.Description,
	}
	a.PublishedAt = parsePublished(item)
	return a
}

func parsePublished(item *rss.Item) *time.Time {
	if item.PubDateParsed != nil {
		t := *item.PubDateParsed
		return &t
	}
	if item.PubDate == "" {
		return nil
	}
	t, err := dateparse.ParseAny(item.PubDate)
	if err != nil {
		return nil
	}
	return &t
}
