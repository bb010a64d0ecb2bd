package cache

import (
	"encoding/json"
	"fmt"

	"github.com/scipunch/newswatch/article"
)

// cachedFeed wraps the article slice for storage so the format can
// carry a version and reject entries written by an older build.
type cachedFeed struct {
	Version  int             `json:"version"`
	Articles json.RawMessage `json:"articles"`
}

const feedVersion = 1

// SerializeArticles converts a fetched feed to JSON bytes for storage.
func SerializeArticles(articles []article.Article) ([]byte, error) {
	data, err := json.Marshal(articles)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal articles: %w", err)
	}
	return json.Marshal(cachedFeed{Version: feedVersion, Articles: data})
}

// DeserializeArticles converts stored JSON bytes back to articles.
func DeserializeArticles(blob []byte) ([]article.Article, error) {
	var cached cachedFeed
	if err := json.Unmarshal(blob, &cached); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached feed: %w", err)
	}
	if cached.Version != feedVersion {
		return nil, fmt.Errorf("cached feed version mismatch: stored=%d, expected=%d", cached.Version, feedVersion)
	}
	var articles []article.Article
	if err := json.Unmarshal(cached.Articles, &articles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached articles: %w", err)
	}
	return articles, nil
}
