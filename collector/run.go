package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/scipunch/newswatch/article"
)

// KeywordFetcher fetches the provider feed for a single keyword.
type KeywordFetcher interface {
	Fetch(ctx context.Context, keyword string) ([]article.Article, error)
}

// FeedCache suppresses re-fetching a keyword that was collected
// recently. Implementations decide staleness on read.
type FeedCache interface {
	Get(keyword string) ([]article.Article, bool)
	Set(keyword string, articles []article.Article) error
}

// Progress receives the run's completion fraction (0..1) and a status
// line naming the in-flight keyword. It is display-only.
type Progress func(fraction float64, status string)

// Runner collects every configured keyword in order, one at a time.
// Fetches are deliberately sequential with a pacing delay between them
// to bound the request rate against the provider.
type Runner struct {
	Fetcher KeywordFetcher
	// Cache is optional; nil disables re-fetch suppression.
	Cache FeedCache
	// Delay is the pause after each network fetch. Cache hits skip it.
	Delay time.Duration
	// Progress is optional; nil disables reporting.
	Progress Progress
}

// Run fetches all keywords and returns the deduplicated collection.
// Per-keyword failures never abort the run: the failing keyword simply
// contributes no articles, and the joined failures are returned
// alongside the (always valid) result so the caller can log them.
// Cancellation is honored between keywords; articles already collected
// are kept and returned.
func (r *Runner) Run(ctx context.Context, keywords []string) (article.CollectionResult, error) {
	result := article.CollectionResult{
		CollectedAt:  time.Now(),
		KeywordsUsed: slices.Clone(keywords),
	}
	if len(keywords) == 0 {
		return result, nil
	}

	var errs []error
	var collected []article.Article
	total := len(keywords)

	for i, keyword := range keywords {
		select {
		case <-ctx.Done():
			errs = append(errs, ctx.Err())
			result.Articles = dedupe(collected)
			return result, errors.Join(errs...)
		default:
		}

		r.report(float64(i)/float64(total), fmt.Sprintf("Fetching articles for: %s", keyword))

		articles, fromCache, err := r.fetchKeyword(ctx, keyword)
		if err != nil {
			errs = append(errs, fmt.Errorf("'%s' fetch failed with %w", keyword, err))
		} else {
			collected = append(collected, articles...)
		}

		if !fromCache && r.Delay > 0 {
			if err := sleep(ctx, r.Delay); err != nil {
				errs = append(errs, err)
				result.Articles = dedupe(collected)
				return result, errors.Join(errs...)
			}
		}
	}

	r.report(1, "Collection complete")
	result.Articles = dedupe(collected)
	return result, errors.Join(errs...)
}

func (r *Runner) fetchKeyword(ctx context.Context, keyword string) ([]article.Article, bool, error) {
	if r.Cache != nil {
		if cached, hit := r.Cache.Get(keyword); hit {
			slog.Debug("feed cache hit", "keyword", keyword, "articles", len(cached))
			return cached, true, nil
		}
	}

	articles, err := r.Fetcher.Fetch(ctx, keyword)
	if err != nil {
		return nil, false, err
	}
	slog.Debug("feed fetched", "keyword", keyword, "articles", len(articles))

	if r.Cache != nil {
		if err := r.Cache.Set(keyword, articles); err != nil {
			slog.Warn("failed to cache feed", "keyword", keyword, "error", err)
		}
	}
	return articles, false, nil
}

func (r *Runner) report(fraction float64, status string) {
	if r.Progress != nil {
		r.Progress(fraction, status)
	}
}

// dedupe keeps the first occurrence of every non-empty URL, preserving
// keyword-then-provider order. Articles without a URL are never merged.
func dedupe(articles []article.Article) []article.Article {
	seen := make(map[string]struct{}, len(articles))
	out := make([]article.Article, 0, len(articles))
	for _, a := range articles {
		if a.URL != "" {
			if _, dup := seen[a.URL]; dup {
				continue
			}
			seen[a.URL] = struct{}{}
		}
		out = append(out, a)
	}
	return out
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
