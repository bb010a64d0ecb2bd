package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/scipunch/newswatch/article"
	"github.com/scipunch/newswatch/cache"
	"github.com/scipunch/newswatch/collector"
	"github.com/scipunch/newswatch/config"
	"github.com/scipunch/newswatch/export"
	"github.com/scipunch/newswatch/filter"
)

func main() {
	if os.Getenv("DEBUG") != "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var cfgPath string
	var cleanCache bool
	var searchText, fromStr, toStr string
	var lastDays int
	var keywordsFlag, categoriesFlag, sourcesFlag string
	flag.StringVar(&cfgPath, "config", config.DefaultPath(), "path to a TOML config")
	flag.BoolVar(&cleanCache, "clean", false, "remove all cached feeds")
	flag.StringVar(&searchText, "search", "", "filter: free-text search in titles and descriptions")
	flag.StringVar(&fromStr, "from", "", "filter: start date (YYYY-MM-DD)")
	flag.StringVar(&toStr, "to", "", "filter: end date (YYYY-MM-DD), inclusive")
	flag.IntVar(&lastDays, "last", 0, "filter: only articles from the last N days")
	flag.StringVar(&keywordsFlag, "keywords", "", "filter: comma-separated keyword subset")
	flag.StringVar(&categoriesFlag, "categories", "", "filter: comma-separated source categories")
	flag.StringVar(&sourcesFlag, "sources", "", "filter: comma-separated source names")
	flag.Parse()

	// Read config and create if default is missing
	conf, err := config.Read(cfgPath)
	if errors.Is(err, os.ErrNotExist) && cfgPath == config.DefaultPath() {
		if err := config.Write(cfgPath, conf); err != nil {
			log.Fatalf("failed to write default config with %s", err)
		}
	} else if err != nil {
		log.Fatalf("failed to read config with %s", err)
	}

	spec, filtering, err := buildSpec(searchText, fromStr, toStr, lastDays, keywordsFlag, categoriesFlag, sourcesFlag)
	if err != nil {
		log.Fatalf("invalid filter flags: %s", err)
	}

	feedCache, err := cache.New(conf.DatabasePath, conf.CacheTTL())
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}
	defer feedCache.Close()

	// Handle -clean flag
	if cleanCache {
		if err := feedCache.Clear(); err != nil {
			log.Fatalf("failed to clear cache: %v", err)
		}
		slog.Info("cache cleared successfully")
		return
	}

	if stats, err := feedCache.CacheStats(); err != nil {
		slog.Warn("failed to get cache stats", "error", err)
	} else {
		slog.Info("cache initialized", "entries", stats.Entries)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := &collector.Runner{
		Fetcher: collector.NewFetcher(conf.Feed),
		Cache:   feedCache,
		Delay:   conf.PacingDelay(),
		Progress: func(fraction float64, status string) {
			slog.Info(status, "progress", fmt.Sprintf("%.0f%%", fraction*100))
		},
	}

	result, err := runner.Run(ctx, conf.Keywords)
	if err != nil {
		// Failed keywords contribute no articles; the rest of the run
		// is still valid.
		slog.Error("some keywords were not collected", "failures", err)
	}
	if len(result.Articles) == 0 {
		slog.Warn("no articles found", "keywords", len(conf.Keywords))
		return
	}

	slog.Info("collection complete",
		"articles", len(result.Articles),
		"keywords_searched", len(result.KeywordsUsed),
		"unique_sources", result.UniqueSources())
	for keyword, count := range result.CountByKeyword() {
		slog.Debug("articles by keyword", "keyword", keyword, "count", count)
	}

	matched := result.Articles
	prefix := "rss_feed"
	if filtering {
		matched = filter.Apply(result, spec)
		stats := filter.Summarize(result, spec)
		slog.Info("filters applied",
			"matched", stats.Matched,
			"total", stats.Total,
			"match_rate", fmt.Sprintf("%.1f%%", stats.MatchRate))
		if len(matched) == 0 {
			slog.Warn("no articles match the filters")
			return
		}
		prefix = "filtered_results"
	}

	if err := os.MkdirAll(conf.OutputDirectory, os.ModePerm); err != nil {
		log.Fatalf("failed to create output directory at '%s' with %s", conf.OutputDirectory, err)
	}
	csvPath, jsonPath, err := writeExports(conf.OutputDirectory, prefix, result.CollectedAt, matched)
	if err != nil {
		log.Fatalf("failed to write exports with %s", err)
	}
	slog.Info("exports written", "csv", csvPath, "json", jsonPath)
}

// buildSpec turns the filter flags into a filter.Spec. The second
// return value reports whether any filter was requested at all.
func buildSpec(text, fromStr, toStr string, lastDays int, keywords, categories, sources string) (filter.Spec, bool, error) {
	spec := filter.Spec{
		Text:     text,
		Keywords: splitList(keywords),
		Sources:  splitList(sources),
	}

	if lastDays > 0 {
		spec.From, spec.To = filter.LastDays(lastDays)
	}
	if fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return spec, false, fmt.Errorf("failed to parse -from date with %w", err)
		}
		spec.From = from
	}
	if toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return spec, false, fmt.Errorf("failed to parse -to date with %w", err)
		}
		spec.To = to
	}

	for _, name := range splitList(categories) {
		category, err := parseCategory(name)
		if err != nil {
			return spec, false, err
		}
		spec.Categories = append(spec.Categories, category)
	}

	filtering := spec.Text != "" || !spec.From.IsZero() || !spec.To.IsZero() ||
		len(spec.Keywords) > 0 || len(spec.Categories) > 0 || len(spec.Sources) > 0
	return spec, filtering, nil
}

func parseCategory(name string) (article.Category, error) {
	for _, category := range article.Categories() {
		if strings.EqualFold(name, string(category)) {
			return category, nil
		}
	}
	valid := make([]string, 0, len(article.Categories()))
	for _, category := range article.Categories() {
		valid = append(valid, string(category))
	}
	return article.Other, fmt.Errorf("unknown category '%s', expected one of: %s", name, strings.Join(valid, ", "))
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func writeExports(dir, prefix string, at time.Time, articles []article.Article) (string, string, error) {
	csvPath := filepath.Join(dir, export.FileName(prefix, at, "csv"))
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create '%s' with %w", csvPath, err)
	}
	defer csvFile.Close()
	if err := export.WriteCSV(csvFile, articles); err != nil {
		return "", "", err
	}

	jsonPath := filepath.Join(dir, export.FileName(prefix, at, "json"))
	jsonFile, err := os.Create(jsonPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create '%s' with %w", jsonPath, err)
	}
	defer jsonFile.Close()
	if err := export.WriteJSON(jsonFile, articles); err != nil {
		return "", "", err
	}

	return csvPath, jsonPath, nil
}
