// Package filter narrows a collected article set with caller-supplied
// predicates. Dimensions combine with AND; within a set dimension an
// article passes when its value is a member.
package filter

import (
	"slices"
	"strings"
	"time"

	"github.com/scipunch/newswatch/article"
)

// Spec is the predicate combination for a single query. Zero values
// mean "no restriction": an empty text query matches everything, a zero
// From or To leaves that side of the date range open, and empty sets
// pass every article.
type Spec struct {
	// Text is matched case-insensitively against title and description.
	Text string
	// From and To bound the publish date, inclusive; To extends through
	// the end of its calendar day.
	From       time.Time
	To         time.Time
	Keywords   []string
	Categories []article.Category
	Sources    []string
}

// Stats describes how a spec matched against a collection.
type Stats struct {
	Total   int
	Matched int
	// BeforeSearch counts articles passing every predicate except the
	// text query; it is the denominator of MatchRate.
	BeforeSearch int
	// MatchRate is Matched/BeforeSearch as a percentage, 0 when the
	// denominator is 0.
	MatchRate float64
}

// Apply returns the articles matching every predicate, in collection
// order. An empty result is a defined state, not an error.
func Apply(result article.CollectionResult, spec Spec) []article.Article {
	matched := make([]article.Article, 0, len(result.Articles))
	for _, a := range result.Articles {
		if spec.Matches(a) {
			matched = append(matched, a)
		}
	}
	return matched
}

// Summarize reports match statistics for the same predicates Apply
// evaluates.
func Summarize(result article.CollectionResult, spec Spec) Stats {
	stats := Stats{Total: len(result.Articles)}
	for _, a := range result.Articles {
		if !matchesDate(a, spec.From, spec.To) || !spec.matchesSets(a) {
			continue
		}
		stats.BeforeSearch++
		if matchesText(a, spec.Text) {
			stats.Matched++
		}
	}
	if stats.BeforeSearch > 0 {
		stats.MatchRate = 100 * float64(stats.Matched) / float64(stats.BeforeSearch)
	}
	return stats
}

// Matches reports whether one article passes every predicate. The
// cheap date and text checks run before the set memberships.
func (s Spec) Matches(a article.Article) bool {
	return matchesDate(a, s.From, s.To) && matchesText(a, s.Text) && s.matchesSets(a)
}

func (s Spec) matchesSets(a article.Article) bool {
	if len(s.Keywords) > 0 && !slices.Contains(s.Keywords, a.Keyword) {
		return false
	}
	if len(s.Categories) > 0 && !slices.Contains(s.Categories, a.SourceCategory) {
		return false
	}
	if len(s.Sources) > 0 && !slices.Contains(s.Sources, a.Source) {
		return false
	}
	return true
}

// matchesDate keeps articles without a parsed date regardless of the
// range: upstream date parsing is unreliable, so a missing date must
// never exclude an article.
func matchesDate(a article.Article, from, to time.Time) bool {
	if a.PublishedAt == nil {
		return true
	}
	t := *a.PublishedAt
	if !from.IsZero() {
		start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
		if t.Before(start) {
			return false
		}
	}
	if !to.IsZero() {
		end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location()).AddDate(0, 0, 1)
		if !t.Before(end) {
			return false
		}
	}
	return true
}

func matchesText(a article.Article, text string) bool {
	q := strings.ToLower(strings.TrimSpace(text))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(a.Title), q) ||
		strings.Contains(strings.ToLower(a.Description), q)
}

// Today returns the date range covering the current day.
func Today() (from, to time.Time) {
	now := time.Now()
	return now, now
}

// LastDays returns the inclusive range from n days ago through today.
func LastDays(n int) (from, to time.Time) {
	now := time.Now()
	return now.AddDate(0, 0, -n), now
}
