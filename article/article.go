package article

import "time"

// Category is the coarse classification of an article's publisher.
type Category string

var (
	Mainstream = Category("Mainstream Media")
	Trade      = Category("Trade Press")
	Blogs      = Category("Blogs & Independent")
	Government = Category("Government & Academic")
	NGO        = Category("NGO & Think Tank")
	Local      = Category("Local & Regional")
	Other      = Category("Other")
)

// Categories lists every defined category in display order.
func Categories() []Category {
	return []Category{Mainstream, Trade, Blogs, Government, NGO, Local, Other}
}

// Article is a single normalized feed entry. It is created by the
// collector and never modified afterwards.
type Article struct {
	// Keyword is the search expression as the user typed it, not the
	// translated provider query.
	Keyword string `json:"keyword"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	// Published keeps the provider's date text verbatim; PublishedAt is
	// the best-effort parse of it and is nil when parsing failed or the
	// provider omitted the field.
	Published      string     `json:"published"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	Source         string     `json:"source"`
	SourceCategory Category   `json:"source_category"`
	Description    string     `json:"description"`
}

// CollectionResult is the outcome of one collection run.
type CollectionResult struct {
	Articles     []Article `json:"articles"`
	CollectedAt  time.Time `json:"collected_at"`
	KeywordsUsed []string  `json:"keywords_used"`
}

// UniqueSources counts distinct publisher names in the result.
func (r CollectionResult) UniqueSources() int {
	seen := make(map[string]struct{}, len(r.Articles))
	for _, a := range r.Articles {
		seen[a.Source] = struct{}{}
	}
	return len(seen)
}

// CountByKeyword reports how many articles each keyword contributed.
func (r CollectionResult) CountByKeyword() map[string]int {
	counts := make(map[string]int, len(r.KeywordsUsed))
	for _, a := range r.Articles {
		counts[a.Keyword]++
	}
	return counts
}
