package filter

import (
	"testing"
	"time"

	"github.com/scipunch/newswatch/article"
)

func ts(value string) *time.Time {
	t, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		panic(err)
	}
	return &t
}

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func testCollection() article.CollectionResult {
	return article.CollectionResult{
		CollectedAt: time.Now(),
		KeywordsUsed: []string{
			"carbon capture", "scope 3 emissions",
		},
		Articles: []article.Article{
			{
				Keyword:        "carbon capture",
				Title:          "Carbon capture plant opens",
				URL:            "https://example.com/1",
				PublishedAt:    ts("2026-08-10 09:00"),
				Source:         "Reuters",
				SourceCategory: article.Mainstream,
				Description:    "A new direct air capture facility.",
			},
			{
				Keyword:        "carbon capture",
				Title:          "Opinion: capture is a distraction",
				URL:            "https://example.com/2",
				PublishedAt:    ts("2026-08-15 23:30"),
				Source:         "Climate Blog",
				SourceCategory: article.Blogs,
				Description:    "An argument against subsidies.",
			},
			{
				Keyword:        "scope 3 emissions",
				Title:          "Regulators weigh scope 3 rules",
				URL:            "https://example.com/3",
				PublishedAt:    nil,
				Published:      "last Tuesday, allegedly",
				Source:         "Utility Dive",
				SourceCategory: article.Trade,
				Description:    "Disclosure requirements remain contested.",
			},
			{
				Keyword:        "scope 3 emissions",
				Title:          "University study on supplier emissions",
				URL:            "https://example.com/4",
				PublishedAt:    ts("2026-07-01 12:00"),
				Source:         "Stanford University",
				SourceCategory: article.Government,
				Description:    "Measuring what suppliers actually emit.",
			},
		},
	}
}

func urls(articles []article.Article) []string {
	out := make([]string, 0, len(articles))
	for _, a := range articles {
		out = append(out, a.URL)
	}
	return out
}

func TestApply(t *testing.T) {
	coll := testCollection()

	tests := []struct {
		name string
		spec Spec
		want []string
	}{
		{
			name: "empty spec matches everything",
			spec: Spec{},
			want: []string{"https://example.com/1", "https://example.com/2", "https://example.com/3", "https://example.com/4"},
		},
		{
			name: "text search is case-insensitive across title and description",
			spec: Spec{Text: "CAPTURE"},
			want: []string{"https://example.com/1", "https://example.com/2"},
		},
		{
			name: "text search hits description only",
			spec: Spec{Text: "suppliers actually"},
			want: []string{"https://example.com/4"},
		},
		{
			name: "date range is inclusive and keeps undated articles",
			spec: Spec{From: day("2026-08-10"), To: day("2026-08-15")},
			want: []string{"https://example.com/1", "https://example.com/2", "https://example.com/3"},
		},
		{
			name: "keyword set restricts membership",
			spec: Spec{Keywords: []string{"scope 3 emissions"}},
			want: []string{"https://example.com/3", "https://example.com/4"},
		},
		{
			name: "category set restricts membership",
			spec: Spec{Categories: []article.Category{article.Mainstream, article.Trade}},
			want: []string{"https://example.com/1", "https://example.com/3"},
		},
		{
			name: "source set restricts membership",
			spec: Spec{Sources: []string{"Reuters"}},
			want: []string{"https://example.com/1"},
		},
		{
			name: "dimensions combine with AND",
			spec: Spec{Text: "capture", Keywords: []string{"carbon capture"}, Categories: []article.Category{article.Blogs}},
			want: []string{"https://example.com/2"},
		},
		{
			name: "no matches is a defined empty state",
			spec: Spec{Text: "fusion reactor"},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := urls(Apply(coll, tt.spec))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

// An empty keyword set means "no restriction", so it must select the
// same articles as listing every keyword present in the collection.
func TestApplyEmptySetEqualsFullSet(t *testing.T) {
	coll := testCollection()

	empty := Apply(coll, Spec{})
	full := Apply(coll, Spec{Keywords: coll.KeywordsUsed})

	if len(empty) != len(full) {
		t.Fatalf("empty set matched %d, full set matched %d", len(empty), len(full))
	}
	for i := range empty {
		if empty[i].URL != full[i].URL {
			t.Fatalf("result sets differ at %d: %q vs %q", i, empty[i].URL, full[i].URL)
		}
	}
}

// Articles whose date failed to parse pass any date range.
func TestApplyMissingDateAlwaysPasses(t *testing.T) {
	coll := testCollection()

	ranges := []struct{ from, to time.Time }{
		{day("2026-08-01"), day("2026-08-31")},
		{day("1990-01-01"), day("1990-01-02")},
		{time.Time{}, day("2000-01-01")},
	}
	for _, r := range ranges {
		got := urls(Apply(coll, Spec{From: r.from, To: r.to}))
		found := false
		for _, u := range got {
			if u == "https://example.com/3" {
				found = true
			}
		}
		if !found {
			t.Errorf("undated article excluded by range %v..%v", r.from, r.to)
		}
	}
}

func TestApplyEndOfDayInclusive(t *testing.T) {
	coll := testCollection()

	// Article 2 is published 2026-08-15 23:30; a To of the same day
	// must still include it.
	got := urls(Apply(coll, Spec{From: day("2026-08-15"), To: day("2026-08-15")}))
	want := map[string]bool{"https://example.com/2": true, "https://example.com/3": true}
	if len(got) != 2 || !want[got[0]] || !want[got[1]] {
		t.Errorf("got %v, want the late-evening and undated articles", got)
	}
}

func TestSummarizeMatchRate(t *testing.T) {
	// Ten articles pass the non-text predicates, three match the query.
	coll := article.CollectionResult{}
	for i := 0; i < 10; i++ {
		a := article.Article{
			Keyword: "k",
			URL:     string(rune('a' + i)),
			Title:   "filler",
		}
		if i < 3 {
			a.Title = "solar breakthrough"
		}
		coll.Articles = append(coll.Articles, a)
	}

	stats := Summarize(coll, Spec{Text: "solar"})
	if stats.Total != 10 {
		t.Errorf("Total = %d, want 10", stats.Total)
	}
	if stats.BeforeSearch != 10 {
		t.Errorf("BeforeSearch = %d, want 10", stats.BeforeSearch)
	}
	if stats.Matched != 3 {
		t.Errorf("Matched = %d, want 3", stats.Matched)
	}
	if stats.MatchRate != 30.0 {
		t.Errorf("MatchRate = %v, want 30.0", stats.MatchRate)
	}
}

func TestSummarizeZeroDenominator(t *testing.T) {
	coll := testCollection()
	stats := Summarize(coll, Spec{Text: "anything", Keywords: []string{"no such keyword"}})
	if stats.BeforeSearch != 0 || stats.Matched != 0 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.MatchRate != 0 {
		t.Errorf("MatchRate with zero denominator = %v, want 0", stats.MatchRate)
	}
}

func TestLastDays(t *testing.T) {
	from, to := LastDays(7)
	if !from.Before(to) {
		t.Errorf("expected from %v before to %v", from, to)
	}
	if diff := to.Sub(from); diff < 7*24*time.Hour-time.Minute || diff > 7*24*time.Hour+time.Minute {
		t.Errorf("unexpected range width: %v", diff)
	}
}
