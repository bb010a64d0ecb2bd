package classify

import (
	"testing"

	"github.com/scipunch/newswatch/article"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   article.Category
	}{
		{"wire service", "Reuters", article.Mainstream},
		{"broadsheet", "The New York Times", article.Mainstream},
		{"tech trade press", "TechCrunch", article.Trade},
		{"trade vertical", "Utility Dive", article.Trade},
		{"government body", "U.S. Department of Energy", article.Government},
		{"academic", "Stanford University", article.Government},
		{"think tank", "World Resources Institute", article.NGO},
		{"advocacy group", "Greenpeace International", article.NGO},
		{"personal blog", "Climate Blog", article.Blogs},
		{"substack outlet", "Heated Substack", article.Blogs},
		{"regional paper", "Portland Tribune", article.Local},
		{"county paper", "Bucks County Courier", article.Local},
		{"unknown publisher", "Example News Network", article.Other},
		{"sentinel value", "Unknown", article.Other},
		{"empty name", "", article.Other},
		{"case insensitive", "REUTERS", article.Mainstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.source); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}

// A name matching both a mainstream term and a local term must resolve
// through the fixed list order, not by accident of map iteration.
func TestClassifyPrecedence(t *testing.T) {
	tests := []struct {
		source string
		want   article.Category
	}{
		// "times" (mainstream) beats nothing else matching.
		{"Times", article.Mainstream},
		// "times" (mainstream) beats "herald" (local).
		{"Times Herald", article.Mainstream},
		// "journal" (trade) beats "courier" (local).
		{"Journal Courier", article.Trade},
		// "university" (government) beats "blog" (blogs).
		{"University Blog", article.Government},
	}

	for _, tt := range tests {
		if got := Classify(tt.source); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.source, got, tt.want)
		}
	}
}

// Classify must return one of the seven defined categories for any
// input, adversarial or not.
func TestClassifyTotality(t *testing.T) {
	defined := make(map[article.Category]bool)
	for _, c := range article.Categories() {
		defined[c] = true
	}

	inputs := []string{
		"", " ", "Unknown", "日本経済新聞", "<script>alert(1)</script>",
		"a very long publisher name that matches nothing in particular",
		"\x00\xff", "TIMES TRIBUNE JOURNAL UNIVERSITY BLOG",
	}
	for _, in := range inputs {
		got := Classify(in)
		if !defined[got] {
			t.Errorf("Classify(%q) = %q, not a defined category", in, got)
		}
	}
}
