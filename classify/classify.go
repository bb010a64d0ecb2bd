// Package classify assigns publisher names to a coarse category using
// ordered substring rules. The rule lists overlap on purpose (generic
// words like "times" or "journal" appear in several kinds of outlet
// names), so evaluation order is the disambiguation policy: the first
// list with any match wins. Reordering the lists changes classification
// outcomes and is a breaking change.
package classify

import (
	"strings"

	"github.com/scipunch/newswatch/article"
)

type ruleList struct {
	category article.Category
	terms    []string
}

// rules is evaluated top to bottom; keep every term lowercase.
var rules = []ruleList{
	{article.Mainstream, []string{
		"reuters", "bloomberg", "associated press", "ap news", "bbc",
		"cnn", "cnbc", "nbc news", "abc news", "cbs news", "fox news",
		"new york times", "nytimes", "washington post",
		"wall street journal", "wsj", "guardian", "financial times",
		"the economist", "usa today", "forbes", "fortune", "axios",
		"politico", "al jazeera", "sky news", "npr", "times",
	}},
	{article.Trade, []string{
		"techcrunch", "wired", "ars technica", "the verge", "engadget",
		"zdnet", "venturebeat", "adweek", "variety", "dive", "brief",
		"trade", "industry", "insider", "weekly", "magazine", "journal",
	}},
	{article.Government, []string{
		".gov", "government", "ministry", "parliament", "congress",
		"commission", "federal", "bureau", "department of", "agency",
		"university", "college", ".edu", "academy", "united nations",
		"european union", "white house",
	}},
	{article.NGO, []string{
		"foundation", "institute", "council", "ngo", "nonprofit",
		"non-profit", "think tank", "charity", "society", "association",
		"coalition", "center for", "centre for", "greenpeace", "wwf",
	}},
	{article.Blogs, []string{
		"blog", "substack", "medium", "wordpress", "blogspot",
		"newsletter", "podcast", "youtube", "patreon", "independent",
	}},
	{article.Local, []string{
		"local", "regional", "county", "city", "herald", "tribune",
		"gazette", "courier", "chronicle", "observer", "dispatch",
		"sentinel",
	}},
}

// Classify maps a publisher display name to its category. It is total:
// any input, including the empty string, yields a defined category,
// falling back to Other when nothing matches.
func Classify(sourceName string) article.Category {
	name := strings.ToLower(sourceName)
	if name == "" {
		return article.Other
	}
	for _, list := range rules {
		for _, term := range list.terms {
			if strings.Contains(name, term) {
				return list.category
			}
		}
	}
	return article.Other
}
