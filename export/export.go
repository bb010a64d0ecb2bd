// Package export renders read-only projections of a collection for
// download: a tabular CSV and a full-field JSON document.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/scipunch/newswatch/article"
)

var csvHeader = []string{"Title", "Source", "Source_Category", "Keyword", "Published", "URL"}

// WriteCSV writes the tabular projection of the articles.
func WriteCSV(w io.Writer, articles []article.Article) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header with %w", err)
	}
	for _, a := range articles {
		row := []string{a.Title, a.Source, string(a.SourceCategory), a.Keyword, a.Published, a.URL}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row with %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the full article records as an indented JSON array.
func WriteJSON(w io.Writer, articles []article.Article) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(articles); err != nil {
		return fmt.Errorf("failed to encode articles as JSON with %w", err)
	}
	return nil
}

// FileName builds a timestamped export file name such as
// "rss_feed_20260824_153000.csv".
func FileName(prefix string, at time.Time, ext string) string {
	return fmt.Sprintf("%s_%s.%s", prefix, at.Format("20060102_150405"), ext)
}
