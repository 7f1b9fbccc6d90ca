// Package normalize turns raw feed fields into clean plain text.
package normalize

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Text concatenates title and summary, strips any markup, collapses runs of
// whitespace to single spaces and trims the result. Malformed markup never
// fails: goquery's parser recovers and whatever it cannot interpret is kept
// as literal text. Fields are stripped separately so an unterminated tag in
// the title cannot swallow the summary.
func Text(title, summary string) string {
	raw := stripMarkup(title) + " " + stripMarkup(summary)
	return strings.Join(strings.Fields(raw), " ")
}

func stripMarkup(raw string) string {
	if !strings.ContainsAny(raw, "<&") {
		return raw
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return raw
	}
	return doc.Text()
}
