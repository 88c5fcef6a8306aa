package feedbot

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// htmlToText strips markup from a feed summary and collapses whitespace.
// On parse failure the input is returned as-is.
func htmlToText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
