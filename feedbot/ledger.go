package feedbot

import (
	"fmt"
	"strings"
)

const (
	ledgerCapacity   = 10
	ledgerLinksShown = 3

	// The rewrite prompt requires this citation prefix on the closing line
	// of every article body; related links are spliced in right before it.
	sourceCitationMarker = "출처:"
)

// RecentPosts is a bounded ledger of recently published posts, owned by the
// bot and mutated only between pipeline runs of consecutive items. Entries
// are kept in publish order and the oldest is evicted past capacity.
type RecentPosts struct {
	entries []LedgerEntry
}

func NewRecentPosts() *RecentPosts {
	return &RecentPosts{}
}

// Record appends a published post, evicting the oldest entry once the
// ledger exceeds its capacity.
func (r *RecentPosts) Record(title, url string) {
	r.entries = append(r.entries, LedgerEntry{Title: title, URL: url})
	if len(r.entries) > ledgerCapacity {
		r.entries = r.entries[len(r.entries)-ledgerCapacity:]
	}
}

// Len reports the number of recorded entries.
func (r *RecentPosts) Len() int {
	return len(r.entries)
}

// RenderLinks returns an HTML fragment listing the most recent entries in
// insertion order, or "" when the ledger is empty.
func (r *RecentPosts) RenderLinks() string {
	if len(r.entries) == 0 {
		return ""
	}
	recent := r.entries
	if len(recent) > ledgerLinksShown {
		recent = recent[len(recent)-ledgerLinksShown:]
	}

	var b strings.Builder
	b.WriteString(`<div style="background: #f8f9fa; border-left: 4px solid #667eea; padding: 15px 20px; margin: 25px 0; border-radius: 0 8px 8px 0;">` + "\n")
	b.WriteString(`<h3 style="margin-top: 0; font-size: 16px;">📎 함께 보면 좋은 글</h3>` + "\n<ul>\n")
	for _, entry := range recent {
		fmt.Fprintf(&b, `<li><a href="%s">%s</a></li>`+"\n", entry.URL, entry.Title)
	}
	b.WriteString("</ul>\n</div>")
	return b.String()
}

// InsertLinks splices the related-links fragment into content immediately
// before the source citation line when that marker is present, otherwise
// appends it at the end. Empty ledgers leave the content untouched.
func (r *RecentPosts) InsertLinks(content string) string {
	fragment := r.RenderLinks()
	if fragment == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.Contains(line, sourceCitationMarker) {
			spliced := make([]string, 0, len(lines)+1)
			spliced = append(spliced, lines[:i]...)
			spliced = append(spliced, fragment)
			spliced = append(spliced, lines[i:]...)
			return strings.Join(spliced, "\n")
		}
	}
	return content + "\n" + fragment
}
