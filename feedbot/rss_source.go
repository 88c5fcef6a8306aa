package feedbot

import (
	"context"
	"time"

	"github.com/mmcdole/gofeed"
)

// RSSSource adapts one RSS/Atom feed to the Source interface.
type RSSSource struct {
	name       string
	url        string
	feedParser *gofeed.Parser
}

// NewRSSSource creates an adapter for a named feed URL.
func NewRSSSource(name, url string) *RSSSource {
	return &RSSSource{
		name:       name,
		url:        url,
		feedParser: gofeed.NewParser(),
	}
}

func (s *RSSSource) Name() string { return s.name }

func (s *RSSSource) FetchLatest(ctx context.Context, limit int) []RawItem {
	pkgLogger.Info("Fetching feed", "source", s.name, "url", s.url)

	feed, err := s.feedParser.ParseURLWithContext(s.url, ctx)
	if err != nil {
		pkgLogger.Error("Failed to parse feed", "source", s.name, "error", err)
		return nil
	}

	items := make([]RawItem, 0, limit)
	for _, entry := range feed.Items {
		if len(items) >= limit {
			break
		}
		if entry.Link == "" {
			continue
		}

		content := entry.Description
		if content == "" {
			content = entry.Content
		}

		timestamp := time.Now().Format(time.RFC3339)
		if entry.PublishedParsed != nil {
			timestamp = entry.PublishedParsed.Format(time.RFC3339)
		}

		items = append(items, RawItem{
			Title:           entry.Title,
			URL:             entry.Link,
			OriginalContent: htmlToText(content),
			Source:          s.name,
			Timestamp:       timestamp,
		})
	}
	return items
}
