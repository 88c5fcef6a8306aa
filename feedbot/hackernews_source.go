package feedbot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	readability "github.com/go-shiori/go-readability"
)

const hackerNewsBaseURL = "https://hacker-news.firebaseio.com/v0"

const extractorTimeout = 30 * time.Second

// HackerNewsSource fetches top stories from the Hacker News Firebase API.
// Stories carry only a title and a link, so the linked page is run through
// readability to recover article text; extraction failures fall back to the
// story title.
type HackerNewsSource struct {
	baseURL    string
	httpClient *http.Client
	extract    func(url string) string
}

type hackerNewsItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
	Time  int64  `json:"time"`
}

func NewHackerNewsSource() *HackerNewsSource {
	return &HackerNewsSource{
		baseURL:    hackerNewsBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		extract:    extractPageText,
	}
}

func (s *HackerNewsSource) Name() string { return "Hacker News" }

func (s *HackerNewsSource) FetchLatest(ctx context.Context, limit int) []RawItem {
	pkgLogger.Info("Fetching Hacker News top stories")

	var storyIDs []int64
	if err := s.getJSON(ctx, s.baseURL+"/topstories.json", &storyIDs); err != nil {
		pkgLogger.Error("Failed to fetch top story IDs", "error", err)
		return nil
	}
	// Over-fetch: some IDs resolve to jobs or self posts without a URL.
	if len(storyIDs) > limit*2 {
		storyIDs = storyIDs[:limit*2]
	}

	items := make([]RawItem, 0, limit)
	for _, id := range storyIDs {
		if len(items) >= limit {
			break
		}

		var story hackerNewsItem
		if err := s.getJSON(ctx, fmt.Sprintf("%s/item/%d.json", s.baseURL, id), &story); err != nil {
			pkgLogger.Warn("Failed to fetch story", "id", id, "error", err)
			continue
		}
		if story.Type != "story" || story.URL == "" {
			continue
		}

		content := s.extract(story.URL)
		if content == "" {
			content = story.Title
		}

		items = append(items, RawItem{
			Title:           story.Title,
			URL:             story.URL,
			OriginalContent: content,
			Source:          "Hacker News",
			Timestamp:       time.Unix(story.Time, 0).UTC().Format(time.RFC3339),
		})
	}
	return items
}

func (s *HackerNewsSource) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// extractPageText pulls readable article text from a story link.
func extractPageText(url string) string {
	article, err := readability.FromURL(url, extractorTimeout)
	if err != nil {
		pkgLogger.Warn("Readability extraction failed", "url", url, "error", err)
		return ""
	}
	return article.TextContent
}
