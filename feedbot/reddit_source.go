package feedbot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	redditTokenURL   = "https://www.reddit.com/api/v1/access_token"
	redditAPIBaseURL = "https://oauth.reddit.com"
	redditUserAgent  = "ai-feed-bot/1.0"
)

// RedditSource fetches hot posts from a set of subreddits using the app-only
// OAuth2 flow. Without credentials every fetch returns an empty slice.
type RedditSource struct {
	subreddits []string
	clientID   string
	apiBaseURL string
	httpClient *http.Client
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Selftext   string  `json:"selftext"`
	IsSelf     bool    `json:"is_self"`
	Stickied   bool    `json:"stickied"`
	Subreddit  string  `json:"subreddit"`
	CreatedUTC float64 `json:"created_utc"`
}

func NewRedditSource(config RedditConfig) *RedditSource {
	source := &RedditSource{
		subreddits: config.Subreddits,
		clientID:   config.ClientID,
		apiBaseURL: redditAPIBaseURL,
	}
	if config.ClientID == "" || config.ClientSecret == "" {
		return source
	}

	conf := &clientcredentials.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		TokenURL:     redditTokenURL,
	}
	// The token exchange and API calls share one bounded client.
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient,
		&http.Client{Timeout: 30 * time.Second})
	source.httpClient = conf.Client(ctx)
	return source
}

func (s *RedditSource) Name() string { return "Reddit" }

func (s *RedditSource) FetchLatest(ctx context.Context, limit int) []RawItem {
	if s.httpClient == nil {
		pkgLogger.Warn("Reddit credentials not set, skipping source")
		return nil
	}
	pkgLogger.Info("Fetching Reddit hot posts", "subreddits", strings.Join(s.subreddits, "+"))

	url := fmt.Sprintf("%s/r/%s/hot?limit=%d", s.apiBaseURL, strings.Join(s.subreddits, "+"), limit*2)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		pkgLogger.Error("Failed to build Reddit request", "error", err)
		return nil
	}
	req.Header.Set("User-Agent", redditUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		pkgLogger.Error("Failed to fetch Reddit listing", "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		pkgLogger.Error("Reddit listing returned non-OK status", "status", resp.StatusCode)
		return nil
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		pkgLogger.Error("Failed to decode Reddit listing", "error", err)
		return nil
	}

	items := make([]RawItem, 0, limit)
	for _, child := range listing.Data.Children {
		if len(items) >= limit {
			break
		}
		post := child.Data
		if post.Stickied || post.URL == "" {
			continue
		}

		content := post.Title
		if post.IsSelf && post.Selftext != "" {
			content = post.Selftext
		}

		items = append(items, RawItem{
			Title:           post.Title,
			URL:             post.URL,
			OriginalContent: content,
			Source:          fmt.Sprintf("Reddit (r/%s)", post.Subreddit),
			Timestamp:       time.Unix(int64(post.CreatedUTC), 0).UTC().Format(time.RFC3339),
		})
	}
	return items
}
