package feedbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

const (
	bloggerAPIBase  = "https://www.googleapis.com/blogger/v3"
	bloggerTokenURL = "https://oauth2.googleapis.com/token"
)

// BloggerPublisher posts to the Google Blogger v3 API. Access tokens are
// minted from the stored refresh token by an oauth2 token source; a nil
// httpClient means credentials are absent and every post is skipped.
type BloggerPublisher struct {
	blogID     string
	apiBase    string
	httpClient *http.Client
}

func NewBloggerPublisher(ctx context.Context, config PublishConfig) *BloggerPublisher {
	publisher := &BloggerPublisher{
		blogID:  config.BloggerBlogID,
		apiBase: bloggerAPIBase,
	}
	if config.BloggerBlogID == "" || config.BloggerClientID == "" ||
		config.BloggerClientSecret == "" || config.BloggerRefreshToken == "" {
		return publisher
	}

	conf := &oauth2.Config{
		ClientID:     config.BloggerClientID,
		ClientSecret: config.BloggerClientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: bloggerTokenURL},
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: 30 * time.Second})
	tokenSource := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: config.BloggerRefreshToken})
	publisher.httpClient = oauth2.NewClient(ctx, tokenSource)
	publisher.httpClient.Timeout = 30 * time.Second
	return publisher
}

func (p *BloggerPublisher) Name() string { return "Blogger" }

func (p *BloggerPublisher) PostArticle(ctx context.Context, article *ProcessedArticle, draft bool) PublishResult {
	if p.httpClient == nil {
		pkgLogger.Warn("Blogger credentials not set, skipping publish")
		return Skipped(skipNoCredentials)
	}

	payload, err := json.Marshal(map[string]any{
		"kind":    "blogger#post",
		"title":   article.Title,
		"content": article.Content,
		"labels":  article.Tags,
	})
	if err != nil {
		return Failed(err.Error())
	}

	url := fmt.Sprintf("%s/blogs/%s/posts?isDraft=%t", p.apiBase, p.blogID, draft)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return Failed(err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		pkgLogger.Error("Blogger request failed", "error", err)
		return Failed(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		pkgLogger.Error("Blogger publish failed", "status", resp.StatusCode, "body", string(body))
		return Failed(fmt.Sprintf("status %d: %s", resp.StatusCode, string(body)))
	}

	var postResp struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&postResp); err != nil {
		return Failed(fmt.Sprintf("failed to decode response: %v", err))
	}

	pkgLogger.Info("Published to Blogger", "url", postResp.URL)
	return Published(postResp.URL)
}
