package feedbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// WordPressPublisher posts to the WordPress REST API with an application
// password over basic auth.
type WordPressPublisher struct {
	siteURL    string
	user       string
	password   string
	httpClient *http.Client
}

func NewWordPressPublisher(config PublishConfig) *WordPressPublisher {
	return &WordPressPublisher{
		siteURL:    strings.TrimRight(config.WordPressURL, "/"),
		user:       config.WordPressUser,
		password:   config.WordPressAppPassword,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *WordPressPublisher) Name() string { return "WordPress" }

func (p *WordPressPublisher) PostArticle(ctx context.Context, article *ProcessedArticle, draft bool) PublishResult {
	if p.siteURL == "" || p.user == "" || p.password == "" {
		pkgLogger.Warn("WordPress credentials not set, skipping publish")
		return Skipped(skipNoCredentials)
	}

	status := "publish"
	if draft {
		status = "draft"
	}
	payload, err := json.Marshal(map[string]any{
		"title":   article.Title,
		"content": article.Content,
		"status":  status,
	})
	if err != nil {
		return Failed(err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.siteURL+"/wp-json/wp/v2/posts", bytes.NewReader(payload))
	if err != nil {
		return Failed(err.Error())
	}
	req.SetBasicAuth(p.user, p.password)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		pkgLogger.Error("WordPress request failed", "error", err)
		return Failed(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		pkgLogger.Error("WordPress publish failed", "status", resp.StatusCode, "body", string(body))
		return Failed(fmt.Sprintf("status %d: %s", resp.StatusCode, string(body)))
	}

	var postResp struct {
		Link string `json:"link"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&postResp); err != nil {
		return Failed(fmt.Sprintf("failed to decode response: %v", err))
	}

	pkgLogger.Info("Published to WordPress", "url", postResp.Link)
	return Published(postResp.Link)
}
