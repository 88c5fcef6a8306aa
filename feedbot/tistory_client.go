package feedbot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const tistoryAPIBase = "https://www.tistory.com/apis"

// TistoryPublisher posts to the Tistory open API with a long-lived access
// token passed form-encoded.
type TistoryPublisher struct {
	accessToken string
	blogName    string
	apiBase     string
	httpClient  *http.Client
}

func NewTistoryPublisher(config PublishConfig) *TistoryPublisher {
	return &TistoryPublisher{
		accessToken: config.TistoryAccessToken,
		blogName:    config.TistoryBlogName,
		apiBase:     tistoryAPIBase,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *TistoryPublisher) Name() string { return "Tistory" }

func (p *TistoryPublisher) PostArticle(ctx context.Context, article *ProcessedArticle, draft bool) PublishResult {
	if p.accessToken == "" || p.blogName == "" {
		pkgLogger.Warn("Tistory credentials not set, skipping publish")
		return Skipped(skipNoCredentials)
	}

	// visibility 0 is private, 3 is public.
	visibility := "3"
	if draft {
		visibility = "0"
	}

	form := url.Values{}
	form.Set("access_token", p.accessToken)
	form.Set("output", "json")
	form.Set("blogName", p.blogName)
	form.Set("title", article.Title)
	form.Set("content", article.Content)
	form.Set("visibility", visibility)
	form.Set("category", "0")
	form.Set("tag", strings.Join(article.Tags, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.apiBase+"/post/write", strings.NewReader(form.Encode()))
	if err != nil {
		return Failed(err.Error())
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		pkgLogger.Error("Tistory request failed", "error", err)
		return Failed(err.Error())
	}
	defer resp.Body.Close()

	var postResp struct {
		Tistory struct {
			Status       string `json:"status"`
			PostID       string `json:"postId"`
			ErrorMessage string `json:"error_message"`
		} `json:"tistory"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&postResp); err != nil {
		return Failed(fmt.Sprintf("failed to decode response: %v", err))
	}

	if postResp.Tistory.Status != "200" {
		detail := postResp.Tistory.ErrorMessage
		if detail == "" {
			detail = fmt.Sprintf("tistory status %s", postResp.Tistory.Status)
		}
		pkgLogger.Error("Tistory publish failed", "detail", detail)
		return Failed(detail)
	}

	postURL := fmt.Sprintf("https://%s.tistory.com/%s", p.blogName, postResp.Tistory.PostID)
	pkgLogger.Info("Published to Tistory", "url", postURL)
	return Published(postURL)
}
