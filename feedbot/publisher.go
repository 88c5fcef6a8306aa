package feedbot

import (
	"context"
	"fmt"
	"strings"
)

// skipNoCredentials is the literal skip reason reported when a publish
// backend has no credentials configured. No network call is made.
const skipNoCredentials = "Skipped (No Credentials)"

// Publisher posts one assembled article to a blog backend. PostArticle never
// returns a Go error: outcomes are the typed PublishResult states.
type Publisher interface {
	Name() string
	PostArticle(ctx context.Context, article *ProcessedArticle, draft bool) PublishResult
}

// NewPublisher selects the publish backend from the configuration.
func NewPublisher(ctx context.Context, config PublishConfig) (Publisher, error) {
	target := strings.ToLower(strings.TrimSpace(config.Target))
	switch target {
	case "", "blogger":
		return NewBloggerPublisher(ctx, config), nil
	case "wordpress":
		return NewWordPressPublisher(config), nil
	case "tistory":
		return NewTistoryPublisher(config), nil
	default:
		return nil, fmt.Errorf("unknown publish target: %s", config.Target)
	}
}
