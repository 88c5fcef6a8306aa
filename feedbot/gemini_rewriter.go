package feedbot

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiRewriter rewrites items with the Gemini API. A nil client means no
// credential is configured and every call degrades to a demo article.
type GeminiRewriter struct {
	client *genai.Client
	model  string
}

// NewGeminiRewriter creates a GeminiRewriter. Without an API key the
// rewriter is still usable and serves demo articles.
func NewGeminiRewriter(ctx context.Context, config RewriteConfig) (*GeminiRewriter, error) {
	if config.GeminiAPIKey == "" {
		pkgLogger.Warn("GEMINI_API_KEY not set, rewriter runs in demo mode")
		return &GeminiRewriter{model: config.GeminiModel}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: config.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiRewriter{client: client, model: config.GeminiModel}, nil
}

func (r *GeminiRewriter) Rewrite(ctx context.Context, item RawItem) *ProcessedArticle {
	if r.client == nil {
		return demoArticle(item)
	}

	prompt := buildRewritePrompt(item)
	resp, err := r.client.Models.GenerateContent(ctx, r.model, genai.Text(prompt), nil)
	if err != nil {
		pkgLogger.Error("Gemini rewrite failed", "title", item.Title, "error", err)
		return errorArticle(item, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		pkgLogger.Error("Gemini returned no content", "title", item.Title)
		return errorArticle(item, fmt.Errorf("no content generated by Gemini API"))
	}

	return articleFromResponse(item, resp.Text())
}
