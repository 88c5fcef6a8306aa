package feedbot

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIRewriter rewrites items through an OpenAI-compatible chat endpoint.
// It shares the prompt contract and degradation rules with GeminiRewriter.
type OpenAIRewriter struct {
	client *openai.Client
	model  string
}

func NewOpenAIRewriter(config RewriteConfig) *OpenAIRewriter {
	if config.OpenAIAPIKey == "" {
		pkgLogger.Warn("OPENAI_API_KEY not set, rewriter runs in demo mode")
		return &OpenAIRewriter{model: config.OpenAIModel}
	}
	return &OpenAIRewriter{
		client: openai.NewClient(config.OpenAIAPIKey),
		model:  config.OpenAIModel,
	}
}

func (r *OpenAIRewriter) Rewrite(ctx context.Context, item RawItem) *ProcessedArticle {
	if r.client == nil {
		return demoArticle(item)
	}

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: buildRewritePrompt(item)},
		},
	})
	if err != nil {
		pkgLogger.Error("OpenAI rewrite failed", "title", item.Title, "error", err)
		return errorArticle(item, err)
	}
	if len(resp.Choices) == 0 {
		pkgLogger.Error("OpenAI returned no choices", "title", item.Title)
		return errorArticle(item, fmt.Errorf("no content generated by chat API"))
	}

	return articleFromResponse(item, resp.Choices[0].Message.Content)
}
