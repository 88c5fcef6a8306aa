package feedbot

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	name  string
	items []RawItem
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) FetchLatest(ctx context.Context, limit int) []RawItem {
	if len(s.items) > limit {
		return s.items[:limit]
	}
	return s.items
}

type stubPublisher struct {
	results  []PublishResult
	received []*ProcessedArticle
}

func (p *stubPublisher) Name() string { return "Stub" }

func (p *stubPublisher) PostArticle(ctx context.Context, article *ProcessedArticle, draft bool) PublishResult {
	p.received = append(p.received, article)
	result := p.results[0]
	if len(p.results) > 1 {
		p.results = p.results[1:]
	}
	return result
}

type panickingRewriter struct{}

func (panickingRewriter) Rewrite(ctx context.Context, item RawItem) *ProcessedArticle {
	panic("rewriter exploded")
}

func newTestBot(t *testing.T, sources []Source, publisher Publisher) *FeedBot {
	t.Helper()
	ctx := context.Background()

	rewriter, err := NewGeminiRewriter(ctx, RewriteConfig{GeminiModel: "gemini-2.0-flash-exp"})
	require.NoError(t, err)
	illustrator, err := NewIllustrator(ctx, ImageConfig{GeminiModel: "gemini-2.5-flash-image"})
	require.NoError(t, err)

	config := DefaultConfig()
	config.Sources.PerRun = len(sources)
	config.Sources.ItemsPerSource = 2

	return &FeedBot{
		sources:     sources,
		rewriter:    rewriter,
		illustrator: illustrator,
		recommender: NewProductRecommender(AffiliateConfig{}),
		publisher:   publisher,
		ledger:      NewRecentPosts(),
		config:      config,
		rng:         rand.New(rand.NewSource(1)),
	}
}

func TestFeedBot_RunPublishesAndRecordsLedger(t *testing.T) {
	source := &stubSource{name: "Test", items: []RawItem{
		{Title: "First item", URL: "http://e.com/1", Source: "Test"},
		{Title: "Second item", URL: "http://e.com/2", Source: "Test"},
	}}
	publisher := &stubPublisher{results: []PublishResult{
		Published("https://blog.example/1"),
		Published("https://blog.example/2"),
	}}

	bot := newTestBot(t, []Source{source}, publisher)
	published := bot.Run(context.Background())

	assert.Equal(t, 2, published)
	assert.Equal(t, 2, bot.ledger.Len())
	require.Len(t, publisher.received, 2)

	first := publisher.received[0]
	second := publisher.received[1]

	// Every article leads with an image reference; the demo path has no
	// generation credential, so the placeholder is used.
	assert.Contains(t, first.Content, "picsum.photos")
	assert.Contains(t, second.Content, "picsum.photos")

	// Only items published strictly earlier are cross-linked.
	assert.NotContains(t, first.Content, "함께 보면 좋은 글")
	assert.Contains(t, second.Content, "함께 보면 좋은 글")
	assert.Contains(t, second.Content, "[Demo] First item")
	assert.Contains(t, second.Content, "https://blog.example/1")
}

func TestFeedBot_SkippedPublishDoesNotTouchLedger(t *testing.T) {
	source := &stubSource{name: "Test", items: []RawItem{
		{Title: "OpenAI launches X", URL: "http://e.com/1", Source: "Test"},
	}}
	publisher := &stubPublisher{results: []PublishResult{Skipped(skipNoCredentials)}}

	bot := newTestBot(t, []Source{source}, publisher)
	published := bot.Run(context.Background())

	assert.Equal(t, 0, published)
	assert.Equal(t, 0, bot.ledger.Len())
	require.Len(t, publisher.received, 1)
	assert.Equal(t, "[Demo] OpenAI launches X", publisher.received[0].Title)
	assert.Equal(t, []string{"AI"}, publisher.received[0].Tags)
}

func TestFeedBot_PanicInOneItemDoesNotAbortRun(t *testing.T) {
	source := &stubSource{name: "Test", items: []RawItem{
		{Title: "Boom", URL: "http://e.com/1", Source: "Test"},
		{Title: "Also boom", URL: "http://e.com/2", Source: "Test"},
	}}
	publisher := &stubPublisher{results: []PublishResult{Published("https://blog.example/x")}}

	bot := newTestBot(t, []Source{source}, publisher)
	bot.rewriter = panickingRewriter{}

	published := bot.Run(context.Background())

	assert.Equal(t, 0, published)
	assert.Empty(t, publisher.received, "publishing is never reached after a pipeline panic")
}

func TestFeedBot_SelectSources(t *testing.T) {
	sources := []Source{
		&stubSource{name: "a"}, &stubSource{name: "b"},
		&stubSource{name: "c"}, &stubSource{name: "d"},
	}
	publisher := &stubPublisher{results: []PublishResult{Skipped("n/a")}}
	bot := newTestBot(t, sources, publisher)

	t.Run("bounded subset without replacement", func(t *testing.T) {
		bot.config.Sources.PerRun = 2
		selected := bot.selectSources()
		require.Len(t, selected, 2)
		assert.NotEqual(t, selected[0].Name(), selected[1].Name())
	})

	t.Run("oversized request selects all", func(t *testing.T) {
		bot.config.Sources.PerRun = 99
		assert.Len(t, bot.selectSources(), len(sources))
	})
}
