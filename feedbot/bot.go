package feedbot

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// FeedBot wires the sources and the pipeline stages together and owns the
// recent-posts ledger.
type FeedBot struct {
	sources     []Source
	rewriter    Rewriter
	illustrator *Illustrator
	recommender *ProductRecommender
	publisher   Publisher
	ledger      *RecentPosts
	config      *Config
	rng         *rand.Rand
}

func New(ctx context.Context, config *Config) (*FeedBot, error) {
	rewriter, err := NewRewriter(ctx, config.Rewrite)
	if err != nil {
		return nil, fmt.Errorf("failed to create rewriter: %w", err)
	}

	illustrator, err := NewIllustrator(ctx, config.Image)
	if err != nil {
		return nil, fmt.Errorf("failed to create illustrator: %w", err)
	}

	publisher, err := NewPublisher(ctx, config.Publish)
	if err != nil {
		return nil, fmt.Errorf("failed to create publisher: %w", err)
	}

	sources := make([]Source, 0, len(config.Sources.Feeds)+2)
	for _, feed := range config.Sources.Feeds {
		sources = append(sources, NewRSSSource(feed.Name, feed.URL))
	}
	sources = append(sources, NewHackerNewsSource())
	sources = append(sources, NewRedditSource(config.Reddit))

	return &FeedBot{
		sources:     sources,
		rewriter:    rewriter,
		illustrator: illustrator,
		recommender: NewProductRecommender(config.Affiliate),
		publisher:   publisher,
		ledger:      NewRecentPosts(),
		config:      config,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Run executes one full cycle and returns the number of published items.
// A failing item never aborts the run or its siblings.
func (b *FeedBot) Run(ctx context.Context) int {
	pkgLogger.Info("=== AI Feed Automation Started ===", "publisher", b.publisher.Name())

	itemsPerSource := b.config.Sources.ItemsPerSource
	if itemsPerSource < 1 {
		itemsPerSource = 1
	}
	if itemsPerSource > 2 {
		itemsPerSource = 2
	}

	published := 0
	for _, source := range b.selectSources() {
		items := source.FetchLatest(ctx, itemsPerSource)
		pkgLogger.Info("Fetched items", "source", source.Name(), "count", len(items))

		for _, item := range items {
			pkgLogger.Info("Processing item", "title", item.Title, "source", item.Source)
			result := b.processItem(ctx, item)
			pkgLogger.Info("Item result", "title", item.Title, "result", result.String())
			if result.State == StatePublished {
				published++
			}
		}
	}

	pkgLogger.Info("=== Finished ===", "published", published)
	return published
}

// selectSources draws a random subset of the configured sources, without
// replacement, to diversify provenance across runs.
func (b *FeedBot) selectSources() []Source {
	count := b.config.Sources.PerRun
	if count <= 0 || count > len(b.sources) {
		count = len(b.sources)
	}

	selected := make([]Source, 0, count)
	for _, i := range b.rng.Perm(len(b.sources))[:count] {
		selected = append(selected, b.sources[i])
	}
	return selected
}

// processItem runs one item through the full pipeline. Panics inside a
// stage are contained here so the run can continue with the next item.
func (b *FeedBot) processItem(ctx context.Context, item RawItem) (result PublishResult) {
	defer func() {
		if p := recover(); p != nil {
			pkgLogger.Error("Item pipeline aborted", "title", item.Title, "source", item.Source, "panic", p)
			result = Failed(fmt.Sprintf("panic: %v", p))
		}
	}()

	article := b.rewriter.Rewrite(ctx, item)

	image := b.illustrator.Illustrate(ctx, item.Title, article.ImageAlt)
	article.Content = image + "\n" + article.Content

	if fragment := b.recommender.Recommend(ctx, article.Title, article.Content); fragment != "" {
		article.Content += "\n" + fragment
	}

	article.Content = b.ledger.InsertLinks(article.Content)

	result = b.publisher.PostArticle(ctx, article, b.config.Publish.Draft)
	if result.State == StatePublished {
		b.ledger.Record(article.Title, result.URL)
	}
	return result
}
