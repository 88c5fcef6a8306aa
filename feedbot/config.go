package feedbot

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config holds the bot configuration. Tunables can be overridden from an
// optional YAML file; credentials always come from environment variables and
// are only ever checked for presence.
type Config struct {
	Sources   SourcesConfig   `yaml:"sources"`
	Rewrite   RewriteConfig   `yaml:"rewrite"`
	Image     ImageConfig     `yaml:"image"`
	Affiliate AffiliateConfig `yaml:"-"`
	Publish   PublishConfig   `yaml:"publish"`
	Reddit    RedditConfig    `yaml:"reddit"`
}

type FeedConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type SourcesConfig struct {
	PerRun         int          `yaml:"per_run"`
	ItemsPerSource int          `yaml:"items_per_source"`
	Feeds          []FeedConfig `yaml:"feeds"`
}

type RewriteConfig struct {
	Provider    string `yaml:"provider"`
	GeminiModel string `yaml:"gemini_model"`
	OpenAIModel string `yaml:"openai_model"`

	GeminiAPIKey string `yaml:"-"`
	OpenAIAPIKey string `yaml:"-"`
}

type ImageConfig struct {
	GeminiModel string `yaml:"gemini_model"`

	GeminiAPIKey string `yaml:"-"`
	ImgBBKey     string `yaml:"-"`
}

type AffiliateConfig struct {
	AccessKey string
	SecretKey string
	PartnerID string
}

type PublishConfig struct {
	Target string `yaml:"target"`
	Draft  bool   `yaml:"draft"`

	BloggerBlogID       string `yaml:"-"`
	BloggerClientID     string `yaml:"-"`
	BloggerClientSecret string `yaml:"-"`
	BloggerRefreshToken string `yaml:"-"`

	WordPressURL         string `yaml:"-"`
	WordPressUser        string `yaml:"-"`
	WordPressAppPassword string `yaml:"-"`

	TistoryAccessToken string `yaml:"-"`
	TistoryBlogName    string `yaml:"-"`
}

type RedditConfig struct {
	Subreddits []string `yaml:"subreddits"`

	ClientID     string `yaml:"-"`
	ClientSecret string `yaml:"-"`
}

// DefaultConfig returns the configuration used when no YAML file is given.
// The feed list mirrors the outlets the bot was built around.
func DefaultConfig() *Config {
	return &Config{
		Sources: SourcesConfig{
			PerRun:         3,
			ItemsPerSource: 1,
			Feeds: []FeedConfig{
				{Name: "TechCrunch", URL: "https://techcrunch.com/category/artificial-intelligence/feed/"},
				{Name: "The Verge", URL: "https://www.theverge.com/rss/ai-artificial-intelligence/index.xml"},
				{Name: "Wired", URL: "https://www.wired.com/feed/tag/ai/latest/rss"},
				{Name: "VentureBeat", URL: "https://venturebeat.com/category/ai/feed/"},
				{Name: "Ars Technica", URL: "https://feeds.arstechnica.com/arstechnica/technology-lab"},
			},
		},
		Rewrite: RewriteConfig{
			Provider:    "gemini",
			GeminiModel: "gemini-2.0-flash-exp",
			OpenAIModel: "gpt-4o-mini",
		},
		Image: ImageConfig{
			GeminiModel: "gemini-2.5-flash-image",
		},
		Publish: PublishConfig{
			Target: "blogger",
		},
		Reddit: RedditConfig{
			Subreddits: []string{"MachineLearning", "ArtificialInteligence"},
		},
	}
}

// LoadConfig builds the configuration: defaults, then the optional YAML file
// at configPath (skipped when empty), then credentials from the environment.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath != "" {
		configYAML, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
		if err := yaml.Unmarshal(configYAML, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}
	}

	config.applyEnv()
	return config, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("AI_PROVIDER"); v != "" {
		c.Rewrite.Provider = v
	}
	c.Rewrite.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	c.Rewrite.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")

	c.Image.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	c.Image.ImgBBKey = os.Getenv("IMGBB_API_KEY")

	c.Affiliate.AccessKey = os.Getenv("COUPANG_ACCESS_KEY")
	c.Affiliate.SecretKey = os.Getenv("COUPANG_SECRET_KEY")
	c.Affiliate.PartnerID = os.Getenv("COUPANG_PARTNER_ID")

	if v := os.Getenv("PUBLISH_TARGET"); v != "" {
		c.Publish.Target = v
	}
	c.Publish.BloggerBlogID = os.Getenv("BLOGGER_BLOG_ID")
	c.Publish.BloggerClientID = os.Getenv("BLOGGER_CLIENT_ID")
	c.Publish.BloggerClientSecret = os.Getenv("BLOGGER_CLIENT_SECRET")
	c.Publish.BloggerRefreshToken = os.Getenv("BLOGGER_REFRESH_TOKEN")
	c.Publish.WordPressURL = os.Getenv("WORDPRESS_URL")
	c.Publish.WordPressUser = os.Getenv("WORDPRESS_USER")
	c.Publish.WordPressAppPassword = os.Getenv("WORDPRESS_APP_PASSWORD")
	c.Publish.TistoryAccessToken = os.Getenv("TISTORY_ACCESS_TOKEN")
	c.Publish.TistoryBlogName = os.Getenv("TISTORY_BLOG_NAME")

	c.Reddit.ClientID = os.Getenv("REDDIT_CLIENT_ID")
	c.Reddit.ClientSecret = os.Getenv("REDDIT_CLIENT_SECRET")
}
