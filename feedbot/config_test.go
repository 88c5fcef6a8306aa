package feedbot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, 3, config.Sources.PerRun)
	assert.Equal(t, 1, config.Sources.ItemsPerSource)
	assert.Len(t, config.Sources.Feeds, 5)
	assert.Equal(t, "gemini", config.Rewrite.Provider)
	assert.Equal(t, "blogger", config.Publish.Target)
}

func TestLoadConfig_EnvCredentials(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gk")
	t.Setenv("IMGBB_API_KEY", "ik")
	t.Setenv("COUPANG_ACCESS_KEY", "ca")
	t.Setenv("BLOGGER_BLOG_ID", "bid")
	t.Setenv("PUBLISH_TARGET", "tistory")
	t.Setenv("AI_PROVIDER", "openai")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "gk", config.Rewrite.GeminiAPIKey)
	assert.Equal(t, "gk", config.Image.GeminiAPIKey)
	assert.Equal(t, "ik", config.Image.ImgBBKey)
	assert.Equal(t, "ca", config.Affiliate.AccessKey)
	assert.Equal(t, "bid", config.Publish.BloggerBlogID)
	assert.Equal(t, "tistory", config.Publish.Target)
	assert.Equal(t, "openai", config.Rewrite.Provider)
}

func TestLoadConfig_YAMLOverlay(t *testing.T) {
	configYAML := `
sources:
  per_run: 2
  items_per_source: 2
  feeds:
    - name: Custom Feed
      url: https://feed.example/rss
rewrite:
  gemini_model: gemini-custom
publish:
  draft: true
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 2, config.Sources.PerRun)
	require.Len(t, config.Sources.Feeds, 1)
	assert.Equal(t, "Custom Feed", config.Sources.Feeds[0].Name)
	assert.Equal(t, "gemini-custom", config.Rewrite.GeminiModel)
	assert.True(t, config.Publish.Draft)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
