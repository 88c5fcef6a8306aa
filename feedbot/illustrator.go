package feedbot

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"
)

const (
	imgbbUploadURL = "https://api.imgbb.com/1/upload"

	// Hosted images expire after 30 days.
	imgbbExpirationSec = 30 * 24 * 60 * 60
)

// Illustrator produces one embeddable image reference per article. It tries
// Gemini image generation first, hosts the binary on imgbb when a key is
// configured, and otherwise falls back to a random-seed picsum placeholder.
// Illustrate never fails: the fallback always succeeds.
type Illustrator struct {
	client     *genai.Client
	model      string
	imgbbKey   string
	uploadURL  string
	httpClient *http.Client
}

// NewIllustrator creates an Illustrator. Without a Gemini key only the
// placeholder path is used.
func NewIllustrator(ctx context.Context, config ImageConfig) (*Illustrator, error) {
	illustrator := &Illustrator{
		model:      config.GeminiModel,
		imgbbKey:   config.ImgBBKey,
		uploadURL:  imgbbUploadURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	if config.GeminiAPIKey == "" {
		return illustrator, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: config.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	illustrator.client = client
	return illustrator, nil
}

// Illustrate returns image markup for the given topic. altText becomes the
// img alt attribute.
func (il *Illustrator) Illustrate(ctx context.Context, topic, altText string) string {
	src := il.generateImageSrc(ctx, topic)
	if src == "" {
		src = placeholderImageURL()
	}
	return imageMarkup(src, altText)
}

// generateImageSrc returns a hosted URL or inline data URL for a generated
// image, or "" when generation is unavailable or failed.
func (il *Illustrator) generateImageSrc(ctx context.Context, topic string) string {
	if il.client == nil {
		return ""
	}

	prompt := fmt.Sprintf("Generate a high quality, professional blog illustration about: %s. "+
		"Style: modern, clean, tech-focused. Do not include any text, letters or typography in the image.", topic)

	resp, err := il.client.Models.GenerateContent(ctx, il.model, genai.Text(prompt), nil)
	if err != nil {
		pkgLogger.Error("Image generation failed", "topic", topic, "error", err)
		return ""
	}

	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			mimeType := part.InlineData.MIMEType
			if mimeType == "" {
				mimeType = "image/png"
			}
			encoded := base64.StdEncoding.EncodeToString(part.InlineData.Data)

			if il.imgbbKey != "" {
				hosted, err := il.uploadImage(ctx, encoded)
				if err != nil {
					pkgLogger.Error("Image upload failed", "error", err)
					return ""
				}
				return hosted
			}
			// Blogger accepts inline base64 images directly.
			return fmt.Sprintf("data:%s;base64,%s", mimeType, encoded)
		}
	}

	pkgLogger.Warn("Image generation returned no inline data", "topic", topic)
	return ""
}

// uploadImage posts base64 image data to imgbb and returns the hosted URL.
func (il *Illustrator) uploadImage(ctx context.Context, encodedImage string) (string, error) {
	form := url.Values{}
	form.Set("key", il.imgbbKey)
	form.Set("image", encodedImage)
	form.Set("name", uuid.New().String())
	form.Set("expiration", fmt.Sprintf("%d", imgbbExpirationSec))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, il.uploadURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := il.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("imgbb upload returned status %d", resp.StatusCode)
	}

	var uploadResp struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
		return "", fmt.Errorf("failed to decode imgbb response: %w", err)
	}
	if uploadResp.Data.URL == "" {
		return "", fmt.Errorf("imgbb response contained no URL")
	}
	return uploadResp.Data.URL, nil
}

// placeholderImageURL builds a picsum URL from a fresh random seed.
func placeholderImageURL() string {
	seed := rand.Intn(1000) + 1
	return fmt.Sprintf("https://picsum.photos/seed/%d/800/450", seed)
}

func imageMarkup(src, altText string) string {
	return fmt.Sprintf(`<p><img src="%s" alt="%s" style="width:100%%; max-width:800px; border-radius:8px;"></p>`, src, altText)
}
