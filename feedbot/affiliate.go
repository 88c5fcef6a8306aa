package feedbot

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	coupangBaseURL      = "https://api-gateway.coupang.com"
	coupangSearchPath   = "/v2/providers/affiliate_open_api/apis/openapi/products/search"
	coupangDeeplinkPath = "/v2/providers/affiliate_open_api/apis/openapi/v1/deeplink"

	// signed-date format required by the CEA authorization scheme.
	coupangTimeFormat = "060102T150405Z"
)

// Product is one result from the Coupang Partners search API.
type Product struct {
	ProductName  string `json:"productName"`
	ProductPrice int64  `json:"productPrice"`
	ProductImage string `json:"productImage"`
	ProductURL   string `json:"productUrl"`
}

// CoupangClient calls the Coupang Partners open API with CEA HMAC request
// signing. Missing keys make the client unavailable; callers check
// Available before issuing requests.
type CoupangClient struct {
	accessKey  string
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

func NewCoupangClient(config AffiliateConfig) *CoupangClient {
	return &CoupangClient{
		accessKey:  config.AccessKey,
		secretKey:  config.SecretKey,
		baseURL:    coupangBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *CoupangClient) Available() bool {
	return c.accessKey != "" && c.secretKey != ""
}

// generateSignature computes the hex HMAC-SHA256 over timestamp+method+path
// with the partner secret as key.
func (c *CoupangClient) generateSignature(method, urlPath, timestamp string) string {
	mac := hmac.New(sha256.New, []byte(c.secretKey))
	mac.Write([]byte(timestamp + method + urlPath))
	return hex.EncodeToString(mac.Sum(nil))
}

func (c *CoupangClient) authorizationHeader(method, urlPath string) string {
	timestamp := time.Now().UTC().Format(coupangTimeFormat)
	signature := c.generateSignature(method, urlPath, timestamp)
	return fmt.Sprintf("CEA algorithm=HmacSHA256, access-key=%s, signed-date=%s, signature=%s",
		c.accessKey, timestamp, signature)
}

// SearchProducts searches products by keyword, best sellers first.
func (c *CoupangClient) SearchProducts(ctx context.Context, keyword string, limit int) ([]Product, error) {
	query := url.Values{}
	query.Set("keyword", keyword)
	query.Set("limit", fmt.Sprintf("%d", limit))
	query.Set("sortType", "BEST_SELLING")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+coupangSearchPath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.authorizationHeader(http.MethodGet, coupangSearchPath))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("product search returned status %d", resp.StatusCode)
	}

	var searchResp struct {
		Data struct {
			ProductData []Product `json:"productData"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	products := searchResp.Data.ProductData
	if len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

// Deeplink converts a product URL into a partner-attributed short link.
func (c *CoupangClient) Deeplink(ctx context.Context, productURL string) (string, error) {
	payload, err := json.Marshal(map[string][]string{
		"coupangUrls": {productURL},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+coupangDeeplinkPath, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", c.authorizationHeader(http.MethodPost, coupangDeeplinkPath))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("deeplink request returned status %d", resp.StatusCode)
	}

	var deeplinkResp struct {
		Data []struct {
			ShortenURL string `json:"shortenUrl"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&deeplinkResp); err != nil {
		return "", fmt.Errorf("failed to decode deeplink response: %w", err)
	}
	if len(deeplinkResp.Data) == 0 || deeplinkResp.Data[0].ShortenURL == "" {
		return "", fmt.Errorf("deeplink response contained no link")
	}
	return deeplinkResp.Data[0].ShortenURL, nil
}

// keywordMapping maps topic keywords found in an article to product search
// terms. First match per keyword wins; duplicates across matches are removed.
var keywordMapping = map[string][]string{
	"chatgpt": {"AI 스피커", "무선 키보드", "노트북 거치대"},
	"gpt":     {"AI 스피커", "무선 키보드", "외장 SSD"},
	"openai":  {"프로그래밍 입문서", "코딩 키보드", "모니터"},

	"google": {"구글 네스트", "크롬캐스트", "구글 기프트카드"},
	"gemini": {"AI 스피커", "스마트워치", "무선이어폰"},

	"apple": {"아이폰 케이스", "맥북 거치대", "애플워치 밴드"},
	"siri":  {"에어팟", "아이폰 액세서리", "애플 기프트카드"},

	"robot": {"로봇청소기", "코딩 로봇", "드론"},
	"자율주행":  {"블랙박스", "차량용 충전기", "차량용 거치대"},
	"tesla": {"전기차 충전기", "차량용 액세서리", "블랙박스"},

	"ai":   {"AI 스피커", "스마트홈", "무선 이어폰"},
	"tech": {"무선 충전기", "보조배터리", "USB 허브"},
	"반도체":  {"외장 SSD", "메모리카드", "노트북"},
	"엔비디아": {"그래픽카드", "게이밍 마우스", "게이밍 키보드"},
}

var defaultProductTerms = []string{"무선 이어폰", "보조배터리", "USB 충전기"}

// ProductRecommender renders an affiliate product-card fragment matching an
// article's topic. With no partner credential it is a silent no-op.
type ProductRecommender struct {
	api       *CoupangClient
	pricer    *message.Printer
	maxCards  int
	partnerID string
}

func NewProductRecommender(config AffiliateConfig) *ProductRecommender {
	return &ProductRecommender{
		api:       NewCoupangClient(config),
		pricer:    message.NewPrinter(language.Korean),
		maxCards:  3,
		partnerID: config.PartnerID,
	}
}

// extractKeywords maps the article text to up to maxCards product terms.
func (r *ProductRecommender) extractKeywords(title, content string) []string {
	text := strings.ToLower(title + " " + content)

	keys := make([]string, 0, len(keywordMapping))
	for key := range keywordMapping {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var terms []string
	for _, key := range keys {
		if strings.Contains(text, key) {
			terms = append(terms, keywordMapping[key]...)
		}
	}
	if len(terms) == 0 {
		terms = append(terms, defaultProductTerms...)
	}

	seen := make(map[string]bool, len(terms))
	unique := terms[:0]
	for _, term := range terms {
		if seen[term] {
			continue
		}
		seen[term] = true
		unique = append(unique, term)
	}
	if len(unique) > r.maxCards {
		unique = unique[:r.maxCards]
	}
	return unique
}

// Recommend returns a product-card HTML fragment for the article, or "" when
// no credential is configured or nothing matched. Per-product failures only
// drop that product.
func (r *ProductRecommender) Recommend(ctx context.Context, title, content string) string {
	if !r.api.Available() {
		return ""
	}

	var products []Product
	for _, term := range r.extractKeywords(title, content) {
		if len(products) >= r.maxCards {
			break
		}
		found, err := r.api.SearchProducts(ctx, term, 1)
		if err != nil {
			pkgLogger.Warn("Product search failed", "keyword", term, "error", err)
			continue
		}
		products = append(products, found...)
	}
	if len(products) == 0 {
		return ""
	}
	if len(products) > r.maxCards {
		products = products[:r.maxCards]
	}

	var b strings.Builder
	b.WriteString(`<div style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); padding: 25px; border-radius: 15px; margin: 30px 0; color: white;">` + "\n")
	b.WriteString(`<h3 style="margin-top: 0; font-size: 18px;">🛒 이 글과 관련된 추천 상품</h3>` + "\n")
	b.WriteString(`<p style="font-size: 12px; opacity: 0.8; margin-bottom: 20px;">※ 파트너스 활동으로 일정액의 수수료를 제공받을 수 있습니다.</p>` + "\n")
	b.WriteString(`<div style="display: flex; flex-wrap: wrap; gap: 15px;">` + "\n")

	for _, product := range products {
		name := product.ProductName
		if len([]rune(name)) > 40 {
			name = string([]rune(name)[:40])
		}

		affiliateURL, err := r.api.Deeplink(ctx, product.ProductURL)
		if err != nil {
			pkgLogger.Warn("Deeplink conversion failed", "url", product.ProductURL, "error", err)
			affiliateURL = product.ProductURL
		}

		price := "가격 확인"
		if product.ProductPrice > 0 {
			price = r.pricer.Sprintf("%d원", product.ProductPrice)
		}

		fmt.Fprintf(&b, `<a href="%s" target="_blank" rel="noopener" style="flex: 1; min-width: 150px; max-width: 200px; background: white; border-radius: 10px; padding: 15px; text-decoration: none; color: #333;">`+"\n", affiliateURL)
		fmt.Fprintf(&b, `<img src="%s" alt="%s" style="width: 100%%; border-radius: 8px; margin-bottom: 10px;">`+"\n", product.ProductImage, name)
		fmt.Fprintf(&b, `<p style="font-size: 13px; font-weight: bold; margin: 0 0 8px 0; line-height: 1.3;">%s</p>`+"\n", name)
		fmt.Fprintf(&b, `<p style="font-size: 14px; color: #e53e3e; font-weight: bold; margin: 0;">%s</p>`+"\n", price)
		b.WriteString("</a>\n")
	}

	b.WriteString("</div>\n</div>")
	return b.String()
}
