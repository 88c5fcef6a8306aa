package feedbot

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAffiliateConfig() AffiliateConfig {
	return AffiliateConfig{AccessKey: "test-access", SecretKey: "test-secret"}
}

func TestCoupangClient_GenerateSignature(t *testing.T) {
	client := NewCoupangClient(testAffiliateConfig())

	timestamp := "250101T120000Z"
	signature := client.generateSignature("GET", coupangSearchPath, timestamp)

	mac := hmac.New(sha256.New, []byte("test-secret"))
	mac.Write([]byte(timestamp + "GET" + coupangSearchPath))
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), signature)
	assert.Len(t, signature, 64)
}

func TestCoupangClient_AuthorizationHeader(t *testing.T) {
	client := NewCoupangClient(testAffiliateConfig())

	header := client.authorizationHeader("GET", coupangSearchPath)

	pattern := `^CEA algorithm=HmacSHA256, access-key=test-access, signed-date=\d{6}T\d{6}Z, signature=[0-9a-f]{64}$`
	assert.Regexp(t, regexp.MustCompile(pattern), header)
}

func TestCoupangClient_SearchProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, coupangSearchPath, r.URL.Path)
		assert.Equal(t, "무선 이어폰", r.URL.Query().Get("keyword"))
		assert.Equal(t, "BEST_SELLING", r.URL.Query().Get("sortType"))
		assert.Contains(t, r.Header.Get("Authorization"), "CEA algorithm=HmacSHA256")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"productData":[
			{"productName":"이어폰 A","productPrice":12900,"productImage":"https://img.example/a.jpg","productUrl":"https://coupang.example/a"},
			{"productName":"이어폰 B","productPrice":25900,"productImage":"https://img.example/b.jpg","productUrl":"https://coupang.example/b"}
		]}}`))
	}))
	defer server.Close()

	client := NewCoupangClient(testAffiliateConfig())
	client.baseURL = server.URL

	products, err := client.SearchProducts(context.Background(), "무선 이어폰", 1)
	require.NoError(t, err)
	require.Len(t, products, 1, "results are capped at the requested limit")
	assert.Equal(t, "이어폰 A", products[0].ProductName)
	assert.Equal(t, int64(12900), products[0].ProductPrice)
}

func TestCoupangClient_Deeplink(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, coupangDeeplinkPath, r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"shortenUrl":"https://link.example/short"}]}`))
	}))
	defer server.Close()

	client := NewCoupangClient(testAffiliateConfig())
	client.baseURL = server.URL

	link, err := client.Deeplink(context.Background(), "https://coupang.example/a")
	require.NoError(t, err)
	assert.Equal(t, "https://link.example/short", link)
}

func TestProductRecommender_ExtractKeywords(t *testing.T) {
	recommender := NewProductRecommender(testAffiliateConfig())

	t.Run("matched keywords deduplicate and cap at 3", func(t *testing.T) {
		terms := recommender.extractKeywords("ChatGPT update", "")
		assert.Equal(t, []string{"AI 스피커", "무선 키보드", "노트북 거치대"}, terms)
	})

	t.Run("no match falls back to defaults", func(t *testing.T) {
		terms := recommender.extractKeywords("가벼운 일상 이야기", "")
		assert.Equal(t, defaultProductTerms, terms)
	})
}

func TestProductRecommender_NoCredentialIsSilentNoop(t *testing.T) {
	recommender := NewProductRecommender(AffiliateConfig{})

	fragment := recommender.Recommend(context.Background(), "ChatGPT update", "")
	assert.Empty(t, fragment)
}

func TestProductRecommender_RendersCards(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case coupangSearchPath:
			w.Write([]byte(`{"data":{"productData":[{"productName":"AI 스피커","productPrice":39000,"productImage":"https://img.example/s.jpg","productUrl":"https://coupang.example/s"}]}}`))
		case coupangDeeplinkPath:
			w.Write([]byte(`{"data":[{"shortenUrl":"https://link.example/s"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	recommender := NewProductRecommender(testAffiliateConfig())
	recommender.api.baseURL = server.URL

	fragment := recommender.Recommend(context.Background(), "ChatGPT update", "")
	assert.Contains(t, fragment, "추천 상품")
	assert.Contains(t, fragment, `href="https://link.example/s"`)
	assert.Contains(t, fragment, "39,000원")
}

func TestProductRecommender_DeeplinkFailureFallsBackToProductURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case coupangSearchPath:
			w.Write([]byte(`{"data":{"productData":[{"productName":"상품","productPrice":1000,"productImage":"https://img.example/p.jpg","productUrl":"https://coupang.example/p"}]}}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	recommender := NewProductRecommender(testAffiliateConfig())
	recommender.api.baseURL = server.URL

	fragment := recommender.Recommend(context.Background(), "tesla news", "")
	assert.Contains(t, fragment, `href="https://coupang.example/p"`)
}
