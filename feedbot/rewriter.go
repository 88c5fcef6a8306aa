package feedbot

import (
	"context"
	"fmt"
	"strings"
)

// Rewriter turns one RawItem into a publishable article. Implementations
// never fail across this boundary: a missing credential yields a demo
// article and an upstream error yields an error article, so the caller
// always receives a fully formed ProcessedArticle.
type Rewriter interface {
	Rewrite(ctx context.Context, item RawItem) *ProcessedArticle
}

// NewRewriter selects the rewrite provider from the configuration.
func NewRewriter(ctx context.Context, config RewriteConfig) (Rewriter, error) {
	provider := strings.ToLower(strings.TrimSpace(config.Provider))
	switch provider {
	case "", "gemini":
		return NewGeminiRewriter(ctx, config)
	case "openai":
		return NewOpenAIRewriter(config), nil
	default:
		return nil, fmt.Errorf("unknown ai provider: %s", config.Provider)
	}
}

// buildRewritePrompt renders the fixed prompt contract: Korean blog rewrite
// instructions plus the marker-line output format the parser expects.
func buildRewritePrompt(item RawItem) string {
	return fmt.Sprintf(`당신은 AI-feed 블로그 작성 봇입니다. 게시글에 인사와 소개를 적지 마세요.
다음 영어 기술 뉴스를 한국어 블로그 포스팅으로 재작성해주세요.

[원문 정보]
제목: %s
내용: %s
출처: %s
링크: %s

[작성 규칙]
1. **제목**: 클릭을 유도하는 자극적이고 궁금증을 자아내는 한국어 제목
   - 숫자, 감탄사, 질문형 활용
2. **본문**:
   - 전문적이고 권위 있는 어조 (합니다/입니다 체)
   - 바로 핵심 내용부터 시작 (자기소개 하지 말 것)
   - 원문 내용을 상세하게 풀어서 설명하고 배경 지식과 맥락 추가
   - 마무리는 간단하게 요약만 (댓글 요청, 구독 요청 등 하지 말 것)
3. **형식**: HTML 태그 사용 (h2, h3, p, strong, ul, li)
   - 소제목(h2, h3)을 2-3개 사용하여 구조화
4. **필수**: 글 마지막에 "출처: <a href='%s'>원문 보기</a>" 포함

[출력 형식]
TITLE: 제목
META: 검색 결과에 표시될 150자 이내 요약
ALT: 대표 이미지 설명
TAGS: 태그1, 태그2, 태그3
(그 다음 줄부터 본문 HTML을 작성하세요. 본문 안에 위 형식 표시를 쓰지 마세요.)`,
		item.Title, item.OriginalContent, item.Source, item.URL, item.URL)
}

// demoArticle is the no-credential path: a recognizable placeholder that
// still carries the item's link and content.
func demoArticle(item RawItem) *ProcessedArticle {
	return &ProcessedArticle{
		Title:       "[Demo] " + item.Title,
		Content:     fmt.Sprintf("Source: %s\n\n%s", item.URL, item.OriginalContent),
		Tags:        []string{"AI"},
		ImageAlt:    item.Title,
		OriginalURL: item.URL,
	}
}

// errorArticle is the upstream-failure path. It replaces the article
// wholesale so a half-rewritten post is never published.
func errorArticle(item RawItem, err error) *ProcessedArticle {
	return &ProcessedArticle{
		Title:       item.Title,
		Content:     fmt.Sprintf("Error: %v", err),
		Tags:        []string{"Error"},
		ImageAlt:    item.Title,
		OriginalURL: item.URL,
	}
}

// articleFromResponse parses the model output into an article, falling back
// to the item's own title and the default tag set when markers are missing.
func articleFromResponse(item RawItem, responseText string) *ProcessedArticle {
	parsed := parseRewriteResponse(responseText)

	title := parsed.Title
	if title == "" {
		title = item.Title
	}
	tags := parsed.Tags
	if len(tags) == 0 {
		tags = append([]string(nil), defaultTags...)
	}
	alt := parsed.Alt
	if alt == "" {
		alt = title
	}

	return &ProcessedArticle{
		Title:           title,
		Content:         parsed.Body,
		Tags:            tags,
		MetaDescription: parsed.Meta,
		ImageAlt:        alt,
		OriginalURL:     item.URL,
	}
}
