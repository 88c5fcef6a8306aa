package feedbot

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecentPosts_CapacityBound(t *testing.T) {
	ledger := NewRecentPosts()

	for i := 0; i < 25; i++ {
		ledger.Record(fmt.Sprintf("post %d", i), fmt.Sprintf("https://blog.example/%d", i))
		assert.LessOrEqual(t, ledger.Len(), ledgerCapacity)
	}

	// Oldest entries were evicted first.
	links := ledger.RenderLinks()
	assert.Contains(t, links, "post 24")
	assert.NotContains(t, links, "post 14")
}

func TestRecentPosts_RenderLinks(t *testing.T) {
	ledger := NewRecentPosts()
	assert.Empty(t, ledger.RenderLinks(), "empty ledger renders nothing")

	ledger.Record("first", "https://blog.example/1")
	links := ledger.RenderLinks()
	assert.Contains(t, links, `<a href="https://blog.example/1">first</a>`)

	ledger.Record("second", "https://blog.example/2")
	ledger.Record("third", "https://blog.example/3")
	ledger.Record("fourth", "https://blog.example/4")

	links = ledger.RenderLinks()
	assert.NotContains(t, links, "first", "only the last 3 entries are rendered")

	// Insertion order is preserved.
	idxSecond := strings.Index(links, "second")
	idxThird := strings.Index(links, "third")
	idxFourth := strings.Index(links, "fourth")
	assert.True(t, idxSecond < idxThird && idxThird < idxFourth)
}

func TestRecentPosts_InsertLinksBeforeCitation(t *testing.T) {
	ledger := NewRecentPosts()
	ledger.Record("related", "https://blog.example/r")

	content := "<p>body</p>\n출처: <a href='https://e.com/1'>원문 보기</a>"
	result := ledger.InsertLinks(content)

	idxLinks := strings.Index(result, "함께 보면 좋은 글")
	idxCitation := strings.Index(result, "출처:")
	assert.True(t, idxLinks >= 0 && idxLinks < idxCitation,
		"links must be spliced before the citation line")
	assert.Contains(t, result, "<p>body</p>")
}

func TestRecentPosts_InsertLinksAppendsWithoutCitation(t *testing.T) {
	ledger := NewRecentPosts()
	ledger.Record("related", "https://blog.example/r")

	content := "<p>body</p>"
	result := ledger.InsertLinks(content)

	assert.True(t, strings.HasPrefix(result, "<p>body</p>\n"))
	assert.Contains(t, result, "함께 보면 좋은 글")
}

func TestRecentPosts_InsertLinksEmptyLedger(t *testing.T) {
	ledger := NewRecentPosts()
	content := "<p>body</p>\n출처: x"
	assert.Equal(t, content, ledger.InsertLinks(content))
}
