package feedbot

// RawItem is the normalized record a Source emits before rewriting.
type RawItem struct {
	Title           string
	URL             string
	OriginalContent string // may be empty
	Source          string
	Timestamp       string // RFC 3339, may be empty
}

// ProcessedArticle is a rewritten article ready for publishing. The
// illustrator prepends an image tag to Content and the enrichment step
// appends trailing fragments; it is handed to a Publisher exactly once.
type ProcessedArticle struct {
	Title           string
	Content         string // HTML fragment
	Tags            []string
	MetaDescription string
	ImageAlt        string
	OriginalURL     string
}

// LedgerEntry is one published (title, URL) pair held by RecentPosts.
type LedgerEntry struct {
	Title string
	URL   string
}

// PublishState tags the outcome of a publish attempt.
type PublishState int

const (
	StatePublished PublishState = iota
	StateSkipped
	StateFailed
)

// PublishResult is the typed outcome of Publisher.PostArticle. Only
// Published results carry a URL and are eligible for ledger insertion.
type PublishResult struct {
	State  PublishState
	URL    string
	Reason string
}

// Published wraps a canonical post URL.
func Published(url string) PublishResult {
	return PublishResult{State: StatePublished, URL: url}
}

// Skipped reports that no publish was attempted.
func Skipped(reason string) PublishResult {
	return PublishResult{State: StateSkipped, Reason: reason}
}

// Failed reports an upstream publish failure.
func Failed(detail string) PublishResult {
	return PublishResult{State: StateFailed, Reason: detail}
}

func (r PublishResult) String() string {
	switch r.State {
	case StatePublished:
		return r.URL
	case StateSkipped:
		return r.Reason
	default:
		return "Error: " + r.Reason
	}
}
