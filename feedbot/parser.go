package feedbot

import "strings"

// Field markers the rewrite prompt asks the model to emit ahead of the body.
const (
	markerTitle = "TITLE:"
	markerMeta  = "META:"
	markerAlt   = "ALT:"
	markerTags  = "TAGS:"
)

// defaultTags is used when the response carries no TAGS line. Tags must never
// be empty: the publish payload requires at least one label.
var defaultTags = []string{"AI", "테크뉴스", "인공지능"}

// rewriteResponse is the structured result of parsing a rewrite response.
type rewriteResponse struct {
	Title string
	Meta  string
	Alt   string
	Tags  []string
	Body  string
}

// parseRewriteResponse scans the response line by line from the top. While a
// line starts with a known field marker it is extracted and stripped; the
// first non-blank line that matches no marker begins the body, and everything
// from there to the end is kept verbatim. Marker-like lines inside the body
// are literal content and are not re-extracted. Fields may appear in any
// order. A response with no markers at all yields an empty Title and the full
// text as Body.
func parseRewriteResponse(raw string) rewriteResponse {
	var parsed rewriteResponse

	lines := strings.Split(raw, "\n")
	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			i++
			continue
		}
		switch {
		case strings.HasPrefix(line, markerTitle):
			parsed.Title = strings.TrimSpace(strings.TrimPrefix(line, markerTitle))
		case strings.HasPrefix(line, markerMeta):
			parsed.Meta = strings.TrimSpace(strings.TrimPrefix(line, markerMeta))
		case strings.HasPrefix(line, markerAlt):
			parsed.Alt = strings.TrimSpace(strings.TrimPrefix(line, markerAlt))
		case strings.HasPrefix(line, markerTags):
			parsed.Tags = splitTags(strings.TrimPrefix(line, markerTags))
		default:
			parsed.Body = strings.Join(lines[i:], "\n")
			return parsed
		}
		i++
	}
	return parsed
}

func splitTags(s string) []string {
	var tags []string
	for _, tag := range strings.Split(s, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
