package story

import (
	"bytes"
	"errors"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
)

// Document is a generated chronicle plus fields derived from its markdown.
type Document struct {
	Markdown string
	Title    string
	Summary  string
	HTML     string
}

var titleRe = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// PostProcess validates the raw model output and derives the title, a short
// summary, and an HTML rendering for the preview/export pane.
func PostProcess(raw string) (Document, error) {
	md := strings.TrimSpace(raw)
	if md == "" {
		return Document{}, errors.New("model returned empty document")
	}

	summary := firstParagraph(md)
	if summary == "" {
		summary = truncated(md, 140)
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return Document{}, err
	}

	return Document{
		Markdown: md,
		Title:    extractTitle(md),
		Summary:  summary,
		HTML:     buf.String(),
	}, nil
}

func extractTitle(md string) string {
	if m := titleRe.FindStringSubmatch(md); len(m) >= 2 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// firstParagraph returns the first non-heading body line.
func firstParagraph(md string) string {
	for _, line := range strings.Split(md, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line
	}
	return ""
}

func truncated(md string, limit int) string {
	joined := strings.Join(strings.Fields(md), " ")
	if len(joined) <= limit {
		return joined
	}
	return joined[:limit]
}
