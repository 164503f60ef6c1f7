package service

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ContentRenderer turns stored article markdown into sanitized HTML
type ContentRenderer struct {
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

// NewContentRenderer creates a renderer with GitHub-flavored markdown
// extensions and a UGC sanitization policy
func NewContentRenderer() *ContentRenderer {
	return &ContentRenderer{
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// Render converts markdown content to sanitized HTML
func (r *ContentRenderer) Render(content string) (string, error) {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return r.policy.Sanitize(buf.String()), nil
}

// SanitizeStrict strips all HTML, leaving plain text. Used for fields
// that must never carry markup, like titles and tag names.
func (r *ContentRenderer) SanitizeStrict(s string) string {
	return bluemonday.StrictPolicy().Sanitize(s)
}
