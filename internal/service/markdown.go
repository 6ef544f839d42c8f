package service

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// MarkdownRenderer converts markdown to sanitized HTML. Project bodies and
// the profile bio are admin-authored, but the output is sanitized anyway so
// a compromised session cannot inject script into public pages.
type MarkdownRenderer struct {
	md        goldmark.Markdown
	sanitizer *bluemonday.Policy
}

// NewMarkdownRenderer creates a renderer with GFM extensions and a UGC
// sanitization policy.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// Render converts src to sanitized HTML.
func (r *MarkdownRenderer) Render(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return r.sanitizer.Sanitize(buf.String()), nil
}
