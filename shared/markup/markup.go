// Package markup turns post messages written in Markdown into HTML that is
// safe to embed in a page.
package markup

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)

	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	return &Renderer{md: md, policy: p}
}

// Render converts message to sanitized HTML. On a conversion error the
// escaped plain text is returned so a post is never dropped from a page.
func (r *Renderer) Render(message string) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(message), &buf); err != nil {
		return r.policy.Sanitize(message)
	}
	return strings.TrimSpace(r.policy.Sanitize(buf.String()))
}
