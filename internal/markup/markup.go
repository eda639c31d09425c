// Package markup renders ticket descriptions for preview.
package markup

import (
	"bytes"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Renderer turns Markdown into sanitized HTML.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer creates a renderer with the description policy: basic
// formatting, lists, code, tables and links that open safely.
func NewRenderer() *Renderer {
	p := bluemonday.NewPolicy()

	p.AllowElements("b", "strong", "i", "em", "u", "s", "strike", "del")
	p.AllowElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowElements("p", "br", "hr")
	p.AllowElements("ul", "ol", "li")
	p.AllowElements("blockquote", "code", "pre")
	p.AllowElements("table", "thead", "tbody", "tr", "th", "td")

	p.AllowElements("a")
	p.AllowAttrs("href").OnElements("a")
	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireParseableURLs(true)
	p.RequireNoFollowOnLinks(true)
	p.RequireNoReferrerOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	return &Renderer{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: p,
	}
}

// HTML converts markdown and sanitizes the result. Raw HTML in the input
// is escaped by goldmark and whatever remains goes through the policy.
func (r *Renderer) HTML(markdown string) string {
	if strings.TrimSpace(markdown) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return r.policy.Sanitize(markdown)
	}
	return r.policy.Sanitize(buf.String())
}

var strict = bluemonday.StrictPolicy()

// PlainText strips all markup and leaves unescaped text, for places such
// as spreadsheet cells.
func PlainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
