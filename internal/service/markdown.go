package service

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

type markdownRenderer struct {
	md goldmark.Markdown
}

func newMarkdownRenderer() *markdownRenderer {
	return &markdownRenderer{md: goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)}
}

// Render converts blog markdown to HTML. Raw HTML in the source is dropped.
func (r *markdownRenderer) Render(markdown string) (string, error) {
	var out bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &out); err != nil {
		return "", err
	}
	return out.String(), nil
}
