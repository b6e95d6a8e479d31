package spendwise

import (
	"html/template"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var notePolicy = bluemonday.UGCPolicy()

// RenderNote converts a budget note from Markdown to sanitized HTML.
// Script and event-handler payloads entered through the note field must
// never reach the page.
func RenderNote(noteMD string) template.HTML {
	if noteMD == "" {
		return ""
	}
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	rendered := markdown.ToHTML([]byte(noteMD), p, renderer)
	return template.HTML(notePolicy.SanitizeBytes(rendered))
}
