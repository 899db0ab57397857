package article

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/kyaoi/readview/internal/settings"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
main {
  min-height: 100vh;
  margin: 0;
  background: var(--bg-color);
}
article {
  box-sizing: border-box;
  max-width: var(--container-width);
  margin: 0 auto;
  padding: 48px 24px;
  font-family: var(--font-family);
  font-size: var(--font-size);
  color: var(--font-color);
}
</style>
</head>
<body style="margin:0">
<main style="{{.Style}}">
<article>
{{- if .Byline}}
<p><em>{{.Byline}}</em></p>
{{- end}}
{{.Body}}
</article>
</main>
</body>
</html>
`))

// ExportHTML writes doc as a standalone page whose main element carries the
// style variables of s.
func ExportHTML(w io.Writer, doc Document, s settings.State) error {
	if err := s.Validate(); err != nil {
		return err
	}
	var body bytes.Buffer
	if err := markdown.Convert([]byte(doc.Body), &body); err != nil {
		return fmt.Errorf("convert markdown: %w", err)
	}
	data := struct {
		Title  string
		Byline string
		Style  template.CSS
		Body   template.HTML
	}{
		Title:  doc.Title(),
		Byline: doc.byline(),
		Style:  template.CSS(s.CSS()),
		Body:   template.HTML(body.String()),
	}
	return page.Execute(w, data)
}
