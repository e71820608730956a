package site

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/yaklabco/cppdoc/pkg/highlight"
	"github.com/yaklabco/cppdoc/pkg/sidebar"
)

// PageInfo locates a document within the site.
type PageInfo struct {
	// Link is the document's sidebar link, e.g. "/ch01/loops.md".
	Link string

	// Sidebar is the site outline. It may be nil.
	Sidebar *sidebar.Sidebar
}

// NavItem is a rendered outline entry.
type NavItem struct {
	Href     string
	Text     string
	Current  bool
	Children []NavItem
}

type pageData struct {
	SiteTitle string
	Lang      string
	Title     string
	CSS       template.CSS
	Body      template.HTML
	Nav       []NavItem
	Prev      *NavItem
	Next      *NavItem
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{if .Title}}{{.Title}} | {{end}}{{.SiteTitle}}</title>
<style>{{.CSS}}</style>
</head>
<body>
<nav class="sidebar">{{if .Nav}}{{template "nav" .Nav}}{{end}}</nav>
<main class="page">
{{.Body}}
<footer class="page-nav">
{{- with .Prev}}<a class="prev" href="{{.Href}}">{{.Text}}</a>{{end}}
{{- with .Next}}<a class="next" href="{{.Href}}">{{.Text}}</a>{{end -}}
</footer>
</main>
</body>
</html>
{{define "nav"}}<ul>{{range .}}<li{{if .Current}} class="active"{{end}}><a href="{{.Href}}">{{.Text}}</a>{{if .Children}}{{template "nav" .Children}}{{end}}</li>{{end}}</ul>{{end}}`))

const pageCSS = `
.highlight-lines, .line-numbers { position: absolute; top: 0; pointer-events: none; }
.hidden-copycode-codeblock { display: none; }
.sdsc-placeholder { font-style: italic; }
.sdsc-opt-marker { font-size: 0.7em; }
pre code a { color: inherit; text-decoration: underline dotted grey 1px; }
pre code a:hover { text-decoration: underline grey 1px; }
`

var stylesheet = sync.OnceValues(func() (string, error) {
	var sb strings.Builder
	if err := highlight.WriteCSS(&sb, highlight.DefaultStyle); err != nil {
		return "", err
	}
	sb.WriteString(pageCSS)
	return sb.String(), nil
})

// Page renders source and wraps it in a complete HTML page with the site
// outline and links to the neighboring pages.
func (r *Renderer) Page(ctx context.Context, source []byte, info PageInfo) ([]byte, error) {
	body, err := r.Render(ctx, source)
	if err != nil {
		return nil, err
	}

	css, err := stylesheet()
	if err != nil {
		return nil, err
	}

	data := pageData{
		SiteTitle: r.opts.SiteTitle,
		Lang:      r.opts.Lang,
		Title:     sidebar.Title(source),
		CSS:       template.CSS(css),   //nolint:gosec // generated stylesheet
		Body:      template.HTML(body), //nolint:gosec // rendered by this package
	}
	if data.Lang == "" {
		data.Lang = "en"
	}

	if info.Sidebar != nil {
		data.Nav = navItems(info.Sidebar.Items, info.Link)
		prev, next := info.Sidebar.PrevNext(info.Link)
		data.Prev = navLink(prev)
		data.Next = navLink(next)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute page template: %w", err)
	}
	return buf.Bytes(), nil
}

func navItems(items []sidebar.Item, current string) []NavItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]NavItem, 0, len(items))
	for _, item := range items {
		out = append(out, NavItem{
			Href:     sidebar.Href(item.Link),
			Text:     item.Text,
			Current:  item.Link == current,
			Children: navItems(item.Children, current),
		})
	}
	return out
}

func navLink(item *sidebar.Item) *NavItem {
	if item == nil {
		return nil
	}
	return &NavItem{Href: sidebar.Href(item.Link), Text: item.Text}
}
