package views

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/a-h/templ"

	"github.com/eringen/postseries/content"
	"github.com/eringen/postseries/markdown"
)

// htmlWriter keeps the first write error so templates can be written as a
// flat sequence of calls.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="`)
	h.text(value)
	h.raw(`"`)
}

func (h *htmlWriter) component(ctx context.Context, c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// Layout wraps body in the shared document shell.
func Layout(site SiteConfig, meta PageMeta, jsonLD string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		title := site.Name
		if meta.Title != "" && meta.Title != site.Name {
			title = meta.Title + " | " + site.Name
		}
		h.raw("<!DOCTYPE html>\n<html lang=\"en\"><head><meta charset=\"utf-8\"/>")
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		h.raw("<title>")
		h.text(title)
		h.raw("</title>")
		if meta.Description != "" {
			h.raw(`<meta name="description"`)
			h.attr("content", meta.Description)
			h.raw("/>")
		}
		if meta.URL != "" {
			h.raw(`<link rel="canonical"`)
			h.attr("href", meta.URL)
			h.raw(`/><meta property="og:url"`)
			h.attr("content", meta.URL)
			h.raw("/>")
		}
		h.raw(`<meta property="og:title"`)
		h.attr("content", title)
		h.raw(`/><meta property="og:type"`)
		h.attr("content", meta.OGType)
		h.raw("/>")
		h.raw(`<link rel="stylesheet"`)
		h.attr("href", IndexPath(site)+"public/style.css")
		h.raw("/>")
		h.raw(`<link rel="alternate" type="application/rss+xml"`)
		h.attr("href", IndexPath(site)+"feed.xml")
		h.raw("/>")
		if jsonLD != "" {
			h.raw(`<script type="application/ld+json">`)
			h.raw(strings.ReplaceAll(jsonLD, "</", `<\/`))
			h.raw("</script>")
		}
		h.raw(`</head><body><nav class="site-nav"><a`)
		h.attr("href", IndexPath(site))
		h.raw(">Home</a></nav><main>")
		h.component(ctx, body)
		h.raw("</main></body></html>\n")
		return h.err
	})
}

// Index lists every post in reading order.
func Index(site SiteConfig, posts []content.Summary) templ.Component {
	list := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<h1>")
		h.text(site.Name)
		h.raw("</h1>")
		if site.Description != "" {
			h.raw(`<p class="site-description">`)
			h.text(site.Description)
			h.raw("</p>")
		}
		h.raw(`<ol class="post-list">`)
		for _, p := range posts {
			h.raw("<li")
			h.attr("value", fmt.Sprint(p.Position()))
			h.raw("><a")
			h.attr("href", PostPath(site, p.Slug))
			h.raw(">")
			h.text(fmt.Sprintf("%02d. %s", p.Position(), p.Title))
			h.raw("</a>")
			if p.Subtitle != "" {
				h.raw(`<p class="subtitle">`)
				h.text(p.Subtitle)
				h.raw("</p>")
			}
			h.raw("</li>")
		}
		h.raw("</ol>")
		return h.err
	})
	meta := PageMeta{
		Title:       site.Name,
		Description: site.Description,
		URL:         IndexURL(site),
		OGType:      "website",
	}
	return Layout(site, meta, WebsiteJsonLD(site), list)
}

var renderers sync.Map // base path -> *markdown.Renderer

func rendererFor(site SiteConfig) *markdown.Renderer {
	if r, ok := renderers.Load(site.BasePath); ok {
		return r.(*markdown.Renderer)
	}
	r, _ := renderers.LoadOrStore(site.BasePath, markdown.New(markdown.Options{BasePath: site.BasePath}))
	return r.(*markdown.Renderer)
}

// Post renders one post with links to its neighbors.
func Post(site SiteConfig, page content.Page) templ.Component {
	article := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<article><header><p class="post-index">`)
		h.text(fmt.Sprintf("Part %d", page.Position()))
		h.raw("</p><h1>")
		h.text(page.Title)
		h.raw("</h1>")
		if page.Subtitle != "" {
			h.raw(`<p class="subtitle">`)
			h.text(page.Subtitle)
			h.raw("</p>")
		}
		h.raw(`</header><div class="post-body">`)
		h.component(ctx, rendererFor(site).Component(page.Body))
		h.raw(`</div></article><nav class="post-nav">`)
		if page.Prev != nil {
			h.raw(`<a rel="prev"`)
			h.attr("href", PostPath(site, page.Prev.Slug))
			h.raw(">&larr; ")
			h.text(page.Prev.Title)
			h.raw("</a>")
		}
		if page.Next != nil {
			h.raw(`<a rel="next"`)
			h.attr("href", PostPath(site, page.Next.Slug))
			h.raw(">")
			h.text(page.Next.Title)
			h.raw(" &rarr;</a>")
		}
		h.raw("</nav>")
		return h.err
	})
	meta := PageMeta{
		Title:       page.Title,
		Description: page.Subtitle,
		URL:         PostURL(site, page.Slug),
		OGType:      "article",
	}
	return Layout(site, meta, ArticleJsonLD(site, page.Summary), article)
}

// NotFound is rendered for unknown slugs.
func NotFound(site SiteConfig) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<h1>Page not found</h1><p>There is no post at this address. <a")
		h.attr("href", IndexPath(site))
		h.raw(">Back to the index</a>.</p>")
		return h.err
	})
	return Layout(site, PageMeta{Title: "Not found", OGType: "website"}, "", body)
}

// ServerError is rendered when a page cannot be produced.
func ServerError(site SiteConfig) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<h1>Something went wrong</h1><p>This page could not be built.</p>")
		return h.err
	})
	return Layout(site, PageMeta{Title: "Error", OGType: "website"}, "", body)
}
