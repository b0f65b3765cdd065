// Package markdown renders post bodies to HTML as templ components.
package markdown

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Options configures a Renderer.
type Options struct {
	// BasePath is prepended to root-relative link and image destinations so
	// posts can be written against "/" and deployed under a sub-path.
	BasePath string
}

// Renderer converts Markdown (and the HTML embedded in MDX posts) to HTML.
// It is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// CodeStyle is the chroma style fenced code is highlighted with.
const CodeStyle = "dracula"

// New builds a Renderer with GitHub-flavoured Markdown, heading anchors,
// syntax highlighting and raw HTML passthrough.
func New(opts Options) *Renderer {
	base := strings.TrimRight(opts.BasePath, "/")
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(CodeStyle),
				highlighting.WithFormatOptions(chromahtml.TabWidth(4)),
				highlighting.WithWrapperRenderer(wrapCodeBlock),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(util.Prioritized(&destinationRewriter{base: base}, 100)),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	return &Renderer{md: md}
}

var defaultRenderer = New(Options{})

// Markdown returns a templ.Component that renders source with the default renderer.
func Markdown(source []byte) templ.Component {
	return defaultRenderer.Component(source)
}

// Component returns a templ.Component that renders source as HTML.
func (r *Renderer) Component(source []byte) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := r.Render(&buf, source); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Render writes the HTML representation of source to w.
func (r *Renderer) Render(w io.Writer, source []byte) error {
	return r.md.Convert(source, w)
}

// destinationRewriter prefixes root-relative destinations with the base path
// and marks every image after the first as lazily loaded.
type destinationRewriter struct {
	base string
}

func (d *destinationRewriter) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	images := 0
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Image:
			node.Destination = d.prefix(node.Destination)
			images++
			if images == 1 {
				node.SetAttributeString("loading", []byte("eager"))
			} else {
				node.SetAttributeString("loading", []byte("lazy"))
			}
			node.SetAttributeString("decoding", []byte("async"))
		case *ast.Link:
			node.Destination = d.prefix(node.Destination)
		}
		return ast.WalkContinue, nil
	})
}

func (d *destinationRewriter) prefix(dest []byte) []byte {
	if d.base == "" || !bytes.HasPrefix(dest, []byte("/")) || bytes.HasPrefix(dest, []byte("//")) {
		return dest
	}
	if bytes.Equal(dest, []byte(d.base)) || bytes.HasPrefix(dest, []byte(d.base+"/")) {
		return dest
	}
	return append([]byte(d.base), dest...)
}

// wrapCodeBlock surrounds fenced code with a language badge. Chroma writes
// its own pre/code pair for highlighted blocks; the rest get a plain one.
func wrapCodeBlock(w util.BufWriter, ctx highlighting.CodeBlockContext, entering bool) {
	lang, ok := ctx.Language()
	hasLang := ok && len(lang) > 0

	if !entering {
		if !ctx.Highlighted() {
			_, _ = w.WriteString("</code></pre>")
		}
		if hasLang {
			_, _ = w.WriteString("</div>")
		}
		_ = w.WriteByte('\n')
		return
	}

	if hasLang {
		escaped := util.EscapeHTML(lang)
		_, _ = w.WriteString(`<div class="code-block-wrapper"><span class="code-lang code-lang-`)
		_, _ = w.Write(escaped)
		_, _ = w.WriteString(`">`)
		_, _ = w.Write(escaped)
		_, _ = w.WriteString(`</span>`)
	}
	if ctx.Highlighted() {
		return
	}
	if hasLang {
		_, _ = w.WriteString(`<pre class="code-block"><code class="language-`)
		_, _ = w.Write(util.EscapeHTML(lang))
		_, _ = w.WriteString(`">`)
		return
	}
	_, _ = w.WriteString(`<pre class="code-block"><code>`)
}
