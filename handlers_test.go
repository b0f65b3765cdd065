package postseries

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/postseries/content"
	"github.com/eringen/postseries/views"
)

func get(t *testing.T, app *App, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleIndex(t *testing.T) {
	app := newTestApp(t, SiteConfig{Name: "DIY Firestore", BasePath: "/diy-firestore"}, seriesFS())

	rec := get(t, app, "/diy-firestore/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, echo.MIMETextHTMLCharsetUTF8, rec.Header().Get(echo.HeaderContentType))
	body := rec.Body.String()
	assert.Contains(t, body, `href="/diy-firestore/posts/intro/"`)
	assert.Contains(t, body, `href="/diy-firestore/posts/queries/"`)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
}

func TestHandlePost(t *testing.T) {
	app := newTestApp(t, SiteConfig{BasePath: "/diy-firestore"}, seriesFS())

	rec := get(t, app, "/diy-firestore/posts/basics/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<a rel="prev" href="/diy-firestore/posts/intro/">`)
	assert.Contains(t, body, `<a rel="next" href="/diy-firestore/posts/queries/">`)
	assert.Contains(t, body, `<h1 id="basics">Basics</h1>`)
	assert.Contains(t, body, `href="/diy-firestore/"`)
}

func TestHandlePostNotFound(t *testing.T) {
	app := newTestApp(t, SiteConfig{BasePath: "/diy-firestore"}, seriesFS())

	rec := get(t, app, "/diy-firestore/posts/bas/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestUnknownRouteRendersNotFound(t *testing.T) {
	app := newTestApp(t, SiteConfig{}, seriesFS())

	rec := get(t, app, "/nothing/here/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestBrokenCatalogIsServerError(t *testing.T) {
	fsys := seriesFS()
	fsys["04-broken.mdx"] = &fstest.MapFile{Data: []byte("---\ntitle: Broken\n---\n")}
	app := newTestApp(t, SiteConfig{}, fsys)

	rec := get(t, app, "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something went wrong")
}

func TestRedirects(t *testing.T) {
	app := newTestApp(t, SiteConfig{BasePath: "diy-firestore/"}, seriesFS())

	rec := get(t, app, "/")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/diy-firestore/", rec.Header().Get("Location"))

	rec = get(t, app, "/diy-firestore/posts/intro")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/diy-firestore/posts/intro/", rec.Header().Get("Location"))
}

func TestFeeds(t *testing.T) {
	app := newTestApp(t, SiteConfig{Name: "DIY Firestore", BasePath: "/diy-firestore"}, seriesFS())

	rec := get(t, app, "/diy-firestore/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "application/xml")
	assert.Contains(t, rec.Body.String(), "<loc>https://example.com/diy-firestore/posts/basics/</loc>")
	assert.Contains(t, rec.Body.String(), "<lastmod>2023-02-01</lastmod>")

	rec = get(t, app, "/diy-firestore/feed.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "application/rss+xml")
	assert.Contains(t, rec.Body.String(), "<title>Queries</title>")
	assert.Contains(t, rec.Body.String(), "<description>All about Queries</description>")
}

func TestAssets(t *testing.T) {
	app := newTestApp(t, SiteConfig{BasePath: "/diy-firestore"}, seriesFS())

	rec := get(t, app, "/diy-firestore/public/style.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/css")
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))

	rec = get(t, app, "/diy-firestore/images/tree.png")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWithViewsOverridesPost(t *testing.T) {
	custom := func(site views.SiteConfig, page content.Page) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := io.WriteString(w, "custom:"+page.Slug)
			return err
		})
	}
	app := newTestApp(t, SiteConfig{}, seriesFS(), WithViews(ViewFuncs{Post: custom}))

	rec := get(t, app, "/posts/intro/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "custom:intro", rec.Body.String())

	rec = get(t, app, "/")
	assert.Contains(t, rec.Body.String(), "<ol class=\"post-list\">")
}

func TestCustomRoutes(t *testing.T) {
	app := newTestApp(t, SiteConfig{}, seriesFS(), WithCustomRoutes(func(a *App) {
		a.Echo.GET("/healthz", func(c echo.Context) error {
			return c.String(http.StatusOK, "ok")
		})
	}))

	rec := get(t, app, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRedirectsSlugWithDot(t *testing.T) {
	fsys := seriesFS()
	fsys["04-v1.2-notes.mdx"] = postFile("Notes", 4)
	app := newTestApp(t, SiteConfig{BasePath: "/diy-firestore"}, fsys)

	rec := get(t, app, "/diy-firestore/posts/v1.2-notes")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/diy-firestore/posts/v1.2-notes/", rec.Header().Get("Location"))

	rec = get(t, app, "/diy-firestore/posts/v1.2-notes/")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, app, "/diy-firestore/feed.xml")
	assert.Equal(t, http.StatusOK, rec.Code)
}
