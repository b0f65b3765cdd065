// Package postseries publishes a numbered series of Markdown/MDX posts as a
// static site, or serves it from a local preview server.
//
// Posts live in one directory, each with a YAML metadata block declaring its
// title and its index in the series. The catalog of posts is built once per
// export (or per content change in the preview server) and handed to every
// page, which links to its neighbors in reading order.
package postseries

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/postseries/content"
	"github.com/eringen/postseries/views"
)

// ViewFuncs holds the templ components the App renders pages with. Users can
// replace any of them through WithViews.
type ViewFuncs struct {
	Index       func(site views.SiteConfig, posts []content.Summary) templ.Component
	Post        func(site views.SiteConfig, page content.Page) templ.Component
	NotFound    func(site views.SiteConfig) templ.Component
	ServerError func(site views.SiteConfig) templ.Component
}

// DefaultViews returns the components from the views package.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Index:       views.Index,
		Post:        views.Post,
		NotFound:    views.NotFound,
		ServerError: views.ServerError,
	}
}

// App is the central postseries application. It wires together the catalog,
// the views, the preview server and the static exporter.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Catalog *CatalogCache
	Views   ViewFuncs

	log          *zap.Logger
	contentFS    fs.FS
	contentDir   string // directory behind contentFS; empty under WithContentFS
	imagesFS     fs.FS
	customRoutes []func(*App)
	setupOnce    sync.Once
}

// New creates an App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  DefaultViews(),
		log:    zap.NewNop(),
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}

	if a.contentFS == nil {
		a.contentDir = a.Config.ContentDir
		a.contentFS = os.DirFS(a.contentDir)
	}
	if a.imagesFS == nil {
		a.imagesFS = os.DirFS(a.Config.ImagesDir)
	}
	a.Catalog = NewCatalogCache(a.contentFS, a.Config.catalogOptions())
	return a
}

// Logger returns the App's logger.
func (a *App) Logger() *zap.Logger {
	return a.log
}

// Handler returns the preview server's HTTP handler with middleware and
// routes installed.
func (a *App) Handler() http.Handler {
	a.setupOnce.Do(func() {
		a.setupMiddleware()
		a.setupRoutes()
		for _, fn := range a.customRoutes {
			fn(a)
		}
	})
	return a.Echo
}

// Start builds the catalog, then serves the site until ctx is cancelled.
// A broken content set is reported before the server starts listening.
func (a *App) Start(ctx context.Context) error {
	cat, err := a.Catalog.Reload()
	if err != nil {
		return err
	}
	a.log.Info("catalog loaded", zap.Int("posts", cat.Len()), zap.String("dir", a.Config.ContentDir))

	a.Handler()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.Echo.Shutdown(shutdownCtx); err != nil {
			a.log.Warn("server shutdown", zap.Error(err))
		}
	}()

	a.log.Info("serving", zap.String("addr", a.Config.Addr), zap.String("base", a.Config.BasePath+"/"))
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo
	base := a.Config.BasePath

	if base != "" {
		e.GET("/", a.handleBaseRedirect)
	}

	g := e.Group(base)
	g.GET("/public/style.css", a.handleStylesheet)
	g.StaticFS("/images", a.imagesFS)
	g.GET("/sitemap.xml", a.handleSitemap)
	g.GET("/feed.xml", a.handleFeed)
	g.GET("/", a.handleIndex)
	g.GET("/posts/:slug/", a.handlePost)
}

// Close releases resources held by the server.
func (a *App) Close() error {
	return a.Echo.Close()
}
