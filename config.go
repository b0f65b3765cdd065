package postseries

import (
	"io/fs"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/eringen/postseries/content"
	"github.com/eringen/postseries/views"
)

// SiteConfig holds all configuration for a postseries site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical origin (default "http://localhost:3000")
	BasePath    string // Path prefix every route lives under, e.g. "/diy-firestore"
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD

	ContentDir string   // Directory holding the numbered posts (default "posts")
	Extensions []string // Post file extensions (default .md, .mdx)
	ImagesDir  string   // Directory of images published under <base>/images (default "public/images")
	OutputDir  string   // Static export target (default "out")
	Clean      bool     // Remove OutputDir before exporting

	Addr string // Preview server listen address (default ":3000")

	RequireContiguous bool // Reject gaps in the index sequence
	FirstIndex        int  // First index when RequireContiguous is set, taken as is (0 is a valid base)

	MaxImageWidth int // Wider JPEG/PNG images are downscaled on export (default 1200)
	Concurrency   int // Pages rendered in parallel on export (default GOMAXPROCS)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimRight(c.URL, "/")
	c.BasePath = normalizeBasePath(c.BasePath)
	if c.ContentDir == "" {
		c.ContentDir = "posts"
	}
	if len(c.Extensions) == 0 {
		c.Extensions = content.DefaultExtensions
	}
	if c.ImagesDir == "" {
		c.ImagesDir = "public/images"
	}
	if c.OutputDir == "" {
		c.OutputDir = "out"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.MaxImageWidth == 0 {
		c.MaxImageWidth = 1200
	}
	if c.Concurrency <= 0 {
		c.Concurrency = runtime.GOMAXPROCS(0)
	}
}

// normalizeBasePath returns "" or a path with a leading and no trailing slash.
func normalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

func (c SiteConfig) catalogOptions() content.Options {
	return content.Options{
		Extensions:        c.Extensions,
		RequireContiguous: c.RequireContiguous,
		FirstIndex:        c.FirstIndex,
	}
}

func (c SiteConfig) viewSite() views.SiteConfig {
	return views.SiteConfig{
		Name:        c.Name,
		URL:         c.URL,
		BasePath:    c.BasePath,
		Description: c.Description,
		Author:      c.Author,
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithLogger sets the logger used by the server and the exporter.
func WithLogger(l *zap.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.log = l
		}
	}
}

// WithContentFS reads posts from fsys instead of Config.ContentDir.
func WithContentFS(fsys fs.FS) Option {
	return func(a *App) {
		a.contentFS = fsys
	}
}

// WithImagesFS publishes images from fsys instead of Config.ImagesDir.
func WithImagesFS(fsys fs.FS) Option {
	return func(a *App) {
		a.imagesFS = fsys
	}
}

// WithViews replaces the default views. Nil fields keep their defaults.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		if v.Index != nil {
			a.Views.Index = v.Index
		}
		if v.Post != nil {
			a.Views.Post = v.Post
		}
		if v.NotFound != nil {
			a.Views.NotFound = v.NotFound
		}
		if v.ServerError != nil {
			a.Views.ServerError = v.ServerError
		}
	}
}
