package postseries

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/a-h/templ"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/eringen/postseries/content"
)

// ExportResult summarizes a static export.
type ExportResult struct {
	Pages    int
	Images   int
	Duration time.Duration
}

// Export renders every route of the site into Config.OutputDir. The catalog
// is built once and shared by all pages; any post that cannot be resolved
// fails the export.
func (a *App) Export(ctx context.Context) (ExportResult, error) {
	start := time.Now()
	var res ExportResult

	cat, err := a.Catalog.Reload()
	if err != nil {
		return res, fmt.Errorf("build catalog: %w", err)
	}

	out := a.Config.OutputDir
	if a.Config.Clean {
		if err := os.RemoveAll(out); err != nil {
			return res, fmt.Errorf("clean output: %w", err)
		}
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return res, fmt.Errorf("create output: %w", err)
	}

	site := a.Config.viewSite()
	summaries := cat.Summaries()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.Config.Concurrency)

	g.Go(func() error {
		return a.writeComponent(gctx, filepath.Join(out, "index.html"), a.Views.Index(site, summaries))
	})
	g.Go(func() error {
		return a.writeComponent(gctx, filepath.Join(out, "404.html"), a.Views.NotFound(site))
	})
	g.Go(func() error {
		return a.writeFile(filepath.Join(out, "sitemap.xml"), func(w io.Writer) error {
			return writeSitemap(w, site, summaries)
		})
	})
	g.Go(func() error {
		return a.writeFile(filepath.Join(out, "feed.xml"), func(w io.Writer) error {
			return writeRSS(w, site, summaries)
		})
	})
	g.Go(func() error {
		css, err := EmbeddedAssets.ReadFile("embedded/style.css")
		if err != nil {
			return err
		}
		return a.writeFile(filepath.Join(out, "public", "style.css"), func(w io.Writer) error {
			_, err := w.Write(css)
			return err
		})
	})
	for _, s := range summaries {
		g.Go(func() error {
			return a.exportPost(gctx, cat, s, out)
		})
	}
	g.Go(func() error {
		n, err := a.exportImages(gctx, filepath.Join(out, "images"))
		res.Images = n
		return err
	})

	if err := g.Wait(); err != nil {
		return res, err
	}

	res.Pages = len(summaries) + 2
	res.Duration = time.Since(start)
	a.log.Info("export complete",
		zap.String("dir", out),
		zap.Int("posts", len(summaries)),
		zap.Int("images", res.Images),
		zap.Duration("took", res.Duration),
	)
	return res, nil
}

func (a *App) exportPost(ctx context.Context, cat *content.Catalog, s content.Summary, out string) error {
	page, err := cat.Resolve(s.Slug)
	if err != nil {
		return err
	}
	target := filepath.Join(out, "posts", s.Slug, "index.html")
	return a.writeComponent(ctx, target, a.Views.Post(a.Config.viewSite(), page))
}

func (a *App) writeComponent(ctx context.Context, target string, cmp templ.Component) error {
	return a.writeFile(target, func(w io.Writer) error {
		return cmp.Render(ctx, w)
	})
}

func (a *App) writeFile(target string, fill func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := fill(bw); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", target, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	a.log.Debug("wrote", zap.String("file", target))
	return nil
}
