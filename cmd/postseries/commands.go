package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/eringen/postseries"
	"github.com/eringen/postseries/content"
	"github.com/eringen/postseries/scaffold"
)

type buildCmd struct {
	Site        siteFlags `embed:""`
	Output      string    `short:"o" help:"Output directory for the exported site." env:"OUTPUT_DIR" default:"out" type:"path"`
	Clean       bool      `help:"Remove the output directory first."`
	MaxWidth    int       `help:"Downscale JPEG/PNG images wider than this." env:"MAX_IMAGE_WIDTH" default:"1200"`
	Concurrency int       `short:"j" help:"Pages rendered in parallel (0 = GOMAXPROCS)."`
}

func (c *buildCmd) Run(ctx context.Context, logger *zap.Logger) error {
	cfg := c.Site.config()
	cfg.OutputDir = c.Output
	cfg.Clean = c.Clean
	cfg.MaxImageWidth = c.MaxWidth
	cfg.Concurrency = c.Concurrency

	app := postseries.New(cfg, postseries.WithLogger(logger))
	res, err := app.Export(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("exported %d pages and %d images to %s in %s\n", res.Pages, res.Images, cfg.OutputDir, res.Duration.Round(time.Millisecond))
	return nil
}

type serveCmd struct {
	Site  siteFlags `embed:""`
	Addr  string    `short:"a" help:"Listen address." env:"ADDR" default:":3000"`
	Watch bool      `short:"w" help:"Rebuild the catalog when posts change."`
}

func (c *serveCmd) Run(ctx context.Context, logger *zap.Logger) error {
	cfg := c.Site.config()
	cfg.Addr = c.Addr

	app := postseries.New(cfg, postseries.WithLogger(logger))
	defer app.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Start(gctx)
	})
	if c.Watch {
		g.Go(func() error {
			return app.Watch(gctx)
		})
	}
	return g.Wait()
}

type listCmd struct {
	Site siteFlags `embed:""`
}

func (c *listCmd) Run() error {
	cat, err := buildCatalog(c.Site)
	if err != nil {
		return err
	}
	return printCatalog(os.Stdout, cat)
}

func printCatalog(w io.Writer, cat *content.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tSLUG\tTITLE\tPREV\tNEXT")
	for _, s := range cat.Summaries() {
		prev, next, err := cat.Neighbors(s.Slug)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", s.Position(), s.Slug, s.Title, slugOrDash(prev), slugOrDash(next))
	}
	return tw.Flush()
}

func slugOrDash(s *content.Summary) string {
	if s == nil {
		return "-"
	}
	return s.Slug
}

type checkCmd struct {
	Site siteFlags `embed:""`
}

func (c *checkCmd) Run(logger *zap.Logger) error {
	cat, err := buildCatalog(c.Site)
	if err != nil {
		return err
	}
	// Bodies are only read on demand, so resolve each one to catch files
	// that break between listing and rendering.
	for _, s := range cat.Summaries() {
		if _, err := cat.Resolve(s.Slug); err != nil {
			return err
		}
	}
	logger.Info("content ok", zap.Int("posts", cat.Len()), zap.String("dir", c.Site.Content))
	return nil
}

func buildCatalog(f siteFlags) (*content.Catalog, error) {
	return postseries.New(f.config()).Catalog.Reload()
}

type initCmd struct {
	Dir string `arg:"" help:"Directory to create." type:"path"`
}

func (c *initCmd) Run() error {
	created, err := scaffold.Write(c.Dir, scaffold.NewData(c.Dir))
	if err != nil {
		return err
	}
	for _, f := range created {
		fmt.Printf("  created %s\n", f)
	}
	fmt.Printf("\nNext: cd %s && postseries serve --watch\n", c.Dir)
	return nil
}

type versionCmd struct{}

func (versionCmd) Run() error {
	fmt.Printf("postseries %s\n", version)
	return nil
}
