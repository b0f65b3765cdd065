package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/eringen/postseries"
)

// version is set at build time via ldflags.
var version = "dev"

// siteFlags maps onto postseries.SiteConfig; every flag can also come from
// the environment or a .env file.
type siteFlags struct {
	Name        string   `help:"Site name." env:"SITE_NAME" default:"Blog"`
	URL         string   `help:"Canonical origin of the site." env:"SITE_URL" default:"http://localhost:3000"`
	BasePath    string   `help:"Path prefix the site is served under." env:"BASE_PATH"`
	Description string   `help:"Site description for feeds and meta tags." env:"SITE_DESCRIPTION"`
	Author      string   `help:"Author name for JSON-LD." env:"SITE_AUTHOR"`
	Content     string   `short:"d" help:"Directory holding the posts." env:"CONTENT_DIR" default:"posts" type:"path"`
	Images      string   `help:"Directory of images published under <base>/images." env:"IMAGES_DIR" default:"public/images" type:"path"`
	Ext         []string `help:"Accepted post extensions." env:"POST_EXTENSIONS" default:".md,.mdx"`
	Strict      bool     `help:"Reject gaps in the index sequence." env:"STRICT_INDEX"`
	FirstIndex  int      `help:"First index expected with --strict." env:"FIRST_INDEX" default:"1"`
}

func (f siteFlags) config() postseries.SiteConfig {
	return postseries.SiteConfig{
		Name:              f.Name,
		URL:               f.URL,
		BasePath:          f.BasePath,
		Description:       f.Description,
		Author:            f.Author,
		ContentDir:        f.Content,
		ImagesDir:         f.Images,
		Extensions:        f.Ext,
		RequireContiguous: f.Strict,
		FirstIndex:        f.FirstIndex,
	}
}

type Globals struct {
	Verbose bool   `short:"v" help:"Enable debug logging."`
	EnvFile string `help:"Environment file loaded before flags are resolved." default:".env"`
}

var cli struct {
	Globals

	Build   buildCmd   `cmd:"" help:"Export the site as static files."`
	Serve   serveCmd   `cmd:"" help:"Serve the site from a local preview server."`
	List    listCmd    `cmd:"" help:"Print the posts in reading order."`
	Check   checkCmd   `cmd:"" help:"Validate the posts without writing anything."`
	Init    initCmd    `cmd:"" help:"Create a starter site."`
	Version versionCmd `cmd:"" help:"Print the postseries version."`
}

func main() {
	// .env must be in the environment before kong resolves env-backed flags.
	if err := loadEnvFile(envFileArg(os.Args[1:])); err != nil {
		fmt.Fprintf(os.Stderr, "postseries: %v\n", err)
		os.Exit(1)
	}

	kctx := kong.Parse(&cli,
		kong.Name("postseries"),
		kong.Description("Publish a numbered series of Markdown posts."),
		kong.UsageOnError(),
	)

	logger, err := newLogger(cli.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "postseries: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	kctx.Bind(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	kctx.BindTo(ctx, (*context.Context)(nil))

	if err := kctx.Run(&cli.Globals); err != nil {
		logger.Error("command failed", zap.String("command", kctx.Command()), zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// envFileArg finds --env-file in args without a full parse.
func envFileArg(args []string) string {
	for i, a := range args {
		switch {
		case a == "--env-file" && i+1 < len(args):
			return args[i+1]
		case strings.HasPrefix(a, "--env-file="):
			return strings.TrimPrefix(a, "--env-file=")
		}
	}
	return ".env"
}

// loadEnvFile loads path into the environment. A missing file is fine;
// variables already set win over the file.
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
