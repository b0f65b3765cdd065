package postseries

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func postFile(title string, index int) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(fmt.Sprintf("---\ntitle: %s\nsubtitle: All about %s\nindex: %d\ndate: \"2023-0%d-01\"\n---\n# %s\n\nSee [the index](/).\n", title, title, index, index, title))}
}

func seriesFS() fstest.MapFS {
	return fstest.MapFS{
		"01-intro.mdx":   postFile("Intro", 1),
		"02-basics.mdx":  postFile("Basics", 2),
		"03-queries.mdx": postFile("Queries", 3),
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestApp(t *testing.T, cfg SiteConfig, posts fstest.MapFS, opts ...Option) *App {
	t.Helper()
	if cfg.URL == "" {
		cfg.URL = "https://example.com"
	}
	images := fstest.MapFS{"tree.png": {Data: pngBytes(t, 8, 4)}}
	opts = append([]Option{WithContentFS(posts), WithImagesFS(images)}, opts...)
	return New(cfg, opts...)
}
