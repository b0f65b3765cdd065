package postseries

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

const jpegQuality = 85

// processImage downscales JPEG and PNG images wider than maxWidth, keeping
// their format. Other files, and images already narrow enough, come back
// unchanged with resized=false.
func processImage(src []byte, name string, maxWidth int) (out []byte, resized bool, err error) {
	ext := strings.ToLower(path.Ext(name))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return src, false, nil
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(src))
	if err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", name, err)
	}
	if maxWidth <= 0 || cfg.Width <= maxWidth {
		return src, false, nil
	}

	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", name, err)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	newH := h * maxWidth / w
	if newH < 1 {
		newH = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if ext == ".png" {
		err = png.Encode(&buf, dst)
	} else {
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return nil, false, fmt.Errorf("encode %s: %w", name, err)
	}
	return buf.Bytes(), true, nil
}

// exportImages copies every file of the images filesystem below dst. A
// missing images directory is not an error.
func (a *App) exportImages(ctx context.Context, dst string) (int, error) {
	count := 0
	err := fs.WalkDir(a.imagesFS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == "." && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		src, err := fs.ReadFile(a.imagesFS, p)
		if err != nil {
			return err
		}
		out, resized, err := processImage(src, p, a.Config.MaxImageWidth)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(target, out, 0o644); err != nil {
			return err
		}
		if resized {
			a.log.Debug("image downscaled", zap.String("file", p), zap.Int("max_width", a.Config.MaxImageWidth))
		}
		count++
		return nil
	})
	if err != nil {
		return count, fmt.Errorf("export images: %w", err)
	}
	return count, nil
}
