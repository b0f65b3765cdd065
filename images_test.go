package postseries

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodePNG(t *testing.T, path string) image.Rectangle {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img.Bounds()
}

func TestProcessImagePNG(t *testing.T) {
	src := pngBytes(t, 30, 12)

	out, resized, err := processImage(src, "chart.png", 15)
	require.NoError(t, err)
	assert.True(t, resized)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 15, img.Bounds().Dx())
	assert.Equal(t, 6, img.Bounds().Dy())
}

func TestProcessImageJPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 64, 32)), nil))

	out, resized, err := processImage(buf.Bytes(), "photo.JPG", 16)
	require.NoError(t, err)
	assert.True(t, resized)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 16, cfg.Width)
	assert.Equal(t, 8, cfg.Height)
}

func TestProcessImagePassthrough(t *testing.T) {
	src := pngBytes(t, 10, 10)

	out, resized, err := processImage(src, "small.png", 100)
	require.NoError(t, err)
	assert.False(t, resized)
	assert.Equal(t, src, out)

	out, resized, err = processImage(src, "small.png", 0)
	require.NoError(t, err)
	assert.False(t, resized)
	assert.Equal(t, src, out)

	svg := []byte("<svg/>")
	out, resized, err = processImage(svg, "logo.svg", 1)
	require.NoError(t, err)
	assert.False(t, resized)
	assert.Equal(t, svg, out)
}

func TestProcessImageCorrupt(t *testing.T) {
	_, _, err := processImage([]byte("not a png"), "broken.png", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.png")
}
