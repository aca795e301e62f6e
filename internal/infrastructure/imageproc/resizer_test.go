package imageproc

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOf(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestFitJPEGShrinksToBox(t *testing.T) {
	out, err := NewResizer().FitJPEG(pngOf(t, 1600, 600))
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 300, cfg.Height)
}

func TestFitJPEGDoesNotEnlarge(t *testing.T) {
	out, err := NewResizer().FitJPEG(pngOf(t, 320, 200))
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
}

func TestFitJPEGRejectsGarbage(t *testing.T) {
	_, err := NewResizer().FitJPEG(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}
