package imageproc

import (
	"bytes"
	"fmt"
	"image"
	// Registered decoders for the formats accepted on upload.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
)

const (
	MaxWidth    = 800
	MaxHeight   = 450
	JPEGQuality = 80
)

type Resizer struct {
	maxWidth  int
	maxHeight int
	quality   int
}

func NewResizer() *Resizer {
	return &Resizer{maxWidth: MaxWidth, maxHeight: MaxHeight, quality: JPEGQuality}
}

// FitJPEG decodes any registered format, shrinks it to fit the storefront
// box keeping aspect ratio, and re-encodes it as JPEG. Smaller images are
// not enlarged.
func (r *Resizer) FitJPEG(src io.Reader) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	b := img.Bounds()
	if b.Dx() > r.maxWidth || b.Dy() > r.maxHeight {
		img = imaging.Fit(img, r.maxWidth, r.maxHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(r.quality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
