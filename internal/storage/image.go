package storage

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// MaxImageDimension bounds the longest side of a stored product image.
const MaxImageDimension = 1280

const jpegQuality = 82

// ProcessImage decodes an uploaded image, downscales it so neither side
// exceeds MaxImageDimension (never upscaling), and re-encodes it as JPEG.
func ProcessImage(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > MaxImageDimension || bounds.Dy() > MaxImageDimension {
		img = imaging.Fit(img, MaxImageDimension, MaxImageDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
