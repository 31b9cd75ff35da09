package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func TestProcessImageDownscalesLargeImages(t *testing.T) {
	out, err := ProcessImage(encodePNG(t, 4000, 2000))
	if err != nil {
		t.Fatalf("ProcessImage: %v", err)
	}
	img, err := imaging.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	b := img.Bounds()
	if b.Dx() > MaxImageDimension || b.Dy() > MaxImageDimension {
		t.Errorf("output %dx%d exceeds max dimension %d", b.Dx(), b.Dy(), MaxImageDimension)
	}
	if b.Dx() != MaxImageDimension {
		t.Errorf("longest side = %d, want %d", b.Dx(), MaxImageDimension)
	}
}

func TestProcessImageKeepsSmallImages(t *testing.T) {
	out, err := ProcessImage(encodePNG(t, 300, 200))
	if err != nil {
		t.Fatalf("ProcessImage: %v", err)
	}
	img, err := imaging.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 300 || b.Dy() != 200 {
		t.Errorf("small image was resized to %dx%d", b.Dx(), b.Dy())
	}
}

func TestProcessImageRejectsGarbage(t *testing.T) {
	if _, err := ProcessImage([]byte("not an image")); err == nil {
		t.Error("expected decode error for non-image input")
	}
}
