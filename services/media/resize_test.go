package media

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 50 {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 80, A: 255})
		}
	}
	buf := bytes.NewBuffer(nil)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func decodeDims(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode normalized image: %v", err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestNormalizePhotoScalesLongerSideTo800(t *testing.T) {
	out, err := NormalizePhoto(testPNG(t, 2000, 1000), 800, 50)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	w, h := decodeDims(t, out)
	if w != 800 || h != 400 {
		t.Fatalf("expected 800x400, got %dx%d", w, h)
	}
}

func TestNormalizePhotoPreservesAspectForPortrait(t *testing.T) {
	out, err := NormalizePhoto(testPNG(t, 1000, 2000), 800, 50)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	w, h := decodeDims(t, out)
	if w != 400 || h != 800 {
		t.Fatalf("expected 400x800, got %dx%d", w, h)
	}
}

func TestNormalizePhotoDoesNotUpscale(t *testing.T) {
	out, err := NormalizePhoto(testPNG(t, 600, 400), 800, 50)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	w, h := decodeDims(t, out)
	if w != 600 || h != 400 {
		t.Fatalf("expected 600x400 unchanged, got %dx%d", w, h)
	}
}

func TestNormalizePhotoRejectsGarbage(t *testing.T) {
	_, err := NormalizePhoto([]byte("definitely not an image"), 800, 50)
	if !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage, got %v", err)
	}
}
