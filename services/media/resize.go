package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"

	// Register decoders for the formats a phone camera roll produces.
	_ "image/gif"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ErrInvalidImage marks a payload that could not be decoded. Encode/decode
// failures are terminal; they are never retried.
var ErrInvalidImage = errors.New("invalid or unsupported image")

// NormalizePhoto decodes data, scales it so neither dimension exceeds
// maxDim (preserving aspect ratio, never upscaling) and re-encodes it as
// JPEG at the given quality.
func NormalizePhoto(data []byte, maxDim, quality int) ([]byte, error) {
	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	resized := resizeToFit(decoded, maxDim, maxDim)

	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return buf.Bytes(), nil
}

// resizeToFit scales src down to fit within maxWidth x maxHeight using the
// smaller of the two axis scale factors. Images already within bounds are
// returned unchanged.
func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}
