// Package imaging produces bounded thumbnails from uploaded images.
//
// The contract is fixed-aspect-ratio downscaling: the output fits inside the
// requested bounding box, the aspect ratio is preserved, and images already
// inside the box pass through at their original size (no upscaling). The
// source format (JPEG or PNG) is kept; there is no format conversion.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"

	"golang.org/x/image/draw"
)

// JPEGQuality is the re-encode quality for JPEG thumbnails.
const JPEGQuality = 85

// ErrUnsupportedFormat is returned for anything that is not a JPEG or PNG.
var ErrUnsupportedFormat = errors.New("imaging: unsupported image format (only JPEG and PNG accepted)")

// allowedMIME maps sniffed MIME types to their canonical file extension.
var allowedMIME = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
}

// Thumbnail decodes data, downscales it to fit maxW×maxH preserving aspect
// ratio, and re-encodes it in the source format. The returned extension is
// "jpg" or "png". The format is sniffed from the bytes, never trusted from
// the client.
func Thumbnail(data []byte, maxW, maxH int) ([]byte, string, error) {
	detected := http.DetectContentType(data)
	ext, ok := allowedMIME[detected]
	if !ok {
		return nil, "", fmt.Errorf("%w: got %s", ErrUnsupportedFormat, detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("imaging: decode: %w", err)
	}

	img = fit(img, maxW, maxH)

	var buf bytes.Buffer
	switch ext {
	case "png":
		err = png.Encode(&buf, img)
	default:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality})
	}
	if err != nil {
		return nil, "", fmt.Errorf("imaging: encode %s: %w", ext, err)
	}

	return buf.Bytes(), ext, nil
}

// FitSize returns the dimensions an w×h image takes inside a maxW×maxH box
// without upscaling.
func FitSize(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}

	scaleW := float64(maxW) / float64(w)
	scaleH := float64(maxH) / float64(h)
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
	return newW, newH
}

// fit downscales img to the bounding box with Catmull-Rom interpolation,
// returning it untouched when it already fits.
func fit(img image.Image, maxW, maxH int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	newW, newH := FitSize(w, h, maxW, maxH)
	if newW == w && newH == h {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func init() {
	// jpeg registers itself, but be explicit about both decoders.
	image.RegisterFormat("jpeg", "\xff\xd8", jpeg.Decode, jpeg.DecodeConfig)
	image.RegisterFormat("png", "\x89PNG", png.Decode, png.DecodeConfig)
}
