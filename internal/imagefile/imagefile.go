// Package imagefile decodes the bitmap formats the converter accepts.
package imagefile

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrUnsupported is returned for files whose extension is not a known image type.
var ErrUnsupported = errors.New("unsupported image format")

// SupportedExtensions lists the lower-case file extensions Load accepts.
var SupportedExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp"}

// Image is a decoded bitmap together with the format name reported by the decoder.
type Image struct {
	image.Image
	Format string
}

// Width returns the bitmap width in pixels.
func (i Image) Width() int { return i.Bounds().Dx() }

// Height returns the bitmap height in pixels.
func (i Image) Height() int { return i.Bounds().Dy() }

// IsSupported reports whether path has one of SupportedExtensions.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Load opens and decodes the image at path.
func Load(path string) (Image, error) {
	if !IsSupported(path) {
		return Image{}, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return Image{}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads any registered image format from r. A bitmap with no pixels
// is rejected.
func Decode(r io.Reader) (Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return Image{}, fmt.Errorf("decode image: %w", err)
	}
	if img.Bounds().Empty() {
		return Image{}, fmt.Errorf("decode image: %s has no pixels", format)
	}
	return Image{Image: img, Format: format}, nil
}
