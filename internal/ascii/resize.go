package ascii

import (
	"fmt"
	"image"
	"math"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// DefaultGlyphAspect squashes the output height because terminal glyphs are
// roughly twice as tall as they are wide.
const DefaultGlyphAspect = 0.55

// Resampler names an image scaling algorithm.
type Resampler string

const (
	NearestNeighbor Resampler = "nearest"
	Bilinear        Resampler = "bilinear"
	CatmullRom      Resampler = "catmullrom"
	Lanczos         Resampler = "lanczos"

	DefaultResampler = CatmullRom
)

// Resamplers lists every supported algorithm, default first.
var Resamplers = []Resampler{CatmullRom, NearestNeighbor, Bilinear, Lanczos}

// ParseResampler maps a name onto a Resampler. The empty string selects the default.
func ParseResampler(name string) (Resampler, error) {
	if name == "" {
		return DefaultResampler, nil
	}
	for _, r := range Resamplers {
		if string(r) == name {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown resampler %q", name)
}

// TargetSize computes the output size for a source of srcW x srcH pixels:
// height = round(targetWidth * srcH/srcW * aspect).
func TargetSize(srcW, srcH, targetWidth int, aspect float64) (int, int, error) {
	if targetWidth <= 0 {
		return 0, 0, fmt.Errorf("%w: got %d", ErrInvalidDimension, targetWidth)
	}
	if srcW <= 0 || srcH <= 0 {
		return 0, 0, fmt.Errorf("%w: source is %dx%d", ErrEmptyBitmap, srcW, srcH)
	}

	h := int(math.Round(float64(targetWidth) * (float64(srcH) / float64(srcW)) * aspect))
	if h <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d resized to width %d has no rows", ErrEmptyBitmap, srcW, srcH, targetWidth)
	}
	return targetWidth, h, nil
}

// Resize scales src to targetWidth columns with the default glyph aspect. A
// *image.Gray source stays gray.
func Resize(src image.Image, targetWidth int, alg Resampler) (image.Image, error) {
	return resizeWithAspect(src, targetWidth, DefaultGlyphAspect, alg)
}

func resizeWithAspect(src image.Image, targetWidth int, aspect float64, alg Resampler) (image.Image, error) {
	b := src.Bounds()
	w, h, err := TargetSize(b.Dx(), b.Dy(), targetWidth, aspect)
	if err != nil {
		return nil, err
	}

	if alg == Lanczos {
		return resize.Resize(uint(w), uint(h), src, resize.Lanczos3), nil
	}

	var scaler draw.Scaler
	switch alg {
	case NearestNeighbor:
		scaler = draw.NearestNeighbor
	case Bilinear:
		scaler = draw.BiLinear
	case CatmullRom, "":
		scaler = draw.CatmullRom
	default:
		return nil, fmt.Errorf("unknown resampler %q", alg)
	}

	var dst draw.Image
	if _, ok := src.(*image.Gray); ok {
		dst = image.NewGray(image.Rect(0, 0, w, h))
	} else {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	scaler.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst, nil
}
