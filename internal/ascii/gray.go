package ascii

import (
	"image"
	"image/color"
)

// Luma returns the perceptual luminance of an 8-bit RGB sample using the
// ITU-R 601-2 weights in 16.16 fixed point, rounded to nearest.
func Luma(r, g, b uint8) uint8 {
	y := (19595*uint32(r) + 38470*uint32(g) + 7471*uint32(b) + 1<<15) >> 16
	return uint8(y)
}

// ToGrayscale reduces img to one luminance byte per pixel. The result always
// starts at the origin. Alpha is ignored: colors are un-premultiplied before
// weighting. A *image.Gray input is copied unchanged.
func ToGrayscale(img image.Image) *image.Gray {
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))

	if src, ok := img.(*image.Gray); ok {
		for y := 0; y < b.Dy(); y++ {
			srcRow := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+b.Dx()], srcRow[:b.Dx()])
		}
		return dst
	}

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			dst.Pix[y*dst.Stride+x] = Luma(c.R, c.G, c.B)
		}
	}
	return dst
}
