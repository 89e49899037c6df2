package calpreview

import (
	"image"

	"github.com/nfnt/resize"
)

// FromImage converts a decoded source image to a PixelBuffer, scaling to
// the requested canvas size with Lanczos3 when the dimensions differ.
// Decoding is the source provider's job; this package never touches
// encoded bytes. A non-positive canvas yields an empty buffer.
func FromImage(img image.Image, width, height int) *PixelBuffer {
	if width <= 0 || height <= 0 || img == nil {
		return &PixelBuffer{}
	}
	b := img.Bounds()
	if b.Dx() != width || b.Dy() != height {
		img = resize.Resize(uint(width), uint(height), img, resize.Lanczos3)
		b = img.Bounds()
	}
	out := NewPixelBuffer(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cr, cg, cb, ca := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := out.offset(x, y)
			out.Pix[i] = uint8(cr >> 8)
			out.Pix[i+1] = uint8(cg >> 8)
			out.Pix[i+2] = uint8(cb >> 8)
			out.Pix[i+3] = uint8(ca >> 8)
		}
	}
	return out
}
