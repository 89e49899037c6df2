package calpreview

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"
)

// ToImage copies the buffer into a standard *image.NRGBA. The returned
// image owns its pixels; later render passes do not affect it.
func (p *PixelBuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.Width, p.Height))
	if !p.Empty() {
		copy(img.Pix, p.Pix)
	}
	return img
}

// WritePNG writes the buffer to a PNG file.
func WritePNG(buf *PixelBuffer, path string) error {
	return writeImage(buf, path, func(f *os.File, img image.Image) error {
		return png.Encode(f, img)
	})
}

// WriteTIFF writes the buffer to a deflate-compressed TIFF file.
func WriteTIFF(buf *PixelBuffer, path string) error {
	return writeImage(buf, path, func(f *os.File, img image.Image) error {
		return tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	})
}

// WriteSurface writes the buffer to path, picking the format from the
// file extension (.png, .tif, .tiff).
func WriteSurface(buf *PixelBuffer, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return WritePNG(buf, path)
	case ".tif", ".tiff":
		return WriteTIFF(buf, path)
	default:
		return fmt.Errorf("unsupported output format %q", filepath.Ext(path))
	}
}

func writeImage(buf *PixelBuffer, path string, encode func(*os.File, image.Image) error) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	if err := encode(f, buf.ToImage()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
