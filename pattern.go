package calpreview

import (
	"errors"
	"math"
)

// ErrUnknownPattern is returned for a pattern identifier outside the
// supported set.
var ErrUnknownPattern = errors.New("unknown pattern")

// colorCheckerSwatches is the reference table for the 24-swatch chart,
// laid out row-major in a 6x4 grid. The order and values are a stable
// compatibility contract: exported reports compare cell-by-cell across
// runs, so the table is never recomputed.
var colorCheckerSwatches = [24][3]uint8{
	{115, 82, 68},   // dark skin
	{194, 150, 130}, // light skin
	{98, 122, 157},  // blue sky
	{87, 108, 67},   // foliage
	{133, 128, 177}, // blue flower
	{103, 189, 170}, // bluish green
	{214, 126, 44},  // orange
	{80, 91, 166},   // purplish blue
	{193, 90, 99},   // moderate red
	{94, 60, 108},   // purple
	{157, 188, 64},  // yellow green
	{224, 163, 46},  // orange yellow
	{56, 61, 150},   // blue
	{70, 148, 73},   // green
	{175, 54, 60},   // red
	{231, 199, 31},  // yellow
	{187, 86, 149},  // magenta
	{8, 133, 161},   // cyan
	{243, 243, 242}, // white
	{200, 200, 200}, // neutral 8
	{160, 160, 160}, // neutral 6.5
	{122, 122, 121}, // neutral 5
	{85, 85, 85},    // neutral 3.5
	{52, 52, 52},    // black
}

// ColorCheckerSwatch returns the reference color of swatch i (0-23) in
// row-major chart order.
func ColorCheckerSwatch(i int) (r, g, b uint8) {
	s := colorCheckerSwatches[i]
	return s[0], s[1], s[2]
}

// ParsePattern maps a pattern identifier (remote patternId or CLI flag)
// to a default spec for that pattern.
func ParsePattern(id string) (PatternSpec, error) {
	switch id {
	case "grayscale", "gray":
		return GrayscaleSpec(), nil
	case "colorchecker", "color-checker":
		return ColorCheckerSpec(), nil
	case "checkerboard":
		return CheckerboardSpec(), nil
	default:
		return PatternSpec{}, ErrUnknownPattern
	}
}

// GeneratePattern renders a synthetic calibration target. It is pure and
// deterministic: identical inputs always produce a byte-identical buffer.
// A zero-sized canvas yields an empty buffer.
func GeneratePattern(spec PatternSpec, width, height int) *PixelBuffer {
	buf := NewPixelBuffer(width, height)
	if buf.Empty() {
		return buf
	}
	switch spec.Kind {
	case PatternColorChecker:
		fillColorChecker(buf)
	case PatternCheckerboard:
		cell := spec.CellSize
		if cell <= 0 {
			cell = DefaultCellSize
		}
		fillCheckerboard(buf, cell)
	default:
		steps := spec.Steps
		if steps <= 1 {
			steps = DefaultGraySteps
		}
		fillGrayscale(buf, steps)
	}
	return buf
}

// fillGrayscale partitions the width into steps equal vertical bands;
// band i is filled with gray level round(i*255/(steps-1)). When steps
// exceeds the width the band mapping degrades to a smooth ramp,
// round(x*(steps-1)/(width-1)), so the contract still holds: leftmost
// column exactly black, rightmost exactly white, levels monotonically
// non-decreasing left to right.
func fillGrayscale(buf *PixelBuffer, steps int) {
	w, h := buf.Width, buf.Height
	levels := make([]uint8, w)
	for x := 0; x < w; x++ {
		var band int
		switch {
		case steps <= w:
			band = x * steps / w
		case w > 1:
			band = int(math.Round(float64(x) * float64(steps-1) / float64(w-1)))
		}
		levels[x] = uint8(math.Round(float64(band) * 255.0 / float64(steps-1)))
	}
	for y := 0; y < h; y++ {
		row := y * w * 4
		for x := 0; x < w; x++ {
			i := row + x*4
			v := levels[x]
			buf.Pix[i] = v
			buf.Pix[i+1] = v
			buf.Pix[i+2] = v
			buf.Pix[i+3] = 0xFF
		}
	}
}

// fillColorChecker lays the 24 reference swatches out in a 6x4 grid,
// row-major, each cell a single solid fill. Rounding remainder is
// absorbed into the last column and row.
func fillColorChecker(buf *PixelBuffer) {
	w, h := buf.Width, buf.Height
	cellW := w / checkerCols
	cellH := h / checkerRows
	if cellW < 1 {
		cellW = 1
	}
	if cellH < 1 {
		cellH = 1
	}
	for y := 0; y < h; y++ {
		row := y / cellH
		if row >= checkerRows {
			row = checkerRows - 1
		}
		base := y * w * 4
		for x := 0; x < w; x++ {
			col := x / cellW
			if col >= checkerCols {
				col = checkerCols - 1
			}
			s := colorCheckerSwatches[row*checkerCols+col]
			i := base + x*4
			buf.Pix[i] = s[0]
			buf.Pix[i+1] = s[1]
			buf.Pix[i+2] = s[2]
			buf.Pix[i+3] = 0xFF
		}
	}
}

// fillCheckerboard draws square cells of the given edge length; the cell
// at (row, col) is white when (row+col) is even, black otherwise. Used to
// evaluate geometric response rather than color response.
func fillCheckerboard(buf *PixelBuffer, cell int) {
	w, h := buf.Width, buf.Height
	for y := 0; y < h; y++ {
		row := y / cell
		base := y * w * 4
		for x := 0; x < w; x++ {
			var v uint8
			if (row+x/cell)%2 == 0 {
				v = 0xFF
			}
			i := base + x*4
			buf.Pix[i] = v
			buf.Pix[i+1] = v
			buf.Pix[i+2] = v
			buf.Pix[i+3] = 0xFF
		}
	}
}
