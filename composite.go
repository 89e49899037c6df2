package calpreview

import (
	"errors"
	"math"
)

// ErrBufferMismatch is returned when the original and corrected buffers
// disagree on dimensions.
var ErrBufferMismatch = errors.New("original and corrected buffer dimensions differ")

// Divider stroke and handle geometry. The divider is two columns wide;
// the drag handle is a square centered on the divider at mid-height.
const (
	dividerWidth = 2
	handleRadius = 6
)

var dividerColor = [4]uint8{0x2F, 0x80, 0xED, 0xFF}

// Compositor blends an original and a corrected buffer along a vertical
// boundary into one renderable surface.
//
// Column rule (a documented compatibility contract): column x shows the
// original iff float64(x) < fraction*width, so the first corrected column
// is ceil(fraction*width). Fraction 0 shows the corrected buffer
// everywhere, fraction 1 the original everywhere.
//
// Boundary-only changes take the cheap path: only the columns between the
// old and new boundary, plus the overlay footprint, are recomposited:
// O(height * changed columns), never O(width * height).
type Compositor struct {
	original  *PixelBuffer
	corrected *PixelBuffer
	surface   *PixelBuffer

	fraction float64
	col      int // first corrected column

	overlay    bool
	overlayLo  int // current overlay footprint [lo, hi)
	overlayHi  int
	hasOverlay bool

	fullRuns    uint64
	partialRuns uint64
}

// CompositorOption adjusts compositor construction.
type CompositorOption func(*Compositor)

// WithOverlay toggles drawing of the divider line and drag handle on the
// surface. The compositing laws hold on the bare surface; the overlay is
// presentation only and is skipped at fractions 0 and 1.
func WithOverlay(enabled bool) CompositorOption {
	return func(c *Compositor) { c.overlay = enabled }
}

// NewCompositor returns a compositor at the default boundary with the
// overlay enabled.
func NewCompositor(opts ...CompositorOption) *Compositor {
	c := &Compositor{
		fraction: DefaultBoundary,
		overlay:  true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CompositorStats counts full and boundary-only compositing passes. The
// render loop's drag contract is asserted against these counters.
type CompositorStats struct {
	FullComposites    uint64
	PartialComposites uint64
}

// Stats returns the pass counters.
func (c *Compositor) Stats() CompositorStats {
	return CompositorStats{FullComposites: c.fullRuns, PartialComposites: c.partialRuns}
}

// Surface returns the composited surface. The buffer is owned by the
// compositor and rewritten in place on subsequent passes.
func (c *Compositor) Surface() *PixelBuffer { return c.surface }

// Boundary returns the current boundary fraction.
func (c *Compositor) Boundary() float64 { return c.fraction }

// BoundaryColumn returns the first corrected column for the current
// boundary, in [0, width].
func (c *Compositor) BoundaryColumn() int { return c.col }

// SetSources replaces both buffers and runs a full composite at the
// current boundary. The buffers must have identical dimensions.
func (c *Compositor) SetSources(original, corrected *PixelBuffer) error {
	if original.Width != corrected.Width || original.Height != corrected.Height {
		return ErrBufferMismatch
	}
	c.original = original
	c.corrected = corrected
	if c.surface == nil || c.surface.Width != original.Width || c.surface.Height != original.Height {
		c.surface = NewPixelBuffer(original.Width, original.Height)
	}
	c.col = boundaryColumn(c.fraction, original.Width)
	c.composite(0, original.Width)
	c.hasOverlay = false
	c.drawOverlay()
	c.fullRuns++
	return nil
}

// SetBoundary moves the divider and recomposites only the affected
// columns. It never re-runs the color transform.
func (c *Compositor) SetBoundary(fraction float64) {
	c.fraction = clampFraction(fraction)
	if c.surface.Empty() {
		return
	}
	w := c.surface.Width
	newCol := boundaryColumn(c.fraction, w)
	if newCol == c.col {
		// Same boundary column: surface and overlay are already correct.
		return
	}

	lo := min(newCol, c.col)
	hi := max(newCol, c.col)
	if c.hasOverlay {
		lo = min(lo, c.overlayLo)
		hi = max(hi, c.overlayHi)
	}
	c.col = newCol
	c.composite(lo, hi)
	c.hasOverlay = false
	c.drawOverlay()
	c.partialRuns++
}

// composite rewrites surface columns [x0, x1) from the source buffers
// according to the column rule.
func (c *Compositor) composite(x0, x1 int) {
	w := c.surface.Width
	x0 = max(x0, 0)
	x1 = min(x1, w)
	if x0 >= x1 {
		return
	}
	// Split the range at the boundary column and copy row segments.
	origEnd := min(x1, c.col)
	corrStart := max(x0, c.col)
	for y := 0; y < c.surface.Height; y++ {
		row := y * w * 4
		if x0 < origEnd {
			copy(c.surface.Pix[row+x0*4:row+origEnd*4], c.original.Pix[row+x0*4:row+origEnd*4])
		}
		if corrStart < x1 {
			copy(c.surface.Pix[row+corrStart*4:row+x1*4], c.corrected.Pix[row+corrStart*4:row+x1*4])
		}
	}
}

// drawOverlay paints the divider and drag handle onto the surface and
// records the covered footprint so the next pass can restore it. Nothing
// is drawn when the boundary sits on either edge: those states show a
// single buffer edge to edge.
func (c *Compositor) drawOverlay() {
	if !c.overlay || c.surface.Empty() {
		return
	}
	w, h := c.surface.Width, c.surface.Height
	if c.col <= 0 || c.col >= w {
		return
	}

	lo := max(c.col-handleRadius, 0)
	hi := min(c.col+handleRadius+1, w)
	c.overlayLo, c.overlayHi, c.hasOverlay = lo, hi, true

	// Divider: two columns straddling the boundary.
	for x := max(c.col-dividerWidth/2, 0); x < min(c.col+dividerWidth/2, w); x++ {
		for y := 0; y < h; y++ {
			i := c.surface.offset(x, y)
			copy(c.surface.Pix[i:i+4], dividerColor[:])
		}
	}

	// Handle: filled square centered on the divider at mid-height.
	cy := h / 2
	for y := max(cy-handleRadius, 0); y < min(cy+handleRadius+1, h); y++ {
		for x := lo; x < hi; x++ {
			i := c.surface.offset(x, y)
			copy(c.surface.Pix[i:i+4], dividerColor[:])
		}
	}
}

// boundaryColumn converts a boundary fraction to the first corrected
// column: ceil(fraction*width) clamped to [0, width].
func boundaryColumn(fraction float64, width int) int {
	col := int(math.Ceil(clampFraction(fraction) * float64(width)))
	if col < 0 {
		col = 0
	}
	if col > width {
		col = width
	}
	return col
}

func clampFraction(f float64) float64 {
	if f < 0 || math.IsNaN(f) {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
