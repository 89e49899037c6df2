package calpreview

// PixelBuffer stores a row-major RGBA image with 8-bit samples.
// Invariant: len(Pix) == Width*Height*4. The transform pipeline never
// touches the alpha channel.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewPixelBuffer allocates a zeroed buffer. Non-positive dimensions yield
// an empty (0x0) buffer.
func NewPixelBuffer(width, height int) *PixelBuffer {
	if width <= 0 || height <= 0 {
		return &PixelBuffer{}
	}
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
}

// Clone returns a deep copy. Original and corrected buffers must never
// alias, so every pipeline output starts from a fresh allocation.
func (p *PixelBuffer) Clone() *PixelBuffer {
	out := &PixelBuffer{Width: p.Width, Height: p.Height}
	if len(p.Pix) > 0 {
		out.Pix = make([]uint8, len(p.Pix))
		copy(out.Pix, p.Pix)
	}
	return out
}

// Empty reports whether the buffer holds no pixels.
func (p *PixelBuffer) Empty() bool {
	return p == nil || p.Width <= 0 || p.Height <= 0 || len(p.Pix) == 0
}

// offset returns the index of the R sample of pixel (x, y).
func (p *PixelBuffer) offset(x, y int) int {
	return (y*p.Width + x) * 4
}

// SetRGBA writes one pixel.
func (p *PixelBuffer) SetRGBA(x, y int, r, g, b, a uint8) {
	i := p.offset(x, y)
	p.Pix[i] = r
	p.Pix[i+1] = g
	p.Pix[i+2] = b
	p.Pix[i+3] = a
}

// RGBA reads one pixel.
func (p *PixelBuffer) RGBA(x, y int) (r, g, b, a uint8) {
	i := p.offset(x, y)
	return p.Pix[i], p.Pix[i+1], p.Pix[i+2], p.Pix[i+3]
}

// TransformParameters is an immutable snapshot of the correction settings
// consumed by one render pass. Brightness and contrast are percentages.
type TransformParameters struct {
	Brightness        int     `json:"brightness"`        // 0-200, default 100
	Contrast          int     `json:"contrast"`          // 0-200, default 100
	Gamma             float64 `json:"gamma"`             // 1.0-3.0, default 2.2
	ColorTemperatureK int     `json:"colorTemperatureK"` // 3000-10000, default 6500 (neutral)
}

// DefaultParameters returns the documented defaults.
func DefaultParameters() TransformParameters {
	return TransformParameters{
		Brightness:        DefaultBrightness,
		Contrast:          DefaultContrast,
		Gamma:             DefaultGamma,
		ColorTemperatureK: DefaultTemperatureK,
	}
}

// Pattern identifies a synthetic calibration target.
type Pattern int

const (
	PatternGrayscale Pattern = iota
	PatternColorChecker
	PatternCheckerboard
)

// String returns the wire/CLI identifier of the pattern.
func (p Pattern) String() string {
	switch p {
	case PatternGrayscale:
		return "grayscale"
	case PatternColorChecker:
		return "colorchecker"
	case PatternCheckerboard:
		return "checkerboard"
	default:
		return "unknown"
	}
}

// PatternSpec selects a pattern and its shape parameters.
type PatternSpec struct {
	Kind Pattern
	// Steps is the number of grayscale bands. Zero means DefaultGraySteps.
	Steps int
	// CellSize is the checkerboard cell edge length. Zero means
	// DefaultCellSize.
	CellSize int
}

// GrayscaleSpec returns the default grayscale ramp spec.
func GrayscaleSpec() PatternSpec {
	return PatternSpec{Kind: PatternGrayscale, Steps: DefaultGraySteps}
}

// ColorCheckerSpec returns the 24-swatch chart spec.
func ColorCheckerSpec() PatternSpec {
	return PatternSpec{Kind: PatternColorChecker}
}

// CheckerboardSpec returns the default checkerboard spec.
func CheckerboardSpec() PatternSpec {
	return PatternSpec{Kind: PatternCheckerboard, CellSize: DefaultCellSize}
}

// SplitState describes the draggable original/corrected boundary.
type SplitState struct {
	// BoundaryFraction is the horizontal position of the divider in [0,1].
	// Columns left of BoundaryFraction*width show the original.
	BoundaryFraction float64
	// Dragging is set while a drag session owns the boundary.
	Dragging bool
}
