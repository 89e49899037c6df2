package calpreview

// Parameter defaults. Reset restores exactly these values.
const (
	DefaultBrightness   = 100
	DefaultContrast     = 100
	DefaultGamma        = 2.2
	DefaultTemperatureK = 6500
	DefaultBoundary     = 0.5
)

// Parameter bounds. Out-of-range inputs are clamped; gamma <= 0 is the
// one rejected value (see Store.SetGamma).
const (
	MinBrightness   = 0
	MaxBrightness   = 200
	MinContrast     = 0
	MaxContrast     = 200
	MinGamma        = 1.0
	MaxGamma        = 3.0
	MinTemperatureK = 3000
	MaxTemperatureK = 10000
)

// Pattern geometry defaults.
const (
	DefaultGraySteps = 256
	DefaultCellSize  = 40

	checkerCols = 6
	checkerRows = 4
)

// tintPerThousandK is the per-channel offset applied for every 1000 K of
// deviation from the 6500 K neutral point (added to R, subtracted from B).
const tintPerThousandK = 10.0
