// Package calpreview implements the interactive color-correction preview
// engine behind a display-calibration dashboard for head-mounted displays.
//
// It renders synthetic calibration targets (grayscale ramp, color-checker
// chart, checkerboard), runs a deterministic four-stage per-pixel transform
// (brightness, quadratic contrast, gamma, color-temperature tint) and
// composites an original/corrected split view along a draggable boundary.
// Boundary drags recomposite only the affected columns; the full transform
// runs only when the parameters themselves change.
//
// The engine is headless: it produces RGBA pixel buffers for a caller-owned
// raster surface and consumes already-decoded source images. Transport,
// persistence and document export live outside this package.
package calpreview
