package calpreview

import (
	"context"
	"image"
	"log/slog"
	"sync"
	"time"
)

// Renderer drives the per-frame pipeline: it samples one consistent store
// snapshot per tick and re-renders only what changed. A parameter or
// pattern change regenerates the source, re-runs the transform and fully
// recomposites; a boundary-only change (an active drag) takes the
// compositor's cheap path and never re-runs the O(width*height)
// transform. Ticks are single-threaded and run to completion; an
// in-flight pass is never cancelled, the next tick simply reads the
// latest state.
type Renderer struct {
	store  *Store
	comp   *Compositor
	width  int
	height int

	source    *PixelBuffer
	corrected *PixelBuffer

	// srcMu guards fields written off the render tick by the source
	// image provider.
	srcMu    sync.Mutex
	srcImage image.Image
	srcDirty bool
	loadErr  error

	scaled *PixelBuffer // srcImage scaled to the current canvas

	primed       bool
	lastParamSeq uint64
	lastSplitSeq uint64

	frames        uint64
	transformRuns uint64

	logger *slog.Logger
}

// RendererOption adjusts renderer construction.
type RendererOption func(*Renderer)

// WithRendererLogger sets the renderer's logger.
func WithRendererLogger(l *slog.Logger) RendererOption {
	return func(r *Renderer) { r.logger = l }
}

// WithRendererOverlay toggles the divider/handle overlay on the surface.
func WithRendererOverlay(enabled bool) RendererOption {
	return func(r *Renderer) { r.comp = NewCompositor(WithOverlay(enabled)) }
}

// NewRenderer returns a renderer targeting a caller-specified canvas
// size. Nothing is rendered until the first Tick.
func NewRenderer(store *Store, width, height int, opts ...RendererOption) *Renderer {
	r := &Renderer{
		store:  store,
		comp:   NewCompositor(),
		width:  width,
		height: height,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Surface returns the current render surface. It is rewritten in place by
// subsequent ticks.
func (r *Renderer) Surface() *PixelBuffer { return r.comp.Surface() }

// Original returns the current uncorrected buffer (pattern or source
// image), Corrected the transformed one. Both are valid after the first
// tick and are replaced, never mutated, on later passes.
func (r *Renderer) Original() *PixelBuffer  { return r.source }
func (r *Renderer) Corrected() *PixelBuffer { return r.corrected }

// SetSource installs a decoded source image; it replaces the synthetic
// pattern until ClearSource. The image is scaled to the canvas on the
// next tick. A successful load clears any pending load error.
func (r *Renderer) SetSource(img image.Image) {
	r.srcMu.Lock()
	r.srcImage = img
	r.srcDirty = true
	r.loadErr = nil
	r.srcMu.Unlock()
}

// ClearSource returns the renderer to synthetic patterns.
func (r *Renderer) ClearSource() {
	r.srcMu.Lock()
	r.srcImage = nil
	r.srcDirty = true
	r.srcMu.Unlock()
}

// SetSourceError records a source load failure. The last successfully
// rendered buffers stay in place; only the error flag is raised for the
// UI layer.
func (r *Renderer) SetSourceError(err error) {
	r.srcMu.Lock()
	r.loadErr = err
	r.srcMu.Unlock()
	r.logger.Warn("source image load failed", "err", err)
}

// SourceErr returns the pending load error, if any.
func (r *Renderer) SourceErr() error {
	r.srcMu.Lock()
	defer r.srcMu.Unlock()
	return r.loadErr
}

// Resize changes the canvas size; buffers are rebuilt on the next tick.
func (r *Renderer) Resize(width, height int) {
	r.srcMu.Lock()
	r.srcDirty = true
	r.srcMu.Unlock()
	r.width = width
	r.height = height
	r.scaled = nil
}

// Tick renders at most one frame and reports whether anything was redrawn.
func (r *Renderer) Tick() bool {
	st := r.store.Snapshot()

	r.srcMu.Lock()
	srcImage := r.srcImage
	srcDirty := r.srcDirty
	r.srcDirty = false
	r.srcMu.Unlock()

	switch {
	case !r.primed || srcDirty || st.ParamSeq != r.lastParamSeq:
		if srcImage != nil {
			if srcDirty || r.scaled == nil {
				r.scaled = FromImage(srcImage, r.width, r.height)
			}
			r.source = r.scaled
		} else {
			r.scaled = nil
			r.source = GeneratePattern(st.Pattern, r.width, r.height)
		}
		r.corrected = Transform(r.source, st.Params)
		r.transformRuns++
		r.comp.fraction = clampFraction(st.Split.BoundaryFraction)
		if err := r.comp.SetSources(r.source, r.corrected); err != nil {
			// Unreachable: both buffers come from the same canvas size.
			r.logger.Error("composite failed", "err", err)
			return false
		}
		r.primed = true
		r.lastParamSeq = st.ParamSeq
		r.lastSplitSeq = st.SplitSeq
	case st.SplitSeq != r.lastSplitSeq:
		r.comp.SetBoundary(st.Split.BoundaryFraction)
		r.lastSplitSeq = st.SplitSeq
	default:
		return false
	}

	r.frames++
	return true
}

// Run drives Tick from a display-refresh ticker until the context is
// cancelled.
func (r *Renderer) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Second / 60
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.Tick()
		}
	}
}

// RenderStats counts rendered frames and full transform passes, plus the
// compositor's own pass counters. The drag performance contract is
// asserted against TransformRuns.
type RenderStats struct {
	Frames        uint64
	TransformRuns uint64
	Compositor    CompositorStats
}

// Stats returns the render counters.
func (r *Renderer) Stats() RenderStats {
	return RenderStats{
		Frames:        r.frames,
		TransformRuns: r.transformRuns,
		Compositor:    r.comp.Stats(),
	}
}
