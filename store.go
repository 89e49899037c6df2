package calpreview

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

var (
	// ErrInvalidGamma is returned when a non-positive gamma is set. The
	// store keeps its previous valid value; rejection happens here so the
	// pipeline itself never divides by zero.
	ErrInvalidGamma = errors.New("gamma must be positive")

	// ErrDragActive is returned when a drag session is requested while
	// another one still owns the boundary.
	ErrDragActive = errors.New("drag session already active")
)

// Store holds the single authoritative copy of the pattern selection,
// transform parameters and split state for a calibration session. It is
// written by two independent callers (local input and the remote command
// adapter) and read by the render loop; every mutation is atomic with
// respect to Snapshot, so a reader never observes a partially applied
// change. Conflicts resolve last-writer-wins by arrival order.
type Store struct {
	mu      sync.Mutex
	params  TransformParameters
	pattern PatternSpec
	split   SplitState

	// paramSeq moves on any change that requires a full transform pass
	// (parameters or pattern); splitSeq moves on boundary-only changes.
	paramSeq uint64
	splitSeq uint64

	sessionID string
	logger    *slog.Logger
}

// StoreOption adjusts store construction.
type StoreOption func(*Store)

// WithStoreLogger sets the logger used for dropped-command warnings.
func WithStoreLogger(l *slog.Logger) StoreOption {
	return func(s *Store) { s.logger = l }
}

// NewStore returns a store at the documented defaults with a fresh
// session identifier.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		params:    DefaultParameters(),
		pattern:   GrayscaleSpec(),
		split:     SplitState{BoundaryFraction: DefaultBoundary},
		sessionID: uuid.NewString(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State is a consistent snapshot of the store, taken once per render
// tick. The sequence counters let the render loop tell a parameter change
// (full transform) from a boundary-only change (cheap composite).
type State struct {
	Params   TransformParameters
	Pattern  PatternSpec
	Split    SplitState
	ParamSeq uint64
	SplitSeq uint64
}

// Snapshot returns the current state under the store lock.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Params:   s.params,
		Pattern:  s.pattern,
		Split:    s.split,
		ParamSeq: s.paramSeq,
		SplitSeq: s.splitSeq,
	}
}

// SessionID identifies this calibration session on report snapshots.
func (s *Store) SessionID() string { return s.sessionID }

// SetPattern selects the synthetic pattern.
func (s *Store) SetPattern(spec PatternSpec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pattern = spec
	s.paramSeq++
}

// SetBrightness sets brightness (percent), clamped to [0, 200].
func (s *Store) SetBrightness(v int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.Brightness = clampInt(v, MinBrightness, MaxBrightness)
	s.paramSeq++
}

// AdjustBrightness applies a relative delta, clamping after application.
// Duplicate deltas are applied as delivered; they are not deduplicated.
func (s *Store) AdjustBrightness(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.Brightness = clampInt(s.params.Brightness+delta, MinBrightness, MaxBrightness)
	s.paramSeq++
}

// SetContrast sets contrast (percent), clamped to [0, 200].
func (s *Store) SetContrast(v int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.Contrast = clampInt(v, MinContrast, MaxContrast)
	s.paramSeq++
}

// AdjustContrast applies a relative delta, clamping after application.
func (s *Store) AdjustContrast(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.Contrast = clampInt(s.params.Contrast+delta, MinContrast, MaxContrast)
	s.paramSeq++
}

// SetGamma sets the gamma exponent, clamped to [1.0, 3.0]. A non-positive
// value is rejected with ErrInvalidGamma and leaves the store unchanged.
func (s *Store) SetGamma(v float64) error {
	if v <= 0 {
		return ErrInvalidGamma
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if v < MinGamma {
		v = MinGamma
	}
	if v > MaxGamma {
		v = MaxGamma
	}
	s.params.Gamma = v
	s.paramSeq++
	return nil
}

// SetTemperature sets the color temperature in Kelvin, clamped to
// [3000, 10000].
func (s *Store) SetTemperature(k int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.ColorTemperatureK = clampInt(k, MinTemperatureK, MaxTemperatureK)
	s.paramSeq++
}

// SetBoundary moves the split boundary, clamped to [0, 1]. This is a
// boundary-only change: it bumps splitSeq, not paramSeq.
func (s *Store) SetBoundary(fraction float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.split.BoundaryFraction = clampFraction(fraction)
	s.splitSeq++
}

// Reset restores the documented defaults: brightness 100, contrast 100,
// gamma 2.2, 6500 K, grayscale pattern, boundary 0.5. Idempotent.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = DefaultParameters()
	s.pattern = GrayscaleSpec()
	s.split.BoundaryFraction = DefaultBoundary
	s.paramSeq++
	s.splitSeq++
}

// BeginDrag starts a boundary drag session. Only one session may own the
// boundary at a time; a second caller gets ErrDragActive until the first
// session ends.
func (s *Store) BeginDrag() (*DragSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.split.Dragging {
		return nil, ErrDragActive
	}
	s.split.Dragging = true
	s.splitSeq++
	return &DragSession{store: s}, nil
}

// DragSession owns the split boundary for the duration of one pointer or
// touch drag. End releases ownership exactly once and is safe to call on
// any exit path, including terminations outside the compositing region.
type DragSession struct {
	store *Store
	ended atomic.Bool
	once  sync.Once
}

// Move updates the boundary fraction. Calls after End are ignored.
func (d *DragSession) Move(fraction float64) {
	if d.ended.Load() {
		return
	}
	d.store.SetBoundary(fraction)
}

// End releases the drag. Subsequent calls are no-ops.
func (d *DragSession) End() {
	d.once.Do(func() {
		d.ended.Store(true)
		d.store.mu.Lock()
		d.store.split.Dragging = false
		d.store.splitSeq++
		d.store.mu.Unlock()
	})
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
