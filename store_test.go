package calpreview

import (
	"errors"
	"sync"
	"testing"
)

func TestStoreDefaults(t *testing.T) {
	s := NewStore()
	st := s.Snapshot()
	if st.Params != DefaultParameters() {
		t.Errorf("params = %+v, want defaults", st.Params)
	}
	if st.Pattern.Kind != PatternGrayscale {
		t.Errorf("pattern = %v, want grayscale", st.Pattern.Kind)
	}
	if st.Split.BoundaryFraction != DefaultBoundary || st.Split.Dragging {
		t.Errorf("split = %+v, want boundary 0.5, not dragging", st.Split)
	}
	if s.SessionID() == "" {
		t.Error("empty session id")
	}
}

func TestStoreClamping(t *testing.T) {
	s := NewStore()

	s.SetBrightness(500)
	if got := s.Snapshot().Params.Brightness; got != MaxBrightness {
		t.Errorf("brightness = %d, want %d", got, MaxBrightness)
	}
	s.AdjustBrightness(-1000)
	if got := s.Snapshot().Params.Brightness; got != MinBrightness {
		t.Errorf("brightness = %d, want %d", got, MinBrightness)
	}

	s.SetContrast(-5)
	if got := s.Snapshot().Params.Contrast; got != MinContrast {
		t.Errorf("contrast = %d, want %d", got, MinContrast)
	}
	s.AdjustContrast(9999)
	if got := s.Snapshot().Params.Contrast; got != MaxContrast {
		t.Errorf("contrast = %d, want %d", got, MaxContrast)
	}

	s.SetTemperature(100)
	if got := s.Snapshot().Params.ColorTemperatureK; got != MinTemperatureK {
		t.Errorf("temperature = %d, want %d", got, MinTemperatureK)
	}
	s.SetTemperature(99999)
	if got := s.Snapshot().Params.ColorTemperatureK; got != MaxTemperatureK {
		t.Errorf("temperature = %d, want %d", got, MaxTemperatureK)
	}

	if err := s.SetGamma(0.5); err != nil {
		t.Errorf("SetGamma(0.5): %v, want clamp to %v", err, MinGamma)
	}
	if got := s.Snapshot().Params.Gamma; got != MinGamma {
		t.Errorf("gamma = %v, want %v", got, MinGamma)
	}
	if err := s.SetGamma(10); err != nil {
		t.Errorf("SetGamma(10): %v", err)
	}
	if got := s.Snapshot().Params.Gamma; got != MaxGamma {
		t.Errorf("gamma = %v, want %v", got, MaxGamma)
	}

	s.SetBoundary(2)
	if got := s.Snapshot().Split.BoundaryFraction; got != 1 {
		t.Errorf("boundary = %v, want 1", got)
	}
}

func TestStoreGammaRejected(t *testing.T) {
	s := NewStore()
	if err := s.SetGamma(1.8); err != nil {
		t.Fatalf("SetGamma(1.8): %v", err)
	}
	for _, v := range []float64{0, -1, -0.001} {
		if err := s.SetGamma(v); !errors.Is(err, ErrInvalidGamma) {
			t.Errorf("SetGamma(%v) = %v, want ErrInvalidGamma", v, err)
		}
		// The previous valid value survives the rejection.
		if got := s.Snapshot().Params.Gamma; got != 1.8 {
			t.Errorf("gamma after rejected set = %v, want 1.8", got)
		}
	}
}

func TestStoreResetIdempotent(t *testing.T) {
	s := NewStore()
	s.SetBrightness(180)
	s.SetContrast(40)
	if err := s.SetGamma(2.8); err != nil {
		t.Fatal(err)
	}
	s.SetTemperature(9000)
	s.SetPattern(CheckerboardSpec())
	s.SetBoundary(0.9)

	for i := 0; i < 3; i++ {
		s.Reset()
		st := s.Snapshot()
		if st.Params != DefaultParameters() {
			t.Fatalf("reset %d: params = %+v", i, st.Params)
		}
		if st.Pattern.Kind != PatternGrayscale {
			t.Fatalf("reset %d: pattern = %v", i, st.Pattern.Kind)
		}
		if st.Split.BoundaryFraction != DefaultBoundary {
			t.Fatalf("reset %d: boundary = %v", i, st.Split.BoundaryFraction)
		}
	}
}

// TestLastWriterWins: a remote delta followed by a local absolute set
// leaves the store at the local value; arrival order decides, nothing is
// merged.
func TestLastWriterWins(t *testing.T) {
	s := NewStore()
	delta := -5
	if !s.Apply(Command{Type: CommandAdjustBrightness, Value: &delta}) {
		t.Fatal("remote adjust rejected")
	}
	s.SetBrightness(100)
	if got := s.Snapshot().Params.Brightness; got != 100 {
		t.Errorf("brightness = %d, want 100", got)
	}
}

func TestStoreSeqCounters(t *testing.T) {
	s := NewStore()
	base := s.Snapshot()

	s.SetBrightness(120)
	st := s.Snapshot()
	if st.ParamSeq == base.ParamSeq {
		t.Error("SetBrightness did not move paramSeq")
	}
	if st.SplitSeq != base.SplitSeq {
		t.Error("SetBrightness moved splitSeq")
	}

	s.SetBoundary(0.7)
	st2 := s.Snapshot()
	if st2.SplitSeq == st.SplitSeq {
		t.Error("SetBoundary did not move splitSeq")
	}
	if st2.ParamSeq != st.ParamSeq {
		t.Error("SetBoundary moved paramSeq")
	}
}

func TestDragSingleOwnership(t *testing.T) {
	s := NewStore()
	d, err := s.BeginDrag()
	if err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	if !s.Snapshot().Split.Dragging {
		t.Error("dragging flag not set")
	}
	if _, err := s.BeginDrag(); !errors.Is(err, ErrDragActive) {
		t.Errorf("second BeginDrag = %v, want ErrDragActive", err)
	}

	d.Move(0.25)
	if got := s.Snapshot().Split.BoundaryFraction; got != 0.25 {
		t.Errorf("boundary = %v, want 0.25", got)
	}

	d.End()
	if s.Snapshot().Split.Dragging {
		t.Error("dragging flag still set after End")
	}
	// End is exactly-once; a second End (e.g. pointer-up outside the
	// widget racing a cleanup path) must not disturb a new session.
	d2, err := s.BeginDrag()
	if err != nil {
		t.Fatalf("BeginDrag after End: %v", err)
	}
	d.End()
	if !s.Snapshot().Split.Dragging {
		t.Error("stale End released the new session's drag")
	}
	// Moves on an ended session are ignored.
	d.Move(0.99)
	if got := s.Snapshot().Split.BoundaryFraction; got != 0.25 {
		t.Errorf("stale Move changed boundary to %v", got)
	}
	d2.End()
}

// TestStoreConcurrentMutation drives local and remote writers in
// parallel; every snapshot must be internally consistent and in range.
func TestStoreConcurrentMutation(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			s.AdjustBrightness(1)
			s.AdjustContrast(-1)
		}
	}()
	go func() {
		defer wg.Done()
		delta := 2
		for i := 0; i < 200; i++ {
			s.Apply(Command{Type: CommandAdjustBrightness, Value: &delta})
			if i%50 == 0 {
				s.Apply(Command{Type: CommandReset})
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			st := s.Snapshot()
			if st.Params.Brightness < MinBrightness || st.Params.Brightness > MaxBrightness {
				t.Errorf("brightness out of range: %d", st.Params.Brightness)
				return
			}
			if st.Params.Gamma < MinGamma || st.Params.Gamma > MaxGamma {
				t.Errorf("gamma out of range: %v", st.Params.Gamma)
				return
			}
		}
	}()
	wg.Wait()
}
