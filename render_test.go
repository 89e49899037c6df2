package calpreview

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestRendererFirstTick(t *testing.T) {
	s := NewStore()
	r := NewRenderer(s, 320, 200, WithRendererOverlay(false))
	if !r.Tick() {
		t.Fatal("first tick rendered nothing")
	}
	surf := r.Surface()
	if surf.Width != 320 || surf.Height != 200 {
		t.Fatalf("surface %dx%d, want 320x200", surf.Width, surf.Height)
	}
	if r.Tick() {
		t.Error("second tick redrew with no state change")
	}
}

func TestRendererParamChangeRunsTransform(t *testing.T) {
	s := NewStore()
	r := NewRenderer(s, 160, 90, WithRendererOverlay(false))
	r.Tick()
	before := r.Stats()

	s.SetBrightness(150)
	if !r.Tick() {
		t.Fatal("tick after parameter change rendered nothing")
	}
	after := r.Stats()
	if after.TransformRuns != before.TransformRuns+1 {
		t.Errorf("transform runs = %d, want %d", after.TransformRuns, before.TransformRuns+1)
	}
}

// TestDragDoesNotRunTransform is the structural performance contract:
// moving only the boundary must not invoke the O(width*height) transform,
// only the compositor's cheap path.
func TestDragDoesNotRunTransform(t *testing.T) {
	s := NewStore()
	r := NewRenderer(s, 640, 360, WithRendererOverlay(false))
	r.Tick()
	before := r.Stats()

	d, err := s.BeginDrag()
	if err != nil {
		t.Fatal(err)
	}
	for _, frac := range []float64{0.52, 0.54, 0.6, 0.41, 0.3} {
		d.Move(frac)
		if !r.Tick() {
			t.Fatalf("tick during drag to %v rendered nothing", frac)
		}
	}
	d.End()
	r.Tick()

	after := r.Stats()
	if after.TransformRuns != before.TransformRuns {
		t.Errorf("drag ran the transform %d times", after.TransformRuns-before.TransformRuns)
	}
	if after.Compositor.FullComposites != before.Compositor.FullComposites {
		t.Errorf("drag ran %d full composites",
			after.Compositor.FullComposites-before.Compositor.FullComposites)
	}
	if after.Compositor.PartialComposites == before.Compositor.PartialComposites {
		t.Error("drag did not use the partial composite path")
	}
}

func TestRendererDragThenParamChange(t *testing.T) {
	s := NewStore()
	r := NewRenderer(s, 200, 100, WithRendererOverlay(false))
	r.Tick()

	s.SetBoundary(0.25)
	r.Tick()
	if got := r.comp.BoundaryColumn(); got != 50 {
		t.Errorf("boundary column = %d, want 50", got)
	}

	// A parameter change after a drag recomposites at the dragged
	// boundary, not the default one.
	s.SetContrast(140)
	r.Tick()
	if got := r.comp.BoundaryColumn(); got != 50 {
		t.Errorf("boundary column after param change = %d, want 50", got)
	}
	want := Transform(r.Original(), s.Snapshot().Params)
	x := 60 // right of the boundary: corrected side
	wr, wg, wb, _ := want.RGBA(x, 10)
	gr, gg, gb, _ := r.Surface().RGBA(x, 10)
	if wr != gr || wg != gg || wb != gb {
		t.Errorf("corrected side = (%d,%d,%d), want (%d,%d,%d)", gr, gg, gb, wr, wg, wb)
	}
}

func TestRendererSourceImage(t *testing.T) {
	s := NewStore()
	r := NewRenderer(s, 64, 48, WithRendererOverlay(false))
	r.Tick()

	img := image.NewNRGBA(image.Rect(0, 0, 64, 48))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	r.SetSource(img)
	if !r.Tick() {
		t.Fatal("tick after SetSource rendered nothing")
	}
	if gr, _, _, _ := r.Original().RGBA(10, 10); gr != 0x80 {
		t.Errorf("original R = %d, want 128 (source image)", gr)
	}

	r.ClearSource()
	r.Tick()
	if gr, _, _, _ := r.Original().RGBA(0, 0); gr != 0 {
		t.Errorf("original R = %d, want 0 (grayscale pattern)", gr)
	}
}

func TestRendererSourceScaled(t *testing.T) {
	s := NewStore()
	r := NewRenderer(s, 50, 40, WithRendererOverlay(false))
	img := image.NewNRGBA(image.Rect(0, 0, 200, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 10, B: 10, A: 255})
		}
	}
	r.SetSource(img)
	r.Tick()
	orig := r.Original()
	if orig.Width != 50 || orig.Height != 40 {
		t.Fatalf("original %dx%d, want canvas 50x40", orig.Width, orig.Height)
	}
}

func TestRendererSourceErrorKeepsSurface(t *testing.T) {
	s := NewStore()
	r := NewRenderer(s, 100, 60, WithRendererOverlay(false))
	r.Tick()
	before := append([]uint8(nil), r.Surface().Pix...)

	loadErr := errors.New("image decode failed")
	r.SetSourceError(loadErr)
	r.Tick()
	if !bytes.Equal(before, r.Surface().Pix) {
		t.Error("load failure disturbed the last rendered surface")
	}
	if !errors.Is(r.SourceErr(), loadErr) {
		t.Errorf("SourceErr = %v, want the load error", r.SourceErr())
	}

	// The next successful source load clears the flag.
	r.SetSource(image.NewNRGBA(image.Rect(0, 0, 100, 60)))
	r.Tick()
	if r.SourceErr() != nil {
		t.Errorf("SourceErr = %v after successful load, want nil", r.SourceErr())
	}
}

func TestRendererResize(t *testing.T) {
	s := NewStore()
	r := NewRenderer(s, 100, 60, WithRendererOverlay(false))
	r.Tick()

	r.Resize(200, 120)
	if !r.Tick() {
		t.Fatal("tick after resize rendered nothing")
	}
	surf := r.Surface()
	if surf.Width != 200 || surf.Height != 120 {
		t.Fatalf("surface %dx%d, want 200x120", surf.Width, surf.Height)
	}
}

func TestRendererRemoteCommandsEndToEnd(t *testing.T) {
	s := NewStore()
	r := NewRenderer(s, 128, 64, WithRendererOverlay(false))
	r.Tick()
	before := r.Stats()

	delta := 30
	s.Apply(Command{Type: CommandAdjustBrightness, Value: &delta})
	r.Tick()
	if got := r.Stats().TransformRuns; got != before.TransformRuns+1 {
		t.Errorf("transform runs = %d, want %d", got, before.TransformRuns+1)
	}
	want := Transform(r.Original(), s.Snapshot().Params)
	if !bytes.Equal(r.Corrected().Pix, want.Pix) {
		t.Error("corrected buffer does not reflect the remote adjustment")
	}
}
