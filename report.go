package calpreview

import (
	"math"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Reference gamut primaries in CIE 1931 xy (D65 white point).
var standardGamuts = map[string][3][2]float64{
	"sRGB":     {{0.6400, 0.3300}, {0.3000, 0.6000}, {0.1500, 0.0600}},
	"AdobeRGB": {{0.6400, 0.3300}, {0.2100, 0.7100}, {0.1500, 0.0300}},
	"DCI-P3":   {{0.6800, 0.3200}, {0.2650, 0.6900}, {0.1500, 0.0600}},
}

// DeltaEStats summarizes the perceptual difference between an original
// and a corrected rendering.
type DeltaEStats struct {
	Avg float64 `json:"avg"`
	Max float64 `json:"max"`
}

// PairDeltaE returns the CIEDE2000 color difference of one before/after
// pair of 8-bit sRGB colors.
func PairDeltaE(before, after [3]uint8) float64 {
	return rgbColor(before).DistanceCIEDE2000(rgbColor(after))
}

// DeltaEBetween computes per-pixel CIE76 Lab distances between two
// equal-sized buffers and returns their average and maximum.
func DeltaEBetween(a, b *PixelBuffer) (DeltaEStats, error) {
	if a.Width != b.Width || a.Height != b.Height {
		return DeltaEStats{}, ErrBufferMismatch
	}
	var stats DeltaEStats
	n := a.Width * a.Height
	if n == 0 {
		return stats, nil
	}
	var sum float64
	for i := 0; i < len(a.Pix); i += 4 {
		ca := rgbColor([3]uint8{a.Pix[i], a.Pix[i+1], a.Pix[i+2]})
		cb := rgbColor([3]uint8{b.Pix[i], b.Pix[i+1], b.Pix[i+2]})
		d := ca.DistanceLab(cb)
		sum += d
		if d > stats.Max {
			stats.Max = d
		}
	}
	stats.Avg = sum / float64(n)
	return stats, nil
}

// Chromaticity converts an 8-bit sRGB color to CIE 1931 xy coordinates.
func Chromaticity(r, g, b uint8) (x, y float64) {
	x, y, _ = rgbColor([3]uint8{r, g, b}).Xyy()
	return x, y
}

// DisplayGamutCoverage computes the xy chromaticity triangle spanned by
// the display's R, G, B primaries and returns its area as a percentage of
// each reference gamut (sRGB, AdobeRGB, DCI-P3), rounded to two decimals.
func DisplayGamutCoverage(red, green, blue [3]uint8) map[string]float64 {
	var pts [3][2]float64
	pts[0][0], pts[0][1] = Chromaticity(red[0], red[1], red[2])
	pts[1][0], pts[1][1] = Chromaticity(green[0], green[1], green[2])
	pts[2][0], pts[2][1] = Chromaticity(blue[0], blue[1], blue[2])
	area := triangleArea(pts)

	out := make(map[string]float64, len(standardGamuts))
	for name, prim := range standardGamuts {
		ref := triangleArea(prim)
		var cov float64
		if ref > 0 {
			cov = area / ref * 100
		}
		out[name] = math.Round(cov*100) / 100
	}
	return out
}

// ReportSnapshot is the read-only view handed to the report/export
// consumer. It carries the current parameters and accuracy metrics; the
// consumer renders the document.
type ReportSnapshot struct {
	GeneratedAt time.Time           `json:"generatedAt"`
	SessionID   string              `json:"sessionId"`
	Parameters  TransformParameters `json:"parameters"`
	Pattern     string              `json:"pattern"`
	DeltaE      DeltaEStats         `json:"deltaE"`
	// GammaDeviation is the deviation of the current gamma from the 2.2
	// reference, a quick luminance-linearity indicator.
	GammaDeviation float64            `json:"gammaDeviation"`
	GamutCoverage  map[string]float64 `json:"gamutCoverage,omitempty"`
}

// BuildReport assembles a snapshot from the store's current state and a
// before/after buffer pair.
func BuildReport(store *Store, before, after *PixelBuffer) (ReportSnapshot, error) {
	de, err := DeltaEBetween(before, after)
	if err != nil {
		return ReportSnapshot{}, err
	}
	st := store.Snapshot()
	return ReportSnapshot{
		GeneratedAt:    time.Now().UTC(),
		SessionID:      store.SessionID(),
		Parameters:     st.Params,
		Pattern:        st.Pattern.Kind.String(),
		DeltaE:         de,
		GammaDeviation: math.Round(math.Abs(st.Params.Gamma-2.2)*1000) / 1000,
		GamutCoverage: DisplayGamutCoverage(
			[3]uint8{255, 0, 0}, [3]uint8{0, 255, 0}, [3]uint8{0, 0, 255},
		),
	}, nil
}

func rgbColor(c [3]uint8) colorful.Color {
	return colorful.Color{
		R: float64(c[0]) / 255.0,
		G: float64(c[1]) / 255.0,
		B: float64(c[2]) / 255.0,
	}
}

// triangleArea is the shoelace formula; three primaries always form a
// triangle, so no hull computation is needed.
func triangleArea(p [3][2]float64) float64 {
	return math.Abs(p[0][0]*(p[1][1]-p[2][1])+p[1][0]*(p[2][1]-p[0][1])+p[2][0]*(p[0][1]-p[1][1])) / 2
}
