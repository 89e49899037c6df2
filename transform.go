package calpreview

import "math"

// Transform applies the four-stage correction chain to every pixel and
// returns a freshly allocated buffer; src is never modified and never
// aliased by the result. Alpha passes through unchanged.
//
// Stage order is a compatibility contract:
//
//  1. brightness: c * brightness/100
//  2. contrast:   (c-128)*f + 128 with f = (contrast/100)^2; the
//     quadratic response is intentional and must not be replaced by the
//     textbook linear formula
//  3. gamma:      255 * (c/255)^(1/gamma)
//  4. tint:       offset = (K-6500)/1000; R += offset*10, B -= offset*10
//
// A single clamp to [0,255] runs after all four stages; intermediate
// values may legally leave that range mid-chain. The final rounding rule
// is round-half-up.
//
// Because every output channel depends only on its own 8-bit input, the
// chain is evaluated through three per-channel lookup tables built once
// per call. The result is byte-identical to evaluating the chain per
// pixel.
func Transform(src *PixelBuffer, params TransformParameters) *PixelBuffer {
	out := &PixelBuffer{Width: src.Width, Height: src.Height}
	if src.Empty() {
		return out
	}
	out.Pix = make([]uint8, len(src.Pix))

	lutR, lutG, lutB := transformLUTs(params)
	sp, dp := src.Pix, out.Pix
	for i := 0; i < len(sp); i += 4 {
		dp[i] = lutR[sp[i]]
		dp[i+1] = lutG[sp[i+1]]
		dp[i+2] = lutB[sp[i+2]]
		dp[i+3] = sp[i+3]
	}
	return out
}

// TransformChannel evaluates the chain for a single channel value.
// tintOffset is the signed stage-4 offset for that channel (positive for
// R, negative for B, zero for G).
func TransformChannel(c uint8, params TransformParameters, tintOffset float64) uint8 {
	v := float64(c) * float64(params.Brightness) / 100.0

	f := float64(params.Contrast) / 100.0
	f *= f
	v = (v-128.0)*f + 128.0

	// Negative intermediates skip the power (math.Pow would yield NaN);
	// the final clamp maps them to 0.
	if v > 0 {
		v = 255.0 * math.Pow(v/255.0, 1.0/params.Gamma)
	}

	v += tintOffset

	return clampRound(v)
}

// TintOffset returns the stage-4 red-channel offset for a color
// temperature; the blue channel uses its negation and green is untouched.
// 6500 K is the neutral reference point (zero offset).
func TintOffset(temperatureK int) float64 {
	return float64(temperatureK-DefaultTemperatureK) / 1000.0 * tintPerThousandK
}

func transformLUTs(params TransformParameters) (lutR, lutG, lutB [256]uint8) {
	offset := TintOffset(params.ColorTemperatureK)
	for c := 0; c < 256; c++ {
		lutR[c] = TransformChannel(uint8(c), params, offset)
		lutG[c] = TransformChannel(uint8(c), params, 0)
		lutB[c] = TransformChannel(uint8(c), params, -offset)
	}
	return lutR, lutG, lutB
}

// clampRound applies the single end-of-chain clamp to [0,255] followed by
// round-half-up. Downstream equality fixtures depend on this exact rule.
func clampRound(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
