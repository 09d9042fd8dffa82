package dynamics

import vecmath "github.com/cwbudde/algo-vecmath"

const (
	// Threshold is the knee of the limiter (-3 dBFS).
	Threshold = 0.707945784
	// Ceiling is the hard output bound (-1 dBFS).
	Ceiling = 0.891250938
)

// Compress maps a magnitude above Threshold onto the logarithmic knee:
//
//	T + (1-T) * log10(m - T + 1)
//
// The result is continuous with the identity at m = T. Compress does not
// clamp; use Limit for the full transfer function.
func Compress(magnitude float64) float64 {
	return Threshold + (1-Threshold)*mathLog10(magnitude-Threshold+1)
}

// Limit applies the soft limiter to one sample.
func Limit(x float64) float64 {
	switch {
	case x > Threshold:
		return min(Compress(x), Ceiling)
	case x < -Threshold:
		return -min(Compress(-x), Ceiling)
	default:
		return x
	}
}

// LimitBlock limits buf in place. Blocks whose peak stays below Threshold are
// left untouched.
func LimitBlock(buf []float64) {
	if len(buf) == 0 || vecmath.MaxAbs(buf) <= Threshold {
		return
	}

	for i, x := range buf {
		buf[i] = Limit(x)
	}
}
