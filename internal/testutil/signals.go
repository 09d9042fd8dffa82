package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a sine starting at phase 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// SineAtRMSDB generates a sine whose RMS level is levelDB dBFS.
func SineAtRMSDB(freqHz, sampleRate, levelDB float64, length int) []float64 {
	amplitude := math.Sqrt2 * math.Pow(10, levelDB/20)
	return DeterministicSine(freqHz, sampleRate, amplitude, length)
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// AddOffset returns a copy of x with offset added to every sample.
func AddOffset(x []float64, offset float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v + offset
	}
	return out
}

// Peak returns the largest magnitude in x.
func Peak(x []float64) float64 {
	peak := 0.0
	for _, v := range x {
		peak = math.Max(peak, math.Abs(v))
	}
	return peak
}

// RMSDB returns the RMS level of x in dBFS, or -inf for silence.
func RMSDB(x []float64) float64 {
	if len(x) == 0 {
		return math.Inf(-1)
	}
	sum := 0.0
	for _, v := range x {
		sum += v * v
	}
	return 10 * math.Log10(sum/float64(len(x)))
}
