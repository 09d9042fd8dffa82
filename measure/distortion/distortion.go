// Package distortion measures the harmonic distortion a static transfer
// function adds to a sine.
package distortion

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

const (
	defaultSampleRate   = 48000.0
	defaultFFTSize      = 4096
	defaultBin          = 64
	defaultMaxHarmonics = 9

	// silentLevel is the fundamental amplitude below which a result is
	// meaningless.
	silentLevel = 1e-12
)

var (
	// ErrInvalidConfig is returned for unusable analysis settings.
	ErrInvalidConfig = errors.New("distortion: invalid config")
	// ErrNoFundamental is returned when the output has no energy at the
	// test frequency.
	ErrNoFundamental = errors.New("distortion: no fundamental in output")
)

// Config describes one measurement. The test tone sits exactly on FFT bin
// Bin, so no analysis window is needed.
type Config struct {
	SampleRate   float64
	FFTSize      int
	Bin          int
	Amplitude    float64
	MaxHarmonics int
}

// DefaultConfig returns a full-scale 750 Hz tone analysed with 4096 points
// at 48 kHz, measuring harmonics 2 to 10.
func DefaultConfig() Config {
	return Config{
		SampleRate:   defaultSampleRate,
		FFTSize:      defaultFFTSize,
		Bin:          defaultBin,
		Amplitude:    1,
		MaxHarmonics: defaultMaxHarmonics,
	}
}

// Frequency returns the test tone frequency in Hz.
func (c Config) Frequency() float64 {
	return float64(c.Bin) * c.SampleRate / float64(c.FFTSize)
}

// Validate reports whether the config can be analysed.
func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0 || math.IsNaN(c.SampleRate) || math.IsInf(c.SampleRate, 0):
		return fmt.Errorf("%w: sample rate %f", ErrInvalidConfig, c.SampleRate)
	case c.FFTSize < 8:
		return fmt.Errorf("%w: fft size %d < 8", ErrInvalidConfig, c.FFTSize)
	case c.Bin < 1 || 2*c.Bin >= c.FFTSize:
		return fmt.Errorf("%w: bin %d outside (0, %d)", ErrInvalidConfig, c.Bin, c.FFTSize/2)
	case c.Amplitude <= 0 || math.IsNaN(c.Amplitude) || math.IsInf(c.Amplitude, 0):
		return fmt.Errorf("%w: amplitude %f", ErrInvalidConfig, c.Amplitude)
	case c.MaxHarmonics < 0:
		return fmt.Errorf("%w: max harmonics %d", ErrInvalidConfig, c.MaxHarmonics)
	}

	return nil
}

// Result holds one measurement. Harmonic figures are amplitude ratios to the
// fundamental.
type Result struct {
	Frequency float64
	// Fundamental is the output amplitude at the test frequency.
	Fundamental float64
	// Harmonics[i] is harmonic i+2.
	Harmonics []float64
	THD       float64
	THDdB     float64
	OddHD     float64
	EvenHD    float64
	// Peak is the largest output magnitude.
	Peak float64
	// Gain is Fundamental / Amplitude.
	Gain float64
}

// Analyze drives one period-exact sine through fn and measures its output.
func Analyze(fn func(float64) float64, cfg Config) (Result, error) {
	if fn == nil {
		return Result{}, fmt.Errorf("%w: nil transfer function", ErrInvalidConfig)
	}

	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	n := cfg.FFTSize
	in := make([]complex128, n)
	peak := 0.0

	for i := range n {
		phase := 2 * math.Pi * float64(cfg.Bin) * float64(i) / float64(n)
		y := fn(cfg.Amplitude * math.Sin(phase))
		peak = math.Max(peak, math.Abs(y))
		in[i] = complex(y, 0)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return Result{}, fmt.Errorf("distortion: fft plan: %w", err)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return Result{}, fmt.Errorf("distortion: fft: %w", err)
	}

	amplitude := func(bin int) float64 {
		x := out[bin]
		return 2 * math.Hypot(real(x), imag(x)) / float64(n)
	}

	res := Result{
		Frequency:   cfg.Frequency(),
		Fundamental: amplitude(cfg.Bin),
		Peak:        peak,
	}

	if res.Fundamental < silentLevel {
		return res, ErrNoFundamental
	}

	res.Gain = res.Fundamental / cfg.Amplitude

	var sum, odd, even float64

	for k := 2; k-2 < cfg.MaxHarmonics; k++ {
		bin := k * cfg.Bin
		if 2*bin >= n {
			break
		}

		h := amplitude(bin) / res.Fundamental
		res.Harmonics = append(res.Harmonics, h)

		sq := h * h
		sum += sq

		if k%2 == 0 {
			even += sq
		} else {
			odd += sq
		}
	}

	res.THD = math.Sqrt(sum)
	res.OddHD = math.Sqrt(odd)
	res.EvenHD = math.Sqrt(even)
	res.THDdB = ratioToDB(res.THD)

	return res, nil
}

// Point is one sample of a transfer curve.
type Point struct {
	In, Out float64
}

// Curve samples fn at steps+1 evenly spaced inputs from lo to hi.
func Curve(fn func(float64) float64, lo, hi float64, steps int) []Point {
	if fn == nil || steps < 1 {
		return nil
	}

	points := make([]Point, steps+1)
	for i := range points {
		x := lo + (hi-lo)*float64(i)/float64(steps)
		points[i] = Point{In: x, Out: fn(x)}
	}

	return points
}

func ratioToDB(r float64) float64 {
	if r <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(r)
}
