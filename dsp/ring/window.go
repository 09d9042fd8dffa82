package ring

import (
	"fmt"
	"math"
)

const (
	// DCOffsetDeadband is the magnitude below which a running mean is not
	// treated as DC offset.
	DCOffsetDeadband = 0.005

	// PowerEpsilon replaces an exactly zero mean power before the logarithm.
	PowerEpsilon = 1e-13

	// MaxCapacity bounds a single window (about 23 minutes at 48 kHz).
	MaxCapacity = 1 << 26
)

// Config describes one window.
type Config struct {
	SampleRate float64
	// Duration is the window length in seconds. Zero yields an inactive window.
	Duration float64
	// AdjustRate is the time between gain recomputations in seconds.
	AdjustRate float64
	// Lookahead delays the playback tap by half the capacity.
	Lookahead bool
	// DisablePower skips the sum-of-squares buffer for windows whose loudness
	// comes from elsewhere.
	DisablePower bool
}

// Window is a circular sample buffer with incrementally maintained
// statistics.
type Window struct {
	active   bool
	duration float64

	data    []float64
	squares []float64

	capacity   int
	filled     int
	writeIndex int
	playIndex  int

	sum      float64
	powerSum float64

	adjustPosition int
	adjustPeriod   int

	position      float64
	deltaPosition float64
}

// New allocates a window. A zero duration returns an inactive window whose
// operations are no-ops.
func New(cfg Config) (*Window, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	adjustPeriod := int(cfg.SampleRate * cfg.AdjustRate)
	if adjustPeriod < 1 {
		return nil, fmt.Errorf("%w: adjust rate %f is shorter than one sample at %f Hz",
			ErrInvalidConfig, cfg.AdjustRate, cfg.SampleRate)
	}

	w := &Window{
		duration:      cfg.Duration,
		adjustPeriod:  adjustPeriod,
		deltaPosition: 1 / cfg.SampleRate,
	}

	if cfg.Duration == 0 {
		return w, nil
	}

	capacity := cfg.Duration * cfg.SampleRate
	if capacity >= MaxCapacity {
		return nil, fmt.Errorf("%w: %.0f samples for %.3fs at %.0f Hz (max %d)",
			ErrTooLarge, capacity, cfg.Duration, cfg.SampleRate, MaxCapacity)
	}

	if int(capacity) < 1 {
		return nil, fmt.Errorf("%w: duration %f is shorter than one sample", ErrInvalidConfig, cfg.Duration)
	}

	w.active = true
	w.capacity = int(capacity)
	w.data = make([]float64, w.capacity)

	if !cfg.DisablePower {
		w.squares = make([]float64, w.capacity)
	}

	if cfg.Lookahead {
		w.playIndex = w.capacity / 2
	}

	return w, nil
}

// Active reports whether the window holds a buffer.
func (w *Window) Active() bool { return w.active }

// Duration returns the configured duration in seconds.
func (w *Window) Duration() float64 { return w.duration }

// Capacity returns the buffer length in samples.
func (w *Window) Capacity() int { return w.capacity }

// Filled returns how many samples the statistics currently cover.
func (w *Window) Filled() int { return w.filled }

// Warm reports whether the window has filled once. The transition is
// permanent for the lifetime of the window.
func (w *Window) Warm() bool { return w.active && w.filled == w.capacity }

// Sum returns the running sum of the buffered samples.
func (w *Window) Sum() float64 { return w.sum }

// PowerSum returns the running sum of squares of the buffered samples.
func (w *Window) PowerSum() float64 { return w.powerSum }

// WriteIndex returns the slot the current sample occupies.
func (w *Window) WriteIndex() int { return w.writeIndex }

// PlayIndex returns the slot read by Tap.
func (w *Window) PlayIndex() int { return w.playIndex }

// AdjustPosition returns the position inside the current adjust period.
func (w *Window) AdjustPosition() int { return w.adjustPosition }

// AdjustPeriod returns the number of samples per adjust period.
func (w *Window) AdjustPeriod() int { return w.adjustPeriod }

// Position returns the elapsed time in seconds.
func (w *Window) Position() float64 { return w.position }

// Push replaces the oldest sample with value and updates the running sum.
func (w *Window) Push(value float64) {
	if !w.active {
		return
	}

	w.sum -= w.data[w.writeIndex]
	w.data[w.writeIndex] = value
	w.sum += value

	if w.filled < w.capacity {
		w.filled++
	}
}

// AccumulatePower updates the running sum of squares with the sample at the
// write index.
func (w *Window) AccumulatePower() {
	if !w.active || w.squares == nil {
		return
	}

	value := w.data[w.writeIndex]
	sq := value * value

	w.powerSum += sq - w.squares[w.writeIndex]
	w.squares[w.writeIndex] = sq

	if w.powerSum < 0 {
		w.powerSum = 0
	}
}

// Current returns the sample at the write index.
func (w *Window) Current() float64 {
	if !w.active {
		return 0
	}

	return w.data[w.writeIndex]
}

// Tap returns the playback sample. Without lookahead it is the sample just
// pushed; with lookahead it lags by capacity - capacity/2 samples.
func (w *Window) Tap() float64 {
	if !w.active {
		return 0
	}

	return w.data[w.playIndex]
}

// Advance moves the write, play and adjust positions by one sample. Call it
// once per sample after every read for that sample.
func (w *Window) Advance() {
	if !w.active {
		return
	}

	w.writeIndex++
	if w.writeIndex >= w.capacity {
		w.writeIndex = 0
	}

	w.playIndex++
	if w.playIndex >= w.capacity {
		w.playIndex = 0
	}

	w.adjustPosition++
	if w.adjustPosition >= w.adjustPeriod {
		w.adjustPosition = 0
	}

	w.position += w.deltaPosition
}

// DCOffset returns the running mean, or 0 inside the deadband.
func (w *Window) DCOffset() float64 {
	if w.filled == 0 {
		return 0
	}

	offset := w.sum / float64(w.filled)
	if math.Abs(offset) < DCOffsetDeadband {
		return 0
	}

	return offset
}

// MeanPower returns the running mean of squares.
func (w *Window) MeanPower() float64 {
	if w.filled == 0 {
		return 0
	}

	return w.powerSum / float64(w.filled)
}

// RMSDB returns the RMS level in dBFS.
func (w *Window) RMSDB() float64 {
	power := w.MeanPower()
	if power <= 0 {
		power = PowerEpsilon
	}

	return 20 * math.Log10(math.Sqrt(power))
}

// Release drops the buffers, clears the statistics and deactivates the
// window. Further calls are no-ops.
func (w *Window) Release() {
	if w == nil || !w.active {
		return
	}

	w.active = false
	w.data = nil
	w.squares = nil
	w.filled = 0
	w.sum = 0
	w.powerSum = 0
}

// Samples copies the most recent min(len(dst), Filled()) samples into dst,
// oldest first, and returns the count. It is meant to be called between
// ticks, after Advance.
func (w *Window) Samples(dst []float64) int {
	if !w.active {
		return 0
	}

	n := min(len(dst), w.filled)
	start := w.writeIndex - n
	if start < 0 {
		start += w.capacity
	}

	first := copy(dst[:n], w.data[start:min(start+n, w.capacity)])
	copy(dst[first:n], w.data[:n-first])

	return n
}
