package leveler

import (
	"fmt"

	"github.com/rapilodev/rms-leveler/dsp/ring"
	"github.com/rapilodev/rms-leveler/measure/loudness"
)

// LoudnessSource supplies loudness readings for one window from an external
// measurement.
type LoudnessSource interface {
	// Push feeds one input sample.
	Push(sample float64)
	// LoudnessDB returns the loudness of the last duration seconds.
	LoudnessDB(duration float64) float64
}

// SourceFactory builds one LoudnessSource for a window of the given duration.
type SourceFactory func(sampleRate, duration float64) (LoudnessSource, error)

// WindowMeterSource is the default SourceFactory: a BS.1770 K-weighted mono
// meter whose history covers the window.
func WindowMeterSource(sampleRate, duration float64) (LoudnessSource, error) {
	if duration > loudness.MaxWindowLimit {
		return nil, fmt.Errorf("%w: loudness window %.1fs exceeds %.0fs",
			ErrInvalidConfig, duration, loudness.MaxWindowLimit)
	}

	return loudness.NewWindowMeter(
		loudness.WithSampleRate(sampleRate),
		loudness.WithMaxWindow(duration),
	), nil
}

// Estimator turns a window's state into a loudness figure in dB.
type Estimator struct {
	Metric Metric
}

// Read returns the window loudness. With MetricLoudness and a non-nil
// source the source answers for the window's duration; otherwise the
// window's RMS level is used.
func (e Estimator) Read(w *ring.Window, src LoudnessSource) float64 {
	if e.Metric == MetricLoudness && src != nil {
		return src.LoudnessDB(w.Duration())
	}

	return w.RMSDB()
}

// DCOffset returns the window's offset. It always comes from the ring,
// whatever the metric.
func (e Estimator) DCOffset(w *ring.Window) float64 {
	return w.DCOffset()
}
