package loudness

// WindowMeter is a mono meter that reports ungated loudness over a caller
// chosen span. It satisfies the leveler's loudness source contract.
type WindowMeter struct {
	meter *Meter
	frame [1]float64
}

// NewWindowMeter creates a mono meter. Any channel option is overridden.
func NewWindowMeter(opts ...MeterOption) *WindowMeter {
	all := make([]MeterOption, 0, len(opts)+1)
	all = append(all, opts...)
	all = append(all, WithChannels(1))

	return &WindowMeter{meter: NewMeter(all...)}
}

// Push feeds one sample.
func (w *WindowMeter) Push(sample float64) {
	w.frame[0] = sample
	w.meter.ProcessSample(w.frame[:])
}

// LoudnessDB returns the loudness of the last duration seconds in LUFS.
func (w *WindowMeter) LoudnessDB(duration float64) float64 {
	return w.meter.Window(duration)
}

// Meter exposes the underlying meter.
func (w *WindowMeter) Meter() *Meter { return w.meter }
