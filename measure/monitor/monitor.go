package monitor

import (
	"fmt"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
	"github.com/rapilodev/rms-leveler/dsp/core"
	"github.com/rapilodev/rms-leveler/dsp/ring"
	"github.com/rapilodev/rms-leveler/measure/loudness"
)

// meterHistory keeps the loudness meter's window history small; only the
// gated integrated value is read.
const meterHistory = 0.4

// Monitor passes stereo audio through and reports one reading per interval.
// It is not safe for concurrent use.
type Monitor struct {
	cfg Config

	rms    [2]*ring.Window
	peak   [2]float64
	meters [2]*loudness.Meter
	frame  [1]float64

	// Interleaved processing buffers.
	inL, inR []float64

	elapsed float64
	limit   float64

	left, right float64
	readings    int
	closed      bool
}

// New builds a monitor.
func New(opts ...Option) (*Monitor, error) {
	cfg := ApplyOptions(opts...)
	if cfg.ID == "" {
		cfg.ID = cfg.Kind.DefaultID()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Monitor{
		cfg:   cfg,
		inL:   make([]float64, cfg.BlockSize),
		inR:   make([]float64, cfg.BlockSize),
		limit: cfg.Interval * cfg.SampleRate,
		left:  FloorDB,
		right: FloorDB,
	}

	switch cfg.Kind {
	case KindRMS:
		for c := range m.rms {
			w, err := ring.New(ring.Config{
				SampleRate: cfg.SampleRate,
				Duration:   cfg.Window,
				AdjustRate: cfg.Window,
			})
			if err != nil {
				m.Close()
				return nil, fmt.Errorf("monitor: window: %w", err)
			}

			m.rms[c] = w
		}
	case KindLoudness:
		for c := range m.meters {
			m.meters[c] = loudness.NewMeter(
				loudness.WithSampleRate(cfg.SampleRate),
				loudness.WithChannels(1),
				loudness.WithMaxWindow(meterHistory),
			)
			m.meters[c].StartIntegration()
		}
	}

	return m, nil
}

// Config returns the effective configuration.
func (m *Monitor) Config() Config { return m.cfg }

// Process copies the input to the output and measures it. The frame count is
// the length of the shortest slice.
func (m *Monitor) Process(inL, inR, outL, outR []float64) {
	n := min(len(inL), len(inR), len(outL), len(outR))

	if m.closed {
		clear(outL[:n])
		clear(outR[:n])
		return
	}

	m.measure(0, inL[:n])
	m.measure(1, inR[:n])

	copy(outL[:n], inL[:n])
	copy(outR[:n], inR[:n])

	m.tick(n)
}

// ProcessInterleaved copies interleaved stereo frames from in to out and
// measures them.
func (m *Monitor) ProcessInterleaved(in, out []float64) {
	frames := min(len(in), len(out)) / 2

	if m.closed {
		clear(out[:2*frames])
		return
	}

	block := len(m.inL)

	for offset := 0; offset < frames; offset += block {
		end := min(offset+block, frames)
		n := core.Deinterleave(m.inL[:end-offset], m.inR[:end-offset], in[2*offset:2*end])

		m.measure(0, m.inL[:n])
		m.measure(1, m.inR[:n])
	}

	copy(out[:2*frames], in[:2*frames])

	m.tick(frames)
}

func (m *Monitor) measure(c int, x []float64) {
	switch m.cfg.Kind {
	case KindRMS:
		w := m.rms[c]
		for _, v := range x {
			w.Push(v)
			w.AccumulatePower()
			w.Advance()
		}
	case KindPeak:
		if len(x) > 0 {
			m.peak[c] = math.Max(m.peak[c], vecmath.MaxAbs(x))
		}
	case KindLoudness:
		meter := m.meters[c]
		for _, v := range x {
			m.frame[0] = v
			meter.ProcessSample(m.frame[:])
		}
	}
}

// tick counts frames and emits a reading once more than one interval has
// passed. The surplus carries over into the next interval.
func (m *Monitor) tick(frames int) {
	m.elapsed += float64(frames)
	if m.elapsed <= m.limit {
		return
	}

	m.elapsed -= m.limit

	m.left, m.right = m.read(0), m.read(1)
	m.readings++

	if m.cfg.Reporter != nil {
		m.cfg.Reporter.Report(m.cfg.ID, m.left, m.right)
	}
}

func (m *Monitor) read(c int) float64 {
	switch m.cfg.Kind {
	case KindPeak:
		db := core.FloorDB(m.peak[c], FloorDB)
		m.peak[c] = 0

		return db
	case KindLoudness:
		lufs := m.meters[c].Integrated()
		m.meters[c].Reset()

		if !core.IsFinite(lufs) {
			return FloorDB
		}

		return math.Max(lufs, FloorDB)
	default:
		return math.Max(m.rms[c].RMSDB(), FloorDB)
	}
}

// Last returns the most recent reading, FloorDB on both channels before the
// first one.
func (m *Monitor) Last() (left, right float64) { return m.left, m.right }

// Readings returns how many readings have been emitted.
func (m *Monitor) Readings() int { return m.readings }

// Close releases the RMS windows. Later Process calls output silence. It is
// safe to call more than once.
func (m *Monitor) Close() error {
	if m.closed {
		return nil
	}

	m.closed = true

	for _, w := range m.rms {
		w.Release()
	}

	return nil
}
