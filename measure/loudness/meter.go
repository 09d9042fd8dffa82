package loudness

import (
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
)

const (
	// K-weighting filter parameters from BS.1770.
	kWeightingShelfFreq = 1500.0
	kWeightingShelfGain = 4.0

	kWeightingHpfFreq = 38.0

	// Integration window durations in seconds.
	momentaryDuration = 0.4
	shortTermDuration = 3.0

	// Gating parameters.
	absThreshold    = -70.0
	relThreshold    = -10.0
	blockOverlap    = 0.75
	blockStepFactor = 1.0 - blockOverlap

	// FloorLUFS is reported for silence.
	FloorLUFS = -120.0
)

// powerHistory is a sliding sum over the last len(buf) squared samples.
type powerHistory struct {
	buf []float64
	idx int
	sum float64
}

func newPowerHistory(n int) powerHistory {
	return powerHistory{buf: make([]float64, max(n, 1))}
}

func (h *powerHistory) push(sq float64) {
	h.sum += sq - h.buf[h.idx]
	if h.sum < 0 {
		h.sum = 0
	}

	h.buf[h.idx] = sq

	h.idx++
	if h.idx == len(h.buf) {
		h.idx = 0
	}
}

func (h *powerHistory) mean() float64 {
	return h.sum / float64(len(h.buf))
}

func (h *powerHistory) reset() {
	clear(h.buf)
	h.idx = 0
	h.sum = 0
}

type channelState struct {
	filter    kWeighting
	momentary powerHistory
	shortTerm powerHistory
	peak      float64
}

// Meter implements EBU R128 / ITU-R BS.1770 loudness metering.
type Meter struct {
	sampleRate float64
	channels   []channelState

	// Channel-summed K-weighted power per sample for Window queries.
	window       []float64
	windowIdx    int
	windowFilled int

	integrationRunning bool
	totalSamples       int64
	blockStep          int
	samplesSinceStep   int

	// Mean-square gating blocks, summed over channels.
	blocks []float64
}

// NewMeter creates a new loudness meter with the given options.
func NewMeter(opts ...MeterOption) *Meter {
	cfg := ApplyMeterOptions(opts...)

	m := &Meter{
		sampleRate: cfg.SampleRate,
		channels:   make([]channelState, cfg.Channels),
		window:     make([]float64, max(int(math.Round(cfg.MaxWindow*cfg.SampleRate)), 1)),
		blockStep:  max(int(math.Round(momentaryDuration*blockStepFactor*cfg.SampleRate)), 1),
	}

	momentary := int(math.Round(momentaryDuration * cfg.SampleRate))
	shortTerm := int(math.Round(shortTermDuration * cfg.SampleRate))

	for i := range m.channels {
		m.channels[i] = channelState{
			filter:    newKWeighting(cfg.SampleRate),
			momentary: newPowerHistory(momentary),
			shortTerm: newPowerHistory(shortTerm),
		}
	}

	return m
}

// SampleRate returns the configured sample rate.
func (m *Meter) SampleRate() float64 { return m.sampleRate }

// Channels returns the configured channel count.
func (m *Meter) Channels() int { return len(m.channels) }

// MaxWindow returns the longest span Window can cover, in seconds.
func (m *Meter) MaxWindow() float64 { return float64(len(m.window)) / m.sampleRate }

// Reset clears filters, histories, gating blocks and peaks. Integration keeps
// its running state.
func (m *Meter) Reset() {
	for i := range m.channels {
		ch := &m.channels[i]
		ch.filter.reset()
		ch.momentary.reset()
		ch.shortTerm.reset()
		ch.peak = 0
	}

	clear(m.window)
	m.windowIdx = 0
	m.windowFilled = 0
	m.samplesSinceStep = 0
	m.totalSamples = 0
	m.blocks = m.blocks[:0]
}

// StartIntegration starts accumulating blocks for integrated loudness.
func (m *Meter) StartIntegration() {
	m.integrationRunning = true
}

// StopIntegration stops accumulating blocks for integrated loudness.
func (m *Meter) StopIntegration() {
	m.integrationRunning = false
}

// ProcessSample processes one frame. Frames shorter than the channel count
// are ignored.
func (m *Meter) ProcessSample(frame []float64) {
	if len(frame) < len(m.channels) {
		return
	}

	power := 0.0

	for i := range m.channels {
		ch := &m.channels[i]

		ch.peak = math.Max(ch.peak, math.Abs(frame[i]))

		y := ch.filter.process(frame[i])
		sq := y * y

		ch.momentary.push(sq)
		ch.shortTerm.push(sq)

		power += sq
	}

	m.window[m.windowIdx] = power

	m.windowIdx++
	if m.windowIdx == len(m.window) {
		m.windowIdx = 0
	}

	if m.windowFilled < len(m.window) {
		m.windowFilled++
	}

	if !m.integrationRunning {
		return
	}

	m.totalSamples++

	m.samplesSinceStep++
	if m.samplesSinceStep >= m.blockStep {
		m.samplesSinceStep = 0
		m.blocks = append(m.blocks, m.momentaryPower())
	}
}

// ProcessBlock processes a block of interleaved samples.
func (m *Meter) ProcessBlock(block []float64) {
	n := len(m.channels)
	for i := 0; i+n <= len(block); i += n {
		m.ProcessSample(block[i : i+n])
	}
}

func (m *Meter) momentaryPower() float64 {
	sum := 0.0
	for i := range m.channels {
		sum += m.channels[i].momentary.mean()
	}

	return sum
}

// Momentary returns the current momentary (400 ms) loudness in LUFS.
func (m *Meter) Momentary() float64 {
	return toLUFS(m.momentaryPower())
}

// ShortTerm returns the current short-term (3 s) loudness in LUFS.
func (m *Meter) ShortTerm() float64 {
	sum := 0.0
	for i := range m.channels {
		sum += m.channels[i].shortTerm.mean()
	}

	return toLUFS(sum)
}

// Window returns the ungated loudness over the most recent seconds of input,
// limited to MaxWindow and to the samples seen since Reset.
func (m *Meter) Window(seconds float64) float64 {
	n := min(int(math.Round(seconds*m.sampleRate)), m.windowFilled)
	if n <= 0 {
		return FloorLUFS
	}

	start := m.windowIdx - n

	var sum float64
	if start >= 0 {
		sum = vecmath.Sum(m.window[start:m.windowIdx])
	} else {
		sum = vecmath.Sum(m.window[len(m.window)+start:]) + vecmath.Sum(m.window[:m.windowIdx])
	}

	return toLUFS(sum / float64(n))
}

// Integrated returns the gated integrated loudness in LUFS since
// StartIntegration, or -Inf when no block passes the gates.
func (m *Meter) Integrated() float64 {
	absSum, absCount := 0.0, 0

	for _, b := range m.blocks {
		if toLUFS(b) > absThreshold {
			absSum += b
			absCount++
		}
	}

	if absCount == 0 {
		return math.Inf(-1)
	}

	gate := toLUFS(absSum/float64(absCount)) + relThreshold

	relSum, relCount := 0.0, 0

	for _, b := range m.blocks {
		l := toLUFS(b)
		if l > absThreshold && l > gate {
			relSum += b
			relCount++
		}
	}

	if relCount == 0 {
		return math.Inf(-1)
	}

	return toLUFS(relSum / float64(relCount))
}

// Peaks returns the maximum absolute sample value per channel since Reset.
func (m *Meter) Peaks() []float64 {
	p := make([]float64, len(m.channels))
	for i := range m.channels {
		p[i] = m.channels[i].peak
	}

	return p
}

func toLUFS(meanSquare float64) float64 {
	if meanSquare <= 0 {
		return FloorLUFS
	}

	return -0.691 + 10.0*math.Log10(meanSquare)
}
