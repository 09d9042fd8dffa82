package leveler

import (
	"math"
	"slices"

	"github.com/rapilodev/rms-leveler/dsp/core"
)

// Engine is a stereo leveler. It is not safe for concurrent use.
type Engine struct {
	cfg        Config
	controller *GainController
	left       *Channel
	right      *Channel

	// Interleaved processing buffers.
	inL, inR   []float64
	outL, outR []float64

	reportEvery int
	sinceReport int

	closed bool
}

// New builds an engine. On failure it returns a nil engine and releases any
// window allocated during the attempt.
func New(opts ...Option) (*Engine, error) {
	cfg := ApplyOptions(opts...)
	cfg.InputGainDB = core.Clamp(cfg.InputGainDB, MinInputGainDB, MaxInputGainDB)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	controller := NewGainController(cfg)

	left, err := NewChannel(cfg, controller)
	if err != nil {
		return nil, err
	}

	right, err := NewChannel(cfg, controller)
	if err != nil {
		left.Release()
		return nil, err
	}

	e := &Engine{
		cfg:        cfg,
		controller: controller,
		left:       left,
		right:      right,
		inL:        make([]float64, cfg.BlockSize),
		inR:        make([]float64, cfg.BlockSize),
		outL:       make([]float64, cfg.BlockSize),
		outR:       make([]float64, cfg.BlockSize),
	}

	if cfg.Reporter != nil && cfg.ReportInterval > 0 {
		e.reportEvery = max(cfg.Samples(cfg.ReportInterval), 1)
	}

	return e, nil
}

// Process levels one stereo block. The frame count is the length of the
// shortest slice. Output slices may alias the inputs.
func (e *Engine) Process(inL, inR, outL, outR []float64) {
	n := min(len(inL), len(inR), len(outL), len(outR))

	if e.closed {
		clear(outL[:n])
		clear(outR[:n])
		return
	}

	e.left.Process(inL[:n], outL[:n])
	e.right.Process(inR[:n], outR[:n])

	e.report(n)
}

// ProcessInterleaved levels interleaved stereo frames from in into out.
func (e *Engine) ProcessInterleaved(in, out []float64) {
	frames := min(len(in), len(out)) / 2
	block := len(e.inL)

	for offset := 0; offset < frames; offset += block {
		end := min(offset+block, frames)
		n := core.Deinterleave(e.inL[:end-offset], e.inR[:end-offset], in[2*offset:2*end])

		e.Process(e.inL[:n], e.inR[:n], e.outL[:n], e.outR[:n])
		core.Interleave(out[2*offset:2*end], e.outL[:n], e.outR[:n])
	}
}

func (e *Engine) report(frames int) {
	if e.reportEvery == 0 {
		return
	}

	e.sinceReport += frames
	if e.sinceReport < e.reportEvery {
		return
	}

	e.sinceReport %= e.reportEvery
	e.cfg.Reporter.Report(e.cfg.ReportID, e.left.LoudnessDB(), e.right.LoudnessDB())
}

// SetInputGainDB changes the input trim. Values are clamped to
// [MinInputGainDB, MaxInputGainDB]; NaN is ignored.
func (e *Engine) SetInputGainDB(db float64) {
	if math.IsNaN(db) {
		return
	}

	db = core.Clamp(db, MinInputGainDB, MaxInputGainDB)
	e.cfg.InputGainDB = db

	linear := core.DBToLinear(db)
	e.left.SetInputGain(linear)
	e.right.SetInputGain(linear)
	e.controller.SetInputGainDB(db)
}

// InputGainDB returns the current input trim.
func (e *Engine) InputGainDB() float64 { return e.cfg.InputGainDB }

// Gains returns the blended channel gains of the current adjust period.
func (e *Engine) Gains() (left, right float64) {
	return e.left.Gain(), e.right.Gain()
}

// Loudness returns the last primary window loudness per channel in dB.
func (e *Engine) Loudness() (left, right float64) {
	return e.left.LoudnessDB(), e.right.LoudnessDB()
}

// Channels exposes the two channel pipelines.
func (e *Engine) Channels() (left, right *Channel) {
	return e.left, e.right
}

// Latency returns the output delay in samples introduced by lookahead.
func (e *Engine) Latency() int {
	p := e.left.Primary()
	if !e.cfg.Lookahead || p == nil {
		return 0
	}

	return p.Capacity() - p.Capacity()/2
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	cfg := e.cfg
	cfg.Windows = slices.Clone(e.cfg.Windows)

	return cfg
}

// Close releases every window. It is safe to call more than once; Process
// writes silence afterwards.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}

	e.closed = true
	e.left.Release()
	e.right.Release()

	return nil
}
