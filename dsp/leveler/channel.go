package leveler

import (
	"fmt"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/rapilodev/rms-leveler/dsp/core"
	"github.com/rapilodev/rms-leveler/dsp/dynamics"
	"github.com/rapilodev/rms-leveler/dsp/interp"
	"github.com/rapilodev/rms-leveler/dsp/ring"
)

// Channel runs the per-sample leveling pipeline for one audio channel.
type Channel struct {
	windows []*ring.Window
	active  []bool
	sources []LoudnessSource
	states  []GainState
	primary int

	controller *GainController
	estimator  Estimator
	curve      interp.Curve

	inputGain float64
	scratch   []float64

	gain         float64
	previousGain float64
}

// NewChannel allocates the windows described by cfg. On failure every
// window built so far is released.
func NewChannel(cfg Config, controller *GainController) (*Channel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := len(cfg.Windows)
	c := &Channel{
		windows:      make([]*ring.Window, n),
		active:       make([]bool, n),
		sources:      make([]LoudnessSource, n),
		states:       make([]GainState, n),
		primary:      -1,
		controller:   controller,
		estimator:    Estimator{Metric: cfg.Metric},
		curve:        cfg.Curve,
		inputGain:    core.DBToLinear(core.Clamp(cfg.InputGainDB, MinInputGainDB, MaxInputGainDB)),
		scratch:      make([]float64, cfg.BlockSize),
		gain:         1,
		previousGain: 1,
	}

	factory := cfg.Sources
	if factory == nil {
		factory = WindowMeterSource
	}

	for i, duration := range cfg.Windows {
		w, err := ring.New(ring.Config{
			SampleRate:   cfg.SampleRate,
			Duration:     duration,
			AdjustRate:   cfg.AdjustRate,
			Lookahead:    cfg.Lookahead,
			DisablePower: cfg.Metric == MetricLoudness,
		})
		if err != nil {
			c.Release()
			return nil, fmt.Errorf("window %d: %w", i, err)
		}

		c.windows[i] = w
		c.active[i] = w.Active()
		c.states[i] = NewGainState()

		if !w.Active() {
			continue
		}

		if c.primary < 0 {
			c.primary = i
		}

		if cfg.Metric == MetricLoudness {
			src, err := factory(cfg.SampleRate, duration)
			if err != nil {
				c.Release()
				return nil, fmt.Errorf("window %d loudness source: %w", i, err)
			}

			c.sources[i] = src
		}
	}

	return c, nil
}

// Tick processes one already trimmed sample and returns the output sample.
func (c *Channel) Tick(x float64) float64 {
	for i, w := range c.windows {
		if !c.active[i] {
			continue
		}

		w.Push(x)

		if src := c.sources[i]; src != nil {
			src.Push(x)
		} else {
			w.AccumulatePower()
		}
	}

	p := c.windows[c.primary]
	position := p.AdjustPosition()

	// Position 0 closes the previous ramp before the next recompute.
	ramp := position
	if ramp == 0 {
		ramp = p.AdjustPeriod()
	}

	gain := interp.Ramp(c.curve, c.gain, c.previousGain, ramp, p.AdjustPeriod())
	y := dynamics.Limit((p.Tap() - c.estimator.DCOffset(p)) * gain)

	if position == 0 {
		c.recompute()
	}

	for i, w := range c.windows {
		if c.active[i] {
			w.Advance()
		}
	}

	return y
}

// recompute updates every active window's gain and the channel blend. All
// windows share the adjust period, so they reach position 0 together.
func (c *Channel) recompute() {
	for i, w := range c.windows {
		if !c.active[i] {
			continue
		}

		c.controller.Update(&c.states[i], c.estimator.Read(w, c.sources[i]))
	}

	c.gain, c.previousGain = Blend(c.states, c.active)
}

// Process trims in by the input gain and levels it into out. It handles
// min(len(in), len(out)) samples and does not allocate.
func (c *Channel) Process(in, out []float64) {
	n := min(len(in), len(out))

	for offset := 0; offset < n; offset += len(c.scratch) {
		end := min(offset+len(c.scratch), n)
		block := c.scratch[:end-offset]

		vecmath.ScaleBlock(block, in[offset:end], c.inputGain)

		for i, x := range block {
			out[offset+i] = c.Tick(x)
		}
	}
}

// SetInputGain sets the linear input trim.
func (c *Channel) SetInputGain(linear float64) { c.inputGain = linear }

// Gain returns the blended gain of the current adjust period.
func (c *Channel) Gain() float64 { return c.gain }

// PreviousGain returns the blended gain of the previous adjust period.
func (c *Channel) PreviousGain() float64 { return c.previousGain }

// LoudnessDB returns the primary window's last loudness reading.
func (c *Channel) LoudnessDB() float64 {
	if c.primary < 0 {
		return SilenceDB
	}

	return c.states[c.primary].LoudnessDB
}

// States returns the per-window gain states.
func (c *Channel) States() []GainState { return c.states }

// Primary returns the primary window.
func (c *Channel) Primary() *ring.Window {
	if c.primary < 0 {
		return nil
	}

	return c.windows[c.primary]
}

// Warm reports whether every active window has filled once.
func (c *Channel) Warm() bool {
	for i, w := range c.windows {
		if c.active[i] && !w.Warm() {
			return false
		}
	}

	return c.primary >= 0
}

// Release frees all windows and sources. It is safe to call more than once.
func (c *Channel) Release() {
	for i, w := range c.windows {
		w.Release()
		c.active[i] = false
		c.sources[i] = nil
	}
}
