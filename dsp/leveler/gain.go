package leveler

import (
	"math"

	"github.com/rapilodev/rms-leveler/dsp/core"
	"github.com/rapilodev/rms-leveler/dsp/ring"
)

// SilenceDB is the level reported for a silent window.
var SilenceDB = 20 * math.Log10(math.Sqrt(ring.PowerEpsilon))

// GainState is the per-window gain memory.
type GainState struct {
	Gain               float64
	PreviousGain       float64
	LoudnessDB         float64
	PreviousLoudnessDB float64
}

// NewGainState returns unity gain with silent loudness history.
func NewGainState() GainState {
	return GainState{
		Gain:               1,
		PreviousGain:       1,
		LoudnessDB:         SilenceDB,
		PreviousLoudnessDB: SilenceDB,
	}
}

// GainController derives a window gain from successive loudness readings.
type GainController struct {
	targetDB float64
	floorDB  float64
	maxStep  float64
	limiter  bool
	headroom float64
	makeup   float64
}

// NewGainController builds a controller for cfg. The config is assumed
// valid.
func NewGainController(cfg Config) *GainController {
	c := &GainController{
		targetDB: cfg.TargetDB,
		floorDB:  cfg.FloorDB,
		maxStep:  cfg.MaxGainStep(),
		limiter:  cfg.Mode == ModeLimiter,
		headroom: cfg.MakeupHeadroom,
	}
	c.SetInputGainDB(cfg.InputGainDB)

	return c
}

// MaxStep returns the largest upward change per recompute.
func (c *GainController) MaxStep() float64 { return c.maxStep }

// Makeup returns the limiter idle gain.
func (c *GainController) Makeup() float64 { return c.makeup }

// SetInputGainDB updates the makeup gain so an idle limiter undoes the input
// trim.
func (c *GainController) SetInputGainDB(db float64) {
	c.makeup = c.headroom / core.DBToLinear(core.Clamp(db, MinInputGainDB, MaxInputGainDB))
}

// Next returns the gain following previousGain for a new loudness reading.
//
// Readings under the floor hold the previous gain. An idle limiter snaps to
// the makeup gain. Otherwise the gain moves toward the target, but it is
// only raised while loudness keeps rising. The result never exceeds
// previousGain + MaxStep, never exceeds 1 in limiter mode, and is never NaN
// or zero.
func (c *GainController) Next(loudnessDB, previousLoudnessDB, previousGain float64) float64 {
	var gain float64

	switch {
	case loudnessDB < c.floorDB:
		gain = previousGain
	case c.limiter && loudnessDB < c.targetDB:
		gain = c.makeup
	default:
		gain = core.DBToLinear(c.targetDB - loudnessDB)
		if math.IsNaN(gain) || gain == 0 {
			gain = 1
		}

		if gain > 1 && loudnessDB <= previousLoudnessDB {
			gain = previousGain
		}
	}

	gain = min(gain, previousGain+c.maxStep)

	if c.limiter {
		gain = min(gain, 1)
	}

	if math.IsNaN(gain) || gain == 0 {
		gain = 1
	}

	return gain
}

// Update shifts the state and stores the next gain.
func (c *GainController) Update(s *GainState, loudnessDB float64) {
	s.PreviousLoudnessDB = s.LoudnessDB
	s.LoudnessDB = loudnessDB
	s.PreviousGain = s.Gain
	s.Gain = c.Next(loudnessDB, s.PreviousLoudnessDB, s.PreviousGain)
}
