package leveler

import "github.com/rapilodev/rms-leveler/dsp/interp"

// Interpolate ramps from oldGain to gain along a smoothstep curve.
// position is clamped to [0, period]; at 0 it returns oldGain, at period it
// returns gain exactly.
func Interpolate(gain, oldGain float64, position, period int) float64 {
	return interp.Ramp(interp.CurveSmoothstep, gain, oldGain, position, period)
}

// InterpolateCurve is Interpolate with a selectable curve.
func InterpolateCurve(curve interp.Curve, gain, oldGain float64, position, period int) float64 {
	return interp.Ramp(curve, gain, oldGain, position, period)
}
