// Package leveler implements a real-time stereo loudness leveler and limiter.
//
// Each channel measures loudness over one to three rolling windows
// (dsp/ring). Once per adjust period every window's gain is recomputed by a
// GainController: gains only rise while loudness is rising, rise by at most
// MaxChangePerSecond × AdjustRate per period, and in limiter mode never exceed
// unity. Window gains are averaged, ramped across the next adjust period with
// a smooth curve, applied to the (optionally lookahead-delayed,
// DC-corrected) signal and passed through the soft limiter in dsp/dynamics.
//
// Typical use:
//
//	cfg, _ := leveler.Preset("rms-leveler-6s")
//	eng, err := leveler.New(leveler.WithConfig(cfg), leveler.WithSampleRate(44100))
//	if err != nil {
//		return err
//	}
//	defer eng.Close()
//	eng.Process(inL, inR, outL, outR)
//
// Process does not allocate and never fails; numeric degeneracies are
// recovered in place.
package leveler
