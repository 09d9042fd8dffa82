package leveler

import (
	"fmt"
	"slices"
)

// PresetInfo describes a named configuration.
type PresetInfo struct {
	Name        string
	Description string
	Config      Config
}

type preset struct {
	description string
	opts        []Option
}

var presets = map[string]preset{
	"rms-leveler-0.3s": {
		"RMS leveler, 0.3 second window",
		[]Option{WithWindows(0.3)},
	},
	"rms-leveler-3s": {
		"RMS leveler, 3 second window",
		[]Option{WithWindows(3)},
	},
	"rms-leveler-6s": {
		"RMS leveler, 6 second window",
		[]Option{WithWindows(6)},
	},
	"rms-leveler-10s": {
		"RMS leveler, 10 second window",
		[]Option{WithWindows(10)},
	},
	"rms-leveler-6s-multi": {
		"RMS leveler, 6, 3 and 0.4 second windows",
		[]Option{WithWindows(6, 3, 0.4)},
	},
	"rms-limiter-1s": {
		"RMS limiter, 1 second window",
		[]Option{WithWindows(1), WithMode(ModeLimiter)},
	},
	"rms-limiter-6s": {
		"RMS limiter, 6 second window",
		[]Option{WithWindows(6), WithMode(ModeLimiter)},
	},
	"rms-limiter-6s-multi": {
		"RMS limiter, 6, 3 and 0.4 second windows",
		[]Option{WithWindows(6, 3, 0.4), WithMode(ModeLimiter)},
	},
	"rms-limiter-instant-1m": {
		"RMS limiter, 1 minute window without lookahead delay",
		[]Option{WithWindows(60), WithMode(ModeLimiter), WithLookahead(false)},
	},
	"ebur128-leveler-6s": {
		"EBU R128 leveler, 6 second window",
		[]Option{WithWindows(6), WithMetric(MetricLoudness), WithMaxChange(0.5)},
	},
	"ebur128-limiter-3s": {
		"EBU R128 limiter, 3 second window",
		[]Option{WithWindows(3), WithMetric(MetricLoudness), WithMode(ModeLimiter)},
	},
	"ebur128-limiter-6s": {
		"EBU R128 limiter, 6 second window",
		[]Option{WithWindows(6), WithMetric(MetricLoudness), WithMode(ModeLimiter)},
	},
}

// DefaultPreset is the preset matching DefaultConfig.
const DefaultPreset = "rms-leveler-6s"

// Preset returns the named configuration at the default sample rate.
func Preset(name string) (Config, error) {
	p, ok := presets[name]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}

	return ApplyOptions(p.opts...), nil
}

// PresetNames returns all preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Presets returns every preset with its description, sorted by name.
func Presets() []PresetInfo {
	names := PresetNames()
	out := make([]PresetInfo, 0, len(names))

	for _, name := range names {
		p := presets[name]
		out = append(out, PresetInfo{
			Name:        name,
			Description: p.description,
			Config:      ApplyOptions(p.opts...),
		})
	}

	return out
}
