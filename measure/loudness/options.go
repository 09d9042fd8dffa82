package loudness

import (
	"math"

	"github.com/rapilodev/rms-leveler/dsp/core"
)

// MaxWindowLimit bounds the history kept for Window queries.
const MaxWindowLimit = 600.0

// MeterConfig defines configuration for the loudness meter.
type MeterConfig struct {
	core.ProcessorConfig
	Channels int
	// MaxWindow is the longest span in seconds that Window can report.
	MaxWindow float64
}

// MeterOption mutates a MeterConfig.
type MeterOption func(*MeterConfig)

// DefaultMeterConfig returns stereo at 48 kHz with a short-term sized history.
func DefaultMeterConfig() MeterConfig {
	return MeterConfig{
		ProcessorConfig: core.DefaultProcessorConfig(),
		Channels:        2,
		MaxWindow:       shortTermDuration,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) MeterOption {
	return func(cfg *MeterConfig) {
		if sampleRate > 0 && !math.IsInf(sampleRate, 0) {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithChannels sets the number of channels (1 for mono, 2 for stereo).
func WithChannels(channels int) MeterOption {
	return func(cfg *MeterConfig) {
		if channels > 0 {
			cfg.Channels = channels
		}
	}
}

// WithMaxWindow sets the history length available to Window, in seconds.
// Values outside (0, MaxWindowLimit] are ignored.
func WithMaxWindow(seconds float64) MeterOption {
	return func(cfg *MeterConfig) {
		if seconds > 0 && seconds <= MaxWindowLimit {
			cfg.MaxWindow = seconds
		}
	}
}

// ApplyMeterOptions applies zero or more options to the default config.
func ApplyMeterOptions(opts ...MeterOption) MeterConfig {
	cfg := DefaultMeterConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
