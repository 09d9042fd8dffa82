package monitor

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/rapilodev/rms-leveler/dsp/core"
	"github.com/rapilodev/rms-leveler/report"
)

// ErrInvalidConfig is returned by New for unusable settings.
var ErrInvalidConfig = errors.New("monitor: invalid config")

// FloorDB is reported instead of -Inf for silent intervals.
const FloorDB = -120.0

const (
	defaultWindow   = 6.0
	defaultInterval = 6.0
)

// Kind selects what a monitor measures.
type Kind int

const (
	// KindRMS reports the RMS level of a rolling window.
	KindRMS Kind = iota
	// KindPeak reports the largest sample magnitude since the last reading.
	KindPeak
	// KindLoudness reports gated integrated loudness since the last reading.
	KindLoudness
)

func (k Kind) String() string {
	switch k {
	case KindRMS:
		return "rms"
	case KindPeak:
		return "peak"
	case KindLoudness:
		return "loudness"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// DefaultID returns the report id used when none is configured.
func (k Kind) DefaultID() string {
	switch k {
	case KindPeak:
		return "peak-in"
	case KindLoudness:
		return "ebur-out"
	default:
		return "rms-out"
	}
}

// ParseKind parses "rms", "peak" or "loudness" ("ebur" is an alias).
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(name) {
	case "rms", "":
		return KindRMS, nil
	case "peak":
		return KindPeak, nil
	case "loudness", "ebur", "ebur128":
		return KindLoudness, nil
	default:
		return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidConfig, name)
	}
}

// Config configures a Monitor.
type Config struct {
	core.ProcessorConfig
	Kind Kind
	// Window is the RMS window length in seconds.
	Window float64
	// Interval is the time between readings in seconds.
	Interval float64
	ID       string
	Reporter report.Reporter
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a 6 s RMS monitor reporting every 6 s.
func DefaultConfig() Config {
	return Config{
		ProcessorConfig: core.DefaultProcessorConfig(),
		Kind:            KindRMS,
		Window:          defaultWindow,
		Interval:        defaultInterval,
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// WithSampleRate sets the sample rate.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) {
		core.WithSampleRate(sampleRate)(&cfg.ProcessorConfig)
	}
}

// WithBlockSize sets the block size used for interleaved input.
func WithBlockSize(blockSize int) Option {
	return func(cfg *Config) {
		core.WithBlockSize(blockSize)(&cfg.ProcessorConfig)
	}
}

// WithKind selects the measurement.
func WithKind(kind Kind) Option {
	return func(cfg *Config) {
		cfg.Kind = kind
	}
}

// WithWindow sets the RMS window length. Non-positive values are ignored.
func WithWindow(seconds float64) Option {
	return func(cfg *Config) {
		if seconds > 0 && core.IsFinite(seconds) {
			cfg.Window = seconds
		}
	}
}

// WithInterval sets the time between readings. Non-positive values are
// ignored.
func WithInterval(seconds float64) Option {
	return func(cfg *Config) {
		if seconds > 0 && core.IsFinite(seconds) {
			cfg.Interval = seconds
		}
	}
}

// WithReporter sets the reading destination and its id. An empty id selects
// the kind's default.
func WithReporter(r report.Reporter, id string) Option {
	return func(cfg *Config) {
		cfg.Reporter = r
		cfg.ID = id
	}
}

// Validate reports whether the config can drive a monitor.
func (c Config) Validate() error {
	if err := c.ProcessorConfig.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if c.Kind < KindRMS || c.Kind > KindLoudness {
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidConfig, int(c.Kind))
	}

	if c.Interval*c.SampleRate < 1 || math.IsInf(c.Interval, 0) {
		return fmt.Errorf("%w: interval %f is shorter than one sample", ErrInvalidConfig, c.Interval)
	}

	return nil
}
