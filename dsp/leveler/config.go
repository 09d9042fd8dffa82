package leveler

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/rapilodev/rms-leveler/dsp/core"
	"github.com/rapilodev/rms-leveler/dsp/interp"
)

const (
	defaultTargetDB       = -20.0
	defaultFloorDB        = -40.0
	defaultAdjustRate     = 0.333
	defaultMaxChange      = 0.7
	defaultWindow         = 6.0
	defaultMakeupHeadroom = 1.0

	// MaxWindows is the largest number of windows per channel.
	MaxWindows = 3

	// MinInputGainDB and MaxInputGainDB bound the input trim.
	MinInputGainDB = -24.0
	MaxInputGainDB = 24.0
)

// Mode selects the gain policy.
type Mode int

const (
	// ModeLeveler raises and lowers gain toward the target.
	ModeLeveler Mode = iota
	// ModeLimiter only lowers gain; it never exceeds unity.
	ModeLimiter
)

func (m Mode) String() string {
	switch m {
	case ModeLeveler:
		return "leveler"
	case ModeLimiter:
		return "limiter"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "leveler" or "limiter".
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(name) {
	case "leveler", "":
		return ModeLeveler, nil
	case "limiter":
		return ModeLimiter, nil
	default:
		return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, name)
	}
}

// Metric selects where window loudness comes from.
type Metric int

const (
	// MetricRMS uses the ring window's running power.
	MetricRMS Metric = iota
	// MetricLoudness asks a LoudnessSource, K-weighted by default.
	MetricLoudness
)

func (m Metric) String() string {
	switch m {
	case MetricRMS:
		return "rms"
	case MetricLoudness:
		return "loudness"
	default:
		return fmt.Sprintf("Metric(%d)", int(m))
	}
}

// Reporter receives periodic per-channel loudness readings.
type Reporter interface {
	Report(id string, left, right float64)
}

// Config is the complete engine configuration.
type Config struct {
	core.ProcessorConfig

	TargetDB float64
	// FloorDB is the loudness below which gain is held.
	FloorDB float64
	// AdjustRate is the time between gain recomputations in seconds.
	AdjustRate float64
	// MaxChangePerSecond bounds the upward gain change.
	MaxChangePerSecond float64
	// Windows holds up to MaxWindows durations in seconds. Zero entries are
	// inactive; the first active one is the primary window that feeds the
	// output tap and DC offset.
	Windows []float64

	Mode      Mode
	Lookahead bool

	// InputGainDB trims the input before measurement.
	InputGainDB float64
	// MakeupHeadroom is the limiter's idle gain before input trim
	// compensation.
	MakeupHeadroom float64

	Curve  interp.Curve
	Metric Metric
	// Sources builds the loudness source per window for MetricLoudness.
	// Nil selects the K-weighted window meter.
	Sources SourceFactory

	Reporter Reporter
	ReportID string
	// ReportInterval is the time between reports in seconds. Zero disables
	// reporting.
	ReportInterval float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a 6 second RMS leveler with lookahead at 48 kHz.
func DefaultConfig() Config {
	return Config{
		ProcessorConfig:    core.DefaultProcessorConfig(),
		TargetDB:           defaultTargetDB,
		FloorDB:            defaultFloorDB,
		AdjustRate:         defaultAdjustRate,
		MaxChangePerSecond: defaultMaxChange,
		Windows:            []float64{defaultWindow},
		Mode:               ModeLeveler,
		Lookahead:          true,
		MakeupHeadroom:     defaultMakeupHeadroom,
		Curve:              interp.CurveSmoothstep,
		Metric:             MetricRMS,
	}
}

// ApplyOptions applies options to DefaultConfig.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// WithConfig replaces the whole config. Later options still apply.
func WithConfig(c Config) Option {
	return func(cfg *Config) {
		*cfg = c
		cfg.Windows = slices.Clone(c.Windows)
	}
}

// WithSampleRate sets the sample rate in Hz.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) {
		if sampleRate > 0 && core.IsFinite(sampleRate) {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the internal chunk size used for input trim.
func WithBlockSize(blockSize int) Option {
	return func(cfg *Config) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// WithTarget sets the target loudness in dB.
func WithTarget(db float64) Option {
	return func(cfg *Config) {
		if core.IsFinite(db) {
			cfg.TargetDB = db
		}
	}
}

// WithFloor sets the hold floor in dB.
func WithFloor(db float64) Option {
	return func(cfg *Config) {
		if core.IsFinite(db) {
			cfg.FloorDB = db
		}
	}
}

// WithAdjustRate sets the recompute interval in seconds.
func WithAdjustRate(seconds float64) Option {
	return func(cfg *Config) {
		if seconds > 0 && core.IsFinite(seconds) {
			cfg.AdjustRate = seconds
		}
	}
}

// WithMaxChange sets the maximum upward gain change per second.
func WithMaxChange(perSecond float64) Option {
	return func(cfg *Config) {
		if perSecond > 0 && core.IsFinite(perSecond) {
			cfg.MaxChangePerSecond = perSecond
		}
	}
}

// WithWindows sets the window durations in seconds.
func WithWindows(durations ...float64) Option {
	return func(cfg *Config) {
		if len(durations) > 0 {
			cfg.Windows = slices.Clone(durations)
		}
	}
}

// WithMode selects leveler or limiter behavior.
func WithMode(mode Mode) Option {
	return func(cfg *Config) {
		if mode == ModeLeveler || mode == ModeLimiter {
			cfg.Mode = mode
		}
	}
}

// WithLookahead enables or disables the delayed output tap.
func WithLookahead(enabled bool) Option {
	return func(cfg *Config) {
		cfg.Lookahead = enabled
	}
}

// WithInputGainDB sets the input trim, clamped to the supported range.
func WithInputGainDB(db float64) Option {
	return func(cfg *Config) {
		if !math.IsNaN(db) {
			cfg.InputGainDB = core.Clamp(db, MinInputGainDB, MaxInputGainDB)
		}
	}
}

// WithMakeupHeadroom sets the limiter idle gain.
func WithMakeupHeadroom(linear float64) Option {
	return func(cfg *Config) {
		if linear > 0 && core.IsFinite(linear) {
			cfg.MakeupHeadroom = linear
		}
	}
}

// WithCurve selects the gain ramp shape.
func WithCurve(curve interp.Curve) Option {
	return func(cfg *Config) {
		cfg.Curve = curve
	}
}

// WithMetric selects RMS or source-provided loudness.
func WithMetric(metric Metric) Option {
	return func(cfg *Config) {
		if metric == MetricRMS || metric == MetricLoudness {
			cfg.Metric = metric
		}
	}
}

// WithSourceFactory installs a custom loudness source and selects
// MetricLoudness.
func WithSourceFactory(factory SourceFactory) Option {
	return func(cfg *Config) {
		if factory != nil {
			cfg.Sources = factory
			cfg.Metric = MetricLoudness
		}
	}
}

// WithReporter sends periodic loudness readings to r under id.
func WithReporter(r Reporter, id string) Option {
	return func(cfg *Config) {
		if r != nil {
			cfg.Reporter = r
			cfg.ReportID = id
		}
	}
}

// WithReportInterval sets the reporting interval in seconds.
func WithReportInterval(seconds float64) Option {
	return func(cfg *Config) {
		if seconds >= 0 && core.IsFinite(seconds) {
			cfg.ReportInterval = seconds
		}
	}
}

// MaxGainStep returns the largest upward gain change per adjust period.
func (c Config) MaxGainStep() float64 {
	return c.MaxChangePerSecond * c.AdjustRate
}

// AdjustPeriod returns the adjust period in samples.
func (c Config) AdjustPeriod() int {
	return c.Samples(c.AdjustRate)
}

// ActiveWindows returns the number of non-zero window durations.
func (c Config) ActiveWindows() int {
	n := 0
	for _, d := range c.Windows {
		if d > 0 {
			n++
		}
	}

	return n
}

// Validate reports whether the config can build an engine.
func (c Config) Validate() error {
	if err := c.ProcessorConfig.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if !core.IsFinite(c.TargetDB) || !core.IsFinite(c.FloorDB) {
		return fmt.Errorf("%w: target %f and floor %f must be finite", ErrInvalidConfig, c.TargetDB, c.FloorDB)
	}

	if c.AdjustRate <= 0 || !core.IsFinite(c.AdjustRate) || c.AdjustPeriod() < 1 {
		return fmt.Errorf("%w: adjust rate must cover at least one sample: %f", ErrInvalidConfig, c.AdjustRate)
	}

	if c.MaxChangePerSecond <= 0 || !core.IsFinite(c.MaxChangePerSecond) {
		return fmt.Errorf("%w: max change must be positive: %f", ErrInvalidConfig, c.MaxChangePerSecond)
	}

	if len(c.Windows) == 0 || len(c.Windows) > MaxWindows {
		return fmt.Errorf("%w: need 1 to %d windows, got %d", ErrInvalidConfig, MaxWindows, len(c.Windows))
	}

	for i, d := range c.Windows {
		if d < 0 || !core.IsFinite(d) {
			return fmt.Errorf("%w: window %d duration must be >= 0: %f", ErrInvalidConfig, i, d)
		}
	}

	if c.ActiveWindows() == 0 {
		return fmt.Errorf("%w: no active window", ErrInvalidConfig)
	}

	if c.Mode != ModeLeveler && c.Mode != ModeLimiter {
		return fmt.Errorf("%w: unknown mode %d", ErrInvalidConfig, int(c.Mode))
	}

	if c.Metric != MetricRMS && c.Metric != MetricLoudness {
		return fmt.Errorf("%w: unknown metric %d", ErrInvalidConfig, int(c.Metric))
	}

	if c.MakeupHeadroom <= 0 || !core.IsFinite(c.MakeupHeadroom) {
		return fmt.Errorf("%w: makeup headroom must be positive: %f", ErrInvalidConfig, c.MakeupHeadroom)
	}

	if c.ReportInterval < 0 || !core.IsFinite(c.ReportInterval) {
		return fmt.Errorf("%w: report interval must be >= 0: %f", ErrInvalidConfig, c.ReportInterval)
	}

	return nil
}
