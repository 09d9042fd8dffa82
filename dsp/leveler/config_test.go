package leveler

import (
	"errors"
	"math"
	"testing"

	"github.com/rapilodev/rms-leveler/dsp/interp"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.SampleRate != 48000 || cfg.TargetDB != -20 || cfg.FloorDB != -40 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.AdjustPeriod() != 15984 {
		t.Fatalf("AdjustPeriod = %d, want 15984", cfg.AdjustPeriod())
	}
	if math.Abs(cfg.MaxGainStep()-0.2331) > 1e-12 {
		t.Fatalf("MaxGainStep = %v, want 0.2331", cfg.MaxGainStep())
	}
	if cfg.Mode != ModeLeveler || !cfg.Lookahead || cfg.Curve != interp.CurveSmoothstep {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestOptionsIgnoreInvalidValues(t *testing.T) {
	cfg := ApplyOptions(
		WithSampleRate(-1),
		WithSampleRate(math.Inf(1)),
		WithBlockSize(0),
		WithTarget(math.NaN()),
		WithAdjustRate(0),
		WithMaxChange(-1),
		WithWindows(),
		WithMode(Mode(7)),
		WithMakeupHeadroom(0),
		WithMetric(Metric(9)),
		WithSourceFactory(nil),
		WithReporter(nil, "x"),
		WithReportInterval(-1),
		nil,
	)
	def := DefaultConfig()

	if cfg.SampleRate != def.SampleRate || cfg.BlockSize != def.BlockSize || cfg.TargetDB != def.TargetDB ||
		cfg.AdjustRate != def.AdjustRate || cfg.MaxChangePerSecond != def.MaxChangePerSecond ||
		len(cfg.Windows) != 1 || cfg.Mode != def.Mode || cfg.MakeupHeadroom != def.MakeupHeadroom ||
		cfg.Metric != def.Metric || cfg.Reporter != nil || cfg.ReportInterval != 0 {
		t.Fatalf("invalid options changed config: %+v", cfg)
	}
}

func TestWithInputGainDBClamps(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{-6, -6},
		{30, MaxInputGainDB},
		{-100, MinInputGainDB},
	}

	for _, tt := range tests {
		if got := ApplyOptions(WithInputGainDB(tt.in)).InputGainDB; got != tt.want {
			t.Fatalf("WithInputGainDB(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWithConfigCopiesWindows(t *testing.T) {
	base := ApplyOptions(WithWindows(6, 3))
	cfg := ApplyOptions(WithConfig(base), WithSampleRate(44100))
	base.Windows[0] = 1

	if cfg.Windows[0] != 6 || cfg.SampleRate != 44100 {
		t.Fatalf("WithConfig did not copy: %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero sample rate", func(c *Config) { c.SampleRate = 0 }},
		{"zero block size", func(c *Config) { c.BlockSize = 0 }},
		{"nan target", func(c *Config) { c.TargetDB = math.NaN() }},
		{"sub-sample adjust rate", func(c *Config) { c.AdjustRate = 1e-9 }},
		{"zero max change", func(c *Config) { c.MaxChangePerSecond = 0 }},
		{"no windows", func(c *Config) { c.Windows = nil }},
		{"four windows", func(c *Config) { c.Windows = []float64{1, 2, 3, 4} }},
		{"negative window", func(c *Config) { c.Windows = []float64{6, -1} }},
		{"only inactive windows", func(c *Config) { c.Windows = []float64{0, 0} }},
		{"unknown mode", func(c *Config) { c.Mode = Mode(5) }},
		{"unknown metric", func(c *Config) { c.Metric = Metric(5) }},
		{"zero headroom", func(c *Config) { c.MakeupHeadroom = 0 }},
		{"negative report interval", func(c *Config) { c.ReportInterval = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("Limiter"); err != nil || m != ModeLimiter {
		t.Fatalf("ParseMode(Limiter) = %v, %v", m, err)
	}
	if m, err := ParseMode(""); err != nil || m != ModeLeveler {
		t.Fatalf("ParseMode(\"\") = %v, %v", m, err)
	}
	if _, err := ParseMode("gate"); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("ParseMode(gate) err = %v", err)
	}
	if ModeLimiter.String() != "limiter" || MetricLoudness.String() != "loudness" {
		t.Fatal("unexpected String output")
	}
}
