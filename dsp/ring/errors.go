package ring

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidConfig is returned for negative, NaN or infinite settings.
	ErrInvalidConfig = errors.New("ring: invalid window config")
	// ErrTooLarge is returned when a window would exceed MaxCapacity samples.
	ErrTooLarge = errors.New("ring: window too large")
)

func validate(cfg Config) error {
	if cfg.SampleRate <= 0 || math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be positive and finite: %f", ErrInvalidConfig, cfg.SampleRate)
	}

	if cfg.Duration < 0 || math.IsNaN(cfg.Duration) || math.IsInf(cfg.Duration, 0) {
		return fmt.Errorf("%w: duration must be >= 0 and finite: %f", ErrInvalidConfig, cfg.Duration)
	}

	if cfg.AdjustRate <= 0 || math.IsNaN(cfg.AdjustRate) || math.IsInf(cfg.AdjustRate, 0) {
		return fmt.Errorf("%w: adjust rate must be positive and finite: %f", ErrInvalidConfig, cfg.AdjustRate)
	}

	return nil
}
