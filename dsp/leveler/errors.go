package leveler

import "errors"

var (
	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("leveler: invalid config")
	// ErrUnknownPreset is returned by Preset for names it does not know.
	ErrUnknownPreset = errors.New("leveler: unknown preset")
)
