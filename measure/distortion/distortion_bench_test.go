package distortion

import (
	"testing"

	"github.com/rapilodev/rms-leveler/dsp/dynamics"
)

func BenchmarkAnalyze(b *testing.B) {
	cfg := DefaultConfig()

	for b.Loop() {
		_, _ = Analyze(dynamics.Limit, cfg)
	}
}
