package dynamics

import (
	"testing"

	"github.com/rapilodev/rms-leveler/internal/testutil"
)

func BenchmarkLimit(b *testing.B) {
	x := 1.3
	for b.Loop() {
		_ = Limit(x)
	}
}

func BenchmarkLimitBlock512(b *testing.B) {
	src := testutil.DeterministicSine(440, 48000, 1.5, 512)
	buf := make([]float64, len(src))

	for b.Loop() {
		copy(buf, src)
		LimitBlock(buf)
	}
}
