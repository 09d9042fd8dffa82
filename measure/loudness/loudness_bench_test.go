package loudness

import (
	"fmt"
	"testing"
)

func BenchmarkMeterProcessBlock(b *testing.B) {
	for _, ch := range []int{1, 2} {
		b.Run(fmt.Sprintf("channels=%d", ch), func(b *testing.B) {
			meter := NewMeter(WithChannels(ch))
			meter.StartIntegration()

			block := make([]float64, 1024*ch)
			for i := range block {
				block[i] = float64(i%64)/64 - 0.5
			}

			b.SetBytes(int64(len(block) * 8))

			for b.Loop() {
				meter.ProcessBlock(block)
			}
		})
	}
}

func BenchmarkWindowMeter(b *testing.B) {
	w := NewWindowMeter(WithMaxWindow(6))
	for i := range 48000 {
		w.Push(float64(i%100) / 100)
	}

	b.ResetTimer()

	for i := range b.N {
		w.Push(0.25)
		if i%16000 == 0 {
			_ = w.LoudnessDB(6)
		}
	}
}
