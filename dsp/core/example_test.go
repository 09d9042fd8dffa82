package core_test

import (
	"fmt"

	"github.com/rapilodev/rms-leveler/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(44100),
		core.WithBlockSize(256),
	)

	fmt.Printf("sampleRate=%.0f blockSize=%d window=%d\n", cfg.SampleRate, cfg.BlockSize, cfg.Samples(6))

	// Output:
	// sampleRate=44100 blockSize=256 window=264600
}

func ExampleDeinterleave() {
	left := make([]float64, 2)
	right := make([]float64, 2)

	n := core.Deinterleave(left, right, []float64{0.1, -0.1, 0.2, -0.2})
	fmt.Println(n, left, right)

	// Output:
	// 2 [0.1 0.2] [-0.1 -0.2]
}
