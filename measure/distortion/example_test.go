package distortion_test

import (
	"fmt"

	"github.com/rapilodev/rms-leveler/measure/distortion"
)

func ExampleAnalyze() {
	cfg := distortion.DefaultConfig()
	cfg.Amplitude = 0.5

	res, err := distortion.Analyze(func(x float64) float64 { return x * x * x }, cfg)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("f=%.0f Hz THD=%.1f%%\n", res.Frequency, res.THD*100)
	// Output:
	// f=750 Hz THD=33.3%
}
