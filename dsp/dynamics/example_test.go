package dynamics_test

import (
	"fmt"

	"github.com/rapilodev/rms-leveler/dsp/dynamics"
)

func ExampleLimit() {
	for _, x := range []float64{0.5, -0.5, 1.0, 10} {
		fmt.Printf("%.4f -> %.4f\n", x, dynamics.Limit(x))
	}
	// Output:
	// 0.5000 -> 0.5000
	// -0.5000 -> -0.5000
	// 1.0000 -> 0.7404
	// 10.0000 -> 0.8913
}
