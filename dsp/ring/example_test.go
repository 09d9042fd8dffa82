package ring_test

import (
	"fmt"

	"github.com/rapilodev/rms-leveler/dsp/ring"
)

func ExampleWindow() {
	w, err := ring.New(ring.Config{SampleRate: 8, Duration: 0.5, AdjustRate: 0.25, Lookahead: true})
	if err != nil {
		panic(err)
	}
	defer w.Release()

	taps := make([]float64, 0, 6)
	for i := range 6 {
		w.Push(float64(i + 1))
		w.AccumulatePower()
		taps = append(taps, w.Tap())
		w.Advance()
	}
	fmt.Println(taps)
	fmt.Printf("filled=%d sum=%.0f dc=%.2f\n", w.Filled(), w.Sum(), w.DCOffset())
	// Output:
	// [0 0 1 2 3 4]
	// filled=4 sum=18 dc=4.50
}
