package loudness_test

import (
	"fmt"
	"math"

	"github.com/rapilodev/rms-leveler/measure/loudness"
)

func ExampleMeter() {
	m := loudness.NewMeter(loudness.WithSampleRate(48000))

	// Three seconds of a 1 kHz tone at 0.1 peak on both channels. Each
	// channel alone reads about -23 LUFS; the pair adds 3 dB.
	frame := make([]float64, 2)
	for i := range 3 * 48000 {
		v := 0.1 * math.Sin(2*math.Pi*1000.0/48000*float64(i))
		frame[0], frame[1] = v, v
		m.ProcessSample(frame)
	}

	peaks := m.Peaks()
	fmt.Printf("short-term: %.1f LUFS\n", m.ShortTerm())
	fmt.Printf("peaks: %.2f %.2f\n", peaks[0], peaks[1])
	// Output:
	// short-term: -20.0 LUFS
	// peaks: 0.10 0.10
}

func ExampleWindowMeter() {
	w := loudness.NewWindowMeter(loudness.WithSampleRate(48000), loudness.WithMaxWindow(6))

	// One second at -20 dB peak.
	for i := range 48000 {
		w.Push(0.1 * math.Sin(2*math.Pi*1000.0/48000*float64(i)))
	}

	fmt.Printf("last 6s: %.1f LUFS\n", w.LoudnessDB(6))
	// Output:
	// last 6s: -23.0 LUFS
}
