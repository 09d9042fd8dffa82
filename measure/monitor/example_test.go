package monitor_test

import (
	"fmt"

	"github.com/rapilodev/rms-leveler/measure/monitor"
	"github.com/rapilodev/rms-leveler/report"
)

func ExampleMonitor() {
	show := report.Func(func(id string, left, right float64) {
		fmt.Printf("%s %.2f %.2f\n", id, left, right)
	})

	m, err := monitor.New(
		monitor.WithKind(monitor.KindPeak),
		monitor.WithSampleRate(100),
		monitor.WithInterval(1),
		monitor.WithReporter(show, ""),
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer m.Close()

	left := make([]float64, 101)
	right := make([]float64, 101)
	left[3], right[50] = 0.5, -0.25

	m.Process(left, right, left, right)
	// Output:
	// peak-in -6.02 -12.04
}
