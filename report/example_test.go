package report_test

import (
	"os"
	"time"

	"github.com/rapilodev/rms-leveler/report"
)

func ExampleConsole() {
	clock := func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	c := report.NewConsole(os.Stdout, report.WithClock(clock))

	c.Report("rms-out", -20.25, -21)
	// Output:
	// 2024-01-02 03:04:05 rms-out -20.250	-21.000
}
