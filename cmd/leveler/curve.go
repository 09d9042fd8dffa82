package main

import (
	"fmt"
	"os"

	"github.com/rapilodev/rms-leveler/dsp/core"
	"github.com/rapilodev/rms-leveler/dsp/dynamics"
	"github.com/rapilodev/rms-leveler/internal/cli"
	"github.com/rapilodev/rms-leveler/measure/distortion"
)

// CurveCmd prints the soft limiter behaviour.
type CurveCmd struct {
	Steps  int       `default:"12" help:"Points on the transfer curve."`
	Max    float64   `default:"1.5" help:"Largest input magnitude on the curve."`
	Drives []float64 `default:"0.5,0.708,0.8,0.9,1,1.5,2" help:"Sine amplitudes for the distortion table."`
}

// Run executes the command.
func (c *CurveCmd) Run(_ *Globals) error {
	var rows [][]string

	for _, p := range distortion.Curve(dynamics.Limit, 0, c.Max, max(c.Steps, 1)) {
		rows = append(rows, []string{
			fmt.Sprintf("%.3f", p.In),
			fmt.Sprintf("%.3f", p.Out),
			dbCell(p.In),
			dbCell(p.Out),
		})
	}

	fmt.Fprintln(os.Stdout, cli.TitleStyle.Render("Transfer curve"))
	fmt.Fprint(os.Stdout, cli.Table([]string{"IN", "OUT", "IN DB", "OUT DB"}, rows))

	rows = rows[:0]

	for _, drive := range c.Drives {
		cfg := distortion.DefaultConfig()
		cfg.Amplitude = drive

		res, err := distortion.Analyze(dynamics.Limit, cfg)
		if err != nil {
			return fmt.Errorf("drive %.3f: %w", drive, err)
		}

		rows = append(rows, []string{
			fmt.Sprintf("%.3f", drive),
			fmt.Sprintf("%.3f", res.Peak),
			fmt.Sprintf("%.2f", core.LinearToDB(res.Gain)),
			fmt.Sprintf("%.3f%%", 100*res.THD),
		})
	}

	fmt.Fprintln(os.Stdout)
	fmt.Fprintln(os.Stdout, cli.TitleStyle.Render(fmt.Sprintf("Distortion at %.0f Hz", distortion.DefaultConfig().Frequency())))
	fmt.Fprint(os.Stdout, cli.Table([]string{"DRIVE", "PEAK", "GAIN DB", "THD"}, rows))

	return nil
}

func dbCell(v float64) string {
	if v <= 0 {
		return "-inf"
	}

	return fmt.Sprintf("%.2f", core.LinearToDB(v))
}
