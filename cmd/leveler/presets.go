package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rapilodev/rms-leveler/dsp/leveler"
	"github.com/rapilodev/rms-leveler/internal/cli"
)

// PresetsCmd lists presets.
type PresetsCmd struct{}

// Run executes the command.
func (c *PresetsCmd) Run(_ *Globals) error {
	var rows [][]string

	for _, p := range leveler.Presets() {
		windows := make([]string, 0, len(p.Config.Windows))
		for _, w := range p.Config.Windows {
			windows = append(windows, strconv.FormatFloat(w, 'g', -1, 64))
		}

		lookahead := "no"
		if p.Config.Lookahead {
			lookahead = "yes"
		}

		rows = append(rows, []string{
			p.Name,
			p.Config.Mode.String(),
			p.Config.Metric.String(),
			strings.Join(windows, "/"),
			lookahead,
			fmt.Sprintf("%.2f", p.Config.MaxChangePerSecond),
			p.Description,
		})
	}

	fmt.Fprint(os.Stdout, cli.Table(
		[]string{"NAME", "MODE", "METRIC", "WINDOWS", "LOOKAHEAD", "MAX/S", "DESCRIPTION"},
		rows,
	))

	return nil
}
