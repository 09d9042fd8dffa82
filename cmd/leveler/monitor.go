package main

import (
	"github.com/rapilodev/rms-leveler/measure/monitor"
	"github.com/rapilodev/rms-leveler/internal/ui"
	"github.com/sirupsen/logrus"
)

// MonitorCmd passes a stream through and reports its level.
type MonitorCmd struct {
	StreamFlags `embed:""`
	SinkFlags   `embed:""`

	Kind   string  `short:"k" default:"rms" enum:"rms,peak,loudness" help:"Measurement."`
	Window float64 `default:"6" help:"RMS window in seconds."`
}

// Run executes the command.
func (c *MonitorCmd) Run(g *Globals) error {
	kind, err := monitor.ParseKind(c.Kind)
	if err != nil {
		return err
	}

	sinks := c.SinkFlags
	if !sinks.any() {
		sinks.Console = true
	}

	rep, err := sinks.reporter(g.logger)
	if err != nil {
		return err
	}
	defer rep.Close()

	m, err := monitor.New(
		monitor.WithKind(kind),
		monitor.WithSampleRate(c.SampleRate),
		monitor.WithBlockSize(c.BlockSize),
		monitor.WithWindow(c.Window),
		monitor.WithInterval(c.ReportInterval),
		monitor.WithReporter(rep, sinks.id(kind.DefaultID())),
	)
	if err != nil {
		return err
	}
	defer m.Close()

	cfg := m.Config()
	g.logger.WithFields(logrus.Fields{
		"kind":     cfg.Kind,
		"id":       cfg.ID,
		"interval": cfg.Interval,
	}).Info("monitor started")

	sample := func(frames int64) ui.LevelMsg {
		l, r := m.Last()

		return ui.LevelMsg{LoudnessL: l, LoudnessR: r, GainL: 1, GainR: 1, Frames: frames}
	}

	return stream(c.StreamFlags, "monitor "+cfg.ID, -20, -60, m.ProcessInterleaved, sample, g.logger)
}
