package main

import (
	"context"
	"fmt"

	"github.com/rapilodev/rms-leveler/dsp/interp"
	"github.com/rapilodev/rms-leveler/dsp/leveler"
	"github.com/rapilodev/rms-leveler/internal/control"
	"github.com/rapilodev/rms-leveler/internal/ui"
	"github.com/sirupsen/logrus"
)

// ProcessCmd levels a stream.
type ProcessCmd struct {
	StreamFlags `embed:""`
	SinkFlags   `embed:""`

	Preset    string  `short:"p" default:"rms-leveler-6s" help:"Preset name, see 'leveler presets'."`
	InputGain float64 `short:"g" default:"0" help:"Input trim in dB, clamped to [-24, 24]."`
	Ramp      string  `default:"smoothstep" enum:"linear,smoothstep,smootherstep,smootheststep" help:"Gain ramp between updates."`
	GainFile  string  `type:"path" help:"File holding the input trim in dB; reloaded when it changes."`
}

// Run executes the command.
func (c *ProcessCmd) Run(g *Globals) error {
	base, err := leveler.Preset(c.Preset)
	if err != nil {
		return err
	}

	ramp, err := interp.ParseCurve(c.Ramp)
	if err != nil {
		return err
	}

	opts := []leveler.Option{
		leveler.WithConfig(base),
		leveler.WithSampleRate(c.SampleRate),
		leveler.WithBlockSize(c.BlockSize),
		leveler.WithInputGainDB(c.InputGain),
		leveler.WithCurve(ramp),
	}

	rep, err := c.reporter(g.logger)
	if err != nil {
		return err
	}

	if rep != nil {
		defer rep.Close()
		opts = append(opts,
			leveler.WithReporter(rep, c.id(c.Preset)),
			leveler.WithReportInterval(c.ReportInterval),
		)
	}

	engine, err := leveler.New(opts...)
	if err != nil {
		return fmt.Errorf("preset %s: %w", c.Preset, err)
	}
	defer engine.Close()

	cfg := engine.Config()
	g.logger.WithFields(logrus.Fields{
		"preset":      c.Preset,
		"mode":        cfg.Mode,
		"metric":      cfg.Metric,
		"windows":     cfg.Windows,
		"sample_rate": cfg.SampleRate,
		"latency":     engine.Latency(),
		"input_gain":  engine.InputGainDB(),
	}).Info("leveler started")

	sample := func(frames int64) ui.LevelMsg {
		l, r := engine.Loudness()
		gl, gr := engine.Gains()

		return ui.LevelMsg{LoudnessL: l, LoudnessR: r, GainL: gl, GainR: gr, Frames: frames}
	}

	proc := engine.ProcessInterleaved

	if c.GainFile != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var trim control.Value

		go func() {
			if err := control.WatchFile(ctx, c.GainFile, &trim, g.logger); err != nil {
				g.logger.WithError(err).Error("input gain file not watched")
			}
		}()

		proc = func(in, out []float64) {
			if db, ok := trim.Take(); ok {
				engine.SetInputGainDB(db)
			}

			engine.ProcessInterleaved(in, out)
		}
	}

	err = stream(c.StreamFlags, c.Preset, cfg.TargetDB, cfg.FloorDB, proc, sample, g.logger)

	if rep != nil && rep.Dropped() > 0 {
		g.logger.WithField("dropped", rep.Dropped()).Warn("readings dropped")
	}

	return err
}
