package main

import (
	"os"

	"github.com/rapilodev/rms-leveler/report"
	"github.com/sirupsen/logrus"
)

// SinkFlags select where periodic readings go.
type SinkFlags struct {
	ReportInterval float64 `default:"6" help:"Seconds between readings."`
	ReportID       string  `help:"Reading id; defaults to one derived from the command."`
	Console        bool    `help:"Print readings to stderr."`
	LogDir         string  `env:"MONITOR_LOG_DIR" type:"path" help:"Append readings to daily files in this directory."`
	Broadcast      string  `placeholder:"ADDR" help:"Send readings as UDP datagrams to ADDR, e.g. 255.255.255.255:65432."`
}

func (s SinkFlags) any() bool {
	return s.Console || s.LogDir != "" || s.Broadcast != ""
}

// reporter builds an asynchronous fan-out over the selected sinks. It
// returns nil when no sink is selected. The caller closes it.
func (s SinkFlags) reporter(logger *logrus.Logger) (*report.Async, error) {
	opts := []report.Option{report.WithLogger(logger)}

	var sinks report.Multi

	if s.Console {
		sinks = append(sinks, report.NewConsole(os.Stderr, opts...))
	}

	if s.LogDir != "" {
		sinks = append(sinks, report.NewDailyFile(s.LogDir, opts...))
	}

	if s.Broadcast != "" {
		b, err := report.NewBroadcast(s.Broadcast, opts...)
		if err != nil {
			return nil, err
		}

		sinks = append(sinks, b)
	}

	if len(sinks) == 0 {
		return nil, nil
	}

	logger.WithFields(logrus.Fields{
		"console":   s.Console,
		"log_dir":   s.LogDir,
		"broadcast": s.Broadcast,
		"interval":  s.ReportInterval,
	}).Debug("reporting enabled")

	return report.NewAsync(sinks, report.DefaultQueue), nil
}

func (s SinkFlags) id(fallback string) string {
	if s.ReportID != "" {
		return s.ReportID
	}

	return fallback
}
