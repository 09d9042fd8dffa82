// Command leveler levels, limits and monitors raw stereo PCM streams.
//
// Usage:
//
//	leveler process [flags] < in.raw > out.raw
//	leveler monitor [flags] < in.raw > out.raw
//	leveler presets
//	leveler curve
//	leveler version
//
// Streams are interleaved stereo, 32-bit float or 16-bit integer, little
// endian. For example:
//
//	ffmpeg -i in.wav -f f32le -ac 2 -ar 48000 - | leveler process -p rms-limiter-6s | aplay -f FLOAT_LE -c 2 -r 48000
package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/rapilodev/rms-leveler/internal/cli"
	"github.com/sirupsen/logrus"
)

var version = "0.1.0"

// Globals are flags shared by every command.
type Globals struct {
	LogLevel  string `default:"info" enum:"debug,info,warn,error" help:"Diagnostic log level."`
	LogFormat string `default:"text" enum:"text,json" help:"Diagnostic log format."`

	logger *logrus.Logger `kong:"-"`
}

// CLI defines the command-line interface.
type CLI struct {
	Globals

	Process ProcessCmd `cmd:"" default:"withargs" help:"Level a stereo stream from stdin to stdout."`
	Monitor MonitorCmd `cmd:"" help:"Pass a stereo stream through and report its level."`
	Presets PresetsCmd `cmd:"" help:"List the built-in presets."`
	Curve   CurveCmd   `cmd:"" help:"Print the soft limiter transfer curve and distortion."`
	Version VersionCmd `cmd:"" help:"Show version and CPU information."`
}

func main() {
	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("leveler"),
		kong.Description("Real-time loudness leveler for raw PCM streams"),
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter("Real-time loudness leveler for raw PCM streams")),
	)

	cliArgs.logger = newLogger(cliArgs.LogLevel, cliArgs.LogFormat)

	if err := ctx.Run(&cliArgs.Globals); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}

func newLogger(level, format string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	if lvl, err := logrus.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}

	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}
