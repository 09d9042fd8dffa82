package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rapilodev/rms-leveler/internal/pcm"
	"github.com/rapilodev/rms-leveler/internal/ui"
	"github.com/sirupsen/logrus"
)

// StreamFlags describe the raw PCM stream on stdin and stdout.
type StreamFlags struct {
	SampleRate float64 `short:"r" default:"48000" help:"Sample rate in Hz."`
	Format     string  `short:"f" default:"f32le" enum:"f32le,s16le" help:"Sample format."`
	BlockSize  int     `default:"1024" help:"Frames per processing block."`
	TUI        bool    `help:"Show a live meter on the terminal."`
}

// processor is the block operation shared by the engine and the monitors.
type processor func(in, out []float64)

// sampler returns the current reading for the live view.
type sampler func(frames int64) ui.LevelMsg

// stream pumps stdin through proc to stdout until end of input, an error,
// or a termination signal.
func stream(s StreamFlags, title string, target, floor float64, proc processor, sample sampler,
	logger *logrus.Logger,
) error {
	format, err := pcm.ParseFormat(s.Format)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !s.TUI {
		return pump(ctx, s, format, proc, nil, logger)
	}

	model := ui.NewModel(title, s.SampleRate, target, floor)
	p := tea.NewProgram(model, tea.WithInputTTY(), tea.WithOutput(os.Stderr))

	// Roughly ten updates per second.
	every := max(int64(s.SampleRate/10), 1)
	var next int64

	progress := func(frames int64) {
		if frames >= next {
			next = frames + every
			p.Send(sample(frames))
		}
	}

	done := make(chan error, 1)

	go func() {
		err := pump(ctx, s, format, proc, progress, logger)
		p.Send(ui.DoneMsg{Err: err})
		done <- err
	}()

	if _, err := p.Run(); err != nil {
		stop()
		<-done

		return fmt.Errorf("ui: %w", err)
	}

	stop()

	return <-done
}

func pump(ctx context.Context, s StreamFlags, format pcm.Format, proc processor, progress func(int64),
	logger *logrus.Logger,
) error {
	r := pcm.NewReader(os.Stdin, format)
	w := pcm.NewWriter(os.Stdout, format)

	in := make([]float64, 2*s.BlockSize)
	out := make([]float64, 2*s.BlockSize)

	var frames int64

	defer func() {
		logger.WithFields(logrus.Fields{
			"frames":  frames,
			"seconds": float64(frames) / s.SampleRate,
		}).Info("stream finished")
	}()

	for ctx.Err() == nil {
		n, err := r.Read(in)
		if errors.Is(err, io.EOF) {
			break
		}

		if n -= n % 2; n > 0 {
			proc(in[:n], out[:n])

			if werr := w.Write(out[:n]); werr != nil {
				return werr
			}

			frames += int64(n / 2)
			if progress != nil {
				progress(frames)
			}
		}

		if errors.Is(err, pcm.ErrTruncated) {
			logger.WithError(err).Warn("dropping incomplete trailing sample")
			break
		}

		if err != nil {
			return err
		}
	}

	return w.Flush()
}
