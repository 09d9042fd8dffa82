// Package control carries runtime parameter changes from other goroutines
// to the audio loop.
package control

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// Value is a float64 written by any goroutine and consumed by the audio
// loop. Take reports each new value once.
type Value struct {
	value   atomic.Float64
	pending atomic.Bool
}

// Set publishes v. NaN is ignored.
func (v *Value) Set(x float64) {
	if math.IsNaN(x) {
		return
	}

	v.value.Store(x)
	v.pending.Store(true)
}

// Take returns the latest value if it was set since the last Take.
func (v *Value) Take() (float64, bool) {
	if !v.pending.CompareAndSwap(true, false) {
		return 0, false
	}

	return v.value.Load(), true
}

// ReadFile parses a file holding one number, surrounding whitespace and an
// optional "dB" suffix allowed.
func ReadFile(path string) (float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("control: %w", err)
	}

	text := strings.TrimSpace(string(data))
	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(text, "dB"), "db"))

	x, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("control: %s: %w", path, err)
	}

	return x, nil
}

// WatchFile loads path into v, then reloads it whenever it is written or
// replaced until ctx is done. The parent directory is watched so that
// editors that save by rename are seen. Unparsable contents are logged and
// skipped.
func WatchFile(ctx context.Context, path string, v *Value, logger logrus.FieldLogger) error {
	log := logger.WithField("file", path)

	if x, err := ReadFile(path); err == nil {
		v.Set(x)
	} else if !errors.Is(err, os.ErrNotExist) {
		log.WithError(err).Warn("ignoring control file")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("control: watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("control: watch %s: %w", path, err)
	}

	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != target || (!event.Has(fsnotify.Write) && !event.Has(fsnotify.Create)) {
				continue
			}

			x, err := ReadFile(path)
			if err != nil {
				log.WithError(err).Warn("ignoring control file")
				continue
			}

			log.WithField("value", x).Info("control value changed")
			v.Set(x)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			log.WithError(err).Warn("watcher error")
		}
	}
}
