package report

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	timeLayout = "2006-01-02 15:04:05"
	dateLayout = "2006-01-02"
)

// Reporter receives one reading per reporting interval.
type Reporter interface {
	Report(id string, left, right float64)
}

// Func adapts a function to Reporter.
type Func func(id string, left, right float64)

// Report calls f.
func (f Func) Report(id string, left, right float64) { f(id, left, right) }

// Option configures a sink.
type Option func(*options)

type options struct {
	now    func() time.Time
	logger logrus.FieldLogger
}

func applyOptions(opts []Option) options {
	o := options{now: time.Now, logger: logrus.StandardLogger()}

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger replaces the standard logrus logger used for sink failures.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// failure logs the first error of a sink and counts the rest.
type failure struct {
	sink   string
	logger logrus.FieldLogger

	once  sync.Once
	mu    sync.Mutex
	count int
}

func (f *failure) record(err error, fields logrus.Fields) {
	f.mu.Lock()
	f.count++
	f.mu.Unlock()

	f.once.Do(func() {
		entry := f.logger.WithFields(logrus.Fields{
			"sink":  f.sink,
			"error": err,
		})
		entry.WithFields(fields).Error("report sink failed, suppressing further errors")
	})
}

// Failures returns how many reports the sink failed to deliver.
func (f *failure) Failures() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.count
}

// Multi fans a report out to every reporter in order.
type Multi []Reporter

// Report forwards to every non-nil reporter.
func (m Multi) Report(id string, left, right float64) {
	for _, r := range m {
		if r != nil {
			r.Report(id, left, right)
		}
	}
}

// Close closes every reporter that implements io.Closer.
func (m Multi) Close() error {
	var errs []error

	for _, r := range m {
		if c, ok := r.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}

	return errors.Join(errs...)
}

func formatValues(left, right float64) string {
	return fmt.Sprintf("%2.3f\t%2.3f", left, right)
}
