package report

import (
	"fmt"
	"io"
	"sync"
)

// Console writes one timestamped line per report:
//
//	2006-01-02 15:04:05 <id> <left>\t<right>
//
// The id is omitted when empty.
type Console struct {
	w    io.Writer
	opts options
	fail *failure
	mu   sync.Mutex
}

// NewConsole returns a console sink writing to w.
func NewConsole(w io.Writer, opts ...Option) *Console {
	o := applyOptions(opts)

	return &Console{
		w:    w,
		opts: o,
		fail: &failure{sink: "console", logger: o.logger},
	}
}

// Report writes one line.
func (c *Console) Report(id string, left, right float64) {
	prefix := c.opts.now().Format(timeLayout)
	if id != "" {
		prefix += " " + id
	}

	c.mu.Lock()
	_, err := fmt.Fprintf(c.w, "%s %s\n", prefix, formatValues(left, right))
	c.mu.Unlock()

	if err != nil {
		c.fail.record(err, nil)
	}
}

// Failures returns the number of lines that could not be written.
func (c *Console) Failures() int { return c.fail.Failures() }
