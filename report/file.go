package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// DefaultLogDir is used when no log directory is configured.
const DefaultLogDir = "/var/log/monitor"

// DailyFile appends one line per report to <dir>/<YYYY-MM-DD>-<id>. The file
// is opened per report so that rotation by date needs no state.
type DailyFile struct {
	dir  string
	opts options
	fail *failure
}

// NewDailyFile returns a file sink below dir. An empty dir selects
// DefaultLogDir.
func NewDailyFile(dir string, opts ...Option) *DailyFile {
	if dir == "" {
		dir = DefaultLogDir
	}

	o := applyOptions(opts)

	return &DailyFile{
		dir:  dir,
		opts: o,
		fail: &failure{sink: "file", logger: o.logger},
	}
}

// Path returns the file that a report for id would be written to now.
func (d *DailyFile) Path(id string) string {
	return filepath.Join(d.dir, d.opts.now().Format(dateLayout)+"-"+id)
}

// Report appends one line.
func (d *DailyFile) Report(id string, left, right float64) {
	now := d.opts.now()
	path := filepath.Join(d.dir, now.Format(dateLayout)+"-"+id)

	if err := appendLine(path, now.Format(timeLayout)+"\t"+formatValues(left, right)); err != nil {
		d.fail.record(err, logrus.Fields{"path": path})
	}
}

// Failures returns the number of lines that could not be written.
func (d *DailyFile) Failures() int { return d.fail.Failures() }

func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	if _, err := fmt.Fprintln(f, line); err != nil {
		_ = f.Close()
		return fmt.Errorf("write log file: %w", err)
	}

	return f.Close()
}
