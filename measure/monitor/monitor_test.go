package monitor

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/rapilodev/rms-leveler/internal/testutil"
	"github.com/rapilodev/rms-leveler/report"
)

type reading struct {
	id          string
	left, right float64
}

type collector struct{ readings []reading }

func (c *collector) Report(id string, left, right float64) {
	c.readings = append(c.readings, reading{id, left, right})
}

func mustMonitor(t *testing.T, opts ...Option) *Monitor {
	t.Helper()
	m, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func feed(m *Monitor, left, right []float64, block int) {
	outL := make([]float64, block)
	outR := make([]float64, block)

	for offset := 0; offset < len(left); offset += block {
		end := min(offset+block, len(left))
		m.Process(left[offset:end], right[offset:end], outL, outR)
	}
}

func TestPassThrough(t *testing.T) {
	for _, kind := range []Kind{KindRMS, KindPeak, KindLoudness} {
		t.Run(kind.String(), func(t *testing.T) {
			m := mustMonitor(t, WithKind(kind), WithSampleRate(8000), WithWindow(0.5), WithInterval(0.1))
			left := testutil.DeterministicNoise(1, 0.5, 3000)
			right := testutil.DeterministicSine(440, 8000, 0.3, 3000)
			outL := make([]float64, len(left))
			outR := make([]float64, len(right))

			m.Process(left, right, outL, outR)

			if !slices.Equal(outL, left) || !slices.Equal(outR, right) {
				t.Fatal("output differs from input")
			}
		})
	}
}

func TestIntervalCounting(t *testing.T) {
	c := &collector{}
	m := mustMonitor(t, WithSampleRate(8000), WithWindow(1), WithInterval(1), WithReporter(c, ""))
	block := make([]float64, 8000)

	m.Process(block, block, block, block)
	if len(c.readings) != 0 {
		t.Fatalf("reading after exactly one interval: %v", c.readings)
	}

	m.Process(block, block, block, block)
	m.Process(block, block, block, block)
	if len(c.readings) != 2 || m.Readings() != 2 {
		t.Fatalf("got %d readings, want 2", len(c.readings))
	}
	if c.readings[0].id != "rms-out" {
		t.Fatalf("id = %q, want rms-out", c.readings[0].id)
	}
}

func TestRMSReading(t *testing.T) {
	c := &collector{}
	m := mustMonitor(t, WithSampleRate(8000), WithWindow(1), WithInterval(1), WithReporter(c, "rms-a"))

	left := testutil.SineAtRMSDB(1000, 8000, -30, 9000)
	right := testutil.SineAtRMSDB(1000, 8000, -12, 9000)
	feed(m, left, right, 1000)

	if len(c.readings) != 1 {
		t.Fatalf("got %d readings, want 1", len(c.readings))
	}

	r := c.readings[0]
	if r.id != "rms-a" || math.Abs(r.left+30) > 0.01 || math.Abs(r.right+12) > 0.01 {
		t.Fatalf("reading = %+v, want rms-a -30/-12", r)
	}

	if l, rr := m.Last(); l != r.left || rr != r.right {
		t.Fatalf("Last = %v/%v", l, rr)
	}
}

func TestPeakResetsPerReading(t *testing.T) {
	c := &collector{}
	m := mustMonitor(t, WithKind(KindPeak), WithSampleRate(1000), WithInterval(1), WithReporter(c, ""))

	// The first call overshoots the interval by one sample. The carry makes
	// the second call report as well.
	loud := make([]float64, 1001)
	loud[10] = -0.5
	quiet := make([]float64, 1001)

	m.Process(loud, quiet, make([]float64, 1001), make([]float64, 1001))
	m.Process(quiet, quiet, make([]float64, 1000), make([]float64, 1000))

	if len(c.readings) != 2 {
		t.Fatalf("got %d readings, want 2", len(c.readings))
	}

	first, second := c.readings[0], c.readings[1]
	if first.id != "peak-in" || math.Abs(first.left-20*math.Log10(0.5)) > 1e-9 || first.right != FloorDB {
		t.Fatalf("first = %+v", first)
	}
	if second.left != FloorDB {
		t.Fatalf("peak not reset: %+v", second)
	}
}

func TestLoudnessReading(t *testing.T) {
	const rate = 48000
	c := &collector{}
	m := mustMonitor(t, WithKind(KindLoudness), WithSampleRate(rate), WithInterval(3), WithReporter(c, ""))

	tone := testutil.DeterministicSine(1000, rate, 0.1, 3*rate+rate/10)
	silence := make([]float64, len(tone))
	feed(m, tone, silence, 4800)
	feed(m, silence, silence, 4800)

	if len(c.readings) != 2 {
		t.Fatalf("got %d readings, want 2", len(c.readings))
	}

	first := c.readings[0]
	if first.id != "ebur-out" || math.Abs(first.left+23) > 0.5 || first.right != FloorDB {
		t.Fatalf("first = %+v, want about -23 LUFS left", first)
	}
	if c.readings[1].left != FloorDB {
		t.Fatalf("meter not reset: %+v", c.readings[1])
	}
}

func TestInterleavedMatchesPlanar(t *testing.T) {
	const n = 5000
	left := testutil.DeterministicNoise(3, 0.4, n)
	right := testutil.DeterministicNoise(4, 0.2, n)

	planar := &collector{}
	a := mustMonitor(t, WithSampleRate(4000), WithWindow(0.5), WithInterval(0.5), WithReporter(planar, ""))
	feed(a, left, right, 512)

	interleaved := &collector{}
	b := mustMonitor(t, WithSampleRate(4000), WithWindow(0.5), WithInterval(0.5), WithBlockSize(300),
		WithReporter(interleaved, ""))

	in := make([]float64, 2*n)
	for i := range n {
		in[2*i], in[2*i+1] = left[i], right[i]
	}
	out := make([]float64, len(in))
	b.ProcessInterleaved(in, out)

	if !slices.Equal(in, out) {
		t.Fatal("interleaved output differs from input")
	}

	// Planar blocks report at block boundaries, interleaved once per call,
	// so only the final window contents are comparable.
	if len(interleaved.readings) != 1 {
		t.Fatalf("interleaved readings = %d, want 1", len(interleaved.readings))
	}
	al, ar := a.rms[0].RMSDB(), a.rms[1].RMSDB()
	bl, br := b.rms[0].RMSDB(), b.rms[1].RMSDB()
	if math.Abs(al-bl) > 1e-9 || math.Abs(ar-br) > 1e-9 {
		t.Fatalf("planar %v/%v, interleaved %v/%v", al, ar, bl, br)
	}
}

func TestCloseSilencesOutput(t *testing.T) {
	m := mustMonitor(t)
	in := testutil.DC(0.5, 16)
	out := testutil.DC(1, 16)

	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}

	m.Process(in, in, out, out)
	if testutil.Peak(out) != 0 {
		t.Fatal("closed monitor produced output")
	}

	inter := testutil.DC(0.5, 8)
	m.ProcessInterleaved(inter, out[:8])
	if testutil.Peak(out[:8]) != 0 {
		t.Fatal("closed monitor produced interleaved output")
	}
}

func TestConfig(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		ok   bool
	}{
		{"default", nil, true},
		{"bad kind", []Option{WithKind(Kind(7))}, false},
		{"interval shorter than a sample", []Option{WithSampleRate(100), WithInterval(0.001)}, false},
		{"ignored negative window", []Option{WithWindow(-1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.opts...)
			if tt.ok != (err == nil) {
				t.Fatalf("err = %v, want ok=%v", err, tt.ok)
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidConfig) || m != nil {
					t.Fatalf("err = %v, m = %v", err, m)
				}
				return
			}
			_ = m.Close()
		})
	}
}

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{"rms": KindRMS, "": KindRMS, "PEAK": KindPeak, "ebur": KindLoudness, "loudness": KindLoudness}
	for name, want := range tests {
		got, err := ParseKind(name)
		if err != nil || got != want {
			t.Fatalf("ParseKind(%q) = %v, %v", name, got, err)
		}
	}

	if _, err := ParseKind("vu"); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v", err)
	}
}

func TestReportFunc(t *testing.T) {
	var lines []string
	r := report.Func(func(id string, _, _ float64) {
		lines = append(lines, id)
	})

	m := mustMonitor(t, WithKind(KindPeak), WithSampleRate(10), WithInterval(1), WithReporter(r, "custom"))
	x := make([]float64, 11)
	m.Process(x, x, x, x)

	if len(lines) != 1 || lines[0] != "custom" {
		t.Fatalf("lines = %v", lines)
	}
}
