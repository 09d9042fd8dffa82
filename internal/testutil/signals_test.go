package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestSineAtRMSDB(t *testing.T) {
	for _, level := range []float64{-40, -30, -20, -6} {
		// 48 whole cycles of 1 kHz at 48 kHz.
		s := SineAtRMSDB(1000, 48000, level, 2400)
		if got := RMSDB(s); math.Abs(got-level) > 1e-9 {
			t.Fatalf("RMSDB = %v, want %v", got, level)
		}
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
		if math.Abs(a[i]) > 1 {
			t.Fatalf("noise[%d] = %v exceeds amplitude", i, a[i])
		}
	}
}

func TestAddOffset(t *testing.T) {
	x := []float64{1, -1}
	y := AddOffset(x, 0.5)
	if y[0] != 1.5 || y[1] != -0.5 {
		t.Fatalf("AddOffset = %v", y)
	}
	if x[0] != 1 {
		t.Fatal("AddOffset modified its input")
	}
}

func TestPeakAndSilence(t *testing.T) {
	if got := Peak([]float64{0.1, -0.7, 0.3}); got != 0.7 {
		t.Fatalf("Peak = %v, want 0.7", got)
	}
	if got := RMSDB(DC(0, 8)); !math.IsInf(got, -1) {
		t.Fatalf("RMSDB(silence) = %v, want -inf", got)
	}
	if got := RMSDB(DC(1, 8)); got != 0 {
		t.Fatalf("RMSDB(full scale DC) = %v, want 0", got)
	}
}
