package dynamics

import (
	"math"
	"testing"

	"github.com/rapilodev/rms-leveler/internal/testutil"
)

// The fastmath build trades accuracy for speed.
const tolerance = 1e-3

func TestCompressFormula(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{Threshold, Threshold},
		{1.0, Threshold + (1-Threshold)*math.Log10(2-Threshold)},
		{2.0, Threshold + (1-Threshold)*math.Log10(3-Threshold)},
	}

	for _, tt := range tests {
		if got := Compress(tt.in); math.Abs(got-tt.want) > tolerance {
			t.Fatalf("Compress(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLimitIdentityBelowThreshold(t *testing.T) {
	for _, x := range []float64{0, 0.1, -0.5, 0.7, -0.7, Threshold, -Threshold} {
		if got := Limit(x); got != x {
			t.Fatalf("Limit(%v) = %v, want identity", x, got)
		}
	}
}

func TestLimitOddAndBounded(t *testing.T) {
	for i := range 2001 {
		x := float64(i) / 100 // 0..20
		pos, neg := Limit(x), Limit(-x)
		if pos != -neg {
			t.Fatalf("Limit(%v) = %v, Limit(-%v) = %v, want odd symmetry", x, pos, x, neg)
		}
		if math.Abs(pos) > Ceiling {
			t.Fatalf("Limit(%v) = %v exceeds ceiling", x, pos)
		}
	}
	if Limit(1e9) != Ceiling || Limit(-1e9) != -Ceiling {
		t.Fatal("large inputs should clamp at the ceiling")
	}
}

func TestLimitMonotonic(t *testing.T) {
	prev := Limit(0)
	for i := 1; i <= 5000; i++ {
		got := Limit(float64(i) / 1000)
		if got+1e-12 < prev {
			t.Fatalf("Limit not monotonic at %v: %v < %v", float64(i)/1000, got, prev)
		}
		prev = got
	}
}

func TestLimitBlock(t *testing.T) {
	quiet := testutil.DeterministicSine(100, 48000, 0.5, 480)
	want := append([]float64(nil), quiet...)
	LimitBlock(quiet)
	testutil.RequireSliceNearlyEqual(t, quiet, want, 0)

	loud := testutil.DeterministicSine(100, 48000, 3, 480)
	want = make([]float64, len(loud))
	for i, x := range loud {
		want[i] = Limit(x)
	}
	LimitBlock(loud)
	testutil.RequireSliceNearlyEqual(t, loud, want, 0)

	LimitBlock(nil)
}
