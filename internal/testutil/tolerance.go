package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or any
// pair differs by more than eps.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		if diff := math.Abs(got[i] - want[i]); diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireBounded fails t if any sample is non-finite or its magnitude
// exceeds limit.
func RequireBounded(t *testing.T, x []float64, limit float64) {
	t.Helper()

	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite sample %v", i, v)
		}

		if math.Abs(v) > limit {
			t.Fatalf("index %d: |%v| exceeds %v", i, v, limit)
		}
	}
}

// RequireLevelDB fails t unless the RMS level of x is within tolDB of
// wantDB.
func RequireLevelDB(t *testing.T, x []float64, wantDB, tolDB float64) {
	t.Helper()

	if got := RMSDB(x); math.IsNaN(got) || math.Abs(got-wantDB) > tolDB {
		t.Fatalf("level = %.3f dB, want %.3f ± %.3f dB", got, wantDB, tolDB)
	}
}
