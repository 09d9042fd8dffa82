package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		lo       float64
		hi       float64
		expected float64
	}{
		{name: "inside", value: 3, lo: -24, hi: 24, expected: 3},
		{name: "below", value: -30, lo: -24, hi: 24, expected: -24},
		{name: "above", value: 30, lo: -24, hi: 24, expected: 24},
		{name: "swapped", value: 2, lo: 1, hi: 0, expected: 1},
		{name: "boundary", value: 24, lo: -24, hi: 24, expected: 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.lo, tt.hi)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}

	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}

	if !NearlyEqual(0, 0, 0) {
		t.Fatal("zero should equal zero with default epsilon")
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(48000) {
		t.Fatal("48000 should be finite")
	}

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if IsFinite(v) {
			t.Fatalf("IsFinite(%v) = true", v)
		}
	}
}

func TestDBConversions(t *testing.T) {
	linear := DBToLinear(-20)
	if !NearlyEqual(linear, 0.1, 1e-12) {
		t.Fatalf("DBToLinear(-20) = %v, want 0.1", linear)
	}

	db := LinearToDB(DBToLinear(-6))
	if !NearlyEqual(db, -6, 1e-10) {
		t.Fatalf("LinearToDB(DBToLinear(-6)) = %v, want -6", db)
	}

	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}

	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}

func TestFloorDB(t *testing.T) {
	if got := FloorDB(0, -120); got != -120 {
		t.Fatalf("FloorDB(0) = %v, want -120", got)
	}

	if got := FloorDB(1e-9, -120); got != -120 {
		t.Fatalf("FloorDB(1e-9) = %v, want -120", got)
	}

	if got := FloorDB(1, -120); got != 0 {
		t.Fatalf("FloorDB(1) = %v, want 0", got)
	}
}
