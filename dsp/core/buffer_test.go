package core

import "testing"

func TestEnsureLenReuse(t *testing.T) {
	buf := make([]float64, 4, 8)

	out := EnsureLen(buf, 6)
	if len(out) != 6 {
		t.Fatalf("len = %d, want 6", len(out))
	}

	if cap(out) != cap(buf) {
		t.Fatalf("cap = %d, want %d", cap(out), cap(buf))
	}

	if got := EnsureLen(buf, 16); len(got) != 16 {
		t.Fatalf("len = %d, want 16", len(got))
	}
}

func TestCopyInto(t *testing.T) {
	dst := make([]float64, 2)

	n := CopyInto(dst, []float64{1, 2, 3})
	if n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}

	if dst[0] != 1 || dst[1] != 2 {
		t.Fatalf("unexpected dst: %#v", dst)
	}
}

func TestInterleaveRoundTrip(t *testing.T) {
	in := []float64{1, -1, 2, -2, 3, -3}
	left := make([]float64, 3)
	right := make([]float64, 3)

	if n := Deinterleave(left, right, in); n != 3 {
		t.Fatalf("Deinterleave n = %d, want 3", n)
	}

	if left[2] != 3 || right[2] != -3 {
		t.Fatalf("left=%v right=%v", left, right)
	}

	out := make([]float64, 6)
	if n := Interleave(out, left, right); n != 3 {
		t.Fatalf("Interleave n = %d, want 3", n)
	}

	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], in[i])
		}
	}
}

func TestDeinterleaveShortDestination(t *testing.T) {
	left := make([]float64, 1)
	right := make([]float64, 4)

	if n := Deinterleave(left, right, []float64{1, 2, 3, 4}); n != 1 {
		t.Fatalf("n = %d, want 1", n)
	}
}
