// Package ring provides the rolling measurement window used by the leveler:
// a fixed-capacity circular buffer of raw samples that keeps its running sum
// and running sum of squares up to date in O(1) per sample, and exposes a
// current tap and an optionally lookahead-delayed playback tap.
//
// A window is driven once per sample in a fixed order:
//
//	w.Push(x)            // overwrite the oldest sample, update the running sum
//	w.AccumulatePower()  // update the running sum of squares
//	y := w.Tap()         // read the playback tap
//	w.Advance()          // move write, play and adjust positions
//
// Statistics during warm-up are computed over the samples seen so far, not
// over the full capacity.
package ring
