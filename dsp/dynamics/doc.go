// Package dynamics provides the soft-knee output limiter used at the end of
// the leveler chain.
//
// Samples below Threshold pass unchanged. Magnitudes above it are compressed
// logarithmically and finally hard-clamped at Ceiling, so the output never
// exceeds -1 dBFS. The transfer curve is odd-symmetric.
package dynamics
