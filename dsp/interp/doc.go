// Package interp provides the ramp curves used to blend between two control
// values across a fixed number of samples.
//
// Available curves, from sharpest to smoothest:
//
//   - [CurveLinear]:       x
//   - [CurveSmoothstep]:   x²(3−2x), zero slope at both ends (default)
//   - [CurveSmootherstep]: x³(x(6x−15)+10), zero slope and curvature at both ends
//
// [Ramp] evaluates a curve for a position inside a period and returns the
// blended value.
package interp
