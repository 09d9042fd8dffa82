package interp

import "fmt"

// Curve selects the shape of a ramp between two values.
type Curve int

const (
	// CurveSmoothstep is the cubic Hermite ramp x²(3−2x).
	CurveSmoothstep Curve = iota
	// CurveLinear is a straight line.
	CurveLinear
	// CurveSmootherstep is Perlin's quintic ramp.
	CurveSmootherstep
	// CurveSmootheststep is the degree-7 ramp with zero first to third
	// derivatives at both ends.
	CurveSmootheststep
)

// String returns the curve name.
func (c Curve) String() string {
	switch c {
	case CurveSmoothstep:
		return "smoothstep"
	case CurveLinear:
		return "linear"
	case CurveSmootherstep:
		return "smootherstep"
	case CurveSmootheststep:
		return "smootheststep"
	default:
		return fmt.Sprintf("Curve(%d)", int(c))
	}
}

// ParseCurve maps a curve name back to its value.
func ParseCurve(name string) (Curve, error) {
	switch name {
	case "smoothstep", "":
		return CurveSmoothstep, nil
	case "linear":
		return CurveLinear, nil
	case "smootherstep":
		return CurveSmootherstep, nil
	case "smootheststep":
		return CurveSmootheststep, nil
	default:
		return CurveSmoothstep, fmt.Errorf("unknown ramp curve %q", name)
	}
}

// Weight returns the curve weight at x. x is clamped to [0, 1].
func (c Curve) Weight(x float64) float64 {
	if x <= 0 {
		return 0
	}

	if x >= 1 {
		return 1
	}

	switch c {
	case CurveLinear:
		return x
	case CurveSmootherstep:
		return x * x * x * (x*(x*6-15) + 10)
	case CurveSmootheststep:
		x2 := x * x
		return x2 * x2 * (x*(x*(x*-20+70)-84) + 35)
	default:
		return Smoothstep(x)
	}
}

// Smoothstep returns x²(3−2x) without clamping.
func Smoothstep(x float64) float64 {
	return x * x * (3 - 2*x)
}

// Ramp blends from to to along curve for position in [0, period].
// position is clamped. When both ends are equal, position reaches period or
// period is not positive, to is returned unchanged so the end of a ramp is
// exact.
func Ramp(c Curve, to, from float64, position, period int) float64 {
	if period <= 0 || to == from {
		return to
	}

	position = max(0, min(position, period))
	if position == period {
		return to
	}

	w := c.Weight(float64(position) / float64(period))

	return w*to + (1-w)*from
}
