// Package color provides the linear-RGB color type the renderer
// accumulates radiance in, distinct from image/color's byte-quantized
// types which only appear at the final encode step.
package color

import "math"

// RGB is a linear-light color triple. Components are not clamped to
// [0,1]; intermediate lighting and reflection sums routinely exceed 1
// and are only clamped at image-encode time.
type RGB struct {
	R, G, B float64
}

var (
	Black = RGB{0, 0, 0}
	White = RGB{1, 1, 1}
)

// Gray builds an RGB with all three components equal to v.
func Gray(v float64) RGB { return RGB{v, v, v} }

func (a RGB) Add(b RGB) RGB {
	return RGB{a.R + b.R, a.G + b.G, a.B + b.B}
}

// Mul returns the component-wise product a * b, used to modulate a
// light's color by a surface's reflectance.
func (a RGB) Mul(b RGB) RGB {
	return RGB{a.R * b.R, a.G * b.G, a.B * b.B}
}

// Scale returns the scalar product a * s.
func (a RGB) Scale(s float64) RGB {
	return RGB{a.R * s, a.G * s, a.B * s}
}

// Distance returns the Euclidean distance between two colors in RGB
// space.
func (a RGB) Distance(b RGB) float64 {
	dr, dg, db := a.R-b.R, a.G-b.G, a.B-b.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// MaxComponentDelta returns the largest absolute per-channel
// difference between a and b. The adaptive tile sampler compares the
// four corner samples of a box with this metric against a fixed
// threshold to decide whether the box needs further subdivision;
// max-component is cheaper than Distance and sensitive to any single
// channel diverging, not just the aggregate magnitude.
func (a RGB) MaxComponentDelta(b RGB) float64 {
	dr := math.Abs(a.R - b.R)
	dg := math.Abs(a.G - b.G)
	db := math.Abs(a.B - b.B)
	m := dr
	if dg > m {
		m = dg
	}
	if db > m {
		m = db
	}
	return m
}

// Clamp01 returns a with each component clamped to [0, 1].
func (a RGB) Clamp01() RGB {
	return RGB{clamp01(a.R), clamp01(a.G), clamp01(a.B)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Gamma returns a with each component gamma-encoded with exponent
// 1/gamma, applied after clamping to [0,1] so fractional powers never
// see a negative base.
func (a RGB) Gamma(gamma float64) RGB {
	c := a.Clamp01()
	inv := 1 / gamma
	return RGB{
		R: math.Pow(c.R, inv),
		G: math.Pow(c.G, inv),
		B: math.Pow(c.B, inv),
	}
}
