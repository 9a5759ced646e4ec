// Package material describes how a surface responds to light: its
// diffuse, specular and emissive colors, shininess, and an optional
// procedural checker texture.
package material

import (
	"math"

	"github.com/mx4/raymax/pkg/color"
)

// Material holds the shading parameters for a surface. Ke is nonzero
// only for light-emitting surfaces, which the path tracer treats as
// terminal: a ray that hits one returns Ke directly instead of
// recursing further.
type Material struct {
	Kd        color.RGB
	Ks        color.RGB
	Ke        color.RGB
	Shininess float64
	Checkered bool
}

// New returns the zero-value material: black, non-reflective,
// non-emissive, uncheckered.
func New() Material {
	return Material{}
}

// NewScalarKs builds a material from a scalar specular weight, for
// callers that have a single ks number rather than an RGB triple; the
// scalar is broadcast across all three channels.
func NewScalarKs(kd color.RGB, ks float64, ke color.RGB, shininess float64, checkered bool) Material {
	return Material{
		Kd:        kd,
		Ks:        color.Gray(ks),
		Ke:        ke,
		Shininess: shininess,
		Checkered: checkered,
	}
}

// IsLight reports whether the material emits radiance.
func (m Material) IsLight() bool {
	return m.Ke.R > 0 || m.Ke.G > 0 || m.Ke.B > 0
}

// Checker modulates c by the material's two-value checker pattern at
// texture coordinate uv, darkening every other 1/4-unit cell. The
// caller must only call this when m.Checkered is set.
func (m Material) Checker(c color.RGB, u, v float64) color.RGB {
	a := int(math.Floor(u*4)) & 1
	b := int(math.Floor(v*4)) & 1
	if a != b {
		return c.Scale(1.0 / 3.0)
	}
	return c
}
