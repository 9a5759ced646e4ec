// Package light implements the renderer's light sources: ambient,
// directional and spot/point variants, each able to compute its own
// shaded contribution at a point given the material there.
package light

import (
	"math"

	"github.com/mx4/raymax/pkg/color"
	"github.com/mx4/raymax/pkg/material"
	"github.com/mx4/raymax/pkg/vecmath"
)

// directionalExponent is the Lambertian falloff power applied to
// directional lights; the source treats it as a fixed convention
// rather than a per-material or per-light parameter.
const directionalExponent = 4

// Light is the single capability every variant provides: its shaded
// contribution at a point, given the surface normal there, the
// incoming view ray's direction (used for the specular lobe), and
// the material being shaded.
type Light interface {
	Contribute(point vecmath.Point, normal, incomingDir vecmath.Vec3, mat material.Material) color.RGB
	// IsAmbient reports whether the light ignores position and
	// normal entirely.
	IsAmbient() bool
	// IsSpot reports whether the light is a positional point/spot
	// source, which the tracer shadow-tests before counting its
	// contribution. Ambient and directional lights are never
	// shadow-tested.
	IsSpot() bool
	// ShadowDir returns the unnormalized direction from point toward
	// the light (its length is the distance to the light), used to
	// build a shadow-test ray whose t=1 lands exactly on the light.
	// Only meaningful when IsSpot is true.
	ShadowDir(point vecmath.Point) vecmath.Vec3
}

// Ambient contributes kd modulated by a constant color and intensity,
// regardless of the shaded point.
type Ambient struct {
	Name      string
	Color     color.RGB
	Intensity float64
}

func (l Ambient) Contribute(_ vecmath.Point, _, _ vecmath.Vec3, mat material.Material) color.RGB {
	return mat.Kd.Mul(l.Color).Scale(l.Intensity)
}
func (l Ambient) IsAmbient() bool                             { return true }
func (l Ambient) IsSpot() bool                                { return false }
func (l Ambient) ShadowDir(_ vecmath.Point) vecmath.Vec3       { return vecmath.Zero }

// Directional is an infinite-distance light with a fixed unit
// direction (the direction light travels, not the direction to the
// light).
type Directional struct {
	Name      string
	Color     color.RGB
	Dir       vecmath.Vec3
	Intensity float64
}

func (l Directional) Contribute(_ vecmath.Point, normal, _ vecmath.Vec3, mat material.Material) color.RGB {
	ndotl := math.Max(normal.Dot(l.Dir.Negate()), 0)
	falloff := math.Pow(ndotl, directionalExponent)
	return mat.Kd.Mul(l.Color).Scale(l.Intensity * falloff)
}
func (l Directional) IsAmbient() bool                       { return false }
func (l Directional) IsSpot() bool                          { return false }
func (l Directional) ShadowDir(_ vecmath.Point) vecmath.Vec3 { return vecmath.Zero }

// Spot is a positional light that attenuates with squared distance
// and contributes a diffuse term plus a Phong specular lobe.
type Spot struct {
	Name      string
	Pos       vecmath.Point
	Color     color.RGB
	Intensity float64
}

func (l Spot) Contribute(point vecmath.Point, normal, incomingDir vecmath.Vec3, mat material.Material) color.RGB {
	v := point.Sub(l.Pos)
	d2 := v.LenSq()
	u := v.Normalize()

	diffuse := mat.Kd.Scale(math.Max(normal.Dot(u.Negate()), 0))

	r := incomingDir.Reflect(normal).Normalize()
	specPow := math.Max(u.Dot(r), 0)
	specular := l.Color.Mul(mat.Ks).Scale(math.Pow(specPow, mat.Shininess))

	return diffuse.Add(specular).Scale(l.Intensity / (1 + d2))
}
func (l Spot) IsAmbient() bool { return false }
func (l Spot) IsSpot() bool    { return true }

// ShadowDir returns the unnormalized direction from point toward the
// light, so a ray cast along it reaches the light exactly at t=1.
func (l Spot) ShadowDir(point vecmath.Point) vecmath.Vec3 {
	return l.Pos.Sub(point)
}
