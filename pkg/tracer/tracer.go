// Package tracer implements the ray tracer kernel: closest-hit search
// over the scene's surfaces, Whitted shading with shadow rays and
// mirror reflection, and an alternate Monte-Carlo path-tracing mode.
package tracer

import (
	"math"

	"github.com/mx4/raymax/pkg/camera"
	"github.com/mx4/raymax/pkg/color"
	"github.com/mx4/raymax/pkg/light"
	"github.com/mx4/raymax/pkg/material"
	"github.com/mx4/raymax/pkg/stats"
	"github.com/mx4/raymax/pkg/surface"
	"github.com/mx4/raymax/pkg/vecmath"
)

// shadowBias keeps a shadow ray from immediately re-hitting the
// surface it left.
const shadowBias = 0.0001

// reflectionMixWeight is the fixed blend weight between a surface's
// own shaded color and its reflection, used whenever the material
// has any specular component. The source uses a small constant here
// rather than scaling by ks.
const reflectionMixWeight = 0.1

var (
	backgroundWhite = color.White
	backgroundCyan  = color.RGB{R: 0.4, G: 0.6, B: 0.9}
)

// Config holds the tunables that change the tracer's recursion
// behavior.
type Config struct {
	ReflectionMaxDepth int
	UseReflection      bool
	PathTracing        bool
}

// Tracer owns the immutable scene data a ray is traced against.
type Tracer struct {
	Objects   []surface.Object
	Materials []material.Material
	Lights    []light.Light
	Cam       camera.Camera
	Cfg       Config
}

// New builds a Tracer over a scene's objects, materials and lights.
func New(objects []surface.Object, materials []material.Material, lights []light.Light, cam camera.Camera, cfg Config) *Tracer {
	return &Tracer{Objects: objects, Materials: materials, Lights: lights, Cam: cam, Cfg: cfg}
}

// Trace returns the radiance seen along ray at the given recursion
// depth, dispatching to path tracing or Whitted shading per Cfg.
// rng is only consulted in path-tracing mode.
func (tr *Tracer) Trace(st *stats.Stats, rng *vecmath.Rng, ray vecmath.Ray, depth int) color.RGB {
	if tr.Cfg.PathTracing {
		return tr.tracePath(st, rng, ray, depth)
	}
	return tr.traceWhitted(st, ray, depth)
}

// closestHit searches for the closest (or, if anyHit, any) hit along
// ray with parameter in (tmin, tmaxIn). Pass math.MaxFloat64 as
// tmaxIn for an unbounded search; shadow rays toward a positional
// light instead bound it to 1, the parameter that lands exactly on
// the light, so occluders beyond the light are correctly ignored.
func (tr *Tracer) closestHit(ray vecmath.Ray, tmin, tmaxIn float64, anyHit bool, st *stats.Stats) (obj surface.Object, subID int, tmax float64, hit bool) {
	tmax = tmaxIn
	for _, o := range tr.Objects {
		var sub int
		if o.Intersect(ray, tmin, &tmax, anyHit, &sub, st) {
			obj, subID, hit = o, sub, true
			if anyHit {
				return
			}
		}
	}
	return
}

func (tr *Tracer) traceWhitted(st *stats.Stats, ray vecmath.Ray, depth int) color.RGB {
	if depth > tr.Cfg.ReflectionMaxDepth {
		return color.Black
	}

	tmin := 0.0001
	if depth == 0 {
		// The primary ray's direction is not unit length (it spans
		// the image plane), so at depth 0 tmin is set to its length
		// instead of a fixed epsilon.
		tmin = ray.Dir.Len()
	}

	obj, subID, tmax, hit := tr.closestHit(ray, tmin, math.MaxFloat64, false, st)
	if !hit {
		return tr.background(ray)
	}

	hitPoint := ray.At(tmax)
	normal := obj.Normal(hitPoint, subID)
	mat := tr.Materials[obj.MaterialID()]

	c := color.Black
	for _, l := range tr.Lights {
		contrib := tr.lightContribution(st, l, hitPoint, normal, ray.Dir, mat)
		c = c.Add(contrib)
	}

	if mat.Checkered {
		u, v := obj.UV(hitPoint)
		c = mat.Checker(c, u, v)
	}

	if tr.Cfg.UseReflection && isReflective(mat) {
		st.NumRaysReflection++
		reflected := ray.Reflected(hitPoint, normal)
		reflColor := tr.traceWhitted(st, reflected, depth+1)
		c = c.Scale(1 - reflectionMixWeight).Add(reflColor.Scale(reflectionMixWeight))
	}
	return c
}

// lightContribution shadow-tests positional lights before counting
// their contribution. The shadow ray's direction is the unnormalized
// vector to the light, so its own length supplies the scale at which
// t=1 lands exactly on the light: bounding the occlusion search to
// (shadowBias, 1) finds only occluders between point and the light,
// never ones beyond it (spec.md §4.E).
func (tr *Tracer) lightContribution(st *stats.Stats, l light.Light, point, normal, incomingDir vecmath.Vec3, mat material.Material) color.RGB {
	if !l.IsSpot() {
		return l.Contribute(point, normal, incomingDir, mat)
	}

	shadowRay := vecmath.NewRay(point, l.ShadowDir(point))
	_, _, _, occluded := tr.closestHit(shadowRay, shadowBias, 1.0, true, st)
	if occluded {
		return color.Black
	}
	return l.Contribute(point, normal, incomingDir, mat)
}

func isReflective(mat material.Material) bool {
	return mat.Ks.R > 0 || mat.Ks.G > 0 || mat.Ks.B > 0
}

// background blends white to cyan based on how strongly the ray
// points along the camera's vertical screen axis.
func (tr *Tracer) background(ray vecmath.Ray) color.RGB {
	vs := tr.Cam.ScreenV.Normalize()
	z := math.Abs(ray.Dir.Dot(vs)) / ray.Dir.Len()
	z = math.Min(math.Max(z, 0), 1)
	return backgroundWhite.Scale(1 - z).Add(backgroundCyan.Scale(z))
}

func (tr *Tracer) tracePath(st *stats.Stats, rng *vecmath.Rng, ray vecmath.Ray, depth int) color.RGB {
	if depth > tr.Cfg.ReflectionMaxDepth {
		st.NumRaysHitMaxLevel++
		return color.Black
	}

	obj, subID, tmax, hit := tr.closestHit(ray, 0.0001, math.MaxFloat64, false, st)
	if !hit {
		return color.Black
	}

	hitPoint := ray.At(tmax)
	normal := obj.Normal(hitPoint, subID)
	mat := tr.Materials[obj.MaterialID()]

	if mat.IsLight() {
		return mat.Ke
	}

	specular := isReflective(mat)
	mirror := ray.Dir.Reflect(normal)

	var newDir vecmath.Vec3
	if specular {
		newDir = mirror.Normalize()
	} else {
		newDir = mirror.Add(rng.InUnitSphere()).Normalize()
	}

	next := tr.tracePath(st, rng, vecmath.NewRay(hitPoint, newDir), depth+1)
	weight := mat.Kd
	if specular {
		weight = mat.Ks
	}
	return next.Mul(weight)
}
