// Package surface implements the renderer's intersectable primitives
// Sphere, Plane and Triangle, and defines the common Object capability
// they satisfy (the Mesh variant, in package mesh, satisfies it too).
package surface

import (
	"math"

	"github.com/mx4/raymax/pkg/stats"
	"github.com/mx4/raymax/pkg/vecmath"
)

const epsilon = 1e-12

// Object is the capability every surface primitive provides: ray
// intersection tightening a shared tmax, the normal and UV at a hit,
// and the material to shade with.
type Object interface {
	// Intersect reports whether ray hits the surface with parameter
	// in (tmin, *tmax). On a hit, *tmax is tightened to the hit
	// parameter and *subID is set to a primitive-specific
	// sub-feature index (unused except by Mesh, where it is the
	// index of the hit triangle). anyHit lets a caller accept the
	// first hit found without searching for the closest one, used
	// by shadow rays.
	Intersect(ray vecmath.Ray, tmin float64, tmax *float64, anyHit bool, subID *int, st *stats.Stats) bool
	// Normal returns the surface normal at point. subID identifies
	// which sub-feature was hit, as returned by Intersect.
	Normal(point vecmath.Point, subID int) vecmath.Vec3
	// UV returns texture coordinates at point, used for checker
	// modulation.
	UV(point vecmath.Point) (u, v float64)
	MaterialID() int
}

// Sphere is centered at Center with the given Radius.
type Sphere struct {
	Center vecmath.Point
	Radius float64
	MatID  int
}

func (s Sphere) MaterialID() int { return s.MatID }

func (s Sphere) Intersect(ray vecmath.Ray, tmin float64, tmax *float64, _ bool, _ *int, st *stats.Stats) bool {
	st.IntersectObj(true, false)

	a := ray.Dir.Dot(ray.Dir)
	oc := ray.Orig.Sub(s.Center)
	halfB := ray.Dir.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius

	disc := halfB*halfB - a*c
	if disc < 0 {
		return false
	}
	sq := math.Sqrt(disc)

	t := (-halfB - sq) / a
	if t <= tmin || t >= *tmax {
		t = (-halfB + sq) / a
		if t <= tmin || t >= *tmax {
			return false
		}
	}
	*tmax = t
	return true
}

func (s Sphere) Normal(point vecmath.Point, _ int) vecmath.Vec3 {
	return point.Sub(s.Center).Scale(1 / s.Radius)
}

// UV computes latitude/longitude from the surface normal.
func (s Sphere) UV(point vecmath.Point) (u, v float64) {
	n := s.Normal(point, 0)
	u = (1 + math.Atan2(n.Y, n.X)/math.Pi) * 0.5
	v = math.Acos(n.Z) / math.Pi
	return u, v
}

// Plane is an infinite plane through Point with unit normal N.
type Plane struct {
	Point vecmath.Point
	N     vecmath.Vec3
	MatID int
}

// NewPlane builds a plane, normalizing normal.
func NewPlane(point vecmath.Point, normal vecmath.Vec3, matID int) Plane {
	return Plane{Point: point, N: normal.Normalize(), MatID: matID}
}

func (p Plane) MaterialID() int { return p.MatID }

func (p Plane) Intersect(ray vecmath.Ray, tmin float64, tmax *float64, _ bool, _ *int, st *stats.Stats) bool {
	st.NumIntersectsPlane++

	d := ray.Dir.Dot(p.N)
	if math.Abs(d) < epsilon {
		return false
	}
	v := p.Point.Sub(ray.Orig)
	t := v.Dot(p.N) / d
	if t <= tmin || t >= *tmax {
		return false
	}
	*tmax = t
	return true
}

func (p Plane) Normal(_ vecmath.Point, _ int) vecmath.Vec3 {
	return p.N
}

// UV projects the offset from the plane's anchor onto the plane's two
// fixed axes (y, z), folding negative projections positive so the
// checker pattern tiles continuously.
func (p Plane) UV(point vecmath.Point) (u, v float64) {
	off := point.Sub(p.Point)
	vx := math.Ceil(off.Dot(vecmath.V3(0, 1, 0)))
	vy := math.Ceil(off.Dot(vecmath.V3(0, 0, 1)))
	return (vx + 1) / 2, (vy + 1) / 2
}
