package surface

import (
	"github.com/mx4/raymax/pkg/stats"
	"github.com/mx4/raymax/pkg/vecmath"
)

// Triangle is three points plus a material index and the index of
// this triangle within its owning mesh's triangle array.
type Triangle struct {
	P0, P1, P2 vecmath.Point
	MatID      int
	MeshIdx    int
}

func (t Triangle) MaterialID() int { return t.MatID }

// Normal is computed on demand from the two edges; no cache is kept.
func (t Triangle) Normal(_ vecmath.Point, _ int) vecmath.Vec3 {
	e1 := t.P1.Sub(t.P0)
	e2 := t.P2.Sub(t.P0)
	return e1.Cross(e2).Normalize()
}

// UV is unused for triangles; mesh checkering is not supported.
func (t Triangle) UV(_ vecmath.Point) (u, v float64) { return 0, 0 }

// Intersect implements the Möller–Trumbore ray-triangle test.
func (t Triangle) Intersect(ray vecmath.Ray, tmin float64, tmax *float64, _ bool, _ *int, st *stats.Stats) bool {
	st.IntersectObj(false, true)

	e1 := t.P1.Sub(t.P0)
	e2 := t.P2.Sub(t.P0)
	h := ray.Dir.Cross(e2)
	a := e1.Dot(h)
	if a < epsilon && a > -epsilon {
		return false
	}

	f := 1 / a
	s := ray.Orig.Sub(t.P0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return false
	}

	q := s.Cross(e1)
	v := f * ray.Dir.Dot(q)
	if v < 0 || u+v > 1 {
		return false
	}

	tHit := f * e2.Dot(q)
	if tHit < epsilon || tHit <= tmin || tHit >= *tmax {
		return false
	}
	*tmax = tHit
	return true
}
