package vecmath

// Ray is an origin point plus a direction vector, not necessarily
// unit-length. InvDir is the per-component reciprocal of Dir,
// precomputed once since the AABB slab test (pkg/octree) evaluates it
// on every node visited; infinities arising from a zero direction
// component are well-defined and the comparisons in the slab test
// still produce the correct result.
type Ray struct {
	Orig   Point
	Dir    Vec3
	InvDir Vec3
}

// NewRay builds a ray and precomputes InvDir.
func NewRay(orig Point, dir Vec3) Ray {
	return Ray{
		Orig: orig,
		Dir:  dir,
		InvDir: Vec3{
			X: 1 / dir.X,
			Y: 1 / dir.Y,
			Z: 1 / dir.Z,
		},
	}
}

// At returns the point along the ray at parameter t.
func (r Ray) At(t float64) Point {
	return r.Orig.Add(r.Dir.Scale(t))
}

// Reflected returns the ray obtained by mirror-reflecting Dir across
// normal n, re-originating at point.
func (r Ray) Reflected(point Point, n Vec3) Ray {
	return NewRay(point, r.Dir.Reflect(n))
}
