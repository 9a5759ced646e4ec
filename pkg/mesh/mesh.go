// Package mesh implements the Mesh surface variant: a shared-immutable
// triangle list accelerated by an octree, exposed through the same
// Object capability as the other surface primitives.
package mesh

import (
	"github.com/mx4/raymax/pkg/octree"
	"github.com/mx4/raymax/pkg/stats"
	"github.com/mx4/raymax/pkg/surface"
	"github.com/mx4/raymax/pkg/vecmath"
)

// Mesh owns a triangle list and the octree root built over it. All
// triangles share the mesh's material.
type Mesh struct {
	Name      string
	Triangles []surface.Triangle
	MatID     int
	root      *octree.Node
}

// New builds a Mesh and its octree from triangles. Triangle.MeshIdx
// is set to each triangle's position in the slice, which the octree
// reports back through Intersect's subID.
func New(name string, triangles []surface.Triangle, matID int) *Mesh {
	for i := range triangles {
		triangles[i].MatID = matID
		triangles[i].MeshIdx = i
	}
	return &Mesh{
		Name:      name,
		Triangles: triangles,
		MatID:     matID,
		root:      octree.Build(triangles),
	}
}

func (m *Mesh) MaterialID() int { return m.MatID }

func (m *Mesh) Intersect(ray vecmath.Ray, tmin float64, tmax *float64, anyHit bool, subID *int, st *stats.Stats) bool {
	var triIdx int
	if !m.root.Intersect(ray, tmin, tmax, anyHit, &triIdx, st) {
		return false
	}
	*subID = triIdx
	return true
}

// Normal dispatches to the hit triangle identified by subID.
func (m *Mesh) Normal(point vecmath.Point, subID int) vecmath.Vec3 {
	return m.Triangles[subID].Normal(point, 0)
}

// UV is unused for meshes; mesh checkering is not supported.
func (m *Mesh) UV(_ vecmath.Point) (u, v float64) { return 0, 0 }

// Depth returns the octree's maximum depth, exposed for diagnostics.
func (m *Mesh) Depth() int { return m.root.Depth() }
