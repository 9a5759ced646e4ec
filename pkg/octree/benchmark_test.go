package octree

import (
	"testing"

	"github.com/mx4/raymax/pkg/stats"
	"github.com/mx4/raymax/pkg/surface"
	"github.com/mx4/raymax/pkg/vecmath"
)

// gridMesh returns n*n triangles tiling the z=0 plane, large enough
// to force several levels of subdivision.
func gridMesh(n int) []surface.Triangle {
	tris := make([]surface.Triangle, 0, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			fx, fy := float64(x), float64(y)
			tris = append(tris, surface.Triangle{
				P0: vecmath.V3(fx, fy, 0),
				P1: vecmath.V3(fx+0.9, fy, 0),
				P2: vecmath.V3(fx, fy+0.9, 0),
			})
		}
	}
	return tris
}

func BenchmarkBuild(b *testing.B) {
	tris := gridMesh(20)
	for b.Loop() {
		_ = Build(tris)
	}
}

func BenchmarkIntersectHit(b *testing.B) {
	root := Build(gridMesh(20))
	ray := vecmath.NewRay(vecmath.V3(10, 10, 5), vecmath.V3(0, 0, -1))
	var st stats.Stats

	for b.Loop() {
		tmax := 100.0
		var triIdx int
		_ = root.Intersect(ray, 0.0001, &tmax, false, &triIdx, &st)
	}
}

func BenchmarkIntersectMiss(b *testing.B) {
	root := Build(gridMesh(20))
	ray := vecmath.NewRay(vecmath.V3(-100, -100, 5), vecmath.V3(0, 0, -1))
	var st stats.Stats

	for b.Loop() {
		tmax := 100.0
		var triIdx int
		_ = root.Intersect(ray, 0.0001, &tmax, false, &triIdx, &st)
	}
}
