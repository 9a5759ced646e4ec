package octree

import (
	"testing"

	"github.com/mx4/raymax/pkg/stats"
	"github.com/mx4/raymax/pkg/surface"
	"github.com/mx4/raymax/pkg/vecmath"
)

func singleTriangleInXYPlane() []surface.Triangle {
	return []surface.Triangle{
		{
			P0: vecmath.V3(-1, -1, 0),
			P1: vecmath.V3(1, -1, 0),
			P2: vecmath.V3(0, 1, 0),
		},
	}
}

func TestBuildIsLeafWhenUnderThreshold(t *testing.T) {
	root := Build(singleTriangleInXYPlane())
	if !root.IsLeaf {
		t.Fatal("single triangle should build a leaf root")
	}
	if len(root.TriIdx) != 1 {
		t.Fatalf("expected 1 triangle in leaf, got %d", len(root.TriIdx))
	}
}

func TestIntersectHitsTriangle(t *testing.T) {
	root := Build(singleTriangleInXYPlane())

	ray := vecmath.NewRay(vecmath.V3(0, 0, 5), vecmath.V3(0, 0, -1))
	tmax := 100.0
	var triIdx int
	var st stats.Stats

	if !root.Intersect(ray, 0.0001, &tmax, false, &triIdx, &st) {
		t.Fatal("expected ray through triangle center to hit")
	}
	if tmax <= 0 || tmax >= 100 {
		t.Errorf("tmax = %v, expected tightened hit parameter", tmax)
	}
	if st.NumIntersectsTriangle == 0 {
		t.Errorf("expected triangle intersection attempts to be counted")
	}
}

func TestIntersectMissesWhenRayParallel(t *testing.T) {
	root := Build(singleTriangleInXYPlane())

	ray := vecmath.NewRay(vecmath.V3(0, 0, 5), vecmath.V3(1, 0, 0))
	tmax := 100.0
	var triIdx int
	var st stats.Stats

	if root.Intersect(ray, 0.0001, &tmax, false, &triIdx, &st) {
		t.Fatal("ray parallel to and outside the triangle's plane should not hit")
	}
}

func TestBuildSubdividesManyTriangles(t *testing.T) {
	var tris []surface.Triangle
	for i := 0; i < MaxLeafTriangles+10; i++ {
		off := float64(i)
		tris = append(tris, surface.Triangle{
			P0: vecmath.V3(off, 0, 0),
			P1: vecmath.V3(off+0.5, 0, 0),
			P2: vecmath.V3(off, 0.5, 0),
		})
	}
	root := Build(tris)
	if root.IsLeaf {
		t.Fatal("expected root to subdivide when triangle count exceeds threshold")
	}
	for _, c := range root.Children {
		if c == nil {
			t.Fatal("internal node must have all 8 children populated")
		}
	}
}

func TestOctantOf(t *testing.T) {
	mid := vecmath.Zero
	tests := []struct {
		name string
		p    vecmath.Point
		want int
	}{
		{"origin all positive bits", vecmath.V3(0, 0, 0), 7},
		{"negative octant", vecmath.V3(-1, -1, -1), 0},
		{"+x only", vecmath.V3(1, -1, -1), 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := octantOf(tc.p, mid); got != tc.want {
				t.Errorf("octantOf(%v) = %d, want %d", tc.p, got, tc.want)
			}
		})
	}
}
