package mesh

import (
	"testing"

	"github.com/mx4/raymax/pkg/stats"
	"github.com/mx4/raymax/pkg/surface"
	"github.com/mx4/raymax/pkg/vecmath"
)

func TestMeshIntersectSetsSubID(t *testing.T) {
	tris := []surface.Triangle{
		{P0: vecmath.V3(-1, -1, 0), P1: vecmath.V3(1, -1, 0), P2: vecmath.V3(0, 1, 0)},
	}
	m := New("quad", tris, 3)

	ray := vecmath.NewRay(vecmath.V3(0, 0, 5), vecmath.V3(0, 0, -1))
	tmax := 100.0
	var subID int
	var st stats.Stats

	if !m.Intersect(ray, 0.0001, &tmax, false, &subID, &st) {
		t.Fatal("expected ray through mesh triangle to hit")
	}
	if subID != 0 {
		t.Errorf("subID = %d, want 0", subID)
	}
	if m.MaterialID() != 3 {
		t.Errorf("MaterialID() = %d, want 3", m.MaterialID())
	}
}

func TestMeshNormalDispatchesToTriangle(t *testing.T) {
	tris := []surface.Triangle{
		{P0: vecmath.V3(0, 0, 0), P1: vecmath.V3(1, 0, 0), P2: vecmath.V3(0, 1, 0)},
	}
	m := New("tri", tris, 0)

	n := m.Normal(vecmath.Zero, 0)
	want := vecmath.V3(0, 0, 1)
	if n != want {
		t.Errorf("Normal = %v, want %v", n, want)
	}
}
