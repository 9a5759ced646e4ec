package camera

import (
	"math"
	"testing"

	"github.com/mx4/raymax/pkg/vecmath"
)

func TestScreenBasisOrthogonalToForward(t *testing.T) {
	c := New(vecmath.Zero, vecmath.V3(0, 0, -1), vecmath.Up, math.Pi/3, 16.0/9.0)

	if d := c.ScreenU.Dot(c.Forward); math.Abs(d) > 1e-9 {
		t.Errorf("ScreenU not orthogonal to Forward: dot=%v", d)
	}
	if d := c.ScreenV.Dot(c.Forward); math.Abs(d) > 1e-9 {
		t.Errorf("ScreenV not orthogonal to Forward: dot=%v", d)
	}
}

func TestGetRayCenterMatchesForward(t *testing.T) {
	pos := vecmath.V3(0, 0, 5)
	c := New(pos, vecmath.Zero, vecmath.Up, math.Pi/3, 1.0)

	r := c.GetRay(0, 0)
	want := c.Forward.Normalize()
	got := r.Dir.Normalize()

	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 || math.Abs(got.Z-want.Z) > 1e-9 {
		t.Errorf("GetRay(0,0) direction = %v, want forward %v", got, want)
	}
	if r.Orig != pos {
		t.Errorf("GetRay origin = %v, want camera position %v", r.Orig, pos)
	}
}

func TestGetRayVariesAcrossPlane(t *testing.T) {
	c := New(vecmath.Zero, vecmath.V3(0, 0, -1), vecmath.Up, math.Pi/3, 16.0/9.0)

	left := c.GetRay(-0.5, 0)
	right := c.GetRay(0.5, 0)

	if left.Dir == right.Dir {
		t.Errorf("rays at opposite horizontal edges should differ")
	}
}
