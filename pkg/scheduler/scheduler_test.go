package scheduler

import (
	"sync/atomic"
	"testing"

	"github.com/mx4/raymax/pkg/camera"
	"github.com/mx4/raymax/pkg/color"
	"github.com/mx4/raymax/pkg/image"
	"github.com/mx4/raymax/pkg/light"
	"github.com/mx4/raymax/pkg/material"
	"github.com/mx4/raymax/pkg/surface"
	"github.com/mx4/raymax/pkg/tracer"
	"github.com/mx4/raymax/pkg/vecmath"
)

func testTracer() *tracer.Tracer {
	objs := []surface.Object{
		surface.Sphere{Center: vecmath.Zero, Radius: 1, MatID: 0},
	}
	mats := []material.Material{material.New()}
	lights := []light.Light{light.Ambient{Color: color.White, Intensity: 1}}
	cam := camera.New(vecmath.V3(0, 0, 5), vecmath.Zero, vecmath.Up, 0.9, 1)
	return tracer.New(objs, mats, lights, cam, tracer.Config{ReflectionMaxDepth: 4})
}

func TestSchedulerRunRendersSphereAgainstBackground(t *testing.T) {
	tr := testTracer()
	s := New(tr, tr.Cam, Config{UseLines: false, Step: 8})
	img := image.New(16, 16)

	s.Run(img, nil, nil)

	// The sphere is centered but does not reach the image corners, so
	// the center pixel shows the (black) sphere while the corner shows
	// the background: the two must differ.
	center := img.At(8, 8)
	corner := img.At(0, 0)
	if center == corner {
		t.Error("expected center (sphere) and corner (background) pixels to differ")
	}
}

func TestSchedulerUseLinesPartitionsByRow(t *testing.T) {
	tr := testTracer()
	s := New(tr, tr.Cam, Config{UseLines: true})
	jobs := s.buildJobs(10, 4)
	if len(jobs) != 4 {
		t.Fatalf("len(jobs) = %d, want 4 (one per row)", len(jobs))
	}
	for y, j := range jobs {
		if j.y0 != y || j.y1 != y+1 || j.x0 != 0 || j.x1 != 10 {
			t.Errorf("row job %d = %+v, want full-width row", y, j)
		}
	}
}

func TestSchedulerTilePartitioning(t *testing.T) {
	tr := testTracer()
	s := New(tr, tr.Cam, Config{Step: 8})
	jobs := s.buildJobs(20, 20)

	var covered int
	for _, j := range jobs {
		covered += (j.x1 - j.x0) * (j.y1 - j.y0)
	}
	if covered != 400 {
		t.Errorf("tiles cover %d pixels, want 400", covered)
	}
}

func TestSchedulerCancellationSkipsRemainingTiles(t *testing.T) {
	tr := testTracer()
	s := New(tr, tr.Cam, Config{Step: 4})
	img := image.New(16, 16)

	var cancel atomic.Bool
	cancel.Store(true)

	st := s.Run(img, nil, &cancel)

	if st.NumTilesCancelled == 0 {
		t.Error("expected cancelled tiles to be counted")
	}
	if st.NumPixelsCancelled != 256 {
		t.Errorf("NumPixelsCancelled = %d, want 256", st.NumPixelsCancelled)
	}
	// Every pixel stays at the image's initial (black) fill.
	if c := img.At(8, 8); c != (img.At(0, 0)) {
		t.Error("expected all pixels to remain at their initial fill after full cancellation")
	}
}

func TestSchedulerProgressReachesOne(t *testing.T) {
	tr := testTracer()
	s := New(tr, tr.Cam, Config{Step: 4})
	img := image.New(8, 8)

	var lastPct float64
	var calls int
	s.Run(img, func(pct float64) {
		calls++
		lastPct = pct
	}, nil)

	if calls == 0 {
		t.Fatal("expected at least one progress callback")
	}
	if lastPct != 1.0 {
		t.Errorf("final progress = %v, want 1.0", lastPct)
	}
}

func TestSchedulerDeterministicWithoutAdaptiveSampling(t *testing.T) {
	tr := testTracer()
	cfg := Config{Step: 4, UseAdaptiveSampling: false}

	s1 := New(tr, tr.Cam, cfg)
	img1 := image.New(12, 12)
	s1.Run(img1, nil, nil)

	s2 := New(tr, tr.Cam, cfg)
	img2 := image.New(12, 12)
	s2.Run(img2, nil, nil)

	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			if img1.At(x, y) != img2.At(x, y) {
				t.Fatalf("pixel (%d,%d) differs between identical non-adaptive renders", x, y)
			}
		}
	}
}

func TestCornerKeyDistinctForDistinctCoords(t *testing.T) {
	k1 := cornerKey(0.1, 0.2)
	k2 := cornerKey(0.1, 0.2000001)
	if k1 == k2 {
		t.Error("expected distinct (u,v) pairs to produce distinct keys")
	}
	k3 := cornerKey(0.1, 0.2)
	if k1 != k3 {
		t.Error("expected identical (u,v) pairs to produce identical keys")
	}
}
