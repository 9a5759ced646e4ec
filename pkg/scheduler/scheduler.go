// Package scheduler maps the image plane to primary rays and
// distributes the work across a worker pool: either one task per
// row (use_lines) or one task per square tile, with optional 2x2
// adaptive corner subdivision and per-tile corner-color memoization
// in Whitted mode, and jittered multi-sample averaging in path
// tracing mode.
package scheduler

import (
	"sync"
	"sync/atomic"

	"github.com/mx4/raymax/pkg/camera"
	"github.com/mx4/raymax/pkg/color"
	"github.com/mx4/raymax/pkg/image"
	"github.com/mx4/raymax/pkg/stats"
	"github.com/mx4/raymax/pkg/tracer"
	"github.com/mx4/raymax/pkg/vecmath"
)

// defaultTileStep and pathTracingTileStep are the tile side lengths
// used when UseLines is false; path tracing uses a smaller tile
// since each pixel costs far more to trace.
const (
	defaultTileStep     = 32
	pathTracingTileStep = 10

	// adaptiveThreshold is the max-component color distance between
	// a box's four corners and their average above which the box is
	// subdivided further.
	adaptiveThreshold = 0.3
)

// Config holds the scheduler's tunables, populated from the
// configuration document (§6 of the specification this engine
// implements).
type Config struct {
	UseLines            bool
	Step                int // tile side; 0 selects the mode-appropriate default
	UseAdaptiveSampling bool
	AdaptiveMaxDepth    int
	UseHashMap          bool
	PathTracingSamples  int // 0 or 1 disables path tracing
	NumWorkers          int // 0 selects runtime.GOMAXPROCS(0)
}

// tileStep returns the configured or mode-appropriate default tile side.
func (c Config) tileStep() int {
	if c.Step > 0 {
		return c.Step
	}
	if c.PathTracingSamples > 1 {
		return pathTracingTileStep
	}
	return defaultTileStep
}

// ProgressFunc is invoked with a monotonically increasing fraction in
// [0, 1] as pixels complete.
type ProgressFunc func(pct float64)

// job is one unit of scheduler work: a row, or a square tile.
type job struct {
	x0, y0, x1, y1 int // half-open pixel rectangle
}

// Scheduler partitions an image plane into tasks and drives a
// tracer.Tracer over each one with a worker pool.
type Scheduler struct {
	tr  *tracer.Tracer
	cam camera.Camera
	cfg Config
}

// New builds a Scheduler over tr, rendering through cam per cfg.
func New(tr *tracer.Tracer, cam camera.Camera, cfg Config) *Scheduler {
	return &Scheduler{tr: tr, cam: cam, cfg: cfg}
}

// Run renders into img, reporting progress through progress (may be
// nil) and honoring cancel: once cancel reports true, any job not yet
// started is skipped, though it still contributes its pixel count to
// progress so the fraction still reaches 1.0.
func (s *Scheduler) Run(img *image.Image, progress ProgressFunc, cancel *atomic.Bool) stats.Stats {
	jobs := s.buildJobs(img.Width, img.Height)

	numWorkers := s.cfg.NumWorkers
	if numWorkers <= 0 {
		numWorkers = numCPU()
	}

	total := img.Width * img.Height
	var completed atomic.Int64
	var lastReported atomic.Int64

	jobCh := make(chan job, len(jobs))
	for _, j := range jobs {
		jobCh <- j
	}
	close(jobCh)

	var agg stats.Aggregate
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobCh {
				// Each job seeds its own generator from its position, so
				// a path-traced render does not depend on which worker
				// picked up which job.
				rng := vecmath.NewRng(int64(j.y0*img.Width+j.x0) + 1)
				local := s.runJob(j, img, rng, cancel)
				agg.Merge(local)

				n := int64((j.x1 - j.x0) * (j.y1 - j.y0))
				done := completed.Add(n)
				reportProgress(progress, &lastReported, done, int64(total))
			}
		}()
	}
	wg.Wait()

	return agg.Total()
}

// reportProgress invokes progress whenever done crosses the next
// 1/128 fraction of total since the last call.
func reportProgress(progress ProgressFunc, last *atomic.Int64, done, total int64) {
	if progress == nil || total == 0 {
		return
	}
	const steps = 128
	step := total / steps
	if step == 0 {
		step = 1
	}
	for {
		prev := last.Load()
		if done-prev < step && done != total {
			return
		}
		if !last.CompareAndSwap(prev, done) {
			continue
		}
		progress(float64(done) / float64(total))
		return
	}
}

// buildJobs partitions the image into rows or square tiles per cfg.
func (s *Scheduler) buildJobs(width, height int) []job {
	if s.cfg.UseLines {
		jobs := make([]job, height)
		for y := 0; y < height; y++ {
			jobs[y] = job{x0: 0, y0: y, x1: width, y1: y + 1}
		}
		return jobs
	}

	step := s.cfg.tileStep()
	var jobs []job
	for y0 := 0; y0 < height; y0 += step {
		for x0 := 0; x0 < width; x0 += step {
			x1, y1 := x0+step, y0+step
			if x1 > width {
				x1 = width
			}
			if y1 > height {
				y1 = height
			}
			jobs = append(jobs, job{x0: x0, y0: y0, x1: x1, y1: y1})
		}
	}
	return jobs
}

// runJob renders one job's pixels into img, returning the local stats
// accrued. If cancel is set, the job is skipped entirely (its pixels
// stay at the image's initial fill), matching the spec's tile-grained
// cancellation contract.
func (s *Scheduler) runJob(j job, img *image.Image, rng *vecmath.Rng, cancel *atomic.Bool) stats.Stats {
	var st stats.Stats
	if cancel != nil && cancel.Load() {
		st.NumPixelsCancelled += uint64((j.x1 - j.x0) * (j.y1 - j.y0))
		st.NumTilesCancelled++
		return st
	}

	var memo map[uint64]color.RGB
	if s.cfg.UseHashMap && s.cfg.UseAdaptiveSampling {
		memo = make(map[uint64]color.RGB)
	}

	du := 1 / float64(img.Width)
	dv := 1 / float64(img.Height)

	for y := j.y0; y < j.y1; y++ {
		v := float64(y)*dv - 0.5
		for x := j.x0; x < j.x1; x++ {
			u := float64(x)*du - 0.5
			c := s.calcRayBox(&st, rng, memo, u, v, du, dv, 0)
			img.PushPixel(x, y, c)
		}
	}
	return st
}

// calcRayBox computes the color of the pixel box anchored at (u, v)
// with extent (du, dv): path-traced multi-sample average, a single
// center ray in non-adaptive Whitted mode, or recursive 2x2 corner
// subdivision in adaptive Whitted mode.
func (s *Scheduler) calcRayBox(st *stats.Stats, rng *vecmath.Rng, memo map[uint64]color.RGB, u, v, du, dv float64, level int) color.RGB {
	if n := s.cfg.PathTracingSamples; n > 1 {
		sum := color.Black
		for i := 0; i < n; i++ {
			su := u + rng.Float64()*du
			sv := v + rng.Float64()*dv
			ray := s.cam.GetRay(su, sv)
			st.NumRaysSampling++
			sum = sum.Add(s.tr.Trace(st, rng, ray, 0))
		}
		return sum.Scale(1 / float64(n))
	}

	if !s.cfg.UseAdaptiveSampling {
		ray := s.cam.GetRay(u+du/2, v+dv/2)
		st.NumRaysSampling++
		return s.tr.Trace(st, rng, ray, 0)
	}

	corners := [4][2]float64{
		{u, v}, {u + du, v}, {u, v + dv}, {u + du, v + dv},
	}
	var samples [4]color.RGB
	for i, c := range corners {
		samples[i] = s.memoizedSample(st, rng, memo, c[0], c[1])
	}

	avg := samples[0].Add(samples[1]).Add(samples[2]).Add(samples[3]).Scale(0.25)

	maxDelta := 0.0
	for _, c := range samples {
		if d := c.MaxComponentDelta(avg); d > maxDelta {
			maxDelta = d
		}
	}

	if maxDelta <= adaptiveThreshold || level >= s.cfg.AdaptiveMaxDepth {
		if maxDelta > adaptiveThreshold {
			st.NumRaysHitMaxLevel++
		}
		return avg
	}

	hu, hv := du/2, dv/2
	sub := [4][2]float64{
		{u, v}, {u + hu, v}, {u, v + hv}, {u + hu, v + hv},
	}
	sum := color.Black
	for _, c := range sub {
		sum = sum.Add(s.calcRayBox(st, rng, memo, c[0], c[1], hu, hv, level+1))
	}
	return sum.Scale(0.25)
}

// memoizedSample traces the ray at (u, v), consulting and populating
// memo first when memoization is enabled. memo is per-tile, never
// shared across jobs, bounding its memory.
func (s *Scheduler) memoizedSample(st *stats.Stats, rng *vecmath.Rng, memo map[uint64]color.RGB, u, v float64) color.RGB {
	if memo != nil {
		key := cornerKey(u, v)
		if c, ok := memo[key]; ok {
			return c
		}
		ray := s.cam.GetRay(u, v)
		st.NumRaysSampling++
		c := s.tr.Trace(st, rng, ray, 0)
		memo[key] = c
		return c
	}
	ray := s.cam.GetRay(u, v)
	st.NumRaysSampling++
	return s.tr.Trace(st, rng, ray, 0)
}

// cornerKey maps a (u, v) image-plane coordinate to a stable integer
// key, quantizing to a fraction of a pixel finer than any adaptive
// subdivision level can produce so distinct corners never collide.
func cornerKey(u, v float64) uint64 {
	const scale = 1 << 30
	ix := int64(u*scale) + (1 << 30)
	iy := int64(v*scale) + (1 << 30)
	return uint64(ix)<<32 | (uint64(iy) & 0xffffffff)
}
