// Package stats accumulates per-worker render counters and merges
// them into a single report once rendering completes.
package stats

import "sync"

// Stats holds the counters a single scheduler task accrues while
// tracing its share of the image. Each task owns a local Stats value
// with no synchronization; the totals are combined into an
// Aggregate at task end.
type Stats struct {
	NumRaysSampling        uint64
	NumRaysReflection      uint64
	NumRaysHitMaxLevel     uint64
	NumIntersectsPlane     uint64
	NumIntersectsSphere    uint64
	NumIntersectsTriangle  uint64
	NumPixelsCancelled     uint64
	NumTilesCancelled      uint64
}

// IntersectObj records an intersection attempt against a sphere or
// triangle primitive (planes are counted by the caller directly, as
// spheres and triangles are in the original).
func (s *Stats) IntersectObj(isSphere, isTriangle bool) {
	if isSphere {
		s.NumIntersectsSphere++
	}
	if isTriangle {
		s.NumIntersectsTriangle++
	}
}

// Add folds other's counters into s.
func (s *Stats) Add(other Stats) {
	s.NumRaysSampling += other.NumRaysSampling
	s.NumRaysReflection += other.NumRaysReflection
	s.NumRaysHitMaxLevel += other.NumRaysHitMaxLevel
	s.NumIntersectsPlane += other.NumIntersectsPlane
	s.NumIntersectsSphere += other.NumIntersectsSphere
	s.NumIntersectsTriangle += other.NumIntersectsTriangle
	s.NumPixelsCancelled += other.NumPixelsCancelled
	s.NumTilesCancelled += other.NumTilesCancelled
}

// Aggregate collects Stats from concurrent scheduler workers under a
// single mutex. Workers call Merge once when their task finishes;
// nothing else touches Aggregate's fields directly.
type Aggregate struct {
	mu    sync.Mutex
	total Stats
}

// Merge adds a worker's local Stats into the aggregate total.
func (a *Aggregate) Merge(local Stats) {
	a.mu.Lock()
	a.total.Add(local)
	a.mu.Unlock()
}

// Total returns a snapshot of the combined counters.
func (a *Aggregate) Total() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.total
}
