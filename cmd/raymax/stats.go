package main

import (
	"fmt"
	"os"

	"github.com/mx4/raymax/pkg/stats"
)

// printStats surfaces the merged per-run counters, following the
// original's print_stats (original_source/src/render.rs).
func printStats(st stats.Stats) {
	fmt.Fprintf(os.Stderr, "-- stats:\n")
	fmt.Fprintf(os.Stderr, "   rays sampled:        %d\n", st.NumRaysSampling)
	fmt.Fprintf(os.Stderr, "   rays reflected:      %d\n", st.NumRaysReflection)
	fmt.Fprintf(os.Stderr, "   hit max level:       %d\n", st.NumRaysHitMaxLevel)
	fmt.Fprintf(os.Stderr, "   plane intersects:    %d\n", st.NumIntersectsPlane)
	fmt.Fprintf(os.Stderr, "   sphere intersects:   %d\n", st.NumIntersectsSphere)
	fmt.Fprintf(os.Stderr, "   triangle intersects: %d\n", st.NumIntersectsTriangle)
	if st.NumTilesCancelled > 0 {
		fmt.Fprintf(os.Stderr, "   tiles cancelled:     %d (%d pixels)\n", st.NumTilesCancelled, st.NumPixelsCancelled)
	}
}
