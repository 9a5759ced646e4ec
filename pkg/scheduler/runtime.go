package scheduler

import "runtime"

// numCPU returns the default worker count: the runtime's available
// parallelism, matching the spec's "implementation default: hardware
// parallelism" (§5).
func numCPU() int {
	return runtime.GOMAXPROCS(0)
}
