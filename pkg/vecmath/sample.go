package vecmath

import "math/rand"

// Rng is a per-task random source. Path tracing and the jittered
// sampler never touch the global math/rand source: each scheduler
// task owns one Rng, seeded once at task start, so a render is
// reproducible given an identical tile/row partitioning.
type Rng struct {
	r *rand.Rand
}

// NewRng seeds a new per-task generator.
func NewRng(seed int64) *Rng {
	return &Rng{r: rand.New(rand.NewSource(seed))}
}

// Float64 returns a uniform value in [0, 1).
func (g *Rng) Float64() float64 {
	return g.r.Float64()
}

// InUnitSphere returns a uniformly-distributed point inside the unit
// sphere, via rejection sampling.
func (g *Rng) InUnitSphere() Vec3 {
	for {
		p := Vec3{
			X: 2*g.r.Float64() - 1,
			Y: 2*g.r.Float64() - 1,
			Z: 2*g.r.Float64() - 1,
		}
		if p.LenSq() < 1 {
			return p
		}
	}
}
