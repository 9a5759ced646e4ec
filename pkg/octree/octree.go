// Package octree builds and traverses the axis-aligned bounding-box
// octree used to accelerate ray intersection against a mesh's
// triangle list.
package octree

import (
	"sort"

	"github.com/mx4/raymax/pkg/stats"
	"github.com/mx4/raymax/pkg/surface"
	"github.com/mx4/raymax/pkg/vecmath"
)

// MaxDepth and MaxLeafTriangles bound subdivision: a node becomes a
// leaf once it reaches MaxDepth or its candidate count drops below
// MaxLeafTriangles, whichever comes first.
const (
	MaxDepth         = 8
	MaxLeafTriangles = 30
)

// Node is one box of the octree. Internal nodes own exactly 8
// children partitioning their box into equal octants; leaves own the
// indices, into the shared triangle slice, of the triangles that
// intersect the leaf's box.
type Node struct {
	PMin, PMax vecmath.Point
	IsLeaf     bool
	Children   [8]*Node
	TriIdx     []int

	triangles []surface.Triangle
}

// Build constructs the octree root over triangles, recursing until
// MaxDepth or MaxLeafTriangles halts subdivision.
func Build(triangles []surface.Triangle) *Node {
	pmin, pmax := bounds(triangles)
	candidates := make([]int, len(triangles))
	for i := range triangles {
		candidates[i] = i
	}
	n := &Node{triangles: triangles}
	n.build(pmin, pmax, candidates, 0)
	return n
}

func bounds(triangles []surface.Triangle) (vecmath.Point, vecmath.Point) {
	if len(triangles) == 0 {
		return vecmath.Zero, vecmath.Zero
	}
	pmin := triangles[0].P0
	pmax := triangles[0].P0
	for _, t := range triangles {
		for _, p := range [3]vecmath.Point{t.P0, t.P1, t.P2} {
			pmin = pmin.Min(p)
			pmax = pmax.Max(p)
		}
	}
	return pmin, pmax
}

func (n *Node) build(pmin, pmax vecmath.Point, candidates []int, depth int) {
	n.PMin, n.PMax = pmin, pmax

	var kept []int
	for _, idx := range candidates {
		if n.triangleInside(n.triangles[idx]) {
			kept = append(kept, idx)
		}
	}

	if depth >= MaxDepth || len(kept) < MaxLeafTriangles {
		n.IsLeaf = true
		n.TriIdx = kept
		return
	}

	inc := pmax.Sub(pmin).Scale(0.5)
	hx := vecmath.V3(inc.X, 0, 0)
	hy := vecmath.V3(0, inc.Y, 0)
	hz := vecmath.V3(0, 0, inc.Z)

	var vmin, vmax [8]vecmath.Point
	vmin[0] = pmin
	vmax[0] = pmin.Add(inc)
	vmin[1] = pmin.Add(hx)
	vmax[1] = pmin.Add(hx).Add(inc)
	vmin[2] = pmin.Add(hy)
	vmax[2] = pmin.Add(hy).Add(inc)
	vmin[3] = pmin.Add(hx).Add(hy)
	vmax[3] = pmin.Add(hx).Add(hy).Add(inc)
	for i := 0; i < 4; i++ {
		vmin[4+i] = vmin[i].Add(hz)
		vmax[4+i] = vmax[i].Add(hz)
	}

	for i := 0; i < 8; i++ {
		child := &Node{triangles: n.triangles}
		child.build(vmin[i], vmax[i], kept, depth+1)
		n.Children[i] = child
	}
}

// triangleInside reports whether triangle intersects n's box. True if
// any vertex lies inside the box, or if any of the triangle's three
// edges, treated as a ray over t in (0,1), intersects the box's slab
// test. This is a known-incomplete test: a triangle that pierces the
// box without any vertex inside and whose edges begin and end outside
// the box is not guaranteed to be caught.
func (n *Node) triangleInside(t surface.Triangle) bool {
	if n.pointInside(t.P0) || n.pointInside(t.P1) || n.pointInside(t.P2) {
		return true
	}
	edges := [3]vecmath.Ray{
		vecmath.NewRay(t.P0, t.P1.Sub(t.P0)),
		vecmath.NewRay(t.P1, t.P2.Sub(t.P1)),
		vecmath.NewRay(t.P2, t.P0.Sub(t.P2)),
	}
	for _, ray := range edges {
		if _, ok := n.checkIntersect(ray, 1.0); ok {
			return true
		}
	}
	return false
}

func (n *Node) pointInside(p vecmath.Point) bool {
	return p.X >= n.PMin.X && p.X <= n.PMax.X &&
		p.Y >= n.PMin.Y && p.Y <= n.PMax.Y &&
		p.Z >= n.PMin.Z && p.Z <= n.PMax.Z
}

// checkIntersect is the slab test: for each axis it folds t1/t2
// across the box's min/max planes, then intersects the per-axis
// intervals. Division by a zero ray-direction component is
// permitted; the resulting infinities still compare correctly.
func (n *Node) checkIntersect(ray vecmath.Ray, tmaxIn float64) (float64, bool) {
	tx1 := (n.PMin.X - ray.Orig.X) * ray.InvDir.X
	tx2 := (n.PMax.X - ray.Orig.X) * ray.InvDir.X
	tMin := min(tx1, tx2)
	tMax := max(tx1, tx2)

	ty1 := (n.PMin.Y - ray.Orig.Y) * ray.InvDir.Y
	ty2 := (n.PMax.Y - ray.Orig.Y) * ray.InvDir.Y
	tMin = max(tMin, min(ty1, ty2))
	tMax = min(tMax, max(ty1, ty2))

	tz1 := (n.PMin.Z - ray.Orig.Z) * ray.InvDir.Z
	tz2 := (n.PMax.Z - ray.Orig.Z) * ray.InvDir.Z
	tMin = max(tMin, min(tz1, tz2))
	tMax = min(tMax, max(tz1, tz2))

	if tMax >= max(tMin, 0) && tMin < tmaxIn {
		return tMin, true
	}
	return 0, false
}

// Intersect traverses the octree for the closest triangle hit by ray
// with parameter in (tmin, *tmax), tightening *tmax and setting
// *triIdx to the hit triangle's index on success. anyHit stops the
// search at the first hit found, used for shadow rays.
func (n *Node) Intersect(ray vecmath.Ray, tmin float64, tmax *float64, anyHit bool, triIdx *int, st *stats.Stats) bool {
	tEntry, ok := n.checkIntersect(ray, *tmax)
	if !ok {
		return false
	}

	if n.IsLeaf {
		hit := false
		for _, idx := range n.TriIdx {
			if n.triangles[idx].Intersect(ray, tmin, tmax, anyHit, nil, st) {
				hit = true
				*triIdx = idx
				if anyHit {
					return true
				}
			}
		}
		return hit
	}

	mid := n.PMin.Add(n.PMax).Scale(0.5)
	entryPoint := ray.At(tEntry)
	nearIdx := octantOf(entryPoint, mid)

	hit := false
	if n.Children[nearIdx].Intersect(ray, tmin, tmax, anyHit, triIdx, st) {
		hit = true
		if anyHit {
			return true
		}
	}

	type crossing struct {
		t   float64
		bit int
	}
	crossings := []crossing{
		{(mid.X - ray.Orig.X) * ray.InvDir.X, 0},
		{(mid.Y - ray.Orig.Y) * ray.InvDir.Y, 1},
		{(mid.Z - ray.Orig.Z) * ray.InvDir.Z, 2},
	}
	sort.SliceStable(crossings, func(i, j int) bool { return crossings[i].t < crossings[j].t })

	curIdx := nearIdx
	curT := tEntry
	for _, c := range crossings {
		if c.t <= curT {
			continue
		}
		if c.t >= *tmax {
			break
		}
		curIdx ^= 1 << c.bit
		curT = c.t
		if n.Children[curIdx].Intersect(ray, tmin, tmax, anyHit, triIdx, st) {
			hit = true
			if anyHit {
				return true
			}
		}
	}
	return hit
}

// octantOf returns the child index (bit0=+x, bit1=+y, bit2=+z)
// containing p relative to the box's mid point.
func octantOf(p, mid vecmath.Point) int {
	idx := 0
	if p.X >= mid.X {
		idx |= 1
	}
	if p.Y >= mid.Y {
		idx |= 2
	}
	if p.Z >= mid.Z {
		idx |= 4
	}
	return idx
}

// Depth returns the maximum depth of the subtree rooted at n, 0 for a
// leaf.
func (n *Node) Depth() int {
	if n.IsLeaf {
		return 0
	}
	d := 0
	for _, c := range n.Children {
		if cd := 1 + c.Depth(); cd > d {
			d = cd
		}
	}
	return d
}
