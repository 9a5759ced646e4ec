package scene

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mx4/raymax/pkg/surface"
	"github.com/mx4/raymax/pkg/vecmath"
)

// loadOBJ parses a Wavefront .obj file, triangulating any polygonal
// face by a fan from its first vertex, applying the given rotations
// (radians, x then y then z) to every position, and skipping
// triangles whose three vertices are not pairwise distinct. Material
// and texture directives ("usemtl", "mtllib", "vt", "vn") are parsed
// far enough to be skipped cleanly but otherwise ignored: the engine
// takes a single material id per obj.{i} entry from the scene
// document instead (spec.md §6).
func loadOBJ(path string, rotX, rotY, rotZ float64) ([]surface.Triangle, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	var positions []vecmath.Point
	var triangles []surface.Triangle
	skipped := 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "v":
			if len(parts) < 4 {
				continue
			}
			x, _ := strconv.ParseFloat(parts[1], 64)
			y, _ := strconv.ParseFloat(parts[2], 64)
			z, _ := strconv.ParseFloat(parts[3], 64)
			p := vecmath.V3(x, y, z).RotX(rotX).RotY(rotY).RotZ(rotZ)
			positions = append(positions, p)

		case "f":
			idx := make([]int, 0, len(parts)-1)
			for _, spec := range parts[1:] {
				idx = append(idx, parseFaceVertexIndex(spec, len(positions)))
			}
			for i := 2; i < len(idx); i++ {
				i0, i1, i2 := idx[0], idx[i-1], idx[i]
				if i0 < 0 || i1 < 0 || i2 < 0 || i0 >= len(positions) || i1 >= len(positions) || i2 >= len(positions) {
					skipped++
					continue
				}
				p0, p1, p2 := positions[i0], positions[i1], positions[i2]
				if p0.Eq(p1) || p0.Eq(p2) || p1.Eq(p2) {
					skipped++
					continue
				}
				triangles = append(triangles, surface.Triangle{P0: p0, P1: p1, P2: p2})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("scan obj: %w", err)
	}
	if len(triangles) == 0 {
		return nil, skipped, fmt.Errorf("no triangles found")
	}
	return triangles, skipped, nil
}

// parseFaceVertexIndex parses one OBJ face-vertex spec ("v",
// "v/vt", or "v/vt/vn") and returns the zero-based position index,
// resolving OBJ's 1-based and negative (relative-to-end) forms. -1
// is returned for an unparsable or missing index.
func parseFaceVertexIndex(spec string, numPositions int) int {
	v := strings.SplitN(spec, "/", 2)[0]
	if v == "" {
		return -1
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return -1
	}
	if n < 0 {
		return numPositions + n
	}
	return n - 1
}
