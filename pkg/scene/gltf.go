package scene

import (
	"fmt"
	"unsafe"

	"github.com/qmuntal/gltf"

	"github.com/mx4/raymax/pkg/surface"
	"github.com/mx4/raymax/pkg/vecmath"
)

// loadGLTF reads every triangle primitive out of a GLTF/GLB
// document's meshes, rotates each vertex (radians, x then y then z)
// and skips degenerate (coincident-vertex) triangles, mirroring
// loadOBJ's contract so the two formats are interchangeable mesh
// sources for an obj.{i} scene entry (SPEC_FULL.md §4 domain stack).
// The accessor-decoding here is ported from the teacher's
// GLTFLoader.processMesh / readVec3Accessor / readAccessorData, with
// normals, UVs and embedded textures dropped: the engine computes
// triangle normals on demand and has no mesh texturing (spec.md §3,
// Triangle.UV).
func loadGLTF(path string, rotX, rotY, rotZ float64) ([]surface.Triangle, int, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open gltf: %w", err)
	}

	var triangles []surface.Triangle
	skipped := 0

	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
				continue
			}

			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			positions, err := readVec3Accessor(doc, posIdx)
			if err != nil {
				return nil, 0, fmt.Errorf("read positions: %w", err)
			}
			for i := range positions {
				positions[i] = positions[i].RotX(rotX).RotY(rotY).RotZ(rotZ)
			}

			var indices []int
			if prim.Indices != nil {
				indices, err = readIndices(doc, *prim.Indices)
				if err != nil {
					return nil, 0, fmt.Errorf("read indices: %w", err)
				}
			} else {
				indices = make([]int, len(positions))
				for i := range indices {
					indices[i] = i
				}
			}

			for i := 0; i+2 < len(indices); i += 3 {
				p0, p1, p2 := positions[indices[i]], positions[indices[i+1]], positions[indices[i+2]]
				if p0.Eq(p1) || p0.Eq(p2) || p1.Eq(p2) {
					skipped++
					continue
				}
				triangles = append(triangles, surface.Triangle{P0: p0, P1: p1, P2: p2})
			}
		}
	}

	if len(triangles) == 0 {
		return nil, skipped, fmt.Errorf("no triangles found")
	}
	return triangles, skipped, nil
}

// readVec3Accessor reads a VEC3 float accessor into vecmath.Points.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]vecmath.Point, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}
	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}
	floats, ok := data.([][3]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected data type for VEC3")
	}
	out := make([]vecmath.Point, len(floats))
	for i, f := range floats {
		out[i] = vecmath.V3(float64(f[0]), float64(f[1]), float64(f[2]))
	}
	return out, nil
}

// readIndices reads a scalar index accessor, widening whichever
// component type it stores to int.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}
	switch v := data.(type) {
	case []uint8:
		out := make([]int, len(v))
		for i, x := range v {
			out[i] = int(x)
		}
		return out, nil
	case []uint16:
		out := make([]int, len(v))
		for i, x := range v {
			out[i] = int(x)
		}
		return out, nil
	case []uint32:
		out := make([]int, len(v))
		for i, x := range v {
			out[i] = int(x)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unexpected index type: %T", data)
	}
}

// readAccessorData reads the raw typed slice backing a GLTF
// accessor, ported from the teacher's GLTFLoader (embedded-buffer
// case only; external buffer URIs are rejected as there).
func readAccessorData(doc *gltf.Document, accessor *gltf.Accessor) (any, error) {
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("accessor has no buffer view")
	}
	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]

	if buffer.URI != "" {
		return nil, fmt.Errorf("external buffers not supported")
	}
	bufData := buffer.Data
	if bufData == nil {
		return nil, fmt.Errorf("buffer has no data")
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	stride := bufferView.ByteStride
	count := accessor.Count

	switch accessor.Type {
	case gltf.AccessorVec3:
		if stride == 0 {
			stride = 12
		}
		out := make([][3]float32, count)
		for i := 0; i < count; i++ {
			offset := start + i*stride
			for j := 0; j < 3; j++ {
				out[i][j] = readFloat32(bufData[offset+j*4:])
			}
		}
		return out, nil

	case gltf.AccessorScalar:
		if stride == 0 {
			switch accessor.ComponentType {
			case gltf.ComponentUbyte:
				stride = 1
			case gltf.ComponentUshort:
				stride = 2
			case gltf.ComponentUint:
				stride = 4
			}
		}
		switch accessor.ComponentType {
		case gltf.ComponentUbyte:
			out := make([]uint8, count)
			for i := 0; i < count; i++ {
				out[i] = bufData[start+i*stride]
			}
			return out, nil
		case gltf.ComponentUshort:
			out := make([]uint16, count)
			for i := 0; i < count; i++ {
				offset := start + i*stride
				out[i] = uint16(bufData[offset]) | uint16(bufData[offset+1])<<8
			}
			return out, nil
		case gltf.ComponentUint:
			out := make([]uint32, count)
			for i := 0; i < count; i++ {
				offset := start + i*stride
				out[i] = uint32(bufData[offset]) |
					uint32(bufData[offset+1])<<8 |
					uint32(bufData[offset+2])<<16 |
					uint32(bufData[offset+3])<<24
			}
			return out, nil
		}
	}

	return nil, fmt.Errorf("unsupported accessor type: %v / %v", accessor.Type, accessor.ComponentType)
}

func readFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return *(*float32)(unsafe.Pointer(&bits))
}
