package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mx4/raymax/pkg/surface"
)

// resolvePath resolves a mesh path relative to the scene document's
// own directory, the same convention the original's tobj::load_obj
// call relies on (paths given in the scene file are relative to
// where the scene file lives, not the process's working directory).
func resolvePath(sceneFile, meshPath string) string {
	if filepath.IsAbs(meshPath) {
		return meshPath
	}
	return filepath.Join(filepath.Dir(sceneFile), meshPath)
}

// loadMesh dispatches to the OBJ or GLTF/GLB loader by file
// extension, applies the x/y/z rotations (radians) to every vertex
// before triangle construction (as the original's load_mesh chains
// rotx().roty().rotz()), and reports how many degenerate
// (coincident-vertex) triangles were skipped.
func loadMesh(path string, rotX, rotY, rotZ float64) ([]surface.Triangle, int, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return loadOBJ(path, rotX, rotY, rotZ)
	case ".gltf", ".glb":
		return loadGLTF(path, rotX, rotY, rotZ)
	default:
		return nil, 0, fmt.Errorf("unsupported mesh format %q", ext)
	}
}
