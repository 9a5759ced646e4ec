// Package scene loads the JSON scene document into the types the
// rendering engine core (pkg/tracer, pkg/scheduler, ...) operates on.
// It is an external collaborator to the core engine (spec.md §1):
// nothing under pkg/tracer, pkg/scheduler, pkg/surface, pkg/octree or
// pkg/mesh imports this package; Scene is assembled once and handed
// to the core through its ordinary public constructors.
//
// The document is a single JSON object with dotted-integer-indexed
// keys: "material.0", "material.1", ..., "sphere.0", "plane.0",
// "triangle.0", "vec-light.0", "spot-light.0", "obj.0.path", plus a
// singular "ambient" and "camera" object and an optional
// "resolution" array. Enumeration of each indexed family stops at
// the first missing index, exactly as the original implementation's
// load_scene does.
package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mx4/raymax/pkg/camera"
	"github.com/mx4/raymax/pkg/color"
	"github.com/mx4/raymax/pkg/light"
	"github.com/mx4/raymax/pkg/material"
	"github.com/mx4/raymax/pkg/mesh"
	"github.com/mx4/raymax/pkg/surface"
	"github.com/mx4/raymax/pkg/vecmath"
)

// Scene is the fully-loaded, ready-to-render scene: surfaces,
// materials, lights and a derived camera. Once returned from Load it
// is never mutated.
type Scene struct {
	Objects   []surface.Object
	Materials []material.Material
	Lights    []light.Light
	Cam       camera.Camera
	Width     int
	Height    int
}

// LoadOptions are caller-supplied overrides applied on top of the
// scene document.
type LoadOptions struct {
	// ResX, ResY override the document's "resolution"; 0 means
	// inherit from the document (spec.md §6).
	ResX, ResY int
}

// doc is the raw parsed JSON document, kept as a flat map so dotted
// keys ("material.0", "obj.3.path", ...) can be probed directly
// without a fixed schema.
type doc map[string]json.RawMessage

// Load reads and parses the scene document at path, resolves any OBJ
// or GLTF/GLB meshes it references, and returns the assembled Scene.
func Load(path string, opts LoadOptions) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %q: %w", path, err)
	}

	var d doc
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("scene: parse %q: %w", path, err)
	}

	width, height, err := d.resolution(opts)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	cam, err := d.camera(width, height)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	materials, err := d.materials()
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	lights, err := d.lights()
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	var objects []surface.Object
	objects, err = d.planes(objects)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	objects, err = d.spheres(objects)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	objects, err = d.triangles(objects)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	objects, err = d.meshes(objects, path)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	return &Scene{
		Objects:   objects,
		Materials: materials,
		Lights:    lights,
		Cam:       cam,
		Width:     width,
		Height:    height,
	}, nil
}

func (d doc) resolution(opts LoadOptions) (int, int, error) {
	if opts.ResX > 0 && opts.ResY > 0 {
		return opts.ResX, opts.ResY, nil
	}
	raw, ok := d["resolution"]
	if !ok {
		return opts.ResX, opts.ResY, nil
	}
	var wh [2]int
	if err := json.Unmarshal(raw, &wh); err != nil {
		return 0, 0, fmt.Errorf("resolution: %w", err)
	}
	return wh[0], wh[1], nil
}

type vec3JSON [3]float64

func (v vec3JSON) vec() vecmath.Vec3 { return vecmath.V3(v[0], v[1], v[2]) }

func (v vec3JSON) rgb() color.RGB { return color.RGB{R: v[0], G: v[1], B: v[2]} }

type cameraDoc struct {
	Pos    vec3JSON `json:"pos"`
	LookAt vec3JSON `json:"look_at"`
	Up     vec3JSON `json:"up"`
	FovDeg float64  `json:"fov"`
}

func (d doc) camera(width, height int) (camera.Camera, error) {
	raw, ok := d["camera"]
	if !ok {
		return camera.Camera{}, fmt.Errorf("missing \"camera\"")
	}
	var cd cameraDoc
	if err := json.Unmarshal(raw, &cd); err != nil {
		return camera.Camera{}, fmt.Errorf("camera: %w", err)
	}
	up := cd.Up.vec()
	if up == vecmath.Zero {
		up = vecmath.Up
	}
	fov := cd.FovDeg
	if fov == 0 {
		fov = 60
	}
	aspect := 1.0
	if height > 0 {
		aspect = float64(width) / float64(height)
	}
	return camera.New(cd.Pos.vec(), cd.LookAt.vec(), up, degToRad(fov), aspect), nil
}

// ksValue decodes Material's "ks" field as either a bare scalar
// (broadcast across R,G,B) or an explicit [r,g,b] triple, since the
// source history is inconsistent about which it is (spec.md §9, Open
// Question b).
type ksValue color.RGB

func (k *ksValue) UnmarshalJSON(data []byte) error {
	var scalar float64
	if err := json.Unmarshal(data, &scalar); err == nil {
		*k = ksValue(color.Gray(scalar))
		return nil
	}
	var triple vec3JSON
	if err := json.Unmarshal(data, &triple); err != nil {
		return fmt.Errorf("ks: not a number or [r,g,b]: %w", err)
	}
	*k = ksValue(triple.rgb())
	return nil
}

type materialDoc struct {
	Kd        vec3JSON `json:"kd"`
	Ks        ksValue  `json:"ks"`
	Ke        vec3JSON `json:"ke"`
	Shininess float64  `json:"shininess"`
	Checkered bool     `json:"checkered"`
}

func (d doc) materials() ([]material.Material, error) {
	var out []material.Material
	for i := 0; ; i++ {
		raw, ok := d[fmt.Sprintf("material.%d", i)]
		if !ok {
			break
		}
		var md materialDoc
		if err := json.Unmarshal(raw, &md); err != nil {
			return nil, fmt.Errorf("material.%d: %w", i, err)
		}
		out = append(out, material.Material{
			Kd:        md.Kd.rgb(),
			Ks:        color.RGB(md.Ks),
			Ke:        md.Ke.rgb(),
			Shininess: md.Shininess,
			Checkered: md.Checkered,
		})
	}
	return out, nil
}

type ambientDoc struct {
	Color     vec3JSON `json:"color"`
	Intensity float64  `json:"intensity"`
}

type vecLightDoc struct {
	Dir       vec3JSON `json:"dir"`
	Color     vec3JSON `json:"color"`
	Intensity float64  `json:"intensity"`
}

type spotLightDoc struct {
	Pos       vec3JSON `json:"pos"`
	Color     vec3JSON `json:"color"`
	Intensity float64  `json:"intensity"`
}

func (d doc) lights() ([]light.Light, error) {
	var out []light.Light

	for i := 0; ; i++ {
		raw, ok := d[fmt.Sprintf("spot-light.%d", i)]
		if !ok {
			break
		}
		var sd spotLightDoc
		if err := json.Unmarshal(raw, &sd); err != nil {
			return nil, fmt.Errorf("spot-light.%d: %w", i, err)
		}
		out = append(out, light.Spot{
			Name:      fmt.Sprintf("spot-light.%d", i),
			Pos:       sd.Pos.vec(),
			Color:     sd.Color.rgb(),
			Intensity: sd.Intensity,
		})
	}

	for i := 0; ; i++ {
		raw, ok := d[fmt.Sprintf("vec-light.%d", i)]
		if !ok {
			break
		}
		var vd vecLightDoc
		if err := json.Unmarshal(raw, &vd); err != nil {
			return nil, fmt.Errorf("vec-light.%d: %w", i, err)
		}
		out = append(out, light.Directional{
			Name:      fmt.Sprintf("vec-light.%d", i),
			Color:     vd.Color.rgb(),
			Dir:       vd.Dir.vec().Normalize(),
			Intensity: vd.Intensity,
		})
	}

	if raw, ok := d["ambient"]; ok {
		var ad ambientDoc
		if err := json.Unmarshal(raw, &ad); err != nil {
			return nil, fmt.Errorf("ambient: %w", err)
		}
		out = append(out, light.Ambient{
			Name:      "ambient",
			Color:     ad.Color.rgb(),
			Intensity: ad.Intensity,
		})
	}

	return out, nil
}

type planeDoc struct {
	Point      vec3JSON `json:"point"`
	Normal     vec3JSON `json:"normal"`
	MaterialID int      `json:"material_id"`
}

func (d doc) planes(objects []surface.Object) ([]surface.Object, error) {
	for i := 0; ; i++ {
		raw, ok := d[fmt.Sprintf("plane.%d", i)]
		if !ok {
			break
		}
		var pd planeDoc
		if err := json.Unmarshal(raw, &pd); err != nil {
			return nil, fmt.Errorf("plane.%d: %w", i, err)
		}
		objects = append(objects, surface.NewPlane(pd.Point.vec(), pd.Normal.vec(), pd.MaterialID))
	}
	return objects, nil
}

type sphereDoc struct {
	Center     vec3JSON `json:"center"`
	Radius     float64  `json:"radius"`
	MaterialID int      `json:"material_id"`
}

func (d doc) spheres(objects []surface.Object) ([]surface.Object, error) {
	for i := 0; ; i++ {
		raw, ok := d[fmt.Sprintf("sphere.%d", i)]
		if !ok {
			break
		}
		var sd sphereDoc
		if err := json.Unmarshal(raw, &sd); err != nil {
			return nil, fmt.Errorf("sphere.%d: %w", i, err)
		}
		objects = append(objects, surface.Sphere{
			Center: sd.Center.vec(),
			Radius: sd.Radius,
			MatID:  sd.MaterialID,
		})
	}
	return objects, nil
}

type triangleDoc struct {
	Points     [3]vec3JSON `json:"points"`
	MaterialID int         `json:"material_id"`
}

func (d doc) triangles(objects []surface.Object) ([]surface.Object, error) {
	for i := 0; ; i++ {
		raw, ok := d[fmt.Sprintf("triangle.%d", i)]
		if !ok {
			break
		}
		var td triangleDoc
		if err := json.Unmarshal(raw, &td); err != nil {
			return nil, fmt.Errorf("triangle.%d: %w", i, err)
		}
		objects = append(objects, surface.Triangle{
			P0:    td.Points[0].vec(),
			P1:    td.Points[1].vec(),
			P2:    td.Points[2].vec(),
			MatID: td.MaterialID,
		})
	}
	return objects, nil
}

func (d doc) meshes(objects []surface.Object, sceneFile string) ([]surface.Object, error) {
	for i := 0; ; i++ {
		rawPath, ok := d[fmt.Sprintf("obj.%d.path", i)]
		if !ok {
			break
		}
		var path string
		if err := json.Unmarshal(rawPath, &path); err != nil {
			return nil, fmt.Errorf("obj.%d.path: %w", i, err)
		}

		rotX := d.floatField(fmt.Sprintf("obj.%d.rotx", i))
		rotY := d.floatField(fmt.Sprintf("obj.%d.roty", i))
		rotZ := d.floatField(fmt.Sprintf("obj.%d.rotz", i))
		matID := int(d.floatField(fmt.Sprintf("obj.%d.material_id", i)))

		resolved := resolvePath(sceneFile, path)
		tris, skipped, err := loadMesh(resolved, degToRad(rotX), degToRad(rotY), degToRad(rotZ))
		if err != nil {
			return nil, fmt.Errorf("obj.%d (%s): %w", i, path, err)
		}
		if skipped > 0 {
			fmt.Fprintf(os.Stderr, "scene: %s: skipped %d degenerate triangles\n", path, skipped)
		}
		objects = append(objects, mesh.New(path, tris, matID))
	}
	return objects, nil
}

func (d doc) floatField(key string) float64 {
	raw, ok := d[key]
	if !ok {
		return 0
	}
	var v float64
	_ = json.Unmarshal(raw, &v)
	return v
}

func degToRad(deg float64) float64 { return deg * (3.141592653589793 / 180) }
