// Package camera derives a pinhole camera's primary-ray generator
// from a position, look-at target, up hint, vertical field of view
// and aspect ratio.
package camera

import (
	"math"

	"github.com/mx4/raymax/pkg/vecmath"
)

// Camera holds a derived forward direction plus two orthonormal
// screen basis vectors, scaled so GetRay(u,v) with u,v in [-1/2,1/2]
// lands on the corresponding point of the image plane one unit in
// front of the camera.
type Camera struct {
	Pos     vecmath.Point
	Forward vecmath.Vec3
	ScreenU vecmath.Vec3
	ScreenV vecmath.Vec3
}

// New derives a Camera from position, look-at target, an up hint and
// the vertical field of view (radians) and aspect ratio (width /
// height). vfov and aspect determine the image-plane extent covered
// by u,v in [-1/2, 1/2].
func New(pos, lookAt, up vecmath.Vec3, vfov, aspect float64) Camera {
	forward := lookAt.Sub(pos).Normalize()

	height := 2 * math.Tan(vfov/2)
	width := height * aspect

	screenU := forward.Cross(up).Normalize().Scale(width)
	screenV := screenU.Normalize().Cross(forward).Scale(height)

	return Camera{
		Pos:     pos,
		Forward: forward,
		ScreenU: screenU,
		ScreenV: screenV,
	}
}

// GetRay returns the primary ray through image-plane coordinate
// (u,v), both in [-1/2, 1/2], (0,0) being the image center.
func (c Camera) GetRay(u, v float64) vecmath.Ray {
	pixel := c.Pos.Add(c.Forward).Add(c.ScreenU.Scale(u)).Add(c.ScreenV.Scale(v))
	return vecmath.NewRay(c.Pos, pixel.Sub(c.Pos))
}
