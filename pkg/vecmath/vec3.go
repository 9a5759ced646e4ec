// Package vecmath provides the 3-space algebra the rendering engine is
// built on: vectors, points, rays and the handful of rotation and
// sampling helpers the tracer needs.
package vecmath

import "math"

// Vec3 is a 3-component floating value, used for both vectors and points.
type Vec3 struct {
	X, Y, Z float64
}

// Point is an alias for Vec3 used where a position (rather than a
// direction) is meant.
type Point = Vec3

var (
	Zero = Vec3{0, 0, 0}
	Up   = Vec3{0, 1, 0}
)

// V3 creates a new Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Mul returns the component-wise product a * b.
func (a Vec3) Mul(b Vec3) Vec3 {
	return Vec3{a.X * b.X, a.Y * b.Y, a.Z * b.Z}
}

// Scale returns the scalar product a * s.
func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}

// Div returns the scalar division a / s.
func (a Vec3) Div(s float64) Vec3 {
	return Vec3{a.X / s, a.Y / s, a.Z / s}
}

// Dot returns the dot product a . b.
func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a x b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Len returns the Euclidean norm of the vector.
func (a Vec3) Len() float64 {
	return math.Sqrt(a.Dot(a))
}

// LenSq returns the squared norm (no sqrt).
func (a Vec3) LenSq() float64 {
	return a.Dot(a)
}

// Normalize returns the unit vector in the same direction. The zero
// vector normalizes to itself.
func (a Vec3) Normalize() Vec3 {
	l := a.Len()
	if l == 0 {
		return a
	}
	return a.Scale(1 / l)
}

func (a Vec3) Negate() Vec3 {
	return Vec3{-a.X, -a.Y, -a.Z}
}

// Reflect returns a reflected across the normal n (n need not be unit,
// but normally is for the engine's use).
func (a Vec3) Reflect(n Vec3) Vec3 {
	return a.Sub(n.Scale(2 * a.Dot(n)))
}

func (a Vec3) Min(b Vec3) Vec3 {
	return Vec3{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
}

func (a Vec3) Max(b Vec3) Vec3 {
	return Vec3{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
}

// RotX rotates the vector by angle radians around the X axis.
func (a Vec3) RotX(angle float64) Vec3 {
	if angle == 0 {
		return a
	}
	s, c := math.Sincos(angle)
	return Vec3{a.X, a.Y*c - a.Z*s, a.Y*s + a.Z*c}
}

// RotY rotates the vector by angle radians around the Y axis.
func (a Vec3) RotY(angle float64) Vec3 {
	if angle == 0 {
		return a
	}
	s, c := math.Sincos(angle)
	return Vec3{a.X*c + a.Z*s, a.Y, -a.X*s + a.Z*c}
}

// RotZ rotates the vector by angle radians around the Z axis.
func (a Vec3) RotZ(angle float64) Vec3 {
	if angle == 0 {
		return a
	}
	s, c := math.Sincos(angle)
	return Vec3{a.X*c - a.Y*s, a.X*s + a.Y*c, a.Z}
}

// Eq reports whether two points are exactly equal, used to detect
// degenerate (coincident-vertex) triangles during mesh loading.
func (a Vec3) Eq(b Vec3) bool {
	return a.X == b.X && a.Y == b.Y && a.Z == b.Z
}
