// Package geometry provides the small set of geometric primitives the
// annotation core needs: 3-D vectors, N-D axis-aligned bounding boxes and
// ray/plane intersection. It is not a general geometry kernel.
package geometry

import "math"

// Vec3 represents a 3D point or vector.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns the sum of two vectors.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub returns the difference between two vectors.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Mul multiplies the vector by a scalar.
func (v Vec3) Mul(scalar float64) Vec3 {
	return Vec3{
		X: v.X * scalar,
		Y: v.Y * scalar,
		Z: v.Z * scalar,
	}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude of the vector.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Distance returns the distance between two points.
func (v Vec3) Distance(other Vec3) float64 {
	return v.Sub(other).Length()
}

// Normalize returns a unit vector in the same direction.
// The zero vector normalizes to the zero vector.
func (v Vec3) Normalize() Vec3 {
	length := v.Length()
	if length == 0 {
		return Vec3{}
	}
	return v.Mul(1.0 / length)
}

// FromSlice builds a Vec3 from the first three elements of coords.
// ok is false if coords has fewer than three elements.
func FromSlice(coords []float64) (v Vec3, ok bool) {
	if len(coords) < 3 {
		return Vec3{}, false
	}
	return Vec3{X: coords[0], Y: coords[1], Z: coords[2]}, true
}

// Slice returns the vector as a 3-element slice.
func (v Vec3) Slice() []float64 {
	return []float64{v.X, v.Y, v.Z}
}
