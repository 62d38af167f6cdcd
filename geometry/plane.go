package geometry

import "math"

// parallelTol bounds |direction · normal| below which a line is treated
// as parallel to the plane and the intersection as undefined.
const parallelTol = 1e-10

// Plane is an infinite plane given by a point on the plane and its normal.
type Plane struct {
	Point  Vec3
	Normal Vec3
}

// IntersectLine returns the intersection of the parametric line
// origin + t*direction with the plane. ok is false when the line is
// parallel to the plane within numeric tolerance; callers must treat
// that case as "no intersection", not as an error.
func (p Plane) IntersectLine(origin, direction Vec3) (point Vec3, ok bool) {
	denom := direction.Dot(p.Normal)
	if math.Abs(denom) < parallelTol {
		return Vec3{}, false
	}
	t := p.Point.Sub(origin).Dot(p.Normal) / denom
	return origin.Add(direction.Mul(t)), true
}
