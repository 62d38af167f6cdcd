package scene

import "github.com/hupe1980/annot3d/geometry"

// SelectDims extracts the displayed-dimension subset of an N-D vector as a
// 3-D vector. ok is false unless dims names exactly three valid axes of v.
func SelectDims(v []float64, dims []int) (geometry.Vec3, bool) {
	if len(dims) != 3 {
		return geometry.Vec3{}, false
	}
	out := make([]float64, 3)
	for i, d := range dims {
		if d < 0 || d >= len(v) {
			return geometry.Vec3{}, false
		}
		out[i] = v[d]
	}
	return geometry.Vec3{X: out[0], Y: out[1], Z: out[2]}, true
}

// EmbedDims returns a copy of cursor with the displayed-dimension slots
// overwritten by p. The non-displayed coordinates keep the cursor's
// current slice position, so annotation on any 3 axes of a hyperstack
// preserves the remaining axes.
func EmbedDims(cursor []float64, dims []int, p geometry.Vec3) []float64 {
	out := make([]float64, len(cursor))
	copy(out, cursor)
	coords := p.Slice()
	for i, d := range dims {
		if d < 0 || d >= len(out) || i >= len(coords) {
			continue
		}
		out[d] = coords[i]
	}
	return out
}

// PlanePosition3D intersects the event's cursor ray with the reference
// layer's slicing plane, in displayed 3-D coordinates. ok is false when
// the displayed subset cannot be extracted or the ray is parallel to the
// plane; callers treat both as "event maps to nothing".
func PlanePosition3D(ev MouseEvent, plane PlaneLayer) (geometry.Vec3, bool) {
	origin, ok := SelectDims(ev.Position, ev.DimsDisplayed)
	if !ok {
		return geometry.Vec3{}, false
	}
	direction, ok := SelectDims(ev.ViewDirection, ev.DimsDisplayed)
	if !ok {
		return geometry.Vec3{}, false
	}
	return plane.Plane().IntersectLine(origin, direction)
}

// PlanePositionND maps a mouse event to a full N-D point: the 3-D
// plane intersection re-embedded into the viewer's current N-D cursor
// position at the displayed dims.
func PlanePositionND(ev MouseEvent, viewer Viewer, plane PlaneLayer) ([]float64, bool) {
	p3, ok := PlanePosition3D(ev, plane)
	if !ok {
		return nil, false
	}
	return EmbedDims(viewer.CursorPosition(), ev.DimsDisplayed, p3), true
}
