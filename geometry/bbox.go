package geometry

// BoundingBox is an N-dimensional axis-aligned bounding box given by
// per-dimension minima and maxima. Min and Max must have equal length.
type BoundingBox struct {
	Min []float64
	Max []float64
}

// NewBoundingBox creates a bounding box from per-dimension min/max pairs.
func NewBoundingBox(min, max []float64) BoundingBox {
	return BoundingBox{Min: min, Max: max}
}

// NDim returns the number of dimensions of the box.
func (b BoundingBox) NDim() int {
	return len(b.Min)
}

// Contains reports whether every coordinate of point lies within the
// corresponding per-dimension min/max, inclusive at both ends. A point
// whose dimensionality does not match the box is never contained.
func (b BoundingBox) Contains(point []float64) bool {
	if len(point) != len(b.Min) || len(point) != len(b.Max) {
		return false
	}
	for i, p := range point {
		if p < b.Min[i] || p > b.Max[i] {
			return false
		}
	}
	return true
}
