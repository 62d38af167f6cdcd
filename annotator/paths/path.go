package paths

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// Path is one ordered run of N-D points sharing a path id.
type Path struct {
	ID     int64
	Points [][]float64
}

// Sample returns n points evenly spaced along the path's arc length.
// Short paths are interpolated linearly; longer ones get a natural cubic
// spline through the annotated points. The path needs at least two
// distinct consecutive points.
func (p *Path) Sample(n int) ([][]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("paths: need at least 2 samples, got %d", n)
	}

	pts := dropZeroSegments(p.Points)
	if len(pts) < 2 {
		return nil, fmt.Errorf("paths: path %d has fewer than 2 distinct points", p.ID)
	}
	ndim := len(pts[0])

	// Chord-length parameterization: strictly increasing because
	// zero-length segments were dropped.
	ts := make([]float64, len(pts))
	for i := 1; i < len(pts); i++ {
		ts[i] = ts[i-1] + floats.Distance(pts[i-1], pts[i], 2)
	}

	predictors := make([]interp.FittablePredictor, ndim)
	for d := range predictors {
		ys := make([]float64, len(pts))
		for i, pt := range pts {
			ys[i] = pt[d]
		}
		var pred interp.FittablePredictor
		if len(pts) < 4 {
			pred = &interp.PiecewiseLinear{}
		} else {
			pred = &interp.NaturalCubic{}
		}
		if err := pred.Fit(ts, ys); err != nil {
			return nil, fmt.Errorf("paths: fit path %d: %w", p.ID, err)
		}
		predictors[d] = pred
	}

	total := ts[len(ts)-1]
	out := make([][]float64, n)
	for i := range out {
		t := total * float64(i) / float64(n-1)
		sample := make([]float64, ndim)
		for d, pred := range predictors {
			sample[d] = pred.Predict(t)
		}
		out[i] = sample
	}
	return out, nil
}

// dropZeroSegments removes points that repeat their predecessor exactly,
// which would break the chord-length parameterization.
func dropZeroSegments(pts [][]float64) [][]float64 {
	out := make([][]float64, 0, len(pts))
	for _, pt := range pts {
		if len(out) > 0 && floats.Equal(out[len(out)-1], pt) {
			continue
		}
		out = append(out, pt)
	}
	return out
}
