package mesh

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/annot3d/geometry"
)

// Sphere is the input to the builder: one annotation sphere in displayed
// scene coordinates.
type Sphere struct {
	Center geometry.Vec3
	Radius float64
}

// Spheres tessellates every sphere at the given resolution and concatenates
// the results into one global vertex buffer and one global index buffer.
// The face indices of each sphere are offset by the running vertex count of
// the spheres before it, so sphere order is preserved in the buffers.
//
// An empty sphere set yields nil: the derived mesh is absent, not empty.
//
// Per-sphere tessellation fans out across a bounded errgroup into disjoint,
// preallocated buffer regions, so the output is byte-identical regardless
// of scheduling and the call returns only when the buffers are complete.
func Spheres(spheres []Sphere, rows, cols int) *Mesh {
	if len(spheres) == 0 {
		return nil
	}
	if rows <= 0 {
		rows = DefaultRows
	}
	if cols <= 0 {
		cols = DefaultCols
	}

	nVerts, nIdx := sphereCounts(rows, cols)
	out := &Mesh{
		Vertices: make([]float64, len(spheres)*nVerts*3),
		Indices:  make([]uint32, len(spheres)*nIdx),
	}
	unit := unitSphere(rows, cols)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, s := range spheres {
		i, s := i, s
		g.Go(func() error {
			writeSphere(out, unit, s.Center, s.Radius, i*nVerts, i*nIdx)
			return nil
		})
	}
	// Workers cannot fail; Wait is purely a completion barrier.
	_ = g.Wait()

	return out
}
