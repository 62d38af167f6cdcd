package mesh

import (
	"math"

	"github.com/hupe1980/annot3d/geometry"
)

// Default tessellation of a sphere annotation: 20 latitude rows by
// 20 longitude columns.
const (
	DefaultRows = 20
	DefaultCols = 20
)

// unitSphere tessellates the unit sphere as a latitude/longitude grid with
// rows+1 rings of cols+1 vertices each (the seam column is duplicated so
// the grid stays rectangular). Faces are the two triangles of each grid
// quad. The output is deterministic for fixed rows/cols.
func unitSphere(rows, cols int) *Mesh {
	vertexCount := (rows + 1) * (cols + 1)
	m := &Mesh{
		Vertices: make([]float64, 0, vertexCount*3),
		Indices:  make([]uint32, 0, rows*cols*6),
	}

	for i := 0; i <= rows; i++ {
		theta := math.Pi * float64(i) / float64(rows)
		sinT, cosT := math.Sincos(theta)
		for j := 0; j <= cols; j++ {
			phi := 2 * math.Pi * float64(j) / float64(cols)
			sinP, cosP := math.Sincos(phi)
			m.Vertices = append(m.Vertices,
				sinT*cosP, // x
				sinT*sinP, // y
				cosT,      // z
			)
		}
	}

	stride := uint32(cols + 1)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			a := uint32(i)*stride + uint32(j)
			b := a + stride
			m.Indices = append(m.Indices,
				a, b, a+1,
				a+1, b, b+1,
			)
		}
	}

	return m
}

// sphereCounts returns the vertex and index counts of one tessellated sphere.
func sphereCounts(rows, cols int) (vertices, indices int) {
	return (rows + 1) * (cols + 1), rows * cols * 6
}

// writeSphere scales the unit sphere by radius, translates it to center and
// writes the result into dst starting at vertOff/idxOff, with face indices
// rebased onto the global vertex buffer.
func writeSphere(dst *Mesh, unit *Mesh, center geometry.Vec3, radius float64, vertOff, idxOff int) {
	base := uint32(vertOff)
	for i := 0; i < len(unit.Vertices); i += 3 {
		dst.Vertices[vertOff*3+i] = unit.Vertices[i]*radius + center.X
		dst.Vertices[vertOff*3+i+1] = unit.Vertices[i+1]*radius + center.Y
		dst.Vertices[vertOff*3+i+2] = unit.Vertices[i+2]*radius + center.Z
	}
	for i, idx := range unit.Indices {
		dst.Indices[idxOff+i] = idx + base
	}
}
