// Package mesh builds the derived triangle meshes for sphere annotations.
// Meshes are a pure function of the sphere set: any change to a sphere's
// center, radius or membership recomputes the whole buffer rather than
// patching it incrementally.
package mesh

// Mesh is a triangle mesh suitable for a host surface layer.
// Vertices is flat with 3 floats per vertex (x,y,z); Indices has
// 3 entries per triangle, indexing into Vertices.
type Mesh struct {
	Vertices []float64
	Indices  []uint32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return m == nil || len(m.Vertices) == 0
}
