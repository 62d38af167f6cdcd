package paths

import (
	"context"
	"fmt"

	"github.com/hupe1980/annot3d/archive"
	"github.com/hupe1980/annot3d/blobstore"
	"github.com/hupe1980/annot3d/scene"
)

// PathIDColumn is the feature column holding the per-point path id.
// Ids are positive; 0 marks a point that has not been assigned yet.
const PathIDColumn = "path_id"

// Model is an observable collection of path points with their path ids.
type Model struct {
	points [][]float64
	ids    []int64
	events ModelEvents
}

// ModelEvents groups the change notifications of a path model.
type ModelEvents struct {
	Data scene.Signal
}

// NewModel creates an empty path model.
func NewModel() *Model {
	return &Model{points: [][]float64{}, ids: []int64{}}
}

// Events returns the model's notification group.
func (m *Model) Events() *ModelEvents { return &m.events }

// Len returns the total number of path points.
func (m *Model) Len() int { return len(m.points) }

// Points returns a copy of the point array, in insertion order.
func (m *Model) Points() [][]float64 { return copyRows(m.points) }

// IDs returns a copy of the per-point path ids.
func (m *Model) IDs() []int64 { return append([]int64(nil), m.ids...) }

// SetData replaces all points and ids and emits the Data signal. The
// point array must be rectangular and match the id count.
func (m *Model) SetData(points [][]float64, ids []int64) error {
	if len(points) != len(ids) {
		return fmt.Errorf("paths: %d points but %d ids", len(points), len(ids))
	}
	if len(points) > 0 {
		cols := len(points[0])
		for i, row := range points {
			if len(row) != cols {
				return fmt.Errorf("paths: point %d has %d coordinates, want %d", i, len(row), cols)
			}
		}
	}
	m.points = copyRows(points)
	m.ids = append([]int64(nil), ids...)
	m.events.Data.Emit()
	return nil
}

// Append adds a point to the path with the given id and emits the Data
// signal.
func (m *Model) Append(point []float64, id int64) error {
	if len(m.points) > 0 && len(point) != len(m.points[0]) {
		return fmt.Errorf("paths: dimension mismatch: got %d, want %d", len(point), len(m.points[0]))
	}
	p := make([]float64, len(point))
	copy(p, point)
	m.points = append(m.points, p)
	m.ids = append(m.ids, id)
	m.events.Data.Emit()
	return nil
}

// NextID returns the id the next new path should get: one past the
// highest id in use, starting at 1.
func (m *Model) NextID() int64 {
	next := int64(1)
	for _, id := range m.ids {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

// Paths groups the points into paths, ordered by first appearance. Point
// order within a path is insertion order.
func (m *Model) Paths() []Path {
	var order []int64
	grouped := make(map[int64][][]float64)
	for i, id := range m.ids {
		if _, ok := grouped[id]; !ok {
			order = append(order, id)
		}
		row := make([]float64, len(m.points[i]))
		copy(row, m.points[i])
		grouped[id] = append(grouped[id], row)
	}

	out := make([]Path, len(order))
	for i, id := range order {
		out[i] = Path{ID: id, Points: grouped[id]}
	}
	return out
}

// AsLayer materializes the model as a new in-memory point layer with a
// path_id column, carrying the path annotation type tag.
func (m *Model) AsLayer(name string, ndim int) *scene.MemoryPointLayer {
	if len(m.points) > 0 {
		ndim = len(m.points[0])
	}
	layer := scene.NewMemoryPointLayer(name, ndim)
	layer.Metadata()[archive.TypeAttr] = archive.TypePaths
	layer.SetData(m.points)
	layer.SetInts(PathIDColumn, m.ids)
	return layer
}

// FromLayer replaces the model contents with the layer's points and
// path_id column.
func (m *Model) FromLayer(layer scene.PointLayer) error {
	points := layer.Data()
	ids, ok := layer.Ints(PathIDColumn)
	if !ok {
		ids = make([]int64, len(points))
		for i := range ids {
			ids[i] = 1
		}
	}
	return m.SetData(points, ids)
}

// ToArchive writes the model as the named archive. Points go into the
// data array; path ids travel as an attribute.
func (m *Model) ToArchive(ctx context.Context, store blobstore.BlobStore, name string, opts ...archive.Option) error {
	arr := &archive.Array{
		Data: m.Points(),
		Attrs: map[string]any{
			archive.TypeAttr:    archive.TypePaths,
			archive.PathIDsAttr: m.IDs(),
		},
	}
	return archive.Save(ctx, store, name, arr, opts...)
}

// FromArchive replaces the model contents with the named archive. Loading
// an archive of a different annotation type fails without touching the
// model.
func (m *Model) FromArchive(ctx context.Context, store blobstore.BlobStore, name string, opts ...archive.Option) error {
	arr, err := archive.Load(ctx, store, name, opts...)
	if err != nil {
		return err
	}
	if err := arr.ValidateType(archive.TypePaths); err != nil {
		return err
	}
	ids, ok := archive.IntsAttr(arr.Attrs, archive.PathIDsAttr)
	if !ok {
		return &archive.ErrFormat{Name: name, Issue: "missing path_ids attribute"}
	}
	return m.SetData(arr.Data, ids)
}

func copyRows(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		r := make([]float64, len(row))
		copy(r, row)
		out[i] = r
	}
	return out
}
