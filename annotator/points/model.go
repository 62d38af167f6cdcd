package points

import (
	"context"
	"fmt"

	"github.com/hupe1980/annot3d/archive"
	"github.com/hupe1980/annot3d/blobstore"
	"github.com/hupe1980/annot3d/scene"
)

// ModelEvents groups the change notifications of a point model.
type ModelEvents struct {
	Data scene.Signal
}

// Model is an observable collection of N-D points. The point array is
// always rectangular: every point has the same dimensionality.
type Model struct {
	data   [][]float64
	events ModelEvents
}

// NewModel creates an empty point model.
func NewModel() *Model {
	return &Model{data: [][]float64{}}
}

// Events returns the model's notification group.
func (m *Model) Events() *ModelEvents { return &m.events }

// Len returns the number of points.
func (m *Model) Len() int { return len(m.data) }

// Data returns a copy of the point array.
func (m *Model) Data() [][]float64 {
	return copyRows(m.data)
}

// SetData replaces the point array and emits the Data signal. The array
// must be rectangular.
func (m *Model) SetData(data [][]float64) error {
	if err := validateRect(data); err != nil {
		return err
	}
	m.data = copyRows(data)
	m.events.Data.Emit()
	return nil
}

// Append adds a point and emits the Data signal. The point must match the
// dimensionality of the existing points.
func (m *Model) Append(point []float64) error {
	if len(m.data) > 0 && len(point) != len(m.data[0]) {
		return fmt.Errorf("points: dimension mismatch: got %d, want %d", len(point), len(m.data[0]))
	}
	p := make([]float64, len(point))
	copy(p, point)
	m.data = append(m.data, p)
	m.events.Data.Emit()
	return nil
}

// AsLayer materializes the model as a new in-memory point layer carrying
// the point annotation type tag. ndim sets the layer dimensionality when
// the model is empty.
func (m *Model) AsLayer(name string, ndim int) *scene.MemoryPointLayer {
	if len(m.data) > 0 {
		ndim = len(m.data[0])
	}
	layer := scene.NewMemoryPointLayer(name, ndim)
	layer.Metadata()[archive.TypeAttr] = archive.TypePoints
	layer.SetData(m.data)
	return layer
}

// FromLayer replaces the model contents with the layer's points.
func (m *Model) FromLayer(layer scene.PointLayer) error {
	return m.SetData(layer.Data())
}

// ToArchive writes the model as the named archive.
func (m *Model) ToArchive(ctx context.Context, store blobstore.BlobStore, name string, opts ...archive.Option) error {
	arr := &archive.Array{
		Data:  m.Data(),
		Attrs: map[string]any{archive.TypeAttr: archive.TypePoints},
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
	if err := arr.ValidateType(archive.TypePoints); err != nil {
		return err
	}
	return m.SetData(arr.Data)
}

func validateRect(data [][]float64) error {
	if len(data) == 0 {
		return nil
	}
	cols := len(data[0])
	for i, row := range data {
		if len(row) != cols {
			return fmt.Errorf("points: row %d has %d coordinates, want %d", i, len(row), cols)
		}
	}
	return nil
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
