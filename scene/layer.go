package scene

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/annot3d/geometry"
	"github.com/hupe1980/annot3d/mesh"
)

// Layer is the base capability shared by all host layers.
type Layer interface {
	// Name returns the layer's display name.
	Name() string

	// Visible reports whether the layer is currently shown.
	Visible() bool

	// Metadata returns the layer's mutable metadata map. Annotation
	// layers carry their type tag here.
	Metadata() map[string]any
}

// PlaneLayer is the reference layer whose currently-displayed oblique
// slice defines the plane annotations are projected onto.
type PlaneLayer interface {
	Layer

	// BoundingBox returns the layer's N-D data extent.
	BoundingBox() geometry.BoundingBox

	// Plane returns the slicing plane in displayed data coordinates.
	Plane() geometry.Plane
}

// PointLayerEvents groups the change notifications of a point layer.
// The annotator blocks the appropriate signal while applying a
// synchronized write so the write never echoes back.
type PointLayerEvents struct {
	Data      Signal
	Selection Signal
}

// PointLayer is a mutable, user-editable ordered array of N-D points with
// named per-point feature columns and a selection set.
//
// SetData and SetSelection emit the corresponding signal; feature-column
// writes do not (columns are sidecar state maintained in lockstep with the
// point array by whoever writes them).
type PointLayer interface {
	Layer

	// NDim returns the dimensionality of the layer's points.
	NDim() int

	// Len returns the number of points.
	Len() int

	// Data returns the point array, rows in insertion order.
	Data() [][]float64

	// SetData replaces the point array and emits the Data signal.
	// Feature columns are truncated or zero-padded to the new length.
	SetData(data [][]float64)

	// Ints returns the named integer feature column.
	Ints(name string) ([]int64, bool)

	// SetInts replaces the named integer feature column.
	SetInts(name string, values []int64)

	// Floats returns the named float feature column.
	Floats(name string) ([]float64, bool)

	// SetFloats replaces the named float feature column.
	SetFloats(name string, values []float64)

	// Selection returns the set of selected point indices.
	Selection() *roaring.Bitmap

	// SetSelection replaces the selection and emits the Selection signal.
	SetSelection(sel *roaring.Bitmap)

	// Events returns the layer's notification group.
	Events() *PointLayerEvents
}

// SurfaceLayer is a host layer holding a derived triangle mesh. A nil mesh
// means no surface is drawn.
type SurfaceLayer interface {
	Layer

	// Mesh returns the current mesh, or nil.
	Mesh() *mesh.Mesh

	// SetMesh replaces the mesh. nil clears the surface.
	SetMesh(m *mesh.Mesh)
}

// Viewer is the host's camera/view-state provider and input pipeline.
type Viewer interface {
	// ViewDirection returns the camera view direction as an N-D vector.
	ViewDirection() []float64

	// CursorPosition returns the current N-D cursor position. The
	// non-displayed coordinates carry the current slice position.
	CursorPosition() []float64

	// DisplayedDims returns the axes currently rendered, in display order.
	DisplayedDims() []int

	// MouseCallbacks returns the ordered click-callback pipeline.
	MouseCallbacks() *CallbackList

	// KeyBindings returns the key-binding registry.
	KeyBindings() *KeyBindings

	// AddLayer attaches a layer to the viewer.
	AddLayer(layer Layer)

	// Layers returns the attached layers in attachment order.
	Layers() []Layer
}
