package scene

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/annot3d/geometry"
	"github.com/hupe1980/annot3d/mesh"
)

// MemoryPlaneLayer is an in-memory PlaneLayer implementation.
type MemoryPlaneLayer struct {
	name     string
	visible  bool
	bbox     geometry.BoundingBox
	plane    geometry.Plane
	metadata map[string]any
}

// NewMemoryPlaneLayer creates a visible plane layer with the given data
// extent and slicing plane.
func NewMemoryPlaneLayer(name string, bbox geometry.BoundingBox, plane geometry.Plane) *MemoryPlaneLayer {
	return &MemoryPlaneLayer{
		name:     name,
		visible:  true,
		bbox:     bbox,
		plane:    plane,
		metadata: make(map[string]any),
	}
}

// Name returns the layer name.
func (l *MemoryPlaneLayer) Name() string { return l.name }

// Visible reports whether the layer is shown.
func (l *MemoryPlaneLayer) Visible() bool { return l.visible }

// SetVisible toggles layer visibility.
func (l *MemoryPlaneLayer) SetVisible(v bool) { l.visible = v }

// Metadata returns the layer's metadata map.
func (l *MemoryPlaneLayer) Metadata() map[string]any { return l.metadata }

// BoundingBox returns the layer's data extent.
func (l *MemoryPlaneLayer) BoundingBox() geometry.BoundingBox { return l.bbox }

// Plane returns the slicing plane.
func (l *MemoryPlaneLayer) Plane() geometry.Plane { return l.plane }

// SetPlane moves the slicing plane.
func (l *MemoryPlaneLayer) SetPlane(p geometry.Plane) { l.plane = p }

// MemoryPointLayer is an in-memory PointLayer implementation. It keeps
// feature columns in lockstep with the point array: SetData truncates or
// zero-pads every column to the new point count.
type MemoryPointLayer struct {
	name      string
	visible   bool
	ndim      int
	data      [][]float64
	intCols   map[string][]int64
	floatCols map[string][]float64
	selection *roaring.Bitmap
	metadata  map[string]any
	events    PointLayerEvents
}

// NewMemoryPointLayer creates an empty point layer for ndim-dimensional
// points.
func NewMemoryPointLayer(name string, ndim int) *MemoryPointLayer {
	return &MemoryPointLayer{
		name:      name,
		visible:   true,
		ndim:      ndim,
		data:      [][]float64{},
		intCols:   make(map[string][]int64),
		floatCols: make(map[string][]float64),
		selection: roaring.New(),
		metadata:  make(map[string]any),
	}
}

// Name returns the layer name.
func (l *MemoryPointLayer) Name() string { return l.name }

// Visible reports whether the layer is shown.
func (l *MemoryPointLayer) Visible() bool { return l.visible }

// SetVisible toggles layer visibility.
func (l *MemoryPointLayer) SetVisible(v bool) { l.visible = v }

// Metadata returns the layer's metadata map.
func (l *MemoryPointLayer) Metadata() map[string]any { return l.metadata }

// NDim returns the dimensionality of the layer's points.
func (l *MemoryPointLayer) NDim() int { return l.ndim }

// Len returns the number of points.
func (l *MemoryPointLayer) Len() int { return len(l.data) }

// Data returns a copy of the point array.
func (l *MemoryPointLayer) Data() [][]float64 {
	return copyRows(l.data)
}

// SetData replaces the point array with a copy of data, resizes every
// feature column to the new length and emits the Data signal.
func (l *MemoryPointLayer) SetData(data [][]float64) {
	l.data = copyRows(data)
	n := len(l.data)
	for name, col := range l.intCols {
		l.intCols[name] = resizeInts(col, n)
	}
	for name, col := range l.floatCols {
		l.floatCols[name] = resizeFloats(col, n)
	}
	l.events.Data.Emit()
}

// Ints returns a copy of the named integer column.
func (l *MemoryPointLayer) Ints(name string) ([]int64, bool) {
	col, ok := l.intCols[name]
	if !ok {
		return nil, false
	}
	out := make([]int64, len(col))
	copy(out, col)
	return out, true
}

// SetInts stores a copy of values as the named integer column, resized to
// the current point count.
func (l *MemoryPointLayer) SetInts(name string, values []int64) {
	col := make([]int64, len(values))
	copy(col, values)
	l.intCols[name] = resizeInts(col, len(l.data))
}

// Floats returns a copy of the named float column.
func (l *MemoryPointLayer) Floats(name string) ([]float64, bool) {
	col, ok := l.floatCols[name]
	if !ok {
		return nil, false
	}
	out := make([]float64, len(col))
	copy(out, col)
	return out, true
}

// SetFloats stores a copy of values as the named float column, resized to
// the current point count.
func (l *MemoryPointLayer) SetFloats(name string, values []float64) {
	col := make([]float64, len(values))
	copy(col, values)
	l.floatCols[name] = resizeFloats(col, len(l.data))
}

// Selection returns a copy of the selected point indices.
func (l *MemoryPointLayer) Selection() *roaring.Bitmap {
	return l.selection.Clone()
}

// SetSelection replaces the selection and emits the Selection signal.
// A nil selection clears it.
func (l *MemoryPointLayer) SetSelection(sel *roaring.Bitmap) {
	if sel == nil {
		l.selection = roaring.New()
	} else {
		l.selection = sel.Clone()
	}
	l.events.Selection.Emit()
}

// Events returns the layer's notification group.
func (l *MemoryPointLayer) Events() *PointLayerEvents { return &l.events }

// MemorySurfaceLayer is an in-memory SurfaceLayer implementation.
type MemorySurfaceLayer struct {
	name     string
	visible  bool
	metadata map[string]any
	mesh     *mesh.Mesh
}

// NewMemorySurfaceLayer creates an empty surface layer.
func NewMemorySurfaceLayer(name string) *MemorySurfaceLayer {
	return &MemorySurfaceLayer{
		name:     name,
		visible:  true,
		metadata: make(map[string]any),
	}
}

// Name returns the layer name.
func (l *MemorySurfaceLayer) Name() string { return l.name }

// Visible reports whether the layer is shown.
func (l *MemorySurfaceLayer) Visible() bool { return l.visible }

// SetVisible toggles layer visibility.
func (l *MemorySurfaceLayer) SetVisible(v bool) { l.visible = v }

// Metadata returns the layer's metadata map.
func (l *MemorySurfaceLayer) Metadata() map[string]any { return l.metadata }

// Mesh returns the current mesh, or nil.
func (l *MemorySurfaceLayer) Mesh() *mesh.Mesh { return l.mesh }

// SetMesh replaces the mesh. nil clears the surface.
func (l *MemorySurfaceLayer) SetMesh(m *mesh.Mesh) { l.mesh = m }

// MemoryViewer is an in-memory Viewer implementation: camera state, N-D
// cursor, displayed dims and the input pipeline, without any rendering.
type MemoryViewer struct {
	ndim          int
	viewDirection []float64
	cursor        []float64
	displayedDims []int
	mouse         CallbackList
	keys          KeyBindings
	layers        []Layer
}

// NewMemoryViewer creates a viewer over ndim-dimensional data. The last
// three dims are displayed; the view direction defaults to the first
// displayed axis and the cursor to the origin.
func NewMemoryViewer(ndim int) *MemoryViewer {
	if ndim < 3 {
		ndim = 3
	}
	dims := []int{ndim - 3, ndim - 2, ndim - 1}
	dir := make([]float64, ndim)
	dir[dims[0]] = 1
	return &MemoryViewer{
		ndim:          ndim,
		viewDirection: dir,
		cursor:        make([]float64, ndim),
		displayedDims: dims,
	}
}

// ViewDirection returns the camera view direction.
func (v *MemoryViewer) ViewDirection() []float64 { return v.viewDirection }

// SetViewDirection replaces the camera view direction.
func (v *MemoryViewer) SetViewDirection(dir []float64) { v.viewDirection = dir }

// CursorPosition returns the N-D cursor position.
func (v *MemoryViewer) CursorPosition() []float64 { return v.cursor }

// SetCursorPosition moves the N-D cursor.
func (v *MemoryViewer) SetCursorPosition(pos []float64) { v.cursor = pos }

// DisplayedDims returns the displayed axes in display order.
func (v *MemoryViewer) DisplayedDims() []int { return v.displayedDims }

// SetDisplayedDims changes which axes are displayed.
func (v *MemoryViewer) SetDisplayedDims(dims []int) { v.displayedDims = dims }

// MouseCallbacks returns the click-callback pipeline.
func (v *MemoryViewer) MouseCallbacks() *CallbackList { return &v.mouse }

// KeyBindings returns the key-binding registry.
func (v *MemoryViewer) KeyBindings() *KeyBindings { return &v.keys }

// AddLayer attaches a layer.
func (v *MemoryViewer) AddLayer(layer Layer) { v.layers = append(v.layers, layer) }

// Layers returns the attached layers.
func (v *MemoryViewer) Layers() []Layer { return v.layers }

// MouseEvent builds a mouse event at the given N-D position using the
// viewer's displayed dims. A nil viewDirection falls back to the camera's.
func (v *MemoryViewer) MouseEvent(position, viewDirection []float64, mods Modifier) MouseEvent {
	if viewDirection == nil {
		viewDirection = v.viewDirection
	}
	return MouseEvent{
		Position:      position,
		ViewDirection: viewDirection,
		DimsDisplayed: v.displayedDims,
		Modifiers:     mods,
	}
}

// Click dispatches a mouse event through the viewer's callback pipeline.
func (v *MemoryViewer) Click(ev MouseEvent) {
	v.mouse.Dispatch(ev)
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

func resizeInts(col []int64, n int) []int64 {
	if len(col) == n {
		return col
	}
	out := make([]int64, n)
	copy(out, col)
	return out
}

func resizeFloats(col []float64, n int) []float64 {
	if len(col) == n {
		return col
	}
	out := make([]float64, n)
	copy(out, col)
	return out
}
