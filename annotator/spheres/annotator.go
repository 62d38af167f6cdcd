package spheres

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"gonum.org/v1/gonum/floats"

	"github.com/hupe1980/annot3d"
	"github.com/hupe1980/annot3d/archive"
	"github.com/hupe1980/annot3d/mesh"
	"github.com/hupe1980/annot3d/scene"
)

const (
	// SphereIDColumn is the feature column holding the per-point sphere id.
	// Ids are positive; 0 marks a point that has not been assigned yet.
	SphereIDColumn = "sphere_id"
	// RadiusColumn is the feature column holding the per-sphere radius.
	RadiusColumn = "radius"

	// DefaultRadius is assigned to newly placed spheres.
	DefaultRadius = 5.0

	// KeyNewSphere switches to add mode so the next click places a new
	// sphere.
	KeyNewSphere = "n"
	// KeyRadius sets the selected sphere's radius from where the cursor
	// ray pierces the reference plane.
	KeyRadius = "r"
)

type options struct {
	planeLayer    scene.PlaneLayer
	pointLayer    scene.PointLayer
	surfaceLayer  scene.SurfaceLayer
	logger        *annot3d.Logger
	defaultRadius float64
	meshRows      int
	meshCols      int
}

// Option configures the annotator.
type Option func(*options)

// WithLayers sets the reference plane layer, the sphere point layer and
// the mesh surface layer. A nil point layer makes the annotator create
// in-memory sphere and surface layers on the viewer.
func WithLayers(plane scene.PlaneLayer, pts scene.PointLayer, surface scene.SurfaceLayer) Option {
	return func(o *options) {
		o.planeLayer = plane
		o.pointLayer = pts
		o.surfaceLayer = surface
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *annot3d.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithDefaultRadius sets the radius assigned to newly placed spheres.
func WithDefaultRadius(r float64) Option {
	return func(o *options) {
		if r > 0 {
			o.defaultRadius = r
		}
	}
}

// WithMeshResolution sets the tessellation density of the sphere meshes.
func WithMeshResolution(rows, cols int) Option {
	return func(o *options) {
		o.meshRows = rows
		o.meshCols = cols
	}
}

// Annotator places and edits spheres. Sphere state lives in the point
// layer (centers plus sphere_id and radius columns); the annotator keeps a
// per-id radius registry in lockstep and regenerates the surface mesh
// after every structural change.
//
// All methods must be called from the host's event thread.
type Annotator struct {
	viewer        scene.Viewer
	planeLayer    scene.PlaneLayer
	pointLayer    scene.PointLayer
	surfaceLayer  scene.SurfaceLayer
	logger        *annot3d.Logger
	defaultRadius float64
	meshRows      int
	meshCols      int

	mode        Mode
	records     map[int64]float64
	enabled     bool
	handler     *scene.MouseHandler
	disconnects []func()
}

// NewAnnotator creates a sphere annotator on the viewer. It starts
// disabled, in add mode.
func NewAnnotator(viewer scene.Viewer, opts ...Option) *Annotator {
	o := &options{
		logger:        annot3d.NoopLogger(),
		defaultRadius: DefaultRadius,
		meshRows:      mesh.DefaultRows,
		meshCols:      mesh.DefaultCols,
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.pointLayer == nil {
		ndim := len(viewer.CursorPosition())
		pts := scene.NewMemoryPointLayer("spheres", ndim)
		pts.Metadata()[archive.TypeAttr] = archive.TypeSpheres
		viewer.AddLayer(pts)
		o.pointLayer = pts
	}
	if o.surfaceLayer == nil {
		surface := scene.NewMemorySurfaceLayer("sphere meshes")
		viewer.AddLayer(surface)
		o.surfaceLayer = surface
	}

	a := &Annotator{
		viewer:        viewer,
		planeLayer:    o.planeLayer,
		pointLayer:    o.pointLayer,
		surfaceLayer:  o.surfaceLayer,
		logger:        o.logger,
		defaultRadius: o.defaultRadius,
		meshRows:      o.meshRows,
		meshCols:      o.meshCols,
		mode:          ModeAdd,
		records:       make(map[int64]float64),
	}
	a.handler = &scene.MouseHandler{Fn: a.onClick}
	return a
}

// PointLayer returns the layer holding the sphere centers and columns.
func (a *Annotator) PointLayer() scene.PointLayer { return a.pointLayer }

// SurfaceLayer returns the layer holding the sphere meshes.
func (a *Annotator) SurfaceLayer() scene.SurfaceLayer { return a.surfaceLayer }

// Mode returns the current click mode.
func (a *Annotator) Mode() Mode { return a.mode }

// SetMode switches the click mode. Entering add mode clears the selection
// so the next click starts a fresh sphere.
func (a *Annotator) SetMode(m Mode) {
	if m == a.mode {
		return
	}
	a.mode = m
	if m == ModeAdd && a.pointLayer != nil {
		a.pointLayer.SetSelection(nil)
	}
	a.logger.WithMode(m.String()).Debug("mode changed")
}

// Enabled reports whether the annotator is active.
func (a *Annotator) Enabled() bool { return a.enabled }

// SetEnabled activates or deactivates the annotator. Redundant calls are
// no-ops; disabling removes exactly what enabling registered.
func (a *Annotator) SetEnabled(enabled bool) {
	if enabled == a.enabled {
		return
	}
	if enabled {
		a.attach()
	} else {
		a.detach()
	}
	a.enabled = enabled
}

// SetLayers rebinds the annotator to new layers. While enabled the swap is
// atomic: old layers detach fully before the new ones attach.
func (a *Annotator) SetLayers(plane scene.PlaneLayer, pts scene.PointLayer, surface scene.SurfaceLayer) {
	if a.enabled {
		a.detach()
	}
	a.planeLayer = plane
	a.pointLayer = pts
	a.surfaceLayer = surface
	if a.enabled {
		a.attach()
	}
}

// ActiveSphereID returns the id of the selected sphere. ok is false unless
// exactly one point is selected.
func (a *Annotator) ActiveSphereID() (int64, bool) {
	idx, ok := a.activeIndex()
	if !ok {
		return 0, false
	}
	ids, ok := a.pointLayer.Ints(SphereIDColumn)
	if !ok || idx >= len(ids) {
		return 0, false
	}
	return ids[idx], true
}

func (a *Annotator) activeIndex() (int, bool) {
	if a.pointLayer == nil {
		return 0, false
	}
	sel := a.pointLayer.Selection()
	if sel.GetCardinality() != 1 {
		return 0, false
	}
	idx := int(sel.Minimum())
	if idx >= len(a.pointLayer.Data()) {
		return 0, false
	}
	return idx, true
}

// Spheres snapshots the current sphere set.
func (a *Annotator) Spheres() (*Spheres, error) {
	return FromLayer(a.pointLayer)
}

// SetSpheres replaces the sphere set, renumbering ids from 1, and
// regenerates the meshes.
func (a *Annotator) SetSpheres(s *Spheres) error {
	ids := make([]int64, s.Len())
	for i := range ids {
		ids[i] = int64(i) + 1
	}
	a.applyLayerState(s.Centers(), ids, s.Radii())
	a.pointLayer.SetSelection(nil)
	a.mode = ModeAdd
	a.rebuildRecords()
	return a.RecomputeMeshes()
}

func (a *Annotator) attach() {
	a.viewer.MouseCallbacks().Add(a.handler)
	a.viewer.KeyBindings().Bind(KeyNewSphere, func() { a.SetMode(ModeAdd) })
	a.viewer.KeyBindings().Bind(KeyRadius, a.setRadiusFromCursor)

	if a.pointLayer != nil {
		disconnect := a.pointLayer.Events().Data.Connect(a.onLayerData)
		a.disconnects = append(a.disconnects, disconnect)

		// Adopt whatever the layer already holds and render it.
		a.adoptLayerState()
		a.recomputeLogged()
	}
}

func (a *Annotator) detach() {
	a.viewer.MouseCallbacks().Remove(a.handler)
	a.viewer.KeyBindings().Unbind(KeyNewSphere)
	a.viewer.KeyBindings().Unbind(KeyRadius)

	for _, disconnect := range a.disconnects {
		disconnect()
	}
	a.disconnects = nil
}

func (a *Annotator) onClick(ev scene.MouseEvent) {
	if !ev.Modifiers.Has(scene.ModAlt) {
		return
	}
	if a.planeLayer == nil || !a.planeLayer.Visible() {
		return
	}

	pos, ok := scene.PlanePositionND(ev, a.viewer, a.planeLayer)
	if !ok {
		return
	}
	if !a.planeLayer.BoundingBox().Contains(pos) {
		a.logger.Debug("click outside data extent, ignored")
		return
	}

	switch a.mode {
	case ModeAdd:
		a.addSphere(pos)
	case ModeEdit:
		a.moveSphere(pos)
	}
}

// addSphere places a new sphere at pos with a fresh id, selects it, and
// hands over to edit mode so follow-up clicks adjust it.
func (a *Annotator) addSphere(pos []float64) {
	data := a.pointLayer.Data()
	ids, _ := a.pointLayer.Ints(SphereIDColumn)
	radii, _ := a.pointLayer.Floats(RadiusColumn)

	newID := int64(1)
	for _, id := range ids {
		if id >= newID {
			newID = id + 1
		}
	}

	data = append(data, pos)
	ids = append(ids, newID)
	radii = append(radii, a.defaultRadius)

	a.applyLayerState(data, ids, radii)
	a.records[newID] = a.defaultRadius
	a.pointLayer.SetSelection(roaring.BitmapOf(uint32(len(data) - 1)))
	a.mode = ModeEdit

	a.logger.WithSphereID(newID).WithCount(len(data)).Debug("sphere added")
	a.recomputeLogged()
}

// moveSphere relocates the selected sphere's center. Id and radius are
// untouched.
func (a *Annotator) moveSphere(pos []float64) {
	idx, ok := a.activeIndex()
	if !ok {
		a.logger.Debug("edit click without a selected sphere, ignored")
		return
	}

	data := a.pointLayer.Data()
	ids, _ := a.pointLayer.Ints(SphereIDColumn)
	radii, _ := a.pointLayer.Floats(RadiusColumn)
	data[idx] = pos

	a.applyLayerState(data, ids, radii)

	a.logger.WithSphereID(ids[idx]).Debug("sphere moved")
	a.recomputeLogged()
}

// setRadiusFromCursor sets the selected sphere's radius to the distance
// between its center and the point where the cursor ray pierces the
// reference plane, in displayed coordinates. Without a visible reference
// plane the gesture does nothing: the cursor alone does not define a
// point in 3-D.
func (a *Annotator) setRadiusFromCursor() {
	idx, ok := a.activeIndex()
	if !ok {
		return
	}
	if a.planeLayer == nil || !a.planeLayer.Visible() {
		return
	}

	data := a.pointLayer.Data()
	dims := a.viewer.DisplayedDims()
	center, ok := scene.SelectDims(data[idx], dims)
	if !ok {
		return
	}
	cursor, ok := scene.SelectDims(a.viewer.CursorPosition(), dims)
	if !ok {
		return
	}
	direction, ok := scene.SelectDims(a.viewer.ViewDirection(), dims)
	if !ok {
		return
	}
	hit, ok := a.planeLayer.Plane().IntersectLine(cursor, direction)
	if !ok {
		return
	}

	r := floats.Distance(center.Slice(), hit.Slice(), 2)

	ids, _ := a.pointLayer.Ints(SphereIDColumn)
	radii, _ := a.pointLayer.Floats(RadiusColumn)
	radii[idx] = r
	a.pointLayer.SetFloats(RadiusColumn, radii)
	a.records[ids[idx]] = r

	a.logger.WithSphereID(ids[idx]).Debug("radius set", "radius", r)
	a.recomputeLogged()
}

// onLayerData absorbs an interactive edit of the point layer: rows added
// by the host arrive with zeroed columns and get a fresh id and the
// default radius.
func (a *Annotator) onLayerData() {
	a.adoptLayerState()
	a.recomputeLogged()
}

func (a *Annotator) adoptLayerState() {
	data := a.pointLayer.Data()
	ids, _ := a.pointLayer.Ints(SphereIDColumn)
	radii, _ := a.pointLayer.Floats(RadiusColumn)

	if len(ids) != len(data) {
		ids = resizeInts(ids, len(data))
	}
	if len(radii) != len(data) {
		radii = resizeFloats(radii, len(data))
	}

	nextID := int64(1)
	for _, id := range ids {
		if id >= nextID {
			nextID = id + 1
		}
	}
	for i := range ids {
		if ids[i] == 0 {
			ids[i] = nextID
			nextID++
		}
		if radii[i] == 0 {
			if r, ok := a.records[ids[i]]; ok && r > 0 {
				radii[i] = r
			} else {
				radii[i] = a.defaultRadius
			}
		}
	}

	// Column writes don't emit, so this never echoes.
	a.pointLayer.SetInts(SphereIDColumn, ids)
	a.pointLayer.SetFloats(RadiusColumn, radii)
	a.rebuildRecords()
}

func (a *Annotator) rebuildRecords() {
	ids, _ := a.pointLayer.Ints(SphereIDColumn)
	radii, _ := a.pointLayer.Floats(RadiusColumn)

	a.records = make(map[int64]float64, len(ids))
	for i, id := range ids {
		if i < len(radii) {
			a.records[id] = radii[i]
		}
	}
}

// applyLayerState writes centers and columns in one suppressed step, so
// the annotator's own layer handler never observes a half-written state.
func (a *Annotator) applyLayerState(data [][]float64, ids []int64, radii []float64) {
	a.pointLayer.Events().Data.Block()
	defer a.pointLayer.Events().Data.Unblock()

	a.pointLayer.SetData(data)
	a.pointLayer.SetInts(SphereIDColumn, ids)
	a.pointLayer.SetFloats(RadiusColumn, radii)
}

// RecomputeMeshes regenerates the surface mesh from all spheres. It fails
// without touching the surface when any sphere id labels more than one
// point; an empty sphere set clears the surface.
func (a *Annotator) RecomputeMeshes() error {
	if a.pointLayer == nil || a.surfaceLayer == nil {
		return nil
	}

	data := a.pointLayer.Data()
	if len(data) == 0 {
		a.surfaceLayer.SetMesh(nil)
		return nil
	}

	ids, _ := a.pointLayer.Ints(SphereIDColumn)
	radii, _ := a.pointLayer.Floats(RadiusColumn)

	counts := make(map[int64]int, len(ids))
	for _, id := range ids {
		counts[id]++
	}
	for id, c := range counts {
		if c > 1 {
			return fmt.Errorf("spheres: sphere %d has %d points, want 1", id, c)
		}
	}

	dims := a.viewer.DisplayedDims()
	specs := make([]mesh.Sphere, 0, len(data))
	for i, row := range data {
		center, ok := scene.SelectDims(row, dims)
		if !ok {
			return fmt.Errorf("spheres: point %d has no displayed 3-D coordinates", i)
		}
		r := a.defaultRadius
		if i < len(radii) {
			r = radii[i]
		}
		specs = append(specs, mesh.Sphere{Center: center, Radius: r})
	}

	a.surfaceLayer.SetMesh(mesh.Spheres(specs, a.meshRows, a.meshCols))
	return nil
}

func (a *Annotator) recomputeLogged() {
	if err := a.RecomputeMeshes(); err != nil {
		a.logger.Error("mesh recompute", "error", err)
	}
}

func resizeInts(col []int64, n int) []int64 {
	out := make([]int64, n)
	copy(out, col)
	return out
}

func resizeFloats(col []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, col)
	return out
}
