package paths

import (
	"github.com/hupe1980/annot3d"
	"github.com/hupe1980/annot3d/scene"
)

// KeyNewPath finishes the current path; the next click starts a new one.
const KeyNewPath = "n"

type options struct {
	model      *Model
	planeLayer scene.PlaneLayer
	pointLayer scene.PointLayer
	logger     *annot3d.Logger
}

// Option configures the annotator.
type Option func(*options)

// WithModel uses an existing path model instead of a fresh empty one.
func WithModel(m *Model) Option {
	return func(o *options) {
		o.model = m
	}
}

// WithLayers sets the reference plane layer and the destination point
// layer.
func WithLayers(plane scene.PlaneLayer, pts scene.PointLayer) Option {
	return func(o *options) {
		o.planeLayer = plane
		o.pointLayer = pts
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *annot3d.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Annotator appends a point to the current path on every Alt+click whose
// cursor ray hits the reference layer's slicing plane inside the layer's
// extent. The new-path key moves on to the next path id.
//
// All methods must be called from the host's event thread.
type Annotator struct {
	viewer     scene.Viewer
	model      *Model
	planeLayer scene.PlaneLayer
	pointLayer scene.PointLayer
	logger     *annot3d.Logger

	currentID   int64
	enabled     bool
	handler     *scene.MouseHandler
	disconnects []func()
}

// NewAnnotator creates a path annotator on the viewer. It starts disabled,
// annotating the first unused path id.
func NewAnnotator(viewer scene.Viewer, opts ...Option) *Annotator {
	o := &options{
		model:  NewModel(),
		logger: annot3d.NoopLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}

	a := &Annotator{
		viewer:     viewer,
		model:      o.model,
		planeLayer: o.planeLayer,
		pointLayer: o.pointLayer,
		logger:     o.logger,
	}
	a.currentID = a.model.NextID()
	a.handler = &scene.MouseHandler{Fn: a.onClick}
	return a
}

// DataModel returns the annotator's path model.
func (a *Annotator) DataModel() *Model { return a.model }

// CurrentPathID returns the id new points are appended to.
func (a *Annotator) CurrentPathID() int64 { return a.currentID }

// StartNewPath finishes the current path; subsequent clicks annotate a
// fresh path id.
func (a *Annotator) StartNewPath() {
	a.currentID = a.model.NextID()
	a.logger.Debug("new path started", "path_id", a.currentID)
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

// SetLayers rebinds the annotator to a new plane/point layer pair. While
// enabled the swap is atomic: the old layers detach fully before the new
// ones attach.
func (a *Annotator) SetLayers(plane scene.PlaneLayer, pts scene.PointLayer) {
	if a.enabled {
		a.detach()
	}
	a.planeLayer = plane
	a.pointLayer = pts
	if a.enabled {
		a.attach()
	}
}

func (a *Annotator) attach() {
	a.viewer.MouseCallbacks().Add(a.handler)
	a.viewer.KeyBindings().Bind(KeyNewPath, a.StartNewPath)

	disconnect := a.model.Events().Data.Connect(a.syncLayerFromModel)
	a.disconnects = append(a.disconnects, disconnect)

	if a.pointLayer != nil {
		disconnect := a.pointLayer.Events().Data.Connect(a.syncModelFromLayer)
		a.disconnects = append(a.disconnects, disconnect)

		if a.model.Len() > 0 {
			a.syncLayerFromModel()
		} else {
			// Adopt the layer's paths and start a fresh one, so clicks
			// never splice into an existing path unasked.
			a.syncModelFromLayer()
			a.currentID = a.model.NextID()
		}
	}
}

func (a *Annotator) detach() {
	a.viewer.MouseCallbacks().Remove(a.handler)
	a.viewer.KeyBindings().Unbind(KeyNewPath)

	for _, disconnect := range a.disconnects {
		disconnect()
	}
	a.disconnects = nil
}

func (a *Annotator) onClick(ev scene.MouseEvent) {
	if !ev.Modifiers.Has(scene.ModAlt) {
		return
	}
	if a.planeLayer == nil || !a.planeLayer.Visible() || a.pointLayer == nil {
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

	if err := a.model.Append(pos, a.currentID); err != nil {
		a.logger.Error("append path point", "error", err)
		return
	}
	a.logger.WithCount(a.model.Len()).Debug("path point added", "path_id", a.currentID)
}

// syncLayerFromModel pushes the model's points and ids into the layer,
// suppressing the layer's echo.
func (a *Annotator) syncLayerFromModel() {
	if a.pointLayer == nil {
		return
	}
	a.pointLayer.Events().Data.Block()
	defer a.pointLayer.Events().Data.Unblock()

	a.pointLayer.SetData(a.model.Points())
	a.pointLayer.SetInts(PathIDColumn, a.model.IDs())
}

// syncModelFromLayer pulls the layer's points into the model, suppressing
// the model's echo. Rows the host added arrive with a zeroed path_id and
// join the current path.
func (a *Annotator) syncModelFromLayer() {
	if a.pointLayer == nil {
		return
	}

	points := a.pointLayer.Data()
	ids, ok := a.pointLayer.Ints(PathIDColumn)
	if !ok || len(ids) != len(points) {
		ids = resizeInts(ids, len(points))
	}
	changed := false
	for i := range ids {
		if ids[i] == 0 {
			ids[i] = a.currentID
			changed = true
		}
	}
	if changed {
		// Column writes don't emit, so this never echoes.
		a.pointLayer.SetInts(PathIDColumn, ids)
	}

	a.model.Events().Data.Block()
	defer a.model.Events().Data.Unblock()

	if err := a.model.SetData(points, ids); err != nil {
		a.logger.WithLayer(a.pointLayer.Name()).Error("layer sync", "error", err)
	}
}

func resizeInts(col []int64, n int) []int64 {
	out := make([]int64, n)
	copy(out, col)
	return out
}
