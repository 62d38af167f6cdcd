package points

import (
	"github.com/hupe1980/annot3d"
	"github.com/hupe1980/annot3d/scene"
)

type options struct {
	model      *Model
	planeLayer scene.PlaneLayer
	pointLayer scene.PointLayer
	logger     *annot3d.Logger
}

// Option configures the annotator.
type Option func(*options)

// WithModel uses an existing point model instead of a fresh empty one.
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

// Annotator appends a point to the model on every Alt+click whose cursor
// ray hits the reference layer's slicing plane inside the layer's extent,
// and keeps the model and the destination layer synchronized both ways.
//
// All methods must be called from the host's event thread.
type Annotator struct {
	viewer     scene.Viewer
	model      *Model
	planeLayer scene.PlaneLayer
	pointLayer scene.PointLayer
	logger     *annot3d.Logger

	enabled     bool
	handler     *scene.MouseHandler
	disconnects []func()
}

// NewAnnotator creates a point annotator on the viewer. It starts
// disabled.
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
	a.handler = &scene.MouseHandler{Fn: a.onClick}
	return a
}

// DataModel returns the annotator's point model.
func (a *Annotator) DataModel() *Model { return a.model }

// Enabled reports whether the annotator is active.
func (a *Annotator) Enabled() bool { return a.enabled }

// SetEnabled activates or deactivates the annotator. Enabling registers
// the click callback and the two-way model/layer bridge; disabling
// unregisters exactly what enabling registered. Redundant calls are
// no-ops.
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
// enabled, the callbacks move atomically: the old layers are fully
// detached before the new ones are attached, so no event is ever handled
// against a half-swapped state.
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

	disconnect := a.model.Events().Data.Connect(a.syncLayerFromModel)
	a.disconnects = append(a.disconnects, disconnect)

	if a.pointLayer != nil {
		disconnect := a.pointLayer.Events().Data.Connect(a.syncModelFromLayer)
		a.disconnects = append(a.disconnects, disconnect)

		// Start both sides equal: a populated model wins, otherwise
		// adopt whatever the layer already holds.
		if a.model.Len() > 0 {
			a.syncLayerFromModel()
		} else {
			a.syncModelFromLayer()
		}
	}
}

func (a *Annotator) detach() {
	a.viewer.MouseCallbacks().Remove(a.handler)

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

	if err := a.model.Append(pos); err != nil {
		a.logger.Error("append point", "error", err)
		return
	}
	a.logger.WithCount(a.model.Len()).Debug("point added")
}

// syncLayerFromModel pushes the model's point array into the layer,
// suppressing the layer's echo.
func (a *Annotator) syncLayerFromModel() {
	if a.pointLayer == nil {
		return
	}
	a.pointLayer.Events().Data.Block()
	defer a.pointLayer.Events().Data.Unblock()

	a.pointLayer.SetData(a.model.Data())
}

// syncModelFromLayer pulls the layer's point array into the model,
// suppressing the model's echo.
func (a *Annotator) syncModelFromLayer() {
	if a.pointLayer == nil {
		return
	}
	a.model.Events().Data.Block()
	defer a.model.Events().Data.Unblock()

	if err := a.model.SetData(a.pointLayer.Data()); err != nil {
		a.logger.WithLayer(a.pointLayer.Name()).Error("layer sync", "error", err)
	}
}
