// Package annot3d provides the annotation core for plane-based 3-D scene
// annotation: converting pointer events on an oblique cross-section plane
// into N-dimensional scene coordinates, maintaining observable annotation
// data models (points, spheres, paths), and keeping those models in sync
// with host-owned, user-editable visual layers without feedback loops.
//
// The host viewer, rendering engine and widget toolkit are not part of this
// module. They are consumed through the capability interfaces in package
// scene, which also ships in-memory reference implementations used for
// headless embedding and testing.
//
// # Quick Start
//
//	viewer := scene.NewMemoryViewer(3)
//	plane := scene.NewMemoryPlaneLayer("volume", bbox, geometry.Plane{
//	    Point:  geometry.Vec3{X: 16, Y: 16, Z: 16},
//	    Normal: geometry.Vec3{X: 1},
//	})
//	layer := scene.NewMemoryPointLayer("points", 3)
//
//	ann := points.NewAnnotator(viewer)
//	ann.SetLayers(plane, layer)
//	ann.SetEnabled(true)
//
// Clicks dispatched through the viewer's mouse-callback pipeline now append
// N-D points to the annotator's data model, which mirrors into the layer.
//
// # Persistence
//
// Annotations round-trip through a chunked, compressed array archive
// (package archive) on top of pluggable blob storage (package blobstore):
// local directories, in-memory stores, or S3-compatible object storage.
//
//	store := blobstore.NewLocalStore("./annotations")
//	err := model.ToArchive(ctx, store, "run-042")
//
// # Components
//
// Every annotator implements the Component contract: enabling registers the
// mouse callback, synchronization listeners and key bindings with the host;
// disabling reverses every registration exactly.
package annot3d
