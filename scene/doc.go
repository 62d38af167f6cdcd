// Package scene defines the capability interfaces the annotation core
// consumes from a host viewer: plane-bearing reference layers, mutable
// point layers with feature columns and selection, surface layers for
// derived meshes, and the viewer's camera state and input-event pipeline.
//
// The package also provides the event primitive used for model/layer
// synchronization (Signal, with nestable block/unblock for echo
// suppression) and complete in-memory implementations of every capability.
// The in-memory types are not test-only stubs: they are the reference
// semantics of the contracts, and double as the headless embedding used
// when no real viewer is attached.
//
// Everything in this package is single-threaded by contract: all mutation
// happens on the host's event-dispatch goroutine, one callback at a time.
// Re-entrancy through change notifications, not parallelism, is the hazard
// the Signal blocking discipline exists for.
package scene
