package annot3d

// Component is the lifecycle contract shared by all annotators.
//
// Enabling a component registers its callbacks with the host: the mouse
// callback on the viewer's input pipeline, the model/layer synchronization
// listeners, and any mode-specific key bindings. Disabling reverses every
// one of those registrations exactly, leaving no dangling listeners. This
// matters because layers can be rebound and components destroyed while the
// viewer lives on.
//
// Concrete components additionally expose a typed SetLayers method for the
// layers they operate on, and a typed data-model accessor. Those cannot be
// unified here without losing the layer types, so the contract stays narrow.
type Component interface {
	// Enabled reports whether the component's callbacks are registered.
	Enabled() bool

	// SetEnabled registers (true) or unregisters (false) the component's
	// callbacks. Setting the current state again is a no-op.
	SetEnabled(enabled bool)
}
