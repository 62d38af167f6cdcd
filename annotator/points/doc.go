// Package points implements plain point annotation: Alt+click on the
// slicing plane of a reference layer appends an N-D point to an observable
// model that stays synchronized with a host point layer.
//
// The model is the source of truth for programmatic edits; the layer is
// the source of truth for interactive edits. A two-way bridge keeps both
// equal after every change, suppressing its own echo by blocking the
// outgoing side's signal for the duration of the write.
package points
