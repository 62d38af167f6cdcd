// Package paths implements path annotation: ordered runs of N-D points
// grouped by a path id, with spline sampling for smooth display.
//
// Alt+clicks append points to the current path; the new-path key starts
// the next one. Paths round-trip through point layers (via a path_id
// feature column) and archives.
package paths
