// Package spheres implements sphere annotation: each sphere is a labeled
// center point plus a radius, stored in a point layer with sphere_id and
// radius feature columns, and rendered as a triangle mesh on a companion
// surface layer.
//
// Two modes drive the click behavior. In add mode an Alt+click places a
// new sphere with a fresh id and switches to edit mode; in edit mode an
// Alt+click moves the selected sphere's center. The radius of the selected
// sphere follows the cursor via the radius key. Every structural change
// recomputes the full mesh.
package spheres
