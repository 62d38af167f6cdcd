package spheres

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/annot3d/geometry"
	"github.com/hupe1980/annot3d/scene"
)

func newTestScene(t *testing.T) (*scene.MemoryViewer, *scene.MemoryPlaneLayer) {
	t.Helper()

	viewer := scene.NewMemoryViewer(3)
	plane := scene.NewMemoryPlaneLayer("image",
		geometry.NewBoundingBox([]float64{0, 0, 0}, []float64{32, 32, 32}),
		geometry.Plane{
			Point:  geometry.Vec3{X: 14, Y: 14, Z: 14},
			Normal: geometry.Vec3{X: 1, Y: 0, Z: 0},
		})
	viewer.AddLayer(plane)
	return viewer, plane
}

func altClick(viewer *scene.MemoryViewer, y, z float64) {
	viewer.Click(viewer.MouseEvent([]float64{0, y, z}, []float64{1, 0, 0}, scene.ModAlt))
}

func TestAddSphere(t *testing.T) {
	viewer, plane := newTestScene(t)

	a := NewAnnotator(viewer, WithLayers(plane, nil, nil))
	a.SetEnabled(true)

	require.Equal(t, ModeAdd, a.Mode())
	altClick(viewer, 14, 14)

	require.Equal(t, 1, a.PointLayer().Len())
	ids, ok := a.PointLayer().Ints(SphereIDColumn)
	require.True(t, ok)
	require.Equal(t, []int64{1}, ids)

	radii, ok := a.PointLayer().Floats(RadiusColumn)
	require.True(t, ok)
	require.Equal(t, []float64{DefaultRadius}, radii)

	// Placement selects the new sphere and hands over to edit mode.
	require.Equal(t, ModeEdit, a.Mode())
	id, ok := a.ActiveSphereID()
	require.True(t, ok)
	require.Equal(t, int64(1), id)

	require.NotNil(t, a.SurfaceLayer().Mesh())
}

func TestNextIDIsMaxPlusOne(t *testing.T) {
	viewer, plane := newTestScene(t)

	pts := scene.NewMemoryPointLayer("spheres", 3)
	pts.SetData([][]float64{{1, 1, 1}, {2, 2, 2}, {3, 3, 3}})
	pts.SetInts(SphereIDColumn, []int64{1, 2, 3})
	pts.SetFloats(RadiusColumn, []float64{5, 5, 5})

	a := NewAnnotator(viewer, WithLayers(plane, pts, scene.NewMemorySurfaceLayer("meshes")))
	a.SetEnabled(true)

	altClick(viewer, 14, 14)

	ids, _ := pts.Ints(SphereIDColumn)
	require.Equal(t, []int64{1, 2, 3, 4}, ids)
}

func TestEditMovesSelectedSphere(t *testing.T) {
	viewer, plane := newTestScene(t)

	a := NewAnnotator(viewer, WithLayers(plane, nil, nil))
	a.SetEnabled(true)

	altClick(viewer, 14, 14)
	require.Equal(t, ModeEdit, a.Mode())

	// Second click moves the sphere instead of adding one.
	altClick(viewer, 10, 12)

	require.Equal(t, 1, a.PointLayer().Len())
	got := a.PointLayer().Data()[0]
	require.InDelta(t, 14.0, got[0], 1e-12)
	require.InDelta(t, 10.0, got[1], 1e-12)
	require.InDelta(t, 12.0, got[2], 1e-12)

	ids, _ := a.PointLayer().Ints(SphereIDColumn)
	require.Equal(t, []int64{1}, ids, "moving keeps the id")
}

func TestNewSphereKeySwitchesToAdd(t *testing.T) {
	viewer, plane := newTestScene(t)

	a := NewAnnotator(viewer, WithLayers(plane, nil, nil))
	a.SetEnabled(true)

	altClick(viewer, 14, 14)
	viewer.KeyBindings().Press(KeyNewSphere)
	require.Equal(t, ModeAdd, a.Mode())
	require.True(t, a.PointLayer().Selection().IsEmpty(), "add mode clears the selection")

	altClick(viewer, 10, 10)
	require.Equal(t, 2, a.PointLayer().Len())

	ids, _ := a.PointLayer().Ints(SphereIDColumn)
	require.Equal(t, []int64{1, 2}, ids)
}

func TestRadiusFromCursor(t *testing.T) {
	viewer, plane := newTestScene(t)

	a := NewAnnotator(viewer, WithLayers(plane, nil, nil))
	a.SetEnabled(true)

	altClick(viewer, 14, 14)

	// Cursor 3 units from the center along y.
	viewer.SetCursorPosition([]float64{14, 17, 14})
	viewer.KeyBindings().Press(KeyRadius)

	radii, _ := a.PointLayer().Floats(RadiusColumn)
	require.InDelta(t, 3.0, radii[0], 1e-12)
}

func TestRadiusFromCursorIntersectsPlane(t *testing.T) {
	viewer := scene.NewMemoryViewer(3)
	plane := scene.NewMemoryPlaneLayer("image",
		geometry.NewBoundingBox([]float64{0, 0, 0}, []float64{32, 32, 32}),
		geometry.Plane{
			Point:  geometry.Vec3{Z: 5},
			Normal: geometry.Vec3{Z: 1},
		})
	viewer.AddLayer(plane)
	viewer.SetViewDirection([]float64{0, 0, 1})

	pts := scene.NewMemoryPointLayer("spheres", 3)
	pts.SetData([][]float64{{0, 0, 5}})
	pts.SetInts(SphereIDColumn, []int64{1})
	pts.SetFloats(RadiusColumn, []float64{1})

	a := NewAnnotator(viewer, WithLayers(plane, pts, scene.NewMemorySurfaceLayer("meshes")))
	a.SetEnabled(true)
	pts.SetSelection(roaring.BitmapOf(0))

	// Cursor off the plane: the radius reaches to where the cursor ray
	// pierces the plane, (3,4,5), not to the cursor itself.
	viewer.SetCursorPosition([]float64{3, 4, 0})
	viewer.KeyBindings().Press(KeyRadius)

	radii, _ := pts.Floats(RadiusColumn)
	require.InDelta(t, 5.0, radii[0], 1e-12)
}

func TestRadiusKeyHiddenPlaneIsNoop(t *testing.T) {
	viewer, plane := newTestScene(t)

	a := NewAnnotator(viewer, WithLayers(plane, nil, nil))
	a.SetEnabled(true)

	altClick(viewer, 14, 14)
	plane.SetVisible(false)

	viewer.SetCursorPosition([]float64{14, 17, 14})
	viewer.KeyBindings().Press(KeyRadius)

	radii, _ := a.PointLayer().Floats(RadiusColumn)
	require.Equal(t, []float64{DefaultRadius}, radii)
}

func TestRadiusKeyWithoutSelectionIsNoop(t *testing.T) {
	viewer, plane := newTestScene(t)

	a := NewAnnotator(viewer, WithLayers(plane, nil, nil))
	a.SetEnabled(true)

	altClick(viewer, 14, 14)
	a.PointLayer().SetSelection(nil)

	viewer.KeyBindings().Press(KeyRadius)
	radii, _ := a.PointLayer().Floats(RadiusColumn)
	require.Equal(t, []float64{DefaultRadius}, radii)
}

func TestRecomputeFailsOnDuplicateID(t *testing.T) {
	viewer, plane := newTestScene(t)

	pts := scene.NewMemoryPointLayer("spheres", 3)
	pts.SetData([][]float64{{1, 1, 1}, {2, 2, 2}})
	pts.SetInts(SphereIDColumn, []int64{7, 7})
	pts.SetFloats(RadiusColumn, []float64{5, 5})

	surface := scene.NewMemorySurfaceLayer("meshes")
	a := NewAnnotator(viewer, WithLayers(plane, pts, surface))

	err := a.RecomputeMeshes()
	require.Error(t, err)
	require.Contains(t, err.Error(), "sphere 7 has 2 points")
	require.Nil(t, surface.Mesh(), "failed recompute must not touch the surface")
}

func TestRecomputeEmptyClearsSurface(t *testing.T) {
	viewer, plane := newTestScene(t)

	a := NewAnnotator(viewer, WithLayers(plane, nil, nil))
	a.SetEnabled(true)

	altClick(viewer, 14, 14)
	require.NotNil(t, a.SurfaceLayer().Mesh())

	a.PointLayer().SetData(nil)
	require.Nil(t, a.SurfaceLayer().Mesh())
}

func TestInteractiveLayerEditGetsIDAndRadius(t *testing.T) {
	viewer, plane := newTestScene(t)

	a := NewAnnotator(viewer, WithLayers(plane, nil, nil))
	a.SetEnabled(true)

	altClick(viewer, 14, 14)

	// Host appends a point directly; its columns arrive zero-padded.
	data := a.PointLayer().Data()
	data = append(data, []float64{20, 20, 20})
	a.PointLayer().SetData(data)

	ids, _ := a.PointLayer().Ints(SphereIDColumn)
	require.Equal(t, []int64{1, 2}, ids)

	radii, _ := a.PointLayer().Floats(RadiusColumn)
	require.Equal(t, []float64{DefaultRadius, DefaultRadius}, radii)

	m := a.SurfaceLayer().Mesh()
	require.NotNil(t, m)
	require.Equal(t, 2*21*21, m.VertexCount(), "both spheres tessellated")
}

func TestRecomputeIdempotent(t *testing.T) {
	viewer, plane := newTestScene(t)

	a := NewAnnotator(viewer, WithLayers(plane, nil, nil))
	a.SetEnabled(true)

	altClick(viewer, 14, 14)
	first := a.SurfaceLayer().Mesh()

	require.NoError(t, a.RecomputeMeshes())
	second := a.SurfaceLayer().Mesh()

	require.Equal(t, first.Vertices, second.Vertices)
	require.Equal(t, first.Indices, second.Indices)
}

func TestEditClickWithoutSelectionIgnored(t *testing.T) {
	viewer, plane := newTestScene(t)

	a := NewAnnotator(viewer, WithLayers(plane, nil, nil))
	a.SetEnabled(true)
	a.SetMode(ModeEdit)

	altClick(viewer, 14, 14)
	require.Zero(t, a.PointLayer().Len())
}

func TestActiveSphereIDNeedsSingleSelection(t *testing.T) {
	viewer, plane := newTestScene(t)

	a := NewAnnotator(viewer, WithLayers(plane, nil, nil))
	a.SetEnabled(true)

	altClick(viewer, 14, 14)
	viewer.KeyBindings().Press(KeyNewSphere)
	altClick(viewer, 10, 10)

	a.PointLayer().SetSelection(roaring.BitmapOf(0, 1))
	_, ok := a.ActiveSphereID()
	require.False(t, ok)
}

func TestSetLayersAtomicRebind(t *testing.T) {
	viewer, plane := newTestScene(t)

	a := NewAnnotator(viewer, WithLayers(plane, nil, nil))
	a.SetEnabled(true)
	altClick(viewer, 14, 14)

	oldLayer := a.PointLayer()
	newPts := scene.NewMemoryPointLayer("spheres-b", 3)
	newSurface := scene.NewMemorySurfaceLayer("meshes-b")
	a.SetLayers(plane, newPts, newSurface)

	// Old layer edits are ignored after the swap.
	oldLayer.SetData([][]float64{{1, 1, 1}, {2, 2, 2}})
	require.Nil(t, newSurface.Mesh())

	viewer.KeyBindings().Press(KeyNewSphere)
	altClick(viewer, 12, 12)
	require.Equal(t, 1, newPts.Len())
	require.NotNil(t, newSurface.Mesh())
}

func TestDisableRemovesBindings(t *testing.T) {
	viewer, plane := newTestScene(t)

	a := NewAnnotator(viewer, WithLayers(plane, nil, nil))
	a.SetEnabled(true)
	require.True(t, viewer.KeyBindings().Bound(KeyNewSphere))
	require.True(t, viewer.KeyBindings().Bound(KeyRadius))

	a.SetEnabled(false)
	require.False(t, viewer.KeyBindings().Bound(KeyNewSphere))
	require.False(t, viewer.KeyBindings().Bound(KeyRadius))

	altClick(viewer, 14, 14)
	require.Zero(t, a.PointLayer().Len())
}
