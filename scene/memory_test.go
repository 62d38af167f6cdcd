package scene

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/require"
)

func TestMemoryPointLayerSetDataEmitsAndCopies(t *testing.T) {
	l := NewMemoryPointLayer("points", 3)

	dataEvents := 0
	l.Events().Data.Connect(func() { dataEvents++ })

	in := [][]float64{{1, 2, 3}, {4, 5, 6}}
	l.SetData(in)
	require.Equal(t, 1, dataEvents)
	require.Equal(t, 2, l.Len())

	// Mutating the caller's slice must not reach the layer.
	in[0][0] = 99
	require.Equal(t, 1.0, l.Data()[0][0])

	// Mutating the returned slice must not reach the layer either.
	out := l.Data()
	out[1][1] = 99
	require.Equal(t, 5.0, l.Data()[1][1])
}

func TestMemoryPointLayerColumnsFollowData(t *testing.T) {
	l := NewMemoryPointLayer("spheres", 3)
	l.SetData([][]float64{{0, 0, 0}, {1, 1, 1}, {2, 2, 2}})

	l.SetInts("sphere_id", []int64{1, 2, 3})
	l.SetFloats("radius", []float64{5, 6, 7})

	// Shrinking the point array truncates the columns.
	l.SetData([][]float64{{0, 0, 0}, {1, 1, 1}})
	ids, ok := l.Ints("sphere_id")
	require.True(t, ok)
	require.Equal(t, []int64{1, 2}, ids)

	// Growing zero-pads them.
	l.SetData([][]float64{{0, 0, 0}, {1, 1, 1}, {2, 2, 2}, {3, 3, 3}})
	radii, ok := l.Floats("radius")
	require.True(t, ok)
	require.Equal(t, []float64{5, 6, 0, 0}, radii)
}

func TestMemoryPointLayerColumnWritesAreSilent(t *testing.T) {
	l := NewMemoryPointLayer("spheres", 3)
	l.SetData([][]float64{{0, 0, 0}})

	events := 0
	l.Events().Data.Connect(func() { events++ })

	l.SetInts("sphere_id", []int64{1})
	l.SetFloats("radius", []float64{5})
	require.Zero(t, events)
}

func TestMemoryPointLayerSelection(t *testing.T) {
	l := NewMemoryPointLayer("points", 3)
	l.SetData([][]float64{{0, 0, 0}, {1, 1, 1}})

	selEvents := 0
	l.Events().Selection.Connect(func() { selEvents++ })

	sel := roaring.BitmapOf(1)
	l.SetSelection(sel)
	require.Equal(t, 1, selEvents)
	require.True(t, l.Selection().Contains(1))

	// Caller's bitmap is cloned.
	sel.Add(0)
	require.False(t, l.Selection().Contains(0))

	l.SetSelection(nil)
	require.Equal(t, 2, selEvents)
	require.True(t, l.Selection().IsEmpty())
}

func TestMemoryPointLayerBlockedSignal(t *testing.T) {
	l := NewMemoryPointLayer("points", 3)

	events := 0
	l.Events().Data.Connect(func() { events++ })

	l.Events().Data.Block()
	l.SetData([][]float64{{1, 2, 3}})
	l.Events().Data.Unblock()

	require.Zero(t, events, "write applied, notification suppressed")
	require.Equal(t, 1, l.Len())
}

func TestMemoryViewerDefaults(t *testing.T) {
	v := NewMemoryViewer(5)
	require.Equal(t, []int{2, 3, 4}, v.DisplayedDims())
	require.Equal(t, []float64{0, 0, 1, 0, 0}, v.ViewDirection())
	require.Len(t, v.CursorPosition(), 5)

	v3 := NewMemoryViewer(3)
	require.Equal(t, []int{0, 1, 2}, v3.DisplayedDims())
}

func TestMemoryViewerClickDispatch(t *testing.T) {
	v := NewMemoryViewer(3)

	var got MouseEvent
	h := &MouseHandler{Fn: func(ev MouseEvent) { got = ev }}
	v.MouseCallbacks().Add(h)

	ev := v.MouseEvent([]float64{1, 2, 3}, nil, ModAlt)
	v.Click(ev)

	require.Equal(t, []float64{1, 2, 3}, got.Position)
	require.Equal(t, v.ViewDirection(), got.ViewDirection)
	require.True(t, got.Modifiers.Has(ModAlt))
}
