package paths

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/annot3d/archive"
	"github.com/hupe1980/annot3d/blobstore"
)

func TestModelGrouping(t *testing.T) {
	m := NewModel()
	require.NoError(t, m.Append([]float64{0, 0, 0}, 1))
	require.NoError(t, m.Append([]float64{1, 0, 0}, 1))
	require.NoError(t, m.Append([]float64{5, 5, 5}, 2))
	require.NoError(t, m.Append([]float64{2, 0, 0}, 1))

	paths := m.Paths()
	require.Len(t, paths, 2)

	require.Equal(t, int64(1), paths[0].ID)
	require.Equal(t, [][]float64{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}, paths[0].Points)

	require.Equal(t, int64(2), paths[1].ID)
	require.Equal(t, [][]float64{{5, 5, 5}}, paths[1].Points)
}

func TestModelNextID(t *testing.T) {
	m := NewModel()
	require.Equal(t, int64(1), m.NextID())

	require.NoError(t, m.Append([]float64{0, 0, 0}, 1))
	require.NoError(t, m.Append([]float64{0, 0, 0}, 3))
	require.Equal(t, int64(4), m.NextID())
}

func TestModelSetDataValidation(t *testing.T) {
	m := NewModel()
	require.Error(t, m.SetData([][]float64{{1, 2, 3}}, []int64{1, 2}))
	require.Error(t, m.SetData([][]float64{{1, 2, 3}, {1, 2}}, []int64{1, 1}))
}

func TestModelLayerRoundTrip(t *testing.T) {
	m := NewModel()
	require.NoError(t, m.Append([]float64{0, 0, 0}, 1))
	require.NoError(t, m.Append([]float64{1, 1, 1}, 2))

	layer := m.AsLayer("paths", 3)
	require.Equal(t, archive.TypePaths, layer.Metadata()[archive.TypeAttr])

	got := NewModel()
	require.NoError(t, got.FromLayer(layer))
	require.Empty(t, cmp.Diff(m.Points(), got.Points()))
	require.Equal(t, m.IDs(), got.IDs())
}

func TestModelArchiveRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	m := NewModel()
	require.NoError(t, m.Append([]float64{0, 0, 0}, 1))
	require.NoError(t, m.Append([]float64{1, 1, 1}, 1))
	require.NoError(t, m.Append([]float64{9, 9, 9}, 2))
	require.NoError(t, m.ToArchive(ctx, store, "paths"))

	got := NewModel()
	require.NoError(t, got.FromArchive(ctx, store, "paths"))
	require.Empty(t, cmp.Diff(m.Points(), got.Points()))
	require.Equal(t, m.IDs(), got.IDs())
}

func TestModelFromArchiveTypeMismatch(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	arr := &archive.Array{
		Data:  [][]float64{{1, 2, 3}},
		Attrs: map[string]any{archive.TypeAttr: archive.TypePoints},
	}
	require.NoError(t, archive.Save(ctx, store, "points", arr))

	m := NewModel()
	err := m.FromArchive(ctx, store, "points")
	var typeErr *archive.ErrAnnotationType
	require.True(t, errors.As(err, &typeErr))
	require.Equal(t, archive.TypePaths, typeErr.Expected)
}
