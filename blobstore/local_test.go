package blobstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())

	data := []byte("hello annotation archive")
	require.NoError(t, store.Put(ctx, "meta.json", data))

	blob, err := store.Open(ctx, "meta.json")
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, len(data))
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.Equal(t, data, buf)
}

func TestLocalStorePutOverwrites(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())

	require.NoError(t, store.Put(ctx, "chunk", []byte("first version, longer")))
	require.NoError(t, store.Put(ctx, "chunk", []byte("second")))

	got, err := ReadAll(ctx, store, "chunk")
	require.NoError(t, err)
	require.Equal(t, []byte("second"), got)
}

func TestLocalStoreNestedNames(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())

	require.NoError(t, store.Put(ctx, "spheres/chunks/000000", []byte("c0")))
	require.NoError(t, store.Put(ctx, "spheres/chunks/000001", []byte("c1")))
	require.NoError(t, store.Put(ctx, "spheres/meta.json", []byte("{}")))

	names, err := store.List(ctx, "spheres/chunks/")
	require.NoError(t, err)
	require.Equal(t, []string{"spheres/chunks/000000", "spheres/chunks/000001"}, names)

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestLocalStoreOpenMissing(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())

	_, err := store.Open(ctx, "missing")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestLocalStoreDeleteMissing(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())

	require.NoError(t, store.Delete(ctx, "never-existed"))
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte{1, 2, 3, 4}
	require.NoError(t, store.Put(ctx, "attrs.json", data))

	// Mutating the caller's slice must not reach the store.
	data[0] = 9
	got, err := ReadAll(ctx, store, "attrs.json")
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 4}, got)

	require.NoError(t, store.Delete(ctx, "attrs.json"))
	_, err = store.Open(ctx, "attrs.json")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Put(ctx, "b/1", nil))
	require.NoError(t, store.Put(ctx, "a/1", nil))
	require.NoError(t, store.Put(ctx, "a/2", nil))

	names, err := store.List(ctx, "a/")
	require.NoError(t, err)
	require.Equal(t, []string{"a/1", "a/2"}, names)
}

func TestReadAllEmptyBlob(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Put(ctx, "empty", []byte{}))
	got, err := ReadAll(ctx, store, "empty")
	require.NoError(t, err)
	require.Empty(t, got)
}
