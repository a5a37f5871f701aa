// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// Package testsuite is the conformance suite every Store backend runs.
package testsuite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"trac.io/trac/storage"
)

// RunTests runs the conformance suite against store.
func RunTests(t *testing.T, store storage.Store) {
	t.Run("GetMissing", func(t *testing.T) { testGetMissing(t, store) })
	t.Run("UpdateInsert", func(t *testing.T) { testUpdateInsert(t, store) })
	t.Run("UpdateExisting", func(t *testing.T) { testUpdateExisting(t, store) })
	t.Run("UpdateUnchanged", func(t *testing.T) { testUpdateUnchanged(t, store) })
	t.Run("UpdateDelete", func(t *testing.T) { testUpdateDelete(t, store) })
	t.Run("UpdateError", func(t *testing.T) { testUpdateError(t, store) })
	t.Run("Delete", func(t *testing.T) { testDelete(t, store) })
	t.Run("Iterate", func(t *testing.T) { testIterate(t, store) })
	t.Run("EmptyKey", func(t *testing.T) { testEmptyKey(t, store) })
	t.Run("Parallel", func(t *testing.T) { testParallel(t, store) })
}

func testGetMissing(t *testing.T, store storage.Store) {
	ctx := context.Background()
	_, err := store.Get(ctx, "testsuite/missing")
	require.Error(t, err)
	require.True(t, storage.ErrKeyNotFound.Has(err))
}

func testUpdateInsert(t *testing.T, store storage.Store) {
	ctx := context.Background()
	key := storage.Key("testsuite/insert")

	value, err := store.Update(ctx, key, func(current storage.Value) (storage.Value, error) {
		require.Nil(t, current)
		return storage.Value("alpha"), nil
	})
	require.NoError(t, err)
	require.Equal(t, storage.Value("alpha"), value)

	got, err := store.Get(ctx, key)
	require.NoError(t, err)
	require.Equal(t, storage.Value("alpha"), got)

	require.NoError(t, store.Delete(ctx, key))
}

func testUpdateExisting(t *testing.T, store storage.Store) {
	ctx := context.Background()
	key := storage.Key("testsuite/existing")

	_, err := store.Update(ctx, key, func(storage.Value) (storage.Value, error) {
		return storage.Value("alpha"), nil
	})
	require.NoError(t, err)

	value, err := store.Update(ctx, key, func(current storage.Value) (storage.Value, error) {
		require.Equal(t, storage.Value("alpha"), current)
		return storage.Value("beta"), nil
	})
	require.NoError(t, err)
	require.Equal(t, storage.Value("beta"), value)

	require.NoError(t, store.Delete(ctx, key))
}

func testUpdateUnchanged(t *testing.T, store storage.Store) {
	ctx := context.Background()
	key := storage.Key("testsuite/unchanged")

	_, err := store.Update(ctx, key, func(storage.Value) (storage.Value, error) {
		return storage.Value("alpha"), nil
	})
	require.NoError(t, err)

	value, err := store.Update(ctx, key, func(current storage.Value) (storage.Value, error) {
		return nil, storage.ErrUnchanged
	})
	require.NoError(t, err)
	require.Equal(t, storage.Value("alpha"), value)

	got, err := store.Get(ctx, key)
	require.NoError(t, err)
	require.Equal(t, storage.Value("alpha"), got)

	require.NoError(t, store.Delete(ctx, key))
}

func testUpdateDelete(t *testing.T, store storage.Store) {
	ctx := context.Background()
	key := storage.Key("testsuite/update-delete")

	_, err := store.Update(ctx, key, func(storage.Value) (storage.Value, error) {
		return storage.Value("alpha"), nil
	})
	require.NoError(t, err)

	value, err := store.Update(ctx, key, func(current storage.Value) (storage.Value, error) {
		return nil, nil
	})
	require.NoError(t, err)
	require.Nil(t, value)

	_, err = store.Get(ctx, key)
	require.True(t, storage.ErrKeyNotFound.Has(err))
}

func testUpdateError(t *testing.T, store storage.Store) {
	ctx := context.Background()
	key := storage.Key("testsuite/update-error")

	boom := storage.Error.New("boom")
	_, err := store.Update(ctx, key, func(storage.Value) (storage.Value, error) {
		return nil, boom
	})
	require.Error(t, err)

	_, err = store.Get(ctx, key)
	require.True(t, storage.ErrKeyNotFound.Has(err))
}

func testDelete(t *testing.T, store storage.Store) {
	ctx := context.Background()
	key := storage.Key("testsuite/delete")

	err := store.Delete(ctx, key)
	require.True(t, storage.ErrKeyNotFound.Has(err))

	_, err = store.Update(ctx, key, func(storage.Value) (storage.Value, error) {
		return storage.Value("alpha"), nil
	})
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, key))

	_, err = store.Get(ctx, key)
	require.True(t, storage.ErrKeyNotFound.Has(err))
}

func testIterate(t *testing.T, store storage.Store) {
	ctx := context.Background()
	expected := map[storage.Key]storage.Value{
		"testsuite/iterate/a": storage.Value("1"),
		"testsuite/iterate/b": storage.Value("2"),
		"testsuite/iterate/c": storage.Value("3"),
	}
	for key, value := range expected {
		value := value
		_, err := store.Update(ctx, key, func(storage.Value) (storage.Value, error) {
			return value, nil
		})
		require.NoError(t, err)
	}

	seen := map[storage.Key]storage.Value{}
	err := store.Iterate(ctx, func(key storage.Key, value storage.Value) error {
		seen[key] = value
		return nil
	})
	require.NoError(t, err)
	for key, value := range expected {
		require.Equal(t, value, seen[key], "key %q", key)
		require.NoError(t, store.Delete(ctx, key))
	}
}

func testEmptyKey(t *testing.T, store storage.Store) {
	ctx := context.Background()

	_, err := store.Get(ctx, "")
	require.True(t, storage.ErrEmptyKey.Has(err))

	_, err = store.Update(ctx, "", func(storage.Value) (storage.Value, error) {
		return storage.Value("x"), nil
	})
	require.True(t, storage.ErrEmptyKey.Has(err))

	require.True(t, storage.ErrEmptyKey.Has(store.Delete(ctx, "")))
}
