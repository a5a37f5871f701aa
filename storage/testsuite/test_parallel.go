// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package testsuite

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"trac.io/trac/storage"
)

// testParallel checks that concurrent updates on one key never lose an
// increment, which is the property the ticket and revision scheme of the
// job cache leans on.
func testParallel(t *testing.T, store storage.Store) {
	ctx := context.Background()
	key := storage.Key("testsuite/parallel")

	const workers = 8
	const increments = 25

	var group sync.WaitGroup
	errch := make(chan error, workers)
	for i := 0; i < workers; i++ {
		group.Add(1)
		go func() {
			defer group.Done()
			for k := 0; k < increments; k++ {
				_, err := store.Update(ctx, key, func(current storage.Value) (storage.Value, error) {
					counter := 0
					if current != nil {
						var err error
						counter, err = strconv.Atoi(string(current))
						if err != nil {
							return nil, err
						}
					}
					return storage.Value(strconv.Itoa(counter + 1)), nil
				})
				if err != nil {
					errch <- err
					return
				}
			}
		}()
	}
	group.Wait()
	close(errch)
	for err := range errch {
		require.NoError(t, err)
	}

	final, err := store.Get(ctx, key)
	require.NoError(t, err)
	require.Equal(t, strconv.Itoa(workers*increments), string(final))
	require.NoError(t, store.Delete(ctx, key))
}
