// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information

package sync2_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"trac.io/trac/internal/sync2"
)

func TestFence(t *testing.T) {
	t.Parallel()

	var fence sync2.Fence
	require.False(t, fence.Released())

	var group errgroup.Group
	for i := 0; i < 4; i++ {
		group.Go(func() error {
			fence.Wait()
			if !fence.Released() {
				return errors.New("fence was not released")
			}
			return nil
		})
	}

	fence.Release()
	// repeated release is a no-op
	fence.Release()

	require.NoError(t, group.Wait())
	require.True(t, fence.Released())

	select {
	case <-fence.Done():
	default:
		t.Fatal("done channel should be closed")
	}
}
