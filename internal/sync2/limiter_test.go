// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information

package sync2_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"trac.io/trac/internal/sync2"
)

func TestLimiter_Limiting(t *testing.T) {
	t.Parallel()

	const n, limit = 1000, 10

	ctx := context.Background()
	limiter := sync2.NewLimiter(limit)

	counter := int32(0)
	for i := 0; i < n; i++ {
		limiter.Go(ctx, func() {
			if atomic.AddInt32(&counter, 1) > limit {
				panic("limit exceeded")
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&counter, -1)
		})
	}
	limiter.Wait()
}

func TestLimiter_Canceling(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	limiter := sync2.NewLimiter(1)

	block := make(chan struct{})
	started := limiter.Go(ctx, func() { <-block })
	require.True(t, started)

	cancel()

	started = limiter.Go(ctx, func() {
		t.Fatal("should not start")
	})
	require.False(t, started)

	close(block)
	limiter.Wait()
}
