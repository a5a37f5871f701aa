// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information

package sync2_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"trac.io/trac/internal/sync2"
)

func TestCycle_Basic(t *testing.T) {
	t.Parallel()

	cycle := sync2.NewCycle(10 * time.Millisecond)

	var count int64
	var group errgroup.Group
	group.Go(func() error {
		return cycle.Run(context.Background(), func(_ context.Context) error {
			atomic.AddInt64(&count, 1)
			return nil
		})
	})

	cycle.Trigger()
	cycle.TriggerWait()
	cycle.Stop()

	require.NoError(t, group.Wait())
	require.True(t, atomic.LoadInt64(&count) >= 3)
}

func TestCycle_Error(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	cycle := sync2.NewCycle(time.Millisecond)

	err := cycle.Run(context.Background(), func(_ context.Context) error {
		return boom
	})
	require.Equal(t, boom, err)
}

func TestCycle_ContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cycle := sync2.NewCycle(time.Hour)

	var group errgroup.Group
	group.Go(func() error {
		return cycle.Run(ctx, func(_ context.Context) error {
			return nil
		})
	})

	cancel()
	require.Equal(t, context.Canceled, group.Wait())
}

func TestCycle_StopBeforeRun(t *testing.T) {
	t.Parallel()

	cycle := sync2.NewCycle(time.Hour)
	cycle.Stop()

	err := cycle.Run(context.Background(), func(_ context.Context) error {
		return nil
	})
	require.NoError(t, err)
}
