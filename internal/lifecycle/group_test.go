// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package lifecycle_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sync/errgroup"

	"trac.io/trac/internal/lifecycle"
)

func TestGroup(t *testing.T) {
	log := zaptest.NewLogger(t)

	var events []string

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	running := make(chan struct{}, 2)

	group := lifecycle.NewGroup(log)
	group.Add(lifecycle.Item{
		Name: "first",
		Run: func(ctx context.Context) error {
			running <- struct{}{}
			<-ctx.Done()
			return ctx.Err()
		},
		Close: func() error {
			events = append(events, "close first")
			return nil
		},
	})
	group.Add(lifecycle.Item{
		Name: "second",
		Run: func(ctx context.Context) error {
			running <- struct{}{}
			<-ctx.Done()
			return ctx.Err()
		},
		Close: func() error {
			events = append(events, "close second")
			return nil
		},
	})

	g, runCtx := errgroup.WithContext(ctx)
	group.Run(runCtx, g)

	<-running
	<-running
	cancel()

	// context cancellation is not an error for a lifecycle item
	require.NoError(t, g.Wait())

	require.NoError(t, group.Close())
	require.Equal(t, []string{"close second", "close first"}, events)
}
