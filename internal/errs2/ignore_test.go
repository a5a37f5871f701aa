// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package errs2_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeebo/errs"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"trac.io/trac/internal/errs2"
)

func TestIsCanceled(t *testing.T) {
	require.True(t, errs2.IsCanceled(context.Canceled))
	require.True(t, errs2.IsCanceled(status.Error(codes.Canceled, "canceled")))

	// wrapped cancellations still count
	testClass := errs.Class("test")
	wrapped := testClass.Wrap(context.Canceled)
	require.True(t, errs2.IsCanceled(wrapped))
	require.NoError(t, errs2.IgnoreCanceled(wrapped))

	require.False(t, errs2.IsCanceled(errs.New("boom")))
	require.Error(t, errs2.IgnoreCanceled(errs.New("boom")))
	require.NoError(t, errs2.IgnoreCanceled(nil))
}

func TestIsRPC(t *testing.T) {
	err := status.Error(codes.NotFound, "missing")
	require.True(t, errs2.IsRPC(err, codes.NotFound))
	require.False(t, errs2.IsRPC(err, codes.Internal))
	testClass := errs.Class("test")
	require.True(t, errs2.IsRPC(testClass.Wrap(err), codes.NotFound))
}
