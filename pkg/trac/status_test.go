// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package trac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"trac.io/trac/pkg/trac"
)

func TestCode(t *testing.T) {
	cases := []struct {
		err  error
		code codes.Code
	}{
		{nil, codes.OK},
		{trac.ErrInvalidInput.New("bad"), codes.InvalidArgument},
		{trac.ErrInvalidType.New("bad"), codes.InvalidArgument},
		{trac.ErrNotFound.New("missing"), codes.NotFound},
		{trac.ErrAlreadyExists.New("dup"), codes.AlreadyExists},
		{trac.ErrVersionConflict.New("race"), codes.FailedPrecondition},
		{trac.ErrTagVersionConflict.New("race"), codes.FailedPrecondition},
		{trac.ErrWrongObjectType.New("type"), codes.FailedPrecondition},
		{trac.ErrPermissionDenied.New("no"), codes.PermissionDenied},
		{trac.ErrUnauthenticated.New("who"), codes.Unauthenticated},
		{trac.ErrResourceExhausted.New("full"), codes.ResourceExhausted},
		{trac.ErrNotImplemented.New("todo"), codes.Unimplemented},
		{trac.ErrCacheNotFound.New("gone"), codes.NotFound},
		{trac.ErrCacheTicket.New("stale"), codes.Aborted},
		{trac.ErrExecutorUnavailable.New("down"), codes.Unavailable},
		{trac.Error.New("boom"), codes.Internal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, trac.Code(tc.err))
	}
}

func TestStatusError(t *testing.T) {
	err := trac.StatusError(trac.ErrNotFound.New("object %s", "x"))
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.NotFound, st.Code())
	assert.Contains(t, st.Message(), "object x")

	// internal details never reach the client
	err = trac.StatusError(trac.Error.New("db password is hunter2"))
	st, ok = status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.Internal, st.Code())
	assert.NotContains(t, st.Message(), "hunter2")

	// status errors pass through unchanged
	orig := status.Error(codes.Unavailable, "try later")
	assert.Equal(t, orig, trac.StatusError(orig))

	assert.NoError(t, trac.StatusError(nil))
}
