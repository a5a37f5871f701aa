// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package trac

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Code maps a platform error onto its canonical grpc code. Unrecognized
// errors map to Internal.
func Code(err error) codes.Code {
	switch {
	case err == nil:
		return codes.OK
	case ErrInvalidInput.Has(err), ErrInvalidType.Has(err):
		return codes.InvalidArgument
	case ErrNotFound.Has(err), ErrCacheNotFound.Has(err):
		return codes.NotFound
	case ErrAlreadyExists.Has(err):
		return codes.AlreadyExists
	case ErrVersionConflict.Has(err), ErrTagVersionConflict.Has(err), ErrWrongObjectType.Has(err):
		return codes.FailedPrecondition
	case ErrPermissionDenied.Has(err):
		return codes.PermissionDenied
	case ErrUnauthenticated.Has(err):
		return codes.Unauthenticated
	case ErrResourceExhausted.Has(err):
		return codes.ResourceExhausted
	case ErrNotImplemented.Has(err):
		return codes.Unimplemented
	case ErrCacheTicket.Has(err):
		return codes.Aborted
	case ErrExecutorUnavailable.Has(err):
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

// StatusError converts err into a grpc status error. Internal failures are
// reported without detail, the full error stays in the server logs.
func StatusError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	code := Code(err)
	if code == codes.Internal {
		return status.Error(codes.Internal, "internal server error")
	}
	return status.Error(code, err.Error())
}
