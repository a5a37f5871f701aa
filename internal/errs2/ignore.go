// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package errs2

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// IsCanceled returns true when the error is a cancellation.
func IsCanceled(err error) bool {
	return anyCause(err, func(err error) bool {
		return err == context.Canceled || status.Code(err) == codes.Canceled
	})
}

// IgnoreCanceled returns nil when the operation was about canceling.
func IgnoreCanceled(err error) error {
	if IsCanceled(err) {
		return nil
	}
	return err
}

// anyCause reports whether pred holds for err or anything in its cause
// chain.
func anyCause(err error, pred func(error) bool) bool {
	for err != nil {
		if pred(err) {
			return true
		}
		switch wrapped := err.(type) {
		case interface{ Cause() error }:
			err = wrapped.Cause()
		case interface{ Unwrap() error }:
			err = wrapped.Unwrap()
		default:
			return false
		}
	}
	return false
}
