// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package errs2

import (
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// IsRPC checks if err contains an RPC error with the given status code.
func IsRPC(err error, code codes.Code) bool {
	search := "code = " + code.String()
	return anyCause(err, func(err error) bool {
		return status.Code(err) == code || strings.Contains(err.Error(), search)
	})
}
