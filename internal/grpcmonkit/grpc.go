// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package grpcmonkit

// Metadata keys carrying the trace across peers. grpc requires
// lowercase keys.
const (
	traceIDKey = "trac-trace-id"
	spanIDKey  = "trac-span-id"
)

func parseFullMethod(fullMethod string) (service, endpoint string) {
	for i, p := range fullMethod[1:] {
		if p == '/' {
			return fullMethod[:i+1], fullMethod[i+1:]
		}
	}
	return fullMethod, ""
}
