// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package grpcmonkit

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/metadata"
)

func TestParseFullMethod(t *testing.T) {
	service, endpoint := parseFullMethod("/trac.metadata.PublicMetadata/ReadObject")
	require.Equal(t, "/trac.metadata.PublicMetadata", service)
	require.Equal(t, "/ReadObject", endpoint)
}

func TestTraceFromRequest(t *testing.T) {
	// no metadata falls back to fresh ids
	traceid, spanid := traceFromRequest(context.Background())
	require.NotZero(t, traceid)
	require.NotZero(t, spanid)

	// ids round-trip through the metadata keys the client sets
	md := metadata.Pairs(
		traceIDKey, strconv.FormatInt(12345, 10),
		spanIDKey, strconv.FormatInt(67890, 10),
	)
	traceid, spanid = traceFromRequest(metadata.NewIncomingContext(context.Background(), md))
	require.Equal(t, int64(12345), traceid)
	require.Equal(t, int64(67890), spanid)

	// garbage ids fall back too
	md = metadata.Pairs(traceIDKey, "not-a-number", spanIDKey, "1")
	traceid, spanid = traceFromRequest(metadata.NewIncomingContext(context.Background(), md))
	require.NotZero(t, traceid)
	require.NotZero(t, spanid)
}
