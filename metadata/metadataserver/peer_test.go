// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package metadataserver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"trac.io/trac/internal/testcontext"
	"trac.io/trac/metadata/metadatadb"
	"trac.io/trac/metadata/metadataserver"
	"trac.io/trac/pkg/pb"
	"trac.io/trac/pkg/server"
)

func TestPeerServesBothTiers(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	db, err := metadatadb.New(zaptest.NewLogger(t), "sqlite3://"+ctx.File("metadata.db"))
	require.NoError(t, err)
	defer ctx.Check(db.Close)
	require.NoError(t, db.MigrateToLatest(ctx))

	peer, err := metadataserver.New(zaptest.NewLogger(t), db, metadataserver.Config{
		TrustedAPIKey: "secret-key",
		Server: server.Config{
			Address:        "127.0.0.1:0",
			PrivateAddress: "127.0.0.1:0",
		},
	})
	require.NoError(t, err)

	runCtx, cancel := context.WithCancel(context.Background())
	ctx.Go(func() error { return peer.Run(runCtx) })
	defer func() {
		cancel()
		require.NoError(t, ctx.Wait())
		require.NoError(t, peer.Close())
	}()

	publicConn, err := grpc.Dial(peer.Server.Addr().String(), grpc.WithInsecure())
	require.NoError(t, err)
	defer ctx.Check(publicConn.Close)

	info, err := pb.NewPublicMetadataClient(publicConn).PlatformInfo(ctx, &pb.PlatformInfoRequest{})
	require.NoError(t, err)
	require.NotNil(t, info)

	// the trusted api is registered only on the private listener
	_, err = pb.NewTrustedMetadataClient(publicConn).PreallocateId(ctx, &pb.MetadataWriteRequest{})
	require.Equal(t, codes.Unimplemented, status.Code(err))

	privateConn, err := grpc.Dial(peer.Server.PrivateAddr().String(), grpc.WithInsecure())
	require.NoError(t, err)
	defer ctx.Check(privateConn.Close)

	// reachable there, just guarded by the api key
	_, err = pb.NewTrustedMetadataClient(privateConn).PreallocateId(ctx, &pb.MetadataWriteRequest{})
	require.Equal(t, codes.Unauthenticated, status.Code(err))
}
