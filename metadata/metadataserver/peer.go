// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// Package metadataserver wires the metadata service into a runnable
// peer. It lives apart from package metadata so the storage and
// service packages can depend on the metadata interfaces without
// pulling in the server stack.
package metadataserver

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"trac.io/trac/internal/lifecycle"
	"trac.io/trac/internal/version"
	"trac.io/trac/metadata"
	"trac.io/trac/metadata/endpoint"
	"trac.io/trac/metadata/objects"
	"trac.io/trac/pkg/auth"
	"trac.io/trac/pkg/pb"
	"trac.io/trac/pkg/server"
)

// Config is the metadata peer configuration.
type Config struct {
	Database string `help:"metadata database url" default:"sqlite3://$CONFDIR/metadata.db"`

	TrustedAPIKey string `help:"api key required by the trusted metadata api" default:""`

	Server  server.Config
	Objects objects.Config
	Version version.Config
}

// Peer is the metadata server. The public endpoint serves application
// clients, the trusted endpoint on the private listener serves platform
// services.
type Peer struct {
	Log *zap.Logger
	DB  metadata.DB

	Version *version.Service
	Server  *server.Server

	Objects struct {
		Service *objects.Service
		Public  *endpoint.Public
		Trusted *endpoint.Trusted
	}

	Services lifecycle.Group
}

// New wires up the metadata peer.
func New(log *zap.Logger, db metadata.DB, config Config) (*Peer, error) {
	peer := &Peer{
		Log:      log,
		DB:       db,
		Services: *lifecycle.NewGroup(log.Named("services")),
	}

	peer.Version = version.NewService(log.Named("version"), config.Version, version.Build, "Metadata")
	peer.Services.Add(lifecycle.Item{
		Name:  "version",
		Run:   peer.Version.Run,
		Close: peer.Version.Close,
	})

	srv, err := server.New(log.Named("server"), config.Server, auth.NewAPIKeyInterceptor())
	if err != nil {
		return nil, err
	}
	peer.Server = srv

	peer.Objects.Service = objects.NewService(log.Named("objects"), db, config.Objects)
	peer.Objects.Public = endpoint.NewPublic(peer.Objects.Service)
	peer.Objects.Trusted = endpoint.NewTrusted(peer.Objects.Service, config.TrustedAPIKey)

	pb.RegisterPublicMetadataServer(srv.GRPC(), peer.Objects.Public)
	pb.RegisterTrustedMetadataServer(srv.PrivateGRPC(), peer.Objects.Trusted)

	peer.Services.Add(lifecycle.Item{
		Name:  "server",
		Run:   srv.Run,
		Close: srv.Close,
	})
	return peer, nil
}

// Run runs the peer until the context is canceled.
func (peer *Peer) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)
	peer.Services.Run(ctx, group)
	return group.Wait()
}

// Close releases the peer's resources, the database stays open for the
// caller to close.
func (peer *Peer) Close() error {
	return peer.Services.Close()
}
