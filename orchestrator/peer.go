// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// Package orchestrator assembles the job orchestration peer: the job
// cache, the executor, the manager loop and the grpc api.
package orchestrator

import (
	"context"
	"strings"

	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"trac.io/trac/internal/lifecycle"
	"trac.io/trac/internal/version"
	"trac.io/trac/orchestrator/endpoint"
	"trac.io/trac/orchestrator/executor/local"
	"trac.io/trac/orchestrator/jobcache"
	"trac.io/trac/orchestrator/jobs"
	"trac.io/trac/pkg/auth"
	"trac.io/trac/pkg/pb"
	"trac.io/trac/pkg/server"
	"trac.io/trac/storage"
	"trac.io/trac/storage/boltdb"
	"trac.io/trac/storage/redis"
	"trac.io/trac/storage/storelogger"
)

// Error is the orchestrator peer error class.
var Error = errs.Class("orchestrator")

// CacheConfig selects the job cache backend.
type CacheConfig struct {
	Backend  string `help:"job cache backend url (bolt:// or redis://)" default:"bolt://$CONFDIR/jobcache.db"`
	DebugLog bool   `help:"log every job cache store operation" default:"false"`
}

// MetadataConfig points at the trusted metadata api.
type MetadataConfig struct {
	Address string `help:"address of the trusted metadata api" default:"127.0.0.1:7601"`
	APIKey  string `help:"api key for the trusted metadata api" default:""`
}

// Config is the orchestrator peer configuration.
type Config struct {
	Cache    CacheConfig
	Metadata MetadataConfig
	Executor local.Config
	Jobs     jobs.Config
	Server   server.Config
	Version  version.Config
}

// Peer is the orchestrator server.
type Peer struct {
	Log *zap.Logger

	Metadata struct {
		Conn   *grpc.ClientConn
		Client pb.TrustedMetadataClient
	}

	Cache    *jobcache.Cache
	Executor *local.Executor

	Jobs struct {
		Processor *jobs.Processor
		Manager   *jobs.Manager
	}

	Endpoint *endpoint.Endpoint
	Version  *version.Service
	Server   *server.Server

	Services lifecycle.Group
}

// New wires up the orchestrator peer.
func New(log *zap.Logger, config Config) (*Peer, error) {
	peer := &Peer{
		Log:      log,
		Services: *lifecycle.NewGroup(log.Named("services")),
	}

	store, err := openCache(config.Cache)
	if err != nil {
		return nil, err
	}
	if config.Cache.DebugLog {
		store = storelogger.New(log.Named("cachestore"), store)
	}
	peer.Cache = jobcache.New(log.Named("jobcache"), store)

	peer.Version = version.NewService(log.Named("version"), config.Version, version.Build, "Orchestrator")
	peer.Services.Add(lifecycle.Item{
		Name:  "version",
		Run:   peer.Version.Run,
		Close: peer.Version.Close,
	})

	conn, err := grpc.Dial(config.Metadata.Address,
		grpc.WithInsecure(),
		grpc.WithPerRPCCredentials(auth.NewAPIKeyCredentials(config.Metadata.APIKey)))
	if err != nil {
		_ = peer.Cache.Close()
		return nil, Error.Wrap(err)
	}
	peer.Metadata.Conn = conn
	peer.Metadata.Client = pb.NewTrustedMetadataClient(conn)

	peer.Executor, err = local.New(log.Named("executor"), config.Executor)
	if err != nil {
		_ = peer.Cache.Close()
		_ = conn.Close()
		return nil, err
	}

	peer.Jobs.Processor = jobs.NewProcessor(log.Named("processor"), peer.Metadata.Client, peer.Executor)
	peer.Jobs.Manager = jobs.NewManager(log.Named("manager"), peer.Cache, peer.Jobs.Processor, config.Jobs)

	peer.Endpoint = endpoint.New(log.Named("endpoint"), peer.Cache, peer.Metadata.Client)

	srv, err := server.New(log.Named("server"), config.Server, auth.NewAPIKeyInterceptor())
	if err != nil {
		_ = peer.Cache.Close()
		_ = conn.Close()
		return nil, err
	}
	peer.Server = srv
	pb.RegisterOrchestratorServer(srv.GRPC(), peer.Endpoint)

	peer.Services.Add(lifecycle.Item{
		Name:  "manager",
		Run:   peer.Jobs.Manager.Run,
		Close: peer.Jobs.Manager.Close,
	})
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

// Close shuts the peer down.
func (peer *Peer) Close() error {
	var group errs.Group
	group.Add(peer.Services.Close())
	if peer.Cache != nil {
		group.Add(peer.Cache.Close())
	}
	if peer.Metadata.Conn != nil {
		group.Add(peer.Metadata.Conn.Close())
	}
	return group.Err()
}

// openCache opens the configured job cache backend.
func openCache(config CacheConfig) (storage.Store, error) {
	switch {
	case strings.HasPrefix(config.Backend, "bolt://"):
		return boltdb.New(strings.TrimPrefix(config.Backend, "bolt://"), "jobcache")
	case strings.HasPrefix(config.Backend, "redis://"):
		return redis.NewFromURL(config.Backend)
	}
	return nil, Error.New("unsupported job cache backend %q", config.Backend)
}
