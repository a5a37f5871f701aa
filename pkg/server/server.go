// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// Package server provides the paired gRPC listeners every platform
// service runs: a public one for tenant traffic and a private one that
// only internal peers reach.
package server

import (
	"context"
	"net"

	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"trac.io/trac/internal/grpcmonkit"
	"trac.io/trac/pkg/grpcutils"
)

// Error is the default server error class.
var Error = errs.Class("server")

// Config holds server specific configuration parameters.
type Config struct {
	Address        string `help:"public address to listen on" default:":7600"`
	PrivateAddress string `help:"private address to listen on" default:"127.0.0.1:7601"`
}

// Server represents one public and one private gRPC endpoint pair.
type Server struct {
	log *zap.Logger

	public  endpoint
	private endpoint
}

type endpoint struct {
	listener net.Listener
	grpc     *grpc.Server
}

// New constructs the server and binds both listeners. Extra unary
// interceptors run after the built-in tracing and logging ones on both
// endpoints.
func New(log *zap.Logger, config Config, interceptors ...grpc.UnaryServerInterceptor) (*Server, error) {
	server := &Server{log: log}

	publicListener, err := net.Listen("tcp", config.Address)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	privateListener, err := net.Listen("tcp", config.PrivateAddress)
	if err != nil {
		return nil, errs.Combine(Error.Wrap(err), publicListener.Close())
	}

	chain := []grpcutils.ServerInterceptor{
		{Unary: grpcmonkit.UnaryServerInterceptor, Stream: grpcmonkit.StreamServerInterceptor},
		{Unary: unaryLogger(log.Named("rpc")), Stream: streamLogger(log.Named("rpc"))},
	}
	for _, interceptor := range interceptors {
		chain = append(chain, grpcutils.ServerInterceptor{
			Unary:  interceptor,
			Stream: passthroughStream,
		})
	}

	server.public = endpoint{
		listener: publicListener,
		grpc:     grpc.NewServer(grpcutils.ServerInterceptors(chain...)...),
	}
	server.private = endpoint{
		listener: privateListener,
		grpc:     grpc.NewServer(grpcutils.ServerInterceptors(chain...)...),
	}
	return server, nil
}

// GRPC returns the public gRPC server for registering services.
func (server *Server) GRPC() *grpc.Server { return server.public.grpc }

// PrivateGRPC returns the private gRPC server for registering services.
func (server *Server) PrivateGRPC() *grpc.Server { return server.private.grpc }

// Addr returns the public address the server listens on.
func (server *Server) Addr() net.Addr { return server.public.listener.Addr() }

// PrivateAddr returns the private address the server listens on.
func (server *Server) PrivateAddr() net.Addr { return server.private.listener.Addr() }

// Run will run both endpoints and all of the registered services.
func (server *Server) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		<-ctx.Done()
		server.public.grpc.GracefulStop()
		server.private.grpc.GracefulStop()
		return nil
	})
	group.Go(func() error {
		defer cancel()
		return server.public.grpc.Serve(server.public.listener)
	})
	group.Go(func() error {
		defer cancel()
		return server.private.grpc.Serve(server.private.listener)
	})

	err = group.Wait()
	if err == grpc.ErrServerStopped {
		err = nil
	}
	return Error.Wrap(err)
}

// Close shuts down both endpoints.
func (server *Server) Close() error {
	server.public.grpc.Stop()
	server.private.grpc.Stop()
	return nil
}

func passthroughStream(srv interface{}, stream grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	return handler(srv, stream)
}
