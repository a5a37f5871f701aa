// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// Package gateway is the platform's single HTTP entry point. One
// plaintext listener carries HTTP/1.1, h2c and gRPC traffic; a prefix
// route table decides where each request goes and which protocol
// treatment it gets.
package gateway

import (
	"context"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"trac.io/trac/gateway/grpcproxy"
	"trac.io/trac/gateway/grpcweb"
	"trac.io/trac/gateway/httpproxy"
	"trac.io/trac/gateway/internalpage"
	"trac.io/trac/gateway/restapi"
	"trac.io/trac/gateway/route"
	"trac.io/trac/internal/lifecycle"
	"trac.io/trac/internal/version"
)

// Error is the gateway error class.
var Error = errs.Class("gateway")

const maxIdleTimeout = 3600 * time.Second

// Config is the gateway peer configuration.
type Config struct {
	Address     string        `user:"true" help:"address the gateway listens on" default:":8080"`
	IdleTimeout time.Duration `help:"how long an idle client connection is kept open, 1h at most" default:"60s"`

	Metadata     BackendConfig
	Orchestrator BackendConfig
	Web          WebConfig
	Version      version.Config
}

// BackendConfig locates one grpc backend.
type BackendConfig struct {
	Host string `help:"backend host" default:"127.0.0.1"`
	Port int    `help:"backend grpc port" default:"0"`
}

// WebConfig locates the static web application, if any.
type WebConfig struct {
	Host string `help:"web application host, empty disables the web routes" default:""`
	Port int    `help:"web application port" default:"8090"`
	Path string `help:"base path on the web application server" default:"/"`
}

// Peer is the gateway server.
type Peer struct {
	Log   *zap.Logger
	Table *route.Table

	Handlers struct {
		HTTP     *httpproxy.Proxy
		GRPC     *grpcproxy.Proxy
		GRPCWeb  *grpcweb.Bridge
		REST     *restapi.Handler
		Internal *internalpage.Pages
	}

	Version *version.Service

	Server struct {
		Endpoint http.Server
		Listener net.Listener
	}

	Services lifecycle.Group
}

// New wires up the gateway and starts listening.
func New(log *zap.Logger, config Config) (*Peer, error) {
	peer := &Peer{
		Log:      log,
		Services: *lifecycle.NewGroup(log.Named("services")),
	}

	table, err := route.NewTable(buildRoutes(config))
	if err != nil {
		return nil, err
	}
	peer.Table = table

	peer.Version = version.NewService(log.Named("version"), config.Version, version.Build, "Gateway")
	peer.Services.Add(lifecycle.Item{
		Name:  "version",
		Run:   peer.Version.Run,
		Close: peer.Version.Close,
	})

	peer.Handlers.HTTP = httpproxy.New(log.Named("httpproxy"))
	peer.Handlers.GRPC = grpcproxy.New(log.Named("grpcproxy"))
	peer.Handlers.GRPCWeb = grpcweb.New(log.Named("grpcweb"))
	peer.Handlers.REST = restapi.New(log.Named("restapi"),
		append(restapi.MetadataMethods(), restapi.OrchestratorMethods()...))
	peer.Handlers.Internal = internalpage.New(log.Named("internal"), table)

	router := route.NewRouter(table, route.Handlers{
		HTTP:     peer.Handlers.HTTP,
		GRPC:     peer.Handlers.GRPC,
		GRPCWeb:  peer.Handlers.GRPCWeb,
		REST:     peer.Handlers.REST,
		Internal: peer.Handlers.Internal,
	})

	idleTimeout := config.IdleTimeout
	if idleTimeout <= 0 || idleTimeout > maxIdleTimeout {
		idleTimeout = maxIdleTimeout
	}

	var connID int64
	peer.Server.Endpoint = http.Server{
		Handler:     h2c.NewHandler(router, &http2.Server{}),
		IdleTimeout: idleTimeout,
		ConnContext: func(ctx context.Context, conn net.Conn) context.Context {
			return withConnID(ctx, atomic.AddInt64(&connID, 1))
		},
	}

	peer.Server.Listener, err = net.Listen("tcp", config.Address)
	if err != nil {
		return nil, errs.Combine(Error.Wrap(err), peer.Close())
	}

	peer.Services.Add(lifecycle.Item{
		Name: "server",
		Run: func(ctx context.Context) error {
			go func() {
				<-ctx.Done()
				_ = peer.Server.Endpoint.Close()
			}()
			err := peer.Server.Endpoint.Serve(peer.Server.Listener)
			if err == http.ErrServerClosed {
				return nil
			}
			return Error.Wrap(err)
		},
		Close: func() error {
			return Error.Wrap(ignoreServerClosed(peer.Server.Endpoint.Close()))
		},
	})
	peer.Services.Add(lifecycle.Item{
		Name:  "restapi",
		Close: peer.Handlers.REST.Close,
	})

	return peer, nil
}

// Addr returns the address the gateway is listening on.
func (peer *Peer) Addr() string {
	return peer.Server.Listener.Addr().String()
}

// Run runs the gateway until the context is canceled.
func (peer *Peer) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)
	peer.Services.Run(ctx, group)
	return group.Wait()
}

// Close releases the gateway's resources.
func (peer *Peer) Close() error {
	return peer.Services.Close()
}

// buildRoutes lays out the route table: REST and grpc surfaces for the
// two backend services, the internal pages, and optionally the web
// application as the catch-all.
func buildRoutes(config Config) []route.Route {
	metadata := route.Target{
		Scheme: "http", Host: config.Metadata.Host, Port: config.Metadata.Port,
	}
	orchestrator := route.Target{
		Scheme: "http", Host: config.Orchestrator.Host, Port: config.Orchestrator.Port,
	}

	routes := []route.Route{
		{Prefix: "/trac-meta", Target: metadata, Class: route.RESTMapped},
		{Prefix: "/trac-orch", Target: orchestrator, Class: route.RESTMapped},
		{Prefix: "/trac.metadata.PublicMetadata", Target: metadata, Class: route.GRPCProxy},
		{Prefix: "/trac.metadata.TrustedMetadata", Target: metadata, Class: route.GRPCProxy},
		{Prefix: "/trac.orchestrator.Orchestrator", Target: orchestrator, Class: route.GRPCProxy},
		{Prefix: "/healthz", Class: route.Internal},
		{Prefix: "/version", Class: route.Internal},
		{Prefix: "/routes", Class: route.Internal},
	}

	if config.Web.Host != "" {
		routes = append(routes, route.Route{
			Prefix: "/",
			Target: route.Target{
				Scheme: "http",
				Host:   config.Web.Host,
				Port:   config.Web.Port,
				Path:   config.Web.Path,
			},
			Class: route.HTTPProxy,
		})
	}
	return routes
}

func ignoreServerClosed(err error) error {
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

type connIDKey struct{}

func withConnID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, connIDKey{}, id)
}

// ConnID returns the id of the client connection carrying a request.
func ConnID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(connIDKey{}).(int64)
	return id, ok
}
