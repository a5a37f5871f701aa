// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// Package grpcproxy forwards native gRPC traffic. Requests stay on
// HTTP/2 end to end and responses are flushed per frame so streaming
// calls and trailers survive the hop.
package grpcproxy

import (
	"crypto/tls"
	"net"
	"net/http"
	"net/http/httputil"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"google.golang.org/grpc/codes"

	"trac.io/trac/gateway/route"
)

// Proxy is an http.Handler forwarding gRPC requests to the target of
// the route attached to the request context.
type Proxy struct {
	log   *zap.Logger
	proxy *httputil.ReverseProxy
}

// New creates a proxy over a shared plaintext HTTP/2 transport.
func New(log *zap.Logger) *Proxy {
	p := &Proxy{log: log}
	p.proxy = &httputil.ReverseProxy{
		Director: p.direct,
		Transport: &http2.Transport{
			AllowHTTP: true,
			DialTLS: func(network, addr string, _ *tls.Config) (net.Conn, error) {
				return net.DialTimeout(network, addr, 10*time.Second)
			},
		},
		// flush eagerly, grpc frames must not sit in a buffer
		FlushInterval: 50 * time.Millisecond,
		ErrorHandler:  p.upstreamError,
	}
	return p
}

// ServeHTTP implements http.Handler.
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.ProtoMajor < 2 {
		// grpc requires HTTP/2; the client spoke HTTP/1.1 to us
		http.Error(w, "grpc requires HTTP/2", http.StatusHTTPVersionNotSupported)
		return
	}
	p.proxy.ServeHTTP(w, r)
}

func (p *Proxy) direct(r *http.Request) {
	matched, ok := route.FromContext(r.Context())
	if !ok {
		return
	}
	r.URL.Scheme = "http"
	r.URL.Host = matched.Target.Authority()
	r.Host = matched.Target.Authority()
}

// upstreamError reports transport failure the grpc way: trailers-only
// response with grpc-status UNAVAILABLE and HTTP 200.
func (p *Proxy) upstreamError(w http.ResponseWriter, r *http.Request, err error) {
	p.log.Warn("grpc upstream failed",
		zap.String("method", r.URL.Path),
		zap.String("upstream", r.URL.Host),
		zap.Error(err))

	w.Header().Set("Content-Type", "application/grpc")
	w.Header().Set("Grpc-Status", strconv.Itoa(int(codes.Unavailable)))
	w.Header().Set("Grpc-Message", "upstream unavailable")
	w.WriteHeader(http.StatusOK)
}
