// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package grpcproxy_test

import (
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"trac.io/trac/gateway/grpcproxy"
	"trac.io/trac/gateway/route"
)

// startUpstream serves handler over h2c and returns its target.
func startUpstream(t *testing.T, handler http.Handler) (route.Target, func()) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := &http.Server{Handler: h2c.NewHandler(handler, &http2.Server{})}
	go func() { _ = server.Serve(listener) }()

	addr := listener.Addr().(*net.TCPAddr)
	target := route.Target{Scheme: "http", Host: "127.0.0.1", Port: addr.Port}
	return target, func() { _ = server.Close() }
}

func grpcRequest(target route.Target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "http://gateway.local/trac.api.TracMetadataApi/readObject", strings.NewReader(body))
	req.ProtoMajor, req.ProtoMinor = 2, 0
	req.Proto = "HTTP/2.0"
	req.Header.Set("Content-Type", "application/grpc")
	req.Header.Set("Te", "trailers")
	matched := route.Route{Prefix: "/trac.api.TracMetadataApi", Target: target, Class: route.GRPCProxy}
	return req.WithContext(route.WithRoute(req.Context(), matched))
}

func TestForwardsFramesAndTrailers(t *testing.T) {
	target, stop := startUpstream(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/grpc", r.Header.Get("Content-Type"))
		require.Equal(t, "/trac.api.TracMetadataApi/readObject", r.URL.Path)

		w.Header().Set("Content-Type", "application/grpc")
		w.Header().Set("Trailer", "Grpc-Status")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte{0, 0, 0, 0, 2, 0xCA, 0xFE})
		w.Header().Set("Grpc-Status", "0")
	}))
	defer stop()

	proxy := grpcproxy.New(zaptest.NewLogger(t))
	rec := httptest.NewRecorder()
	proxy.ServeHTTP(rec, grpcRequest(target, "\x00\x00\x00\x00\x00"))

	resp := rec.Result()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/grpc", resp.Header.Get("Content-Type"))
	require.Equal(t, []byte{0, 0, 0, 0, 2, 0xCA, 0xFE}, rec.Body.Bytes())
	require.Equal(t, "0", resp.Trailer.Get("Grpc-Status"))
}

func TestRejectsHTTP1(t *testing.T) {
	proxy := grpcproxy.New(zaptest.NewLogger(t))

	req := httptest.NewRequest(http.MethodPost, "http://gateway.local/trac.api.TracMetadataApi/readObject", nil)
	req.Header.Set("Content-Type", "application/grpc")
	rec := httptest.NewRecorder()
	proxy.ServeHTTP(rec, req)

	require.Equal(t, http.StatusHTTPVersionNotSupported, rec.Code)
}

func TestUpstreamUnavailable(t *testing.T) {
	target, stop := startUpstream(t, http.NotFoundHandler())
	stop()

	proxy := grpcproxy.New(zaptest.NewLogger(t))
	rec := httptest.NewRecorder()
	proxy.ServeHTTP(rec, grpcRequest(target, ""))

	// transport failure surfaces as a grpc trailers-only response
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, strconv.Itoa(14), rec.Header().Get("Grpc-Status"))
}
