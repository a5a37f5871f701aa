// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package gateway_test

import (
	"context"
	"crypto/tls"
	"io/ioutil"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/net/http2"

	"trac.io/trac/gateway"
	"trac.io/trac/internal/testcontext"
)

func startGateway(t *testing.T, ctx *testcontext.Context) (*gateway.Peer, func()) {
	peer, err := gateway.New(zaptest.NewLogger(t), gateway.Config{
		Address:     "127.0.0.1:0",
		IdleTimeout: time.Minute,
	})
	require.NoError(t, err)

	runCtx, cancel := context.WithCancel(context.Background())
	ctx.Go(func() error { return peer.Run(runCtx) })

	return peer, func() {
		cancel()
		require.NoError(t, ctx.Wait())
		require.NoError(t, peer.Close())
	}
}

func TestServesHTTP1AndH2C(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	peer, stop := startGateway(t, ctx)
	defer stop()

	url := "http://" + peer.Addr() + "/healthz"

	// plain HTTP/1.1
	resp, err := http.Get(url)
	require.NoError(t, err)
	body, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 1, resp.ProtoMajor)
	require.Equal(t, "ok\n", string(body))

	// prior-knowledge HTTP/2 on the same listener
	client := &http.Client{
		Transport: &http2.Transport{
			AllowHTTP: true,
			DialTLS: func(network, addr string, _ *tls.Config) (net.Conn, error) {
				return net.Dial(network, addr)
			},
		},
	}
	resp, err = client.Get(url)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 2, resp.ProtoMajor)
}

func TestUnroutedRequest(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	peer, stop := startGateway(t, ctx)
	defer stop()

	resp, err := http.Get("http://" + peer.Addr() + "/no-such-prefix")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.True(t, resp.Close || resp.Header.Get("Connection") == "close")
}

func TestRouteTableEndpoint(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	peer, stop := startGateway(t, ctx)
	defer stop()

	resp, err := http.Get("http://" + peer.Addr() + "/routes")
	require.NoError(t, err)
	body, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "/trac-meta")
	require.Contains(t, string(body), "REST_MAPPED")
}
