// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package httpproxy_test

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"trac.io/trac/gateway/httpproxy"
	"trac.io/trac/gateway/route"
)

func targetFor(t *testing.T, rawurl string) route.Target {
	u, err := url.Parse(rawurl)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return route.Target{Scheme: "http", Host: u.Hostname(), Port: port, Path: "/"}
}

func proxyRequest(t *testing.T, proxy *httpproxy.Proxy, r route.Route, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req = req.WithContext(route.WithRoute(req.Context(), r))
	proxy.ServeHTTP(rec, req)
	return rec
}

func TestForwarding(t *testing.T) {
	var seenPath, seenHost, seenCustom string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenPath = r.URL.Path
		seenHost = r.Host
		seenCustom = r.Header.Get("X-Custom")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("hello from upstream"))
	}))
	defer upstream.Close()

	proxy := httpproxy.New(zaptest.NewLogger(t))
	target := targetFor(t, upstream.URL)
	target.Path = "/web"

	req := httptest.NewRequest(http.MethodGet, "http://gateway.local/app/static/main.css", nil)
	req.Header.Set("X-Custom", "kept")
	rec := proxyRequest(t, proxy, route.Route{Prefix: "/app", Target: target, Class: route.HTTPProxy}, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "hello from upstream", rec.Body.String())

	require.Equal(t, "/web/static/main.css", seenPath)
	require.Equal(t, target.Authority(), seenHost)
	require.Equal(t, "kept", seenCustom)
}

func TestHopByHopStripped(t *testing.T) {
	var seen http.Header
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = http.Header{}
		for name, values := range r.Header {
			seen[name] = values
		}
	}))
	defer upstream.Close()

	proxy := httpproxy.New(zaptest.NewLogger(t))
	r := route.Route{Prefix: "/", Target: targetFor(t, upstream.URL), Class: route.HTTPProxy}

	req := httptest.NewRequest(http.MethodGet, "http://gateway.local/anything", nil)
	req.Header.Set("Connection", "X-Per-Hop")
	req.Header.Set("X-Per-Hop", "drop me")
	req.Header.Set("Keep-Alive", "timeout=5")
	req.Header.Set("Proxy-Authorization", "Basic secret")
	rec := proxyRequest(t, proxy, r, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, seen.Get("X-Per-Hop"))
	require.Empty(t, seen.Get("Keep-Alive"))
	require.Empty(t, seen.Get("Proxy-Authorization"))
}

func TestUpstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	r := route.Route{Prefix: "/", Target: targetFor(t, upstream.URL), Class: route.HTTPProxy}
	upstream.Close()

	proxy := httpproxy.New(zaptest.NewLogger(t))
	req := httptest.NewRequest(http.MethodGet, "http://gateway.local/anything", nil)
	rec := proxyRequest(t, proxy, r, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	body, err := ioutil.ReadAll(rec.Body)
	require.NoError(t, err)
	require.NotEmpty(t, body)
}
