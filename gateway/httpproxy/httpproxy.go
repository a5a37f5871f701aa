// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// Package httpproxy forwards plain HTTP/1.1 traffic to a route's
// upstream target.
package httpproxy

import (
	"context"
	"net"
	"net/http"
	"net/http/httputil"
	"strings"
	"time"

	"go.uber.org/zap"

	"trac.io/trac/gateway/route"
)

// hop-by-hop headers per RFC 7230 section 6.1, never forwarded.
var hopByHopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// Proxy is an http.Handler forwarding requests to the target of the
// route attached to the request context.
type Proxy struct {
	log   *zap.Logger
	proxy *httputil.ReverseProxy
}

// New creates a proxy with a pooled transport.
func New(log *zap.Logger) *Proxy {
	p := &Proxy{log: log}
	p.proxy = &httputil.ReverseProxy{
		Director: p.direct,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 16,
			IdleConnTimeout:     90 * time.Second,
		},
		ErrorHandler: p.upstreamError,
	}
	return p
}

// ServeHTTP implements http.Handler.
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	stripHopByHop(r.Header)
	p.proxy.ServeHTTP(w, r)
}

// direct rewrites the request for its upstream. The matched prefix is
// replaced by the target path, so /app/index.html on a target with
// path /web arrives as /web/index.html.
func (p *Proxy) direct(r *http.Request) {
	matched, ok := route.FromContext(r.Context())
	if !ok {
		return
	}

	r.URL.Scheme = matched.Target.Scheme
	if r.URL.Scheme == "" {
		r.URL.Scheme = "http"
	}
	r.URL.Host = matched.Target.Authority()
	r.URL.Path = rewritePath(r.URL.Path, matched.Prefix, matched.Target.Path)
	r.Host = matched.Target.Authority()

	if _, ok := r.Header["User-Agent"]; !ok {
		// keep the client's silence instead of the Go default
		r.Header.Set("User-Agent", "")
	}
}

func rewritePath(path, prefix, targetPath string) string {
	if prefix != "/" && strings.HasPrefix(path, prefix) {
		path = path[len(prefix):]
	}
	if path == "" {
		path = "/"
	}
	joined := strings.TrimSuffix(targetPath, "/") + path
	if !strings.HasPrefix(joined, "/") {
		joined = "/" + joined
	}
	return joined
}

func (p *Proxy) upstreamError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadGateway
	if errIsTimeout(err) {
		status = http.StatusGatewayTimeout
	}
	p.log.Warn("upstream request failed",
		zap.String("path", r.URL.Path),
		zap.String("upstream", r.URL.Host),
		zap.Error(err))
	http.Error(w, http.StatusText(status), status)
}

func errIsTimeout(err error) bool {
	if err == context.DeadlineExceeded {
		return true
	}
	netErr, ok := err.(net.Error)
	return ok && netErr.Timeout()
}

func stripHopByHop(header http.Header) {
	for _, token := range header["Connection"] {
		for _, name := range strings.Split(token, ",") {
			if name = strings.TrimSpace(name); name != "" {
				header.Del(name)
			}
		}
	}
	for _, name := range hopByHopHeaders {
		header.Del(name)
	}
}
