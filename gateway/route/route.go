// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// Package route holds the gateway routing table and the dispatching
// handler. Requests are matched on their first path segment and handed
// to the handler for the route's protocol class; gRPC and gRPC-Web
// requests are reclassified by content type before dispatch.
package route

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/zeebo/errs"
)

// Error is the routing error class.
var Error = errs.Class("route")

// Class is the protocol treatment a route gets.
type Class int

// Protocol classes.
const (
	ClassNotSet Class = iota
	HTTPProxy
	GRPCProxy
	GRPCWeb
	RESTMapped
	Internal
)

// String returns the config spelling of the class.
func (class Class) String() string {
	switch class {
	case HTTPProxy:
		return "HTTP_PROXY"
	case GRPCProxy:
		return "GRPC_PROXY"
	case GRPCWeb:
		return "GRPC_WEB"
	case RESTMapped:
		return "REST_MAPPED"
	case Internal:
		return "INTERNAL"
	}
	return "NOT_SET"
}

// Target is the upstream a route forwards to.
type Target struct {
	Scheme string
	Host   string
	Port   int
	Path   string
}

// Authority returns host:port.
func (target Target) Authority() string {
	return fmt.Sprintf("%s:%d", target.Host, target.Port)
}

// URL returns the base url of the target.
func (target Target) URL() string {
	return target.Scheme + "://" + target.Authority() + target.Path
}

// Route maps one path prefix to a target and a protocol class.
type Route struct {
	Prefix string
	Target Target
	Class  Class
}

// Table is an ordered route table.
type Table struct {
	routes []Route
}

// NewTable validates and builds a table. Prefixes keep their
// declaration order, which breaks length ties.
func NewTable(routes []Route) (*Table, error) {
	for i, r := range routes {
		if !strings.HasPrefix(r.Prefix, "/") {
			return nil, Error.New("route %d: prefix %q must start with /", i, r.Prefix)
		}
		if r.Class == ClassNotSet {
			return nil, Error.New("route %d: no class", i)
		}
	}
	return &Table{routes: routes}, nil
}

// Routes returns a copy of the table for inspection.
func (table *Table) Routes() []Route {
	return append([]Route(nil), table.routes...)
}

// Match finds the route for a request path: longest matching prefix on
// a segment boundary, declaration order breaking ties.
func (table *Table) Match(path string) (Route, bool) {
	var best Route
	bestLen := -1
	for _, r := range table.routes {
		if !matchesPrefix(path, r.Prefix) {
			continue
		}
		if len(r.Prefix) > bestLen {
			best, bestLen = r, len(r.Prefix)
		}
	}
	return best, bestLen >= 0
}

func matchesPrefix(path, prefix string) bool {
	if prefix == "/" {
		return true
	}
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

// Classify widens the table's class with the request content type:
// gRPC and gRPC-Web traffic always gets its protocol treatment no
// matter which prefix it arrived on.
func Classify(r *http.Request, matched Class) Class {
	contentType := r.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(contentType, "application/grpc-web"):
		return GRPCWeb
	case strings.HasPrefix(contentType, "application/grpc"):
		return GRPCProxy
	}
	return matched
}

type routeContextKey struct{}

// WithRoute attaches the matched route to a request context.
func WithRoute(ctx context.Context, r Route) context.Context {
	return context.WithValue(ctx, routeContextKey{}, r)
}

// FromContext returns the matched route for this request.
func FromContext(ctx context.Context) (Route, bool) {
	r, ok := ctx.Value(routeContextKey{}).(Route)
	return r, ok
}

// Handlers holds one handler per protocol class.
type Handlers struct {
	HTTP     http.Handler
	GRPC     http.Handler
	GRPCWeb  http.Handler
	REST     http.Handler
	Internal http.Handler
}

// Router dispatches requests by table match and protocol class.
type Router struct {
	table    *Table
	handlers Handlers
}

// NewRouter creates the dispatching handler.
func NewRouter(table *Table, handlers Handlers) *Router {
	return &Router{table: table, handlers: handlers}
}

// ServeHTTP matches, classifies and dispatches. Unroutable requests
// are answered 404 and the connection is closed.
func (router *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	matched, ok := router.table.Match(r.URL.Path)
	if !ok {
		w.Header().Set("Connection", "close")
		http.Error(w, "no route", http.StatusNotFound)
		return
	}

	var handler http.Handler
	switch Classify(r, matched.Class) {
	case HTTPProxy:
		handler = router.handlers.HTTP
	case GRPCProxy:
		handler = router.handlers.GRPC
	case GRPCWeb:
		handler = router.handlers.GRPCWeb
	case RESTMapped:
		handler = router.handlers.REST
	case Internal:
		handler = router.handlers.Internal
	}
	if handler == nil {
		http.Error(w, "protocol not supported on this route", http.StatusNotImplemented)
		return
	}

	handler.ServeHTTP(w, r.WithContext(WithRoute(r.Context(), matched)))
}
