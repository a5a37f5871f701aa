// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package route_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"trac.io/trac/gateway/route"
)

func testTable(t *testing.T) *route.Table {
	table, err := route.NewTable([]Route{
		{Prefix: "/app", Class: route.HTTPProxy},
		{Prefix: "/app/static", Class: route.HTTPProxy},
		{Prefix: "/api/v1", Class: route.RESTMapped},
		{Prefix: "/trac.api.TracMetadataApi", Class: route.GRPCProxy},
		{Prefix: "/healthz", Class: route.Internal},
	})
	require.NoError(t, err)
	return table
}

// Route here shadows nothing; it just shortens the literals above.
type Route = route.Route

func TestMatchLongestPrefix(t *testing.T) {
	table := testTable(t)

	r, ok := table.Match("/app/static/main.css")
	require.True(t, ok)
	require.Equal(t, "/app/static", r.Prefix)

	r, ok = table.Match("/app/index.html")
	require.True(t, ok)
	require.Equal(t, "/app", r.Prefix)

	r, ok = table.Match("/app")
	require.True(t, ok)
	require.Equal(t, "/app", r.Prefix)

	// segment boundary: /apple does not match /app
	_, ok = table.Match("/apple/pie")
	require.False(t, ok)

	_, ok = table.Match("/nowhere")
	require.False(t, ok)
}

func TestMatchDeclarationOrder(t *testing.T) {
	table, err := route.NewTable([]Route{
		{Prefix: "/dup", Class: route.HTTPProxy, Target: route.Target{Host: "first"}},
		{Prefix: "/dup", Class: route.HTTPProxy, Target: route.Target{Host: "second"}},
	})
	require.NoError(t, err)

	r, ok := table.Match("/dup/x")
	require.True(t, ok)
	require.Equal(t, "first", r.Target.Host)
}

func TestTableValidation(t *testing.T) {
	_, err := route.NewTable([]Route{{Prefix: "app", Class: route.HTTPProxy}})
	require.Error(t, err)

	_, err = route.NewTable([]Route{{Prefix: "/app"}})
	require.Error(t, err)
}

func TestClassify(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/any", nil)
	require.Equal(t, route.HTTPProxy, route.Classify(req, route.HTTPProxy))

	req.Header.Set("Content-Type", "application/grpc")
	require.Equal(t, route.GRPCProxy, route.Classify(req, route.HTTPProxy))

	req.Header.Set("Content-Type", "application/grpc+proto")
	require.Equal(t, route.GRPCProxy, route.Classify(req, route.HTTPProxy))

	req.Header.Set("Content-Type", "application/grpc-web+proto")
	require.Equal(t, route.GRPCWeb, route.Classify(req, route.GRPCProxy))

	req.Header.Set("Content-Type", "application/grpc-web-text")
	require.Equal(t, route.GRPCWeb, route.Classify(req, route.HTTPProxy))
}

func TestRouterDispatch(t *testing.T) {
	table := testTable(t)

	marker := func(name string) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			matched, ok := route.FromContext(r.Context())
			require.True(t, ok)
			require.NotEmpty(t, matched.Prefix)
			w.Header().Set("X-Handled-By", name)
		})
	}

	router := route.NewRouter(table, route.Handlers{
		HTTP:     marker("http"),
		GRPC:     marker("grpc"),
		REST:     marker("rest"),
		Internal: marker("internal"),
	})

	check := func(path, contentType, want string) {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, want, rec.Header().Get("X-Handled-By"))
	}

	check("/app/index.html", "", "http")
	check("/api/v1/ACME/read-object", "application/json", "rest")
	check("/trac.api.TracMetadataApi/readObject", "application/grpc", "grpc")
	check("/healthz", "", "internal")
	// content type reclassifies away from the table class
	check("/app/anything", "application/grpc", "grpc")
}

func TestRouterNoRoute(t *testing.T) {
	router := route.NewRouter(testTable(t), route.Handlers{})

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "close", rec.Header().Get("Connection"))
}
