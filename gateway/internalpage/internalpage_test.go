// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package internalpage_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"trac.io/trac/gateway/internalpage"
	"trac.io/trac/gateway/route"
)

func testPages(t *testing.T) *internalpage.Pages {
	table, err := route.NewTable([]route.Route{
		{Prefix: "/api/v1", Target: route.Target{Scheme: "http", Host: "meta", Port: 7601}, Class: route.RESTMapped},
		{Prefix: "/healthz", Class: route.Internal},
	})
	require.NoError(t, err)
	return internalpage.New(zaptest.NewLogger(t), table)
}

func get(pages *internalpage.Pages, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	pages.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	rec := get(testPages(t), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok\n", rec.Body.String())
}

func TestVersion(t *testing.T) {
	rec := get(testPages(t), "/version")
	require.Equal(t, http.StatusOK, rec.Code)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	require.Contains(t, decoded, "version")
}

func TestRoutes(t *testing.T) {
	rec := get(testPages(t), "/routes")
	require.Equal(t, http.StatusOK, rec.Code)

	var infos []struct {
		Prefix string `json:"prefix"`
		Target string `json:"target"`
		Class  string `json:"class"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &infos))
	require.Len(t, infos, 2)
	require.Equal(t, "/api/v1", infos[0].Prefix)
	require.Equal(t, "http://meta:7601", infos[0].Target)
	require.Equal(t, "REST_MAPPED", infos[0].Class)
}

func TestUnknownPage(t *testing.T) {
	rec := get(testPages(t), "/secrets")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
