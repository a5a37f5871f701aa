// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// Package internalpage serves the gateway's own pages: health probe,
// build info and the live route table.
package internalpage

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"trac.io/trac/gateway/route"
	"trac.io/trac/internal/version"
)

// Pages is the handler for the INTERNAL route class.
type Pages struct {
	log    *zap.Logger
	table  *route.Table
	router *mux.Router
}

// New creates the internal page handler over a route table.
func New(log *zap.Logger, table *route.Table) *Pages {
	pages := &Pages{log: log, table: table}

	router := mux.NewRouter()
	router.HandleFunc("/healthz", pages.healthz).Methods(http.MethodGet)
	router.HandleFunc("/version", pages.version).Methods(http.MethodGet)
	router.HandleFunc("/routes", pages.routes).Methods(http.MethodGet)
	pages.router = router

	return pages
}

// ServeHTTP implements http.Handler.
func (pages *Pages) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	pages.router.ServeHTTP(w, r)
}

func (pages *Pages) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("ok\n"))
}

func (pages *Pages) version(w http.ResponseWriter, r *http.Request) {
	pages.writeJSON(w, version.Build)
}

type routeInfo struct {
	Prefix string `json:"prefix"`
	Target string `json:"target"`
	Class  string `json:"class"`
}

func (pages *Pages) routes(w http.ResponseWriter, r *http.Request) {
	var infos []routeInfo
	for _, rt := range pages.table.Routes() {
		infos = append(infos, routeInfo{
			Prefix: rt.Prefix,
			Target: rt.Target.URL(),
			Class:  rt.Class.String(),
		})
	}
	pages.writeJSON(w, infos)
}

func (pages *Pages) writeJSON(w http.ResponseWriter, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(value); err != nil {
		pages.log.Warn("page encoding failed", zap.Error(err))
	}
}
