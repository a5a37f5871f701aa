// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// Package restapi maps a JSON REST surface onto the platform grpc
// APIs. Each route binds a uri template to one grpc method; bodies and
// responses go through jsonpb, and grpc status codes come back as
// their HTTP equivalents.
package restapi

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/gogo/protobuf/jsonpb"
	"github.com/gogo/protobuf/proto"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	monkit "gopkg.in/spacemonkeygo/monkit.v2"

	"trac.io/trac/gateway/route"
)

var (
	mon = monkit.Package()

	// Error is the rest mapping error class.
	Error = errs.Class("restapi")
)

// Method binds one HTTP route to one grpc call.
type Method struct {
	HTTPMethod string
	Template   *Template
	NewRequest func() proto.Message
	Invoke     func(ctx context.Context, conn *grpc.ClientConn, req proto.Message) (proto.Message, error)
}

// Handler serves a method table against the backend of the matched
// route. Backend connections are dialed lazily and shared.
type Handler struct {
	log     *zap.Logger
	methods []Method

	mu    sync.Mutex
	conns map[string]*grpc.ClientConn
}

// New creates a handler over a method table.
func New(log *zap.Logger, methods []Method) *Handler {
	return &Handler{
		log:     log,
		methods: methods,
		conns:   map[string]*grpc.ClientConn{},
	}
}

// Close drops all backend connections.
func (h *Handler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var group errs.Group
	for _, conn := range h.conns {
		group.Add(conn.Close())
	}
	h.conns = map[string]*grpc.ClientConn{}
	return group.Err()
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer mon.Task()(&ctx)(nil)

	method, vars, ok := h.match(r)
	if !ok {
		h.writeError(w, http.StatusNotFound, "no such operation")
		return
	}
	if method == nil {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	req := method.NewRequest()
	if r.Body != nil && r.Method != http.MethodGet {
		decoder := &jsonpb.Unmarshaler{AllowUnknownFields: false}
		if err := decoder.Unmarshal(r.Body, req); err != nil {
			// strict decode: reject before touching the backend
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if err := bindVars(req, vars); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	matched, ok := route.FromContext(ctx)
	if !ok {
		h.writeError(w, http.StatusNotFound, "no route")
		return
	}
	conn, err := h.conn(matched.Target.Authority())
	if err != nil {
		h.log.Warn("backend dial failed",
			zap.String("backend", matched.Target.Authority()), zap.Error(err))
		h.writeError(w, http.StatusServiceUnavailable, "backend unavailable")
		return
	}

	resp, err := method.Invoke(withAuthorization(ctx, r), conn, req)
	if err != nil {
		h.writeStatus(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	marshaler := &jsonpb.Marshaler{OrigName: true}
	if err := marshaler.Marshal(w, resp); err != nil {
		h.log.Warn("response encoding failed", zap.Error(err))
	}
}

// match finds the method for a request. A template hit with the wrong
// HTTP method returns (nil, nil, true) so the caller can answer 405.
func (h *Handler) match(r *http.Request) (*Method, map[string]string, bool) {
	templateHit := false
	for i := range h.methods {
		method := &h.methods[i]
		vars, ok := method.Template.Match(r.URL.Path)
		if !ok {
			continue
		}
		if method.HTTPMethod == r.Method {
			return method, vars, true
		}
		templateHit = true
	}
	return nil, nil, templateHit
}

func (h *Handler) conn(authority string) (*grpc.ClientConn, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn, ok := h.conns[authority]; ok {
		return conn, nil
	}
	conn, err := grpc.Dial(authority, grpc.WithInsecure())
	if err != nil {
		return nil, Error.Wrap(err)
	}
	h.conns[authority] = conn
	return conn, nil
}

// withAuthorization forwards the client's bearer credentials to the
// backend as grpc metadata.
func withAuthorization(ctx context.Context, r *http.Request) context.Context {
	authorization := r.Header.Get("Authorization")
	if authorization == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, "authorization", authorization)
}

func (h *Handler) writeStatus(w http.ResponseWriter, r *http.Request, err error) {
	st, ok := status.FromError(err)
	if !ok {
		st = status.New(codes.Internal, "internal error")
	}
	h.log.Debug("backend call failed",
		zap.String("path", r.URL.Path),
		zap.String("code", st.Code().String()),
		zap.String("message", st.Message()))
	h.writeError(w, httpStatus(st.Code()), st.Message())
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// jsonpb only handles proto messages, the error body is plain json
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`).Replace(message)
	_, _ = w.Write([]byte(`{"error": "` + escaped + `"}`))
}

// httpStatus maps grpc status codes onto the REST surface.
func httpStatus(code codes.Code) int {
	switch code {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists:
		return http.StatusConflict
	case codes.FailedPrecondition:
		return http.StatusPreconditionFailed
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.Unimplemented:
		return http.StatusNotImplemented
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
