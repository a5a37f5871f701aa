// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package server

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"

	"trac.io/trac/pkg/trac"
)

// unaryLogger logs every call and converts platform errors into their
// canonical grpc status. Internal failures are logged in full here and
// leave the process as an opaque status.
func unaryLogger(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler) (resp interface{}, err error) {
		start := time.Now()
		resp, err = handler(ctx, req)
		logCall(log, info.FullMethod, time.Since(start), err)
		return resp, trac.StatusError(err)
	}
}

func streamLogger(log *zap.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, stream grpc.ServerStream, info *grpc.StreamServerInfo,
		handler grpc.StreamHandler) (err error) {
		start := time.Now()
		err = handler(srv, stream)
		logCall(log, info.FullMethod, time.Since(start), err)
		return trac.StatusError(err)
	}
}

func logCall(log *zap.Logger, method string, elapsed time.Duration, err error) {
	if err == nil {
		log.Debug("call", zap.String("method", method), zap.Duration("elapsed", elapsed))
		return
	}
	if trac.Code(err) == codes.Internal {
		log.Error("call failed", zap.String("method", method),
			zap.Duration("elapsed", elapsed), zap.Error(err))
		return
	}
	log.Debug("call rejected", zap.String("method", method),
		zap.Duration("elapsed", elapsed), zap.Error(err))
}
