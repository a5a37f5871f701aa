// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// Package auth carries request credentials between the gateway, the
// platform services and the trusted API tier.
package auth

import (
	"context"
	"crypto/subtle"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/metadata"
)

// The metadata keys used on the wire.
const (
	apiKeyHeader   = "apikey"
	userIDHeader   = "trac-user-id"
	userNameHeader = "trac-user-name"
)

// APIKey is the context key for an API credential.
type APIKey struct{}

// WithAPIKey attaches an API key to the context.
func WithAPIKey(ctx context.Context, key []byte) context.Context {
	return context.WithValue(ctx, APIKey{}, key)
}

// GetAPIKey returns the API key attached to the context, if any.
func GetAPIKey(ctx context.Context) ([]byte, bool) {
	key, ok := ctx.Value(APIKey{}).([]byte)
	return key, ok
}

// ValidateAPIKey compares the presented key against the expected one in
// constant time. An empty expected key never validates.
func ValidateAPIKey(expected string, presented []byte) bool {
	if len(expected) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), presented) == 1
}

// NewAPIKeyInterceptor creates an interceptor that lifts the API key and
// caller identity from request metadata into the context.
func NewAPIKeyInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler) (resp interface{}, err error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return handler(ctx, req)
		}
		if keys, ok := md[apiKeyHeader]; ok && len(keys) > 0 {
			ctx = WithAPIKey(ctx, []byte(keys[0]))
		}
		user := User{ID: firstValue(md, userIDHeader), Name: firstValue(md, userNameHeader)}
		if !user.IsZero() {
			ctx = WithUser(ctx, user)
		}
		return handler(ctx, req)
	}
}

func firstValue(md metadata.MD, key string) string {
	if values := md[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// APIKeyCredentials implements per-RPC credentials carrying the API key.
type APIKeyCredentials struct {
	value string
}

// NewAPIKeyCredentials returns credentials for the given key.
func NewAPIKeyCredentials(value string) *APIKeyCredentials {
	return &APIKeyCredentials{value}
}

var _ credentials.PerRPCCredentials = (*APIKeyCredentials)(nil)

// GetRequestMetadata gets the current request metadata, refreshing tokens if required.
func (creds *APIKeyCredentials) GetRequestMetadata(ctx context.Context, uri ...string) (map[string]string, error) {
	return map[string]string{apiKeyHeader: creds.value}, nil
}

// RequireTransportSecurity indicates whether the credentials require transport security.
func (creds *APIKeyCredentials) RequireTransportSecurity() bool {
	return false
}
