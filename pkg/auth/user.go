// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package auth

import (
	"context"

	"google.golang.org/grpc/metadata"
)

// User identifies the caller a request is performed for. The platform
// stamps it into the controlled audit attributes on every write.
type User struct {
	ID   string
	Name string
}

// IsZero reports whether no identity is set.
func (user User) IsZero() bool {
	return user.ID == "" && user.Name == ""
}

type userKey struct{}

// WithUser attaches a caller identity to the context.
func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser returns the caller identity, falling back to the anonymous user
// when the request carried none.
func GetUser(ctx context.Context) User {
	if user, ok := ctx.Value(userKey{}).(User); ok {
		return user
	}
	return User{ID: "anonymous", Name: "anonymous"}
}

// OutgoingUser attaches the identity to outgoing request metadata, so a
// service calling the trusted API on behalf of a client keeps the
// original caller in the audit trail.
func OutgoingUser(ctx context.Context, user User) context.Context {
	if user.IsZero() {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx,
		userIDHeader, user.ID, userNameHeader, user.Name)
}
