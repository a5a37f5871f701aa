// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

func TestValidateAPIKey(t *testing.T) {
	assert.True(t, ValidateAPIKey("secret", []byte("secret")))
	assert.False(t, ValidateAPIKey("secret", []byte("wrong")))
	assert.False(t, ValidateAPIKey("secret", nil))
	assert.False(t, ValidateAPIKey("", []byte("")))
}

func TestAPIKeyInterceptor(t *testing.T) {
	interceptor := NewAPIKeyInterceptor()

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(
		"apikey", "secret",
		"trac-user-id", "jrandom",
		"trac-user-name", "J. Random Modeller",
	))

	_, err := interceptor(ctx, nil, &grpc.UnaryServerInfo{},
		func(ctx context.Context, req interface{}) (interface{}, error) {
			key, ok := GetAPIKey(ctx)
			require.True(t, ok)
			assert.Equal(t, []byte("secret"), key)

			user := GetUser(ctx)
			assert.Equal(t, "jrandom", user.ID)
			assert.Equal(t, "J. Random Modeller", user.Name)
			return nil, nil
		})
	require.NoError(t, err)
}

func TestGetUser_Anonymous(t *testing.T) {
	user := GetUser(context.Background())
	assert.Equal(t, "anonymous", user.ID)
}
