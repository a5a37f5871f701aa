// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package version_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"trac.io/trac/internal/version"
)

func TestService_CheckVersion(t *testing.T) {
	ctx := context.Background()

	minimum, err := version.NewSemVer("v0.3.0")
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := json.NewEncoder(w).Encode(version.AllowedVersions{
			Metadata: minimum,
		})
		assert.NoError(t, err)
	}))
	defer server.Close()

	config := version.Config{
		ServerAddress:  server.URL,
		RequestTimeout: time.Second,
		CheckInterval:  time.Minute,
	}

	outdated := releaseInfo(t, "v0.2.5")
	service := version.NewService(zaptest.NewLogger(t), config, outdated, "Metadata")
	err = service.CheckVersion(ctx)
	require.Error(t, err)
	require.False(t, service.IsAllowed())

	current := releaseInfo(t, "v0.3.0")
	service = version.NewService(zaptest.NewLogger(t), config, current, "Metadata")
	require.NoError(t, service.CheckVersion(ctx))
	require.True(t, service.IsAllowed())

	newer := releaseInfo(t, "v1.0.0")
	service = version.NewService(zaptest.NewLogger(t), config, newer, "Metadata")
	require.NoError(t, service.CheckVersion(ctx))
}

func TestService_CheckVersion_DevBuild(t *testing.T) {
	ctx := context.Background()

	// dev builds skip the control server entirely
	config := version.Config{
		ServerAddress:  "http://127.0.0.1:0",
		RequestTimeout: time.Second,
		CheckInterval:  time.Minute,
	}

	service := version.NewService(zaptest.NewLogger(t), config, version.Info{}, "Metadata")
	require.NoError(t, service.CheckVersion(ctx))
	require.True(t, service.IsAllowed())
}

func TestService_UnreachableControlServer(t *testing.T) {
	ctx := context.Background()

	// failing to reach the control server must not stop the service
	config := version.Config{
		ServerAddress:  "http://127.0.0.1:1",
		RequestTimeout: 100 * time.Millisecond,
		CheckInterval:  time.Minute,
	}

	service := version.NewService(zaptest.NewLogger(t), config, releaseInfo(t, "v0.1.0"), "Metadata")
	require.NoError(t, service.CheckVersion(ctx))
	require.True(t, service.IsAllowed())
}

func releaseInfo(t *testing.T, v string) version.Info {
	t.Helper()

	sem, err := version.NewSemVer(v)
	require.NoError(t, err)

	return version.Info{
		Timestamp:  time.Now(),
		CommitHash: "0000000",
		Version:    sem,
		Release:    true,
	}
}
