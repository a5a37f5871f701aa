// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package telemetry

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	monkit "gopkg.in/spacemonkeygo/monkit.v2"
)

func TestNewClient_IntervalIsZero(t *testing.T) {
	s, err := Listen("127.0.0.1:0")
	assert.NoError(t, err)
	defer func() { _ = s.Close() }()

	client, err := NewClient(s.Addr(), ClientOpts{
		Application: "testapp",
		Instance:    "testinst",
		Interval:    0,
	})

	assert.NotNil(t, client)
	assert.NoError(t, err)
	assert.Equal(t, client.interval, DefaultInterval)
}

func TestNewClient_ApplicationAndArgsAreEmpty(t *testing.T) {
	s, err := Listen("127.0.0.1:0")
	assert.NoError(t, err)
	oldArgs := os.Args

	defer func() {
		_ = s.Close()
		os.Args = oldArgs
	}()

	os.Args = nil

	client, err := NewClient(s.Addr(), ClientOpts{
		Application: "",
		Instance:    "testinst",
		Interval:    0,
	})

	assert.NotNil(t, client)
	assert.NoError(t, err)
	assert.Equal(t, DefaultApplication, client.opts.Application)
}

func TestNewClient_ApplicationIsEmpty(t *testing.T) {
	s, err := Listen("127.0.0.1:0")
	assert.NoError(t, err)
	defer func() { _ = s.Close() }()

	client, err := NewClient(s.Addr(), ClientOpts{
		Application: "",
		Instance:    "testinst",
		Interval:    0,
	})

	assert.NotNil(t, client)
	assert.NoError(t, err)
	assert.Equal(t, client.opts.Application, os.Args[0])
}

func TestNewClient_Defaults(t *testing.T) {
	s, err := Listen("127.0.0.1:0")
	assert.NoError(t, err)
	defer func() { _ = s.Close() }()

	client, err := NewClient(s.Addr(), ClientOpts{
		Application: "qwe",
		Instance:    "",
		Interval:    0,
		PacketSize:  0,
	})

	assert.NotNil(t, client)
	assert.NoError(t, err)
	assert.Equal(t, client.opts.InstanceId, []byte(DefaultInstanceID()))
	assert.Equal(t, client.opts.Application, "qwe")
	assert.Equal(t, client.interval, DefaultInterval)
	assert.Equal(t, client.opts.Registry, monkit.Default)
	assert.Equal(t, client.opts.PacketSize, DefaultPacketSize)
}

func TestReport_DeliversMetrics(t *testing.T) {
	s, err := Listen("127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	registry := monkit.NewRegistry()
	scope := registry.ScopeNamed("testscope")
	scope.Meter("events").Mark(3)

	client, err := NewClient(s.Addr(), ClientOpts{
		Application: "testapp",
		Instance:    "testinst",
		Registry:    registry,
	})
	require.NoError(t, err)

	received := make(chan string, 100)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = s.Serve(ctx, HandlerFunc(func(application, instance string, key []byte, val float64) {
			received <- application
		}))
	}()

	require.NoError(t, client.Report(context.Background()))
	assert.Equal(t, "testapp", <-received)
}
