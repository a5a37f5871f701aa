// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package redis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"trac.io/trac/storage/redis/redisserver"
	"trac.io/trac/storage/testsuite"
)

func TestSuite(t *testing.T) {
	addr, cleanup, err := redisserver.Start()
	require.NoError(t, err)
	defer cleanup()

	client, err := New(addr, "", 1)
	require.NoError(t, err)
	defer func() { require.NoError(t, client.Close()) }()

	testsuite.RunTests(t, client)
}

func TestSuiteMini(t *testing.T) {
	// the hermetic fallback has to carry the suite too, the parallel
	// counter test included
	addr, cleanup, err := redisserver.Mini()
	require.NoError(t, err)
	defer cleanup()

	client, err := New(addr, "", 1)
	require.NoError(t, err)
	defer func() { require.NoError(t, client.Close()) }()

	testsuite.RunTests(t, client)
}

func TestNewFromURL(t *testing.T) {
	addr, cleanup, err := redisserver.Start()
	require.NoError(t, err)
	defer cleanup()

	client, err := NewFromURL("redis://" + addr + "?db=1")
	require.NoError(t, err)
	require.NoError(t, client.Close())

	_, err = NewFromURL("http://" + addr)
	require.Error(t, err)
}
