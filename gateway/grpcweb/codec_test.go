// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package grpcweb

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeFrame(&buf, flagData, []byte("payload")))
	require.NoError(t, writeFrame(&buf, flagTrailer, []byte("grpc-status: 0\r\n")))
	require.NoError(t, writeFrame(&buf, flagData, nil))

	flag, payload, err := readFrame(&buf)
	require.NoError(t, err)
	require.Equal(t, flagData, flag)
	require.Equal(t, []byte("payload"), payload)

	flag, payload, err = readFrame(&buf)
	require.NoError(t, err)
	require.Equal(t, flagTrailer, flag)
	require.Equal(t, []byte("grpc-status: 0\r\n"), payload)

	flag, payload, err = readFrame(&buf)
	require.NoError(t, err)
	require.Equal(t, flagData, flag)
	require.Empty(t, payload)

	_, _, err = readFrame(&buf)
	require.Equal(t, io.EOF, err)
}

func TestFrameWireShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeFrame(&buf, flagData, []byte{0xAB, 0xCD}))
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x00, 0x02, 0xAB, 0xCD}, buf.Bytes())
}

func TestFrameTruncated(t *testing.T) {
	_, _, err := readFrame(bytes.NewReader([]byte{0x00, 0x00, 0x00}))
	require.Error(t, err)

	// header promises more payload than the stream has
	_, _, err = readFrame(bytes.NewReader([]byte{0x00, 0x00, 0x00, 0x00, 0x05, 0x01}))
	require.Error(t, err)
}

func TestFrameTooLarge(t *testing.T) {
	_, _, err := readFrame(bytes.NewReader([]byte{0x00, 0xFF, 0xFF, 0xFF, 0xFF}))
	require.True(t, errFrameTooLarge.Has(err))
}
