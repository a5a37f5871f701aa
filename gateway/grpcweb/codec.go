// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package grpcweb

import (
	"encoding/binary"
	"io"

	"github.com/zeebo/errs"
)

// frame flags from the grpc-web protocol.
const (
	flagData    byte = 0x00
	flagTrailer byte = 0x80
)

var errFrameTooLarge = errs.Class("frame too large")

// maxFrameSize bounds a single length-prefixed message.
const maxFrameSize = 64 << 20

// readFrame reads one length-prefixed message: a flag byte, a big
// endian uint32 length, then the payload. io.EOF means a clean end of
// stream before any byte of a frame.
func readFrame(r io.Reader) (flag byte, payload []byte, err error) {
	var header [5]byte
	if _, err := io.ReadFull(r, header[:1]); err != nil {
		if err == io.EOF {
			return 0, nil, io.EOF
		}
		return 0, nil, Error.Wrap(err)
	}
	if _, err := io.ReadFull(r, header[1:]); err != nil {
		return 0, nil, Error.Wrap(err)
	}

	length := binary.BigEndian.Uint32(header[1:])
	if length > maxFrameSize {
		return 0, nil, errFrameTooLarge.New("%d bytes", length)
	}

	payload = make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return 0, nil, Error.Wrap(err)
	}
	return header[0], payload, nil
}

// writeFrame writes one length-prefixed message.
func writeFrame(w io.Writer, flag byte, payload []byte) error {
	var header [5]byte
	header[0] = flag
	binary.BigEndian.PutUint32(header[1:], uint32(len(payload)))
	if _, err := w.Write(header[:]); err != nil {
		return Error.Wrap(err)
	}
	if _, err := w.Write(payload); err != nil {
		return Error.Wrap(err)
	}
	return nil
}
