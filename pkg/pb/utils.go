// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package pb

import (
	"bytes"

	proto "github.com/gogo/protobuf/proto"
)

// Equal compares two messages via serialization.
func Equal(msg1, msg2 proto.Message) bool {
	if msg1 == nil {
		return msg2 == nil
	}
	if msg2 == nil {
		return false
	}
	msg1Bytes, err := proto.Marshal(msg1)
	if err != nil {
		return false
	}
	msg2Bytes, err := proto.Marshal(msg2)
	if err != nil {
		return false
	}
	return bytes.Equal(msg1Bytes, msg2Bytes)
}
