// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package trac

import (
	"encoding/binary"

	"github.com/skyrings/skyring-common/tools/uuid"
)

// ObjectID identifies one object within a tenant. The canonical display
// form is the lowercase hyphenated UUID form; the storage form is the two
// big-endian signed halves.
type ObjectID [16]byte

// NewObjectID returns a random object id.
func NewObjectID() (ObjectID, error) {
	id, err := uuid.New()
	if err != nil {
		return ObjectID{}, Error.Wrap(err)
	}
	return ObjectID(*id), nil
}

// ObjectIDFromString parses the canonical display form.
func ObjectIDFromString(s string) (ObjectID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ObjectID{}, ErrInvalidInput.New("object id %q: %v", s, err)
	}
	if id == nil {
		return ObjectID{}, ErrInvalidInput.New("object id %q", s)
	}
	return ObjectID(*id), nil
}

// ObjectIDFromBits reassembles an id from its stored halves.
func ObjectIDFromBits(hi, lo int64) ObjectID {
	var id ObjectID
	binary.BigEndian.PutUint64(id[:8], uint64(hi))
	binary.BigEndian.PutUint64(id[8:], uint64(lo))
	return id
}

// Bits splits the id into big-endian signed halves for storage.
func (id ObjectID) Bits() (hi, lo int64) {
	hi = int64(binary.BigEndian.Uint64(id[:8]))
	lo = int64(binary.BigEndian.Uint64(id[8:]))
	return hi, lo
}

// IsZero reports whether the id is unset.
func (id ObjectID) IsZero() bool {
	return id == ObjectID{}
}

func (id ObjectID) String() string {
	u := uuid.UUID(id)
	return u.String()
}
