// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package trac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trac.io/trac/pkg/trac"
)

func TestNewObjectID(t *testing.T) {
	a, err := trac.NewObjectID()
	require.NoError(t, err)
	assert.False(t, a.IsZero())

	b, err := trac.NewObjectID()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestObjectIDEncoding(t *testing.T) {
	for i := 0; i < 10; i++ {
		id, err := trac.NewObjectID()
		require.NoError(t, err)

		fromString, err := trac.ObjectIDFromString(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, fromString)

		hi, lo := id.Bits()
		assert.Equal(t, id, trac.ObjectIDFromBits(hi, lo))
	}

	_, err := trac.ObjectIDFromString("not-an-id")
	assert.Error(t, err)
	assert.True(t, trac.ErrInvalidInput.Has(err))
}

func TestObjectIDZero(t *testing.T) {
	var id trac.ObjectID
	assert.True(t, id.IsZero())

	hi, lo := id.Bits()
	assert.Equal(t, int64(0), hi)
	assert.Equal(t, int64(0), lo)
}
