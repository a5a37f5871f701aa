// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package trac_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trac.io/trac/pkg/trac"
)

func TestTruncateDatetime(t *testing.T) {
	// 999 nanoseconds truncate away, they never round up
	in := time.Date(2019, 3, 1, 12, 30, 45, 123456999, time.UTC)
	out := trac.TruncateDatetime(in)
	assert.Equal(t, time.Date(2019, 3, 1, 12, 30, 45, 123456000, time.UTC), out)

	assert.Equal(t, "2019-03-01T12:30:45.123456Z", trac.FormatDatetime(in))
}

func TestParseDatetime(t *testing.T) {
	parsed, err := trac.ParseDatetime("2019-03-01T12:30:45.123456Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2019, 3, 1, 12, 30, 45, 123456000, time.UTC).Unix(), parsed.Unix())

	// offsets are accepted and compare by instant
	offset, err := trac.ParseDatetime("2019-03-01T14:30:45.123456+02:00")
	require.NoError(t, err)
	assert.True(t, parsed.Equal(offset))

	normalized, err := trac.NormalizeDatetime("2019-03-01T14:30:45.123456789+02:00")
	require.NoError(t, err)
	assert.Equal(t, "2019-03-01T12:30:45.123456Z", normalized)

	_, err = trac.ParseDatetime("2019-03-01 12:30:45")
	assert.True(t, trac.ErrInvalidInput.Has(err))
}

func TestDecimalEqual(t *testing.T) {
	assert.True(t, trac.DecimalEqual("1.5", "1.50"))
	assert.True(t, trac.DecimalEqual("0.1", ".1"))
	assert.True(t, trac.DecimalEqual("-2", "-2.000"))
	assert.False(t, trac.DecimalEqual("1.5", "1.51"))
	assert.False(t, trac.DecimalEqual("abc", "1"))

	_, err := trac.ParseDecimal("")
	assert.True(t, trac.ErrInvalidInput.Has(err))
	_, err = trac.ParseDecimal("1/2")
	assert.True(t, trac.ErrInvalidInput.Has(err))
}

func TestValueEqual(t *testing.T) {
	assert.True(t, trac.ValueEqual(trac.Int(5), trac.Int(5)))
	assert.False(t, trac.ValueEqual(trac.Int(5), trac.Int(6)))
	assert.False(t, trac.ValueEqual(trac.Int(5), trac.Float(5)))

	assert.True(t, trac.ValueEqual(trac.Decimal("2.50"), trac.Decimal("2.5")))

	now := time.Now()
	utc := trac.Datetime(now.UTC())
	local := trac.Datetime(now.In(time.FixedZone("plus2", 2*60*60)))
	assert.True(t, trac.ValueEqual(utc, local))

	a := trac.Array(trac.String("x"), trac.String("y"))
	b := trac.Array(trac.String("x"), trac.String("y"))
	c := trac.Array(trac.String("x"))
	assert.True(t, trac.ValueEqual(a, b))
	assert.False(t, trac.ValueEqual(a, c))
	assert.False(t, trac.ValueEqual(a, nil))
	assert.True(t, trac.ValueEqual(nil, nil))
}

func TestIdentifiers(t *testing.T) {
	assert.True(t, trac.IsValidIdentifier("model_version"))
	assert.True(t, trac.IsValidIdentifier("_private"))
	assert.False(t, trac.IsValidIdentifier("9lives"))
	assert.False(t, trac.IsValidIdentifier("with-dash"))
	assert.False(t, trac.IsValidIdentifier(""))

	assert.True(t, trac.IsReservedAttrName("trac_create_time"))
	assert.True(t, trac.IsReservedAttrName("_trac_anything"))
	assert.False(t, trac.IsReservedAttrName("tracker"))
	assert.False(t, trac.IsReservedAttrName("my_attr"))
}
