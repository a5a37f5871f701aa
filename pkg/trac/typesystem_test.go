// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package trac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trac.io/trac/pkg/pb"
	"trac.io/trac/pkg/trac"
)

func TestIsPrimitive(t *testing.T) {
	primitives := []pb.BasicType{
		pb.BasicType_BOOLEAN, pb.BasicType_INTEGER, pb.BasicType_FLOAT,
		pb.BasicType_STRING, pb.BasicType_DECIMAL, pb.BasicType_DATE,
		pb.BasicType_DATETIME,
	}
	for _, bt := range primitives {
		assert.True(t, trac.IsPrimitive(bt), bt.String())
	}
	assert.False(t, trac.IsPrimitive(pb.BasicType_ARRAY))
	assert.False(t, trac.IsPrimitive(pb.BasicType_MAP))
	assert.False(t, trac.IsPrimitive(pb.BasicType_BASIC_TYPE_NOT_SET))
}

func TestValidate(t *testing.T) {
	require.NoError(t, trac.Validate(trac.Bool(true)))
	require.NoError(t, trac.Validate(trac.Int(42)))
	require.NoError(t, trac.Validate(trac.Float(1.5)))
	require.NoError(t, trac.Validate(trac.String("hello")))
	require.NoError(t, trac.Validate(trac.Decimal("10.500")))
	require.NoError(t, trac.Validate(trac.Array(trac.Int(1), trac.Int(2))))

	err := trac.Validate(nil)
	assert.True(t, trac.ErrInvalidInput.Has(err))

	err = trac.Validate(&pb.Value{})
	assert.True(t, trac.ErrInvalidType.Has(err))

	two := trac.Bool(true)
	two.IntegerValue = new(int64)
	err = trac.Validate(two)
	assert.True(t, trac.ErrInvalidType.Has(err))

	err = trac.Validate(trac.Decimal("not a number"))
	assert.Error(t, err)

	mixed := trac.Array(trac.Int(1), trac.String("two"))
	err = trac.Validate(mixed)
	assert.True(t, trac.ErrInvalidType.Has(err))
}

func TestValidateDeclaredType(t *testing.T) {
	v := trac.Int(7)
	v.Type = &pb.TypeDescriptor{BasicType: pb.BasicType_INTEGER}
	require.NoError(t, trac.Validate(v))

	v.Type = &pb.TypeDescriptor{BasicType: pb.BasicType_STRING}
	err := trac.Validate(v)
	assert.True(t, trac.ErrInvalidType.Has(err))

	arr := trac.Array(trac.Int(1))
	arr.Type = &pb.TypeDescriptor{
		BasicType: pb.BasicType_ARRAY,
		ArrayType: &pb.TypeDescriptor{BasicType: pb.BasicType_STRING},
	}
	err = trac.Validate(arr)
	assert.True(t, trac.ErrInvalidType.Has(err))

	err = trac.ValidateDescriptor(&pb.TypeDescriptor{BasicType: pb.BasicType_ARRAY})
	assert.True(t, trac.ErrInvalidType.Has(err))
}

func TestDescriptorOf(t *testing.T) {
	d := trac.DescriptorOf(trac.Int(1))
	assert.Equal(t, pb.BasicType_INTEGER, d.BasicType)

	d = trac.DescriptorOf(trac.Array(trac.String("a"), trac.String("b")))
	require.Equal(t, pb.BasicType_ARRAY, d.BasicType)
	require.NotNil(t, d.ArrayType)
	assert.Equal(t, pb.BasicType_STRING, d.ArrayType.BasicType)

	// empty arrays carry no item type unless one is declared
	d = trac.DescriptorOf(trac.Array())
	assert.Equal(t, pb.BasicType_ARRAY, d.BasicType)
	assert.Nil(t, d.ArrayType)
}

func TestValidateAttrValue(t *testing.T) {
	require.NoError(t, trac.ValidateAttrValue(trac.String("plain")))
	require.NoError(t, trac.ValidateAttrValue(trac.Array(trac.Int(1), trac.Int(2))))

	mapValue := &pb.Value{MapValue: &pb.MapValue{
		Entries: map[string]*pb.Value{"k": trac.Int(1)},
	}}
	err := trac.ValidateAttrValue(mapValue)
	assert.True(t, trac.ErrInvalidType.Has(err))

	nested := trac.Array(trac.Array(trac.Int(1)))
	err = trac.ValidateAttrValue(nested)
	assert.True(t, trac.ErrInvalidType.Has(err))

	empty := trac.Array()
	err = trac.ValidateAttrValue(empty)
	assert.True(t, trac.ErrInvalidType.Has(err))

	empty.Type = &pb.TypeDescriptor{
		BasicType: pb.BasicType_ARRAY,
		ArrayType: &pb.TypeDescriptor{BasicType: pb.BasicType_STRING},
	}
	require.NoError(t, trac.ValidateAttrValue(empty))
}
