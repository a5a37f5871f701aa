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

func TestPublicWritable(t *testing.T) {
	public := []pb.ObjectType{
		pb.ObjectType_DATA, pb.ObjectType_MODEL, pb.ObjectType_FLOW,
		pb.ObjectType_CUSTOM, pb.ObjectType_SCHEMA, pb.ObjectType_STORAGE,
	}
	for _, ot := range public {
		assert.True(t, trac.PublicWritable(ot), ot.String())
	}

	serverOnly := []pb.ObjectType{
		pb.ObjectType_JOB, pb.ObjectType_FILE, pb.ObjectType_RESULT,
		pb.ObjectType_CONFIG, pb.ObjectType_RESOURCE,
		pb.ObjectType_OBJECT_TYPE_NOT_SET,
	}
	for _, ot := range serverOnly {
		assert.False(t, trac.PublicWritable(ot), ot.String())
	}
}

func TestValidateDefinition(t *testing.T) {
	def := &pb.ObjectDefinition{
		ObjectType: pb.ObjectType_SCHEMA,
		Schema: &pb.SchemaDefinition{Fields: []*pb.FieldSchema{
			{FieldName: "id", FieldType: pb.BasicType_INTEGER, BusinessKey: true},
		}},
	}
	require.NoError(t, trac.ValidateDefinition(def))

	err := trac.ValidateDefinition(nil)
	assert.True(t, trac.ErrInvalidInput.Has(err))

	err = trac.ValidateDefinition(&pb.ObjectDefinition{ObjectType: pb.ObjectType_SCHEMA})
	assert.True(t, trac.ErrInvalidInput.Has(err))

	mismatch := &pb.ObjectDefinition{
		ObjectType: pb.ObjectType_MODEL,
		Schema:     &pb.SchemaDefinition{},
	}
	err = trac.ValidateDefinition(mismatch)
	assert.True(t, trac.ErrInvalidInput.Has(err))

	twoBodies := &pb.ObjectDefinition{
		ObjectType: pb.ObjectType_SCHEMA,
		Schema:     &pb.SchemaDefinition{},
		Model:      &pb.ModelDefinition{},
	}
	err = trac.ValidateDefinition(twoBodies)
	assert.True(t, trac.ErrInvalidInput.Has(err))
}

func TestValidateSelector(t *testing.T) {
	id, err := trac.NewObjectID()
	require.NoError(t, err)

	sel := &pb.TagSelector{
		ObjectType:   pb.ObjectType_DATA,
		ObjectId:     id.String(),
		LatestObject: true,
		LatestTag:    true,
	}
	require.NoError(t, trac.ValidateSelector(sel))

	exact := &pb.TagSelector{
		ObjectType:    pb.ObjectType_DATA,
		ObjectId:      id.String(),
		ObjectVersion: 3,
		TagVersion:    1,
	}
	require.NoError(t, trac.ValidateSelector(exact))

	err = trac.ValidateSelector(nil)
	assert.True(t, trac.ErrInvalidInput.Has(err))

	noCriteria := &pb.TagSelector{ObjectType: pb.ObjectType_DATA, ObjectId: id.String(), LatestTag: true}
	err = trac.ValidateSelector(noCriteria)
	assert.True(t, trac.ErrInvalidInput.Has(err))

	both := &pb.TagSelector{
		ObjectType:    pb.ObjectType_DATA,
		ObjectId:      id.String(),
		ObjectVersion: 2,
		LatestObject:  true,
		LatestTag:     true,
	}
	err = trac.ValidateSelector(both)
	assert.True(t, trac.ErrInvalidInput.Has(err))

	badID := &pb.TagSelector{ObjectType: pb.ObjectType_DATA, ObjectId: "nope", LatestObject: true, LatestTag: true}
	err = trac.ValidateSelector(badID)
	assert.True(t, trac.ErrInvalidInput.Has(err))
}

func TestSelectorOf(t *testing.T) {
	header := &pb.TagHeader{
		ObjectType:    pb.ObjectType_MODEL,
		ObjectId:      "0674a321-978d-4258-9d1c-ee0cb5ba0cbe",
		ObjectVersion: 2,
		TagVersion:    5,
	}

	sel := trac.SelectorOf(header)
	require.NoError(t, trac.ValidateSelector(sel))
	assert.Equal(t, int64(2), sel.ObjectVersion)
	assert.Equal(t, int64(5), sel.TagVersion)

	latest := trac.LatestSelector(header)
	require.NoError(t, trac.ValidateSelector(latest))
	assert.True(t, latest.LatestObject)
	assert.True(t, latest.LatestTag)
}
