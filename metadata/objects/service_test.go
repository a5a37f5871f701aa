// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package objects_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"trac.io/trac/internal/testcontext"
	"trac.io/trac/metadata/metadatadb"
	"trac.io/trac/metadata/objects"
	"trac.io/trac/pkg/auth"
	"trac.io/trac/pkg/pb"
	"trac.io/trac/pkg/trac"
)

const testTenant = "acme_corp"

func newTestService(t *testing.T, ctx *testcontext.Context) (*objects.Service, *metadatadb.DB) {
	db, err := metadatadb.New(zaptest.NewLogger(t), "sqlite3://"+ctx.File("metadata.db"))
	require.NoError(t, err)
	require.NoError(t, db.MigrateToLatest(ctx))
	require.NoError(t, db.Tenants().Create(ctx, testTenant, "test tenant"))
	return objects.NewService(zaptest.NewLogger(t), db, objects.Config{
		Environment: "TEST",
	}), db
}

func customWrite(updates ...*pb.TagUpdate) *pb.MetadataWriteRequest {
	return &pb.MetadataWriteRequest{
		Tenant:     testTenant,
		ObjectType: pb.ObjectType_CUSTOM,
		Definition: &pb.ObjectDefinition{
			ObjectType: pb.ObjectType_CUSTOM,
			Custom:     &pb.CustomDefinition{CustomSchemaType: "test_schema", CustomSchemaVersion: 1},
		},
		TagUpdates: updates,
	}
}

func TestCreateObjectStampsControlledAttrs(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	service, db := newTestService(t, ctx)
	defer ctx.Check(db.Close)

	now := time.Date(2019, 7, 1, 10, 30, 0, 0, time.UTC)
	service.TestingSetNow(func() time.Time { return now })

	userCtx := auth.WithUser(ctx, auth.User{ID: "jdoe", Name: "Jo Doe"})
	header, err := service.CreateObject(userCtx, customWrite(
		&pb.TagUpdate{AttrName: "purpose", Value: trac.String("testing")},
	))
	require.NoError(t, err)
	require.Equal(t, int64(1), header.ObjectVersion)

	tag, err := service.ReadObject(ctx, &pb.MetadataReadRequest{
		Tenant:   testTenant,
		Selector: trac.SelectorOf(header),
	})
	require.NoError(t, err)

	require.True(t, trac.ValueEqual(trac.String("testing"), tag.Attrs["purpose"]))
	require.True(t, trac.ValueEqual(trac.Datetime(now), tag.Attrs[trac.AttrCreateTime]))
	require.True(t, trac.ValueEqual(trac.String("jdoe"), tag.Attrs[trac.AttrCreateUserID]))
	require.True(t, trac.ValueEqual(trac.String("Jo Doe"), tag.Attrs[trac.AttrCreateUserName]))
	require.True(t, trac.ValueEqual(trac.Datetime(now), tag.Attrs[trac.AttrUpdateTime]))
}

func TestCreateObjectAnonymousUser(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	service, db := newTestService(t, ctx)
	defer ctx.Check(db.Close)

	header, err := service.CreateObject(ctx, customWrite())
	require.NoError(t, err)

	tag, err := service.ReadObject(ctx, &pb.MetadataReadRequest{
		Tenant:   testTenant,
		Selector: trac.SelectorOf(header),
	})
	require.NoError(t, err)
	require.True(t, trac.ValueEqual(trac.String("anonymous"), tag.Attrs[trac.AttrCreateUserID]))
}

func TestReservedAttrNamesRejected(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	service, db := newTestService(t, ctx)
	defer ctx.Check(db.Close)

	_, err := service.CreateObject(ctx, customWrite(
		&pb.TagUpdate{AttrName: "trac_create_time", Value: trac.String("spoofed")},
	))
	require.True(t, trac.ErrInvalidInput.Has(err))

	_, err = service.CreateObject(ctx, customWrite(
		&pb.TagUpdate{AttrName: "trac_anything", Value: trac.String("nope")},
	))
	require.True(t, trac.ErrInvalidInput.Has(err))

	_, err = service.CreateObject(ctx, customWrite(
		&pb.TagUpdate{AttrName: "not an identifier", Value: trac.String("x")},
	))
	require.True(t, trac.ErrInvalidInput.Has(err))
}

func TestUpdateObject(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	service, db := newTestService(t, ctx)
	defer ctx.Check(db.Close)

	created, err := service.CreateObject(ctx, customWrite(
		&pb.TagUpdate{AttrName: "purpose", Value: trac.String("original")},
	))
	require.NoError(t, err)

	update := customWrite()
	update.PriorVersion = trac.SelectorOf(created)
	update.Definition.Custom.CustomSchemaVersion = 2

	updated, err := service.UpdateObject(ctx, update)
	require.NoError(t, err)
	require.Equal(t, created.ObjectId, updated.ObjectId)
	require.Equal(t, int64(2), updated.ObjectVersion)
	require.Equal(t, int64(1), updated.TagVersion)

	// client attrs and the create audit trail carry forward
	tag, err := service.ReadObject(ctx, &pb.MetadataReadRequest{
		Tenant:   testTenant,
		Selector: trac.SelectorOf(updated),
	})
	require.NoError(t, err)
	require.True(t, trac.ValueEqual(trac.String("original"), tag.Attrs["purpose"]))
	require.NotNil(t, tag.Attrs[trac.AttrCreateTime])
	require.Equal(t, int32(2), tag.Definition.Custom.CustomSchemaVersion)

	// updating against the superseded version conflicts
	stale := customWrite()
	stale.PriorVersion = trac.SelectorOf(created)
	_, err = service.UpdateObject(ctx, stale)
	require.True(t, trac.ErrVersionConflict.Has(err))

	// changing the object type is refused
	wrongType := &pb.MetadataWriteRequest{
		Tenant:       testTenant,
		ObjectType:   pb.ObjectType_DATA,
		PriorVersion: trac.SelectorOf(updated),
		Definition: &pb.ObjectDefinition{
			ObjectType: pb.ObjectType_DATA,
			Data:       &pb.DataDefinition{},
		},
	}
	_, err = service.UpdateObject(ctx, wrongType)
	require.True(t, trac.ErrWrongObjectType.Has(err))
}

func TestUpdateModelVersions(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	service, db := newTestService(t, ctx)
	defer ctx.Check(db.Close)

	modelWrite := func(entryPoint string) *pb.MetadataWriteRequest {
		return &pb.MetadataWriteRequest{
			Tenant:     testTenant,
			ObjectType: pb.ObjectType_MODEL,
			Definition: &pb.ObjectDefinition{
				ObjectType: pb.ObjectType_MODEL,
				Model: &pb.ModelDefinition{
					Language:   "python",
					Repository: "models",
					Version:    "1.0.0",
					EntryPoint: entryPoint,
				},
			},
		}
	}

	created, err := service.CreateObject(ctx, modelWrite("acme.models.Original"))
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ObjectVersion)

	update := modelWrite("acme.models.Replacement")
	update.PriorVersion = trac.SelectorOf(created)
	updated, err := service.UpdateObject(ctx, update)
	require.NoError(t, err)
	require.Equal(t, created.ObjectId, updated.ObjectId)
	require.Equal(t, int64(2), updated.ObjectVersion)

	// the latest read sees the new entry point
	latest, err := service.ReadObject(ctx, &pb.MetadataReadRequest{
		Tenant:   testTenant,
		Selector: trac.SelectorOf(updated),
	})
	require.NoError(t, err)
	require.Equal(t, "acme.models.Replacement", latest.Definition.Model.EntryPoint)

	// version 1 is untouched
	v1sel := trac.SelectorOf(created)
	v1, err := service.ReadObject(ctx, &pb.MetadataReadRequest{
		Tenant:   testTenant,
		Selector: v1sel,
	})
	require.NoError(t, err)
	require.Equal(t, "acme.models.Original", v1.Definition.Model.EntryPoint)
	require.False(t, v1.Header.IsLatestObject)
}

func TestUpdateTag(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	service, db := newTestService(t, ctx)
	defer ctx.Check(db.Close)

	created, err := service.CreateObject(ctx, customWrite(
		&pb.TagUpdate{AttrName: "state", Value: trac.String("draft")},
		&pb.TagUpdate{AttrName: "owner", Value: trac.String("alice")},
	))
	require.NoError(t, err)

	retag := &pb.MetadataWriteRequest{
		Tenant:       testTenant,
		ObjectType:   pb.ObjectType_CUSTOM,
		PriorVersion: trac.SelectorOf(created),
		TagUpdates: []*pb.TagUpdate{
			{AttrName: "state", Value: trac.String("approved")},
			{AttrName: "owner"}, // null removes
		},
	}
	header, err := service.UpdateTag(ctx, retag)
	require.NoError(t, err)
	require.Equal(t, int64(1), header.ObjectVersion)
	require.Equal(t, int64(2), header.TagVersion)

	tag, err := service.ReadObject(ctx, &pb.MetadataReadRequest{
		Tenant:   testTenant,
		Selector: trac.SelectorOf(header),
	})
	require.NoError(t, err)
	require.True(t, trac.ValueEqual(trac.String("approved"), tag.Attrs["state"]))
	require.Nil(t, tag.Attrs["owner"])
	// the definition is untouched
	require.Equal(t, "test_schema", tag.Definition.Custom.CustomSchemaType)

	// a tag update carrying a definition is malformed
	retag.Definition = &pb.ObjectDefinition{}
	_, err = service.UpdateTag(ctx, retag)
	require.True(t, trac.ErrInvalidInput.Has(err))
}

func TestStructuredAttrs(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	service, db := newTestService(t, ctx)
	defer ctx.Check(db.Close)

	header, err := service.CreateObject(ctx, &pb.MetadataWriteRequest{
		Tenant:     testTenant,
		ObjectType: pb.ObjectType_DATA,
		Definition: &pb.ObjectDefinition{
			ObjectType: pb.ObjectType_DATA,
			Data: &pb.DataDefinition{
				Schema: &pb.SchemaDefinition{Fields: []*pb.FieldSchema{
					{FieldName: "id", FieldType: pb.BasicType_INTEGER},
					{FieldName: "name", FieldType: pb.BasicType_STRING},
				}},
			},
		},
	})
	require.NoError(t, err)

	tag, err := service.ReadObject(ctx, &pb.MetadataReadRequest{
		Tenant:   testTenant,
		Selector: trac.SelectorOf(header),
	})
	require.NoError(t, err)
	require.True(t, trac.ValueEqual(trac.Int(2), tag.Attrs[trac.AttrSchemaFieldCount]))

	modelHeader, err := service.CreateObject(ctx, &pb.MetadataWriteRequest{
		Tenant:     testTenant,
		ObjectType: pb.ObjectType_MODEL,
		Definition: &pb.ObjectDefinition{
			ObjectType: pb.ObjectType_MODEL,
			Model: &pb.ModelDefinition{
				Language:   "python",
				Repository: "models_repo",
				EntryPoint: "acme.models.Run",
				Version:    "1.2.0",
			},
		},
	})
	require.NoError(t, err)

	tag, err = service.ReadObject(ctx, &pb.MetadataReadRequest{
		Tenant:   testTenant,
		Selector: trac.SelectorOf(modelHeader),
	})
	require.NoError(t, err)
	require.True(t, trac.ValueEqual(trac.String("python"), tag.Attrs[trac.AttrModelLanguage]))
	require.True(t, trac.ValueEqual(trac.String("acme.models.Run"), tag.Attrs[trac.AttrModelEntryPoint]))
}

func TestDefinitionValidation(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	service, db := newTestService(t, ctx)
	defer ctx.Check(db.Close)

	// no body
	_, err := service.CreateObject(ctx, &pb.MetadataWriteRequest{
		Tenant:     testTenant,
		ObjectType: pb.ObjectType_CUSTOM,
		Definition: &pb.ObjectDefinition{ObjectType: pb.ObjectType_CUSTOM},
	})
	require.True(t, trac.ErrInvalidInput.Has(err))

	// body disagrees with the declared type
	_, err = service.CreateObject(ctx, &pb.MetadataWriteRequest{
		Tenant:     testTenant,
		ObjectType: pb.ObjectType_CUSTOM,
		Definition: &pb.ObjectDefinition{
			ObjectType: pb.ObjectType_CUSTOM,
			Data:       &pb.DataDefinition{},
		},
	})
	require.True(t, trac.ErrInvalidInput.Has(err))

	// request and definition disagree
	_, err = service.CreateObject(ctx, &pb.MetadataWriteRequest{
		Tenant:     testTenant,
		ObjectType: pb.ObjectType_DATA,
		Definition: &pb.ObjectDefinition{
			ObjectType: pb.ObjectType_CUSTOM,
			Custom:     &pb.CustomDefinition{},
		},
	})
	require.True(t, trac.ErrWrongObjectType.Has(err))
}

func TestPreallocateFlow(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	service, db := newTestService(t, ctx)
	defer ctx.Check(db.Close)

	reserved, err := service.PreallocateID(ctx, &pb.MetadataWriteRequest{
		Tenant:     testTenant,
		ObjectType: pb.ObjectType_DATA,
	})
	require.NoError(t, err)
	require.NotEmpty(t, reserved.ObjectId)
	require.Zero(t, reserved.ObjectVersion)

	write := &pb.MetadataWriteRequest{
		Tenant:       testTenant,
		ObjectType:   pb.ObjectType_DATA,
		PriorVersion: &pb.TagSelector{ObjectType: pb.ObjectType_DATA, ObjectId: reserved.ObjectId},
		Definition: &pb.ObjectDefinition{
			ObjectType: pb.ObjectType_DATA,
			Data:       &pb.DataDefinition{},
		},
	}
	header, err := service.CreatePreallocated(ctx, write)
	require.NoError(t, err)
	require.Equal(t, reserved.ObjectId, header.ObjectId)
	require.Equal(t, int64(1), header.ObjectVersion)

	_, err = service.CreatePreallocated(ctx, write)
	require.True(t, trac.ErrVersionConflict.Has(err))
}

func TestWriteBatch(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	service, db := newTestService(t, ctx)
	defer ctx.Check(db.Close)

	created, err := service.CreateObject(ctx, customWrite())
	require.NoError(t, err)

	update := customWrite(&pb.TagUpdate{AttrName: "round", Value: trac.Int(2)})
	update.PriorVersion = trac.SelectorOf(created)

	resp, err := service.WriteBatch(ctx, &pb.MetadataWriteBatchRequest{
		Tenant:         testTenant,
		PreallocateIds: []*pb.MetadataWriteRequest{{ObjectType: pb.ObjectType_DATA}},
		CreateObjects:  []*pb.MetadataWriteRequest{customWrite()},
		UpdateObjects:  []*pb.MetadataWriteRequest{update},
	})
	require.NoError(t, err)
	require.Len(t, resp.PreallocatedIds, 1)
	require.Len(t, resp.CreatedObjects, 1)
	require.Len(t, resp.UpdatedObjects, 1)
	require.Equal(t, int64(2), resp.UpdatedObjects[0].ObjectVersion)

	// cross-tenant sub requests are refused
	foreign := customWrite()
	foreign.Tenant = "other_corp"
	_, err = service.WriteBatch(ctx, &pb.MetadataWriteBatchRequest{
		Tenant:        testTenant,
		CreateObjects: []*pb.MetadataWriteRequest{foreign},
	})
	require.True(t, trac.ErrInvalidInput.Has(err))
}

func TestListTenantsAndPlatformInfo(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	service, db := newTestService(t, ctx)
	defer ctx.Check(db.Close)

	tenants, err := service.ListTenants(ctx, &pb.ListTenantsRequest{})
	require.NoError(t, err)
	require.Len(t, tenants.Tenants, 1)
	require.Equal(t, testTenant, tenants.Tenants[0].TenantCode)

	info, err := service.PlatformInfo(ctx, &pb.PlatformInfoRequest{})
	require.NoError(t, err)
	require.Equal(t, "TEST", info.Environment)
	require.False(t, info.Production)
}
