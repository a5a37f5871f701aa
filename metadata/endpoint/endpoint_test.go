// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package endpoint_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"trac.io/trac/internal/testcontext"
	"trac.io/trac/metadata/endpoint"
	"trac.io/trac/metadata/metadatadb"
	"trac.io/trac/metadata/objects"
	"trac.io/trac/pkg/auth"
	"trac.io/trac/pkg/pb"
	"trac.io/trac/pkg/trac"
)

const testTenant = "acme_corp"

func newEndpoints(t *testing.T, ctx *testcontext.Context) (*endpoint.Public, *endpoint.Trusted, *metadatadb.DB) {
	db, err := metadatadb.New(zaptest.NewLogger(t), "sqlite3://"+ctx.File("metadata.db"))
	require.NoError(t, err)
	require.NoError(t, db.MigrateToLatest(ctx))
	require.NoError(t, db.Tenants().Create(ctx, testTenant, ""))

	service := objects.NewService(zaptest.NewLogger(t), db, objects.Config{})
	return endpoint.NewPublic(service), endpoint.NewTrusted(service, "secret-key"), db
}

func jobWrite() *pb.MetadataWriteRequest {
	return &pb.MetadataWriteRequest{
		Tenant:     testTenant,
		ObjectType: pb.ObjectType_JOB,
		Definition: &pb.ObjectDefinition{
			ObjectType: pb.ObjectType_JOB,
			Job:        &pb.JobDefinition{JobType: "run_model"},
		},
	}
}

func TestPublicTierRestriction(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	public, trusted, db := newEndpoints(t, ctx)
	defer ctx.Check(db.Close)

	// application owned types go through
	header, err := public.CreateObject(ctx, &pb.MetadataWriteRequest{
		Tenant:     testTenant,
		ObjectType: pb.ObjectType_CUSTOM,
		Definition: &pb.ObjectDefinition{
			ObjectType: pb.ObjectType_CUSTOM,
			Custom:     &pb.CustomDefinition{},
		},
	})
	require.NoError(t, err)

	// platform owned types do not
	_, err = public.CreateObject(ctx, jobWrite())
	require.True(t, trac.ErrPermissionDenied.Has(err))

	// but reading them is open
	authed := auth.WithAPIKey(ctx, []byte("secret-key"))
	jobHeader, err := trusted.CreateObject(authed, jobWrite())
	require.NoError(t, err)

	tag, err := public.ReadObject(ctx, &pb.MetadataReadRequest{
		Tenant:   testTenant,
		Selector: trac.SelectorOf(jobHeader),
	})
	require.NoError(t, err)
	require.Equal(t, pb.ObjectType_JOB, tag.Header.ObjectType)

	_ = header
}

func TestTrustedTierAuth(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	_, trusted, db := newEndpoints(t, ctx)
	defer ctx.Check(db.Close)

	// no key
	_, err := trusted.CreateObject(ctx, jobWrite())
	require.True(t, trac.ErrUnauthenticated.Has(err))

	// wrong key
	_, err = trusted.CreateObject(auth.WithAPIKey(ctx, []byte("wrong")), jobWrite())
	require.True(t, trac.ErrUnauthenticated.Has(err))

	// valid key
	_, err = trusted.CreateObject(auth.WithAPIKey(ctx, []byte("secret-key")), jobWrite())
	require.NoError(t, err)
}

func TestTrustedTierEmptyKeyRejectsEverything(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	db, err := metadatadb.New(zaptest.NewLogger(t), "sqlite3://"+ctx.File("metadata.db"))
	require.NoError(t, err)
	defer ctx.Check(db.Close)
	require.NoError(t, db.MigrateToLatest(ctx))

	service := objects.NewService(zaptest.NewLogger(t), db, objects.Config{})
	trusted := endpoint.NewTrusted(service, "")

	_, err = trusted.ListTenants(auth.WithAPIKey(ctx, []byte("")), &pb.ListTenantsRequest{})
	require.True(t, trac.ErrUnauthenticated.Has(err))
}
