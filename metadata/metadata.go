// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// Package metadata is the versioned, tag-based object store. The DB
// interface is the persistence boundary; metadatadb implements it over
// postgres and sqlite.
package metadata

import (
	"context"

	"trac.io/trac/pkg/pb"
)

// DB is the metadata persistence interface.
type DB interface {
	// Tenants gives access to the tenant registry.
	Tenants() Tenants
	// Objects gives access to objects, versions, tags and search.
	Objects() Objects

	// MigrateToLatest brings the schema up to date.
	MigrateToLatest(ctx context.Context) error
	// Close releases the underlying connections.
	Close() error
}

// TenantInfo describes one tenant.
type TenantInfo struct {
	Code        string
	Description string
}

// Tenants is the tenant registry. Tenants are created by the deploy
// tool, never at service runtime.
type Tenants interface {
	// List returns every tenant ordered by code.
	List(ctx context.Context) ([]TenantInfo, error)
	// Create adds a tenant.
	Create(ctx context.Context, code, description string) error
	// Update changes a tenant description.
	Update(ctx context.Context, code, description string) error
}

// BatchUpdate bundles writes into one atomic transaction. Groups apply
// in the declared field order.
type BatchUpdate struct {
	PreallocatedIDs     []*pb.TagHeader
	PreallocatedObjects []*pb.Tag
	NewObjects          []*pb.Tag
	NewVersions         []*pb.Tag
	NewTags             []*pb.Tag
}

// IsZero reports whether the batch carries no writes.
func (batch BatchUpdate) IsZero() bool {
	return len(batch.PreallocatedIDs) == 0 &&
		len(batch.PreallocatedObjects) == 0 &&
		len(batch.NewObjects) == 0 &&
		len(batch.NewVersions) == 0 &&
		len(batch.NewTags) == 0
}

// Objects persists objects, versions, tags and attributes. Every
// operation is tenant scoped and writes to the same object id are
// serialized against each other.
type Objects interface {
	// SavePreallocatedIDs reserves object ids with no definition yet.
	SavePreallocatedIDs(ctx context.Context, tenant string, headers []*pb.TagHeader) error
	// SavePreallocatedObjects writes version 1 onto reserved ids.
	SavePreallocatedObjects(ctx context.Context, tenant string, tags []*pb.Tag) error
	// SaveNewObjects writes fresh objects at version 1, tag 1.
	SaveNewObjects(ctx context.Context, tenant string, tags []*pb.Tag) error
	// SaveNewVersions appends version N+1 to existing objects.
	SaveNewVersions(ctx context.Context, tenant string, tags []*pb.Tag) error
	// SaveNewTags appends a tag to an existing object version.
	SaveNewTags(ctx context.Context, tenant string, tags []*pb.Tag) error
	// SaveBatchUpdate applies a batch atomically.
	SaveBatchUpdate(ctx context.Context, tenant string, batch BatchUpdate) error

	// LoadObject resolves a selector to its fully hydrated tag.
	LoadObject(ctx context.Context, tenant string, selector *pb.TagSelector) (*pb.Tag, error)
	// LoadObjects resolves selectors preserving input order, failing
	// fast on the first miss.
	LoadObjects(ctx context.Context, tenant string, selectors []*pb.TagSelector) ([]*pb.Tag, error)
	// Search runs an attribute query.
	Search(ctx context.Context, tenant string, params *pb.SearchParameters) ([]*pb.Tag, error)
}
