// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// Package endpoint exposes the metadata service over grpc on two tiers.
// The public tier accepts writes only for the application owned object
// types, the trusted tier is for platform services and requires an api
// key.
package endpoint

import (
	"context"

	monkit "gopkg.in/spacemonkeygo/monkit.v2"

	"trac.io/trac/metadata/objects"
	"trac.io/trac/pkg/auth"
	"trac.io/trac/pkg/pb"
	"trac.io/trac/pkg/trac"
)

var mon = monkit.Package()

// Public implements pb.PublicMetadataServer.
type Public struct {
	service *objects.Service
}

// NewPublic creates the public metadata endpoint.
func NewPublic(service *objects.Service) *Public {
	return &Public{service: service}
}

// checkWritable rejects writes for platform owned object types.
func checkWritable(ot pb.ObjectType) error {
	if !trac.PublicWritable(ot) {
		return trac.ErrPermissionDenied.New("%v objects are managed by the platform", ot)
	}
	return nil
}

// CreateObject implements pb.PublicMetadataServer.
func (public *Public) CreateObject(ctx context.Context, req *pb.MetadataWriteRequest) (_ *pb.TagHeader, err error) {
	defer mon.Task()(&ctx)(&err)
	if err := checkWritable(req.GetObjectType()); err != nil {
		return nil, err
	}
	return public.service.CreateObject(ctx, req)
}

// UpdateObject implements pb.PublicMetadataServer.
func (public *Public) UpdateObject(ctx context.Context, req *pb.MetadataWriteRequest) (_ *pb.TagHeader, err error) {
	defer mon.Task()(&ctx)(&err)
	if err := checkWritable(req.GetObjectType()); err != nil {
		return nil, err
	}
	return public.service.UpdateObject(ctx, req)
}

// UpdateTag implements pb.PublicMetadataServer.
func (public *Public) UpdateTag(ctx context.Context, req *pb.MetadataWriteRequest) (_ *pb.TagHeader, err error) {
	defer mon.Task()(&ctx)(&err)
	if err := checkWritable(req.GetObjectType()); err != nil {
		return nil, err
	}
	return public.service.UpdateTag(ctx, req)
}

// ReadObject implements pb.PublicMetadataServer. Reads are open for
// every object type.
func (public *Public) ReadObject(ctx context.Context, req *pb.MetadataReadRequest) (_ *pb.Tag, err error) {
	defer mon.Task()(&ctx)(&err)
	return public.service.ReadObject(ctx, req)
}

// ReadBatch implements pb.PublicMetadataServer.
func (public *Public) ReadBatch(ctx context.Context, req *pb.MetadataBatchRequest) (_ *pb.MetadataBatchResponse, err error) {
	defer mon.Task()(&ctx)(&err)
	return public.service.ReadBatch(ctx, req)
}

// Search implements pb.PublicMetadataServer.
func (public *Public) Search(ctx context.Context, req *pb.MetadataSearchRequest) (_ *pb.MetadataSearchResponse, err error) {
	defer mon.Task()(&ctx)(&err)
	return public.service.Search(ctx, req)
}

// ListTenants implements pb.PublicMetadataServer.
func (public *Public) ListTenants(ctx context.Context, req *pb.ListTenantsRequest) (_ *pb.ListTenantsResponse, err error) {
	defer mon.Task()(&ctx)(&err)
	return public.service.ListTenants(ctx, req)
}

// PlatformInfo implements pb.PublicMetadataServer.
func (public *Public) PlatformInfo(ctx context.Context, req *pb.PlatformInfoRequest) (_ *pb.PlatformInfoResponse, err error) {
	defer mon.Task()(&ctx)(&err)
	return public.service.PlatformInfo(ctx, req)
}

// Trusted implements pb.TrustedMetadataServer.
type Trusted struct {
	service *objects.Service
	apiKey  string
}

// NewTrusted creates the trusted metadata endpoint. The api key must be
// non-empty, an empty key rejects every call.
func NewTrusted(service *objects.Service, apiKey string) *Trusted {
	return &Trusted{service: service, apiKey: apiKey}
}

// authorize validates the api key attached to the request context.
func (trusted *Trusted) authorize(ctx context.Context) error {
	key, ok := auth.GetAPIKey(ctx)
	if !ok || !auth.ValidateAPIKey(trusted.apiKey, key) {
		return trac.ErrUnauthenticated.New("trusted api requires a valid api key")
	}
	return nil
}

// CreateObject implements pb.TrustedMetadataServer.
func (trusted *Trusted) CreateObject(ctx context.Context, req *pb.MetadataWriteRequest) (_ *pb.TagHeader, err error) {
	defer mon.Task()(&ctx)(&err)
	if err := trusted.authorize(ctx); err != nil {
		return nil, err
	}
	return trusted.service.CreateObject(ctx, req)
}

// UpdateObject implements pb.TrustedMetadataServer.
func (trusted *Trusted) UpdateObject(ctx context.Context, req *pb.MetadataWriteRequest) (_ *pb.TagHeader, err error) {
	defer mon.Task()(&ctx)(&err)
	if err := trusted.authorize(ctx); err != nil {
		return nil, err
	}
	return trusted.service.UpdateObject(ctx, req)
}

// UpdateTag implements pb.TrustedMetadataServer.
func (trusted *Trusted) UpdateTag(ctx context.Context, req *pb.MetadataWriteRequest) (_ *pb.TagHeader, err error) {
	defer mon.Task()(&ctx)(&err)
	if err := trusted.authorize(ctx); err != nil {
		return nil, err
	}
	return trusted.service.UpdateTag(ctx, req)
}

// PreallocateId implements pb.TrustedMetadataServer.
func (trusted *Trusted) PreallocateId(ctx context.Context, req *pb.MetadataWriteRequest) (_ *pb.TagHeader, err error) {
	defer mon.Task()(&ctx)(&err)
	if err := trusted.authorize(ctx); err != nil {
		return nil, err
	}
	return trusted.service.PreallocateID(ctx, req)
}

// CreatePreallocatedObject implements pb.TrustedMetadataServer.
func (trusted *Trusted) CreatePreallocatedObject(ctx context.Context, req *pb.MetadataWriteRequest) (_ *pb.TagHeader, err error) {
	defer mon.Task()(&ctx)(&err)
	if err := trusted.authorize(ctx); err != nil {
		return nil, err
	}
	return trusted.service.CreatePreallocated(ctx, req)
}

// WriteBatch implements pb.TrustedMetadataServer.
func (trusted *Trusted) WriteBatch(ctx context.Context, req *pb.MetadataWriteBatchRequest) (_ *pb.MetadataWriteBatchResponse, err error) {
	defer mon.Task()(&ctx)(&err)
	if err := trusted.authorize(ctx); err != nil {
		return nil, err
	}
	return trusted.service.WriteBatch(ctx, req)
}

// ReadObject implements pb.TrustedMetadataServer.
func (trusted *Trusted) ReadObject(ctx context.Context, req *pb.MetadataReadRequest) (_ *pb.Tag, err error) {
	defer mon.Task()(&ctx)(&err)
	if err := trusted.authorize(ctx); err != nil {
		return nil, err
	}
	return trusted.service.ReadObject(ctx, req)
}

// ReadBatch implements pb.TrustedMetadataServer.
func (trusted *Trusted) ReadBatch(ctx context.Context, req *pb.MetadataBatchRequest) (_ *pb.MetadataBatchResponse, err error) {
	defer mon.Task()(&ctx)(&err)
	if err := trusted.authorize(ctx); err != nil {
		return nil, err
	}
	return trusted.service.ReadBatch(ctx, req)
}

// Search implements pb.TrustedMetadataServer.
func (trusted *Trusted) Search(ctx context.Context, req *pb.MetadataSearchRequest) (_ *pb.MetadataSearchResponse, err error) {
	defer mon.Task()(&ctx)(&err)
	if err := trusted.authorize(ctx); err != nil {
		return nil, err
	}
	return trusted.service.Search(ctx, req)
}

// ListTenants implements pb.TrustedMetadataServer.
func (trusted *Trusted) ListTenants(ctx context.Context, req *pb.ListTenantsRequest) (_ *pb.ListTenantsResponse, err error) {
	defer mon.Task()(&ctx)(&err)
	if err := trusted.authorize(ctx); err != nil {
		return nil, err
	}
	return trusted.service.ListTenants(ctx, req)
}

// PlatformInfo implements pb.TrustedMetadataServer.
func (trusted *Trusted) PlatformInfo(ctx context.Context, req *pb.PlatformInfoRequest) (_ *pb.PlatformInfoResponse, err error) {
	defer mon.Task()(&ctx)(&err)
	if err := trusted.authorize(ctx); err != nil {
		return nil, err
	}
	return trusted.service.PlatformInfo(ctx, req)
}
