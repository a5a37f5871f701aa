// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// Package objects holds the metadata write and read semantics shared by
// the public and the trusted API tiers: attribute stamping, version
// checks and two level validation live here, the database stays dumb.
package objects

import (
	"context"
	"time"

	"go.uber.org/zap"
	monkit "gopkg.in/spacemonkeygo/monkit.v2"

	"trac.io/trac/internal/version"
	"trac.io/trac/metadata"
	"trac.io/trac/pkg/auth"
	"trac.io/trac/pkg/pb"
	"trac.io/trac/pkg/trac"
)

var mon = monkit.Package()

// Config holds platform level settings reported by PlatformInfo.
type Config struct {
	Environment string `help:"environment name reported to clients" default:"DEVELOPMENT"`
	Production  bool   `help:"whether this deployment is a production environment" default:"false"`
}

// Service implements the metadata operations over a metadata.DB.
type Service struct {
	log    *zap.Logger
	db     metadata.DB
	config Config

	now func() time.Time
}

// NewService creates a metadata service.
func NewService(log *zap.Logger, db metadata.DB, config Config) *Service {
	return &Service{
		log:    log,
		db:     db,
		config: config,
		now:    time.Now,
	}
}

// TestingSetNow overrides the clock.
func (service *Service) TestingSetNow(now func() time.Time) { service.now = now }

// CreateObject writes a fresh object at version 1, tag 1.
func (service *Service) CreateObject(ctx context.Context, req *pb.MetadataWriteRequest) (_ *pb.TagHeader, err error) {
	defer mon.Task()(&ctx)(&err)
	if err := validateWrite(req, true); err != nil {
		return nil, err
	}
	id, err := trac.NewObjectID()
	if err != nil {
		return nil, err
	}
	now := service.now()

	attrs := structuredAttrs(req.Definition)
	if err := applyTagUpdates(attrs, req.TagUpdates); err != nil {
		return nil, err
	}
	stampCreate(attrs, auth.GetUser(ctx), now)

	header := newHeader(req.ObjectType, id.String(), 1, 1, now)
	err = service.db.Objects().SaveNewObjects(ctx, req.Tenant, []*pb.Tag{{
		Header:     header,
		Definition: req.Definition,
		Attrs:      attrs,
	}})
	if err != nil {
		return nil, err
	}
	return header, nil
}

// PreallocateID reserves an object id without writing a definition.
func (service *Service) PreallocateID(ctx context.Context, req *pb.MetadataWriteRequest) (_ *pb.TagHeader, err error) {
	defer mon.Task()(&ctx)(&err)
	if req.GetTenant() == "" {
		return nil, trac.ErrInvalidInput.New("request without a tenant")
	}
	if req.ObjectType == pb.ObjectType_OBJECT_TYPE_NOT_SET {
		return nil, trac.ErrInvalidInput.New("preallocation without an object type")
	}
	id, err := trac.NewObjectID()
	if err != nil {
		return nil, err
	}
	header := &pb.TagHeader{ObjectType: req.ObjectType, ObjectId: id.String()}
	err = service.db.Objects().SavePreallocatedIDs(ctx, req.Tenant, []*pb.TagHeader{header})
	if err != nil {
		return nil, err
	}
	return header, nil
}

// CreatePreallocated writes version 1 onto a reserved id. The prior
// selector names the reservation.
func (service *Service) CreatePreallocated(ctx context.Context, req *pb.MetadataWriteRequest) (_ *pb.TagHeader, err error) {
	defer mon.Task()(&ctx)(&err)
	if err := validateWrite(req, true); err != nil {
		return nil, err
	}
	if req.PriorVersion.GetObjectId() == "" {
		return nil, trac.ErrInvalidInput.New("preallocated write without the reserved id")
	}
	if _, err := trac.ObjectIDFromString(req.PriorVersion.ObjectId); err != nil {
		return nil, err
	}
	now := service.now()

	attrs := structuredAttrs(req.Definition)
	if err := applyTagUpdates(attrs, req.TagUpdates); err != nil {
		return nil, err
	}
	stampCreate(attrs, auth.GetUser(ctx), now)

	header := newHeader(req.ObjectType, req.PriorVersion.ObjectId, 1, 1, now)
	err = service.db.Objects().SavePreallocatedObjects(ctx, req.Tenant, []*pb.Tag{{
		Header:     header,
		Definition: req.Definition,
		Attrs:      attrs,
	}})
	if err != nil {
		return nil, err
	}
	return header, nil
}

// UpdateObject writes the next version of an object. The prior selector
// must resolve to the current latest version.
func (service *Service) UpdateObject(ctx context.Context, req *pb.MetadataWriteRequest) (_ *pb.TagHeader, err error) {
	defer mon.Task()(&ctx)(&err)
	if err := validateWrite(req, true); err != nil {
		return nil, err
	}
	if !versionedType(req.ObjectType) {
		return nil, trac.ErrInvalidInput.New("%v objects do not support versioning", req.ObjectType)
	}
	prior, err := service.loadPrior(ctx, req)
	if err != nil {
		return nil, err
	}
	if !prior.Header.IsLatestObject {
		return nil, trac.ErrVersionConflict.New("object %s version %d is not the latest",
			prior.Header.ObjectId, prior.Header.ObjectVersion)
	}
	if req.Definition.ObjectType != prior.Header.ObjectType {
		return nil, trac.ErrWrongObjectType.New("object %s is %v, update carries %v",
			prior.Header.ObjectId, prior.Header.ObjectType, req.Definition.ObjectType)
	}
	now := service.now()

	attrs := carryForward(prior.Attrs)
	for name, value := range structuredAttrs(req.Definition) {
		attrs[name] = value
	}
	if err := applyTagUpdates(attrs, req.TagUpdates); err != nil {
		return nil, err
	}
	stampUpdate(attrs, auth.GetUser(ctx), now)

	header := newHeader(req.ObjectType, prior.Header.ObjectId, prior.Header.ObjectVersion+1, 1, now)
	err = service.db.Objects().SaveNewVersions(ctx, req.Tenant, []*pb.Tag{{
		Header:     header,
		Definition: req.Definition,
		Attrs:      attrs,
	}})
	if err != nil {
		return nil, err
	}
	return header, nil
}

// UpdateTag writes the next tag of an object version. The definition
// stays untouched.
func (service *Service) UpdateTag(ctx context.Context, req *pb.MetadataWriteRequest) (_ *pb.TagHeader, err error) {
	defer mon.Task()(&ctx)(&err)
	if err := validateWrite(req, false); err != nil {
		return nil, err
	}
	if req.Definition != nil {
		return nil, trac.ErrInvalidInput.New("tag update must not carry a definition")
	}
	prior, err := service.loadPrior(ctx, req)
	if err != nil {
		return nil, err
	}
	if !prior.Header.IsLatestTag {
		return nil, trac.ErrTagVersionConflict.New("object %s.%d tag %d is not the latest",
			prior.Header.ObjectId, prior.Header.ObjectVersion, prior.Header.TagVersion)
	}
	now := service.now()

	attrs := carryForward(prior.Attrs)
	for name, value := range structuredAttrs(prior.Definition) {
		attrs[name] = value
	}
	if err := applyTagUpdates(attrs, req.TagUpdates); err != nil {
		return nil, err
	}
	stampUpdate(attrs, auth.GetUser(ctx), now)

	header := newHeader(req.ObjectType, prior.Header.ObjectId,
		prior.Header.ObjectVersion, prior.Header.TagVersion+1, now)
	err = service.db.Objects().SaveNewTags(ctx, req.Tenant, []*pb.Tag{{
		Header: header,
		Attrs:  attrs,
	}})
	if err != nil {
		return nil, err
	}
	return header, nil
}

// ReadObject resolves one selector.
func (service *Service) ReadObject(ctx context.Context, req *pb.MetadataReadRequest) (_ *pb.Tag, err error) {
	defer mon.Task()(&ctx)(&err)
	if req.GetTenant() == "" {
		return nil, trac.ErrInvalidInput.New("request without a tenant")
	}
	return service.db.Objects().LoadObject(ctx, req.Tenant, req.Selector)
}

// ReadBatch resolves selectors in order, failing on the first miss.
func (service *Service) ReadBatch(ctx context.Context, req *pb.MetadataBatchRequest) (_ *pb.MetadataBatchResponse, err error) {
	defer mon.Task()(&ctx)(&err)
	if req.GetTenant() == "" {
		return nil, trac.ErrInvalidInput.New("request without a tenant")
	}
	tags, err := service.db.Objects().LoadObjects(ctx, req.Tenant, req.Selector)
	if err != nil {
		return nil, err
	}
	return &pb.MetadataBatchResponse{Tag: tags}, nil
}

// Search runs an attribute query.
func (service *Service) Search(ctx context.Context, req *pb.MetadataSearchRequest) (_ *pb.MetadataSearchResponse, err error) {
	defer mon.Task()(&ctx)(&err)
	if req.GetTenant() == "" {
		return nil, trac.ErrInvalidInput.New("request without a tenant")
	}
	tags, err := service.db.Objects().Search(ctx, req.Tenant, req.SearchParams)
	if err != nil {
		return nil, err
	}
	return &pb.MetadataSearchResponse{SearchResult: tags}, nil
}

// ListTenants lists the tenants known to this deployment.
func (service *Service) ListTenants(ctx context.Context, req *pb.ListTenantsRequest) (_ *pb.ListTenantsResponse, err error) {
	defer mon.Task()(&ctx)(&err)
	list, err := service.db.Tenants().List(ctx)
	if err != nil {
		return nil, err
	}
	resp := &pb.ListTenantsResponse{}
	for _, info := range list {
		resp.Tenants = append(resp.Tenants, &pb.TenantInfo{
			TenantCode:  info.Code,
			Description: info.Description,
		})
	}
	return resp, nil
}

// PlatformInfo reports the environment and the build.
func (service *Service) PlatformInfo(ctx context.Context, req *pb.PlatformInfoRequest) (_ *pb.PlatformInfoResponse, err error) {
	defer mon.Task()(&ctx)(&err)
	info := version.Build
	return &pb.PlatformInfoResponse{
		Environment:    service.config.Environment,
		Production:     service.config.Production,
		BuildVersion:   info.Version.String(),
		BuildTimestamp: info.Timestamp.UTC().Format(time.RFC3339),
	}, nil
}

// WriteBatch applies a mixed group of writes in one transaction. All
// sub requests share the enclosing tenant.
func (service *Service) WriteBatch(ctx context.Context, req *pb.MetadataWriteBatchRequest) (_ *pb.MetadataWriteBatchResponse, err error) {
	defer mon.Task()(&ctx)(&err)
	if req.GetTenant() == "" {
		return nil, trac.ErrInvalidInput.New("request without a tenant")
	}
	groups := [][]*pb.MetadataWriteRequest{
		req.PreallocateIds, req.CreatePreallocatedObjects,
		req.CreateObjects, req.UpdateObjects, req.UpdateTags,
	}
	for _, group := range groups {
		for _, sub := range group {
			if sub.Tenant != "" && sub.Tenant != req.Tenant {
				return nil, trac.ErrInvalidInput.New("batch for tenant %q contains a write for tenant %q",
					req.Tenant, sub.Tenant)
			}
			sub.Tenant = req.Tenant
		}
	}

	now := service.now()
	user := auth.GetUser(ctx)
	var batch metadata.BatchUpdate
	resp := &pb.MetadataWriteBatchResponse{}

	for _, sub := range req.PreallocateIds {
		if sub.ObjectType == pb.ObjectType_OBJECT_TYPE_NOT_SET {
			return nil, trac.ErrInvalidInput.New("preallocation without an object type")
		}
		id, err := trac.NewObjectID()
		if err != nil {
			return nil, err
		}
		header := &pb.TagHeader{ObjectType: sub.ObjectType, ObjectId: id.String()}
		batch.PreallocatedIDs = append(batch.PreallocatedIDs, header)
		resp.PreallocatedIds = append(resp.PreallocatedIds, header)
	}
	for _, sub := range req.CreatePreallocatedObjects {
		if err := validateWrite(sub, true); err != nil {
			return nil, err
		}
		if sub.PriorVersion.GetObjectId() == "" {
			return nil, trac.ErrInvalidInput.New("preallocated write without the reserved id")
		}
		tag, err := service.freshTag(sub, sub.PriorVersion.ObjectId, user, now)
		if err != nil {
			return nil, err
		}
		batch.PreallocatedObjects = append(batch.PreallocatedObjects, tag)
		resp.CreatedPreallocatedObjects = append(resp.CreatedPreallocatedObjects, tag.Header)
	}
	for _, sub := range req.CreateObjects {
		if err := validateWrite(sub, true); err != nil {
			return nil, err
		}
		id, err := trac.NewObjectID()
		if err != nil {
			return nil, err
		}
		tag, err := service.freshTag(sub, id.String(), user, now)
		if err != nil {
			return nil, err
		}
		batch.NewObjects = append(batch.NewObjects, tag)
		resp.CreatedObjects = append(resp.CreatedObjects, tag.Header)
	}
	for _, sub := range req.UpdateObjects {
		if err := validateWrite(sub, true); err != nil {
			return nil, err
		}
		if !versionedType(sub.ObjectType) {
			return nil, trac.ErrInvalidInput.New("%v objects do not support versioning", sub.ObjectType)
		}
		prior, err := service.loadPrior(ctx, sub)
		if err != nil {
			return nil, err
		}
		if !prior.Header.IsLatestObject {
			return nil, trac.ErrVersionConflict.New("object %s version %d is not the latest",
				prior.Header.ObjectId, prior.Header.ObjectVersion)
		}
		if sub.Definition.ObjectType != prior.Header.ObjectType {
			return nil, trac.ErrWrongObjectType.New("object %s is %v, update carries %v",
				prior.Header.ObjectId, prior.Header.ObjectType, sub.Definition.ObjectType)
		}
		attrs := carryForward(prior.Attrs)
		for name, value := range structuredAttrs(sub.Definition) {
			attrs[name] = value
		}
		if err := applyTagUpdates(attrs, sub.TagUpdates); err != nil {
			return nil, err
		}
		stampUpdate(attrs, user, now)
		header := newHeader(sub.ObjectType, prior.Header.ObjectId, prior.Header.ObjectVersion+1, 1, now)
		batch.NewVersions = append(batch.NewVersions, &pb.Tag{
			Header: header, Definition: sub.Definition, Attrs: attrs,
		})
		resp.UpdatedObjects = append(resp.UpdatedObjects, header)
	}
	for _, sub := range req.UpdateTags {
		if err := validateWrite(sub, false); err != nil {
			return nil, err
		}
		if sub.Definition != nil {
			return nil, trac.ErrInvalidInput.New("tag update must not carry a definition")
		}
		prior, err := service.loadPrior(ctx, sub)
		if err != nil {
			return nil, err
		}
		if !prior.Header.IsLatestTag {
			return nil, trac.ErrTagVersionConflict.New("object %s.%d tag %d is not the latest",
				prior.Header.ObjectId, prior.Header.ObjectVersion, prior.Header.TagVersion)
		}
		attrs := carryForward(prior.Attrs)
		for name, value := range structuredAttrs(prior.Definition) {
			attrs[name] = value
		}
		if err := applyTagUpdates(attrs, sub.TagUpdates); err != nil {
			return nil, err
		}
		stampUpdate(attrs, user, now)
		header := newHeader(sub.ObjectType, prior.Header.ObjectId,
			prior.Header.ObjectVersion, prior.Header.TagVersion+1, now)
		batch.NewTags = append(batch.NewTags, &pb.Tag{Header: header, Attrs: attrs})
		resp.UpdatedTags = append(resp.UpdatedTags, header)
	}

	if err := service.db.Objects().SaveBatchUpdate(ctx, req.Tenant, batch); err != nil {
		return nil, err
	}
	return resp, nil
}

// freshTag assembles a version 1 tag for a create style write.
func (service *Service) freshTag(req *pb.MetadataWriteRequest, id string, user auth.User, now time.Time) (*pb.Tag, error) {
	attrs := structuredAttrs(req.Definition)
	if err := applyTagUpdates(attrs, req.TagUpdates); err != nil {
		return nil, err
	}
	stampCreate(attrs, user, now)
	return &pb.Tag{
		Header:     newHeader(req.ObjectType, id, 1, 1, now),
		Definition: req.Definition,
		Attrs:      attrs,
	}, nil
}

// loadPrior resolves the prior version selector of an update.
func (service *Service) loadPrior(ctx context.Context, req *pb.MetadataWriteRequest) (*pb.Tag, error) {
	if req.PriorVersion == nil {
		return nil, trac.ErrInvalidInput.New("update without a prior version selector")
	}
	if req.PriorVersion.ObjectType == pb.ObjectType_OBJECT_TYPE_NOT_SET {
		req.PriorVersion.ObjectType = req.ObjectType
	}
	if req.PriorVersion.ObjectType != req.ObjectType {
		return nil, trac.ErrWrongObjectType.New("request is %v, prior selector says %v",
			req.ObjectType, req.PriorVersion.ObjectType)
	}
	return service.db.Objects().LoadObject(ctx, req.Tenant, req.PriorVersion)
}

// validateWrite runs the static request checks shared by all writes.
func validateWrite(req *pb.MetadataWriteRequest, needDefinition bool) error {
	if req.GetTenant() == "" {
		return trac.ErrInvalidInput.New("request without a tenant")
	}
	if req.ObjectType == pb.ObjectType_OBJECT_TYPE_NOT_SET {
		return trac.ErrInvalidInput.New("request without an object type")
	}
	if !needDefinition {
		return nil
	}
	if err := trac.ValidateDefinition(req.Definition); err != nil {
		return err
	}
	if req.Definition.ObjectType != req.ObjectType {
		return trac.ErrWrongObjectType.New("request is %v, definition is %v",
			req.ObjectType, req.Definition.ObjectType)
	}
	return nil
}

// versionedType reports whether object versioning applies. Jobs and
// results record a single run, new content means a new object.
func versionedType(ot pb.ObjectType) bool {
	switch ot {
	case pb.ObjectType_DATA, pb.ObjectType_MODEL, pb.ObjectType_FLOW,
		pb.ObjectType_FILE, pb.ObjectType_STORAGE,
		pb.ObjectType_SCHEMA, pb.ObjectType_CUSTOM,
		pb.ObjectType_CONFIG, pb.ObjectType_RESOURCE:
		return true
	}
	return false
}

func newHeader(ot pb.ObjectType, id string, objectVersion, tagVersion int64, now time.Time) *pb.TagHeader {
	return &pb.TagHeader{
		ObjectType:      ot,
		ObjectId:        id,
		ObjectVersion:   objectVersion,
		TagVersion:      tagVersion,
		ObjectTimestamp: trac.AsDatetime(now),
		TagTimestamp:    trac.AsDatetime(now),
		IsLatestObject:  true,
		IsLatestTag:     true,
	}
}
