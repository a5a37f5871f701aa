// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package pb

import (
	proto "github.com/gogo/protobuf/proto"
	golang_proto "github.com/golang/protobuf/proto"
	context "golang.org/x/net/context"
	grpc "google.golang.org/grpc"
)

// MetadataWriteRequest covers every single-object write. CreateObject and
// PreallocateId ignore PriorVersion; the update operations require it.
type MetadataWriteRequest struct {
	Tenant       string            `protobuf:"bytes,1,opt,name=tenant,proto3" json:"tenant,omitempty"`
	ObjectType   ObjectType        `protobuf:"varint,2,opt,name=object_type,json=objectType,proto3,enum=trac.metadata.ObjectType" json:"object_type,omitempty"`
	PriorVersion *TagSelector      `protobuf:"bytes,3,opt,name=prior_version,json=priorVersion" json:"prior_version,omitempty"`
	Definition   *ObjectDefinition `protobuf:"bytes,4,opt,name=definition" json:"definition,omitempty"`
	TagUpdates   []*TagUpdate      `protobuf:"bytes,5,rep,name=tag_updates,json=tagUpdates" json:"tag_updates,omitempty"`
}

func (m *MetadataWriteRequest) Reset()         { *m = MetadataWriteRequest{} }
func (m *MetadataWriteRequest) String() string { return proto.CompactTextString(m) }
func (*MetadataWriteRequest) ProtoMessage()    {}

func (m *MetadataWriteRequest) GetTenant() string {
	if m != nil {
		return m.Tenant
	}
	return ""
}

func (m *MetadataWriteRequest) GetObjectType() ObjectType {
	if m != nil {
		return m.ObjectType
	}
	return ObjectType_OBJECT_TYPE_NOT_SET
}

func (m *MetadataWriteRequest) GetPriorVersion() *TagSelector {
	if m != nil {
		return m.PriorVersion
	}
	return nil
}

func (m *MetadataWriteRequest) GetDefinition() *ObjectDefinition {
	if m != nil {
		return m.Definition
	}
	return nil
}

func (m *MetadataWriteRequest) GetTagUpdates() []*TagUpdate {
	if m != nil {
		return m.TagUpdates
	}
	return nil
}

type TagUpdate struct {
	AttrName string `protobuf:"bytes,1,opt,name=attr_name,json=attrName,proto3" json:"attr_name,omitempty"`
	Value    *Value `protobuf:"bytes,2,opt,name=value" json:"value,omitempty"`
}

func (m *TagUpdate) Reset()         { *m = TagUpdate{} }
func (m *TagUpdate) String() string { return proto.CompactTextString(m) }
func (*TagUpdate) ProtoMessage()    {}

func (m *TagUpdate) GetAttrName() string {
	if m != nil {
		return m.AttrName
	}
	return ""
}

func (m *TagUpdate) GetValue() *Value {
	if m != nil {
		return m.Value
	}
	return nil
}

type MetadataReadRequest struct {
	Tenant   string       `protobuf:"bytes,1,opt,name=tenant,proto3" json:"tenant,omitempty"`
	Selector *TagSelector `protobuf:"bytes,2,opt,name=selector" json:"selector,omitempty"`
}

func (m *MetadataReadRequest) Reset()         { *m = MetadataReadRequest{} }
func (m *MetadataReadRequest) String() string { return proto.CompactTextString(m) }
func (*MetadataReadRequest) ProtoMessage()    {}

func (m *MetadataReadRequest) GetTenant() string {
	if m != nil {
		return m.Tenant
	}
	return ""
}

func (m *MetadataReadRequest) GetSelector() *TagSelector {
	if m != nil {
		return m.Selector
	}
	return nil
}

type MetadataBatchRequest struct {
	Tenant   string         `protobuf:"bytes,1,opt,name=tenant,proto3" json:"tenant,omitempty"`
	Selector []*TagSelector `protobuf:"bytes,2,rep,name=selector" json:"selector,omitempty"`
}

func (m *MetadataBatchRequest) Reset()         { *m = MetadataBatchRequest{} }
func (m *MetadataBatchRequest) String() string { return proto.CompactTextString(m) }
func (*MetadataBatchRequest) ProtoMessage()    {}

func (m *MetadataBatchRequest) GetTenant() string {
	if m != nil {
		return m.Tenant
	}
	return ""
}

func (m *MetadataBatchRequest) GetSelector() []*TagSelector {
	if m != nil {
		return m.Selector
	}
	return nil
}

type MetadataBatchResponse struct {
	Tag []*Tag `protobuf:"bytes,1,rep,name=tag" json:"tag,omitempty"`
}

func (m *MetadataBatchResponse) Reset()         { *m = MetadataBatchResponse{} }
func (m *MetadataBatchResponse) String() string { return proto.CompactTextString(m) }
func (*MetadataBatchResponse) ProtoMessage()    {}

func (m *MetadataBatchResponse) GetTag() []*Tag {
	if m != nil {
		return m.Tag
	}
	return nil
}

type MetadataSearchRequest struct {
	Tenant       string            `protobuf:"bytes,1,opt,name=tenant,proto3" json:"tenant,omitempty"`
	SearchParams *SearchParameters `protobuf:"bytes,2,opt,name=search_params,json=searchParams" json:"search_params,omitempty"`
}

func (m *MetadataSearchRequest) Reset()         { *m = MetadataSearchRequest{} }
func (m *MetadataSearchRequest) String() string { return proto.CompactTextString(m) }
func (*MetadataSearchRequest) ProtoMessage()    {}

func (m *MetadataSearchRequest) GetTenant() string {
	if m != nil {
		return m.Tenant
	}
	return ""
}

func (m *MetadataSearchRequest) GetSearchParams() *SearchParameters {
	if m != nil {
		return m.SearchParams
	}
	return nil
}

type MetadataSearchResponse struct {
	SearchResult []*Tag `protobuf:"bytes,1,rep,name=search_result,json=searchResult" json:"search_result,omitempty"`
}

func (m *MetadataSearchResponse) Reset()         { *m = MetadataSearchResponse{} }
func (m *MetadataSearchResponse) String() string { return proto.CompactTextString(m) }
func (*MetadataSearchResponse) ProtoMessage()    {}

func (m *MetadataSearchResponse) GetSearchResult() []*Tag {
	if m != nil {
		return m.SearchResult
	}
	return nil
}

// MetadataWriteBatchRequest groups writes into one atomic transaction.
// The store applies groups in a fixed order: preallocations, objects
// created on preallocated ids, new objects, new versions, new tags.
type MetadataWriteBatchRequest struct {
	Tenant                    string                  `protobuf:"bytes,1,opt,name=tenant,proto3" json:"tenant,omitempty"`
	PreallocateIds            []*MetadataWriteRequest `protobuf:"bytes,2,rep,name=preallocate_ids,json=preallocateIds" json:"preallocate_ids,omitempty"`
	CreatePreallocatedObjects []*MetadataWriteRequest `protobuf:"bytes,3,rep,name=create_preallocated_objects,json=createPreallocatedObjects" json:"create_preallocated_objects,omitempty"`
	CreateObjects             []*MetadataWriteRequest `protobuf:"bytes,4,rep,name=create_objects,json=createObjects" json:"create_objects,omitempty"`
	UpdateObjects             []*MetadataWriteRequest `protobuf:"bytes,5,rep,name=update_objects,json=updateObjects" json:"update_objects,omitempty"`
	UpdateTags                []*MetadataWriteRequest `protobuf:"bytes,6,rep,name=update_tags,json=updateTags" json:"update_tags,omitempty"`
}

func (m *MetadataWriteBatchRequest) Reset()         { *m = MetadataWriteBatchRequest{} }
func (m *MetadataWriteBatchRequest) String() string { return proto.CompactTextString(m) }
func (*MetadataWriteBatchRequest) ProtoMessage()    {}

func (m *MetadataWriteBatchRequest) GetTenant() string {
	if m != nil {
		return m.Tenant
	}
	return ""
}

func (m *MetadataWriteBatchRequest) GetPreallocateIds() []*MetadataWriteRequest {
	if m != nil {
		return m.PreallocateIds
	}
	return nil
}

func (m *MetadataWriteBatchRequest) GetCreatePreallocatedObjects() []*MetadataWriteRequest {
	if m != nil {
		return m.CreatePreallocatedObjects
	}
	return nil
}

func (m *MetadataWriteBatchRequest) GetCreateObjects() []*MetadataWriteRequest {
	if m != nil {
		return m.CreateObjects
	}
	return nil
}

func (m *MetadataWriteBatchRequest) GetUpdateObjects() []*MetadataWriteRequest {
	if m != nil {
		return m.UpdateObjects
	}
	return nil
}

func (m *MetadataWriteBatchRequest) GetUpdateTags() []*MetadataWriteRequest {
	if m != nil {
		return m.UpdateTags
	}
	return nil
}

type MetadataWriteBatchResponse struct {
	PreallocatedIds            []*TagHeader `protobuf:"bytes,1,rep,name=preallocated_ids,json=preallocatedIds" json:"preallocated_ids,omitempty"`
	CreatedPreallocatedObjects []*TagHeader `protobuf:"bytes,2,rep,name=created_preallocated_objects,json=createdPreallocatedObjects" json:"created_preallocated_objects,omitempty"`
	CreatedObjects             []*TagHeader `protobuf:"bytes,3,rep,name=created_objects,json=createdObjects" json:"created_objects,omitempty"`
	UpdatedObjects             []*TagHeader `protobuf:"bytes,4,rep,name=updated_objects,json=updatedObjects" json:"updated_objects,omitempty"`
	UpdatedTags                []*TagHeader `protobuf:"bytes,5,rep,name=updated_tags,json=updatedTags" json:"updated_tags,omitempty"`
}

func (m *MetadataWriteBatchResponse) Reset()         { *m = MetadataWriteBatchResponse{} }
func (m *MetadataWriteBatchResponse) String() string { return proto.CompactTextString(m) }
func (*MetadataWriteBatchResponse) ProtoMessage()    {}

func (m *MetadataWriteBatchResponse) GetPreallocatedIds() []*TagHeader {
	if m != nil {
		return m.PreallocatedIds
	}
	return nil
}

func (m *MetadataWriteBatchResponse) GetCreatedPreallocatedObjects() []*TagHeader {
	if m != nil {
		return m.CreatedPreallocatedObjects
	}
	return nil
}

func (m *MetadataWriteBatchResponse) GetCreatedObjects() []*TagHeader {
	if m != nil {
		return m.CreatedObjects
	}
	return nil
}

func (m *MetadataWriteBatchResponse) GetUpdatedObjects() []*TagHeader {
	if m != nil {
		return m.UpdatedObjects
	}
	return nil
}

func (m *MetadataWriteBatchResponse) GetUpdatedTags() []*TagHeader {
	if m != nil {
		return m.UpdatedTags
	}
	return nil
}

type ListTenantsRequest struct {
}

func (m *ListTenantsRequest) Reset()         { *m = ListTenantsRequest{} }
func (m *ListTenantsRequest) String() string { return proto.CompactTextString(m) }
func (*ListTenantsRequest) ProtoMessage()    {}

type ListTenantsResponse struct {
	Tenants []*TenantInfo `protobuf:"bytes,1,rep,name=tenants" json:"tenants,omitempty"`
}

func (m *ListTenantsResponse) Reset()         { *m = ListTenantsResponse{} }
func (m *ListTenantsResponse) String() string { return proto.CompactTextString(m) }
func (*ListTenantsResponse) ProtoMessage()    {}

func (m *ListTenantsResponse) GetTenants() []*TenantInfo {
	if m != nil {
		return m.Tenants
	}
	return nil
}

type PlatformInfoRequest struct {
}

func (m *PlatformInfoRequest) Reset()         { *m = PlatformInfoRequest{} }
func (m *PlatformInfoRequest) String() string { return proto.CompactTextString(m) }
func (*PlatformInfoRequest) ProtoMessage()    {}

type PlatformInfoResponse struct {
	Environment    string `protobuf:"bytes,1,opt,name=environment,proto3" json:"environment,omitempty"`
	Production     bool   `protobuf:"varint,2,opt,name=production,proto3" json:"production,omitempty"`
	BuildVersion   string `protobuf:"bytes,3,opt,name=build_version,json=buildVersion,proto3" json:"build_version,omitempty"`
	BuildTimestamp string `protobuf:"bytes,4,opt,name=build_timestamp,json=buildTimestamp,proto3" json:"build_timestamp,omitempty"`
}

func (m *PlatformInfoResponse) Reset()         { *m = PlatformInfoResponse{} }
func (m *PlatformInfoResponse) String() string { return proto.CompactTextString(m) }
func (*PlatformInfoResponse) ProtoMessage()    {}

func (m *PlatformInfoResponse) GetEnvironment() string {
	if m != nil {
		return m.Environment
	}
	return ""
}

func (m *PlatformInfoResponse) GetProduction() bool {
	if m != nil {
		return m.Production
	}
	return false
}

func (m *PlatformInfoResponse) GetBuildVersion() string {
	if m != nil {
		return m.BuildVersion
	}
	return ""
}

func (m *PlatformInfoResponse) GetBuildTimestamp() string {
	if m != nil {
		return m.BuildTimestamp
	}
	return ""
}

func init() {
	proto.RegisterType((*MetadataWriteRequest)(nil), "trac.metadata.MetadataWriteRequest")
	golang_proto.RegisterType((*MetadataWriteRequest)(nil), "trac.metadata.MetadataWriteRequest")
	proto.RegisterType((*TagUpdate)(nil), "trac.metadata.TagUpdate")
	golang_proto.RegisterType((*TagUpdate)(nil), "trac.metadata.TagUpdate")
	proto.RegisterType((*MetadataReadRequest)(nil), "trac.metadata.MetadataReadRequest")
	golang_proto.RegisterType((*MetadataReadRequest)(nil), "trac.metadata.MetadataReadRequest")
	proto.RegisterType((*MetadataBatchRequest)(nil), "trac.metadata.MetadataBatchRequest")
	golang_proto.RegisterType((*MetadataBatchRequest)(nil), "trac.metadata.MetadataBatchRequest")
	proto.RegisterType((*MetadataBatchResponse)(nil), "trac.metadata.MetadataBatchResponse")
	golang_proto.RegisterType((*MetadataBatchResponse)(nil), "trac.metadata.MetadataBatchResponse")
	proto.RegisterType((*MetadataSearchRequest)(nil), "trac.metadata.MetadataSearchRequest")
	golang_proto.RegisterType((*MetadataSearchRequest)(nil), "trac.metadata.MetadataSearchRequest")
	proto.RegisterType((*MetadataSearchResponse)(nil), "trac.metadata.MetadataSearchResponse")
	golang_proto.RegisterType((*MetadataSearchResponse)(nil), "trac.metadata.MetadataSearchResponse")
	proto.RegisterType((*MetadataWriteBatchRequest)(nil), "trac.metadata.MetadataWriteBatchRequest")
	golang_proto.RegisterType((*MetadataWriteBatchRequest)(nil), "trac.metadata.MetadataWriteBatchRequest")
	proto.RegisterType((*MetadataWriteBatchResponse)(nil), "trac.metadata.MetadataWriteBatchResponse")
	golang_proto.RegisterType((*MetadataWriteBatchResponse)(nil), "trac.metadata.MetadataWriteBatchResponse")
	proto.RegisterType((*ListTenantsRequest)(nil), "trac.metadata.ListTenantsRequest")
	golang_proto.RegisterType((*ListTenantsRequest)(nil), "trac.metadata.ListTenantsRequest")
	proto.RegisterType((*ListTenantsResponse)(nil), "trac.metadata.ListTenantsResponse")
	golang_proto.RegisterType((*ListTenantsResponse)(nil), "trac.metadata.ListTenantsResponse")
	proto.RegisterType((*PlatformInfoRequest)(nil), "trac.metadata.PlatformInfoRequest")
	golang_proto.RegisterType((*PlatformInfoRequest)(nil), "trac.metadata.PlatformInfoRequest")
	proto.RegisterType((*PlatformInfoResponse)(nil), "trac.metadata.PlatformInfoResponse")
	golang_proto.RegisterType((*PlatformInfoResponse)(nil), "trac.metadata.PlatformInfoResponse")
}

// Reference imports to suppress errors if they are not otherwise used.
var _ context.Context
var _ grpc.ClientConn

// PublicMetadataClient is the client API for PublicMetadata service.
type PublicMetadataClient interface {
	CreateObject(ctx context.Context, in *MetadataWriteRequest, opts ...grpc.CallOption) (*TagHeader, error)
	UpdateObject(ctx context.Context, in *MetadataWriteRequest, opts ...grpc.CallOption) (*TagHeader, error)
	UpdateTag(ctx context.Context, in *MetadataWriteRequest, opts ...grpc.CallOption) (*TagHeader, error)
	ReadObject(ctx context.Context, in *MetadataReadRequest, opts ...grpc.CallOption) (*Tag, error)
	ReadBatch(ctx context.Context, in *MetadataBatchRequest, opts ...grpc.CallOption) (*MetadataBatchResponse, error)
	Search(ctx context.Context, in *MetadataSearchRequest, opts ...grpc.CallOption) (*MetadataSearchResponse, error)
	ListTenants(ctx context.Context, in *ListTenantsRequest, opts ...grpc.CallOption) (*ListTenantsResponse, error)
	PlatformInfo(ctx context.Context, in *PlatformInfoRequest, opts ...grpc.CallOption) (*PlatformInfoResponse, error)
}

type publicMetadataClient struct {
	cc *grpc.ClientConn
}

func NewPublicMetadataClient(cc *grpc.ClientConn) PublicMetadataClient {
	return &publicMetadataClient{cc}
}

func (c *publicMetadataClient) CreateObject(ctx context.Context, in *MetadataWriteRequest, opts ...grpc.CallOption) (*TagHeader, error) {
	out := new(TagHeader)
	err := c.cc.Invoke(ctx, "/trac.metadata.PublicMetadata/CreateObject", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *publicMetadataClient) UpdateObject(ctx context.Context, in *MetadataWriteRequest, opts ...grpc.CallOption) (*TagHeader, error) {
	out := new(TagHeader)
	err := c.cc.Invoke(ctx, "/trac.metadata.PublicMetadata/UpdateObject", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *publicMetadataClient) UpdateTag(ctx context.Context, in *MetadataWriteRequest, opts ...grpc.CallOption) (*TagHeader, error) {
	out := new(TagHeader)
	err := c.cc.Invoke(ctx, "/trac.metadata.PublicMetadata/UpdateTag", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *publicMetadataClient) ReadObject(ctx context.Context, in *MetadataReadRequest, opts ...grpc.CallOption) (*Tag, error) {
	out := new(Tag)
	err := c.cc.Invoke(ctx, "/trac.metadata.PublicMetadata/ReadObject", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *publicMetadataClient) ReadBatch(ctx context.Context, in *MetadataBatchRequest, opts ...grpc.CallOption) (*MetadataBatchResponse, error) {
	out := new(MetadataBatchResponse)
	err := c.cc.Invoke(ctx, "/trac.metadata.PublicMetadata/ReadBatch", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *publicMetadataClient) Search(ctx context.Context, in *MetadataSearchRequest, opts ...grpc.CallOption) (*MetadataSearchResponse, error) {
	out := new(MetadataSearchResponse)
	err := c.cc.Invoke(ctx, "/trac.metadata.PublicMetadata/Search", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *publicMetadataClient) ListTenants(ctx context.Context, in *ListTenantsRequest, opts ...grpc.CallOption) (*ListTenantsResponse, error) {
	out := new(ListTenantsResponse)
	err := c.cc.Invoke(ctx, "/trac.metadata.PublicMetadata/ListTenants", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *publicMetadataClient) PlatformInfo(ctx context.Context, in *PlatformInfoRequest, opts ...grpc.CallOption) (*PlatformInfoResponse, error) {
	out := new(PlatformInfoResponse)
	err := c.cc.Invoke(ctx, "/trac.metadata.PublicMetadata/PlatformInfo", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PublicMetadataServer is the server API for PublicMetadata service.
type PublicMetadataServer interface {
	CreateObject(context.Context, *MetadataWriteRequest) (*TagHeader, error)
	UpdateObject(context.Context, *MetadataWriteRequest) (*TagHeader, error)
	UpdateTag(context.Context, *MetadataWriteRequest) (*TagHeader, error)
	ReadObject(context.Context, *MetadataReadRequest) (*Tag, error)
	ReadBatch(context.Context, *MetadataBatchRequest) (*MetadataBatchResponse, error)
	Search(context.Context, *MetadataSearchRequest) (*MetadataSearchResponse, error)
	ListTenants(context.Context, *ListTenantsRequest) (*ListTenantsResponse, error)
	PlatformInfo(context.Context, *PlatformInfoRequest) (*PlatformInfoResponse, error)
}

func RegisterPublicMetadataServer(s *grpc.Server, srv PublicMetadataServer) {
	s.RegisterService(&_PublicMetadata_serviceDesc, srv)
}

func _PublicMetadata_CreateObject_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MetadataWriteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PublicMetadataServer).CreateObject(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/trac.metadata.PublicMetadata/CreateObject",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PublicMetadataServer).CreateObject(ctx, req.(*MetadataWriteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _PublicMetadata_UpdateObject_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MetadataWriteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PublicMetadataServer).UpdateObject(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/trac.metadata.PublicMetadata/UpdateObject",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PublicMetadataServer).UpdateObject(ctx, req.(*MetadataWriteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _PublicMetadata_UpdateTag_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MetadataWriteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PublicMetadataServer).UpdateTag(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/trac.metadata.PublicMetadata/UpdateTag",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PublicMetadataServer).UpdateTag(ctx, req.(*MetadataWriteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _PublicMetadata_ReadObject_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MetadataReadRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PublicMetadataServer).ReadObject(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/trac.metadata.PublicMetadata/ReadObject",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PublicMetadataServer).ReadObject(ctx, req.(*MetadataReadRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _PublicMetadata_ReadBatch_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MetadataBatchRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PublicMetadataServer).ReadBatch(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/trac.metadata.PublicMetadata/ReadBatch",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PublicMetadataServer).ReadBatch(ctx, req.(*MetadataBatchRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _PublicMetadata_Search_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MetadataSearchRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PublicMetadataServer).Search(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/trac.metadata.PublicMetadata/Search",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PublicMetadataServer).Search(ctx, req.(*MetadataSearchRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _PublicMetadata_ListTenants_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListTenantsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PublicMetadataServer).ListTenants(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/trac.metadata.PublicMetadata/ListTenants",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PublicMetadataServer).ListTenants(ctx, req.(*ListTenantsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _PublicMetadata_PlatformInfo_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PlatformInfoRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PublicMetadataServer).PlatformInfo(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/trac.metadata.PublicMetadata/PlatformInfo",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PublicMetadataServer).PlatformInfo(ctx, req.(*PlatformInfoRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var _PublicMetadata_serviceDesc = grpc.ServiceDesc{
	ServiceName: "trac.metadata.PublicMetadata",
	HandlerType: (*PublicMetadataServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateObject",
			Handler:    _PublicMetadata_CreateObject_Handler,
		},
		{
			MethodName: "UpdateObject",
			Handler:    _PublicMetadata_UpdateObject_Handler,
		},
		{
			MethodName: "UpdateTag",
			Handler:    _PublicMetadata_UpdateTag_Handler,
		},
		{
			MethodName: "ReadObject",
			Handler:    _PublicMetadata_ReadObject_Handler,
		},
		{
			MethodName: "ReadBatch",
			Handler:    _PublicMetadata_ReadBatch_Handler,
		},
		{
			MethodName: "Search",
			Handler:    _PublicMetadata_Search_Handler,
		},
		{
			MethodName: "ListTenants",
			Handler:    _PublicMetadata_ListTenants_Handler,
		},
		{
			MethodName: "PlatformInfo",
			Handler:    _PublicMetadata_PlatformInfo_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "metadata_api.proto",
}

// TrustedMetadataClient is the client API for TrustedMetadata service.
type TrustedMetadataClient interface {
	CreateObject(ctx context.Context, in *MetadataWriteRequest, opts ...grpc.CallOption) (*TagHeader, error)
	UpdateObject(ctx context.Context, in *MetadataWriteRequest, opts ...grpc.CallOption) (*TagHeader, error)
	UpdateTag(ctx context.Context, in *MetadataWriteRequest, opts ...grpc.CallOption) (*TagHeader, error)
	PreallocateId(ctx context.Context, in *MetadataWriteRequest, opts ...grpc.CallOption) (*TagHeader, error)
	CreatePreallocatedObject(ctx context.Context, in *MetadataWriteRequest, opts ...grpc.CallOption) (*TagHeader, error)
	WriteBatch(ctx context.Context, in *MetadataWriteBatchRequest, opts ...grpc.CallOption) (*MetadataWriteBatchResponse, error)
	ReadObject(ctx context.Context, in *MetadataReadRequest, opts ...grpc.CallOption) (*Tag, error)
	ReadBatch(ctx context.Context, in *MetadataBatchRequest, opts ...grpc.CallOption) (*MetadataBatchResponse, error)
	Search(ctx context.Context, in *MetadataSearchRequest, opts ...grpc.CallOption) (*MetadataSearchResponse, error)
	ListTenants(ctx context.Context, in *ListTenantsRequest, opts ...grpc.CallOption) (*ListTenantsResponse, error)
	PlatformInfo(ctx context.Context, in *PlatformInfoRequest, opts ...grpc.CallOption) (*PlatformInfoResponse, error)
}

type trustedMetadataClient struct {
	cc *grpc.ClientConn
}

func NewTrustedMetadataClient(cc *grpc.ClientConn) TrustedMetadataClient {
	return &trustedMetadataClient{cc}
}

func (c *trustedMetadataClient) CreateObject(ctx context.Context, in *MetadataWriteRequest, opts ...grpc.CallOption) (*TagHeader, error) {
	out := new(TagHeader)
	err := c.cc.Invoke(ctx, "/trac.metadata.TrustedMetadata/CreateObject", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trustedMetadataClient) UpdateObject(ctx context.Context, in *MetadataWriteRequest, opts ...grpc.CallOption) (*TagHeader, error) {
	out := new(TagHeader)
	err := c.cc.Invoke(ctx, "/trac.metadata.TrustedMetadata/UpdateObject", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trustedMetadataClient) UpdateTag(ctx context.Context, in *MetadataWriteRequest, opts ...grpc.CallOption) (*TagHeader, error) {
	out := new(TagHeader)
	err := c.cc.Invoke(ctx, "/trac.metadata.TrustedMetadata/UpdateTag", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trustedMetadataClient) PreallocateId(ctx context.Context, in *MetadataWriteRequest, opts ...grpc.CallOption) (*TagHeader, error) {
	out := new(TagHeader)
	err := c.cc.Invoke(ctx, "/trac.metadata.TrustedMetadata/PreallocateId", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trustedMetadataClient) CreatePreallocatedObject(ctx context.Context, in *MetadataWriteRequest, opts ...grpc.CallOption) (*TagHeader, error) {
	out := new(TagHeader)
	err := c.cc.Invoke(ctx, "/trac.metadata.TrustedMetadata/CreatePreallocatedObject", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trustedMetadataClient) WriteBatch(ctx context.Context, in *MetadataWriteBatchRequest, opts ...grpc.CallOption) (*MetadataWriteBatchResponse, error) {
	out := new(MetadataWriteBatchResponse)
	err := c.cc.Invoke(ctx, "/trac.metadata.TrustedMetadata/WriteBatch", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trustedMetadataClient) ReadObject(ctx context.Context, in *MetadataReadRequest, opts ...grpc.CallOption) (*Tag, error) {
	out := new(Tag)
	err := c.cc.Invoke(ctx, "/trac.metadata.TrustedMetadata/ReadObject", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trustedMetadataClient) ReadBatch(ctx context.Context, in *MetadataBatchRequest, opts ...grpc.CallOption) (*MetadataBatchResponse, error) {
	out := new(MetadataBatchResponse)
	err := c.cc.Invoke(ctx, "/trac.metadata.TrustedMetadata/ReadBatch", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trustedMetadataClient) Search(ctx context.Context, in *MetadataSearchRequest, opts ...grpc.CallOption) (*MetadataSearchResponse, error) {
	out := new(MetadataSearchResponse)
	err := c.cc.Invoke(ctx, "/trac.metadata.TrustedMetadata/Search", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trustedMetadataClient) ListTenants(ctx context.Context, in *ListTenantsRequest, opts ...grpc.CallOption) (*ListTenantsResponse, error) {
	out := new(ListTenantsResponse)
	err := c.cc.Invoke(ctx, "/trac.metadata.TrustedMetadata/ListTenants", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trustedMetadataClient) PlatformInfo(ctx context.Context, in *PlatformInfoRequest, opts ...grpc.CallOption) (*PlatformInfoResponse, error) {
	out := new(PlatformInfoResponse)
	err := c.cc.Invoke(ctx, "/trac.metadata.TrustedMetadata/PlatformInfo", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// TrustedMetadataServer is the server API for TrustedMetadata service.
type TrustedMetadataServer interface {
	CreateObject(context.Context, *MetadataWriteRequest) (*TagHeader, error)
	UpdateObject(context.Context, *MetadataWriteRequest) (*TagHeader, error)
	UpdateTag(context.Context, *MetadataWriteRequest) (*TagHeader, error)
	PreallocateId(context.Context, *MetadataWriteRequest) (*TagHeader, error)
	CreatePreallocatedObject(context.Context, *MetadataWriteRequest) (*TagHeader, error)
	WriteBatch(context.Context, *MetadataWriteBatchRequest) (*MetadataWriteBatchResponse, error)
	ReadObject(context.Context, *MetadataReadRequest) (*Tag, error)
	ReadBatch(context.Context, *MetadataBatchRequest) (*MetadataBatchResponse, error)
	Search(context.Context, *MetadataSearchRequest) (*MetadataSearchResponse, error)
	ListTenants(context.Context, *ListTenantsRequest) (*ListTenantsResponse, error)
	PlatformInfo(context.Context, *PlatformInfoRequest) (*PlatformInfoResponse, error)
}

func RegisterTrustedMetadataServer(s *grpc.Server, srv TrustedMetadataServer) {
	s.RegisterService(&_TrustedMetadata_serviceDesc, srv)
}

func _TrustedMetadata_CreateObject_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MetadataWriteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TrustedMetadataServer).CreateObject(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/trac.metadata.TrustedMetadata/CreateObject",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TrustedMetadataServer).CreateObject(ctx, req.(*MetadataWriteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TrustedMetadata_UpdateObject_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MetadataWriteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TrustedMetadataServer).UpdateObject(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/trac.metadata.TrustedMetadata/UpdateObject",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TrustedMetadataServer).UpdateObject(ctx, req.(*MetadataWriteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TrustedMetadata_UpdateTag_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MetadataWriteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TrustedMetadataServer).UpdateTag(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/trac.metadata.TrustedMetadata/UpdateTag",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TrustedMetadataServer).UpdateTag(ctx, req.(*MetadataWriteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TrustedMetadata_PreallocateId_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MetadataWriteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TrustedMetadataServer).PreallocateId(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/trac.metadata.TrustedMetadata/PreallocateId",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TrustedMetadataServer).PreallocateId(ctx, req.(*MetadataWriteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TrustedMetadata_CreatePreallocatedObject_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MetadataWriteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TrustedMetadataServer).CreatePreallocatedObject(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/trac.metadata.TrustedMetadata/CreatePreallocatedObject",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TrustedMetadataServer).CreatePreallocatedObject(ctx, req.(*MetadataWriteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TrustedMetadata_WriteBatch_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MetadataWriteBatchRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TrustedMetadataServer).WriteBatch(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/trac.metadata.TrustedMetadata/WriteBatch",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TrustedMetadataServer).WriteBatch(ctx, req.(*MetadataWriteBatchRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TrustedMetadata_ReadObject_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MetadataReadRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TrustedMetadataServer).ReadObject(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/trac.metadata.TrustedMetadata/ReadObject",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TrustedMetadataServer).ReadObject(ctx, req.(*MetadataReadRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TrustedMetadata_ReadBatch_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MetadataBatchRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TrustedMetadataServer).ReadBatch(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/trac.metadata.TrustedMetadata/ReadBatch",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TrustedMetadataServer).ReadBatch(ctx, req.(*MetadataBatchRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TrustedMetadata_Search_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MetadataSearchRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TrustedMetadataServer).Search(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/trac.metadata.TrustedMetadata/Search",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TrustedMetadataServer).Search(ctx, req.(*MetadataSearchRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TrustedMetadata_ListTenants_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListTenantsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TrustedMetadataServer).ListTenants(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/trac.metadata.TrustedMetadata/ListTenants",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TrustedMetadataServer).ListTenants(ctx, req.(*ListTenantsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TrustedMetadata_PlatformInfo_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PlatformInfoRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TrustedMetadataServer).PlatformInfo(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/trac.metadata.TrustedMetadata/PlatformInfo",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TrustedMetadataServer).PlatformInfo(ctx, req.(*PlatformInfoRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var _TrustedMetadata_serviceDesc = grpc.ServiceDesc{
	ServiceName: "trac.metadata.TrustedMetadata",
	HandlerType: (*TrustedMetadataServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateObject",
			Handler:    _TrustedMetadata_CreateObject_Handler,
		},
		{
			MethodName: "UpdateObject",
			Handler:    _TrustedMetadata_UpdateObject_Handler,
		},
		{
			MethodName: "UpdateTag",
			Handler:    _TrustedMetadata_UpdateTag_Handler,
		},
		{
			MethodName: "PreallocateId",
			Handler:    _TrustedMetadata_PreallocateId_Handler,
		},
		{
			MethodName: "CreatePreallocatedObject",
			Handler:    _TrustedMetadata_CreatePreallocatedObject_Handler,
		},
		{
			MethodName: "WriteBatch",
			Handler:    _TrustedMetadata_WriteBatch_Handler,
		},
		{
			MethodName: "ReadObject",
			Handler:    _TrustedMetadata_ReadObject_Handler,
		},
		{
			MethodName: "ReadBatch",
			Handler:    _TrustedMetadata_ReadBatch_Handler,
		},
		{
			MethodName: "Search",
			Handler:    _TrustedMetadata_Search_Handler,
		},
		{
			MethodName: "ListTenants",
			Handler:    _TrustedMetadata_ListTenants_Handler,
		},
		{
			MethodName: "PlatformInfo",
			Handler:    _TrustedMetadata_PlatformInfo_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "metadata_api.proto",
}
