// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package restapi

import (
	"context"
	"net/http"

	"github.com/gogo/protobuf/proto"
	"google.golang.org/grpc"

	"trac.io/trac/pkg/pb"
)

// MetadataMethods is the REST surface of the metadata service,
// mounted under /trac-meta.
func MetadataMethods() []Method {
	return []Method{
		{
			HTTPMethod: http.MethodPost,
			Template:   MustParseTemplate("/trac-meta/api/v1/{tenant}/create-object"),
			NewRequest: func() proto.Message { return &pb.MetadataWriteRequest{} },
			Invoke: func(ctx context.Context, conn *grpc.ClientConn, req proto.Message) (proto.Message, error) {
				return pb.NewPublicMetadataClient(conn).CreateObject(ctx, req.(*pb.MetadataWriteRequest))
			},
		},
		{
			HTTPMethod: http.MethodPost,
			Template:   MustParseTemplate("/trac-meta/api/v1/{tenant}/update-object"),
			NewRequest: func() proto.Message { return &pb.MetadataWriteRequest{} },
			Invoke: func(ctx context.Context, conn *grpc.ClientConn, req proto.Message) (proto.Message, error) {
				return pb.NewPublicMetadataClient(conn).UpdateObject(ctx, req.(*pb.MetadataWriteRequest))
			},
		},
		{
			HTTPMethod: http.MethodPost,
			Template:   MustParseTemplate("/trac-meta/api/v1/{tenant}/update-tag"),
			NewRequest: func() proto.Message { return &pb.MetadataWriteRequest{} },
			Invoke: func(ctx context.Context, conn *grpc.ClientConn, req proto.Message) (proto.Message, error) {
				return pb.NewPublicMetadataClient(conn).UpdateTag(ctx, req.(*pb.MetadataWriteRequest))
			},
		},
		{
			HTTPMethod: http.MethodGet,
			Template:   MustParseTemplate("/trac-meta/api/v1/{tenant}/read-object/{selector.objectType}/{selector.objectId}"),
			NewRequest: func() proto.Message { return &pb.MetadataReadRequest{} },
			Invoke: func(ctx context.Context, conn *grpc.ClientConn, req proto.Message) (proto.Message, error) {
				return pb.NewPublicMetadataClient(conn).ReadObject(ctx, req.(*pb.MetadataReadRequest))
			},
		},
		{
			HTTPMethod: http.MethodGet,
			Template:   MustParseTemplate("/trac-meta/api/v1/{tenant}/read-object/{selector.objectType}/{selector.objectId}/versions/{selector.objectVersion}"),
			NewRequest: func() proto.Message { return &pb.MetadataReadRequest{} },
			Invoke: func(ctx context.Context, conn *grpc.ClientConn, req proto.Message) (proto.Message, error) {
				return pb.NewPublicMetadataClient(conn).ReadObject(ctx, req.(*pb.MetadataReadRequest))
			},
		},
		{
			HTTPMethod: http.MethodPost,
			Template:   MustParseTemplate("/trac-meta/api/v1/{tenant}/read-batch"),
			NewRequest: func() proto.Message { return &pb.MetadataBatchRequest{} },
			Invoke: func(ctx context.Context, conn *grpc.ClientConn, req proto.Message) (proto.Message, error) {
				return pb.NewPublicMetadataClient(conn).ReadBatch(ctx, req.(*pb.MetadataBatchRequest))
			},
		},
		{
			HTTPMethod: http.MethodPost,
			Template:   MustParseTemplate("/trac-meta/api/v1/{tenant}/search"),
			NewRequest: func() proto.Message { return &pb.MetadataSearchRequest{} },
			Invoke: func(ctx context.Context, conn *grpc.ClientConn, req proto.Message) (proto.Message, error) {
				return pb.NewPublicMetadataClient(conn).Search(ctx, req.(*pb.MetadataSearchRequest))
			},
		},
		{
			HTTPMethod: http.MethodPost,
			Template:   MustParseTemplate("/trac-meta/api/v1/{tenant}/preallocate-id"),
			NewRequest: func() proto.Message { return &pb.MetadataWriteRequest{} },
			Invoke: func(ctx context.Context, conn *grpc.ClientConn, req proto.Message) (proto.Message, error) {
				return pb.NewTrustedMetadataClient(conn).PreallocateId(ctx, req.(*pb.MetadataWriteRequest))
			},
		},
		{
			HTTPMethod: http.MethodPost,
			Template:   MustParseTemplate("/trac-meta/api/v1/{tenant}/create-preallocated-object"),
			NewRequest: func() proto.Message { return &pb.MetadataWriteRequest{} },
			Invoke: func(ctx context.Context, conn *grpc.ClientConn, req proto.Message) (proto.Message, error) {
				return pb.NewTrustedMetadataClient(conn).CreatePreallocatedObject(ctx, req.(*pb.MetadataWriteRequest))
			},
		},
		{
			HTTPMethod: http.MethodGet,
			Template:   MustParseTemplate("/trac-meta/api/v1/list-tenants"),
			NewRequest: func() proto.Message { return &pb.ListTenantsRequest{} },
			Invoke: func(ctx context.Context, conn *grpc.ClientConn, req proto.Message) (proto.Message, error) {
				return pb.NewPublicMetadataClient(conn).ListTenants(ctx, req.(*pb.ListTenantsRequest))
			},
		},
		{
			HTTPMethod: http.MethodGet,
			Template:   MustParseTemplate("/trac-meta/api/v1/platform-info"),
			NewRequest: func() proto.Message { return &pb.PlatformInfoRequest{} },
			Invoke: func(ctx context.Context, conn *grpc.ClientConn, req proto.Message) (proto.Message, error) {
				return pb.NewPublicMetadataClient(conn).PlatformInfo(ctx, req.(*pb.PlatformInfoRequest))
			},
		},
	}
}

// OrchestratorMethods is the REST surface of the orchestrator,
// mounted under /trac-orch.
func OrchestratorMethods() []Method {
	return []Method{
		{
			HTTPMethod: http.MethodPost,
			Template:   MustParseTemplate("/trac-orch/api/v1/{tenant}/submit-job"),
			NewRequest: func() proto.Message { return &pb.JobRequest{} },
			Invoke: func(ctx context.Context, conn *grpc.ClientConn, req proto.Message) (proto.Message, error) {
				return pb.NewOrchestratorClient(conn).SubmitJob(ctx, req.(*pb.JobRequest))
			},
		},
		{
			HTTPMethod: http.MethodGet,
			Template:   MustParseTemplate("/trac-orch/api/v1/{tenant}/check-job/{selector.objectId}"),
			NewRequest: func() proto.Message { return &pb.JobStatusRequest{} },
			Invoke: func(ctx context.Context, conn *grpc.ClientConn, req proto.Message) (proto.Message, error) {
				return pb.NewOrchestratorClient(conn).CheckJob(ctx, req.(*pb.JobStatusRequest))
			},
		},
		{
			HTTPMethod: http.MethodPost,
			Template:   MustParseTemplate("/trac-orch/api/v1/{tenant}/query-jobs"),
			NewRequest: func() proto.Message { return &pb.JobQueryRequest{} },
			Invoke: func(ctx context.Context, conn *grpc.ClientConn, req proto.Message) (proto.Message, error) {
				return pb.NewOrchestratorClient(conn).QueryJobs(ctx, req.(*pb.JobQueryRequest))
			},
		},
		{
			HTTPMethod: http.MethodPost,
			Template:   MustParseTemplate("/trac-orch/api/v1/{tenant}/cancel-job/{selector.objectId}"),
			NewRequest: func() proto.Message { return &pb.JobStatusRequest{} },
			Invoke: func(ctx context.Context, conn *grpc.ClientConn, req proto.Message) (proto.Message, error) {
				return pb.NewOrchestratorClient(conn).CancelJob(ctx, req.(*pb.JobStatusRequest))
			},
		},
	}
}
