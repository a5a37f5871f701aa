// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package endpoint_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"

	"trac.io/trac/internal/testcontext"
	"trac.io/trac/orchestrator/endpoint"
	"trac.io/trac/orchestrator/jobcache"
	"trac.io/trac/pkg/pb"
	"trac.io/trac/pkg/trac"
	"trac.io/trac/storage/teststore"
)

// recordingMetadata serves just enough of the trusted api for the
// endpoint: object creation and result lookup.
type recordingMetadata struct {
	mu      sync.Mutex
	created []*pb.MetadataWriteRequest
	results map[string]*pb.ResultDefinition
}

func newRecordingMetadata() *recordingMetadata {
	return &recordingMetadata{results: map[string]*pb.ResultDefinition{}}
}

func (rec *recordingMetadata) CreateObject(ctx context.Context, in *pb.MetadataWriteRequest, opts ...grpc.CallOption) (*pb.TagHeader, error) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.created = append(rec.created, in)
	id, err := trac.NewObjectID()
	if err != nil {
		return nil, err
	}
	return &pb.TagHeader{
		ObjectType:    in.ObjectType,
		ObjectId:      id.String(),
		ObjectVersion: 1,
		TagVersion:    1,
	}, nil
}

func (rec *recordingMetadata) ReadObject(ctx context.Context, in *pb.MetadataReadRequest, opts ...grpc.CallOption) (*pb.Tag, error) {
	return nil, trac.ErrNotFound.New("object %q", in.Selector.GetObjectId())
}

func (rec *recordingMetadata) Search(ctx context.Context, in *pb.MetadataSearchRequest, opts ...grpc.CallOption) (*pb.MetadataSearchResponse, error) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	jobID := in.SearchParams.GetSearch().GetTerm().GetSearchValue().GetStringValue()
	result, ok := rec.results[jobID]
	if !ok {
		return &pb.MetadataSearchResponse{}, nil
	}
	return &pb.MetadataSearchResponse{
		SearchResult: []*pb.Tag{{
			Header:     &pb.TagHeader{ObjectType: pb.ObjectType_RESULT},
			Definition: &pb.ObjectDefinition{Result: result},
		}},
	}, nil
}

func newTestEndpoint(t *testing.T) (*endpoint.Endpoint, *jobcache.Cache, *recordingMetadata) {
	cache := jobcache.New(zaptest.NewLogger(t), teststore.New())
	meta := newRecordingMetadata()
	return endpoint.New(zaptest.NewLogger(t), cache, meta), cache, meta
}

func submitRequest() *pb.JobRequest {
	return &pb.JobRequest{
		Tenant: "acme_corp",
		Job: &pb.JobDefinition{
			JobType: "RUN_MODEL",
			Target: &pb.TagSelector{
				ObjectType:   pb.ObjectType_MODEL,
				ObjectId:     "00000000-0000-0000-0000-000000000001",
				LatestObject: true,
				LatestTag:    true,
			},
		},
		JobAttrs: []*pb.TagUpdate{
			{AttrName: "project", Value: trac.String("churn")},
		},
	}
}

func TestSubmitJob(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()
	api, cache, meta := newTestEndpoint(t)
	defer ctx.Check(cache.Close)

	status, err := api.SubmitJob(ctx, submitRequest())
	require.NoError(t, err)
	require.Equal(t, pb.JobStatusCode_CREATED, status.StatusCode)
	require.NotEmpty(t, status.JobId.ObjectId)

	// the JOB object was recorded with the client attrs
	require.Len(t, meta.created, 1)
	require.Equal(t, pb.ObjectType_JOB, meta.created[0].ObjectType)
	require.Len(t, meta.created[0].TagUpdates, 1)

	// the cache entry is ready for the manager, no ticket held
	entry, err := cache.GetLatestEntry(ctx, status.JobId.ObjectId)
	require.NoError(t, err)
	require.Equal(t, pb.JobStatusCode_CREATED.String(), entry.Status)
	ticket, err := cache.OpenTicket(ctx, status.JobId.ObjectId, entry.Revision, 0)
	require.NoError(t, err)
	require.False(t, ticket.Superseded())
	require.NoError(t, cache.CloseTicket(ctx, ticket))
}

func TestSubmitJobValidation(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()
	api, cache, _ := newTestEndpoint(t)
	defer ctx.Check(cache.Close)

	_, err := api.SubmitJob(ctx, &pb.JobRequest{Job: &pb.JobDefinition{}})
	require.True(t, trac.ErrInvalidInput.Has(err))

	_, err = api.SubmitJob(ctx, &pb.JobRequest{Tenant: "acme_corp"})
	require.True(t, trac.ErrInvalidInput.Has(err))
}

func TestCheckJobLive(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()
	api, cache, _ := newTestEndpoint(t)
	defer ctx.Check(cache.Close)

	submitted, err := api.SubmitJob(ctx, submitRequest())
	require.NoError(t, err)

	status, err := api.CheckJob(ctx, &pb.JobStatusRequest{
		Tenant:   "acme_corp",
		Selector: &pb.TagSelector{ObjectType: pb.ObjectType_JOB, ObjectId: submitted.JobId.ObjectId},
	})
	require.NoError(t, err)
	require.Equal(t, pb.JobStatusCode_CREATED, status.StatusCode)
}

func TestCheckJobFinished(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()
	api, cache, meta := newTestEndpoint(t)
	defer ctx.Check(cache.Close)

	id, err := trac.NewObjectID()
	require.NoError(t, err)
	meta.results[id.String()] = &pb.ResultDefinition{
		JobId:         id.String(),
		StatusCode:    pb.JobStatusCode_COMPLETED,
		StatusMessage: "",
	}

	status, err := api.CheckJob(ctx, &pb.JobStatusRequest{
		Tenant:   "acme_corp",
		Selector: &pb.TagSelector{ObjectType: pb.ObjectType_JOB, ObjectId: id.String()},
	})
	require.NoError(t, err)
	require.Equal(t, pb.JobStatusCode_COMPLETED, status.StatusCode)
}

func TestCheckJobUnknown(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()
	api, cache, _ := newTestEndpoint(t)
	defer ctx.Check(cache.Close)

	id, err := trac.NewObjectID()
	require.NoError(t, err)
	_, err = api.CheckJob(ctx, &pb.JobStatusRequest{
		Tenant:   "acme_corp",
		Selector: &pb.TagSelector{ObjectType: pb.ObjectType_JOB, ObjectId: id.String()},
	})
	require.True(t, trac.ErrNotFound.Has(err))
}

func TestQueryJobs(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()
	api, cache, _ := newTestEndpoint(t)
	defer ctx.Check(cache.Close)

	first, err := api.SubmitJob(ctx, submitRequest())
	require.NoError(t, err)
	second, err := api.SubmitJob(ctx, submitRequest())
	require.NoError(t, err)

	other := submitRequest()
	other.Tenant = "other_corp"
	_, err = api.SubmitJob(ctx, other)
	require.NoError(t, err)

	response, err := api.QueryJobs(ctx, &pb.JobQueryRequest{Tenant: "acme_corp"})
	require.NoError(t, err)
	require.Len(t, response.Jobs, 2)

	ids := []string{response.Jobs[0].JobId.ObjectId, response.Jobs[1].JobId.ObjectId}
	require.ElementsMatch(t, []string{first.JobId.ObjectId, second.JobId.ObjectId}, ids)

	// narrowing to a status the jobs are not in finds nothing
	response, err = api.QueryJobs(ctx, &pb.JobQueryRequest{
		Tenant:   "acme_corp",
		Statuses: []pb.JobStatusCode{pb.JobStatusCode_RUNNING},
	})
	require.NoError(t, err)
	require.Empty(t, response.Jobs)
}

func TestCancelJob(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()
	api, cache, _ := newTestEndpoint(t)
	defer ctx.Check(cache.Close)

	submitted, err := api.SubmitJob(ctx, submitRequest())
	require.NoError(t, err)
	req := &pb.JobStatusRequest{
		Tenant:   "acme_corp",
		Selector: &pb.TagSelector{ObjectType: pb.ObjectType_JOB, ObjectId: submitted.JobId.ObjectId},
	}

	status, err := api.CancelJob(ctx, req)
	require.NoError(t, err)
	require.Equal(t, "cancellation pending", status.StatusMessage)

	// repeated cancel is a no-op
	status, err = api.CancelJob(ctx, req)
	require.NoError(t, err)
	require.Equal(t, "cancellation pending", status.StatusMessage)

	// cancelling a job that is not live 404s
	id, err := trac.NewObjectID()
	require.NoError(t, err)
	_, err = api.CancelJob(ctx, &pb.JobStatusRequest{
		Tenant:   "acme_corp",
		Selector: &pb.TagSelector{ObjectType: pb.ObjectType_JOB, ObjectId: id.String()},
	})
	require.True(t, trac.ErrNotFound.Has(err))
}
