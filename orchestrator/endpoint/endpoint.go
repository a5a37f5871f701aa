// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// Package endpoint implements the orchestrator grpc api. Submitted
// jobs are recorded in metadata first and seeded into the job cache,
// which the manager loop drains.
package endpoint

import (
	"context"

	"github.com/gogo/protobuf/proto"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
	monkit "gopkg.in/spacemonkeygo/monkit.v2"

	"trac.io/trac/orchestrator/jobcache"
	"trac.io/trac/orchestrator/jobs"
	"trac.io/trac/pkg/pb"
	"trac.io/trac/pkg/trac"
)

var (
	mon = monkit.Package()

	// Error is the orchestrator endpoint error class.
	Error = errs.Class("orchestrator endpoint")
)

// resultJobIDAttr mirrors the attribute the job processor stamps on
// RESULT objects.
const resultJobIDAttr = "job_id"

// Endpoint implements pb.OrchestratorServer.
type Endpoint struct {
	log      *zap.Logger
	cache    *jobcache.Cache
	metadata jobs.Metadata
}

// New creates an orchestrator endpoint.
func New(log *zap.Logger, cache *jobcache.Cache, metadata jobs.Metadata) *Endpoint {
	return &Endpoint{log: log, cache: cache, metadata: metadata}
}

// SubmitJob records the job as a metadata JOB object and seeds the
// cache entry the manager loop picks up. It returns once the job is
// durable, not once it runs.
func (endpoint *Endpoint) SubmitJob(ctx context.Context, req *pb.JobRequest) (_ *pb.JobStatus, err error) {
	defer mon.Task()(&ctx)(&err)

	if req.Tenant == "" {
		return nil, trac.ErrInvalidInput.New("no tenant")
	}
	if req.Job == nil {
		return nil, trac.ErrInvalidInput.New("no job definition")
	}

	header, err := endpoint.metadata.CreateObject(ctx, &pb.MetadataWriteRequest{
		Tenant:     req.Tenant,
		ObjectType: pb.ObjectType_JOB,
		Definition: &pb.ObjectDefinition{Job: req.Job},
		TagUpdates: req.JobAttrs,
	})
	if err != nil {
		return nil, err
	}

	state := &pb.JobState{
		Tenant:     req.Tenant,
		JobId:      header,
		JobDef:     req.Job,
		StatusCode: pb.JobStatusCode_CREATED,
	}
	data, err := proto.Marshal(state)
	if err != nil {
		return nil, Error.Wrap(err)
	}

	ticket, err := endpoint.cache.OpenNewTicket(ctx, header.ObjectId, 0)
	if err != nil {
		return nil, err
	}
	if ticket.Superseded() {
		return nil, trac.ErrAlreadyExists.New("job %s", header.ObjectId)
	}
	if _, err := endpoint.cache.AddEntry(ctx, ticket, state.StatusCode.String(), data); err != nil {
		return nil, err
	}
	if err := endpoint.cache.CloseTicket(ctx, ticket); err != nil {
		return nil, err
	}

	endpoint.log.Info("job submitted",
		zap.String("tenant", req.Tenant),
		zap.String("jobId", header.ObjectId),
		zap.String("jobType", req.Job.JobType))

	return &pb.JobStatus{JobId: header, StatusCode: pb.JobStatusCode_CREATED}, nil
}

// CheckJob reports where a job is. Live jobs answer from the cache,
// finished jobs from their RESULT object in metadata.
func (endpoint *Endpoint) CheckJob(ctx context.Context, req *pb.JobStatusRequest) (_ *pb.JobStatus, err error) {
	defer mon.Task()(&ctx)(&err)

	jobID, err := jobKey(req)
	if err != nil {
		return nil, err
	}

	entry, err := endpoint.cache.GetLatestEntry(ctx, jobID)
	if err == nil {
		state := &pb.JobState{}
		if err := proto.Unmarshal(entry.Value, state); err != nil {
			return nil, Error.Wrap(err)
		}
		return &pb.JobStatus{
			JobId:         state.JobId,
			StatusCode:    state.StatusCode,
			StatusMessage: state.StatusMessage,
		}, nil
	}
	if !trac.ErrCacheNotFound.Has(err) {
		return nil, err
	}

	return endpoint.finishedStatus(ctx, req.Tenant, jobID)
}

// QueryJobs lists live jobs in the requested statuses for one tenant.
func (endpoint *Endpoint) QueryJobs(ctx context.Context, req *pb.JobQueryRequest) (_ *pb.JobQueryResponse, err error) {
	defer mon.Task()(&ctx)(&err)

	if req.Tenant == "" {
		return nil, trac.ErrInvalidInput.New("no tenant")
	}
	statuses := make([]string, 0, len(req.Statuses))
	for _, code := range req.Statuses {
		statuses = append(statuses, code.String())
	}
	if len(statuses) == 0 {
		statuses = append(statuses,
			pb.JobStatusCode_CREATED.String(),
			pb.JobStatusCode_VALIDATED.String(),
			pb.JobStatusCode_QUEUED.String(),
			pb.JobStatusCode_SUBMITTED.String(),
			pb.JobStatusCode_RUNNING.String(),
			pb.JobStatusCode_FINISHING.String())
	}

	entries, err := endpoint.cache.QueryStatus(ctx, statuses, true)
	if err != nil {
		return nil, err
	}

	response := &pb.JobQueryResponse{}
	for _, entry := range entries {
		state := &pb.JobState{}
		if err := proto.Unmarshal(entry.Value, state); err != nil {
			return nil, Error.Wrap(err)
		}
		if state.Tenant != req.Tenant {
			continue
		}
		response.Jobs = append(response.Jobs, &pb.JobStatus{
			JobId:         state.JobId,
			StatusCode:    state.StatusCode,
			StatusMessage: state.StatusMessage,
		})
	}
	return response, nil
}

// CancelJob flags a live job for cancellation. The manager performs
// the actual transition on its next pass.
func (endpoint *Endpoint) CancelJob(ctx context.Context, req *pb.JobStatusRequest) (_ *pb.JobStatus, err error) {
	defer mon.Task()(&ctx)(&err)

	jobID, err := jobKey(req)
	if err != nil {
		return nil, err
	}

	entry, err := endpoint.cache.GetLatestEntry(ctx, jobID)
	if trac.ErrCacheNotFound.Has(err) {
		return nil, trac.ErrNotFound.New("job %s is not running", jobID)
	}
	if err != nil {
		return nil, err
	}

	state := &pb.JobState{}
	if err := proto.Unmarshal(entry.Value, state); err != nil {
		return nil, Error.Wrap(err)
	}
	if state.CancelRequested {
		return &pb.JobStatus{
			JobId:         state.JobId,
			StatusCode:    state.StatusCode,
			StatusMessage: "cancellation pending",
		}, nil
	}

	ticket, err := endpoint.cache.OpenTicket(ctx, jobID, entry.Revision, 0)
	if err != nil {
		return nil, err
	}
	if ticket.Missing() {
		return nil, trac.ErrNotFound.New("job %s is not running", jobID)
	}
	if ticket.Superseded() {
		return nil, trac.ErrCacheTicket.New("job %s is busy, retry", jobID)
	}
	defer func() {
		if closeErr := endpoint.cache.CloseTicket(ctx, ticket); closeErr != nil {
			endpoint.log.Warn("ticket close failed", zap.Error(closeErr))
		}
	}()

	state.CancelRequested = true
	data, err := proto.Marshal(state)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	if _, err := endpoint.cache.UpdateEntry(ctx, ticket, state.StatusCode.String(), data); err != nil {
		return nil, err
	}

	return &pb.JobStatus{
		JobId:         state.JobId,
		StatusCode:    state.StatusCode,
		StatusMessage: "cancellation pending",
	}, nil
}

// finishedStatus reconstructs the status of a job whose cache entry is
// gone from its RESULT object.
func (endpoint *Endpoint) finishedStatus(ctx context.Context, tenant, jobID string) (*pb.JobStatus, error) {
	found, err := endpoint.metadata.Search(ctx, &pb.MetadataSearchRequest{
		Tenant: tenant,
		SearchParams: &pb.SearchParameters{
			ObjectType: pb.ObjectType_RESULT,
			Search: &pb.SearchExpression{
				Term: &pb.SearchTerm{
					AttrName:    resultJobIDAttr,
					AttrType:    pb.BasicType_STRING,
					Operator:    pb.SearchOperator_EQ,
					SearchValue: trac.String(jobID),
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(found.SearchResult) == 0 {
		// fall back to the JOB object so a missing job 404s cleanly
		tag, err := endpoint.metadata.ReadObject(ctx, &pb.MetadataReadRequest{
			Tenant: tenant,
			Selector: &pb.TagSelector{
				ObjectType:   pb.ObjectType_JOB,
				ObjectId:     jobID,
				LatestObject: true,
				LatestTag:    true,
			},
		})
		if err != nil {
			return nil, err
		}
		return &pb.JobStatus{
			JobId:         tag.Header,
			StatusCode:    pb.JobStatusCode_JOB_STATUS_NOT_SET,
			StatusMessage: "job has no active record",
		}, nil
	}

	result := found.SearchResult[0].Definition.GetResult()
	if result == nil {
		return nil, Error.New("result object for job %s has no result definition", jobID)
	}
	return &pb.JobStatus{
		JobId: &pb.TagHeader{
			ObjectType: pb.ObjectType_JOB,
			ObjectId:   jobID,
		},
		StatusCode:    result.StatusCode,
		StatusMessage: result.StatusMessage,
	}, nil
}

func jobKey(req *pb.JobStatusRequest) (string, error) {
	if req.Tenant == "" {
		return "", trac.ErrInvalidInput.New("no tenant")
	}
	if req.Selector.GetObjectId() == "" {
		return "", trac.ErrInvalidInput.New("no job selector")
	}
	if _, err := trac.ObjectIDFromString(req.Selector.ObjectId); err != nil {
		return "", trac.ErrInvalidInput.New("bad job id: %v", err)
	}
	return req.Selector.ObjectId, nil
}
