// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// Package jobs drives submitted jobs through their lifecycle. The
// processor advances one job exactly one transition per step, the
// manager scans the cache and feeds jobs to the processor under
// tickets.
package jobs

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	monkit "gopkg.in/spacemonkeygo/monkit.v2"

	"trac.io/trac/orchestrator/executor"
	"trac.io/trac/pkg/pb"
	"trac.io/trac/pkg/trac"
)

var (
	mon = monkit.Package()

	// Error is the jobs error class.
	Error = errs.Class("jobs")
)

// resultJobIDAttr links a RESULT object back to its JOB object so
// finished jobs stay findable after their cache entry is dropped.
const resultJobIDAttr = "job_id"

// Metadata is the slice of the trusted metadata api the processor
// needs. Satisfied by pb.TrustedMetadataClient.
type Metadata interface {
	CreateObject(ctx context.Context, in *pb.MetadataWriteRequest, opts ...grpc.CallOption) (*pb.TagHeader, error)
	ReadObject(ctx context.Context, in *pb.MetadataReadRequest, opts ...grpc.CallOption) (*pb.Tag, error)
	Search(ctx context.Context, in *pb.MetadataSearchRequest, opts ...grpc.CallOption) (*pb.MetadataSearchResponse, error)
}

// Processor advances one job state a single transition at a time.
// Every step is safe to repeat: callers guard writes with a cache
// ticket and the executor handle makes runtime calls idempotent.
type Processor struct {
	log      *zap.Logger
	metadata Metadata
	exec     executor.Executor
	backoff  executor.Backoff

	now func() time.Time
}

// NewProcessor creates a processor.
func NewProcessor(log *zap.Logger, metadata Metadata, exec executor.Executor) *Processor {
	return &Processor{
		log:      log,
		metadata: metadata,
		exec:     exec,
		now:      time.Now,
	}
}

// TestingSetNow overrides the clock.
func (proc *Processor) TestingSetNow(now func() time.Time) { proc.now = now }

// Step runs one transition on state, mutating it in place. It returns
// true once the job is terminal and its result is durably recorded in
// metadata, meaning the cache entry can be dropped. A returned error
// leaves state untouched for a later retry.
func (proc *Processor) Step(ctx context.Context, state *pb.JobState) (remove bool, err error) {
	defer mon.Task()(&ctx)(&err)

	if state.CancelRequested {
		return proc.stepCancel(ctx, state)
	}

	switch state.StatusCode {
	case pb.JobStatusCode_CREATED:
		return proc.stepValidate(ctx, state)
	case pb.JobStatusCode_VALIDATED:
		return proc.stepResolve(ctx, state)
	case pb.JobStatusCode_QUEUED:
		return proc.stepSubmit(ctx, state)
	case pb.JobStatusCode_SUBMITTED, pb.JobStatusCode_RUNNING:
		return proc.stepPoll(ctx, state)
	case pb.JobStatusCode_FINISHING:
		return proc.stepFinish(ctx, state)
	case pb.JobStatusCode_COMPLETED, pb.JobStatusCode_FAILED, pb.JobStatusCode_CANCELLED:
		// terminal state with the entry still around: the result write
		// went through earlier, just confirm removal
		return true, nil
	}
	return false, Error.New("job %s in unknown status %v", state.JobId.GetObjectId(), state.StatusCode)
}

// Timeout marks a stalled job failed. The manager calls this from the
// watchdog when an entry stops making progress.
func (proc *Processor) Timeout(ctx context.Context, state *pb.JobState, stalled time.Duration) (remove bool, err error) {
	defer mon.Task()(&ctx)(&err)
	if state.ExecutorState != nil {
		_ = proc.exec.Cancel(ctx, executor.State(state.ExecutorState))
	}
	return proc.finalize(ctx, state, pb.JobStatusCode_FAILED,
		Error.New("lost: no progress for %v", stalled).Error())
}

func (proc *Processor) stepCancel(ctx context.Context, state *pb.JobState) (bool, error) {
	switch state.StatusCode {
	case pb.JobStatusCode_SUBMITTED, pb.JobStatusCode_RUNNING, pb.JobStatusCode_FINISHING:
		if err := proc.exec.Cancel(ctx, executor.State(state.ExecutorState)); err != nil {
			return proc.transient(ctx, state, err)
		}
	}
	return proc.finalize(ctx, state, pb.JobStatusCode_CANCELLED, "cancelled on request")
}

// stepValidate checks the job semantically against metadata: the
// definition must be well formed and the target must exist with a
// runnable type.
func (proc *Processor) stepValidate(ctx context.Context, state *pb.JobState) (bool, error) {
	def := state.JobDef
	if def == nil || def.JobType == "" {
		return proc.finalize(ctx, state, pb.JobStatusCode_FAILED, "job definition has no job type")
	}
	if def.Target == nil {
		return proc.finalize(ctx, state, pb.JobStatusCode_FAILED, "job definition has no target")
	}
	if err := trac.ValidateSelector(def.Target); err != nil {
		return proc.finalize(ctx, state, pb.JobStatusCode_FAILED, "invalid target: "+err.Error())
	}
	for name, selector := range def.Inputs {
		if err := trac.ValidateSelector(selector); err != nil {
			return proc.finalize(ctx, state, pb.JobStatusCode_FAILED,
				"invalid input "+name+": "+err.Error())
		}
	}

	target, err := proc.metadata.ReadObject(ctx, &pb.MetadataReadRequest{
		Tenant:   state.Tenant,
		Selector: def.Target,
	})
	if err != nil {
		if notFound(err) {
			return proc.finalize(ctx, state, pb.JobStatusCode_FAILED, "target does not exist")
		}
		return proc.transient(ctx, state, err)
	}
	switch target.Header.ObjectType {
	case pb.ObjectType_MODEL, pb.ObjectType_FLOW:
	default:
		return proc.finalize(ctx, state, pb.JobStatusCode_FAILED,
			"target type "+target.Header.ObjectType.String()+" is not runnable")
	}

	proc.advance(state, pb.JobStatusCode_VALIDATED, "")
	return false, nil
}

// stepResolve pins every input selector to the concrete version and tag
// current right now, so the job sees a stable view even if inputs move.
func (proc *Processor) stepResolve(ctx context.Context, state *pb.JobState) (bool, error) {
	resolved := make(map[string]*pb.TagHeader, len(state.JobDef.Inputs))
	for name, selector := range state.JobDef.Inputs {
		tag, err := proc.metadata.ReadObject(ctx, &pb.MetadataReadRequest{
			Tenant:   state.Tenant,
			Selector: selector,
		})
		if err != nil {
			if notFound(err) {
				return proc.finalize(ctx, state, pb.JobStatusCode_FAILED,
					"input "+name+" does not exist")
			}
			return proc.transient(ctx, state, err)
		}
		resolved[name] = tag.Header
	}
	state.ResolvedInputs = resolved
	proc.advance(state, pb.JobStatusCode_QUEUED, "")
	return false, nil
}

func (proc *Processor) stepSubmit(ctx context.Context, state *pb.JobState) (bool, error) {
	handle, err := proc.exec.Submit(ctx, state.JobId.ObjectId, state.JobDef, executor.SandboxConfig{
		Tenant: state.Tenant,
	})
	if err != nil {
		return proc.transient(ctx, state, err)
	}
	state.ExecutorState = handle
	proc.advance(state, pb.JobStatusCode_SUBMITTED, "")
	return false, nil
}

// stepPoll observes the runtime. SUBMITTED moves to RUNNING on the
// first RUNNING observation; any terminal runtime status moves to
// FINISHING.
func (proc *Processor) stepPoll(ctx context.Context, state *pb.JobState) (bool, error) {
	result, err := proc.exec.Poll(ctx, executor.State(state.ExecutorState))
	if err != nil {
		return proc.transient(ctx, state, err)
	}
	state.RetryCount = 0
	switch {
	case result.Status.Terminal():
		proc.advance(state, pb.JobStatusCode_FINISHING, result.Message)
	case result.Status == executor.StatusRunning && state.StatusCode == pb.JobStatusCode_SUBMITTED:
		proc.advance(state, pb.JobStatusCode_RUNNING, "")
	}
	return false, nil
}

// stepFinish polls once more for the terminal status, collects outputs
// on success and records the result in metadata.
func (proc *Processor) stepFinish(ctx context.Context, state *pb.JobState) (bool, error) {
	result, err := proc.exec.Poll(ctx, executor.State(state.ExecutorState))
	if err != nil {
		return proc.transient(ctx, state, err)
	}
	state.RetryCount = 0

	switch result.Status {
	case executor.StatusSucceeded:
		if err := proc.collectOutputs(ctx, state); err != nil {
			if retryable(err) {
				return proc.transient(ctx, state, err)
			}
			return proc.finalize(ctx, state, pb.JobStatusCode_FAILED,
				"output collection failed: "+err.Error())
		}
		return proc.finalize(ctx, state, pb.JobStatusCode_COMPLETED, "")
	case executor.StatusCancelled:
		return proc.finalize(ctx, state, pb.JobStatusCode_CANCELLED, "cancelled in runtime")
	case executor.StatusLost:
		return proc.finalize(ctx, state, pb.JobStatusCode_FAILED, "lost by runtime")
	default:
		message := result.Message
		if message == "" {
			message = "job failed"
		}
		return proc.finalize(ctx, state, pb.JobStatusCode_FAILED, message)
	}
}

// collectOutputs registers each produced artifact as a FILE object and
// remembers the headers for the result record.
func (proc *Processor) collectOutputs(ctx context.Context, state *pb.JobState) error {
	result, err := proc.exec.FetchResult(ctx, executor.State(state.ExecutorState))
	if err != nil {
		return err
	}

	outputs := make(map[string]*pb.TagHeader, len(result.Outputs))
	for key, output := range result.Outputs {
		name := filepath.Base(output.Path)
		ext := strings.TrimPrefix(filepath.Ext(name), ".")
		header, err := proc.metadata.CreateObject(ctx, &pb.MetadataWriteRequest{
			Tenant:     state.Tenant,
			ObjectType: pb.ObjectType_FILE,
			Definition: &pb.ObjectDefinition{
				File: &pb.FileDefinition{
					Name:      name,
					Extension: ext,
					Size:      output.Size,
				},
			},
			TagUpdates: []*pb.TagUpdate{
				{AttrName: resultJobIDAttr, Value: trac.String(state.JobId.ObjectId)},
				{AttrName: "output_key", Value: trac.String(key)},
			},
		})
		if err != nil {
			return err
		}
		outputs[key] = header
	}
	state.Outputs = outputs
	return nil
}

// finalize records the terminal status as a RESULT object and marks
// the state terminal. The entry stays in the cache until the metadata
// write goes through. The terminal step repeats whenever entry removal
// failed or the process died in between, so an already recorded result
// is reused instead of minting a second one.
func (proc *Processor) finalize(ctx context.Context, state *pb.JobState, code pb.JobStatusCode, message string) (bool, error) {
	recorded, err := proc.resultRecorded(ctx, state)
	if err != nil {
		return false, Error.Wrap(err)
	}
	if recorded {
		proc.advance(state, code, message)
		return true, nil
	}
	_, err = proc.metadata.CreateObject(ctx, &pb.MetadataWriteRequest{
		Tenant:     state.Tenant,
		ObjectType: pb.ObjectType_RESULT,
		Definition: &pb.ObjectDefinition{
			Result: &pb.ResultDefinition{
				JobId:         state.JobId.GetObjectId(),
				StatusCode:    code,
				StatusMessage: message,
				Outputs:       state.Outputs,
			},
		},
		TagUpdates: []*pb.TagUpdate{
			{AttrName: resultJobIDAttr, Value: trac.String(state.JobId.GetObjectId())},
		},
	})
	if err != nil {
		return false, Error.Wrap(err)
	}
	proc.advance(state, code, message)
	proc.log.Info("job finished",
		zap.String("jobId", state.JobId.GetObjectId()),
		zap.String("status", code.String()),
		zap.String("message", message))
	return true, nil
}

// resultRecorded reports whether a RESULT object for this job already
// exists. Result objects carry the job id as a searchable attr exactly
// so the check stays a single indexed lookup.
func (proc *Processor) resultRecorded(ctx context.Context, state *pb.JobState) (bool, error) {
	found, err := proc.metadata.Search(ctx, &pb.MetadataSearchRequest{
		Tenant: state.Tenant,
		SearchParams: &pb.SearchParameters{
			ObjectType: pb.ObjectType_RESULT,
			Search: &pb.SearchExpression{Term: &pb.SearchTerm{
				AttrName:    resultJobIDAttr,
				AttrType:    pb.BasicType_STRING,
				Operator:    pb.SearchOperator_EQ,
				SearchValue: trac.String(state.JobId.GetObjectId()),
			}},
		},
	})
	if err != nil {
		return false, err
	}
	return len(found.GetSearchResult()) > 0, nil
}

func (proc *Processor) advance(state *pb.JobState, code pb.JobStatusCode, message string) {
	state.StatusCode = code
	state.StatusMessage = message
	state.RetryCount = 0
	state.NextPollMicros = 0
}

// transient books a retry for a transient failure, failing the job for
// good once the retry budget runs out. Fatal errors are passed through.
func (proc *Processor) transient(ctx context.Context, state *pb.JobState, err error) (bool, error) {
	if !retryable(err) {
		return false, err
	}
	state.RetryCount++
	if proc.backoff.Exhausted(int(state.RetryCount)) {
		return proc.finalize(ctx, state, pb.JobStatusCode_FAILED,
			"gave up after "+strconv.Itoa(int(state.RetryCount))+" attempts: "+err.Error())
	}
	state.NextPollMicros = proc.now().Add(proc.backoff.Delay(int(state.RetryCount))).UnixNano() / 1000
	return false, nil
}

// retryable reports whether an executor or metadata failure is worth
// another attempt.
func retryable(err error) bool {
	if trac.ErrExecutorUnavailable.Has(err) {
		return true
	}
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded:
		return true
	}
	return false
}

// notFound matches both in-process class errors and status errors that
// crossed the wire.
func notFound(err error) bool {
	return trac.ErrNotFound.Has(err) || status.Code(err) == codes.NotFound
}
